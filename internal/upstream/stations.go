package upstream

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
)

// StationInfo is one row of the upstream stations dataset.
type StationInfo struct {
	ID    string
	Name  string
	State string
	Lat   float64
	Lon   float64
}

// Stations fetches the stations dataset for one US state. Comment lines and
// malformed rows are skipped rather than failing the whole fetch.
func (c *Client) Stations(ctx context.Context, state string) ([]StationInfo, error) {
	values := url.Values{}
	values.Set("dataSource", "stations")
	values.Set("requestType", "retrieve")
	values.Set("format", "csv")
	values.Set("stationString", "~")
	values.Set("state", state)

	body, err := c.getText(ctx, fmt.Sprintf("%s/adds/dataserver_current/httpparam?%s", c.baseURL, values.Encode()))
	if err != nil {
		return nil, err
	}

	return parseStationsCSV(body, state)
}

// parseStationsCSV decodes the dataset body. The feed prefixes the CSV with
// "#" comment lines that encoding/csv does not understand, so those are
// stripped first.
func parseStationsCSV(body, state string) ([]StationInfo, error) {
	if looksLikeMarkup(body) {
		return nil, fmt.Errorf("%w: got markup for stations dataset", ErrUnusableContent)
	}

	var lines []string
	for _, ln := range strings.Split(body, "\n") {
		ln = strings.TrimRight(ln, "\r")
		if strings.HasPrefix(ln, "#") || strings.TrimSpace(ln) == "" {
			continue
		}
		lines = append(lines, ln)
	}
	if len(lines) == 0 {
		return nil, nil
	}

	r := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnusableContent, err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"station_id", "latitude", "longitude"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%w: stations dataset missing %s column", ErrUnusableContent, required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []StationInfo
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		st := strings.ToUpper(field(row, "state"))
		if state != "" && st != strings.ToUpper(state) {
			continue
		}

		id := strings.ToUpper(field(row, "station_id"))
		if len(id) != 3 && len(id) != 4 {
			continue
		}

		lat, latErr := strconv.ParseFloat(field(row, "latitude"), 64)
		lon, lonErr := strconv.ParseFloat(field(row, "longitude"), 64)
		if latErr != nil || lonErr != nil {
			continue
		}

		name := field(row, "station_name")
		if name == "" {
			name = id
		}

		out = append(out, StationInfo{ID: id, Name: name, State: st, Lat: lat, Lon: lon})
	}

	return out, nil
}
