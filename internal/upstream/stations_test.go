package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const stationsCSV = `# No warnings
# 3 stations
station_id,station_name,state,country,latitude,longitude,elevation_m
KPIT,PITTSBURGH INTL,PA,US,40.49,-80.23,367
KMDT,HARRISBURG INTL,PA,US,40.19,-76.76,94
KJFK,KENNEDY INTL,NY,US,40.64,-73.78,4
XX,TOO SHORT,PA,US,40.0,-77.0,100
KBAD,BAD COORDS,PA,US,not-a-number,-77.0,100
`

// TestStationsFiltersRows verifies state filtering, comment stripping, and
// that malformed rows are skipped instead of failing the fetch.
func TestStationsFiltersRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("dataSource") != "stations" || q.Get("format") != "csv" || q.Get("state") != "PA" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Write([]byte(stationsCSV))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "")
	got, err := c.Stations(context.Background(), "PA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 stations, got %d: %+v", len(got), got)
	}
	if got[0].ID != "KPIT" || got[0].Name != "PITTSBURGH INTL" || got[0].State != "PA" {
		t.Fatalf("unexpected first station: %+v", got[0])
	}
	if got[1].ID != "KMDT" || got[1].Lat != 40.19 || got[1].Lon != -76.76 {
		t.Fatalf("unexpected second station: %+v", got[1])
	}
}

// TestStationsEmptyDataset verifies that a body with only comments yields no
// stations and no error.
func TestStationsEmptyDataset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("# No warnings\n# 0 stations\n"))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "")
	got, err := c.Stations(context.Background(), "PA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no stations, got %+v", got)
	}
}

// TestStationsMissingColumns verifies that a dataset without the required
// columns maps to ErrUnusableContent.
func TestStationsMissingColumns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("foo,bar\n1,2\n"))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "")
	_, err := c.Stations(context.Background(), "PA")
	if !errors.Is(err, ErrUnusableContent) {
		t.Fatalf("expected ErrUnusableContent, got %v", err)
	}
}

// TestStationsMarkupBody verifies that an HTML error page maps to
// ErrUnusableContent.
func TestStationsMarkupBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>maintenance</body></html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "")
	_, err := c.Stations(context.Background(), "PA")
	if !errors.Is(err, ErrUnusableContent) {
		t.Fatalf("expected ErrUnusableContent, got %v", err)
	}
}
