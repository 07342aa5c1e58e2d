package statusboard

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/i474232898/metar-relay/internal/common"
	"github.com/i474232898/metar-relay/internal/station"
	"github.com/i474232898/metar-relay/internal/upstream"
)

// Airport status values shown on the board.
const (
	StatusOK     = "OK"
	StatusImpact = "IMPACT"
	StatusClosed = "CLOSED"
)

// Region names used by the frontend, west to east.
var regionNames = []string{"Western", "Central", "Eastern"}

// Document is the status board published for the frontend.
type Document struct {
	GeneratedUTC string                     `json:"generated_utc"`
	Regions      map[string][]RegionStation `json:"regions"`
	Airports     map[string]*Airport        `json:"airports"`
}

// RegionStation is one station entry in a region listing.
type RegionStation struct {
	Code string  `json:"code"`
	ICAO string  `json:"icao"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Airport is the per-airport status block, keyed on the board by short code.
type Airport struct {
	ICAO           string `json:"icao"`
	Status         string `json:"status"`
	FlightCategory string `json:"flight_category"`
	ImpactReason   string `json:"impact_reason"`
	MetarRaw       string `json:"metar_raw"`
	MetarTimeUTC   string `json:"metar_time_utc,omitempty"`
	UpdatedUTC     string `json:"updated_utc,omitempty"`
}

// NowUTC formats the current time the way the board's consumers expect,
// e.g. 2026-01-27T05:12:34Z.
func NowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Load reads a board document from disk.
func Load(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading status board: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parsing status board: %w", err)
	}
	if doc.Regions == nil {
		doc.Regions = map[string][]RegionStation{}
	}
	if doc.Airports == nil {
		doc.Airports = map[string]*Airport{}
	}
	return &doc, nil
}

// Save writes the document atomically, two-space indented with a trailing
// newline so diffs against hand-edited boards stay clean.
func Save(path string, doc *Document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding status board: %w", err)
	}
	b = append(b, '\n')

	if err := common.WriteFileAtomic(path, b); err != nil {
		return fmt.Errorf("saving status board: %w", err)
	}
	return nil
}

// regionForLon buckets a Pennsylvania station by longitude.
func regionForLon(lon float64) string {
	switch {
	case lon <= -78.5:
		return "Western"
	case lon <= -76.5:
		return "Central"
	default:
		return "Eastern"
	}
}

// Build assembles a board from the stations dataset. Stations are de-duped
// by short code, bucketed into regions, and each region list is sorted by
// code. When prev is non-nil, the manually curated status and impact_reason
// of airports still present in the dataset carry over; everything else is
// seeded to a clean OK block for the next refresh to fill.
func Build(stations []upstream.StationInfo, prev *Document) *Document {
	doc := &Document{
		GeneratedUTC: NowUTC(),
		Regions:      map[string][]RegionStation{},
		Airports:     map[string]*Airport{},
	}
	for _, name := range regionNames {
		doc.Regions[name] = []RegionStation{}
	}

	for _, st := range stations {
		code := station.CodeFrom(st.ID)
		if code == "" {
			continue
		}
		// First listing wins.
		if _, ok := doc.Airports[code]; ok {
			continue
		}

		icao := station.ICAOFrom(st.ID)
		region := regionForLon(st.Lon)

		doc.Regions[region] = append(doc.Regions[region], RegionStation{
			Code: code,
			ICAO: icao,
			Name: st.Name,
			Lat:  st.Lat,
			Lon:  st.Lon,
		})

		a := &Airport{
			ICAO:           icao,
			Status:         StatusOK,
			FlightCategory: CategoryUnknown,
		}
		if prev != nil {
			if old, ok := prev.Airports[code]; ok && old != nil {
				a.Status = old.Status
				a.ImpactReason = old.ImpactReason
			}
		}
		doc.Airports[code] = a
	}

	for name := range doc.Regions {
		list := doc.Regions[name]
		sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	}

	return doc
}
