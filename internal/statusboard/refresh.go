package statusboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/i474232898/metar-relay/internal/station"
	"github.com/i474232898/metar-relay/internal/upstream"
)

// StationSource lists candidate stations for the board.
type StationSource interface {
	Stations(ctx context.Context, state string) ([]upstream.StationInfo, error)
}

// Bootstrap rebuilds the board at path from the stations dataset for one
// state, carrying curated fields over from any existing board. An empty
// dataset is an error so a flaky upstream cannot wipe a good board.
func Bootstrap(ctx context.Context, path string, src StationSource, state string) error {
	stations, err := src.Stations(ctx, state)
	if err != nil {
		return err
	}
	if len(stations) == 0 {
		return fmt.Errorf("stations dataset for %s is empty", state)
	}

	var prev *Document
	if doc, err := Load(path); err == nil {
		prev = doc
	}

	return Save(path, Build(stations, prev))
}

// Refresher re-derives the weather-driven fields of a board from fresh
// METARs, one station per upstream request.
type Refresher struct {
	path    string
	fetcher upstream.Fetcher
}

// NewRefresher creates a Refresher that rewrites the board at path.
func NewRefresher(path string, fetcher upstream.Fetcher) *Refresher {
	return &Refresher{
		path:    path,
		fetcher: fetcher,
	}
}

// Refresh runs one full pass: load the board, re-derive every airport in
// code order, save. Per-station fetch problems degrade that airport to
// CLOSED instead of failing the run; the board on disk is replaced only
// when the whole pass completes.
func (r *Refresher) Refresh(ctx context.Context) error {
	doc, err := Load(r.path)
	if err != nil {
		return err
	}

	updated := NowUTC()

	codes := make([]string, 0, len(doc.Airports))
	for code := range doc.Airports {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		if err := ctx.Err(); err != nil {
			return err
		}
		a := doc.Airports[code]
		if a == nil {
			continue
		}
		r.refreshAirport(ctx, a, updated)
	}

	doc.GeneratedUTC = updated
	return Save(r.path, doc)
}

// refreshAirport re-derives one airport's block from a fresh METAR.
func (r *Refresher) refreshAirport(ctx context.Context, a *Airport, updated string) {
	id, err := station.Parse(a.ICAO)
	if err != nil {
		a.markClosed("no METAR", updated)
		return
	}

	metar, err := r.fetcher.RawMETAR(ctx, id)
	switch {
	case err == nil:
	case errors.Is(err, upstream.ErrNoReport):
		a.markClosed("no METAR", updated)
		return
	default:
		log.Printf("WARN: refreshing %s failed: %v", id, err)
		a.markClosed("METAR fetch error", updated)
		return
	}

	cat, catReason := FlightCategory(metar)
	status := StatusForCategory(cat)

	var reason string
	if status == StatusImpact {
		reason = "Flight rules degraded"
		if catReason != "" {
			reason = fmt.Sprintf("%s: %s", cat, catReason)
		}
	}

	a.Status = status
	a.FlightCategory = cat
	a.ImpactReason = reason
	a.MetarRaw = metar
	a.MetarTimeUTC = ObservationTime(metar)
	a.UpdatedUTC = updated
}

// markClosed clears the weather fields and closes the airport.
func (a *Airport) markClosed(reason, updated string) {
	a.Status = StatusClosed
	a.FlightCategory = CategoryUnknown
	a.ImpactReason = reason
	a.MetarRaw = ""
	a.MetarTimeUTC = ""
	a.UpdatedUTC = updated
}
