package relay

import (
	"context"
	"log"
	"time"

	"github.com/i474232898/metar-relay/internal/cache"
	"github.com/i474232898/metar-relay/internal/station"
)

// Fetcher fetches the current raw METAR for one station.
type Fetcher interface {
	RawMETAR(ctx context.Context, id station.ID) (string, error)
}

// Result is one answered lookup.
type Result struct {
	Station station.ID
	Report  string
	Cached  bool
}

// Service answers METAR lookups from the cache when possible and from the
// upstream provider otherwise.
type Service struct {
	store   cache.Store
	fetcher Fetcher
	ttl     time.Duration
}

// NewService creates a new Service. ttl bounds how long a cached report is
// served before the upstream is consulted again.
func NewService(store cache.Store, fetcher Fetcher, ttl time.Duration) *Service {
	return &Service{
		store:   store,
		fetcher: fetcher,
		ttl:     ttl,
	}
}

// Report answers one lookup. The station id is validated first; a fresh
// cached report is served without touching the upstream, anything else
// triggers a fetch. Fetched reports are cached best-effort: a failed cache
// write is logged and the report is served anyway.
func (s *Service) Report(ctx context.Context, rawID string) (Result, error) {
	id, err := station.Parse(rawID)
	if err != nil {
		return Result{}, err
	}

	key := cache.Key(id)

	if b, ok := s.store.Get(key); ok {
		// An unreadable record is a miss, not a failure.
		rec, err := cache.DecodeRecord(b)
		if err == nil && rec.Fresh(time.Now(), s.ttl) {
			return Result{Station: id, Report: rec.Metar, Cached: true}, nil
		}
	}

	report, err := s.fetcher.RawMETAR(ctx, id)
	if err != nil {
		return Result{}, err
	}

	b, err := cache.EncodeRecord(cache.Record{TS: time.Now().Unix(), Metar: report})
	if err == nil {
		err = s.store.Set(key, b)
	}
	if err != nil {
		log.Printf("WARN: caching report for %s failed: %v", id, err)
	}

	return Result{Station: id, Report: report, Cached: false}, nil
}
