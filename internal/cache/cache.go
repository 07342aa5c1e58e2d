package cache

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/i474232898/metar-relay/internal/station"
)

// Store is the key-value contract the relay caches through. Lookups never
// fail: anything that cannot be read comes back as a miss. Writes are
// allowed to fail; callers treat persistence as best-effort.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
}

// Record is the cached payload for one station.
type Record struct {
	TS    int64  `json:"ts"`    // unix seconds of the successful fetch
	Metar string `json:"metar"` // raw report text
}

var errIncompleteRecord = errors.New("incomplete cache record")

// Key derives the storage key for a validated station id (1:1, no collisions).
func Key(id station.ID) string {
	return "metar_" + id.String()
}

// EncodeRecord serializes a record for storage.
func EncodeRecord(r Record) ([]byte, error) {
	return json.Marshal(r)
}

// DecodeRecord parses stored bytes back into a record. Corrupt or partially
// populated values are rejected so they read as a cache miss, never as a
// false-fresh hit.
func DecodeRecord(b []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(b, &r); err != nil {
		return Record{}, err
	}
	if r.TS <= 0 || r.Metar == "" {
		return Record{}, errIncompleteRecord
	}
	return r, nil
}

// Fresh reports whether the record is young enough to serve, relative to now.
// Records dated in the future are never fresh.
func (r Record) Fresh(now time.Time, ttl time.Duration) bool {
	age := now.Sub(time.Unix(r.TS, 0))
	return age >= 0 && age <= ttl
}
