package upstream

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/metar-relay/internal/station"
)

// BackoffConfig controls exponential backoff behaviour.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// Fetcher fetches the current raw METAR for one station.
type Fetcher interface {
	RawMETAR(ctx context.Context, id station.ID) (string, error)
}

var (
	errCircuitOpen   = errors.New("circuit breaker open")
	errInvalidConfig = errors.New("invalid backoff configuration")
)

// ResilientFetcher decorates a Fetcher with retries, exponential backoff,
// and a circuit breaker. Only ErrFetchFailed is retried; a missing or
// unusable report is an answer about the station, not an outage, and is
// returned immediately.
type ResilientFetcher struct {
	inner   Fetcher
	backoff BackoffConfig
	circuit *gobreaker.CircuitBreaker
}

// NewResilientFetcher wraps inner with the given backoff settings.
func NewResilientFetcher(inner Fetcher, backoff BackoffConfig) *ResilientFetcher {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "aviationweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		IsSuccessful: func(err error) bool {
			// Only transport-level failures count against the breaker.
			return err == nil || !errors.Is(err, ErrFetchFailed)
		},
	})

	return &ResilientFetcher{
		inner:   inner,
		backoff: backoff,
		circuit: cb,
	}
}

// RawMETAR fetches through the circuit breaker, retrying transport failures
// with exponential backoff.
func (f *ResilientFetcher) RawMETAR(ctx context.Context, id station.ID) (string, error) {
	if f.backoff.MaxRetries < 0 || f.backoff.InitialInterval <= 0 {
		return "", errInvalidConfig
	}

	var attempt int
	var lastErr error

	for {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		result, err := f.circuit.Execute(func() (interface{}, error) {
			return f.inner.RawMETAR(ctx, id)
		})

		if err == nil {
			report, ok := result.(string)
			if !ok {
				return "", fmt.Errorf("unexpected result type from circuit breaker")
			}
			return report, nil
		}

		// If circuit is open, propagate immediately.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		// ErrNoReport and ErrUnusableContent are final answers.
		if !errors.Is(err, ErrFetchFailed) {
			return "", err
		}

		lastErr = err
		if attempt >= f.backoff.MaxRetries {
			return "", lastErr
		}

		// Backoff with exponential delay.
		delay := f.backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if delay > f.backoff.MaxInterval && f.backoff.MaxInterval > 0 {
			delay = f.backoff.MaxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
			// continue to next attempt
		}

		attempt++
	}
}
