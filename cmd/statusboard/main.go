package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/i474232898/metar-relay/internal/config"
	"github.com/i474232898/metar-relay/internal/statusboard"
	"github.com/i474232898/metar-relay/internal/upstream"
)

// Run-once board tool for cron-style scheduling: -bootstrap rebuilds the
// station directory, the default run refreshes every airport's status.
func main() {
	bootstrap := flag.Bool("bootstrap", false, "rebuild the station directory from the upstream dataset")
	refresh := flag.Bool("refresh", false, "run one refresh pass over the board (the default when no flag is given)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// METAR fetches are short; the stations dataset is bigger and slower.
	metarClient := upstream.NewClient(&http.Client{Timeout: cfg.FetchTimeout}, cfg.UpstreamBaseURL, cfg.UserAgent)
	datasetClient := upstream.NewClient(&http.Client{Timeout: 25 * time.Second}, cfg.UpstreamBaseURL, cfg.UserAgent)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *bootstrap {
		if err := statusboard.Bootstrap(ctx, cfg.StatusPath, datasetClient, cfg.StatusState); err != nil {
			log.Fatalf("bootstrap failed: %v", err)
		}
		log.Printf("INFO: bootstrapped %s", cfg.StatusPath)
	}

	if *refresh || !*bootstrap {
		fetcher := upstream.NewResilientFetcher(metarClient, upstream.BackoffConfig{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		})
		if err := statusboard.NewRefresher(cfg.StatusPath, fetcher).Refresh(ctx); err != nil {
			log.Fatalf("refresh failed: %v", err)
		}
		log.Printf("INFO: refreshed %s", cfg.StatusPath)
	}
}
