package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/metar-relay/internal/api/http"
	"github.com/i474232898/metar-relay/internal/cache"
	"github.com/i474232898/metar-relay/internal/config"
	"github.com/i474232898/metar-relay/internal/relay"
	"github.com/i474232898/metar-relay/internal/scheduler"
	"github.com/i474232898/metar-relay/internal/statusboard"
	"github.com/i474232898/metar-relay/internal/upstream"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound upstream calls.
	httpClient := &http.Client{
		Timeout: cfg.FetchTimeout,
	}

	// On-disk cache fronting the upstream.
	store := cache.NewFileStore(cfg.CacheDir)

	client := upstream.NewClient(httpClient, cfg.UpstreamBaseURL, cfg.UserAgent)

	// Core relay pipeline.
	service := relay.NewService(store, client, cfg.CacheTTL)

	// Optional in-process status board refresher, for deployments without
	// an external cron.
	if cfg.StatusRefreshEnabled {
		fetcher := upstream.NewResilientFetcher(client, upstream.BackoffConfig{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		})
		sched := scheduler.New(statusboard.NewRefresher(cfg.StatusPath, fetcher), cfg.StatusRefreshInterval)
		if err := sched.Start(); err != nil {
			log.Fatalf("failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "metar-relay",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "metar-relay",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
