package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/geoweather/internal/api/http"
	"github.com/i474232898/geoweather/internal/config"
	"github.com/i474232898/geoweather/internal/lookup"
	"github.com/i474232898/geoweather/internal/scheduler"
	"github.com/i474232898/geoweather/internal/store"
	"github.com/i474232898/geoweather/internal/weather"
	"github.com/i474232898/geoweather/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls. Individual calls carry
	// their own deadlines; this is the outer safety net.
	httpClient := &http.Client{
		Timeout: cfg.RequestTimeout + 5*time.Second,
	}

	// OpenWeatherMap serves geocoding and all three weather-data endpoints.
	owm := providers.NewOpenWeatherClient(httpClient, cfg.OpenWeatherAPIKey)

	// Reverse geocoding is optional; without a Google key coordinate queries
	// keep their generic display names.
	var reverse weather.ReverseGeocoder
	if cfg.GeocoderAPIKey != "" {
		reverse = providers.NewGoogleReverseGeocoder(cfg.GeocoderAPIKey)
	}

	// Session state: last location and pending disambiguations.
	session := store.NewSession(cfg.PendingTTL)

	// Core pipeline.
	aggregator := weather.NewAggregator(owm, cfg.RequestTimeout)
	service := lookup.New(owm, aggregator, reverse, session, cfg.GeocodeLimit, cfg.RequestTimeout)

	// Background refresh of the last location, if enabled.
	if cfg.RefreshInterval > 0 {
		sched := scheduler.New(service, cfg.RefreshInterval, 3*cfg.RequestTimeout)
		if err := sched.Start(); err != nil {
			log.Fatalf("failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "geoweather",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "geoweather",
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
