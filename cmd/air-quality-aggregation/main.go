package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/i474232898/air-quality-aggregation/internal/airquality"
	"github.com/i474232898/air-quality-aggregation/internal/airquality/sensorapi"
	httpapi "github.com/i474232898/air-quality-aggregation/internal/api/http"
	"github.com/i474232898/air-quality-aggregation/internal/config"
	"github.com/i474232898/air-quality-aggregation/internal/logging"
	"github.com/i474232898/air-quality-aggregation/internal/scheduler"
	"github.com/i474232898/air-quality-aggregation/internal/store"
)

const appName = "air-quality-aggregation"

func main() {
	// Load configuration (also reads .env when present).
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logging.New(cfg, appName)

	tables, err := config.LoadTables(cfg.CategoryTablesFile)
	if err != nil {
		log.Error("failed to load category tables", "error", err)
		os.Exit(1)
	}

	if cfg.SensorAPIBaseURL == "" {
		log.Warn("SENSOR_API_BASE_URL is not set; every fetch will fail")
	}

	// Shared HTTP client for outbound sensor API calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Sensor API client with resilience (backoff + circuit breaker).
	source := sensorapi.NewClient(httpClient, sensorapi.Options{
		BaseURL:  cfg.SensorAPIBaseURL,
		APIKey:   cfg.SensorAPIKey,
		Location: cfg.StationLocation,
		Logger:   log.With("component", "sensorapi"),
	})

	cache := store.NewMemoryCache(cfg.CacheTTL, cfg.CacheMaxEntries)

	// Core service orchestrating the source, cache and aggregators.
	service := airquality.NewService(source, cache, tables, airquality.DefaultCatalog(), log.With("component", "service"))

	// Scheduler that keeps the preset windows warm.
	sched := scheduler.New(cfg.PrefetchStations, cfg.PrefetchInterval, service, log.With("component", "scheduler"))
	if err := sched.Start(); err != nil {
		log.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          2 * cfg.HTTPTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code >= fiber.StatusInternalServerError {
				log.Error("request failed", "path", c.Path(), "error", err)
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": appName,
		})
	})

	httpapi.RegisterRoutes(app, service, cfg.StationLocation)

	go func() {
		log.Info("listening", "port", cfg.Port, "env", cfg.AppEnv)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "error", err)
	}
}
