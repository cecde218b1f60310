package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"project-catalog/internal/config"
	"project-catalog/internal/eventbus"
	"project-catalog/internal/handler"
	"project-catalog/internal/middleware"
	"project-catalog/internal/realtime"
	"project-catalog/internal/repository"
	"project-catalog/internal/service"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and live notification endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), loadConfig())
	},
}

func runServe(parent context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.NewDB(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to database")
		return err
	}
	defer db.Close()

	if cfg.DatabaseAutoMigrate {
		if err := repository.Migrate(ctx, db); err != nil {
			log.Error().Err(err).Msg("Failed to apply migrations")
			return err
		}
	}

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to connect to Redis, notification counts will not be cached")
		redis = nil
	}
	if redis != nil {
		defer redis.Close()
	}

	bus := eventbus.New(eventbus.Options{
		Workers:        cfg.EventWorkers,
		QueueSize:      cfg.EventQueueSize,
		HandlerTimeout: cfg.EventHandlerTimeout,
	})
	registry := realtime.NewRegistry()

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, bus, cfg)
	service.RegisterEventHandlers(bus, services, repos, realtime.NewDeliverer(registry, cfg.DeliveryTimeout), cfg)
	// Not the signal context: closeBus owns the bus shutdown.
	bus.Start(parent)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))
	app.Use(middleware.Metrics())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handler.SetupRoutes(app, handler.NewHandlers(services, registry), services.Auth)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server starting")
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("Server stopped")
		}
		closeBus(bus)
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Warn().Err(err).Msg("HTTP shutdown incomplete")
	}
	closeBus(bus)
	return nil
}

func closeBus(bus *eventbus.Bus) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := bus.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("Event handlers did not drain before shutdown")
	}
}
