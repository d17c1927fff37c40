package main

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"

	"docstore/docs"
	"docstore/internal/auth"
	"docstore/internal/config"
	"docstore/internal/database"
	"docstore/internal/database/migration"
	handlers "docstore/internal/http/handler"
	"docstore/internal/http/middleware"
	"docstore/internal/logger"
	"docstore/internal/otel"
	"docstore/internal/repository/postgres"
	"docstore/internal/service"
)

// @title Document Store API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	logger.Init(cfg)
	log := logger.L()

	ctx := context.Background()

	// Tracing: OTLP exporter configured via standard OTEL_* variables.
	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}
	defer shutdownTracing(context.Background())

	// PostgreSQL connection with pooling via database/sql, instrumented with otelsql.
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	if cfg.IsDevelopment() {
		if err := migration.Seed(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("failed to seed sample documents")
		}
	}

	docRepo := postgres.NewDocumentPostgres(db)
	docSvc := service.NewDocumentService(docRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(cfg),
	})

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	// Global middleware. RequestID must come first so the logger can tag
	// every line with it.
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(middleware.Timeout(time.Duration(cfg.RequestTimeoutSec) * time.Second))
	app.Use(otelfiber.Middleware())
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, db, docSvc, auth.NewPlaceholder())

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port
	log.Info().Str("env", cfg.Env).Str("addr", addr).Msg("starting server")

	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
