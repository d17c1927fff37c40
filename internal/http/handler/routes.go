package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"docstore/internal/auth"
	"docstore/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: validation at the edge, business logic in the service.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService, principal auth.Resolver) {
	// Health endpoint: checks DB connectivity only
	app.Get("/health", HealthCheck(db))

	// Simple liveness probe
	app.Get("/healthz", LivenessProbe())

	// Prometheus metrics (excluded from request counting by the middleware)
	app.Get("/metrics", func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())(c.Context())
		return nil
	})

	docs := app.Group("/api/documents")

	// /stats must be registered before /:id so it is not captured as an id.
	docs.Get("/stats", DocumentStats(docSvc))
	docs.Get("/", ListDocuments(docSvc))
	docs.Post("/", CreateDocument(docSvc, principal))
	docs.Get("/:id", GetDocument(docSvc))
	docs.Put("/:id", UpdateDocument(docSvc))
	docs.Delete("/:id", DeleteDocument(docSvc))
}
