package handler

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"

	"docstore/internal/config"
	"docstore/internal/http/middleware"
	"docstore/internal/logger"
)

// PostgreSQL error codes the API translates into client errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
)

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// ErrorHandler returns the Fiber global error handler: the single place where
// unhandled failures become HTTP statuses. It runs exactly once per failed
// request and always logs the original error, while the response body only
// carries internal detail outside production mode.
func ErrorHandler(cfg *config.AppConfig) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		label := "Internal Server Error"
		message := ""

		var pgErr *pgconn.PgError
		var fiberErr *fiber.Error

		switch {
		case errors.As(err, &pgErr):
			switch pgErr.Code {
			case pgUniqueViolation:
				status = fiber.StatusConflict
				label = "Resource already exists"
			case pgForeignKeyViolation:
				status = fiber.StatusBadRequest
				label = "Invalid reference"
			case pgNotNullViolation:
				status = fiber.StatusBadRequest
				label = "Missing required field"
			}
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			label = http.StatusText(status)
			if status < fiber.StatusInternalServerError {
				message = fiberErr.Message
			}
		}

		logger.L().Error().
			Err(err).
			Str("request_id", requestIDFromCtx(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Msg("request failed")

		if status >= fiber.StatusInternalServerError && !cfg.IsProduction() {
			message = err.Error()
		}

		return writeError(c, status, label, message)
	}
}
