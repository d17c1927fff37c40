package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"docstore/internal/service"
	"docstore/internal/validation"
)

// Every JSON response carries data or error plus a timestamp; list responses
// add pagination metadata under meta. 204 responses have no body.

type envelope struct {
	Data      any    `json:"data"`
	Message   string `json:"message,omitempty"`
	Meta      *meta  `json:"meta,omitempty"`
	Timestamp string `json:"timestamp"`
}

type meta struct {
	Pagination service.Pagination `json:"pagination"`
}

type errorBody struct {
	Error     string                  `json:"error"`
	Message   string                  `json:"message,omitempty"`
	Details   []validation.FieldError `json:"details,omitempty"`
	Timestamp string                  `json:"timestamp"`
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func respondData(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(envelope{
		Data:      data,
		Message:   message,
		Timestamp: timestamp(),
	})
}

func respondPage(c *fiber.Ctx, page *service.DocumentPage) error {
	return c.Status(fiber.StatusOK).JSON(envelope{
		Data:      page.Items,
		Meta:      &meta{Pagination: page.Pagination},
		Timestamp: timestamp(),
	})
}

// writeError writes a standardized JSON error response without leaking internal errors.
func writeError(c *fiber.Ctx, status int, errLabel, message string) error {
	return c.Status(status).JSON(errorBody{
		Error:     errLabel,
		Message:   message,
		Timestamp: timestamp(),
	})
}

// writeValidation reports every collected violation at once with a 400.
func writeValidation(c *fiber.Ctx, details []validation.FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorBody{
		Error:     "Validation failed",
		Details:   details,
		Timestamp: timestamp(),
	})
}
