package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"docstore/internal/auth"
	"docstore/internal/model"
	"docstore/internal/service"
	"docstore/internal/validation"
)

// Request DTOs. Constraints live in validate tags; violations are collected
// in full before any storage work happens. owner_id is deliberately missing
// from the update body: ownership is immutable, unknown keys are dropped.

type createDocumentRequest struct {
	Title          string `json:"title" validate:"required,min=1,max=255"`
	Content        string `json:"content" validate:"required,max=1000000"`
	Classification *int   `json:"classification" validate:"omitempty,gte=1,lte=4"`
	OwnerID        string `json:"owner_id" validate:"omitempty,min=1,max=255"`
}

type updateDocumentRequest struct {
	Title          *string `json:"title" validate:"omitempty,min=1,max=255"`
	Content        *string `json:"content" validate:"omitempty,min=1,max=1000000"`
	Classification *int    `json:"classification" validate:"omitempty,gte=1,lte=4"`
}

type listDocumentsQuery struct {
	Page    int    `query:"page" json:"page" validate:"omitempty,gte=1"`
	Limit   int    `query:"limit" json:"limit" validate:"omitempty,gte=1,lte=100"`
	OwnerID string `query:"owner_id" json:"owner_id" validate:"omitempty,min=1,max=255"`
	// Pointer so an explicit ?classification=0 is validated (and rejected)
	// instead of being indistinguishable from an absent parameter.
	Classification *int   `query:"classification" json:"classification" validate:"omitempty,gte=1,lte=4"`
	Search         string `query:"search" json:"search" validate:"omitempty,min=1,max=255"`
}

func notFoundMessage(id string) string {
	return fmt.Sprintf("Document with ID %s does not exist", id)
}

// requireUUID rejects malformed :id params before they reach storage.
func requireUUID(c *fiber.Ctx) (string, []validation.FieldError) {
	id := c.Params("id")
	if !validation.IsUUID(id) {
		return "", []validation.FieldError{{Field: "id", Message: "Invalid document ID format"}}
	}
	return id, nil
}

// ListDocuments handles GET /api/documents.
//
// @Summary List documents
// @Tags documents
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 10, max 100)"
// @Param owner_id query string false "Filter by owner"
// @Param classification query int false "Filter by classification level (1-4)"
// @Param search query string false "Search in title and content"
// @Success 200 {object} map[string]any
// @Router /api/documents [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q listDocumentsQuery
		if err := c.QueryParser(&q); err != nil {
			return writeValidation(c, []validation.FieldError{
				{Field: "query", Message: "malformed query parameters"},
			})
		}
		q.Search = validation.Trim(q.Search)
		if details := validation.Struct(q); details != nil {
			return writeValidation(c, details)
		}

		params := service.ListParams{
			OwnerID: q.OwnerID,
			Search:  validation.Sanitize(q.Search),
			Page:    q.Page,
			Limit:   q.Limit,
		}
		if q.Classification != nil {
			params.Classification = model.Classification(*q.Classification)
		}

		page, err := svc.List(c.UserContext(), params)
		if err != nil {
			return err
		}
		return respondPage(c, page)
	}
}

// GetDocument handles GET /api/documents/:id.
//
// @Summary Get a single document
// @Tags documents
// @Produce json
// @Param id path string true "Document UUID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/documents/{id} [get]
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, details := requireUUID(c)
		if details != nil {
			return writeValidation(c, details)
		}

		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "Document not found", notFoundMessage(id))
			}
			return err
		}
		return respondData(c, fiber.StatusOK, doc, "")
	}
}

// CreateDocument handles POST /api/documents. The owner comes from the body
// when present, otherwise from the principal resolver seam.
//
// @Summary Create a document
// @Tags documents
// @Accept json
// @Produce json
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/documents [post]
func CreateDocument(svc service.DocumentService, principal auth.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createDocumentRequest
		if err := c.BodyParser(&req); err != nil {
			return writeValidation(c, []validation.FieldError{
				{Field: "body", Message: "malformed JSON body"},
			})
		}

		req.Title = validation.Trim(req.Title)
		req.Content = validation.Trim(req.Content)
		if details := validation.Struct(req); details != nil {
			return writeValidation(c, details)
		}

		in := service.CreateInput{
			Title:   validation.Sanitize(req.Title),
			Content: req.Content,
			OwnerID: req.OwnerID,
		}
		if req.Classification != nil {
			in.Classification = model.Classification(*req.Classification)
		}
		if in.OwnerID == "" {
			in.OwnerID = principal.Resolve(c)
		}

		doc, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return err
		}
		return respondData(c, fiber.StatusCreated, doc, "Document created successfully")
	}
}

// UpdateDocument handles PUT /api/documents/:id. Only title, content, and
// classification are recognized; anything else in the body is dropped.
//
// @Summary Update a document
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document UUID"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/documents/{id} [put]
func UpdateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, details := requireUUID(c)
		if details != nil {
			return writeValidation(c, details)
		}

		var req updateDocumentRequest
		if err := c.BodyParser(&req); err != nil {
			return writeValidation(c, []validation.FieldError{
				{Field: "body", Message: "malformed JSON body"},
			})
		}

		if req.Title != nil {
			*req.Title = validation.Trim(*req.Title)
		}
		if req.Content != nil {
			*req.Content = validation.Trim(*req.Content)
		}
		if details := validation.Struct(req); details != nil {
			return writeValidation(c, details)
		}

		if req.Title == nil && req.Content == nil && req.Classification == nil {
			return writeError(c, fiber.StatusBadRequest, "No valid fields to update",
				"At least one of title, content, or classification must be provided")
		}

		in := service.UpdateInput{Content: req.Content}
		if req.Title != nil {
			escaped := validation.Sanitize(*req.Title)
			in.Title = &escaped
		}
		if req.Classification != nil {
			cls := model.Classification(*req.Classification)
			in.Classification = &cls
		}

		doc, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "Document not found", notFoundMessage(id))
			case errors.Is(err, service.ErrEmptyUpdate):
				return writeError(c, fiber.StatusBadRequest, "No valid fields to update",
					"At least one of title, content, or classification must be provided")
			default:
				return err
			}
		}
		return respondData(c, fiber.StatusOK, doc, "Document updated successfully")
	}
}

// DeleteDocument handles DELETE /api/documents/:id (soft delete).
//
// @Summary Soft-delete a document
// @Tags documents
// @Param id path string true "Document UUID"
// @Success 204
// @Failure 404 {object} map[string]any
// @Router /api/documents/{id} [delete]
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, details := requireUUID(c)
		if details != nil {
			return writeValidation(c, details)
		}

		if err := svc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "Document not found", notFoundMessage(id))
			}
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DocumentStats handles GET /api/documents/stats.
//
// @Summary Classification breakdown
// @Tags documents
// @Produce json
// @Param owner_id query string false "Scope counts to one owner"
// @Success 200 {object} map[string]any
// @Router /api/documents/stats [get]
func DocumentStats(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.Stats(c.UserContext(), c.Query("owner_id"))
		if err != nil {
			return err
		}
		return respondData(c, fiber.StatusOK, stats, "")
	}
}

// HealthCheck reports whether the database dependency is reachable.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "Service unavailable", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a plain liveness check with no dependencies.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
