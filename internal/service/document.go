package service

import (
	"context"
	"database/sql"
	"errors"

	"golang.org/x/sync/errgroup"

	"docstore/internal/model"
	"docstore/internal/repository"
)

var (
	ErrIDRequired  = errors.New("id is required")
	ErrNotFound    = errors.New("document not found")
	ErrEmptyUpdate = errors.New("no valid fields to update")
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListParams carries list filters plus 1-based pagination.
type ListParams struct {
	OwnerID        string
	Classification model.Classification
	Search         string
	Page           int
	Limit          int
}

// Pagination is the metadata returned alongside every list result.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// DocumentPage is the service-level DTO for a paginated list.
type DocumentPage struct {
	Items      []model.Document
	Pagination Pagination
}

// CreateInput holds a fully resolved create request: the handler applies
// sanitization and principal resolution before the service sees it.
type CreateInput struct {
	Title          string
	Content        string
	Classification model.Classification // zero means "use the default"
	OwnerID        string
}

// UpdateInput is a partial update; nil fields are left unchanged.
// Ownership is immutable, so there is no OwnerID here.
type UpdateInput struct {
	Title          *string
	Content        *string
	Classification *model.Classification
}

// ClassificationCounts breaks the stats total down per tier.
type ClassificationCounts struct {
	Public       int `json:"public"`
	Internal     int `json:"internal"`
	Confidential int `json:"confidential"`
	Secret       int `json:"secret"`
}

// DocumentStats is the payload of the stats endpoint.
type DocumentStats struct {
	Total            int                  `json:"total"`
	ByClassification ClassificationCounts `json:"byClassification"`
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// List returns a page of visible documents with pagination metadata.
	List(ctx context.Context, p ListParams) (*DocumentPage, error)

	// Get returns a single visible document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// Create persists a new document, applying the classification default.
	Create(ctx context.Context, in CreateInput) (*model.Document, error)

	// Update applies a partial update to a visible document.
	Update(ctx context.Context, id string, in UpdateInput) (*model.Document, error)

	// Delete soft-deletes a document; the row stays in storage but becomes
	// invisible everywhere.
	Delete(ctx context.Context, id string) error

	// Stats returns the total and per-classification counts, optionally
	// scoped to one owner.
	Stats(ctx context.Context, ownerID string) (*DocumentStats, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	repo repository.DocumentRepository
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(repo repository.DocumentRepository) DocumentService {
	return &documentService{repo: repo}
}

// NormalizePage clamps page/limit to their allowed ranges and fills defaults.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// List fetches the page and the total concurrently; both go through the
// repository's shared predicate so they always agree.
func (s *documentService) List(ctx context.Context, p ListParams) (*DocumentPage, error) {
	page, limit := NormalizePage(p.Page, p.Limit)
	offset := (page - 1) * limit

	f := repository.Filter{
		OwnerID:        p.OwnerID,
		Classification: p.Classification,
		Search:         p.Search,
	}

	var (
		items []model.Document
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.repo.List(gctx, f, repository.PageQuery{Limit: limit, Offset: offset})
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totalPages := (total + limit - 1) / limit

	return &DocumentPage{
		Items: items,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}, nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Create persists a new document. An unset classification becomes INTERNAL
// and an unset owner becomes the placeholder principal, so a stored row
// always carries both.
func (s *documentService) Create(ctx context.Context, in CreateInput) (*model.Document, error) {
	if in.Classification == 0 {
		in.Classification = model.DefaultClassification
	}
	if in.OwnerID == "" {
		in.OwnerID = model.PlaceholderOwnerID
	}

	return s.repo.Create(ctx, &model.Document{
		Title:          in.Title,
		Content:        in.Content,
		Classification: in.Classification,
		OwnerID:        in.OwnerID,
	})
}

// Update applies the recognized fields of the partial. An empty partial is
// rejected here as well as at the handler, since callers other than HTTP
// could reach this path.
func (s *documentService) Update(ctx context.Context, id string, in UpdateInput) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	patch := repository.Patch{
		Title:          in.Title,
		Content:        in.Content,
		Classification: in.Classification,
	}
	if patch.Empty() {
		return nil, ErrEmptyUpdate
	}

	doc, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Delete soft-deletes a document. Deleting an unknown or already-deleted id
// reports not-found rather than erroring, so repeats are harmless.
func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	deleted, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// Stats fans out five independent counts that share the owner filter. Each
// count reuses the repository predicate, so the breakdown can never diverge
// from what list/count report.
func (s *documentService) Stats(ctx context.Context, ownerID string) (*DocumentStats, error) {
	stats := &DocumentStats{}
	targets := []struct {
		classification model.Classification
		dst            *int
	}{
		{0, &stats.Total},
		{model.ClassificationPublic, &stats.ByClassification.Public},
		{model.ClassificationInternal, &stats.ByClassification.Internal},
		{model.ClassificationConfidential, &stats.ByClassification.Confidential},
		{model.ClassificationSecret, &stats.ByClassification.Secret},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, tgt := range targets {
		g.Go(func() error {
			n, err := s.repo.Count(gctx, repository.Filter{
				OwnerID:        ownerID,
				Classification: tgt.classification,
			})
			if err != nil {
				return err
			}
			*tgt.dst = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
