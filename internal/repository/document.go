// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.
package repository

import (
	"context"

	"docstore/internal/model"
)

// DocumentRepository is the sole gateway between the domain and storage for
// documents. SQL only, no business logic. Every read and mutation excludes
// soft-deleted rows; only HardDelete can touch them.
type DocumentRepository interface {
	// Create inserts a new document row. Defaults (classification, owner)
	// must already be applied by the caller. Returns the persisted row
	// including the generated id and timestamps.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a visible document by its ID, or sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns visible documents matching the filter, most recently
	// updated first, using limit/offset pagination.
	List(ctx context.Context, f Filter, pq PageQuery) ([]model.Document, error)

	// Count returns the number of visible documents matching the filter.
	// It shares its predicate logic with List so the two can never disagree.
	Count(ctx context.Context, f Filter) (int, error)

	// Update applies the non-nil fields of the patch to a visible document,
	// refreshes updated_at, and returns the updated row or sql.ErrNoRows.
	Update(ctx context.Context, id string, patch Patch) (*model.Document, error)

	// SoftDelete stamps deleted_at on a visible document. Returns false when
	// the id is unknown or already deleted; that is not an error.
	SoftDelete(ctx context.Context, id string) (bool, error)

	// HardDelete physically removes the row regardless of soft-delete state.
	// Administrative/cleanup use only; never exposed through the public API.
	HardDelete(ctx context.Context, id string) (bool, error)
}

// Filter narrows List/Count results. Zero values mean "no constraint".
type Filter struct {
	OwnerID        string
	Classification model.Classification
	// Search matches as a case-insensitive substring of title or content.
	Search string
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// Patch carries the mutable document fields for a partial update.
// Nil means "leave unchanged". OwnerID is deliberately absent: ownership is
// immutable after creation.
type Patch struct {
	Title          *string
	Content        *string
	Classification *model.Classification
}

// Empty reports whether the patch would change nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Classification == nil
}
