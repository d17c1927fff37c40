package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"docstore/internal/model"
	"docstore/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

// documentColumns is every column the API exposes; deleted_at is never selected.
const documentColumns = "id, title, content, classification, owner_id, created_at, updated_at"

// buildWhere turns a filter into a WHERE clause and its arguments.
// The soft-delete predicate is always present, and List and Count both go
// through here, so visibility and filter semantics cannot drift between them.
func buildWhere(f repository.Filter) (string, []any) {
	conds := []string{"deleted_at IS NULL"}
	args := make([]any, 0, 3)

	if f.OwnerID != "" {
		args = append(args, f.OwnerID)
		conds = append(conds, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if f.Classification != 0 {
		args = append(args, f.Classification)
		conds = append(conds, fmt.Sprintf("classification = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d)", n, n))
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

func scanDocument(row interface{ Scan(...any) error }) (*model.Document, error) {
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.Title,
		&d.Content,
		&d.Classification,
		&d.OwnerID,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	d.ClassificationName = d.Classification.Name()
	return &d, nil
}

// Create inserts a new document row and returns the stored record.
// The id and both timestamps come from the database defaults.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	q := fmt.Sprintf(`
		INSERT INTO documents (title, content, classification, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`, documentColumns)
	row := r.db.QueryRowContext(ctx, q,
		doc.Title,
		doc.Content,
		doc.Classification,
		doc.OwnerID,
	)
	return scanDocument(row)
}

// FindByID fetches a single visible document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	q := fmt.Sprintf(`
		SELECT %s
		FROM documents
		WHERE id = $1 AND deleted_at IS NULL
	`, documentColumns)
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// List returns visible documents matching the filter, most recently updated
// first, ties broken by id for a deterministic order.
func (r *DocumentPostgres) List(ctx context.Context, f repository.Filter, pq repository.PageQuery) ([]model.Document, error) {
	where, args := buildWhere(f)
	args = append(args, pq.Limit, pq.Offset)
	q := fmt.Sprintf(`
		SELECT %s
		FROM documents
		%s
		ORDER BY updated_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, documentColumns, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// Count returns the number of visible documents matching the filter.
func (r *DocumentPostgres) Count(ctx context.Context, f repository.Filter) (int, error) {
	where, args := buildWhere(f)
	q := fmt.Sprintf(`SELECT COUNT(id) FROM documents %s`, where)

	var total int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// Update applies the non-nil patch fields to a visible row and refreshes
// updated_at. Returns sql.ErrNoRows when the id is unknown or soft-deleted.
func (r *DocumentPostgres) Update(ctx context.Context, id string, patch repository.Patch) (*model.Document, error) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if patch.Title != nil {
		args = append(args, *patch.Title)
		sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
	}
	if patch.Content != nil {
		args = append(args, *patch.Content)
		sets = append(sets, fmt.Sprintf("content = $%d", len(args)))
	}
	if patch.Classification != nil {
		args = append(args, *patch.Classification)
		sets = append(sets, fmt.Sprintf("classification = $%d", len(args)))
	}
	if len(sets) == 0 {
		// Callers reject empty patches before storage; fall back to a read.
		return r.FindByID(ctx, id)
	}
	sets = append(sets, "updated_at = now()")

	args = append(args, id)
	q := fmt.Sprintf(`
		UPDATE documents
		SET %s
		WHERE id = $%d AND deleted_at IS NULL
		RETURNING %s
	`, strings.Join(sets, ", "), len(args), documentColumns)

	return scanDocument(r.db.QueryRowContext(ctx, q, args...))
}

// SoftDelete stamps deleted_at on a row that is not already deleted.
// Returns whether a row was affected.
func (r *DocumentPostgres) SoftDelete(ctx context.Context, id string) (bool, error) {
	const q = `UPDATE documents SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// HardDelete physically removes the row regardless of soft-delete state.
func (r *DocumentPostgres) HardDelete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM documents WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
