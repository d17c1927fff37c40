package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"docstore/internal/model"
	"docstore/internal/repository"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var documentCols = []string{"id", "title", "content", "classification", "owner_id", "created_at", "updated_at"}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	doc := &model.Document{
		Title:          "Quarterly Plan",
		Content:        "Roadmap for next quarter",
		Classification: model.ClassificationConfidential,
		OwnerID:        "user-1",
	}

	rows := sqlmock.NewRows(documentCols).
		AddRow("gen-uuid", doc.Title, doc.Content, int(doc.Classification), doc.OwnerID, now, now)

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.Title, doc.Content, doc.Classification, doc.OwnerID).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, doc)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "gen-uuid", result.ID)
	assert.Equal(t, "CONFIDENTIAL", result.ClassificationName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(documentCols).
			AddRow("test-id", "Handbook", "policies", 2, "user-1", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = (.+) AND deleted_at IS NULL").
			WithArgs("test-id").
			WillReturnRows(rows)

		doc, err := repo.FindByID(ctx, "test-id")

		assert.NoError(t, err)
		assert.NotNil(t, doc)
		assert.Equal(t, "test-id", doc.ID)
		assert.Equal(t, "INTERNAL", doc.ClassificationName)
	})

	t.Run("not found or soft-deleted", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = (.+) AND deleted_at IS NULL").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, doc)
	})
}

func TestDocumentPostgres_List(t *testing.T) {
	ctx := context.Background()

	t.Run("no filters", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewDocumentPostgres(db)

		rows := sqlmock.NewRows(documentCols).
			AddRow("id-1", "B", "b", 1, "user-1", time.Now(), time.Now()).
			AddRow("id-2", "A", "a", 2, "user-2", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE deleted_at IS NULL ORDER BY updated_at DESC, id DESC").
			WithArgs(10, 0).
			WillReturnRows(rows)

		items, err := repo.List(ctx, repository.Filter{}, repository.PageQuery{Limit: 10, Offset: 0})

		assert.NoError(t, err)
		assert.Len(t, items, 2)
		assert.Equal(t, "PUBLIC", items[0].ClassificationName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("all filters", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewDocumentPostgres(db)

		rows := sqlmock.NewRows(documentCols).
			AddRow("id-1", "Report", "numbers", 3, "user-1", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) WHERE deleted_at IS NULL AND owner_id = (.+) AND classification = (.+) AND \\(title ILIKE (.+) OR content ILIKE (.+)\\)").
			WithArgs("user-1", model.ClassificationConfidential, "%report%", 5, 10).
			WillReturnRows(rows)

		f := repository.Filter{
			OwnerID:        "user-1",
			Classification: model.ClassificationConfidential,
			Search:         "report",
		}
		items, err := repo.List(ctx, f, repository.PageQuery{Limit: 5, Offset: 10})

		assert.NoError(t, err)
		assert.Len(t, items, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty result is a slice, not nil", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewDocumentPostgres(db)

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE deleted_at IS NULL").
			WithArgs(10, 0).
			WillReturnRows(sqlmock.NewRows(documentCols))

		items, err := repo.List(ctx, repository.Filter{}, repository.PageQuery{Limit: 10, Offset: 0})

		assert.NoError(t, err)
		assert.NotNil(t, items)
		assert.Len(t, items, 0)
	})
}

func TestDocumentPostgres_Count(t *testing.T) {
	ctx := context.Background()

	t.Run("no filters", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewDocumentPostgres(db)

		mock.ExpectQuery("SELECT COUNT\\(id\\) FROM documents WHERE deleted_at IS NULL").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		total, err := repo.Count(ctx, repository.Filter{})

		assert.NoError(t, err)
		assert.Equal(t, 7, total)
	})

	t.Run("same predicate arguments as List", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewDocumentPostgres(db)

		// The filter must translate to exactly the same argument set List uses.
		mock.ExpectQuery("SELECT COUNT\\(id\\) FROM documents WHERE deleted_at IS NULL AND owner_id = (.+) AND classification = (.+) AND \\(title ILIKE (.+) OR content ILIKE (.+)\\)").
			WithArgs("user-1", model.ClassificationSecret, "%plan%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		f := repository.Filter{
			OwnerID:        "user-1",
			Classification: model.ClassificationSecret,
			Search:         "plan",
		}
		total, err := repo.Count(ctx, f)

		assert.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBuildWhere(t *testing.T) {
	t.Run("always excludes soft-deleted", func(t *testing.T) {
		where, args := buildWhere(repository.Filter{})
		assert.Equal(t, "WHERE deleted_at IS NULL", where)
		assert.Empty(t, args)
	})

	t.Run("search argument is shared by both ILIKE terms", func(t *testing.T) {
		where, args := buildWhere(repository.Filter{Search: "needle"})
		assert.Contains(t, where, "title ILIKE $1 OR content ILIKE $1")
		assert.Equal(t, []any{"%needle%"}, args)
	})

	t.Run("placeholders are numbered in filter order", func(t *testing.T) {
		where, args := buildWhere(repository.Filter{
			OwnerID:        "user-1",
			Classification: model.ClassificationPublic,
			Search:         "x",
		})
		assert.Contains(t, where, "owner_id = $1")
		assert.Contains(t, where, "classification = $2")
		assert.Contains(t, where, "ILIKE $3")
		assert.Len(t, args, 3)
	})
}

func TestDocumentPostgres_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("patches only provided fields", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewDocumentPostgres(db)

		title := "New Title"
		rows := sqlmock.NewRows(documentCols).
			AddRow("test-id", title, "unchanged", 2, "user-1", time.Now(), time.Now())

		mock.ExpectQuery("UPDATE documents SET title = (.+), updated_at = now\\(\\) WHERE id = (.+) AND deleted_at IS NULL").
			WithArgs(title, "test-id").
			WillReturnRows(rows)

		doc, err := repo.Update(ctx, "test-id", repository.Patch{Title: &title})

		assert.NoError(t, err)
		assert.Equal(t, title, doc.Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("full patch", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewDocumentPostgres(db)

		title := "T"
		content := "C"
		cls := model.ClassificationSecret
		rows := sqlmock.NewRows(documentCols).
			AddRow("test-id", title, content, int(cls), "user-1", time.Now(), time.Now())

		mock.ExpectQuery("UPDATE documents SET title = (.+), content = (.+), classification = (.+), updated_at = now\\(\\)").
			WithArgs(title, content, cls, "test-id").
			WillReturnRows(rows)

		doc, err := repo.Update(ctx, "test-id", repository.Patch{
			Title:          &title,
			Content:        &content,
			Classification: &cls,
		})

		assert.NoError(t, err)
		assert.Equal(t, "SECRET", doc.ClassificationName)
	})

	t.Run("soft-deleted target reports no rows", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewDocumentPostgres(db)

		title := "New Title"
		mock.ExpectQuery("UPDATE documents SET").
			WithArgs(title, "deleted-id").
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.Update(ctx, "deleted-id", repository.Patch{Title: &title})

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, doc)
	})

	t.Run("empty patch falls back to a read", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewDocumentPostgres(db)

		rows := sqlmock.NewRows(documentCols).
			AddRow("test-id", "Title", "content", 2, "user-1", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = (.+) AND deleted_at IS NULL").
			WithArgs("test-id").
			WillReturnRows(rows)

		doc, err := repo.Update(ctx, "test-id", repository.Patch{})

		assert.NoError(t, err)
		assert.Equal(t, "Title", doc.Title)
	})
}

func TestDocumentPostgres_SoftDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("affected", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewDocumentPostgres(db)

		mock.ExpectExec("UPDATE documents SET deleted_at = now\\(\\) WHERE id = (.+) AND deleted_at IS NULL").
			WithArgs("test-id").
			WillReturnResult(sqlmock.NewResult(0, 1))

		deleted, err := repo.SoftDelete(ctx, "test-id")

		assert.NoError(t, err)
		assert.True(t, deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already deleted or unknown id is not an error", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewDocumentPostgres(db)

		mock.ExpectExec("UPDATE documents SET deleted_at = now\\(\\)").
			WithArgs("gone-id").
			WillReturnResult(sqlmock.NewResult(0, 0))

		deleted, err := repo.SoftDelete(ctx, "gone-id")

		assert.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestDocumentPostgres_HardDelete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM documents WHERE id = ?").
		WithArgs("test-id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.HardDelete(ctx, "test-id")

	assert.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
