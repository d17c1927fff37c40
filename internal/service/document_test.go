package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"docstore/internal/model"
	"docstore/internal/repository"
	repoMocks "docstore/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name                string
		page, limit         int
		wantPage, wantLimit int
	}{
		{"defaults", 0, 0, 1, 10},
		{"negative page", -3, 20, 1, 20},
		{"limit above cap", 2, 500, 2, 100},
		{"limit at cap", 1, 100, 1, 100},
		{"in range untouched", 4, 25, 4, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := NormalizePage(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestDocumentService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("pagination metadata", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo)

		docs := []model.Document{
			{ID: "id-1", Title: "A"},
			{ID: "id-2", Title: "B"},
		}
		mRepo.On("List", mock.Anything, repository.Filter{}, repository.PageQuery{Limit: 2, Offset: 0}).
			Return(docs, nil)
		mRepo.On("Count", mock.Anything, repository.Filter{}).Return(3, nil)

		page, err := svc.List(ctx, ListParams{Page: 1, Limit: 2})

		assert.NoError(t, err)
		assert.Len(t, page.Items, 2)
		assert.Equal(t, Pagination{
			Page:       1,
			Limit:      2,
			Total:      3,
			TotalPages: 2,
			HasNext:    true,
			HasPrev:    false,
		}, page.Pagination)
		mRepo.AssertExpectations(t)
	})

	t.Run("last page", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo)

		mRepo.On("List", mock.Anything, repository.Filter{}, repository.PageQuery{Limit: 2, Offset: 2}).
			Return([]model.Document{{ID: "id-3"}}, nil)
		mRepo.On("Count", mock.Anything, repository.Filter{}).Return(3, nil)

		page, err := svc.List(ctx, ListParams{Page: 2, Limit: 2})

		assert.NoError(t, err)
		assert.Len(t, page.Items, 1)
		assert.False(t, page.Pagination.HasNext)
		assert.True(t, page.Pagination.HasPrev)
		assert.Equal(t, 2, page.Pagination.TotalPages)
	})

	t.Run("filters are forwarded to both queries", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo)

		f := repository.Filter{
			OwnerID:        "user-1",
			Classification: model.ClassificationSecret,
			Search:         "plan",
		}
		mRepo.On("List", mock.Anything, f, mock.Anything).Return([]model.Document{}, nil)
		mRepo.On("Count", mock.Anything, f).Return(0, nil)

		_, err := svc.List(ctx, ListParams{
			OwnerID:        "user-1",
			Classification: model.ClassificationSecret,
			Search:         "plan",
		})

		assert.NoError(t, err)
		mRepo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo)

		mRepo.On("List", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("query failed"))
		mRepo.On("Count", mock.Anything, mock.Anything).Return(0, nil).Maybe()

		page, err := svc.List(ctx, ListParams{})

		assert.Error(t, err)
		assert.Nil(t, page)
	})
}

func TestDocumentService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo)

		want := &model.Document{ID: "test-id", ClassificationName: "INTERNAL"}
		mRepo.On("FindByID", ctx, "test-id").Return(want, nil)

		doc, err := svc.Get(ctx, "test-id")

		assert.NoError(t, err)
		assert.Equal(t, want, doc)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo)

		mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		doc, err := svc.Get(ctx, "missing")

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, doc)
	})

	t.Run("empty id", func(t *testing.T) {
		svc := NewDocumentService(new(repoMocks.MockDocumentRepository))

		_, err := svc.Get(ctx, "")

		assert.ErrorIs(t, err, ErrIDRequired)
	})
}

func TestDocumentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("applies defaults", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo)

		mRepo.On("Create", ctx, mock.MatchedBy(func(doc *model.Document) bool {
			return doc.Classification == model.ClassificationInternal &&
				doc.OwnerID == model.PlaceholderOwnerID
		})).Return(&model.Document{ID: "gen-id", Classification: model.ClassificationInternal}, nil)

		doc, err := svc.Create(ctx, CreateInput{Title: "T", Content: "C"})

		assert.NoError(t, err)
		assert.Equal(t, "gen-id", doc.ID)
		mRepo.AssertExpectations(t)
	})

	t.Run("explicit values win over defaults", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo)

		mRepo.On("Create", ctx, mock.MatchedBy(func(doc *model.Document) bool {
			return doc.Classification == model.ClassificationSecret && doc.OwnerID == "user-9"
		})).Return(&model.Document{ID: "gen-id"}, nil)

		_, err := svc.Create(ctx, CreateInput{
			Title:          "T",
			Content:        "C",
			Classification: model.ClassificationSecret,
			OwnerID:        "user-9",
		})

		assert.NoError(t, err)
		mRepo.AssertExpectations(t)
	})
}

func TestDocumentService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("forwards patch fields", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo)

		title := "New"
		mRepo.On("Update", ctx, "test-id", repository.Patch{Title: &title}).
			Return(&model.Document{ID: "test-id", Title: title}, nil)

		doc, err := svc.Update(ctx, "test-id", UpdateInput{Title: &title})

		assert.NoError(t, err)
		assert.Equal(t, title, doc.Title)
	})

	t.Run("empty partial is rejected before storage", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo)

		_, err := svc.Update(ctx, "test-id", UpdateInput{})

		assert.ErrorIs(t, err, ErrEmptyUpdate)
		mRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("soft-deleted target reports not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo)

		title := "New"
		mRepo.On("Update", ctx, "deleted-id", mock.Anything).Return(nil, sql.ErrNoRows)

		_, err := svc.Update(ctx, "deleted-id", UpdateInput{Title: &title})

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo)

		mRepo.On("SoftDelete", ctx, "test-id").Return(true, nil)

		assert.NoError(t, svc.Delete(ctx, "test-id"))
	})

	t.Run("nothing affected reports not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo)

		mRepo.On("SoftDelete", ctx, "gone-id").Return(false, nil)

		assert.ErrorIs(t, svc.Delete(ctx, "gone-id"), ErrNotFound)
	})

	t.Run("repeat delete is not an internal error", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo)

		mRepo.On("SoftDelete", ctx, "test-id").Return(false, nil).Twice()

		assert.ErrorIs(t, svc.Delete(ctx, "test-id"), ErrNotFound)
		assert.ErrorIs(t, svc.Delete(ctx, "test-id"), ErrNotFound)
	})
}

func TestDocumentService_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("five independent counts share the owner filter", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo)

		mRepo.On("Count", mock.Anything, repository.Filter{OwnerID: "user-1"}).Return(10, nil)
		mRepo.On("Count", mock.Anything, repository.Filter{OwnerID: "user-1", Classification: model.ClassificationPublic}).Return(1, nil)
		mRepo.On("Count", mock.Anything, repository.Filter{OwnerID: "user-1", Classification: model.ClassificationInternal}).Return(2, nil)
		mRepo.On("Count", mock.Anything, repository.Filter{OwnerID: "user-1", Classification: model.ClassificationConfidential}).Return(3, nil)
		mRepo.On("Count", mock.Anything, repository.Filter{OwnerID: "user-1", Classification: model.ClassificationSecret}).Return(4, nil)

		stats, err := svc.Stats(ctx, "user-1")

		assert.NoError(t, err)
		assert.Equal(t, 10, stats.Total)
		assert.Equal(t, ClassificationCounts{Public: 1, Internal: 2, Confidential: 3, Secret: 4}, stats.ByClassification)
		mRepo.AssertExpectations(t)
	})

	t.Run("count error propagates", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mRepo)

		mRepo.On("Count", mock.Anything, mock.Anything).Return(0, errors.New("count failed"))

		stats, err := svc.Stats(ctx, "")

		assert.Error(t, err)
		assert.Nil(t, stats)
	})
}
