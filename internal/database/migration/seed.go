package migration

import (
	"context"
	"database/sql"

	"docstore/internal/logger"
	"docstore/internal/model"
)

type seedDocument struct {
	ID             string
	Title          string
	Content        string
	Classification model.Classification
	OwnerID        string
}

var seedDocuments = []seedDocument{
	{
		ID:             "550e8400-e29b-41d4-a716-446655440001",
		Title:          "Company Handbook",
		Content:        "This document contains the company policies and procedures that all employees must follow. It includes information about work hours, dress code, vacation policies, and code of conduct.",
		Classification: model.ClassificationInternal,
		OwnerID:        "user-1",
	},
	{
		ID:             "550e8400-e29b-41d4-a716-446655440002",
		Title:          "Public API Documentation",
		Content:        "Complete documentation for our public REST API. This includes endpoint descriptions, request/response examples, authentication methods, and rate limiting information.",
		Classification: model.ClassificationPublic,
		OwnerID:        "user-2",
	},
	{
		ID:             "550e8400-e29b-41d4-a716-446655440003",
		Title:          "Financial Report Q4 2024",
		Content:        "Confidential financial analysis for Q4 2024 including revenue breakdowns, expense reports, and profit margins. This document contains sensitive financial information.",
		Classification: model.ClassificationConfidential,
		OwnerID:        "user-1",
	},
	{
		ID:             "550e8400-e29b-41d4-a716-446655440004",
		Title:          "Security Incident Response Plan",
		Content:        "Classified procedures for responding to security incidents, including escalation paths, containment steps, and communication protocols. Access is restricted.",
		Classification: model.ClassificationSecret,
		OwnerID:        "user-2",
	},
}

// Seed replaces the documents table content with a fixed sample set.
// Development use only; the caller is responsible for gating on the
// deployment mode.
func Seed(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return err
	}

	const q = `
		INSERT INTO documents (id, title, content, classification, owner_id)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, doc := range seedDocuments {
		if _, err := db.ExecContext(ctx, q,
			doc.ID,
			doc.Title,
			doc.Content,
			doc.Classification,
			doc.OwnerID,
		); err != nil {
			return err
		}
	}

	logger.L().Info().Int("documents", len(seedDocuments)).Msg("sample documents seeded")
	return nil
}
