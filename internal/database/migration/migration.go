package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"docstore/internal/logger"
)

type migrationStep struct {
	Name string
	SQL  string
}

// The schema mirrors what the API relies on: documents carries the
// soft-delete column and a check constraint on the classification tier.
// document_versions and document_shares are created for future expansion
// (history, sharing); no business logic touches them yet.
var steps = []migrationStep{
	{
		Name: "create_extension_pgcrypto",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id             UUID         PRIMARY KEY DEFAULT gen_random_uuid(),
  title          VARCHAR(255) NOT NULL,
  content        TEXT         NOT NULL,
  classification INTEGER      NOT NULL DEFAULT 2 CHECK (classification IN (1, 2, 3, 4)),
  owner_id       TEXT         NOT NULL,
  created_at     TIMESTAMPTZ  NOT NULL DEFAULT now(),
  updated_at     TIMESTAMPTZ  NOT NULL DEFAULT now(),
  deleted_at     TIMESTAMPTZ
);`,
	},
	{
		Name: "create_index_documents_owner_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_owner_id ON documents (owner_id);`,
	},
	{
		Name: "create_index_documents_classification",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_classification ON documents (classification);`,
	},
	{
		Name: "create_index_documents_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents (created_at);`,
	},
	{
		Name: "create_index_documents_title",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_title ON documents (title);`,
	},
	{
		Name: "create_index_documents_owner_classification",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_owner_classification ON documents (owner_id, classification);`,
	},
	{
		Name: "create_table_document_versions",
		SQL: `CREATE TABLE IF NOT EXISTS document_versions (
  id                 UUID        PRIMARY KEY DEFAULT gen_random_uuid(),
  document_id        UUID        NOT NULL REFERENCES documents (id) ON DELETE CASCADE,
  version            INTEGER     NOT NULL,
  content            TEXT        NOT NULL,
  change_description TEXT,
  created_by         TEXT        NOT NULL,
  created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (document_id, version)
);`,
	},
	{
		Name: "create_index_document_versions_document_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_document_versions_document_id ON document_versions (document_id);`,
	},
	{
		Name: "create_index_document_versions_created_by",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_document_versions_created_by ON document_versions (created_by);`,
	},
	{
		Name: "create_table_document_shares",
		SQL: `CREATE TABLE IF NOT EXISTS document_shares (
  id                  UUID        PRIMARY KEY DEFAULT gen_random_uuid(),
  document_id         UUID        NOT NULL REFERENCES documents (id) ON DELETE CASCADE,
  shared_with_user_id TEXT        NOT NULL,
  permission_level    TEXT        NOT NULL DEFAULT 'read' CHECK (permission_level IN ('read', 'write', 'admin')),
  shared_by           TEXT        NOT NULL,
  shared_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
  expires_at          TIMESTAMPTZ,
  UNIQUE (document_id, shared_with_user_id)
);`,
	},
	{
		Name: "create_index_document_shares_document_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_document_shares_document_id ON document_shares (document_id);`,
	},
	{
		Name: "create_index_document_shares_shared_with",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_document_shares_shared_with ON document_shares (shared_with_user_id);`,
	},
	{
		Name: "create_index_document_shares_expires_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_document_shares_expires_at ON document_shares (expires_at);`,
	},
}

// EnsureMigrated checks if the 'documents' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB) error {
	start := time.Now()
	log := logger.L()

	var exists bool
	query := "SELECT to_regclass('public.documents') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error().Err(err).Msg("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info().
			Dur("duration", time.Since(start)).
			Msg("schema already exists, skipping migration")
		return nil
	}

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error().
				Err(err).
				Str("migration_step", step.Name).
				Msg("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Info().
			Str("migration_step", step.Name).
			Dur("duration", time.Since(stepStart)).
			Msg("migration step applied")
	}

	log.Info().Dur("duration", time.Since(start)).Msg("migration complete")
	return nil
}
