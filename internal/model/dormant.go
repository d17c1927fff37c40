package model

import "time"

// Permission is the grant level used by document shares.
type Permission string

const (
	PermissionRead  Permission = "read"
	PermissionWrite Permission = "write"
	PermissionAdmin Permission = "admin"
)

// DocumentVersion and DocumentShare are dormant entities: their tables are
// created by the migrations and the types are kept for when document history
// and sharing are activated, but no business logic touches them yet. Do not
// attach behavior here without a scope decision (see DESIGN.md).

// DocumentVersion is a content snapshot of a document, unique per
// (document_id, version).
type DocumentVersion struct {
	ID                string    `json:"id"`
	DocumentID        string    `json:"document_id"`
	Version           int       `json:"version"`
	Content           string    `json:"content"`
	ChangeDescription string    `json:"change_description,omitempty"`
	CreatedBy         string    `json:"created_by"`
	CreatedAt         time.Time `json:"created_at"`
}

// DocumentShare grants a permission level on a document to another principal,
// unique per (document_id, shared_with_user_id), optionally time-limited.
type DocumentShare struct {
	ID               string     `json:"id"`
	DocumentID       string     `json:"document_id"`
	SharedWithUserID string     `json:"shared_with_user_id"`
	PermissionLevel  Permission `json:"permission_level"`
	SharedBy         string     `json:"shared_by"`
	SharedAt         time.Time  `json:"shared_at"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
}
