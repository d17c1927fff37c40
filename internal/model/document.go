package model

import "time"

// Classification is the sensitivity tier attached to a document.
// Levels are ordered from least to most sensitive.
type Classification int

const (
	ClassificationPublic Classification = iota + 1
	ClassificationInternal
	ClassificationConfidential
	ClassificationSecret
)

// DefaultClassification is applied when a create request omits the field.
const DefaultClassification = ClassificationInternal

var classificationNames = map[Classification]string{
	ClassificationPublic:       "PUBLIC",
	ClassificationInternal:     "INTERNAL",
	ClassificationConfidential: "CONFIDENTIAL",
	ClassificationSecret:       "SECRET",
}

// Name returns the canonical display name for the level, or "" if unknown.
func (c Classification) Name() string {
	return classificationNames[c]
}

// Valid reports whether the level is one of the four known tiers.
func (c Classification) Valid() bool {
	return c >= ClassificationPublic && c <= ClassificationSecret
}

// PlaceholderOwnerID stands in for the authenticated principal until a real
// identity system is wired in. Resolution happens behind auth.Resolver so
// handlers never hardcode it.
const PlaceholderOwnerID = "temp-user-1"

// Validation limits shared between the validation layer and the schema.
const (
	TitleMinLen   = 1
	TitleMaxLen   = 255
	ContentMaxLen = 1_000_000
	OwnerIDMaxLen = 255
	SearchMaxLen  = 255
)

// Document is the primary entity: a classified text document with owner
// attribution and soft-delete semantics. There is no DeletedAt field here on
// purpose: soft-deleted rows are invisible to every read path, so the column
// never crosses the repository boundary.
type Document struct {
	ID                 string         `json:"id"`
	Title              string         `json:"title"`
	Content            string         `json:"content"`
	Classification     Classification `json:"classification"`
	ClassificationName string         `json:"classification_name"`
	OwnerID            string         `json:"owner_id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}
