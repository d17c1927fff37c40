// Package auth isolates current-principal resolution behind a single seam.
// Today the only implementation is a static placeholder; swapping in a real
// identity system means providing another Resolver, with no handler changes.
package auth

import (
	"github.com/gofiber/fiber/v2"

	"docstore/internal/model"
)

// Resolver yields the principal acting on a request.
type Resolver interface {
	Resolve(c *fiber.Ctx) string
}

// Static resolves every request to a fixed principal.
type Static struct {
	ID string
}

// NewPlaceholder returns the resolver used until real authentication lands.
func NewPlaceholder() Static {
	return Static{ID: model.PlaceholderOwnerID}
}

func (s Static) Resolve(_ *fiber.Ctx) string {
	return s.ID
}
