package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CatalogKind selects one of the shared reference tables.
type CatalogKind string

const (
	CatalogThemes  CatalogKind = "themes"
	CatalogColors  CatalogKind = "colors"
	CatalogSources CatalogKind = "sources"
	CatalogBrands  CatalogKind = "brands"
)

// Valid reports whether k names a known reference table.
func (k CatalogKind) Valid() bool {
	switch k {
	case CatalogThemes, CatalogColors, CatalogSources, CatalogBrands:
		return true
	}
	return false
}

// CatalogItem is a row of reference data (a theme, color, source or brand).
type CatalogItem struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	CreatedAt time.Time
}

type CatalogRepository interface {
	// List returns all items of a kind ordered by name. Kind must be valid.
	List(ctx context.Context, kind CatalogKind) ([]CatalogItem, error)
}
