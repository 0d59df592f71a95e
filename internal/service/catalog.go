package service

import (
	"context"
	"fmt"

	"github.com/msomdec/tankermade/internal/domain"
)

// CatalogService serves the shared reference data (themes, colors, sources, brands).
type CatalogService struct {
	catalog domain.CatalogRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(catalog domain.CatalogRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// List returns every item of kind ordered by name.
func (s *CatalogService) List(ctx context.Context, kind domain.CatalogKind) ([]domain.CatalogItem, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown catalog %q", domain.ErrInvalidInput, kind)
	}
	items, err := s.catalog.List(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	return items, nil
}
