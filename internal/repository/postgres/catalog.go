package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/msomdec/tankermade/internal/domain"
)

// CatalogRepository implements domain.CatalogRepository using PostgreSQL.
type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

var catalogQueries = map[domain.CatalogKind]string{
	domain.CatalogThemes:  `SELECT id, name, slug, created_at FROM themes ORDER BY name`,
	domain.CatalogColors:  `SELECT id, name, slug, created_at FROM colors ORDER BY name`,
	domain.CatalogSources: `SELECT id, name, slug, created_at FROM sources ORDER BY name`,
	domain.CatalogBrands:  `SELECT id, name, slug, created_at FROM brands ORDER BY name`,
}

func (r *CatalogRepository) List(ctx context.Context, kind domain.CatalogKind) ([]domain.CatalogItem, error) {
	query, ok := catalogQueries[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown catalog %q", domain.ErrInvalidInput, kind)
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var items []domain.CatalogItem
	for rows.Next() {
		var it domain.CatalogItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Slug, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", kind, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
