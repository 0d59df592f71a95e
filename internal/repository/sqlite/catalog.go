package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/msomdec/tankermade/internal/domain"
)

// catalogRepo implements domain.CatalogRepository using SQLite.
type catalogRepo struct {
	db *sql.DB
}

var catalogTables = map[domain.CatalogKind]string{
	domain.CatalogThemes:  "themes",
	domain.CatalogColors:  "colors",
	domain.CatalogSources: "sources",
	domain.CatalogBrands:  "brands",
}

func (r *catalogRepo) List(ctx context.Context, kind domain.CatalogKind) ([]domain.CatalogItem, error) {
	table, ok := catalogTables[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown catalog %q", domain.ErrInvalidInput, kind)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, slug, created_at FROM `+table+` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	var items []domain.CatalogItem
	for rows.Next() {
		var it domain.CatalogItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Slug, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
