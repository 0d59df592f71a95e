package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/tankermade/internal/domain"
)

func TestCatalogList(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*name,\s*slug,\s*created_at\s+FROM\s+brands\s+ORDER\s+BY\s+name$`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "created_at"}).
			AddRow("44444444-4444-4444-4444-444444444443", "Bernat", "bernat", created).
			AddRow("44444444-4444-4444-4444-444444444444", "Caron", "caron", created))

	items, err := NewCatalogRepository(db).List(context.Background(), domain.CatalogBrands)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, uuid.MustParse("44444444-4444-4444-4444-444444444443"), items[0].ID)
	assert.Equal(t, "caron", items[1].Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogList_UnknownKind(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = NewCatalogRepository(db).List(context.Background(), "yarns")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
