package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/msomdec/tankermade/internal/domain"
	"github.com/msomdec/tankermade/internal/repository/sqlite"
)

// Verify that *sqlite.DB implements domain.Database at compile time.
var _ domain.Database = (*sqlite.DB)(nil)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNew(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("database file was not created")
	}

	var fkEnabled int
	if err := db.SqlDB.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled); err != nil {
		t.Fatalf("check foreign_keys: %v", err)
	}
	if fkEnabled != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fkEnabled)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate (idempotent): %v", err)
	}

	var count int
	err := db.SqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	if err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 migration records, got %d", count)
	}
}

func TestCatalog_List(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	want := map[domain.CatalogKind]int{
		domain.CatalogThemes:  5,
		domain.CatalogColors:  6,
		domain.CatalogSources: 5,
		domain.CatalogBrands:  4,
	}
	for kind, n := range want {
		items, err := db.Catalog().List(ctx, kind)
		if err != nil {
			t.Fatalf("List %s: %v", kind, err)
		}
		if len(items) != n {
			t.Fatalf("%s: expected %d items, got %d", kind, n, len(items))
		}
	}

	brands, _ := db.Catalog().List(ctx, domain.CatalogBrands)
	if brands[0].Name != "Bernat" || brands[0].Slug != "bernat" {
		t.Fatalf("expected brands ordered by name starting with Bernat, got %+v", brands[0])
	}
	if brands[0].CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be scanned")
	}
}

func TestCatalog_List_UnknownKind(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Catalog().List(context.Background(), domain.CatalogKind("yarns"))
	if err == nil {
		t.Fatal("expected error for unknown catalog kind")
	}
}
