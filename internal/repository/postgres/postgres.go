// Package postgres provides PostgreSQL-backed repositories. Connections go
// through the pgx stdlib driver and the schema is managed with goose.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/msomdec/tankermade/internal/domain"
	"github.com/msomdec/tankermade/internal/repository/postgres/migrations"
)

// DB wraps a *sql.DB connected to PostgreSQL.
type DB struct {
	SqlDB   *sql.DB
	users   *UserRepository
	catalog *CatalogRepository
}

var _ domain.Database = (*DB)(nil)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// New opens a PostgreSQL database from a connection URL and verifies the
// connection.
func New(ctx context.Context, url string) (*DB, error) {
	sqlDB, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return Wrap(sqlDB), nil
}

// Wrap builds a DB around an already opened connection pool.
func Wrap(sqlDB *sql.DB) *DB {
	return &DB{
		SqlDB:   sqlDB,
		users:   NewUserRepository(sqlDB),
		catalog: NewCatalogRepository(sqlDB),
	}
}

// Migrate applies the embedded goose migrations.
func (db *DB) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db.SqlDB, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (db *DB) Close() error {
	return db.SqlDB.Close()
}

func (db *DB) Users() domain.UserRepository {
	return db.users
}

func (db *DB) Catalog() domain.CatalogRepository {
	return db.catalog
}
