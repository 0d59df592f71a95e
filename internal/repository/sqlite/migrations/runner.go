package migrations

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strings"
)

var (
	// ErrUnknownMigration means the database records a migration this binary
	// does not embed, typically because a newer build already ran against it.
	ErrUnknownMigration = errors.New("unknown migration recorded")
	// ErrChecksumMismatch means an applied migration file was edited afterwards.
	ErrChecksumMismatch = errors.New("migration checksum mismatch")
)

// Run applies every embedded migration not yet recorded in schema_migrations,
// in filename order, each inside its own transaction. Recorded migrations
// must still be embedded with unchanged content.
func Run(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename   TEXT PRIMARY KEY,
			checksum   TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("ensure migrations table: %w", err)
	}

	recorded, err := checksums(ctx, db)
	if err != nil {
		return fmt.Errorf("get applied migrations: %w", err)
	}

	files, err := Files()
	if err != nil {
		return fmt.Errorf("list migration files: %w", err)
	}
	for filename := range recorded {
		if !slices.Contains(files, filename) {
			return fmt.Errorf("%w: %s", ErrUnknownMigration, filename)
		}
	}

	var count int
	for _, filename := range files {
		content, err := fs.ReadFile(FS, filename)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", filename, err)
		}
		sum := checksum(content)

		if prev, ok := recorded[filename]; ok {
			if prev != sum {
				return fmt.Errorf("%w: %s", ErrChecksumMismatch, filename)
			}
			continue
		}
		if err := apply(ctx, db, filename, string(content), sum); err != nil {
			return fmt.Errorf("apply migration %s: %w", filename, err)
		}
		slog.Info("migration applied", "file", filename)
		count++
	}
	slog.Debug("migrations up to date", "applied", count, "total", len(files))
	return nil
}

// Applied returns the recorded migration filenames in order.
func Applied(ctx context.Context, db *sql.DB) ([]string, error) {
	recorded, err := checksums(ctx, db)
	if err != nil {
		return nil, err
	}
	applied := make([]string, 0, len(recorded))
	for filename := range recorded {
		applied = append(applied, filename)
	}
	slices.Sort(applied)
	return applied, nil
}

// Files lists the embedded *.sql files sorted by name.
func Files() ([]string, error) {
	files, err := fs.Glob(FS, "*.sql")
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

func checksums(ctx context.Context, db *sql.DB) (map[string]string, error) {
	rows, err := db.QueryContext(ctx, "SELECT filename, checksum FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recorded := make(map[string]string)
	for rows.Next() {
		var filename, sum string
		if err := rows.Scan(&filename, &sum); err != nil {
			return nil, err
		}
		recorded[filename] = sum
	}
	return recorded, rows.Err()
}

func checksum(content []byte) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(string(content))))
	return hex.EncodeToString(sum[:])
}

func apply(ctx context.Context, db *sql.DB, filename, content, sum string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, content); err != nil {
		return fmt.Errorf("execute sql: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (filename, checksum) VALUES (?, ?)", filename, sum); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}
	return tx.Commit()
}
