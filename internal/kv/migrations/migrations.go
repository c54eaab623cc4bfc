// Package migrations embeds the schema for the SQL-backed kv drivers.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

// Up applies the migrations under dir. Each call builds its own goose
// provider, so stores can be opened concurrently.
func Up(ctx context.Context, db *sql.DB, dialect goose.Dialect, dir string) error {
	fsys, err := fs.Sub(Migrations, dir)
	if err != nil {
		return fmt.Errorf("open %s migrations: %w", dir, err)
	}
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("create %s migration provider: %w", dir, err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return err
	}
	return nil
}
