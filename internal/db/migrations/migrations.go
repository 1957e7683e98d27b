// Package migrations embeds the goose SQL migrations and applies them.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var FS embed.FS

// Run executes a goose command ("up", "down" or "status") against db.
func Run(ctx context.Context, db *sql.DB, cmd string) error {
	goose.SetBaseFS(FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	switch cmd {
	case "up":
		return goose.UpContext(ctx, db, ".")
	case "down":
		return goose.DownContext(ctx, db, ".")
	case "status":
		return goose.StatusContext(ctx, db, ".")
	default:
		return fmt.Errorf("unsupported migrate subcommand %q", cmd)
	}
}

// Open runs cmd on a short-lived database/sql handle for databaseURL.
func Open(ctx context.Context, databaseURL, cmd string) error {
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL is empty")
	}
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()
	return Run(ctx, db, cmd)
}

// Up applies pending migrations. Re-running it is a no-op.
func Up(ctx context.Context, databaseURL string) error { return Open(ctx, databaseURL, "up") }
