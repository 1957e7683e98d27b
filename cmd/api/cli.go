package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/DominikBanach/Bono/internal/config"
	"github.com/DominikBanach/Bono/internal/db/migrations"
)

// Process exit codes.
const (
	exitOK      = 0
	exitUsage   = 2
	exitConfig  = 3
	exitMigrate = 4
)

// Swappable for tests.
var (
	migrateRunner           = realMigrateRunner
	osExit                  = os.Exit
	stdout        io.Writer = os.Stdout
	stderr        io.Writer = os.Stderr
)

// handleCLICommand runs a one-shot command and exits. It reports false when
// args do not name a command, in which case the server should start.
func handleCLICommand(args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "migrate":
		osExit(runMigrate(args[1:]))
		return true
	case "help", "-h", "--help":
		printHelp(stdout)
		osExit(exitOK)
		return true
	}
	return false
}

func runMigrate(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "usage: api migrate up|down|status")
		return exitUsage
	}
	subcmd := args[0]
	if subcmd != "up" && subcmd != "down" && subcmd != "status" {
		fmt.Fprintf(stderr, "unknown migrate subcommand: %s\n", subcmd)
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrDatabaseURLMissing) {
			fmt.Fprintln(stderr, "DATABASE_URL must be set to run migrations")
		} else {
			fmt.Fprintf(stderr, "config error: %v\n", err)
		}
		return exitConfig
	}

	if err := migrateRunner(subcmd, cfg.DatabaseURL); err != nil {
		fmt.Fprintf(stderr, "migrate %s failed: %v\n", subcmd, err)
		return exitMigrate
	}
	return exitOK
}

func realMigrateRunner(subcmd, databaseURL string) error {
	return migrations.Open(context.Background(), databaseURL, subcmd)
}

func printHelp(w io.Writer) {
	fmt.Fprint(w, `Life Tracker API

Usage:
  api                 Start the API server (requires DATABASE_URL)
  api migrate up      Apply all pending migrations
  api migrate down    Roll back the last migration
  api migrate status  Show migration status
`)
}
