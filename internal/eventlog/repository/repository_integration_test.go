package repository

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DominikBanach/Bono/internal/db/migrations"
	drepo "github.com/DominikBanach/Bono/internal/definitions/repository"
)

func TestRepository_CreateList_Integration(t *testing.T) {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("skipping integration test: DATABASE_URL not set")
	}

	ctx := context.Background()
	if err := migrations.Up(ctx, os.Getenv("DATABASE_URL")); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	pool, err := pgxpool.New(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		t.Fatalf("failed to connect to db: %v", err)
	}
	defer pool.Close()

	def, err := drepo.New(pool).Create(ctx, "ITEST-"+strings.ToUpper(uuid.New().String()), nil)
	if err != nil {
		t.Fatalf("create definition: %v", err)
	}

	repo := New(pool)
	ts := time.Date(2024, 1, 1, 2, 0, 0, 0, time.FixedZone("", 2*3600))
	occ, err := repo.Create(ctx, def.ID, ts)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if occ.DefinitionID != def.ID || !occ.Timestamp.Equal(ts) {
		t.Fatalf("unexpected occurrence: %+v", occ)
	}
	if occ.Timestamp.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %s", occ.Timestamp.Location())
	}

	// Foreign key rejects dangling references
	if _, err := repo.Create(ctx, -1, ts); err == nil {
		t.Fatalf("expected foreign key violation for unknown definition id")
	}

	views, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	found := false
	for _, v := range views {
		if v.ID == occ.ID {
			found = true
			if v.EventType != def.Name {
				t.Fatalf("expected event type %s got %s", def.Name, v.EventType)
			}
		}
	}
	if !found {
		t.Fatalf("created occurrence not found in list results")
	}
}
