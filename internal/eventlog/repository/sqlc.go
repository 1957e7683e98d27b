package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	db "github.com/DominikBanach/Bono/internal/db/sqlc"
	"github.com/DominikBanach/Bono/internal/eventlog/domain"
)

type SQLCRepository struct{ q *db.Queries }

func New(pg *pgxpool.Pool) *SQLCRepository { return &SQLCRepository{q: db.New(pg)} }

func toPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func (r *SQLCRepository) Create(ctx context.Context, definitionID int64, ts time.Time) (domain.Occurrence, error) {
	row, err := r.q.CreateEventLog(ctx, db.CreateEventLogParams{
		EventDefID: definitionID,
		Timestamp:  toPgTimestamptz(ts),
	})
	if err != nil {
		return domain.Occurrence{}, fmt.Errorf("create event log: %w", err)
	}
	return domain.Occurrence{ID: row.ID, DefinitionID: row.EventDefID, Timestamp: row.Timestamp.Time.UTC()}, nil
}

func (r *SQLCRepository) List(ctx context.Context) ([]domain.View, error) {
	rows, err := r.q.ListEventLogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list event logs: %w", err)
	}
	out := make([]domain.View, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.View{ID: row.ID, EventType: row.EventType, Timestamp: row.Timestamp.Time.UTC()})
	}
	return out, nil
}
