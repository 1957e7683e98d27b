package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	db "github.com/DominikBanach/Bono/internal/db/sqlc"
	"github.com/DominikBanach/Bono/internal/definitions/domain"
)

const pgUniqueViolation = "23505"

type SQLCRepository struct{ q *db.Queries }

func New(pg *pgxpool.Pool) *SQLCRepository { return &SQLCRepository{q: db.New(pg)} }

func toPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func fromPgText(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

func toDomain(row db.EventDefinition) domain.Definition {
	return domain.Definition{ID: row.ID, Name: row.Name, Description: fromPgText(row.Description)}
}

func (r *SQLCRepository) Create(ctx context.Context, name string, description *string) (domain.Definition, error) {
	row, err := r.q.CreateEventDefinition(ctx, db.CreateEventDefinitionParams{
		Name:        name,
		Description: toPgText(description),
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.Definition{}, domain.ErrConflict
		}
		return domain.Definition{}, fmt.Errorf("create event definition: %w", err)
	}
	return toDomain(row), nil
}

func (r *SQLCRepository) GetByName(ctx context.Context, name string) (domain.Definition, error) {
	row, err := r.q.GetEventDefinitionByName(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Definition{}, domain.ErrNotFound
		}
		return domain.Definition{}, fmt.Errorf("get event definition %q: %w", name, err)
	}
	return toDomain(row), nil
}

func (r *SQLCRepository) List(ctx context.Context) ([]domain.Definition, error) {
	rows, err := r.q.ListEventDefinitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list event definitions: %w", err)
	}
	out := make([]domain.Definition, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out, nil
}
