package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/DominikBanach/Bono/internal/audit/domain"
)

// Logger publishes audit events as structured log lines on the request
// logger, so they carry the request id of the write that caused them.
type Logger struct {
	level zerolog.Level
}

func NewLogger() *Logger { return &Logger{level: zerolog.InfoLevel} }

func (l *Logger) Publish(ctx context.Context, e domain.Event) error {
	meta := zerolog.Dict()
	for k, v := range e.Meta {
		meta = meta.Str(k, v)
	}
	log.Ctx(ctx).WithLevel(l.level).
		Str("audit_id", e.ID.String()).
		Str("type", e.Type).
		Str("subject", e.Subject).
		Dict("meta", meta).
		Time("at", e.Time).
		Msg("audit")
	return nil
}
