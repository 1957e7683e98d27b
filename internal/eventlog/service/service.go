package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	evdomain "github.com/DominikBanach/Bono/internal/audit/domain"
	ddomain "github.com/DominikBanach/Bono/internal/definitions/domain"
	"github.com/DominikBanach/Bono/internal/eventlog/domain"
	"github.com/DominikBanach/Bono/internal/metrics"
)

type Service struct {
	repo domain.Repository
	defs domain.Resolver
	pub  evdomain.Publisher
	now  func() time.Time
}

func New(repo domain.Repository, defs domain.Resolver) *Service {
	return &Service{repo: repo, defs: defs, now: time.Now}
}

// SetPublisher injects an audit event publisher.
func (s *Service) SetPublisher(p evdomain.Publisher) { s.pub = p }

func (s *Service) LogEvent(ctx context.Context, eventTypeName string, ts *time.Time) (v domain.View, err error) {
	norm := ddomain.NormalizeName(eventTypeName)
	defer func() {
		var nf *domain.NotFoundError
		switch {
		case err == nil:
			metrics.IncEventLogged(v.EventType, "success")
			s.publish(ctx, evdomain.TypeEventLogged, v.EventType, map[string]string{
				"id":        strconv.FormatInt(v.ID, 10),
				"timestamp": domain.FormatTimestamp(v.Timestamp),
			})
		case errors.As(err, &nf):
			metrics.IncEventLogged(norm, "not_found")
			s.publish(ctx, evdomain.TypeEventNotFound, norm, nil)
		default:
			metrics.IncEventLogged(norm, "error")
		}
	}()

	def, err := s.defs.GetByName(ctx, norm)
	if err != nil {
		if errors.Is(err, ddomain.ErrNotFound) {
			return domain.View{}, &domain.NotFoundError{Name: norm}
		}
		return domain.View{}, err
	}

	at := s.now().UTC()
	if ts != nil {
		at = ts.UTC()
	}
	occ, err := s.repo.Create(ctx, def.ID, at)
	if err != nil {
		return domain.View{}, err
	}
	return domain.View{ID: occ.ID, EventType: def.Name, Timestamp: occ.Timestamp}, nil
}

func (s *Service) ListAll(ctx context.Context) ([]domain.View, error) {
	return s.repo.List(ctx)
}

func (s *Service) publish(ctx context.Context, typ, subject string, meta map[string]string) {
	if s.pub == nil {
		return
	}
	if err := s.pub.Publish(ctx, evdomain.NewEvent(typ, subject, meta)); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("type", typ).Msg("audit publish failed")
	}
}
