package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/rs/zerolog/log"

	evdomain "github.com/DominikBanach/Bono/internal/audit/domain"
	"github.com/DominikBanach/Bono/internal/definitions/domain"
	"github.com/DominikBanach/Bono/internal/metrics"
)

type Service struct {
	repo domain.Repository
	pub  evdomain.Publisher
}

func New(repo domain.Repository) *Service {
	return &Service{repo: repo}
}

// SetPublisher injects an audit event publisher.
func (s *Service) SetPublisher(p evdomain.Publisher) { s.pub = p }

func (s *Service) Register(ctx context.Context, name string, description *string) (def domain.Definition, err error) {
	norm := domain.NormalizeName(name)
	defer func() {
		switch {
		case err == nil:
			metrics.IncDefinitionRegistered("success")
			s.publish(ctx, evdomain.TypeDefinitionCreated, norm, map[string]string{"id": strconv.FormatInt(def.ID, 10)})
		case errors.Is(err, domain.ErrConflict):
			metrics.IncDefinitionRegistered("conflict")
			s.publish(ctx, evdomain.TypeDefinitionConflict, norm, nil)
		default:
			metrics.IncDefinitionRegistered("error")
		}
	}()
	if norm == "" {
		return domain.Definition{}, domain.ErrNameRequired
	}
	if _, err := s.repo.GetByName(ctx, norm); err == nil {
		return domain.Definition{}, domain.ErrConflict
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.Definition{}, err
	}
	// A concurrent registration can still win between the lookup and the
	// insert; the unique index turns that into ErrConflict in the repository.
	def, err = s.repo.Create(ctx, norm, description)
	if err != nil {
		return domain.Definition{}, err
	}
	log.Ctx(ctx).Debug().Int64("id", def.ID).Str("name", def.Name).Msg("event definition registered")
	return def, nil
}

func (s *Service) GetByName(ctx context.Context, name string) (domain.Definition, error) {
	norm := domain.NormalizeName(name)
	if norm == "" {
		return domain.Definition{}, domain.ErrNotFound
	}
	return s.repo.GetByName(ctx, norm)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Definition, error) {
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
