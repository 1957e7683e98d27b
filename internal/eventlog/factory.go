package eventlog

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	evdomain "github.com/DominikBanach/Bono/internal/audit/domain"
	"github.com/DominikBanach/Bono/internal/config"
	ctrl "github.com/DominikBanach/Bono/internal/eventlog/controller"
	"github.com/DominikBanach/Bono/internal/eventlog/domain"
	repo "github.com/DominikBanach/Bono/internal/eventlog/repository"
	svc "github.com/DominikBanach/Bono/internal/eventlog/service"
	rl "github.com/DominikBanach/Bono/internal/platform/ratelimit"
)

// Register wires the event log module against the definitions registry and registers HTTP routes.
func Register(e *echo.Echo, pg *pgxpool.Pool, cfg config.Config, defs domain.Resolver, store rl.Store, pub evdomain.Publisher) {
	r := repo.New(pg)
	s := svc.New(r, defs)
	s.SetPublisher(pub)
	c := ctrl.New(s)
	c.WithRateLimit(store, cfg.RateLimitWrite, cfg.RateLimitWindow)
	c.Register(e)
}
