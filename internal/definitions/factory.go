package definitions

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	evdomain "github.com/DominikBanach/Bono/internal/audit/domain"
	"github.com/DominikBanach/Bono/internal/config"
	ctrl "github.com/DominikBanach/Bono/internal/definitions/controller"
	"github.com/DominikBanach/Bono/internal/definitions/domain"
	repo "github.com/DominikBanach/Bono/internal/definitions/repository"
	svc "github.com/DominikBanach/Bono/internal/definitions/service"
	rl "github.com/DominikBanach/Bono/internal/platform/ratelimit"
)

// Register wires the definitions module, registers HTTP routes and returns
// the registry so other modules can resolve names through it.
func Register(e *echo.Echo, pg *pgxpool.Pool, cfg config.Config, store rl.Store, pub evdomain.Publisher) domain.Service {
	r := repo.New(pg)
	s := svc.New(r)
	s.SetPublisher(pub)
	c := ctrl.New(s)
	c.WithRateLimit(store, cfg.RateLimitWrite, cfg.RateLimitWindow)
	c.Register(e)
	return s
}
