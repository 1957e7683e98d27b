package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/DominikBanach/Bono/internal/definitions/domain"
	rl "github.com/DominikBanach/Bono/internal/platform/ratelimit"
	"github.com/DominikBanach/Bono/internal/platform/validation"
)

// ConflictMessage is returned when a normalized name is already registered.
const ConflictMessage = "Definition already exists."

type Controller struct {
	svc domain.Service
	// Injected concerns
	rlStore  rl.Store
	rlLimit  int
	rlWindow time.Duration
}

func New(svc domain.Service) *Controller {
	return &Controller{svc: svc}
}

// WithRateLimit limits registrations per client IP using store.
func (h *Controller) WithRateLimit(store rl.Store, limit int, window time.Duration) *Controller {
	h.rlStore, h.rlLimit, h.rlWindow = store, limit, window
	return h
}

// Register mounts the registry endpoints. Both the slash and no-slash forms are served.
func (h *Controller) Register(e *echo.Echo) {
	var postMW []echo.MiddlewareFunc
	if h.rlStore != nil {
		policy := rl.Policy{Name: "definitions:create", Window: h.rlWindow, Limit: h.rlLimit, Key: rl.KeyIP("definitions:create")}
		postMW = append(postMW, rl.MiddlewareWithStore(policy, h.rlStore))
	}
	for _, p := range []string{"/event-definitions/", "/event-definitions"} {
		e.POST(p, h.createDefinition, postMW...)
		e.GET(p, h.listDefinitions)
	}
}

type createDefinitionReq struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

type definitionResp struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func toResp(d domain.Definition) definitionResp {
	return definitionResp{ID: d.ID, Name: d.Name, Description: d.Description}
}

// Create Definition godoc
// @Summary      Register event definition
// @Description  Registers a named event type. Names are stored uppercase and must be unique.
// @Tags         definitions
// @Accept       json
// @Produce      json
// @Param        body  body  createDefinitionReq  true  "definition"
// @Success      200   {object}  definitionResp
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  validation.ErrorBody
// @Router       /event-definitions/ [post]
func (h *Controller) createDefinition(c echo.Context) error {
	var req createDefinitionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, validation.ErrorResponse(err))
	}
	def, err := h.svc.Register(c.Request().Context(), req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": ConflictMessage})
		case errors.Is(err, domain.ErrNameRequired):
			return c.JSON(http.StatusUnprocessableEntity, validation.FieldError("name", "required"))
		}
		log.Ctx(c.Request().Context()).Error().Err(err).Msg("register event definition")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, toResp(def))
}

// List Definitions godoc
// @Summary      List event definitions
// @Tags         definitions
// @Produce      json
// @Success      200  {array}  definitionResp
// @Router       /event-definitions/ [get]
func (h *Controller) listDefinitions(c echo.Context) error {
	defs, err := h.svc.ListAll(c.Request().Context())
	if err != nil {
		log.Ctx(c.Request().Context()).Error().Err(err).Msg("list event definitions")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	items := make([]definitionResp, 0, len(defs))
	for _, d := range defs {
		items = append(items, toResp(d))
	}
	return c.JSON(http.StatusOK, items)
}
