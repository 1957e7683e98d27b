package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/DominikBanach/Bono/internal/eventlog/domain"
	rl "github.com/DominikBanach/Bono/internal/platform/ratelimit"
	"github.com/DominikBanach/Bono/internal/platform/validation"
)

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

// WithRateLimit limits event logging per client IP using store.
func (h *Controller) WithRateLimit(store rl.Store, limit int, window time.Duration) *Controller {
	h.rlStore, h.rlLimit, h.rlWindow = store, limit, window
	return h
}

// Register mounts the event log endpoints. Both the slash and no-slash forms are served.
func (h *Controller) Register(e *echo.Echo) {
	var postMW []echo.MiddlewareFunc
	if h.rlStore != nil {
		policy := rl.Policy{Name: "events:log", Window: h.rlWindow, Limit: h.rlLimit, Key: rl.KeyIP("events:log")}
		postMW = append(postMW, rl.MiddlewareWithStore(policy, h.rlStore))
	}
	for _, p := range []string{"/events/", "/events"} {
		e.POST(p, h.logEvent, postMW...)
		e.GET(p, h.listEvents)
	}
}

type logEventReq struct {
	EventTypeName string            `json:"event_type_name" validate:"required"`
	Timestamp     *domain.Timestamp `json:"timestamp"`
}

type eventResp struct {
	ID        int64            `json:"id"`
	EventType string           `json:"event_type"`
	Timestamp domain.Timestamp `json:"timestamp"`
}

func toResp(v domain.View) eventResp {
	return eventResp{ID: v.ID, EventType: v.EventType, Timestamp: domain.Timestamp(v.Timestamp)}
}

// Log Event godoc
// @Summary      Log event occurrence
// @Description  Records an occurrence of a registered event type. Timestamps without offset are taken as UTC; omitted timestamps default to now.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        body  body  logEventReq  true  "event"
// @Success      200   {object}  eventResp
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  validation.ErrorBody
// @Router       /events/ [post]
func (h *Controller) logEvent(c echo.Context) error {
	var req logEventReq
	if err := c.Bind(&req); err != nil {
		if errors.Is(err, domain.ErrInvalidTimestamp) {
			return c.JSON(http.StatusUnprocessableEntity, validation.FieldError("timestamp", "datetime"))
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, validation.ErrorResponse(err))
	}
	ctx := c.Request().Context()
	v, err := h.svc.LogEvent(ctx, req.EventTypeName, (*time.Time)(req.Timestamp))
	if err != nil {
		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": nf.Error()})
		}
		log.Ctx(ctx).Error().Err(err).Msg("log event")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, toResp(v))
}

// List Events godoc
// @Summary      List event occurrences
// @Tags         events
// @Produce      json
// @Success      200  {array}  eventResp
// @Router       /events/ [get]
func (h *Controller) listEvents(c echo.Context) error {
	views, err := h.svc.ListAll(c.Request().Context())
	if err != nil {
		log.Ctx(c.Request().Context()).Error().Err(err).Msg("list events")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	items := make([]eventResp, 0, len(views))
	for _, v := range views {
		items = append(items, toResp(v))
	}
	return c.JSON(http.StatusOK, items)
}
