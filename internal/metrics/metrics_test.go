package metrics

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIncEventLogged_FoldsUnresolvedNames(t *testing.T) {
	before := testutil.ToFloat64(eventsLogged.WithLabelValues("unknown", "not_found"))
	IncEventLogged("RUN", "not_found")
	after := testutil.ToFloat64(eventsLogged.WithLabelValues("unknown", "not_found"))
	assert.Equal(t, before+1, after)

	before = testutil.ToFloat64(eventsLogged.WithLabelValues("SLEEP", "success"))
	IncEventLogged("SLEEP", "success")
	assert.Equal(t, before+1, testutil.ToFloat64(eventsLogged.WithLabelValues("SLEEP", "success")))
}

func TestIncDefinitionRegistered(t *testing.T) {
	before := testutil.ToFloat64(definitionsRegistered.WithLabelValues("conflict"))
	IncDefinitionRegistered("conflict")
	assert.Equal(t, before+1, testutil.ToFloat64(definitionsRegistered.WithLabelValues("conflict")))
}

func TestHTTPMiddleware_CountsByRoute(t *testing.T) {
	e := echo.New()
	e.Use(HTTPMiddleware())
	e.GET("/events/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/events/", "200"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/events/", "200")))
}

func TestHTTPMiddleware_ReturnedErrorStatus(t *testing.T) {
	e := echo.New()
	e.Use(HTTPMiddleware())
	e.GET("/boom", func(c echo.Context) error { return echo.NewHTTPError(http.StatusTeapot) })

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/boom", "418"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/boom", "418")))
}

func TestSetDBUp(t *testing.T) {
	SetDBUp(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(postgres.up))
	SetDBUp(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(postgres.up))
}

func TestBoundedLabels_FoldsPastCap(t *testing.T) {
	b := newBoundedLabels(2)
	assert.Equal(t, "SLEEP", b.value("SLEEP"))
	assert.Equal(t, "RUN", b.value("RUN"))
	assert.Equal(t, "other", b.value("READ"))
	assert.Equal(t, "SLEEP", b.value("SLEEP"))
}

func TestIncEventLogged_BoundedCardinality(t *testing.T) {
	for i := 0; i < maxEventTypeLabels+50; i++ {
		IncEventLogged(fmt.Sprintf("CARD-%d", i), "success")
	}
	assert.LessOrEqual(t, testutil.CollectAndCount(eventsLogged), maxEventTypeLabels+4)
	assert.Positive(t, testutil.ToFloat64(eventsLogged.WithLabelValues("other", "success")))
}
