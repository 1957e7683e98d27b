package main

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/DominikBanach/Bono/internal/config"
	"github.com/DominikBanach/Bono/internal/logger"
	"github.com/DominikBanach/Bono/internal/metrics"
	"github.com/DominikBanach/Bono/internal/platform/validation"
	"github.com/DominikBanach/Bono/internal/version"
)

// pinger is satisfied by *pgxpool.Pool and by the redis adapter below.
type pinger interface {
	Ping(ctx context.Context) error
}

// newEcho builds the Echo instance with the shared middleware stack and the
// operational routes. Domain modules register their own routes afterwards.
func newEcho(cfg config.Config, log zerolog.Logger, db, cache pinger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middlewares
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(logger.Middleware(log))
	e.Use(metrics.HTTPMiddleware())
	e.Use(middleware.Secure())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOriginFunc: func(origin string) (bool, error) {
			return matchCORSOrigin(origin, cfg.CORSAllowedOrigins), nil
		},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	e.Validator = validation.New()

	e.GET("/healthz", healthHandler(db, cache))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"version": version.String()})
	})
	return e
}

// healthHandler pings the DB and, when configured, Redis.
func healthHandler(db, cache pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 500*time.Millisecond)
		defer cancel()

		dbStatus := "ok"
		start := time.Now()
		err := db.Ping(ctx)
		metrics.ObserveDBPing(time.Since(start).Seconds())
		metrics.SetDBUp(err == nil)
		if err != nil {
			dbStatus = "down"
		}

		cacheStatus := "disabled"
		if cache != nil {
			cacheStatus = "ok"
			start = time.Now()
			err := cache.Ping(ctx)
			metrics.ObserveRedisPing(time.Since(start).Seconds())
			metrics.SetRedisUp(err == nil)
			if err != nil {
				cacheStatus = "down"
			}
		}

		status, code := "ok", http.StatusOK
		if dbStatus != "ok" {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		return c.JSON(code, map[string]any{
			"status":  status,
			"time":    time.Now().UTC().Format(time.RFC3339),
			"db":      dbStatus,
			"cache":   cacheStatus,
			"version": version.String(),
		})
	}
}

// matchCORSOrigin reports whether origin is allowed by patterns. Patterns are
// "*", an exact origin, or a scheme with a leading wildcard host label such as
// "https://*.example.com" (which does not match the bare domain).
func matchCORSOrigin(origin string, patterns []string) bool {
	o, err := url.Parse(origin)
	if err != nil || o.Host == "" {
		return false
	}
	for _, p := range patterns {
		if p == "*" {
			return true
		}
		if p == origin {
			return true
		}
		if !strings.Contains(p, "*.") {
			continue
		}
		pu, err := url.Parse(strings.Replace(p, "*.", "wildcard.", 1))
		if err != nil || pu.Scheme != o.Scheme {
			continue
		}
		suffix := strings.TrimPrefix(pu.Host, "wildcard")
		if strings.HasSuffix(o.Host, suffix) && len(o.Host) > len(suffix) {
			return true
		}
	}
	return false
}
