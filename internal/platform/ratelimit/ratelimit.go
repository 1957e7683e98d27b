package ratelimit

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/DominikBanach/Bono/internal/metrics"
)

// Policy defines a simple fixed-window rate limit.
// Limit requests within Window per derived key.
type Policy struct {
	// Name is a short identifier for the limited endpoint, used for logging/metrics (e.g. "events:log").
	Name   string
	Window time.Duration
	Limit  int
	// Key builds the bucket key for this request.
	// Example: func(c echo.Context) string { return "events:" + c.RealIP() }
	Key func(echo.Context) string
}

// Store abstracts a shared counter store (e.g., Redis) for fixed-window limiting.
type Store interface {
	// Allow increments the counter for the key in the given window and returns whether the request is allowed.
	// If not allowed, retryAfterSec indicates seconds until the window resets.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (allowed bool, retryAfterSec int, err error)
}

func (p Policy) withDefaults() Policy {
	if p.Window <= 0 {
		p.Window = time.Minute
	}
	if p.Limit <= 0 {
		p.Limit = 60
	}
	return p
}

func (p Policy) key(c echo.Context) string {
	if p.Key != nil {
		return p.Key(c)
	}
	return "global"
}

// memoryStore is a process-local fixed window store.
type memoryStore struct {
	mu      sync.Mutex
	now     func() time.Time
	buckets map[string]*bucket
}

type bucket struct {
	start time.Time
	count int
}

// NewMemoryStore returns a process-local Store. For multi-instance deployments, prefer Redis.
func NewMemoryStore() Store {
	return &memoryStore{now: time.Now, buckets: make(map[string]*bucket)}
}

func (m *memoryStore) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, int, error) {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.buckets[key]
	if !ok || now.Sub(b.start) >= window {
		m.buckets[key] = &bucket{start: now, count: 1}
		return true, 0, nil
	}
	if b.count < limit {
		b.count++
		return true, 0, nil
	}
	remaining := window - now.Sub(b.start)
	return false, int((remaining + time.Second - 1) / time.Second), nil
}

// Middleware enforces p with an in-memory fixed window.
func Middleware(p Policy) echo.MiddlewareFunc {
	return MiddlewareWithStore(p, NewMemoryStore())
}

// MiddlewareWithStore uses a shared Store (e.g., Redis) for distributed rate limiting.
func MiddlewareWithStore(p Policy, s Store) echo.MiddlewareFunc {
	p = p.withDefaults()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := p.key(c)
			allowed, retryAfter, err := s.Allow(ctx, key, p.Limit, p.Window)
			if err != nil {
				// Fail-open on store errors
				log.Ctx(ctx).Warn().Err(err).Str("endpoint", p.Name).Msg("rate limit store unavailable")
				return next(c)
			}
			if allowed {
				return next(c)
			}
			metrics.IncRateLimitExceeded(p.Name, "ip")
			log.Ctx(ctx).Warn().
				Str("endpoint", p.Name).
				Str("key", key).
				Int("limit", p.Limit).
				Dur("window", p.Window).
				Int("retry_after", retryAfter).
				Msg("rate limit exceeded")
			if retryAfter > 0 {
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
			}
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
		}
	}
}

// KeyIP keys buckets by the caller's real IP. Prefix allows per-endpoint separation.
func KeyIP(prefix string) func(echo.Context) string {
	return func(c echo.Context) string {
		return prefix + ":ip:" + c.RealIP()
	}
}
