package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// rateLimitExceeded counts HTTP 429 events from the rate limit middleware.
	// Labels:
	// - endpoint: short name like "definitions:create", "events:log"
	// - source:   "ip"
	rateLimitExceeded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limit_exceeded_total",
			Help:      "Number of requests rejected due to rate limiting (HTTP 429)",
		},
		[]string{"endpoint", "source"},
	)

	// definitionsRegistered counts registration attempts by result.
	// Labels:
	// - result: success | conflict | error
	definitionsRegistered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "definitions",
			Name:      "registered_total",
			Help:      "Event definition registrations by result.",
		},
		[]string{"result"},
	)

	// eventsLogged counts log attempts by normalized event type and result.
	// Labels:
	// - event_type: normalized definition name, "unknown" when unresolved, "other" past the cap
	// - result: success | not_found | error
	eventsLogged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "logged_total",
			Help:      "Event occurrences logged by event type and result.",
		},
		[]string{"event_type", "result"},
	)
)

// IncRateLimitExceeded increments the 429 counter for the given endpoint and source.
func IncRateLimitExceeded(endpoint, source string) {
	if endpoint == "" {
		endpoint = "unknown"
	}
	if source == "" {
		source = "unknown"
	}
	rateLimitExceeded.WithLabelValues(endpoint, source).Inc()
}

// IncDefinitionRegistered increments the registration counter.
func IncDefinitionRegistered(result string) {
	if result == "" {
		result = "unknown"
	}
	definitionsRegistered.WithLabelValues(result).Inc()
}

// maxEventTypeLabels bounds the distinct event_type values eventsLogged carries.
const maxEventTypeLabels = 100

// boundedLabels admits the first max distinct values and folds the rest into "other".
type boundedLabels struct {
	mu   sync.Mutex
	max  int
	seen map[string]struct{}
}

func newBoundedLabels(max int) *boundedLabels {
	return &boundedLabels{max: max, seen: make(map[string]struct{}, max)}
}

func (b *boundedLabels) value(v string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.seen[v]; ok {
		return v
	}
	if len(b.seen) >= b.max {
		return "other"
	}
	b.seen[v] = struct{}{}
	return v
}

var eventTypeLabels = newBoundedLabels(maxEventTypeLabels)

// IncEventLogged increments the event log counter. Unresolved names are
// folded into "unknown", and resolved names past maxEventTypeLabels into "other".
func IncEventLogged(eventType, result string) {
	switch {
	case eventType == "" || result != "success":
		eventType = "unknown"
	default:
		eventType = eventTypeLabels.value(eventType)
	}
	if result == "" {
		result = "unknown"
	}
	eventsLogged.WithLabelValues(eventType, result).Inc()
}
