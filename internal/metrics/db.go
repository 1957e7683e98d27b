package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// dependency tracks availability and ping latency of a backing service.
type dependency struct {
	up   prometheus.Gauge
	ping prometheus.Histogram
}

func newDependency(subsystem, label string) dependency {
	return dependency{
		up: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "up",
			Help:      label + " availability from the last health check (1=up, 0=down).",
		}),
		ping: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "ping_seconds",
			Help:      label + " ping latency in seconds.",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5},
		}),
	}
}

func (d dependency) setUp(up bool) {
	if up {
		d.up.Set(1)
		return
	}
	d.up.Set(0)
}

var (
	postgres = newDependency("db", "Postgres")
	redis    = newDependency("redis", "Redis")
)

// SetDBUp and the functions below are fed by the /healthz handler.
func SetDBUp(up bool) { postgres.setUp(up) }

func ObserveDBPing(seconds float64) { postgres.ping.Observe(seconds) }

func SetRedisUp(up bool) { redis.setUp(up) }

func ObserveRedisPing(seconds float64) { redis.ping.Observe(seconds) }
