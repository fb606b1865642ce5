package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/regen/internal/core/ports"
)

var _ ports.Recorder = (*Prometheus)(nil)

// Prometheus implements ports.Recorder on a Prometheus registry.
type Prometheus struct {
	registry      *prom.Registry
	changes       *prom.CounterVec
	buildOutcome  *prom.CounterVec
	buildDuration prom.Histogram
	graphRefresh  prom.Counter
	pendingRoutes prom.Gauge
}

// NewPrometheus constructs and registers the rebuild metrics. A nil
// registry gets a fresh one.
func NewPrometheus(reg *prom.Registry) *Prometheus {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	p := &Prometheus{
		registry: reg,
		changes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "regen",
			Name:      "change_events_total",
			Help:      "Detected source file changes by detection source",
		}, []string{"source"}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "regen",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "regen",
			Name:      "build_duration_seconds",
			Help:      "Duration of a single build invocation",
			Buckets:   prom.DefBuckets,
		}),
		graphRefresh: prom.NewCounter(prom.CounterOpts{
			Namespace: "regen",
			Name:      "graph_refresh_total",
			Help:      "Dependency graph rebuilds",
		}),
		pendingRoutes: prom.NewGauge(prom.GaugeOpts{
			Namespace: "regen",
			Name:      "pending_routes",
			Help:      "Routes currently queued for rebuild",
		}),
	}
	reg.MustRegister(p.changes, p.buildOutcome, p.buildDuration, p.graphRefresh, p.pendingRoutes)
	return p
}

// Registry exposes the backing registry for the scrape endpoint.
func (p *Prometheus) Registry() *prom.Registry {
	return p.registry
}

func (p *Prometheus) ChangeDetected(source string) {
	p.changes.WithLabelValues(source).Inc()
}

func (p *Prometheus) BuildFinished(outcome string, d time.Duration) {
	p.buildOutcome.WithLabelValues(outcome).Inc()
	p.buildDuration.Observe(d.Seconds())
}

func (p *Prometheus) GraphRefreshed() {
	p.graphRefresh.Inc()
}

func (p *Prometheus) SetPendingRoutes(n int) {
	p.pendingRoutes.Set(float64(n))
}
