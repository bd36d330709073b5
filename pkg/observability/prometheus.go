package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus implements every hook interface with Prometheus collectors on
// a private registry.
type Prometheus struct {
	registry *prometheus.Registry

	stageSeconds *prometheus.HistogramVec // stage=build|layout|render
	stageErrors  *prometheus.CounterVec
	treeNodes    prometheus.Histogram

	cacheOps   *prometheus.CounterVec // key_type, result=hit|miss|set
	cacheBytes prometheus.Counter

	sessions        *prometheus.CounterVec // category
	steps           *prometheus.CounterVec // kind
	deletes         *prometheus.CounterVec // shape
	sessionsEvicted prometheus.Counter
}

// NewPrometheus creates the collectors and registers them, together with
// the Go runtime and process collectors, on a fresh registry. Each call is
// independent, so tests may create as many as they like.
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		stageSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bstviz_pipeline_stage_seconds",
			Help:    "Duration of pipeline stages.",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
		}, []string{"stage"}),
		stageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bstviz_pipeline_errors_total",
			Help: "Pipeline stages that returned an error.",
		}, []string{"stage"}),
		treeNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bstviz_tree_nodes",
			Help:    "Node count of built trees.",
			Buckets: []float64{1, 4, 8, 16, 32, 64, 128, 256},
		}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bstviz_cache_operations_total",
			Help: "Cache lookups and writes.",
		}, []string{"key_type", "result"}),
		cacheBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bstviz_cache_written_bytes_total",
			Help: "Bytes written to the cache.",
		}),
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bstviz_sessions_created_total",
			Help: "Stepping sessions created.",
		}, []string{"category"}),
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bstviz_steps_total",
			Help: "Stepper events by kind.",
		}, []string{"kind"}),
		deletes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bstviz_deletes_total",
			Help: "Delete requests by shape.",
		}, []string{"shape"}),
		sessionsEvicted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bstviz_sessions_evicted_total",
			Help: "Sessions removed for inactivity.",
		}),
	}
	p.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		p.stageSeconds, p.stageErrors, p.treeNodes,
		p.cacheOps, p.cacheBytes,
		p.sessions, p.steps, p.deletes, p.sessionsEvicted,
	)
	return p
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

func (p *Prometheus) observe(stage string, d time.Duration, err error) {
	p.stageSeconds.WithLabelValues(stage).Observe(d.Seconds())
	if err != nil {
		p.stageErrors.WithLabelValues(stage).Inc()
	}
}

func (p *Prometheus) OnBuildStart(context.Context, string, int) {}

func (p *Prometheus) OnBuildComplete(_ context.Context, _ string, nodes int, d time.Duration, err error) {
	p.observe("build", d, err)
	if err == nil {
		p.treeNodes.Observe(float64(nodes))
	}
}

func (p *Prometheus) OnLayoutComplete(_ context.Context, _, _ int, d time.Duration) {
	p.observe("layout", d, nil)
}

func (p *Prometheus) OnRenderStart(context.Context, []string) {}

func (p *Prometheus) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	p.observe("render", d, err)
}

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheOps.WithLabelValues(keyType, "set").Inc()
	p.cacheBytes.Add(float64(size))
}

func (p *Prometheus) OnSessionCreated(_ context.Context, category string, _ int) {
	p.sessions.WithLabelValues(category).Inc()
}

func (p *Prometheus) OnStep(_ context.Context, kind string) {
	p.steps.WithLabelValues(kind).Inc()
}

func (p *Prometheus) OnDelete(_ context.Context, shape string) {
	p.deletes.WithLabelValues(shape).Inc()
}

func (p *Prometheus) OnSessionEvicted(context.Context) {
	p.sessionsEvicted.Inc()
}

var (
	_ PipelineHooks = (*Prometheus)(nil)
	_ CacheHooks    = (*Prometheus)(nil)
	_ SessionHooks  = (*Prometheus)(nil)
)
