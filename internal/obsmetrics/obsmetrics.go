// Package obsmetrics exposes a running simulation's metrics over HTTP
// for Prometheus scraping. It is purely observational instrumentation:
// the core engine never reads it back, and its wall-clock gauges play
// no part in the simulated model.
package obsmetrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yigitbektasgursoy/cache-simulator/internal/metrics"
)

// Exporter serves the most recently published Report on a background
// HTTP server.
type Exporter struct {
	registry *prometheus.Registry

	hits      *prometheus.GaugeVec
	misses    *prometheus.GaugeVec
	hitRate   *prometheus.GaugeVec
	amat      prometheus.Gauge
	memReads  prometheus.Gauge
	memWrites prometheus.Gauge

	server *http.Server
}

// New builds an Exporter with its own private registry, so multiple
// simulation runs in one process never collide on metric names.
func New() *Exporter {
	reg := prometheus.NewRegistry()

	e := &Exporter{
		registry: reg,
		hits: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cachesim_level_hits",
			Help: "Cumulative hits at this cache level for the active run.",
		}, []string{"level"}),
		misses: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cachesim_level_misses",
			Help: "Cumulative misses at this cache level for the active run.",
		}, []string{"level"}),
		hitRate: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cachesim_level_hit_rate",
			Help: "Hit rate in [0,1] at this cache level for the active run.",
		}, []string{"level"}),
		amat: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cachesim_amat",
			Help: "Average memory access time for the active run.",
		}),
		memReads: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cachesim_memory_reads",
			Help: "Cumulative main memory reads for the active run.",
		}),
		memWrites: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cachesim_memory_writes",
			Help: "Cumulative main memory writes for the active run.",
		}),
	}

	reg.MustRegister(e.hits, e.misses, e.hitRate, e.amat, e.memReads, e.memWrites)
	return e
}

// Publish overwrites the exported gauges with r's values.
func (e *Exporter) Publish(r metrics.Report) {
	for _, lvl := range r.Levels {
		e.hits.WithLabelValues(lvl.Name).Set(float64(lvl.Hits))
		e.misses.WithLabelValues(lvl.Name).Set(float64(lvl.Misses))
		e.hitRate.WithLabelValues(lvl.Name).Set(lvl.HitRate)
	}
	e.amat.Set(r.AMAT)
	e.memReads.Set(float64(r.MemoryReads))
	e.memWrites.Set(float64(r.MemoryWrites))
}

// Serve starts a background HTTP server on addr exposing /metrics.
// It returns immediately; call Shutdown to stop it.
func (e *Exporter) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{}))
	e.server = &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		if err := e.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}

// Shutdown stops the background server, if running.
func (e *Exporter) Shutdown(ctx context.Context) error {
	if e.server == nil {
		return nil
	}
	return e.server.Shutdown(ctx)
}
