// Package metrics records what a gwconfig run did so it can be picked up by
// the node-exporter textfile collector.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Write sources
const (
	SourceReconcile = "reconcile"
	SourceEditor    = "editor"
	SourceIntake    = "intake"
)

// Update results
const (
	UpdateSuccess  = "success"
	UpdateFailure  = "failure"
	UpdateDeferred = "deferred"
)

// Recorder owns a private registry for one run. A nil *Recorder is valid
// and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	parameterWrites *prometheus.CounterVec
	updateRuns      *prometheus.CounterVec
	lastRun         prometheus.Gauge
}

// New creates a Recorder with all metrics registered
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		parameterWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gwconfig_parameter_writes_total",
				Help: "Total number of parameter writes to the parameter store",
			},
			[]string{"source", "category"},
		),
		updateRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gwconfig_update_runs_total",
				Help: "Total number of update decisions by result",
			},
			[]string{"result"},
		),
		lastRun: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "gwconfig_last_run_timestamp_seconds",
				Help: "Unix time of the last completed gwconfig run",
			},
		),
	}
}

// ParameterWritten records one parameter write
func (r *Recorder) ParameterWritten(source, category string) {
	if r == nil {
		return
	}
	r.parameterWrites.WithLabelValues(source, category).Inc()
}

// UpdateRun records the outcome of the update step
func (r *Recorder) UpdateRun(result string) {
	if r == nil {
		return
	}
	r.updateRuns.WithLabelValues(result).Inc()
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// WriteTextfile stamps the run time and writes all metrics to path in the
// Prometheus text format. The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string, now time.Time) error {
	if r == nil || path == "" {
		return nil
	}
	r.lastRun.Set(float64(now.Unix()))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
