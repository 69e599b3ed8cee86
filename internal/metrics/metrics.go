// Package metrics is a small, backend-agnostic layer for recording
// operational metrics from the pipeline. It exposes a narrow Backend
// interface (counters and durations) behind a global, pluggable instance
// that defaults to a no-op, so instrumentation calls are always safe even
// when no real backend is configured. Concrete systems (Prometheus
// pushgateway) live in subpackages, mirroring the storage registry pattern.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveDuration records a duration-style value.
	ObserveDuration(name string, value float64, labels Labels)
	// Flush pushes metrics if the backend needs it (e.g. Pushgateway).
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels) {}
func (nopBackend) ObserveDuration(string, float64, Labels) {}
func (nopBackend) Flush() error { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the current one.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error { return backend.Flush() }

// RecordStage measures one pipeline stage: latency plus success/failure.
func RecordStage(job, stage string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{"job": job, "stage": stage, "status": status}
	backend.IncCounter("fleximart_stage_total", 1, lbls)
	backend.ObserveDuration("fleximart_stage_duration_seconds", d.Seconds(), lbls)
}

// RecordRows increments a record-level counter for an entity. Typical kinds
// mirror the data-quality report fields:
//   - "processed"
//   - "duplicates_removed"
//   - "missing_values"
//   - "degraded_fields"
//   - "unresolved_customers"
//   - "dropped_items"
//   - "loaded"
func RecordRows(job, entity, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("fleximart_records_total", float64(delta), Labels{
		"job":    job,
		"entity": entity,
		"kind":   kind,
	})
}
