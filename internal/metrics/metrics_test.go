package metrics

import (
	"errors"
	"testing"
	"time"
)

type captureBackend struct {
	counters  []string
	durations []string
	labels    []Labels
}

func (c *captureBackend) IncCounter(name string, _ float64, l Labels) {
	c.counters = append(c.counters, name)
	c.labels = append(c.labels, l)
}

func (c *captureBackend) ObserveDuration(name string, _ float64, l Labels) {
	c.durations = append(c.durations, name)
	c.labels = append(c.labels, l)
}

func (c *captureBackend) Flush() error { return nil }

func withBackend(t *testing.T, b Backend) {
	t.Helper()
	prev := backend
	SetBackend(b)
	t.Cleanup(func() { backend = prev })
}

func TestRecordStageStatusLabel(t *testing.T) {
	c := &captureBackend{}
	withBackend(t, c)

	RecordStage("job", "load", nil, time.Millisecond)
	RecordStage("job", "load", errors.New("boom"), time.Millisecond)

	if len(c.counters) != 2 || len(c.durations) != 2 {
		t.Fatalf("counters=%d durations=%d", len(c.counters), len(c.durations))
	}
	if c.labels[0]["status"] != "success" {
		t.Fatalf("labels = %v", c.labels[0])
	}
	if c.labels[2]["status"] != "failure" {
		t.Fatalf("labels = %v", c.labels[2])
	}
}

func TestRecordRowsSkipsNonPositive(t *testing.T) {
	c := &captureBackend{}
	withBackend(t, c)

	RecordRows("job", "customers", "loaded", 0)
	RecordRows("job", "customers", "loaded", -3)
	RecordRows("job", "customers", "loaded", 5)

	if len(c.counters) != 1 {
		t.Fatalf("counter calls = %d, want 1", len(c.counters))
	}
	if c.labels[0]["entity"] != "customers" || c.labels[0]["kind"] != "loaded" {
		t.Fatalf("labels = %v", c.labels[0])
	}
}

func TestSetBackendIgnoresNil(t *testing.T) {
	c := &captureBackend{}
	withBackend(t, c)
	SetBackend(nil)
	RecordRows("job", "products", "processed", 1)
	if len(c.counters) != 1 {
		t.Fatal("nil backend must not replace the current one")
	}
}
