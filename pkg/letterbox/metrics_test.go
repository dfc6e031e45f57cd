package letterbox

import (
	"expvar"
	"testing"
	"time"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.IncrementStarts()
	m.IncrementStops()
	m.IncrementResizes()
	m.IncrementResizes()
	m.IncrementResizesSkipped()
	m.IncrementConfigReloads()
	m.IncrementErrors()
	m.IncrementEventsEmitted()
	m.SetRunning(true)
	m.SetScale(1.5)

	snap := m.Snapshot()
	if snap.Starts != 1 || snap.Stops != 1 {
		t.Errorf("Starts, Stops = %d, %d", snap.Starts, snap.Stops)
	}
	if snap.Resizes != 2 || snap.ResizesSkipped != 1 {
		t.Errorf("Resizes, ResizesSkipped = %d, %d", snap.Resizes, snap.ResizesSkipped)
	}
	if snap.ConfigReloads != 1 || snap.ErrorsTotal != 1 || snap.EventsEmitted != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
	if !snap.Running {
		t.Error("Running = false")
	}
	if snap.Scale != 1.5 {
		t.Errorf("Scale = %v, want 1.5", snap.Scale)
	}
}

func TestMetricsComputeLatency(t *testing.T) {
	m := NewMetrics()

	if m.Snapshot().ComputeLatencyAvg != 0 {
		t.Error("average should be 0 with no samples")
	}
	m.RecordComputeLatency(10 * time.Microsecond)
	m.RecordComputeLatency(30 * time.Microsecond)

	if got := m.Snapshot().ComputeLatencyAvg; got != 20*time.Microsecond {
		t.Errorf("ComputeLatencyAvg = %v, want 20µs", got)
	}
}

func TestMetricsReset(t *testing.T) {
	m := NewMetrics()
	m.IncrementResizes()
	m.SetRunning(true)
	m.SetScale(2)
	m.RecordComputeLatency(time.Millisecond)

	m.Reset()

	if snap := m.Snapshot(); snap != (MetricsSnapshot{}) {
		t.Errorf("snapshot after Reset = %+v, want zero", snap)
	}
}

func TestMetricsRegisterExpvar(t *testing.T) {
	m := NewMetrics()
	m.RegisterExpvar()
	// Second call must not panic on duplicate names.
	m.RegisterExpvar()

	m.IncrementResizes()
	v := expvar.Get("letterbox_resizes_total")
	if v == nil {
		t.Fatal("letterbox_resizes_total not published")
	}
	if v.String() != "1" {
		t.Errorf("letterbox_resizes_total = %s, want 1", v.String())
	}
	for _, name := range []string{
		"letterbox_resizes_skipped_total",
		"letterbox_config_reloads_total",
		"letterbox_errors_total",
		"letterbox_events_emitted_total",
		"letterbox_running",
		"letterbox_scale",
		"letterbox_compute_latency_avg_us",
	} {
		if expvar.Get(name) == nil {
			t.Errorf("%s not published", name)
		}
	}
}

func TestDefaultMetrics(t *testing.T) {
	if DefaultMetrics() != DefaultMetrics() {
		t.Error("DefaultMetrics() should return the same instance")
	}
}
