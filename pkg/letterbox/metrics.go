package letterbox

import (
	"expvar"
	"math"
	"sync/atomic"
	"time"
)

// Metrics collects operational counters for a Letterbox instance and can
// publish them through expvar at /debug/vars.
//
// Thread-safe for concurrent use.
type Metrics struct {
	starts         atomic.Int64
	stops          atomic.Int64
	resizes        atomic.Int64
	resizesSkipped atomic.Int64
	configReloads  atomic.Int64
	errorsTotal    atomic.Int64
	eventsEmitted  atomic.Int64

	computeLatencyNs    atomic.Int64
	computeLatencyCount atomic.Int64

	running   atomic.Int32
	scaleBits atomic.Uint64

	registered atomic.Bool
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RegisterExpvar publishes the metrics under the letterbox_ prefix.
// Safe to call multiple times; subsequent calls are no-ops. expvar names
// are process-global, so only one Metrics instance can be registered.
func (m *Metrics) RegisterExpvar() {
	if m.registered.Swap(true) {
		return
	}

	counters := map[string]*atomic.Int64{
		"letterbox_starts_total":          &m.starts,
		"letterbox_stops_total":           &m.stops,
		"letterbox_resizes_total":         &m.resizes,
		"letterbox_resizes_skipped_total": &m.resizesSkipped,
		"letterbox_config_reloads_total":  &m.configReloads,
		"letterbox_errors_total":          &m.errorsTotal,
		"letterbox_events_emitted_total":  &m.eventsEmitted,
	}
	for name, c := range counters {
		c := c
		expvar.Publish(name, expvar.Func(func() any { return c.Load() }))
	}

	expvar.Publish("letterbox_running", expvar.Func(func() any { return m.running.Load() }))
	expvar.Publish("letterbox_scale", expvar.Func(func() any { return m.Scale() }))
	expvar.Publish("letterbox_compute_latency_avg_us", expvar.Func(func() any {
		count := m.computeLatencyCount.Load()
		if count == 0 {
			return float64(0)
		}
		return float64(m.computeLatencyNs.Load()) / float64(count) / 1e3
	}))
}

// MetricsSnapshot is a point-in-time copy of all metrics.
type MetricsSnapshot struct {
	Starts         int64
	Stops          int64
	Resizes        int64
	ResizesSkipped int64
	ConfigReloads  int64
	ErrorsTotal    int64
	EventsEmitted  int64

	Running bool
	Scale   float64

	ComputeLatencyAvg time.Duration
}

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Starts:         m.starts.Load(),
		Stops:          m.stops.Load(),
		Resizes:        m.resizes.Load(),
		ResizesSkipped: m.resizesSkipped.Load(),
		ConfigReloads:  m.configReloads.Load(),
		ErrorsTotal:    m.errorsTotal.Load(),
		EventsEmitted:  m.eventsEmitted.Load(),

		Running: m.running.Load() > 0,
		Scale:   m.Scale(),

		ComputeLatencyAvg: safeDivide(m.computeLatencyNs.Load(), m.computeLatencyCount.Load()),
	}
}

// IncrementStarts records a start operation.
func (m *Metrics) IncrementStarts() { m.starts.Add(1) }

// IncrementStops records a stop operation.
func (m *Metrics) IncrementStops() { m.stops.Add(1) }

// IncrementResizes records an applied surface size.
func (m *Metrics) IncrementResizes() { m.resizes.Add(1) }

// IncrementResizesSkipped records a degenerate surface size.
func (m *Metrics) IncrementResizesSkipped() { m.resizesSkipped.Add(1) }

// IncrementConfigReloads records a configuration reload.
func (m *Metrics) IncrementConfigReloads() { m.configReloads.Add(1) }

// IncrementErrors records an error occurrence.
func (m *Metrics) IncrementErrors() { m.errorsTotal.Add(1) }

// IncrementEventsEmitted records an event emission.
func (m *Metrics) IncrementEventsEmitted() { m.eventsEmitted.Add(1) }

// SetRunning updates the running state gauge.
func (m *Metrics) SetRunning(running bool) {
	if running {
		m.running.Store(1)
	} else {
		m.running.Store(0)
	}
}

// SetScale updates the current scale gauge.
func (m *Metrics) SetScale(scale float64) {
	m.scaleBits.Store(math.Float64bits(scale))
}

// Scale returns the current scale gauge.
func (m *Metrics) Scale() float64 {
	return math.Float64frombits(m.scaleBits.Load())
}

// RecordComputeLatency records the duration of a geometry computation.
func (m *Metrics) RecordComputeLatency(d time.Duration) {
	m.computeLatencyNs.Add(d.Nanoseconds())
	m.computeLatencyCount.Add(1)
}

// Reset clears all metrics. Useful for testing.
func (m *Metrics) Reset() {
	for _, c := range []*atomic.Int64{
		&m.starts, &m.stops, &m.resizes, &m.resizesSkipped, &m.configReloads,
		&m.errorsTotal, &m.eventsEmitted, &m.computeLatencyNs, &m.computeLatencyCount,
	} {
		c.Store(0)
	}
	m.running.Store(0)
	m.scaleBits.Store(0)
}

func safeDivide(total, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return time.Duration(total / count)
}

var defaultMetrics = NewMetrics()

// DefaultMetrics returns the global default Metrics instance.
func DefaultMetrics() *Metrics {
	return defaultMetrics
}
