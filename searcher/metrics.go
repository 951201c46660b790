package searcher

import (
	"sync/atomic"
	"time"
)

// SearchMetrics summarizes one search call.
type SearchMetrics struct {
	StartTime    time.Time
	Duration     time.Duration
	Simulations  int64
	FullPlayouts int64 // rollouts that reached a game end before the depth cutoff
}

type MetricsCollector interface {
	Start()
	AddSimulation()
	AddFullPlayout()
	Complete() SearchMetrics
}

type metricsCollector struct {
	startTime    time.Time
	simulations  atomic.Int64
	fullPlayouts atomic.Int64
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

// Start resets the counters so every search reports only its own work.
func (m *metricsCollector) Start() {
	m.startTime = time.Now()
	m.simulations.Store(0)
	m.fullPlayouts.Store(0)
}

func (m *metricsCollector) AddSimulation() {
	m.simulations.Add(1)
}

func (m *metricsCollector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *metricsCollector) Complete() SearchMetrics {
	return SearchMetrics{
		StartTime:    m.startTime,
		Duration:     time.Since(m.startTime),
		Simulations:  m.simulations.Load(),
		FullPlayouts: m.fullPlayouts.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start()                  {}
func (m *noMetricsCollector) AddSimulation()          {}
func (m *noMetricsCollector) AddFullPlayout()         {}
func (m *noMetricsCollector) Complete() SearchMetrics { return SearchMetrics{} }
