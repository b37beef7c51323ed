package pipeline

import (
	"slices"
	"sync"
	"time"

	"github.com/elskow/seabuild/internal/pipeline/types"
)

// PlatformMetrics records the timing and outcome of one platform build.
type PlatformMetrics struct {
	SessionID string
	Platform  string
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Status    types.BuildStatus
	Warnings  int
}

type metricsKey struct {
	session  string
	platform string
}

type MetricsCollector struct {
	metrics map[metricsKey]*PlatformMetrics
	mu      sync.RWMutex
}

func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		metrics: make(map[metricsKey]*PlatformMetrics),
	}
}

func (mc *MetricsCollector) Start(sessionID, platform string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.metrics[metricsKey{sessionID, platform}] = &PlatformMetrics{
		SessionID: sessionID,
		Platform:  platform,
		StartTime: time.Now(),
		Status:    types.BuildStatusPending,
	}
}

// Finish closes the record opened by Start using the platform's result.
func (mc *MetricsCollector) Finish(sessionID string, result types.BuildResult) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	m, exists := mc.metrics[metricsKey{sessionID, result.Platform}]
	if !exists {
		return
	}

	m.EndTime = time.Now()
	m.Duration = m.EndTime.Sub(m.StartTime)
	m.Warnings = len(result.Warnings)
	m.Status = types.BuildStatusFailed
	if result.Success {
		m.Status = types.BuildStatusDone
	}
}

// Get returns a copy of the record for one platform of a session.
func (mc *MetricsCollector) Get(sessionID, platform string) (PlatformMetrics, bool) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	m, exists := mc.metrics[metricsKey{sessionID, platform}]
	if !exists {
		return PlatformMetrics{}, false
	}
	return *m, true
}

// Session returns the records of a session ordered by start time.
func (mc *MetricsCollector) Session(sessionID string) []PlatformMetrics {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	var out []PlatformMetrics
	for k, m := range mc.metrics {
		if k.session == sessionID {
			out = append(out, *m)
		}
	}
	slices.SortFunc(out, func(a, b PlatformMetrics) int {
		return a.StartTime.Compare(b.StartTime)
	})
	return out
}
