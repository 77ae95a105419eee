// Package metrics exposes Prometheus instrumentation for the bot.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BotMetrics records update handling and reconciliation runs. A nil
// receiver (or a constructor called with a nil registerer) is a no-op,
// so tests and tools can skip instrumentation entirely.
type BotMetrics struct {
	updates      *prometheus.CounterVec
	syncDuration *prometheus.HistogramVec
	syncSuccess  *prometheus.CounterVec
	syncFailure  *prometheus.CounterVec
}

// NewBotMetrics registers the bot metrics on the provided registerer.
func NewBotMetrics(reg prometheus.Registerer) *BotMetrics {
	if reg == nil {
		return &BotMetrics{}
	}
	updates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_updates_total",
		Help: "Telegram updates handled, by kind.",
	}, []string{"kind"})
	syncDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sync_duration_seconds",
		Help:    "Duration of reconciliation runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	syncSuccess := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_success_total",
		Help: "Successful reconciliation runs.",
	}, []string{"job"})
	syncFailure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_failure_total",
		Help: "Failed reconciliation runs.",
	}, []string{"job"})
	reg.MustRegister(updates, syncDuration, syncSuccess, syncFailure)
	return &BotMetrics{
		updates:      updates,
		syncDuration: syncDuration,
		syncSuccess:  syncSuccess,
		syncFailure:  syncFailure,
	}
}

// IncUpdate counts one handled update of the given kind.
func (m *BotMetrics) IncUpdate(kind string) {
	if m == nil || m.updates == nil {
		return
	}
	m.updates.WithLabelValues(normalizeLabel(kind)).Inc()
}

// ObserveSyncDuration records the duration of the named reconciliation run.
func (m *BotMetrics) ObserveSyncDuration(job string, duration time.Duration) {
	if m == nil || m.syncDuration == nil {
		return
	}
	m.syncDuration.WithLabelValues(normalizeLabel(job)).Observe(duration.Seconds())
}

// IncSyncSuccess increments the success counter for the named run.
func (m *BotMetrics) IncSyncSuccess(job string) {
	if m == nil || m.syncSuccess == nil {
		return
	}
	m.syncSuccess.WithLabelValues(normalizeLabel(job)).Inc()
}

// IncSyncFailure increments the failure counter for the named run.
func (m *BotMetrics) IncSyncFailure(job string) {
	if m == nil || m.syncFailure == nil {
		return
	}
	m.syncFailure.WithLabelValues(normalizeLabel(job)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
