package labelkit

import "sync/atomic"

// MetricID identifies one in-process counter.
type MetricID uint8

const (
	// MetricLoginSuccess counts successful logins.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure counts rejected or failed logins.
	MetricLoginFailure
	// MetricRegisterSuccess counts successful registrations.
	MetricRegisterSuccess
	// MetricRegisterFailure counts rejected or failed registrations.
	MetricRegisterFailure
	// MetricLogout counts explicit logouts that cleared a live session.
	MetricLogout
	// MetricForcedLogout counts logouts triggered by a 401 response.
	MetricForcedLogout
	// MetricUnauthorized counts 401 responses seen by the authorizer.
	MetricUnauthorized
	// MetricForbidden counts 403 responses seen by the authorizer.
	MetricForbidden
	// MetricPollSuccess counts unread-count poll ticks that published.
	MetricPollSuccess
	// MetricPollFailure counts poll ticks skipped on error.
	MetricPollFailure
	// MetricMarkRead counts successful single mark-read calls.
	MetricMarkRead
	// MetricMarkAllRead counts successful mark-all-read calls.
	MetricMarkAllRead

	metricCount
)

var metricNames = [metricCount]string{
	MetricLoginSuccess:    "login_success",
	MetricLoginFailure:    "login_failure",
	MetricRegisterSuccess: "register_success",
	MetricRegisterFailure: "register_failure",
	MetricLogout:          "logout",
	MetricForcedLogout:    "forced_logout",
	MetricUnauthorized:    "unauthorized",
	MetricForbidden:       "forbidden",
	MetricPollSuccess:     "poll_success",
	MetricPollFailure:     "poll_failure",
	MetricMarkRead:        "mark_read",
	MetricMarkAllRead:     "mark_all_read",
}

// String returns the stable snake_case name of the metric.
func (id MetricID) String() string {
	if id >= metricCount {
		return "unknown"
	}
	return metricNames[id]
}

// Metrics is a fixed set of atomic counters. The zero value is unusable;
// construct through the builder.
type Metrics struct {
	counters [metricCount]atomic.Uint64
}

func newMetrics(cfg MetricsConfig) *Metrics {
	if !cfg.Enabled {
		return nil
	}
	return &Metrics{}
}

// Inc bumps a single counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || id >= metricCount {
		return
	}
	m.counters[id].Add(1)
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// Snapshot copies every counter. Counters incremented mid-snapshot may or
// may not be included; each individual value is read atomically.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{Counters: make(map[MetricID]uint64, metricCount)}
	if m == nil {
		return snap
	}
	for id := MetricID(0); id < metricCount; id++ {
		snap.Counters[id] = m.counters[id].Load()
	}
	return snap
}
