package metrics

import (
	"strconv"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RegistrationsTotal counts successful account registrations.
	RegistrationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Total number of registered accounts",
		},
	)

	// HabitsCreatedTotal counts created habits.
	HabitsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "habits_created_total",
			Help: "Total number of habits created",
		},
	)

	// TogglesTotal counts date toggles by direction (checked, unchecked).
	TogglesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habit_toggles_total",
			Help: "Total number of habit date toggles by direction",
		},
		[]string{"direction"},
	)

	// BackupsTotal counts backup runs by status (ok, error).
	BackupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backup_runs_total",
			Help: "Total number of data backup runs by status",
		},
		[]string{"status"},
	)
)

var initOnce sync.Once

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal,
			RegistrationsTotal, HabitsCreatedTotal, TogglesTotal, BackupsTotal)
	})
}

// NormalizePath reduces label cardinality by collapsing the habit id segment:
// /v1/habits/<uuid>/toggle -> /v1/habits/{id}/toggle.
func NormalizePath(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "habits" && parts[i+1] != "" {
			parts[i+1] = "{id}"
			break
		}
	}
	return strings.Join(parts, "/")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncToggle records one toggle; checked is the resulting state of the date.
func IncToggle(checked bool) {
	direction := "unchecked"
	if checked {
		direction = "checked"
	}
	TogglesTotal.WithLabelValues(direction).Inc()
}

// IncBackup records one backup run with the given status (ok, error).
func IncBackup(status string) {
	BackupsTotal.WithLabelValues(status).Inc()
}
