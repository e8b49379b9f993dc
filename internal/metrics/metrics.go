// Package metrics exposes Prometheus counters for registrations, validation
// rejections, report exports and admin logins.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the registry's collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	AttendeesCreated    prometheus.Counter
	AttendeesUpdated    prometheus.Counter
	AttendeesDeleted    prometheus.Counter
	ValidationRejected  *prometheus.CounterVec
	ReportsGenerated    *prometheus.CounterVec
	ReportRenderSeconds prometheus.Histogram
	LoginAttempts       *prometheus.CounterVec
}

// New registers all collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AttendeesCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "registry_attendees_created_total",
			Help: "Total number of attendees registered",
		}),
		AttendeesUpdated: f.NewCounter(prometheus.CounterOpts{
			Name: "registry_attendees_updated_total",
			Help: "Total number of attendee updates",
		}),
		AttendeesDeleted: f.NewCounter(prometheus.CounterOpts{
			Name: "registry_attendees_deleted_total",
			Help: "Total number of attendees deleted",
		}),
		ValidationRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_validation_rejections_total",
			Help: "Writes rejected by the role rules, by role",
		}, []string{"role"}),
		ReportsGenerated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_reports_generated_total",
			Help: "Document exports produced, by scope",
		}, []string{"scope"}),
		ReportRenderSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "registry_report_render_duration_seconds",
			Help:    "Duration of document rendering",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		LoginAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_login_attempts_total",
			Help: "Admin login attempts, by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) IncCreated() {
	if m != nil {
		m.AttendeesCreated.Inc()
	}
}

func (m *Metrics) IncUpdated() {
	if m != nil {
		m.AttendeesUpdated.Inc()
	}
}

// AddDeleted records n removed attendees.
func (m *Metrics) AddDeleted(n int) {
	if m != nil {
		m.AttendeesDeleted.Add(float64(n))
	}
}

func (m *Metrics) IncRejected(role string) {
	if m != nil {
		m.ValidationRejected.WithLabelValues(role).Inc()
	}
}

// ObserveReport records one export for scope, timed from start.
func (m *Metrics) ObserveReport(scope string, start time.Time) {
	if m != nil {
		m.ReportsGenerated.WithLabelValues(scope).Inc()
		m.ReportRenderSeconds.Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) IncLogin(outcome string) {
	if m != nil {
		m.LoginAttempts.WithLabelValues(outcome).Inc()
	}
}
