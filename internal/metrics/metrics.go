package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chogmo_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chogmo_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	CheckInsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chogmo_checkins_total",
			Help: "Total number of check-in attempts",
		},
		[]string{"outcome", "service_type"},
	)

	MembershipUpgradesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chogmo_membership_upgrades_total",
			Help: "Total number of membership upgrades",
		},
		[]string{"tier"},
	)

	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chogmo_payments_total",
			Help: "Total number of payment records by final status",
		},
		[]string{"status"},
	)

	PackagePurchasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chogmo_package_purchases_total",
			Help: "Total number of service package purchases",
		},
		[]string{"type"},
	)

	AppointmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chogmo_appointments_total",
			Help: "Total number of appointment bookings by status transition",
		},
		[]string{"status"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chogmo_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chogmo_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordCheckIn(outcome, serviceType string) {
	CheckInsTotal.WithLabelValues(outcome, serviceType).Inc()
}

func RecordUpgrade(tier string) {
	MembershipUpgradesTotal.WithLabelValues(tier).Inc()
}

func RecordPayment(status string) {
	PaymentsTotal.WithLabelValues(status).Inc()
}

func RecordPackagePurchase(packageType string) {
	PackagePurchasesTotal.WithLabelValues(packageType).Inc()
}

func RecordAppointment(status string) {
	AppointmentsTotal.WithLabelValues(status).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
