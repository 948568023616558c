package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts served requests by route template and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "consultorio_http_requests_total",
		Help: "HTTP requests served, by method, route and status code.",
	}, []string{"method", "route", "status"})

	// HTTPDuration tracks request latency.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "consultorio_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// Reservations counts booking outcomes: created, conflict, cancelled.
	Reservations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "consultorio_reservations_total",
		Help: "Reservation attempts by outcome.",
	}, []string{"outcome", "kind"})

	// PaymentPreferences counts checkout preferences created per provider.
	PaymentPreferences = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "consultorio_payment_preferences_total",
		Help: "Payment preferences requested, by provider and result.",
	}, []string{"provider", "result"})

	// AvailabilityCache counts weekly availability cache lookups.
	AvailabilityCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "consultorio_availability_cache_total",
		Help: "Weekly availability cache lookups by result.",
	}, []string{"result"})
)
