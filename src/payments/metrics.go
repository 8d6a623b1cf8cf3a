package payments

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checkoutSessionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "villas_checkout_sessions_total",
		Help: "Checkout sessions requested, labeled by outcome",
	}, []string{"result"})

	statusPollsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "villas_payment_status_polls_total",
		Help: "Payment status polls, labeled by how they were answered",
	}, []string{"result"})

	webhookEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "villas_webhook_events_total",
		Help: "Provider webhook deliveries, labeled by outcome",
	}, []string{"result"})

	bookingConfirmationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "villas_booking_confirmations_total",
		Help: "Bookings confirmed, labeled by the path that observed payment",
	}, []string{"source"})

	providerLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "villas_provider_request_duration_seconds",
		Help:    "Latency of payment provider calls",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"operation"})
)
