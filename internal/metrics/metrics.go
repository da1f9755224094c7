package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	OTPIssuedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "otp_issued_total",
		Help: "Verification codes issued, by purpose",
	}, []string{"purpose"})

	OTPVerifiedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "otp_verified_total",
		Help: "Verification attempts, by purpose and result",
	}, []string{"purpose", "result"})

	SMSSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sms_sent_total",
		Help: "SMS gateway sends, by result",
	}, []string{"result"})
)
