package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CheckIns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "equiptrack",
		Name:      "check_ins_total",
		Help:      "Equipment records checked in.",
	})

	CheckOuts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "equiptrack",
		Name:      "check_outs_total",
		Help:      "Equipment records checked out.",
	})

	BilledRevenue = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "equiptrack",
		Name:      "billed_revenue_total",
		Help:      "Sum of costs computed at check-out.",
	})

	BilledDays = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "equiptrack",
		Name:      "billed_days",
		Help:      "Billed days per check-out.",
		Buckets:   []float64{1, 2, 3, 5, 7, 14, 30, 60, 90},
	})

	StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "equiptrack",
		Name:      "store_errors_total",
		Help:      "Record store failures by operation.",
	}, []string{"op"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "equiptrack",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status.",
	}, []string{"method", "route", "status"})

	HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "equiptrack",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)
