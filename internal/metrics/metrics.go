package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optic_http_requests_total",
			Help: "Total HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "optic_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	PaymentsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optic_expense_payments_total",
			Help: "Expense payment transactions recorded, by method",
		},
		[]string{"payment_method"},
	)

	LabelsPrinted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "optic_barcode_labels_printed_total",
			Help: "Barcode labels sent to the label printer",
		},
	)
)
