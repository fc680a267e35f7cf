package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_report_submissions_total",
			Help: "Total report submissions by outcome",
		},
		[]string{"status"},
	)

	ProcessingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ticket_report_processing_duration_seconds",
			Help:    "End-to-end report generation duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	RowsProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ticket_report_rows_processed_total",
			Help: "Total ticket rows processed across submissions",
		},
	)
)

func Register() {
	prometheus.MustRegister(SubmissionsTotal, ProcessingDuration, RowsProcessed)
}

// Handler exposes the prometheus scrape endpoint as a fiber handler.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
