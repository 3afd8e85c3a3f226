package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "loanreview"

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
		},
		[]string{"method", "route"},
	)

	decisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "decisions",
			Name:      "total",
			Help:      "Loan decisions persisted, by prediction.",
		},
		[]string{"prediction"},
	)

	aiCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ai",
			Name:      "calls_total",
			Help:      "AI gateway calls, by outcome.",
		},
		[]string{"outcome"},
	)

	aiDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ai",
			Name:      "call_duration_seconds",
			Help:      "Duration of AI gateway calls.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~50s
		},
	)

	approvedLoanWriteFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "decisions",
			Name:      "approved_loan_write_failures_total",
			Help:      "Approved applications whose repayment schedule could not be stored.",
		},
	)

	appealsFiled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "appeals",
			Name:      "filed_total",
			Help:      "Appeals filed by customers.",
		},
	)

	appealsReviewed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "appeals",
			Name:      "reviewed_total",
			Help:      "Appeals reviewed by employees, by final decision.",
		},
		[]string{"final_decision"},
	)

	notificationsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "created_total",
			Help:      "Notifications created, by source.",
		},
		[]string{"source"},
	)

	notificationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "failures_total",
			Help:      "Notifications that could not be stored, by source.",
		},
		[]string{"source"},
	)

	batchRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "batch_runs_total",
			Help:      "Monthly reminder batch runs.",
		},
		[]string{"success"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		decisions,
		aiCalls,
		aiDuration,
		approvedLoanWriteFailures,
		appealsFiled,
		appealsReviewed,
		notificationsCreated,
		notificationFailures,
		batchRuns,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Notification sources.
const (
	SourceDirect       = "direct"
	SourceMonthlyBatch = "monthly_batch"
)

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per matched echo route.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() == "/metrics" {
				return next(c)
			}
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			httpRequests.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
			httpDuration.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

func RecordDecision(prediction string) { decisions.WithLabelValues(prediction).Inc() }

// RecordAICall takes "ok" or the failure kind as outcome.
func RecordAICall(outcome string, d time.Duration) {
	aiCalls.WithLabelValues(outcome).Inc()
	aiDuration.Observe(d.Seconds())
}

func RecordApprovedLoanWriteFailure() { approvedLoanWriteFailures.Inc() }

func RecordAppealFiled() { appealsFiled.Inc() }

func RecordAppealReviewed(finalDecision string) {
	appealsReviewed.WithLabelValues(finalDecision).Inc()
}

func RecordNotifications(source string, n int) {
	notificationsCreated.WithLabelValues(source).Add(float64(n))
}

func RecordNotificationFailure(source string) { notificationFailures.WithLabelValues(source).Inc() }

func RecordBatchRun(success bool) { batchRuns.WithLabelValues(strconv.FormatBool(success)).Inc() }
