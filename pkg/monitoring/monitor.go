package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// GoalProgressComputations 按目标类型统计进度计算次数
	GoalProgressComputations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goal_progress_computations_total",
			Help: "Number of goal progress computations by goal type",
		},
		[]string{"type"},
	)

	InvalidGoals = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "goal_invalid_total",
			Help: "Number of goals rejected or skipped as invalid",
		},
	)

	RemindersEvaluated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminders_evaluated_total",
			Help: "Number of due reminders produced by severity",
		},
		[]string{"severity"},
	)

	RemindersDue = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "reminders_due",
			Help: "Due reminders found by the last background scan",
		},
	)

	SessionsSynced = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_synced_total",
			Help: "Number of session records merged through sync",
		},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			GoalProgressComputations,
			InvalidGoals,
			RemindersEvaluated,
			RemindersDue,
			SessionsSynced,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
