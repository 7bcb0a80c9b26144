package tracing

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"study_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTracedRouter(t *testing.T) (*gin.Engine, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user", &util.Claims{UserID: 42})
		c.Next()
	})
	r.Use(GinMiddleware())
	r.GET("/api/goals/:id/progress", func(c *gin.Context) {
		_, span := Start(c.Request.Context(), "GoalService.Progress")
		span.End()
		c.Status(http.StatusOK)
	})
	r.GET("/api/broken", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})
	r.GET("/api/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, recorder
}

func attrs(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value)
	for _, kv := range span.Attributes() {
		m[kv.Key] = kv.Value
	}
	return m
}

func TestGinMiddlewareNamesSpanByRoute(t *testing.T) {
	r, recorder := newTracedRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/goals/g-1/progress", nil))
	require.Equal(t, http.StatusOK, w.Code)

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	child, server := spans[0], spans[1]
	assert.Equal(t, "GoalService.Progress", child.Name())
	assert.Equal(t, "GET /api/goals/:id/progress", server.Name())
	assert.Equal(t, server.SpanContext().SpanID(), child.Parent().SpanID())

	a := attrs(server)
	assert.Equal(t, "/api/goals/:id/progress", a["http.route"].AsString())
	assert.Equal(t, int64(http.StatusOK), a["http.status_code"].AsInt64())
	assert.Equal(t, int64(42), a["user.id"].AsInt64())
	assert.Equal(t, codes.Unset, server.Status().Code)
}

func TestGinMiddlewareMarksServerErrors(t *testing.T) {
	r, recorder := newTracedRouter(t)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/broken", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestGinMiddlewareSkipsHealthAndMetrics(t *testing.T) {
	r, recorder := newTracedRouter(t)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Empty(t, recorder.Ended())
	assert.True(t, untraced("/metrics"))
	assert.True(t, untraced("/swagger/index.html"))
	assert.False(t, untraced("/api/goals"))
}
