package infrastructure

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestInitializeOTelDefaults(t *testing.T) {
	providers, err := InitializeOTel(nil, discardLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.MeterProvider)
	assert.Nil(t, providers.TracerProvider, "tracing disabled by default")
	assert.NotNil(t, providers.PrometheusHTTP)
}

func TestInitializeOTelAllDisabled(t *testing.T) {
	cfg := DefaultOTelConfig()
	cfg.MetricExporter = "none"

	providers, err := InitializeOTel(cfg, discardLogger())
	require.NoError(t, err)

	assert.Nil(t, providers.PrometheusHTTP)
	assert.NotNil(t, providers.Meter)
	require.NoError(t, providers.Shutdown(context.Background()))
}

func TestInitializeOTelUnsupportedExporter(t *testing.T) {
	cfg := DefaultOTelConfig()
	cfg.TraceExporter = "jaeger"
	_, err := InitializeOTel(cfg, discardLogger())
	assert.Error(t, err)

	cfg = DefaultOTelConfig()
	cfg.MetricExporter = "statsd"
	_, err = InitializeOTel(cfg, discardLogger())
	assert.Error(t, err)
}

func TestBusinessMetricsExposedOnPrometheus(t *testing.T) {
	providers, err := InitializeOTel(DefaultOTelConfig(), discardLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := CreateBusinessMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordCSVLoad(ctx, "/data/demo_data_medium.csv", 42)
	metrics.RecordCSVLoadFailure(ctx, "/data/demo_data_small.csv")
	metrics.RecordWindowFallback(ctx, "medium", 30)
	metrics.RecordRecommendations(ctx, 4)
	metrics.RecordLogin(ctx, true)
	metrics.RecordAssistantQuery(ctx, "faq")
	metrics.RecordExport(ctx)

	rec := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "csv_loads_total")
	assert.Contains(t, body, `file="demo_data_medium.csv"`)
	assert.Contains(t, body, "csv_rows_loaded_total")
	assert.Contains(t, body, "csv_load_failures_total")
	assert.Contains(t, body, "window_fallback_total")
	assert.Contains(t, body, "recommendations_generated_total")
	assert.Contains(t, body, "go_goroutines")
}

func TestBusinessMetricsNilSafe(t *testing.T) {
	var m *BusinessMetrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordCSVLoad(ctx, "x", 1)
		m.RecordCSVLoadFailure(ctx, "x")
		m.RecordWindowFallback(ctx, "medium", 30)
		m.RecordRecommendations(ctx, 1)
		m.RecordLogin(ctx, false)
		m.RecordAssistantQuery(ctx, "none")
		m.RecordExport(ctx)
	})
}

func TestCreateBusinessMetricsNilMeter(t *testing.T) {
	m, err := CreateBusinessMetrics(nil)
	require.NoError(t, err)
	assert.NotNil(t, m.HTTPRequestsTotal)
}

func TestSetSpanAttributes(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	ctx, span := tp.Tracer("test").Start(context.Background(), "GET /api/metrics")
	SetSpanAttributes(ctx, attribute.Int("envelope.status_code", 200))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Contains(t, ended[0].Attributes(), attribute.Int("envelope.status_code", 200))

	// Without a span the call is a no-op.
	SetSpanAttributes(context.Background(), attribute.Int("envelope.status_code", 500))
}
