package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/matanparker/optimize-poc-v2/internal/config"
	"github.com/matanparker/optimize-poc-v2/internal/exporter"
	"github.com/matanparker/optimize-poc-v2/internal/shared/testutil"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	medium, _ := testutil.WriteDataset(t, testutil.MediumCSV, testutil.SmallCSV)
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Dir(medium)
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config) (*Application, *testutil.BufferedSlogHandler) {
	t.Helper()

	logger, handler := testutil.NewTestLogger(t)
	app, err := New(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.OTelProviders.Shutdown(context.Background()) })
	return app, handler
}

func serve(app *Application, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func TestNew(t *testing.T) {
	cfg := testConfig(t)
	app, handler := newTestApp(t, cfg)

	require.NotNil(t, app.Services)
	assert.NotNil(t, app.Services.Analytics)
	assert.NotNil(t, app.Services.Auth)
	assert.NotNil(t, app.Services.Assistant)
	assert.NotNil(t, app.Services.Health)
	assert.Equal(t, filepath.Join(cfg.Paths.DataDir, config.MediumDataFile), app.Paths.Medium)
	assert.Equal(t, "127.0.0.1:0", app.Server.Addr)
	assert.Len(t, app.Dataset.Rules, 2)
	testutil.AssertLogContains(t, handler, slog.LevelInfo, "demo data paths resolved")
}

func TestNewRejectsBadDataset(t *testing.T) {
	cfg := testConfig(t)
	cfg.Paths.DatasetFile = testutil.WriteFile(t, t.TempDir(), "dataset.yaml", "users: [")

	logger, _ := testutil.NewTestLogger(t)
	_, err := New(cfg, logger)
	assert.Error(t, err)
}

func TestRoutes(t *testing.T) {
	app, _ := newTestApp(t, testConfig(t))

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantInBody string
	}{
		{name: "health", method: http.MethodGet, path: "/api/health", wantStatus: http.StatusOK, wantInBody: `"status":"ok"`},
		{name: "ready", method: http.MethodGet, path: "/api/health/ready", wantStatus: http.StatusOK, wantInBody: `"status":"ready"`},
		{name: "metrics", method: http.MethodGet, path: "/api/metrics?window=30", wantStatus: http.StatusOK, wantInBody: `"simulated":true`},
		{name: "metrics small", method: http.MethodGet, path: "/api/metrics?source=small", wantStatus: http.StatusOK, wantInBody: `"impressions"`},
		{name: "metrics bad source", method: http.MethodGet, path: "/api/metrics?source=big", wantStatus: http.StatusBadRequest, wantInBody: `"error"`},
		{name: "scatter", method: http.MethodGet, path: "/api/scatter", wantStatus: http.StatusOK, wantInBody: `"points"`},
		{name: "pivot", method: http.MethodGet, path: "/api/pivot", wantStatus: http.StatusOK, wantInBody: `"rows"`},
		{name: "recommendations", method: http.MethodGet, path: "/api/recommendations", wantStatus: http.StatusOK, wantInBody: `"rule-boost-electronics"`},
		{name: "apply", method: http.MethodPost, path: "/api/recommendations/apply", body: `{"ids":["rule-trim-general"]}`, wantStatus: http.StatusOK, wantInBody: `"applied":["rule-trim-general"]`},
		{name: "login", method: http.MethodPost, path: "/api/login", body: `{"username":"demo","password":"demo"}`, wantStatus: http.StatusOK, wantInBody: `"token":"demo-token-demo"`},
		{name: "login rejected", method: http.MethodPost, path: "/api/login", body: `{"username":"demo"}`, wantStatus: http.StatusUnauthorized, wantInBody: `"Invalid credentials"`},
		{name: "chat", method: http.MethodPost, path: "/api/chat", body: `{"message":"executive summary"}`, wantStatus: http.StatusOK, wantInBody: `"source":"faq"`},
		{name: "preflight", method: http.MethodOptions, path: "/api/chat", wantStatus: http.StatusOK, wantInBody: `{}`},
		{name: "unknown route", method: http.MethodGet, path: "/api/nope", wantStatus: http.StatusNotFound, wantInBody: `"/errors/not-found"`},
		{name: "wrong method", method: http.MethodDelete, path: "/api/metrics", wantStatus: http.StatusMethodNotAllowed, wantInBody: `"/errors/method-not-allowed"`},
		{name: "prometheus", method: http.MethodGet, path: "/metrics", wantStatus: http.StatusOK, wantInBody: "go_goroutines"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(app, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), tt.wantInBody)
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		})
	}
}

func TestEnvelopeRoutesCarryCORS(t *testing.T) {
	app, _ := newTestApp(t, testConfig(t))

	rec := serve(app, http.MethodGet, "/api/pivot", "")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestExportRoute(t *testing.T) {
	app, _ := newTestApp(t, testConfig(t))

	rec := serve(app, http.MethodGet, "/api/recommendations/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, exporter.XLSXContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), config.PresentationFileName)

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{exporter.MetricsSheet, exporter.RecommendationsSheet}, f.GetSheetList())

	rows, err := f.GetRows(exporter.MetricsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Unfiltered: every fixture row is a conversion.
	assert.Equal(t, "5", rows[1][3])
}

func TestMissingDataStillServes(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.DataDir = t.TempDir()
	app, handler := newTestApp(t, cfg)

	assert.Error(t, app.performStartupHealthCheck(context.Background()))

	rec := serve(app, http.MethodGet, "/api/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(0), body["impressions"])
	assert.Equal(t, true, body["simulated"])

	rec = serve(app, http.MethodGet, "/api/health/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	testutil.AssertLogContains(t, handler, slog.LevelError, "error loading csv data")
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.Security.RateLimit.RPS = 0.001
	cfg.Security.RateLimit.Burst = 1
	app, _ := newTestApp(t, cfg)

	assert.Equal(t, http.StatusOK, serve(app, http.MethodGet, "/api/health", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(app, http.MethodGet, "/api/health", "").Code)
}

func TestStartStop(t *testing.T) {
	app, handler := newTestApp(t, testConfig(t))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, app.Start(ctx, cancel))
	require.NoError(t, app.Stop(context.Background()))
	testutil.AssertLogContains(t, handler, slog.LevelInfo, "Startup health check passed")
	testutil.AssertLogContains(t, handler, slog.LevelInfo, "Application shutdown complete")
}
