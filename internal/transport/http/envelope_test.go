package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matanparker/optimize-poc-v2/internal/middleware"
	"github.com/matanparker/optimize-poc-v2/internal/shared/testutil"
	"github.com/matanparker/optimize-poc-v2/pkg/contracts/domain"
)

func assertCORS(t *testing.T, h http.Header) {
	t.Helper()

	assert.Equal(t, "*", h.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Content-Type", h.Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "GET, POST, OPTIONS", h.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "application/json", h.Get("Content-Type"))
}

func TestNewEnvelope(t *testing.T) {
	tests := []struct {
		name       string
		data       interface{}
		status     int
		wantStatus int
		wantBody   string
	}{
		{
			name:       "object",
			data:       map[string]int{"a": 1},
			status:     http.StatusOK,
			wantStatus: http.StatusOK,
			wantBody:   `{"a":1}`,
		},
		{
			name:       "non-finite ratio encodes as null",
			data:       domain.ScatterPoint{Campaign: "X", CostPerConversion: domain.Ratio(math.Inf(1)), ConversionRate: domain.Ratio(math.NaN())},
			status:     http.StatusOK,
			wantStatus: http.StatusOK,
			wantBody:   `{"campaign":"X","cost_per_conversion":null,"conversion_rate":null}`,
		},
		{
			name:       "unencodable value",
			data:       math.NaN(),
			status:     http.StatusOK,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := NewEnvelope(tt.data, tt.status)
			assert.Equal(t, tt.wantStatus, env.StatusCode)
			assert.Equal(t, CORSHeaders(), env.Headers)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, env.Body)
			}
		})
	}
}

func TestErrorAndPreflightEnvelopes(t *testing.T) {
	env := ErrorEnvelope("boom")
	assert.Equal(t, http.StatusInternalServerError, env.StatusCode)
	assert.JSONEq(t, `{"error":"boom"}`, env.Body)

	env = StatusErrorEnvelope(http.StatusUnauthorized, InvalidCredentialsMessage)
	assert.Equal(t, http.StatusUnauthorized, env.StatusCode)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, env.Body)

	env = PreflightEnvelope()
	assert.Equal(t, http.StatusOK, env.StatusCode)
	assert.Equal(t, "{}", env.Body)
	assert.Equal(t, CORSHeaders(), env.Headers)
}

func TestEnvelopeJSONShape(t *testing.T) {
	data, err := json.Marshal(PreflightEnvelope())
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "statusCode")
	assert.Contains(t, raw, "headers")
	assert.Equal(t, "{}", raw["body"])
}

func TestServe(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)

	t.Run("options short-circuits", func(t *testing.T) {
		called := false
		h := Serve(func(ctx context.Context, req FunctionRequest) Envelope {
			called = true
			return NewEnvelope("x", http.StatusOK)
		}, logger)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/metrics", nil))

		assert.False(t, called)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "{}", rec.Body.String())
		assertCORS(t, rec.Header())
	})

	t.Run("passes query and body", func(t *testing.T) {
		var got FunctionRequest
		h := Serve(func(ctx context.Context, req FunctionRequest) Envelope {
			got = req
			return NewEnvelope(map[string]bool{"ok": true}, http.StatusCreated)
		}, logger)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat?window=7", strings.NewReader(`{"message":"hi"}`)))

		assert.Equal(t, http.MethodPost, got.Method)
		assert.Equal(t, "7", got.Query.Get("window"))
		assert.JSONEq(t, `{"message":"hi"}`, string(got.Body))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assertCORS(t, rec.Header())
	})

	t.Run("panic becomes 500 envelope", func(t *testing.T) {
		h := Serve(func(ctx context.Context, req FunctionRequest) Envelope {
			panic("unexpected")
		}, logger)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pivot", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
		assertCORS(t, rec.Header())
		testutil.AssertLogContains(t, handler, slog.LevelError, "function panicked")
	})

	t.Run("oversized body", func(t *testing.T) {
		h := middleware.MaxBodySize(8)(Serve(func(ctx context.Context, req FunctionRequest) Envelope {
			t.Error("function must not run")
			return Envelope{}
		}, logger))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"far too long"}`)))

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		raw        string
		wantWindow int
		wantLimit  int
	}{
		{raw: "", wantWindow: 30, wantLimit: 10},
		{raw: "window=7&limit=3", wantWindow: 7, wantLimit: 3},
		{raw: "window=abc&limit=xyz", wantWindow: 30, wantLimit: 10},
		{raw: "window=0&limit=0", wantWindow: 30, wantLimit: 0},
		{raw: "window=-5&limit=-2", wantWindow: 30, wantLimit: 0},
		{raw: "window=%2014%20&limit=%205", wantWindow: 14, wantLimit: 5},
		{raw: "limit=2.5", wantWindow: 30, wantLimit: 2},
		{raw: "limit=3rows", wantWindow: 30, wantLimit: 3},
		{raw: "limit=%2B4", wantWindow: 30, wantLimit: 4},
		{raw: "limit=-", wantWindow: 30, wantLimit: 10},
		{raw: "limit=.5", wantWindow: 30, wantLimit: 10},
		{raw: "limit=99999999999999999999", wantWindow: 30, wantLimit: math.MaxInt},
		{raw: "limit=-99999999999999999999", wantWindow: 30, wantLimit: 0},
		{raw: "window=200000", wantWindow: 200000, wantLimit: 10},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/metrics?"+tt.raw, nil)
			q := req.URL.Query()
			assert.Equal(t, tt.wantWindow, parseWindow(q, 30))
			assert.Equal(t, tt.wantLimit, parseLimit(q, 10))
		})
	}
}
