package http

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matanparker/optimize-poc-v2/internal/config"
	apierrors "github.com/matanparker/optimize-poc-v2/internal/errors"
	"github.com/matanparker/optimize-poc-v2/internal/exporter"
	"github.com/matanparker/optimize-poc-v2/internal/middleware"
	api "github.com/matanparker/optimize-poc-v2/pkg/contracts/api/v1"
)

// AnalyticsHandler serves the dashboard data endpoints
type AnalyticsHandler struct {
	service      AnalyticsServiceInterface
	validator    *middleware.Validator
	errorHandler *apierrors.ErrorHandler
	logger       *slog.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(service AnalyticsServiceInterface, validator *middleware.Validator, errorHandler *apierrors.ErrorHandler, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service:      service,
		validator:    validator,
		errorHandler: errorHandler,
		logger:       logger.With(slog.String("component", "analytics_handler")),
	}
}

// Register mounts the analytics routes on r. exportMiddleware wraps the
// workbook download, which is the one route outside the envelope.
func (h *AnalyticsHandler) Register(r chi.Router, exportMiddleware ...func(http.Handler) http.Handler) {
	handle(r, "/metrics", Serve(h.Metrics, h.logger), http.MethodGet)
	handle(r, "/scatter", Serve(h.Scatter, h.logger), http.MethodGet)
	handle(r, "/pivot", Serve(h.Pivot, h.logger), http.MethodGet)
	handle(r, "/recommendations", Serve(h.Recommendations, h.logger), http.MethodGet)
	handle(r, "/recommendations/apply", Serve(h.Apply, h.logger), http.MethodPost)

	r.Group(func(r chi.Router) {
		r.Use(exportMiddleware...)
		r.Get("/recommendations/export", h.Export)
		r.Options("/recommendations/export", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	})
}

// Metrics handles GET /api/metrics
func (h *AnalyticsHandler) Metrics(ctx context.Context, req FunctionRequest) Envelope {
	q := api.WindowQuery{
		Window: parseWindow(req.Query, h.service.DefaultWindow()),
		Source: strings.TrimSpace(req.Query.Get("source")),
	}
	if err := h.validator.ValidateStruct(q); err != nil {
		return StatusErrorEnvelope(http.StatusBadRequest, middleware.Message(err))
	}

	m, err := h.service.Metrics(ctx, q.Window, q.Source)
	if err != nil {
		return h.failure(ctx, "metrics", err)
	}
	return NewEnvelope(m, http.StatusOK)
}

// Scatter handles GET /api/scatter
func (h *AnalyticsHandler) Scatter(ctx context.Context, req FunctionRequest) Envelope {
	resp, err := h.service.Scatter(ctx, parseWindow(req.Query, h.service.DefaultWindow()))
	if err != nil {
		return h.failure(ctx, "scatter", err)
	}
	return NewEnvelope(resp, http.StatusOK)
}

// Pivot handles GET /api/pivot
func (h *AnalyticsHandler) Pivot(ctx context.Context, req FunctionRequest) Envelope {
	resp, err := h.service.Pivot(ctx, parseWindow(req.Query, h.service.DefaultWindow()))
	if err != nil {
		return h.failure(ctx, "pivot", err)
	}
	return NewEnvelope(resp, http.StatusOK)
}

// Recommendations handles GET /api/recommendations
func (h *AnalyticsHandler) Recommendations(ctx context.Context, req FunctionRequest) Envelope {
	list, err := h.service.Recommendations(ctx, parseLimit(req.Query, h.service.DefaultLimit()))
	if err != nil {
		return h.failure(ctx, "recommendations", err)
	}
	return NewEnvelope(list, http.StatusOK)
}

// Apply handles POST /api/recommendations/apply
func (h *AnalyticsHandler) Apply(ctx context.Context, req FunctionRequest) Envelope {
	var body api.ApplyRecommendationsRequest
	if err := decodeBody(req.Body, &body); err != nil {
		return StatusErrorEnvelope(http.StatusBadRequest, "invalid JSON body")
	}
	if err := h.validator.ValidateStruct(body); err != nil {
		return StatusErrorEnvelope(http.StatusBadRequest, middleware.Message(err))
	}

	return NewEnvelope(h.service.Apply(ctx, body.IDs), http.StatusOK)
}

// Export handles GET /api/recommendations/export. The workbook is built in
// memory so a failure can still be reported as a problem document.
func (h *AnalyticsHandler) Export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.service.ExportPresentation(r.Context(), &buf); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ExportError("xlsx", err))
		return
	}

	w.Header().Set("Content-Type", exporter.XLSXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", config.PresentationFileName))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "failed to send workbook", slog.String("error", err.Error()))
	}
}

func (h *AnalyticsHandler) failure(ctx context.Context, op string, err error) Envelope {
	h.logger.ErrorContext(ctx, "analytics request failed",
		slog.String("operation", op),
		slog.String("error", err.Error()))
	return ErrorEnvelope(InternalErrorMessage)
}

// handle registers fn for the given methods plus OPTIONS.
func handle(r chi.Router, pattern string, fn http.HandlerFunc, methods ...string) {
	for _, m := range append(methods, http.MethodOptions) {
		r.Method(m, pattern, fn)
	}
}
