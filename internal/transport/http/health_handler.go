package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matanparker/optimize-poc-v2/internal/services"
)

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	service HealthServiceInterface
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service HealthServiceInterface, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "health")),
	}
}

// Register mounts the health routes on r
func (h *HealthHandler) Register(r chi.Router) {
	handle(r, "/health", Serve(h.HealthCheck, h.logger), http.MethodGet)
	handle(r, "/health/ready", Serve(h.ReadinessCheck, h.logger), http.MethodGet)
	handle(r, "/health/live", Serve(h.LivenessCheck, h.logger), http.MethodGet)
	handle(r, "/version", Serve(h.Version, h.logger), http.MethodGet)
}

// HealthCheck handles GET /api/health
func (h *HealthHandler) HealthCheck(ctx context.Context, _ FunctionRequest) Envelope {
	return NewEnvelope(h.service.HealthCheck(ctx), http.StatusOK)
}

// ReadinessCheck handles GET /api/health/ready
func (h *HealthHandler) ReadinessCheck(ctx context.Context, _ FunctionRequest) Envelope {
	status := h.service.ReadinessCheck(ctx)
	if status.Status != services.StatusReady {
		return NewEnvelope(status, http.StatusServiceUnavailable)
	}
	return NewEnvelope(status, http.StatusOK)
}

// LivenessCheck handles GET /api/health/live
func (h *HealthHandler) LivenessCheck(ctx context.Context, _ FunctionRequest) Envelope {
	return NewEnvelope(h.service.LivenessCheck(ctx), http.StatusOK)
}

// Version handles GET /api/version
func (h *HealthHandler) Version(_ context.Context, _ FunctionRequest) Envelope {
	return NewEnvelope(h.service.Version(), http.StatusOK)
}
