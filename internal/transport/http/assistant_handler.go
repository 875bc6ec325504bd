package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matanparker/optimize-poc-v2/internal/middleware"
	"github.com/matanparker/optimize-poc-v2/internal/services"
	api "github.com/matanparker/optimize-poc-v2/pkg/contracts/api/v1"
)

// AssistantHandler serves the research assistant chat
type AssistantHandler struct {
	service   AssistantServiceInterface
	validator *middleware.Validator
	logger    *slog.Logger
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(service AssistantServiceInterface, validator *middleware.Validator, logger *slog.Logger) *AssistantHandler {
	return &AssistantHandler{
		service:   service,
		validator: validator,
		logger:    logger.With(slog.String("component", "assistant_handler")),
	}
}

// Register mounts the assistant routes on r
func (h *AssistantHandler) Register(r chi.Router) {
	handle(r, "/chat", Serve(h.Chat, h.logger), http.MethodPost)
}

// Chat handles POST /api/chat
func (h *AssistantHandler) Chat(ctx context.Context, req FunctionRequest) Envelope {
	var body api.ChatRequest
	if err := decodeBody(req.Body, &body); err != nil {
		return StatusErrorEnvelope(http.StatusBadRequest, "invalid JSON body")
	}
	if err := h.validator.ValidateStruct(body); err != nil {
		return StatusErrorEnvelope(http.StatusBadRequest, middleware.Message(err))
	}

	answer, err := h.service.Ask(ctx, body.Message)
	switch {
	case errors.Is(err, services.ErrEmptyMessage):
		return StatusErrorEnvelope(http.StatusBadRequest, err.Error())
	case err != nil:
		h.logger.ErrorContext(ctx, "assistant failed", slog.String("error", err.Error()))
		return ErrorEnvelope(InternalErrorMessage)
	}
	return NewEnvelope(answer, http.StatusOK)
}
