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

// InvalidCredentialsMessage is the body of every rejected login.
const InvalidCredentialsMessage = "Invalid credentials"

// AuthHandler serves the demo login
type AuthHandler struct {
	service   AuthServiceInterface
	validator *middleware.Validator
	logger    *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service AuthServiceInterface, validator *middleware.Validator, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service:   service,
		validator: validator,
		logger:    logger.With(slog.String("component", "auth_handler")),
	}
}

// Register mounts the auth routes on r
func (h *AuthHandler) Register(r chi.Router) {
	handle(r, "/login", Serve(h.Login, h.logger), http.MethodPost)
}

// Login handles POST /api/login. A body missing either field is rejected
// like any other credential mismatch, without reaching the service.
func (h *AuthHandler) Login(ctx context.Context, req FunctionRequest) Envelope {
	var body api.LoginRequest
	if err := decodeBody(req.Body, &body); err != nil {
		return StatusErrorEnvelope(http.StatusBadRequest, "invalid JSON body")
	}
	if err := h.validator.ValidateStruct(body); err != nil {
		h.logger.DebugContext(ctx, "login rejected", slog.String("reason", middleware.Message(err)))
		return StatusErrorEnvelope(http.StatusUnauthorized, InvalidCredentialsMessage)
	}

	session, err := h.service.Login(ctx, body.Username, body.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return StatusErrorEnvelope(http.StatusUnauthorized, InvalidCredentialsMessage)
	case err != nil:
		h.logger.ErrorContext(ctx, "login failed", slog.String("error", err.Error()))
		return ErrorEnvelope(InternalErrorMessage)
	}
	return NewEnvelope(session, http.StatusOK)
}
