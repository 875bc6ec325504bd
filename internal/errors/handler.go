package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// Problem types following RFC 7807
const (
	TypeValidation       = "/errors/validation"
	TypeNotFound         = "/errors/not-found"
	TypeUnauthorized     = "/errors/unauthorized"
	TypeMethodNotAllowed = "/errors/method-not-allowed"
	TypeRateLimit        = "/errors/rate-limit"
	TypeInternal         = "/errors/internal"
	TypeServiceDown      = "/errors/service-unavailable"
	TypeTimeout          = "/errors/timeout"
	TypePayloadTooLarge  = "/errors/payload-too-large"

	TypeDataNotFound = "/errors/data/not-found"
	TypeExportFailed = "/errors/export/failed"
)

// problemTypeByCode maps APIError codes to problem types. Unknown codes are
// reported as TypeInternal.
var problemTypeByCode = map[string]string{
	"VALIDATION_FAILED":   TypeValidation,
	"INVALID_REQUEST":     TypeValidation,
	"NOT_FOUND":           TypeNotFound,
	"DATASET_NOT_FOUND":   TypeDataNotFound,
	"UNAUTHORIZED":        TypeUnauthorized,
	"RATE_LIMIT_EXCEEDED": TypeRateLimit,
	"SERVICE_UNAVAILABLE": TypeServiceDown,
	"EXPORT_FAILED":       TypeExportFailed,
}

// messageRule classifies plain errors by a substring of their message.
type messageRule struct {
	contains string
	status   int
	typ      string
	detail   string // empty means use the error message
}

var messageRules = []messageRule{
	{contains: "not found", status: http.StatusNotFound, typ: TypeNotFound},
	{contains: "unauthorized", status: http.StatusUnauthorized, typ: TypeUnauthorized,
		detail: "Authentication required to access this resource"},
	{contains: "rate limit", status: http.StatusTooManyRequests, typ: TypeRateLimit,
		detail: "Too many requests. Please try again later."},
	{contains: "payload too large", status: http.StatusRequestEntityTooLarge, typ: TypePayloadTooLarge,
		detail: "The request body exceeds the maximum allowed size"},
}

// ErrorHandler renders failures of the non-envelope routes (the workbook
// download and the router fallbacks) as problem documents.
type ErrorHandler struct {
	logger       *slog.Logger
	includeStack bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger, includeStack bool) *ErrorHandler {
	return &ErrorHandler{
		logger:       logger.With(slog.String("component", "error_handler")),
		includeStack: includeStack,
	}
}

// HandleError logs err and writes it as a problem document. A nil error
// writes nothing.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path))

	problem := h.ErrorToProblem(err, r)
	if h.includeStack {
		problem.WithExtension("stack", string(debug.Stack()))
	}
	h.write(w, r, problem)
}

// ErrorToProblem classifies err. Context expiry wins, then *APIError
// anywhere in the chain, then the message rules.
func (h *ErrorHandler) ErrorToProblem(err error, r *http.Request) *ProblemDetails {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewProblemDetails(http.StatusGatewayTimeout, TypeTimeout, "Request Timeout",
			"The request took too long to process and was cancelled", r.URL.Path)
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		typ, ok := problemTypeByCode[apiErr.ErrorCode]
		if !ok {
			typ = TypeInternal
		}
		problem := NewProblemDetails(apiErr.StatusCode, typ, http.StatusText(apiErr.StatusCode), apiErr.Message, r.URL.Path).
			WithExtension("error_code", apiErr.ErrorCode)
		if apiErr.Details != nil {
			problem.WithExtension("details", apiErr.Details)
		}
		return problem
	}

	msg := err.Error()
	for _, rule := range messageRules {
		if !strings.Contains(msg, rule.contains) {
			continue
		}
		detail := rule.detail
		if detail == "" {
			detail = msg
		}
		return NewProblemDetails(rule.status, rule.typ, http.StatusText(rule.status), detail, r.URL.Path)
	}

	return NewProblemDetails(http.StatusInternalServerError, TypeInternal, "Internal Server Error",
		"An unexpected error occurred while processing your request", r.URL.Path)
}

// NotFound is the router's 404 handler.
func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, NewProblemDetails(http.StatusNotFound, TypeNotFound, "Not Found",
		"The requested resource was not found", r.URL.Path))
}

// MethodNotAllowed is the router's 405 handler.
func (h *ErrorHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, NewProblemDetails(http.StatusMethodNotAllowed, TypeMethodNotAllowed, "Method Not Allowed",
		fmt.Sprintf("Method %s is not allowed for this endpoint", r.Method), r.URL.Path))
}

func (h *ErrorHandler) write(w http.ResponseWriter, r *http.Request, problem *ProblemDetails) {
	problem.WithExtension("trace_id", middleware.GetReqID(r.Context()))
	_ = render.Render(w, r, problem)
}
