package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"

	"go.opentelemetry.io/otel/attribute"

	"github.com/matanparker/optimize-poc-v2/internal/infrastructure"
)

// Envelope is the function-runtime response: a status code, flat headers and
// a JSON text body.
type Envelope struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

// InternalErrorMessage is the error body of every 500 envelope. The cause
// is logged, never sent.
const InternalErrorMessage = "Internal server error"

// CORSHeaders returns the permissive header set carried by every envelope.
func CORSHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type",
		"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
		"Content-Type":                 "application/json",
	}
}

// NewEnvelope serializes data as the body. A value that cannot be encoded
// becomes an error envelope.
func NewEnvelope(data interface{}, status int) Envelope {
	body, err := json.Marshal(data)
	if err != nil {
		return ErrorEnvelope(InternalErrorMessage)
	}
	return Envelope{StatusCode: status, Headers: CORSHeaders(), Body: string(body)}
}

// ErrorEnvelope is a 500 envelope with body {"error": message}.
func ErrorEnvelope(message string) Envelope {
	return StatusErrorEnvelope(http.StatusInternalServerError, message)
}

// StatusErrorEnvelope is an {"error": message} envelope with the given status.
func StatusErrorEnvelope(status int, message string) Envelope {
	body, _ := json.Marshal(map[string]string{"error": message})
	return Envelope{StatusCode: status, Headers: CORSHeaders(), Body: string(body)}
}

// PreflightEnvelope answers OPTIONS requests.
func PreflightEnvelope() Envelope {
	return Envelope{StatusCode: http.StatusOK, Headers: CORSHeaders(), Body: "{}"}
}

// Write sends the envelope as an HTTP response.
func (e Envelope) Write(w http.ResponseWriter) {
	for k, v := range e.Headers {
		w.Header().Set(k, v)
	}
	status := e.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, e.Body)
}

// FunctionRequest is what a function sees of the incoming request.
type FunctionRequest struct {
	Method string
	Query  url.Values
	Body   []byte
}

// Function computes an envelope for one request. Functions never write to
// the connection themselves.
type Function func(ctx context.Context, req FunctionRequest) Envelope

// Serve adapts fn to net/http. OPTIONS is answered without calling fn and a
// panic inside fn becomes a 500 envelope.
func Serve(fn Function, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			PreflightEnvelope().Write(w)
			return
		}

		req, err := newFunctionRequest(r)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				StatusErrorEnvelope(http.StatusRequestEntityTooLarge, "request body too large").Write(w)
				return
			}
			logger.WarnContext(r.Context(), "failed to read request body", slog.String("error", err.Error()))
			StatusErrorEnvelope(http.StatusBadRequest, "failed to read request body").Write(w)
			return
		}

		env := invoke(r.Context(), fn, req, logger)
		infrastructure.SetSpanAttributes(r.Context(), attribute.Int("envelope.status_code", env.StatusCode))
		env.Write(w)
	}
}

func invoke(ctx context.Context, fn Function, req FunctionRequest, logger *slog.Logger) (env Envelope) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.ErrorContext(ctx, "function panicked",
				slog.Any("panic", rec),
				slog.String("method", req.Method),
				slog.String("stack", string(debug.Stack())))
			env = ErrorEnvelope(InternalErrorMessage)
		}
	}()
	return fn(ctx, req)
}

func newFunctionRequest(r *http.Request) (FunctionRequest, error) {
	req := FunctionRequest{Method: r.Method, Query: r.URL.Query()}
	if r.Body == nil || r.Method == http.MethodGet {
		return req, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return req, err
	}
	req.Body = body
	return req, nil
}
