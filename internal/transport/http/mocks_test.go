package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	apierrors "github.com/matanparker/optimize-poc-v2/internal/errors"
	"github.com/matanparker/optimize-poc-v2/internal/middleware"
	"github.com/matanparker/optimize-poc-v2/internal/shared/testutil"
	"github.com/matanparker/optimize-poc-v2/pkg/contracts/domain"
)

// MockAnalyticsService is a mock implementation of AnalyticsServiceInterface
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) DefaultWindow() int { return 30 }

func (m *MockAnalyticsService) DefaultLimit() int { return 10 }

func (m *MockAnalyticsService) Metrics(ctx context.Context, days int, source string) (domain.Metrics, error) {
	args := m.Called(days, source)
	return args.Get(0).(domain.Metrics), args.Error(1)
}

func (m *MockAnalyticsService) Scatter(ctx context.Context, days int) (domain.ScatterResponse, error) {
	args := m.Called(days)
	return args.Get(0).(domain.ScatterResponse), args.Error(1)
}

func (m *MockAnalyticsService) Pivot(ctx context.Context, days int) (domain.PivotResponse, error) {
	args := m.Called(days)
	return args.Get(0).(domain.PivotResponse), args.Error(1)
}

func (m *MockAnalyticsService) Recommendations(ctx context.Context, limit int) (domain.RecommendationList, error) {
	args := m.Called(limit)
	return args.Get(0).(domain.RecommendationList), args.Error(1)
}

func (m *MockAnalyticsService) Apply(ctx context.Context, ids []string) domain.AppliedRecommendations {
	args := m.Called(ids)
	return args.Get(0).(domain.AppliedRecommendations)
}

func (m *MockAnalyticsService) ExportPresentation(ctx context.Context, w io.Writer) error {
	args := m.Called(w)
	if payload, ok := args.Get(0).(string); ok {
		_, _ = io.WriteString(w, payload)
		return nil
	}
	return args.Error(1)
}

// MockAuthService is a mock implementation of AuthServiceInterface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	args := m.Called(username, password)
	return args.Get(0).(domain.Session), args.Error(1)
}

// MockAssistantService is a mock implementation of AssistantServiceInterface
type MockAssistantService struct {
	mock.Mock
}

func (m *MockAssistantService) Ask(ctx context.Context, message string) (domain.ChatAnswer, error) {
	args := m.Called(message)
	return args.Get(0).(domain.ChatAnswer), args.Error(1)
}

// newTestRouter mounts register under /api the way the server does.
func newTestRouter(register func(r chi.Router)) http.Handler {
	r := chi.NewRouter()
	r.Route("/api", register)
	return r
}

func testDeps(t *testing.T) (*slog.Logger, *testutil.BufferedSlogHandler, *middleware.Validator, *apierrors.ErrorHandler) {
	t.Helper()

	logger, handler := testutil.NewTestLogger(t)
	return logger, handler, middleware.NewValidator(logger), apierrors.NewErrorHandler(logger, false)
}
