package http

import (
	"context"
	"io"

	"github.com/matanparker/optimize-poc-v2/internal/services"
	"github.com/matanparker/optimize-poc-v2/pkg/contracts"
	"github.com/matanparker/optimize-poc-v2/pkg/contracts/domain"
)

// AnalyticsServiceInterface defines the dashboard data operations
type AnalyticsServiceInterface interface {
	DefaultWindow() int
	DefaultLimit() int
	Metrics(ctx context.Context, days int, source string) (domain.Metrics, error)
	Scatter(ctx context.Context, days int) (domain.ScatterResponse, error)
	Pivot(ctx context.Context, days int) (domain.PivotResponse, error)
	Recommendations(ctx context.Context, limit int) (domain.RecommendationList, error)
	Apply(ctx context.Context, ids []string) domain.AppliedRecommendations
	ExportPresentation(ctx context.Context, w io.Writer) error
}

// AuthServiceInterface defines the demo login operation
type AuthServiceInterface interface {
	Login(ctx context.Context, username, password string) (domain.Session, error)
}

// AssistantServiceInterface defines the research assistant operation
type AssistantServiceInterface interface {
	Ask(ctx context.Context, message string) (domain.ChatAnswer, error)
}

// HealthServiceInterface defines the health operations
type HealthServiceInterface interface {
	HealthCheck(ctx context.Context) services.HealthStatus
	ReadinessCheck(ctx context.Context) services.HealthStatus
	LivenessCheck(ctx context.Context) services.HealthStatus
	Version() contracts.VersionInfo
}

var (
	_ AnalyticsServiceInterface = (*services.AnalyticsService)(nil)
	_ AuthServiceInterface      = (*services.AuthService)(nil)
	_ AssistantServiceInterface = (*services.AssistantService)(nil)
	_ HealthServiceInterface    = (*services.HealthService)(nil)
)
