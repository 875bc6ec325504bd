package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/matanparker/optimize-poc-v2/internal/config"
	"github.com/matanparker/optimize-poc-v2/internal/dataprocessing"
	"github.com/matanparker/optimize-poc-v2/internal/exporter"
	"github.com/matanparker/optimize-poc-v2/pkg/contracts/domain"
)

// Clock returns the current time. The window filter measures from it.
type Clock func() time.Time

// DataSource supplies the two demo tables. *dataprocessing.Loader is the
// production implementation.
type DataSource interface {
	Load(ctx context.Context) (medium, small *dataprocessing.Table)
}

// AnalyticsRecorder receives pipeline outcomes for metrics.
// *infrastructure.BusinessMetrics satisfies it.
type AnalyticsRecorder interface {
	RecordWindowFallback(ctx context.Context, source string, days int)
	RecordRecommendations(ctx context.Context, count int)
	RecordExport(ctx context.Context)
}

// AnalyticsService runs the campaign pipeline for the dashboard endpoints.
type AnalyticsService struct {
	data          DataSource
	rules         []domain.Recommendation
	recorder      AnalyticsRecorder
	now           Clock
	defaultWindow int
	defaultLimit  int
	logger        *slog.Logger
}

// AnalyticsOption customizes an AnalyticsService.
type AnalyticsOption func(*AnalyticsService)

// WithClock replaces time.Now.
func WithClock(c Clock) AnalyticsOption {
	return func(s *AnalyticsService) {
		if c != nil {
			s.now = c
		}
	}
}

// WithDefaults sets the window and limit used when a request gives none.
func WithDefaults(windowDays, limit int) AnalyticsOption {
	return func(s *AnalyticsService) {
		if windowDays > 0 {
			s.defaultWindow = windowDays
		}
		if limit >= 0 {
			s.defaultLimit = limit
		}
	}
}

// NewAnalyticsService creates the service. rules are the static
// recommendations appended after the generated ones.
func NewAnalyticsService(data DataSource, rules []domain.Recommendation, recorder AnalyticsRecorder, logger *slog.Logger, opts ...AnalyticsOption) *AnalyticsService {
	if logger == nil {
		logger = slog.Default()
	}

	s := &AnalyticsService{
		data:          data,
		rules:         rules,
		recorder:      recorder,
		now:           time.Now,
		defaultWindow: config.DefaultWindowDays,
		defaultLimit:  dataprocessing.DefaultRecommendationLimit,
		logger:        logger.With(slog.String("component", "analytics_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultWindow is the window used for a missing or invalid window parameter.
func (s *AnalyticsService) DefaultWindow() int { return s.defaultWindow }

// DefaultLimit is the recommendation limit used for a missing limit parameter.
func (s *AnalyticsService) DefaultLimit() int { return s.defaultLimit }

// Metrics returns the KPI record of the chosen source over the last days.
// An empty source means medium.
func (s *AnalyticsService) Metrics(ctx context.Context, days int, source string) (domain.Metrics, error) {
	if err := ctx.Err(); err != nil {
		return domain.Metrics{}, err
	}
	if source == "" {
		source = config.SourceMedium
	}

	medium, small := s.data.Load(ctx)

	var table *dataprocessing.Table
	var dateColumn string
	switch source {
	case config.SourceMedium:
		table, dateColumn = medium, config.MediumDateColumn
	case config.SourceSmall:
		table, dateColumn = small, config.SmallDateColumn
	default:
		return domain.Metrics{}, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}

	filtered := s.window(ctx, table, dateColumn, days, source)
	m := dataprocessing.ComputeMetrics(filtered)

	s.logger.DebugContext(ctx, "metrics computed",
		slog.String("source", source),
		slog.Int("window_days", s.days(days)),
		slog.Int("rows", filtered.Len()))
	return m, nil
}

// Scatter returns one point per category of the windowed medium data.
func (s *AnalyticsService) Scatter(ctx context.Context, days int) (domain.ScatterResponse, error) {
	if err := ctx.Err(); err != nil {
		return domain.ScatterResponse{}, err
	}

	medium, _ := s.data.Load(ctx)
	filtered := s.window(ctx, medium, config.MediumDateColumn, days, config.SourceMedium)

	points := dataprocessing.ComputeScatter(filtered)
	if points == nil {
		points = []domain.ScatterPoint{}
	}
	return domain.ScatterResponse{Points: points, Simulated: true}, nil
}

// Pivot returns revenue per region and category of the windowed medium data.
func (s *AnalyticsService) Pivot(ctx context.Context, days int) (domain.PivotResponse, error) {
	if err := ctx.Err(); err != nil {
		return domain.PivotResponse{}, err
	}

	medium, _ := s.data.Load(ctx)
	filtered := s.window(ctx, medium, config.MediumDateColumn, days, config.SourceMedium)

	rows := dataprocessing.ComputePivot(filtered)
	if rows == nil {
		rows = []domain.PivotRow{}
	}
	return domain.PivotResponse{Rows: rows, Simulated: true}, nil
}

// Recommendations generates category recommendations over the whole medium
// file, appends the static rules and truncates to limit.
func (s *AnalyticsService) Recommendations(ctx context.Context, limit int) (domain.RecommendationList, error) {
	if err := ctx.Err(); err != nil {
		return domain.RecommendationList{}, err
	}

	items := s.recommend(ctx, limit)
	return domain.RecommendationList{Items: items}, nil
}

// Apply acknowledges the selected recommendation ids. Nothing changes.
func (s *AnalyticsService) Apply(ctx context.Context, ids []string) domain.AppliedRecommendations {
	if ids == nil {
		ids = []string{}
	}

	s.logger.InfoContext(ctx, "recommendations applied",
		slog.Int("count", len(ids)),
		slog.Any("ids", ids))

	return domain.AppliedRecommendations{Applied: ids, Simulated: true}
}

// ExportPresentation writes the XLSX workbook of the unfiltered medium data:
// its metrics and up to the default limit of recommendations.
func (s *AnalyticsService) ExportPresentation(ctx context.Context, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	medium, _ := s.data.Load(ctx)
	m := dataprocessing.ComputeMetrics(medium)
	recs := s.merge(ctx, medium, dataprocessing.DefaultRecommendationLimit)

	if err := exporter.WritePresentation(w, m, recs); err != nil {
		s.logger.ErrorContext(ctx, "presentation export failed", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	if s.recorder != nil {
		s.recorder.RecordExport(ctx)
	}
	s.logger.InfoContext(ctx, "presentation exported",
		slog.Int("recommendations", len(recs)))
	return nil
}

// Report computes the metrics record and recommendation list in one load.
// The metrics-report command uses it.
func (s *AnalyticsService) Report(ctx context.Context, days, limit int) (domain.Metrics, []domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return domain.Metrics{}, nil, err
	}

	medium, _ := s.data.Load(ctx)
	filtered := s.window(ctx, medium, config.MediumDateColumn, days, config.SourceMedium)
	return dataprocessing.ComputeMetrics(filtered), s.merge(ctx, medium, limit), nil
}

func (s *AnalyticsService) recommend(ctx context.Context, limit int) []domain.Recommendation {
	medium, _ := s.data.Load(ctx)
	return s.merge(ctx, medium, limit)
}

func (s *AnalyticsService) merge(ctx context.Context, t *dataprocessing.Table, limit int) []domain.Recommendation {
	generated := dataprocessing.GenerateRecommendations(t)
	items := dataprocessing.MergeRecommendations(generated, s.rules, limit)

	if s.recorder != nil {
		s.recorder.RecordRecommendations(ctx, len(items))
	}
	s.logger.DebugContext(ctx, "recommendations generated",
		slog.Int("generated", len(generated)),
		slog.Int("static", len(s.rules)),
		slog.Int("returned", len(items)))
	return items
}

func (s *AnalyticsService) window(ctx context.Context, t *dataprocessing.Table, dateColumn string, days int, source string) *dataprocessing.Table {
	days = s.days(days)
	filtered, fellBack := dataprocessing.FilterByWindow(t, dateColumn, days, s.now())
	if fellBack {
		s.logger.InfoContext(ctx, "no rows inside window, using all rows",
			slog.String("source", source),
			slog.Int("window_days", days),
			slog.Int("rows", t.Len()))
		if s.recorder != nil {
			s.recorder.RecordWindowFallback(ctx, source, days)
		}
	}
	return filtered
}

func (s *AnalyticsService) days(days int) int {
	if days <= 0 {
		return s.defaultWindow
	}
	return days
}
