package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/matanparker/optimize-poc-v2/internal/config"
	"github.com/matanparker/optimize-poc-v2/internal/dataprocessing"
	"github.com/matanparker/optimize-poc-v2/internal/exporter"
	"github.com/matanparker/optimize-poc-v2/internal/infrastructure"
	"github.com/matanparker/optimize-poc-v2/internal/services"
	"github.com/matanparker/optimize-poc-v2/internal/validation"
	"github.com/matanparker/optimize-poc-v2/pkg/contracts"
	"github.com/matanparker/optimize-poc-v2/pkg/contracts/domain"
)

// report is what the command prints to stdout.
type report struct {
	WindowDays      int                     `json:"window_days"`
	Metrics         domain.Metrics          `json:"metrics"`
	Recommendations []domain.Recommendation `json:"recommendations"`
}

// options holds the parsed command line.
type options struct {
	dataDir string
	window  int
	limit   int
	xlsx    string
	csv     string
	asOf    string
	version bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Logs go to stderr so stdout stays valid JSON.
	logger := infrastructure.WithComponent(infrastructure.NewLogger(cfg.Logging, os.Stderr), "metrics_report")
	ctx := infrastructure.EnsureTraceID(context.Background())

	if err := run(ctx, cfg, os.Args[1:], os.Stdout, logger); err != nil {
		logger.ErrorContext(ctx, "metrics report failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func parseFlags(cfg *config.Config, args []string) (options, error) {
	fs := flag.NewFlagSet("metrics-report", flag.ContinueOnError)
	var opts options
	fs.StringVar(&opts.dataDir, "data", cfg.Paths.DataDir, "directory holding the demo CSV files (defaults to the project root)")
	fs.IntVar(&opts.window, "window", cfg.Analytics.DefaultWindowDays, "time window in days for the metrics record")
	fs.IntVar(&opts.limit, "limit", cfg.Analytics.DefaultLimit, "maximum number of recommendations")
	fs.StringVar(&opts.xlsx, "xlsx", "", "write the presentation workbook to this .xlsx file")
	fs.StringVar(&opts.csv, "csv", "", "write the metrics record to this .csv file; recommendations go next to it")
	fs.StringVar(&opts.asOf, "as-of", "", "end of the time window as YYYY-MM-DD (defaults to now)")
	fs.BoolVar(&opts.version, "version", false, "print the version and exit")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.limit < 0 {
		opts.limit = 0
	}
	if opts.asOf != "" {
		if _, ok := dataprocessing.ParseDate(opts.asOf); !ok {
			return options{}, fmt.Errorf("invalid -as-of date %q", opts.asOf)
		}
	}
	return opts, nil
}

func run(ctx context.Context, cfg *config.Config, args []string, stdout io.Writer, logger *slog.Logger) error {
	opts, err := parseFlags(cfg, args)
	if err != nil {
		return err
	}
	if opts.version {
		_, err := fmt.Fprintln(stdout, contracts.GetVersionString())
		return err
	}

	pathsCfg := cfg.Paths
	pathsCfg.DataDir = opts.dataDir
	paths, err := config.ResolveDataPaths(pathsCfg)
	if err != nil {
		return fmt.Errorf("failed to resolve data paths: %w", err)
	}
	paths.LogPathResolution(logger)

	validator := validation.NewFileValidator(logger)
	if _, err := validator.ValidateDataDirectory(paths.Root); err != nil {
		return err
	}
	for _, p := range []string{paths.Medium, paths.Small} {
		if err := validator.ValidateCSVFile(p); err != nil {
			return err
		}
	}
	if opts.xlsx != "" {
		if err := validator.ValidateOutputFile(opts.xlsx, ".xlsx"); err != nil {
			return err
		}
	}
	if opts.csv != "" {
		if err := validator.ValidateOutputFile(opts.csv, ".csv"); err != nil {
			return err
		}
	}

	dataset, err := config.LoadDataset(cfg.Paths.DatasetFile)
	if err != nil {
		return fmt.Errorf("failed to load demo dataset: %w", err)
	}

	serviceOpts := []services.AnalyticsOption{
		services.WithDefaults(cfg.Analytics.DefaultWindowDays, cfg.Analytics.DefaultLimit),
	}
	if opts.asOf != "" {
		asOf, _ := dataprocessing.ParseDate(opts.asOf)
		serviceOpts = append(serviceOpts, services.WithClock(func() time.Time { return asOf }))
	}

	loader := dataprocessing.NewLoader(paths.Medium, paths.Small, logger, nil)
	analytics := services.NewAnalyticsService(loader, dataset.Rules, nil, logger, serviceOpts...)

	window := opts.window
	if window <= 0 {
		window = analytics.DefaultWindow()
	}

	metrics, recs, err := analytics.Report(ctx, window, opts.limit)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	if opts.xlsx != "" {
		if err := saveWorkbook(opts.xlsx, metrics, recs); err != nil {
			return err
		}
		logger.InfoContext(ctx, "presentation workbook written", slog.String("file", opts.xlsx))
	}

	if opts.csv != "" {
		if err := saveCSV(opts.csv, metrics, recs, logger); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report{WindowDays: window, Metrics: metrics, Recommendations: recs})
}

func saveWorkbook(path string, m domain.Metrics, recs []domain.Recommendation) error {
	f, err := exporter.BuildPresentation(m, recs)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func saveCSV(path string, m domain.Metrics, recs []domain.Recommendation, logger *slog.Logger) error {
	writer := exporter.NewCSVWriter("", logger)

	if _, err := writer.WriteMetrics(path, m); err != nil {
		return fmt.Errorf("failed to write metrics csv: %w", err)
	}
	recPath := recommendationsPath(path)
	if _, err := writer.WriteRecommendations(recPath, recs); err != nil {
		return fmt.Errorf("failed to write recommendations csv: %w", err)
	}
	return nil
}

// recommendationsPath maps metrics.csv to metrics_recommendations.csv.
func recommendationsPath(metricsPath string) string {
	ext := filepath.Ext(metricsPath)
	return strings.TrimSuffix(metricsPath, ext) + "_recommendations" + ext
}
