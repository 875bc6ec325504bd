package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Row is one CSV record keyed by header name. Values are kept as text;
// numbers are interpreted when aggregated.
type Row map[string]string

// Table is a parsed CSV file.
type Table struct {
	Columns []string
	Rows    []Row
	Schema  Schema
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// WithRows returns a table sharing t's header and schema over rows.
func (t *Table) WithRows(rows []Row) *Table {
	return &Table{Columns: t.Columns, Rows: rows, Schema: t.Schema}
}

// EmptyTable returns a table with no header and no rows.
func EmptyTable() *Table {
	return &Table{Rows: []Row{}}
}

// ParseCSV splits text into a header line and data lines. Fields are
// separated by every comma; quoting is not interpreted, quote characters
// are removed. Lines shorter than the header yield empty strings for the
// missing columns and extra values are ignored.
func ParseCSV(text string) *Table {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	columns := splitLine(lines[0])
	t := &Table{
		Columns: columns,
		Rows:    make([]Row, 0, len(lines)-1),
		Schema:  ResolveSchema(columns),
	}

	for _, line := range lines[1:] {
		values := splitLine(line)
		row := make(Row, len(columns))
		for i, col := range columns {
			if i < len(values) {
				row[col] = values[i]
			} else {
				row[col] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func splitLine(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = strings.ReplaceAll(strings.TrimSpace(p), `"`, "")
	}
	return parts
}

// LoadFile reads and parses one CSV file.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	return ParseCSV(string(data)), nil
}

// LoadRecorder receives loader outcomes for metrics.
type LoadRecorder interface {
	RecordCSVLoad(ctx context.Context, file string, rows int)
	RecordCSVLoadFailure(ctx context.Context, file string)
}

// Loader reads the two demo data files. Nothing is cached: every Load call
// goes back to disk.
type Loader struct {
	mediumPath string
	smallPath  string
	logger     *slog.Logger
	recorder   LoadRecorder
}

// NewLoader creates a loader for the medium and small data files.
func NewLoader(mediumPath, smallPath string, logger *slog.Logger, recorder LoadRecorder) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		mediumPath: mediumPath,
		smallPath:  smallPath,
		logger:     logger.With(slog.String("component", "csv_loader")),
		recorder:   recorder,
	}
}

// Paths returns the medium and small file paths.
func (l *Loader) Paths() (medium, small string) {
	return l.mediumPath, l.smallPath
}

// Load reads both files. If either one cannot be read, both tables are
// returned empty and the failure is only logged; callers see "no data".
func (l *Loader) Load(ctx context.Context) (medium, small *Table) {
	medium, err := l.read(ctx, l.mediumPath)
	if err != nil {
		return EmptyTable(), EmptyTable()
	}
	small, err = l.read(ctx, l.smallPath)
	if err != nil {
		return EmptyTable(), EmptyTable()
	}

	l.logger.DebugContext(ctx, "demo data loaded",
		slog.Int("medium_rows", medium.Len()),
		slog.Int("small_rows", small.Len()))
	return medium, small
}

func (l *Loader) read(ctx context.Context, path string) (*Table, error) {
	t, err := LoadFile(path)
	if err != nil {
		l.logger.ErrorContext(ctx, "error loading csv data",
			slog.String("path", path),
			slog.String("error", err.Error()))
		if l.recorder != nil {
			l.recorder.RecordCSVLoadFailure(ctx, path)
		}
		return nil, err
	}
	if l.recorder != nil {
		l.recorder.RecordCSVLoad(ctx, path, t.Len())
	}
	return t, nil
}

// Check verifies both files are readable without parsing them.
func (l *Loader) Check() error {
	for _, p := range []string{l.mediumPath, l.smallPath} {
		f, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("open csv %s: %w", p, err)
		}
		f.Close()
	}
	return nil
}
