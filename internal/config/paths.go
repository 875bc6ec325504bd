package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// DataPaths locates the two demo CSV files.
type DataPaths struct {
	Root   string
	Medium string
	Small  string
}

// ProjectRootFromExecutable returns the directory one level above the
// executable's directory, i.e. the repository root for a binary built into
// bin/.
func ProjectRootFromExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}

	// Resolve symlinks to get the actual executable location
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	return filepath.Dir(filepath.Dir(exe)), nil
}

// ResolveDataPaths turns the configured locations into absolute file
// paths. An explicit DataDir is used as is. Otherwise the project root
// next to the executable is preferred, then the working directory; the
// first one holding the medium file wins.
func ResolveDataPaths(cfg PathsConfig) (DataPaths, error) {
	root, err := resolveDataRoot(cfg)
	if err != nil {
		return DataPaths{}, err
	}

	return DataPaths{
		Root:   root,
		Medium: joinIfRelative(root, cfg.MediumFile),
		Small:  joinIfRelative(root, cfg.SmallFile),
	}, nil
}

func resolveDataRoot(cfg PathsConfig) (string, error) {
	if cfg.DataDir != "" {
		return filepath.Abs(cfg.DataDir)
	}

	var candidates []string
	if root, err := ProjectRootFromExecutable(); err == nil {
		candidates = append(candidates, root)
	}
	if wd, err := os.Getwd(); err == nil {
		candidates = append(candidates, wd)
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no data directory candidate could be resolved")
	}

	for _, c := range candidates {
		if _, err := os.Stat(joinIfRelative(c, cfg.MediumFile)); err == nil {
			return c, nil
		}
	}
	return candidates[0], nil
}

func joinIfRelative(root, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(root, name)
}

// LogPathResolution logs resolved paths for debugging
func (p DataPaths) LogPathResolution(logger *slog.Logger) {
	logger.Info("demo data paths resolved",
		slog.String("root", p.Root),
		slog.String("medium", p.Medium),
		slog.String("small", p.Small))
}
