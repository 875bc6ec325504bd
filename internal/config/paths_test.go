package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDataPathsExplicitDir(t *testing.T) {
	dir := t.TempDir()

	paths, err := ResolveDataPaths(PathsConfig{DataDir: dir, MediumFile: MediumDataFile, SmallFile: SmallDataFile})
	require.NoError(t, err)

	assert.Equal(t, dir, paths.Root)
	assert.Equal(t, filepath.Join(dir, MediumDataFile), paths.Medium)
	assert.Equal(t, filepath.Join(dir, SmallDataFile), paths.Small)
}

func TestResolveDataPathsAbsoluteFiles(t *testing.T) {
	dir := t.TempDir()
	medium := filepath.Join(dir, "elsewhere", "m.csv")

	paths, err := ResolveDataPaths(PathsConfig{DataDir: dir, MediumFile: medium, SmallFile: "s.csv"})
	require.NoError(t, err)

	assert.Equal(t, medium, paths.Medium)
	assert.Equal(t, filepath.Join(dir, "s.csv"), paths.Small)
}

func TestResolveDataPathsWorkingDirectoryFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unique_medium_name.csv"), []byte("a\n1"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	paths, err := ResolveDataPaths(PathsConfig{MediumFile: "unique_medium_name.csv", SmallFile: SmallDataFile})
	require.NoError(t, err)

	resolved, err := filepath.EvalSymlinks(paths.Root)
	require.NoError(t, err)
	expected, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, expected, resolved)
}

func TestProjectRootFromExecutable(t *testing.T) {
	root, err := ProjectRootFromExecutable()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(root))
}
