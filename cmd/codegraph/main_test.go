package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/codegraph/internal/store"
)

func TestValidateFormat(t *testing.T) {
	assert.NoError(t, validateFormat("json"))
	assert.NoError(t, validateFormat("text"))
	assert.Error(t, validateFormat("yaml"))
	assert.Error(t, validateFormat(""))
}

func TestSplitCommaList(t *testing.T) {
	assert.Equal(t, []string{"go", "typescript"}, splitCommaList("go,typescript"))
	assert.Equal(t, []string{"go"}, splitCommaList(" go , "))
	assert.Empty(t, splitCommaList(""))
}

func TestRequireGraph(t *testing.T) {
	err := requireGraph(store.ErrNoGraph)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "codegraph scan")

	other := errors.New("boom")
	assert.Equal(t, other, requireGraph(other))
}

func TestResolveTargetDir(t *testing.T) {
	dir := t.TempDir()

	abs, err := resolveTargetDir([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, dir, abs)

	_, err = resolveTargetDir([]string{filepath.Join(dir, "missing")})
	assert.Error(t, err)

	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = resolveTargetDir([]string{file})
	assert.Error(t, err)
}

func TestLoadProjectConfig(t *testing.T) {
	root := t.TempDir()

	cfg, err := loadProjectConfig(root)
	require.NoError(t, err)
	assert.Empty(t, cfg.Languages)
	assert.Empty(t, cfg.Exclude)

	yml := "languages:\n  - typescript\n  - go\nexclude:\n  - \"**/*_test.ts\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, configFileName), []byte(yml), 0o644))

	cfg, err = loadProjectConfig(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"typescript", "go"}, cfg.Languages)
	assert.Equal(t, []string{"**/*_test.ts"}, cfg.Exclude)

	require.NoError(t, os.WriteFile(filepath.Join(root, configFileName), []byte("languages: {bad"), 0o644))
	_, err = loadProjectConfig(root)
	assert.Error(t, err)
}

func TestWatchIgnored(t *testing.T) {
	root := "/proj"
	assert.False(t, watchIgnored(root, "/proj"))
	assert.False(t, watchIgnored(root, "/proj/src/main.ts"))
	assert.True(t, watchIgnored(root, "/proj/.codegraph/graph.json"))
	assert.True(t, watchIgnored(root, "/proj/node_modules/pkg"))
	assert.True(t, watchIgnored(root, "/proj/src/__pycache__/x.py"))
	assert.True(t, watchIgnored(root, "/proj/.git/HEAD"))
}
