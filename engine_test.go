package codegraph

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/codegraph/internal/store"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(t *testing.T, opts ...Option) (*Engine, string) {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "src/main.ts", "import { login } from './auth/login';\nlogin();\n")
	writeFile(t, root, "src/auth/login.ts",
		"import { db } from '../core/db';\nexport function login(): void { db; }\n")
	writeFile(t, root, "src/core/db.ts", "export const db = 1;\n")

	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	e, err := New(root, opts...)
	require.NoError(t, err)
	return e, root
}

func TestNew_MissingRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestNew_RootIsFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "file.ts", "")
	_, err := New(filepath.Join(root, "file.ts"))
	require.Error(t, err)
}

func TestScan_BuildsGraphAndPersists(t *testing.T) {
	e, root := newTestEngine(t)

	g, meta, err := e.Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "1.0", g.Version)
	assert.Equal(t, filepath.Base(root), g.Project.Name)
	assert.Equal(t, 3, g.Summary.TotalFiles)
	assert.Equal(t, map[string]int{"typescript": 3}, g.Summary.Languages)
	assert.Equal(t, []string{"_root", "auth", "core"}, g.Summary.Modules)
	assert.Equal(t, []string{"src/main.ts"}, g.Summary.EntryPoints)

	assert.Equal(t, []string{"core"}, g.Modules["auth"].DependsOn)
	assert.Equal(t, []string{"auth"}, g.Modules["core"].DependedBy)
	assert.Equal(t, []string{"auth"}, g.Modules["_root"].DependsOn)

	require.NotNil(t, meta)
	assert.Len(t, meta.FileHashes, 3)
	assert.NotEmpty(t, meta.ScanDuration)

	// persisted artifacts load back
	loaded, err := e.Graph()
	require.NoError(t, err)
	assert.Equal(t, g.Summary, loaded.Summary)
	_, err = e.Meta()
	require.NoError(t, err)
}

func TestScan_IgnoresUnsupportedFiles(t *testing.T) {
	e, root := newTestEngine(t)
	writeFile(t, root, "README.md", "# docs\n")
	writeFile(t, root, "data.json", "{}\n")

	g, _, err := e.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, g.Summary.TotalFiles)
}

func TestScan_Serial(t *testing.T) {
	e, _ := newTestEngine(t, WithParallel(false))

	g, _, err := e.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, g.Summary.TotalFiles)
}

func TestUpdate_RequiresScan(t *testing.T) {
	e, _ := newTestEngine(t)

	_, _, err := e.Update(context.Background())
	assert.ErrorIs(t, err, store.ErrNoGraph)
}

func TestUpdate_NoChanges(t *testing.T) {
	e, _ := newTestEngine(t)
	_, _, err := e.Scan(context.Background())
	require.NoError(t, err)

	changes, g, err := e.Update(context.Background())
	require.NoError(t, err)
	assert.True(t, changes.Empty())
	assert.Len(t, changes.Unchanged, 3)
	assert.Equal(t, 3, g.Summary.TotalFiles)
}

func TestUpdate_AddModifyRemove(t *testing.T) {
	e, root := newTestEngine(t)
	_, _, err := e.Scan(context.Background())
	require.NoError(t, err)

	writeFile(t, root, "src/api/server.ts",
		"import { login } from '../auth/login';\nexport function serve(): void {}\n")
	writeFile(t, root, "src/core/db.ts", "export const db = 2;\nexport const pool = 3;\n")
	require.NoError(t, os.Remove(filepath.Join(root, "src", "main.ts")))

	changes, g, err := e.Update(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"src/api/server.ts"}, changes.Added)
	assert.Equal(t, []string{"src/core/db.ts"}, changes.Modified)
	assert.Equal(t, []string{"src/main.ts"}, changes.Removed)

	assert.Equal(t, 3, g.Summary.TotalFiles)
	assert.Equal(t, []string{"api", "auth", "core"}, g.Summary.Modules)
	assert.NotContains(t, g.Files, "src/main.ts")
	assert.Equal(t, []string{"auth"}, g.Modules["api"].DependsOn)
	assert.Equal(t, []string{"api"}, g.Modules["auth"].DependedBy)

	// the modified entry was replaced wholesale
	assert.Len(t, g.Files["src/core/db.ts"].Exports, 2)

	// a second update is a no-op
	changes, _, err = e.Update(context.Background())
	require.NoError(t, err)
	assert.True(t, changes.Empty())
}

func TestUpdate_FallsBackToGraphHashes(t *testing.T) {
	e, root := newTestEngine(t)
	_, _, err := e.Scan(context.Background())
	require.NoError(t, err)

	// Losing meta.json must not force a full re-index.
	require.NoError(t, os.Remove(filepath.Join(root, DefaultOutputDir, "meta.json")))

	changes, _, err := e.Update(context.Background())
	require.NoError(t, err)
	assert.True(t, changes.Empty())
}

func TestWithLanguages_FiltersStably(t *testing.T) {
	e, root := newTestEngine(t, WithLanguages("typescript"))
	writeFile(t, root, "scripts/tool.py", "def tool():\n    pass\n")

	g, _, err := e.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, g.Summary.TotalFiles)
	assert.NotContains(t, g.Files, "scripts/tool.py")

	// filtered-out files must not register as perpetual additions
	changes, _, err := e.Update(context.Background())
	require.NoError(t, err)
	assert.True(t, changes.Empty())
}

func TestWithExcludes(t *testing.T) {
	e, _ := newTestEngine(t, WithExcludes("**/db.ts"))

	g, _, err := e.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, g.Summary.TotalFiles)
	assert.NotContains(t, g.Files, "src/core/db.ts")
}

func TestImpact_EndToEnd(t *testing.T) {
	e, _ := newTestEngine(t)
	_, _, err := e.Scan(context.Background())
	require.NoError(t, err)

	result, err := e.Impact("core", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"auth"}, result.DirectDependants)
	assert.Equal(t, []string{"_root", "auth"}, result.TransitiveDependants)
	assert.Equal(t, []string{"_root", "auth", "core"}, result.AffectedModules)
	assert.Equal(t, []string{"src/auth/login.ts", "src/core/db.ts", "src/main.ts"}, result.AffectedFiles)
}

func TestImpact_RequiresScan(t *testing.T) {
	e, _ := newTestEngine(t)
	_, err := e.Impact("core", 3)
	assert.ErrorIs(t, err, store.ErrNoGraph)
}
