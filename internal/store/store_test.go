package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/codegraph/internal/graph"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), ".codegraph"))
	require.NoError(t, err)
	return s
}

func testGraph() *graph.Graph {
	g := graph.New("proj", "/tmp/proj", graph.Config{Languages: []string{}, ExcludePatterns: []string{}})
	g.ScannedAt = "2026-08-23T00:00:00Z"
	g.AttachFile(&graph.FileEntry{
		Path:      "src/auth/login.ts",
		Module:    "auth",
		Language:  "typescript",
		Hash:      "sha256:0123456789abcdef",
		Lines:     10,
		Functions: []graph.FunctionRecord{{Name: "login", Signature: "login()", StartLine: 1, EndLine: 3}},
		Imports:   []graph.ImportRecord{{Source: "./session", Symbols: []string{"Session"}, IsExternal: false}},
		Exports:   []graph.ExportRecord{{Name: "login", Kind: "function"}},
		Classes:   []graph.ClassRecord{},
		Types:     []graph.TypeRecord{},
	})
	g.RecalculateSummary()
	g.RebuildDependencies()
	return g
}

func TestLoadGraph_MissingYieldsErrNoGraph(t *testing.T) {
	s := newTestStore(t)
	_, err := s.LoadGraph()
	assert.ErrorIs(t, err, ErrNoGraph)

	_, err = s.LoadMeta()
	assert.ErrorIs(t, err, ErrNoGraph)
}

func TestSaveLoadGraph_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	g := testGraph()

	require.NoError(t, s.SaveGraph(g))
	loaded, err := s.LoadGraph()
	require.NoError(t, err)

	assert.Equal(t, g.Version, loaded.Version)
	assert.Equal(t, g.Project, loaded.Project)
	assert.Equal(t, g.Summary, loaded.Summary)
	require.Contains(t, loaded.Files, "src/auth/login.ts")
	assert.Equal(t, *g.Files["src/auth/login.ts"], *loaded.Files["src/auth/login.ts"])
	assert.Equal(t, *g.Modules["auth"], *loaded.Modules["auth"])
}

func TestSaveGraph_Deterministic(t *testing.T) {
	s := newTestStore(t)
	g := testGraph()

	require.NoError(t, s.SaveGraph(g))
	first, err := os.ReadFile(filepath.Join(s.Dir(), "graph.json"))
	require.NoError(t, err)

	require.NoError(t, s.SaveGraph(g))
	second, err := os.ReadFile(filepath.Join(s.Dir(), "graph.json"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, byte('\n'), first[len(first)-1])
}

func TestSaveLoadMeta_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	hash := "abc123"
	meta := &graph.Meta{
		LastScanAt:   "2026-08-23T00:00:00Z",
		CommitHash:   &hash,
		ScanDuration: "12ms",
		FileHashes:   map[string]string{"src/auth/login.ts": "sha256:0123456789abcdef"},
	}

	require.NoError(t, s.SaveMeta(meta))
	loaded, err := s.LoadMeta()
	require.NoError(t, err)
	assert.Equal(t, meta, loaded)
}

func TestWriteSlices_ReplacesExisting(t *testing.T) {
	s := newTestStore(t)
	g := testGraph()

	overview := graph.GenerateOverview(g)
	slice, ok := graph.BuildModuleSlice(g, "auth")
	require.True(t, ok)

	require.NoError(t, s.WriteSlices(overview, []graph.ModuleSlice{slice}))

	stale := filepath.Join(s.Dir(), "slices", "gone.json")
	require.NoError(t, os.WriteFile(stale, []byte("{}"), 0o644))

	require.NoError(t, s.WriteSlices(overview, []graph.ModuleSlice{slice}))

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(s.Dir(), "slices", "_overview.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(s.Dir(), "slices", "auth.json"))
	assert.NoError(t, err)
}
