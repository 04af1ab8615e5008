package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sliceGraph() *Graph {
	a := entry("src/auth/login.ts", relImport("../core/db"))
	a.Lines = 50
	a.Functions = []FunctionRecord{{Name: "login"}}
	a.Exports = []ExportRecord{{Name: "login", Kind: "function"}}

	b := entry("src/auth/index.ts")
	b.Lines = 10
	b.Exports = []ExportRecord{{Name: "login", Kind: "function"}, {Name: "AuthError", Kind: "class"}}
	b.Classes = []ClassRecord{{Name: "AuthError"}}

	c := entry("src/core/db.ts")
	c.Exports = []ExportRecord{{Name: "connect", Kind: "function"}}

	return newTestGraph(a, b, c)
}

func TestGenerateOverview(t *testing.T) {
	g := sliceGraph()
	g.ScannedAt = "2026-08-23T00:00:00Z"

	overview := GenerateOverview(g)

	assert.Equal(t, "proj", overview.Project)
	assert.Equal(t, "2026-08-23T00:00:00Z", overview.ScannedAt)
	require.Len(t, overview.Modules, 2)

	auth := overview.Modules[0]
	assert.Equal(t, "auth", auth.Name)
	assert.Equal(t, "src/auth", auth.Path)
	assert.Equal(t, 2, auth.Stats.TotalFiles)
	assert.Equal(t, 1, auth.Stats.TotalFunctions)
	assert.Equal(t, 1, auth.Stats.TotalClasses)
	assert.Equal(t, 60, auth.Stats.TotalLines)
	assert.Equal(t, []string{"src/auth/index.ts"}, auth.EntryPoints)
	assert.Equal(t, []string{"core"}, auth.DependsOn)

	core := overview.Modules[1]
	assert.Equal(t, "core", core.Name)
	assert.Equal(t, []string{"auth"}, core.DependedBy)
}

func TestBuildModuleSlice(t *testing.T) {
	g := sliceGraph()

	slice, ok := BuildModuleSlice(g, "auth")
	require.True(t, ok)

	assert.Equal(t, "auth", slice.Module)
	require.Len(t, slice.Files, 2)
	assert.Equal(t, "src/auth/index.ts", slice.Files[0].Path)
	// exports deduplicate across files and sort
	assert.Equal(t, []string{"AuthError", "login"}, slice.Exports)
	assert.Equal(t, []string{"core"}, slice.DependsOn)
}

func TestBuildModuleSlice_MissingModule(t *testing.T) {
	g := sliceGraph()
	_, ok := BuildModuleSlice(g, "nope")
	assert.False(t, ok)
}

func TestBuildModuleSliceWithDeps(t *testing.T) {
	g := sliceGraph()

	slice, ok := BuildModuleSliceWithDeps(g, "auth")
	require.True(t, ok)

	require.Len(t, slice.Dependencies, 1)
	assert.Equal(t, "core", slice.Dependencies[0].Name)
	assert.Equal(t, []string{"connect"}, slice.Dependencies[0].Exports)
}
