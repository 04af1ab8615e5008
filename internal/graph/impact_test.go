package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// chainGraph builds web -> api -> auth -> core (each importing the next).
func chainGraph() *Graph {
	return newTestGraph(
		entry("src/web/main.ts", relImport("../api/server")),
		entry("src/api/server.ts", relImport("../auth/login")),
		entry("src/auth/login.ts", relImport("../core/db")),
		entry("src/core/db.ts"),
	)
}

func TestAnalyzeImpact_ModuleTarget(t *testing.T) {
	g := chainGraph()

	result := AnalyzeImpact(g, "core", 10)

	assert.Equal(t, "core", result.Target)
	assert.Equal(t, TargetModule, result.TargetType)
	assert.Equal(t, []string{"auth"}, result.DirectDependants)
	assert.Equal(t, []string{"api", "auth", "web"}, result.TransitiveDependants)
	assert.Equal(t, []string{"api", "auth", "core", "web"}, result.AffectedModules)
	assert.Equal(t, []string{
		"src/api/server.ts", "src/auth/login.ts", "src/core/db.ts", "src/web/main.ts",
	}, result.AffectedFiles)
}

func TestAnalyzeImpact_FileTarget(t *testing.T) {
	g := chainGraph()

	result := AnalyzeImpact(g, "src/auth/login.ts", 10)

	assert.Equal(t, TargetFile, result.TargetType)
	assert.Equal(t, []string{"api"}, result.DirectDependants)
	assert.Equal(t, []string{"api", "web"}, result.TransitiveDependants)
	assert.Equal(t, []string{"api", "auth", "web"}, result.AffectedModules)
}

func TestAnalyzeImpact_UniqueSubstringResolvesToFile(t *testing.T) {
	g := chainGraph()

	result := AnalyzeImpact(g, "login", 10)

	assert.Equal(t, "src/auth/login.ts", result.Target)
	assert.Equal(t, TargetFile, result.TargetType)
}

func TestAnalyzeImpact_AmbiguousSubstringIsUnknown(t *testing.T) {
	g := chainGraph()

	// "src/" matches every file.
	result := AnalyzeImpact(g, "src/", 10)

	assert.Equal(t, TargetUnknown, result.TargetType)
	assert.Empty(t, result.DirectDependants)
	assert.Empty(t, result.TransitiveDependants)
	assert.Empty(t, result.AffectedModules)
	assert.Empty(t, result.AffectedFiles)
}

func TestAnalyzeImpact_UnknownTarget(t *testing.T) {
	g := chainGraph()

	result := AnalyzeImpact(g, "nosuchthing", 10)

	assert.Equal(t, "nosuchthing", result.Target)
	assert.Equal(t, TargetUnknown, result.TargetType)
	assert.Empty(t, result.AffectedModules)
}

func TestAnalyzeImpact_DepthBound(t *testing.T) {
	g := chainGraph()

	result := AnalyzeImpact(g, "core", 1)
	assert.Equal(t, []string{"auth"}, result.TransitiveDependants)
	assert.Equal(t, []string{"auth", "core"}, result.AffectedModules)

	result = AnalyzeImpact(g, "core", 2)
	assert.Equal(t, []string{"api", "auth"}, result.TransitiveDependants)
	assert.Equal(t, []string{"api", "auth", "core"}, result.AffectedModules)

	result = AnalyzeImpact(g, "core", 3)
	assert.Equal(t, []string{"api", "auth", "web"}, result.TransitiveDependants)
}

func TestAnalyzeImpact_ZeroDepthPerformsNoExpansion(t *testing.T) {
	g := chainGraph()

	result := AnalyzeImpact(g, "core", 0)

	// Direct dependants come from the edge list, not the walk.
	assert.Equal(t, []string{"auth"}, result.DirectDependants)
	assert.Empty(t, result.TransitiveDependants)
	assert.Equal(t, []string{"core"}, result.AffectedModules)
	assert.Equal(t, []string{"src/core/db.ts"}, result.AffectedFiles)
}

func TestAnalyzeImpact_CycleTerminates(t *testing.T) {
	g := newTestGraph(
		entry("src/a/x.ts", relImport("../b/y")),
		entry("src/b/y.ts", relImport("../a/x")),
	)

	result := AnalyzeImpact(g, "a", 100)

	assert.Equal(t, []string{"b"}, result.DirectDependants)
	assert.Equal(t, []string{"b"}, result.TransitiveDependants)
	assert.Equal(t, []string{"a", "b"}, result.AffectedModules)
}
