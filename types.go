package codegraph

import "github.com/jward/codegraph/internal/graph"

// Aliases so callers can use the engine without importing internal packages.
type (
	Graph        = graph.Graph
	Meta         = graph.Meta
	Module       = graph.Module
	FileEntry    = graph.FileEntry
	ChangeSet    = graph.ChangeSet
	ImpactResult = graph.ImpactResult
	SymbolResult = graph.SymbolResult
	CallerResult = graph.CallerResult
	Overview     = graph.Overview
	ModuleSlice  = graph.ModuleSlice
)
