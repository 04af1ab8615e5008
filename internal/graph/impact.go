package graph

import (
	"sort"
	"strings"
)

// Target types reported by impact analysis.
const (
	TargetModule  = "module"
	TargetFile    = "file"
	TargetUnknown = "unknown"
)

// ImpactResult reports what is affected when a target changes. Transitive
// dependants are every module the reverse walk visits, direct ones included.
type ImpactResult struct {
	Target               string   `json:"target"`
	TargetType           string   `json:"targetType"`
	DirectDependants     []string `json:"directDependants"`
	TransitiveDependants []string `json:"transitiveDependants"`
	AffectedModules      []string `json:"affectedModules"`
	AffectedFiles        []string `json:"affectedFiles"`
}

// AnalyzeImpact resolves target to a module or file and walks reverse
// dependency edges up to maxDepth hops. An unresolvable target yields an
// empty result rather than an error.
func AnalyzeImpact(g *Graph, target string, maxDepth int) ImpactResult {
	name, targetType := g.resolveTarget(target)
	if targetType == TargetUnknown {
		return ImpactResult{
			Target:               target,
			TargetType:           TargetUnknown,
			DirectDependants:     []string{},
			TransitiveDependants: []string{},
			AffectedModules:      []string{},
			AffectedFiles:        []string{},
		}
	}

	module := name
	if targetType == TargetFile {
		module = g.Files[name].Module
	}

	direct := []string{}
	if m, ok := g.Modules[module]; ok {
		direct = append(direct, m.DependedBy...)
	}

	reached := g.bfsDependants(module, maxDepth)

	affected := append([]string{module}, reached...)
	sort.Strings(affected)

	files := []string{}
	for _, name := range affected {
		if m, ok := g.Modules[name]; ok {
			files = append(files, m.Files...)
		}
	}
	sort.Strings(files)

	return ImpactResult{
		Target:               name,
		TargetType:           targetType,
		DirectDependants:     direct,
		TransitiveDependants: reached,
		AffectedModules:      affected,
		AffectedFiles:        files,
	}
}

// resolveTarget tries an exact module name, then an exact file path, then a
// unique substring match over file paths.
func (g *Graph) resolveTarget(target string) (string, string) {
	if _, ok := g.Modules[target]; ok {
		return target, TargetModule
	}
	if _, ok := g.Files[target]; ok {
		return target, TargetFile
	}
	var matches []string
	for path := range g.Files {
		if strings.Contains(path, target) {
			matches = append(matches, path)
		}
	}
	if len(matches) == 1 {
		return matches[0], TargetFile
	}
	return "", TargetUnknown
}

// bfsDependants walks dependedBy edges breadth-first from start, bounding
// the frontier at maxDepth hops. The start module is visited but not
// reported. Results are sorted.
func (g *Graph) bfsDependants(start string, maxDepth int) []string {
	visited := map[string]bool{start: true}
	type item struct {
		name  string
		depth int
	}
	queue := []item{{start, 0}}
	reached := []string{}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth >= maxDepth {
			continue
		}
		m, ok := g.Modules[cur.name]
		if !ok {
			continue
		}
		for _, dep := range m.DependedBy {
			if visited[dep] {
				continue
			}
			visited[dep] = true
			reached = append(reached, dep)
			queue = append(queue, item{dep, cur.depth + 1})
		}
	}
	sort.Strings(reached)
	return reached
}
