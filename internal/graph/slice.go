package graph

// ModuleStats aggregates one module's counts for slice output.
type ModuleStats struct {
	TotalFiles     int `json:"totalFiles"`
	TotalFunctions int `json:"totalFunctions"`
	TotalClasses   int `json:"totalClasses"`
	TotalLines     int `json:"totalLines"`
}

// OverviewModule is one module's row in the project overview.
type OverviewModule struct {
	Name        string      `json:"name"`
	Path        string      `json:"path"`
	Stats       ModuleStats `json:"stats"`
	EntryPoints []string    `json:"entryPoints"`
	DependsOn   []string    `json:"dependsOn"`
	DependedBy  []string    `json:"dependedBy"`
}

// Overview is the whole-project slice: every module with its stats.
type Overview struct {
	Project   string           `json:"project"`
	ScannedAt string           `json:"scannedAt"`
	Modules   []OverviewModule `json:"modules"`
}

// SliceFile is a file's extracted surface as it appears in a module slice.
type SliceFile struct {
	Path      string           `json:"path"`
	Language  string           `json:"language"`
	Functions []FunctionRecord `json:"functions"`
	Classes   []ClassRecord    `json:"classes"`
	Exports   []ExportRecord   `json:"exports"`
}

// ModuleSlice is a self-contained view of one module.
type ModuleSlice struct {
	Module     string      `json:"module"`
	Path       string      `json:"path"`
	Stats      ModuleStats `json:"stats"`
	Files      []SliceFile `json:"files"`
	Exports    []string    `json:"exports"`
	DependsOn  []string    `json:"dependsOn"`
	DependedBy []string    `json:"dependedBy"`
}

// DepInfo summarizes one direct dependency inside a with-deps slice.
type DepInfo struct {
	Name    string   `json:"name"`
	Exports []string `json:"exports"`
}

// ModuleSliceWithDeps is a module slice plus one-hop dependency summaries.
type ModuleSliceWithDeps struct {
	ModuleSlice
	Dependencies []DepInfo `json:"dependencies"`
}

// GenerateOverview builds the project overview from the current graph.
func GenerateOverview(g *Graph) Overview {
	modules := []OverviewModule{}
	for _, name := range sortedKeys(g.Modules) {
		m := g.Modules[name]
		entryPoints := []string{}
		for _, path := range m.Files {
			if f, ok := g.Files[path]; ok && f.IsEntryPoint {
				entryPoints = append(entryPoints, path)
			}
		}
		modules = append(modules, OverviewModule{
			Name:        name,
			Path:        modulePath(m),
			Stats:       moduleStats(g, m),
			EntryPoints: entryPoints,
			DependsOn:   m.DependsOn,
			DependedBy:  m.DependedBy,
		})
	}
	return Overview{
		Project:   g.Project.Name,
		ScannedAt: g.ScannedAt,
		Modules:   modules,
	}
}

// BuildModuleSlice builds the slice for one module. ok is false when the
// module does not exist.
func BuildModuleSlice(g *Graph, name string) (ModuleSlice, bool) {
	m, found := g.Modules[name]
	if !found {
		return ModuleSlice{}, false
	}
	files := []SliceFile{}
	exports := map[string]bool{}
	for _, path := range m.Files {
		f, ok := g.Files[path]
		if !ok {
			continue
		}
		files = append(files, SliceFile{
			Path:      path,
			Language:  f.Language,
			Functions: f.Functions,
			Classes:   f.Classes,
			Exports:   f.Exports,
		})
		for _, e := range f.Exports {
			exports[e.Name] = true
		}
	}
	return ModuleSlice{
		Module:     name,
		Path:       modulePath(m),
		Stats:      moduleStats(g, m),
		Files:      files,
		Exports:    sortedKeys(exports),
		DependsOn:  m.DependsOn,
		DependedBy: m.DependedBy,
	}, true
}

// BuildModuleSliceWithDeps inlines export summaries for each direct
// dependency alongside the module's own slice.
func BuildModuleSliceWithDeps(g *Graph, name string) (ModuleSliceWithDeps, bool) {
	slice, ok := BuildModuleSlice(g, name)
	if !ok {
		return ModuleSliceWithDeps{}, false
	}
	deps := []DepInfo{}
	for _, dep := range slice.DependsOn {
		depSlice, ok := BuildModuleSlice(g, dep)
		if !ok {
			continue
		}
		deps = append(deps, DepInfo{Name: dep, Exports: depSlice.Exports})
	}
	return ModuleSliceWithDeps{ModuleSlice: slice, Dependencies: deps}, true
}

// modulePath is the directory of the module's first member file.
func modulePath(m *Module) string {
	if len(m.Files) == 0 {
		return ""
	}
	return posixDir(m.Files[0])
}

func moduleStats(g *Graph, m *Module) ModuleStats {
	var stats ModuleStats
	for _, path := range m.Files {
		f, ok := g.Files[path]
		if !ok {
			continue
		}
		stats.TotalFiles++
		stats.TotalFunctions += len(f.Functions)
		stats.TotalClasses += len(f.Classes)
		stats.TotalLines += f.Lines
	}
	return stats
}
