package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/jward/codegraph/internal/graph"
)

// outputJSON writes v as indented JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatScanText summarizes a fresh scan as readable text.
func formatScanText(w io.Writer, g *graph.Graph, meta *graph.Meta) {
	fmt.Fprintf(w, "Scanned %s\n", g.Project.Name)
	fmt.Fprintf(w, "Files: %d\n", g.Summary.TotalFiles)
	fmt.Fprintf(w, "Functions: %d\n", g.Summary.TotalFunctions)
	fmt.Fprintf(w, "Classes: %d\n", g.Summary.TotalClasses)
	fmt.Fprintf(w, "Modules: %d\n", len(g.Summary.Modules))
	if meta != nil && meta.ScanDuration != "" {
		fmt.Fprintf(w, "Duration: %s\n", meta.ScanDuration)
	}
	fmt.Fprintln(w)
	formatLanguageCounts(w, g.Summary.Languages)
	if len(g.Summary.EntryPoints) > 0 {
		fmt.Fprintln(w, "Entry points:")
		for _, ep := range g.Summary.EntryPoints {
			fmt.Fprintf(w, "  %s\n", ep)
		}
	}
}

// formatStatusText prints the persisted graph's vital signs. meta may be nil.
func formatStatusText(w io.Writer, g *graph.Graph, meta *graph.Meta) {
	fmt.Fprintf(w, "Project: %s\n", g.Project.Name)
	fmt.Fprintf(w, "Root: %s\n", g.Project.Root)
	fmt.Fprintf(w, "Scanned: %s\n", g.ScannedAt)
	if g.CommitHash != nil {
		fmt.Fprintf(w, "Commit: %s\n", *g.CommitHash)
	}
	if meta != nil && meta.ScanDuration != "" {
		fmt.Fprintf(w, "Duration: %s\n", meta.ScanDuration)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Files: %d\n", g.Summary.TotalFiles)
	fmt.Fprintf(w, "Functions: %d\n", g.Summary.TotalFunctions)
	fmt.Fprintf(w, "Classes: %d\n", g.Summary.TotalClasses)
	fmt.Fprintln(w)
	formatLanguageCounts(w, g.Summary.Languages)
	if len(g.Summary.Modules) > 0 {
		fmt.Fprintln(w, "Modules:")
		for _, name := range g.Summary.Modules {
			m := g.Modules[name]
			fmt.Fprintf(w, "  %s (%d files)\n", name, len(m.Files))
		}
	}
}

// formatModuleText prints one module's files and edges.
func formatModuleText(w io.Writer, g *graph.Graph, m *graph.Module) {
	fmt.Fprintf(w, "Module: %s\n", m.Name)
	fmt.Fprintf(w, "Files: %d\n", len(m.Files))
	fmt.Fprintln(w)

	if len(m.Files) > 0 {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  PATH\tLANGUAGE\tFUNCTIONS\tLINES")
		for _, path := range m.Files {
			f, ok := g.Files[path]
			if !ok {
				continue
			}
			fmt.Fprintf(tw, "  %s\t%s\t%d\t%d\n", path, f.Language, len(f.Functions), f.Lines)
		}
		tw.Flush()
		fmt.Fprintln(w)
	}

	if len(m.DependsOn) > 0 {
		fmt.Fprintln(w, "Depends on:")
		for _, dep := range m.DependsOn {
			fmt.Fprintf(w, "  %s\n", dep)
		}
		fmt.Fprintln(w)
	}

	if len(m.DependedBy) > 0 {
		fmt.Fprintln(w, "Depended on by:")
		for _, dep := range m.DependedBy {
			fmt.Fprintf(w, "  %s\n", dep)
		}
	}
}

// formatSymbolsText formats symbol query hits as aligned columns.
func formatSymbolsText(w io.Writer, name string, results []graph.SymbolResult) {
	if len(results) == 0 {
		fmt.Fprintf(w, "No symbols matching %q.\n", name)
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tMODULE\tFILE\tLINE")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", r.Name, r.Kind, r.Module, r.File, r.StartLine)
	}
	tw.Flush()
}

// formatImpactText prints an impact analysis as readable text.
func formatImpactText(w io.Writer, result graph.ImpactResult) {
	if result.TargetType == graph.TargetUnknown {
		fmt.Fprintf(w, "Target %q not found in graph.\n", result.Target)
		return
	}
	fmt.Fprintf(w, "Target: %s (%s)\n", result.Target, result.TargetType)
	fmt.Fprintln(w)

	if len(result.DirectDependants) > 0 {
		fmt.Fprintln(w, "Direct dependants:")
		for _, m := range result.DirectDependants {
			fmt.Fprintf(w, "  %s\n", m)
		}
		fmt.Fprintln(w)
	}
	if len(result.TransitiveDependants) > 0 {
		fmt.Fprintln(w, "Transitive dependants:")
		for _, m := range result.TransitiveDependants {
			fmt.Fprintf(w, "  %s\n", m)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Affected modules: %d\n", len(result.AffectedModules))
	for _, m := range result.AffectedModules {
		fmt.Fprintf(w, "  %s\n", m)
	}
	fmt.Fprintf(w, "Affected files: %d\n", len(result.AffectedFiles))
}

// formatLanguageCounts prints per-language file counts, largest first.
func formatLanguageCounts(w io.Writer, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	fmt.Fprintln(w, "Languages:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %d files\n", name, counts[name])
	}
	fmt.Fprintln(w)
}

// validFormats lists accepted values for --format.
var validFormats = []string{"json", "text"}

// validateFormat checks that the --format flag value is recognized.
func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be %s", format, strings.Join(validFormats, " or "))
}
