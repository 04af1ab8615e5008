package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jward/codegraph/internal/graph"
)

var (
	flagSliceModule   string
	flagSliceWithDeps bool
	flagSliceWrite    bool
)

var sliceCmd = &cobra.Command{
	Use:   "slice [path]",
	Short: "Emit self-contained JSON views of the graph",
	Long: `Without --module, emits the project overview: every module with its
stats and edges. With --module, emits that module's files, functions, and
exports; --with-deps inlines export summaries of its direct dependencies.
--write saves the overview plus one document per module under slices/.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSlice,
}

func init() {
	sliceCmd.Flags().StringVar(&flagSliceModule, "module", "", "emit a single module slice")
	sliceCmd.Flags().BoolVar(&flagSliceWithDeps, "with-deps", false, "inline direct dependency summaries")
	sliceCmd.Flags().BoolVar(&flagSliceWrite, "write", false, "write slice documents to the output directory")
}

func runSlice(cmd *cobra.Command, args []string) error {
	engine, err := newEngine(args)
	if err != nil {
		return err
	}
	g, err := engine.Graph()
	if err != nil {
		return requireGraph(err)
	}

	if flagSliceWrite {
		overview := graph.GenerateOverview(g)
		slices := make([]graph.ModuleSlice, 0, len(g.Modules))
		for _, om := range overview.Modules {
			if slice, ok := graph.BuildModuleSlice(g, om.Name); ok {
				slices = append(slices, slice)
			}
		}
		if err := engine.Store().WriteSlices(overview, slices); err != nil {
			return err
		}
		fmt.Printf("Wrote %d slices to %s\n", len(slices)+1, engine.Store().Dir())
		return nil
	}

	if flagSliceModule == "" {
		return outputJSON(graph.GenerateOverview(g))
	}
	if flagSliceWithDeps {
		slice, ok := graph.BuildModuleSliceWithDeps(g, flagSliceModule)
		if !ok {
			return fmt.Errorf("module %q not found", flagSliceModule)
		}
		return outputJSON(slice)
	}
	slice, ok := graph.BuildModuleSlice(g, flagSliceModule)
	if !ok {
		return fmt.Errorf("module %q not found", flagSliceModule)
	}
	return outputJSON(slice)
}
