package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jward/codegraph/internal/graph"
)

var (
	flagQueryType    string
	flagQueryModule  string
	flagQueryCallers string
)

var queryCmd = &cobra.Command{
	Use:   "query [name]",
	Short: "Look up symbols, modules, or importers in the graph",
	Long: `Searches the persisted graph. By default matches function, class, and
type names exactly, falling back to substring matching. --module prints one
module's files and edges; --callers lists files importing a symbol.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&flagQueryType, "type", "", "filter symbol kind: function|class|type")
	queryCmd.Flags().StringVar(&flagQueryModule, "module", "", "show one module instead of searching symbols")
	queryCmd.Flags().StringVar(&flagQueryCallers, "callers", "", "list files importing the given symbol")
}

func runQuery(cmd *cobra.Command, args []string) error {
	engine, err := newEngine(nil)
	if err != nil {
		return err
	}
	g, err := engine.Graph()
	if err != nil {
		return requireGraph(err)
	}

	switch {
	case flagQueryModule != "":
		m, ok := g.Modules[flagQueryModule]
		if !ok {
			fmt.Printf("Module %q not found.\n", flagQueryModule)
			return nil
		}
		if flagFormat == "json" {
			return outputJSON(m)
		}
		formatModuleText(os.Stdout, g, m)
		return nil

	case flagQueryCallers != "":
		callers := graph.FindCallers(g, flagQueryCallers)
		if flagFormat == "json" {
			return outputJSON(callers)
		}
		for _, c := range callers {
			fmt.Printf("%s:%s\n", c.Module, c.File)
		}
		if len(callers) == 0 {
			fmt.Printf("No files import %q.\n", flagQueryCallers)
		}
		return nil

	default:
		if len(args) == 0 {
			return fmt.Errorf("query needs a symbol name, --module, or --callers")
		}
		if flagQueryType != "" && flagQueryType != "function" && flagQueryType != "class" && flagQueryType != "type" {
			return fmt.Errorf("invalid --type %q: must be function, class, or type", flagQueryType)
		}
		results := graph.QuerySymbol(g, args[0], flagQueryType)
		if flagFormat == "json" {
			return outputJSON(results)
		}
		formatSymbolsText(os.Stdout, args[0], results)
		return nil
	}
}
