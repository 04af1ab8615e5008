package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Build the code graph from scratch",
	Long:  "Discovers source files, extracts structure with tree-sitter, derives module dependency edges, and writes graph.json and meta.json.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScan,
}

var updateCmd = &cobra.Command{
	Use:   "update [path]",
	Short: "Incrementally update the code graph",
	Long:  "Re-discovers files, re-indexes only those whose content changed, and merges the result into the persisted graph.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runUpdate,
}

var statusCmd = &cobra.Command{
	Use:   "status [path]",
	Short: "Show the persisted graph's vital signs",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStatus,
}

func init() {
	for _, cmd := range []*cobra.Command{scanCmd, updateCmd} {
		cmd.Flags().StringVar(&flagLanguages, "languages", "", "comma-separated language filter (e.g. go,typescript)")
		cmd.Flags().StringArrayVar(&flagExcludes, "exclude", nil, "glob pattern to exclude (repeatable)")
		cmd.Flags().BoolVar(&flagSerial, "serial", false, "disable parallel extraction")
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	engine, err := newEngine(args)
	if err != nil {
		return err
	}
	g, meta, err := engine.Scan(cmd.Context())
	if err != nil {
		return err
	}
	if flagFormat == "json" {
		return outputJSON(g.Summary)
	}
	formatScanText(os.Stdout, g, meta)
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	engine, err := newEngine(args)
	if err != nil {
		return err
	}
	changes, g, err := engine.Update(cmd.Context())
	if err != nil {
		return requireGraph(err)
	}
	if flagFormat == "json" {
		return outputJSON(map[string]any{
			"added":    changes.Added,
			"modified": changes.Modified,
			"removed":  changes.Removed,
			"summary":  g.Summary,
		})
	}
	if changes.Empty() {
		fmt.Println("No changes detected.")
		return nil
	}
	fmt.Printf("+%d ~%d -%d\n", len(changes.Added), len(changes.Modified), len(changes.Removed))
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	engine, err := newEngine(args)
	if err != nil {
		return err
	}
	g, err := engine.Graph()
	if err != nil {
		return requireGraph(err)
	}
	meta, err := engine.Meta()
	if err != nil {
		meta = nil // meta is optional for status
	}
	if flagFormat == "json" {
		return outputJSON(map[string]any{"graph": g.Summary, "project": g.Project, "scannedAt": g.ScannedAt, "commitHash": g.CommitHash})
	}
	formatStatusText(os.Stdout, g, meta)
	return nil
}
