package main

import (
	"os"

	"github.com/spf13/cobra"
)

var flagImpactDepth int

var impactCmd = &cobra.Command{
	Use:   "impact <target>",
	Short: "Report which modules are affected when a target changes",
	Long: `Resolves the target as a module name, a file path, or a unique path
substring, then walks reverse dependency edges up to --depth hops.`,
	Args: cobra.ExactArgs(1),
	RunE: runImpact,
}

func init() {
	impactCmd.Flags().IntVar(&flagImpactDepth, "depth", 3, "maximum dependency hops to follow")
}

func runImpact(cmd *cobra.Command, args []string) error {
	engine, err := newEngine(nil)
	if err != nil {
		return err
	}
	result, err := engine.Impact(args[0], flagImpactDepth)
	if err != nil {
		return requireGraph(err)
	}
	if flagFormat == "json" {
		return outputJSON(result)
	}
	formatImpactText(os.Stdout, result)
	return nil
}
