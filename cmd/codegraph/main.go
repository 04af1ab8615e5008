package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jward/codegraph"
	"github.com/jward/codegraph/internal/store"
)

var (
	flagFormat    string
	flagOutputDir string
	flagVerbose   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "codegraph",
	Short:         "Structural code graph for multi-language projects",
	Long:          "Codegraph indexes source trees with tree-sitter and maintains a module-level dependency graph as diffable JSON, updated incrementally as files change.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := validateFormat(flagFormat); err != nil {
			return err
		}
		level := slog.LevelWarn
		if flagVerbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
	// No Run — prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format: json|text")
	rootCmd.PersistentFlags().StringVar(&flagOutputDir, "output-dir", codegraph.DefaultOutputDir, "artifacts directory name under the project root")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(impactCmd)
	rootCmd.AddCommand(sliceCmd)
	rootCmd.AddCommand(watchCmd)
}

var (
	flagLanguages string
	flagExcludes  []string
	flagSerial    bool
)

// newEngine builds an Engine for the project named by args, layering
// engine options from flags over the optional .codegraph.yml config.
func newEngine(args []string) (*codegraph.Engine, error) {
	root, err := resolveTargetDir(args)
	if err != nil {
		return nil, err
	}

	cfg, err := loadProjectConfig(root)
	if err != nil {
		return nil, err
	}

	opts := []codegraph.Option{
		codegraph.WithOutputDir(flagOutputDir),
		codegraph.WithLogger(slog.Default()),
		codegraph.WithParallel(!flagSerial),
	}
	languages := cfg.Languages
	if flagLanguages != "" {
		languages = splitCommaList(flagLanguages)
	}
	if len(languages) > 0 {
		opts = append(opts, codegraph.WithLanguages(languages...))
	}
	excludes := append([]string{}, cfg.Exclude...)
	excludes = append(excludes, flagExcludes...)
	if len(excludes) > 0 {
		opts = append(opts, codegraph.WithExcludes(excludes...))
	}

	return codegraph.New(root, opts...)
}

// resolveTargetDir returns the absolute path of the project directory.
func resolveTargetDir(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("directory not found: %s", abs)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", abs)
	}
	return abs, nil
}

func splitCommaList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// requireGraph translates a missing graph into the instruction the user
// needs instead of a bare not-found error.
func requireGraph(err error) error {
	if errors.Is(err, store.ErrNoGraph) {
		return errors.New("no graph found. Run 'codegraph scan' first")
	}
	return err
}
