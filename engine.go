package codegraph

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jward/codegraph/internal/discover"
	"github.com/jward/codegraph/internal/graph"
	"github.com/jward/codegraph/internal/lang"
	"github.com/jward/codegraph/internal/store"
)

// DefaultOutputDir is the artifacts directory created under the project root.
const DefaultOutputDir = ".codegraph"

// Engine orchestrates the pipeline: file discovery, change detection,
// tree-sitter extraction, graph derivation, and persistence.
type Engine struct {
	root       string // absolute project root
	outputName string
	store      *store.Store
	logger     *slog.Logger
	languages  map[lang.Language]bool // nil means all
	excludes   []string

	// useParallel enables the worker-pool indexing path.
	useParallel bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLanguages restricts which languages the Engine will process.
func WithLanguages(languages ...string) Option {
	return func(e *Engine) {
		e.languages = make(map[lang.Language]bool, len(languages))
		for _, l := range languages {
			e.languages[lang.Language(l)] = true
		}
	}
}

// WithExcludes adds glob patterns excluded from discovery.
func WithExcludes(patterns ...string) Option {
	return func(e *Engine) {
		e.excludes = append(e.excludes, patterns...)
	}
}

// WithOutputDir overrides the artifacts directory name under the root.
func WithOutputDir(name string) Option {
	return func(e *Engine) {
		e.outputName = name
	}
}

// WithLogger sets the logger used for progress and per-file warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithParallel controls parallel extraction. When true (default), indexing
// uses a worker pool where each worker owns its own parsers. Set to false
// for serial mode.
func WithParallel(parallel bool) Option {
	return func(e *Engine) {
		e.useParallel = parallel
	}
}

// New creates an Engine for the project at root. The root must be a
// readable directory; the output directory is created if missing.
func New(root string, opts ...Option) (*Engine, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("codegraph: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("codegraph: read root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("codegraph: not a directory: %s", abs)
	}

	e := &Engine{
		root:        abs,
		outputName:  DefaultOutputDir,
		logger:      slog.Default(),
		useParallel: true,
	}
	for _, opt := range opts {
		opt(e)
	}

	st, err := store.New(filepath.Join(abs, e.outputName))
	if err != nil {
		return nil, fmt.Errorf("codegraph: %w", err)
	}
	e.store = st
	return e, nil
}

// Root returns the absolute project root.
func (e *Engine) Root() string { return e.root }

// Store returns the underlying artifact store.
func (e *Engine) Store() *store.Store { return e.store }

// Graph loads the persisted graph. Returns store.ErrNoGraph when no scan
// has been run.
func (e *Engine) Graph() (*graph.Graph, error) {
	return e.store.LoadGraph()
}

// Meta loads the persisted meta sidecar.
func (e *Engine) Meta() (*graph.Meta, error) {
	return e.store.LoadMeta()
}

// Scan builds the graph from scratch and persists graph.json and
// meta.json. Per-file read or parse failures are logged and skipped;
// discovery and persistence failures are fatal.
func (e *Engine) Scan(ctx context.Context) (*graph.Graph, *graph.Meta, error) {
	start := time.Now()

	paths, err := discover.Files(e.root, discover.Options{Excludes: e.excludes, OutputDir: e.outputName})
	if err != nil {
		return nil, nil, fmt.Errorf("codegraph: %w", err)
	}
	hasCpp := lang.HasCppSources(paths)
	paths = e.filterPaths(paths, hasCpp)
	if err := checkAdapters(paths, hasCpp); err != nil {
		return nil, nil, fmt.Errorf("codegraph: %w", err)
	}

	e.logger.Info("scanning project", "root", e.root, "files", len(paths))
	entries := e.indexPaths(ctx, paths, hasCpp)

	g := graph.New(filepath.Base(e.root), e.root, e.config())
	for _, entry := range entries {
		g.AttachFile(entry)
	}
	g.RecalculateSummary()
	g.RebuildDependencies()

	now := time.Now().UTC().Format(time.RFC3339)
	g.ScannedAt = now
	g.CommitHash = commitHash(e.root)

	meta := &graph.Meta{
		LastScanAt:   now,
		CommitHash:   g.CommitHash,
		ScanDuration: time.Since(start).Round(time.Millisecond).String(),
		FileHashes:   entryHashes(entries),
	}

	if err := e.store.SaveGraph(g); err != nil {
		return nil, nil, fmt.Errorf("codegraph: %w", err)
	}
	if err := e.store.SaveMeta(meta); err != nil {
		return nil, nil, fmt.Errorf("codegraph: %w", err)
	}
	return g, meta, nil
}

// Update incrementally maintains a previously scanned graph: re-discovers
// files, partitions them into added/modified/removed/unchanged, re-indexes
// only the changed ones, and merges the result. A no-op update leaves the
// persisted artifacts untouched. Returns store.ErrNoGraph when scan has
// never run.
func (e *Engine) Update(ctx context.Context) (graph.ChangeSet, *graph.Graph, error) {
	start := time.Now()

	g, err := e.store.LoadGraph()
	if err != nil {
		return graph.ChangeSet{}, nil, err
	}
	previous := map[string]string{}
	if meta, merr := e.store.LoadMeta(); merr == nil && len(meta.FileHashes) > 0 {
		previous = meta.FileHashes
	} else {
		for path, f := range g.Files {
			previous[path] = f.Hash
		}
	}

	paths, err := discover.Files(e.root, discover.Options{Excludes: e.excludes, OutputDir: e.outputName})
	if err != nil {
		return graph.ChangeSet{}, nil, fmt.Errorf("codegraph: %w", err)
	}
	hasCpp := lang.HasCppSources(paths)
	paths = e.filterPaths(paths, hasCpp)
	if err := checkAdapters(paths, hasCpp); err != nil {
		return graph.ChangeSet{}, nil, fmt.Errorf("codegraph: %w", err)
	}

	current := map[string]string{}
	for _, rel := range paths {
		content, rerr := os.ReadFile(filepath.Join(e.root, filepath.FromSlash(rel)))
		if rerr != nil {
			e.logger.Warn("skipping unreadable file", "path", rel, "error", rerr)
			continue
		}
		current[rel] = graph.ComputeFileHash(content)
	}

	changes := graph.DetectChanges(previous, current)
	if changes.Empty() {
		return changes, g, nil
	}

	toIndex := make([]string, 0, len(changes.Added)+len(changes.Modified))
	toIndex = append(toIndex, changes.Added...)
	toIndex = append(toIndex, changes.Modified...)
	sort.Strings(toIndex)

	e.logger.Info("updating graph",
		"added", len(changes.Added), "modified", len(changes.Modified), "removed", len(changes.Removed))
	entries := e.indexPaths(ctx, toIndex, hasCpp)
	graph.MergeUpdate(g, changes.Removed, entries)

	now := time.Now().UTC().Format(time.RFC3339)
	g.ScannedAt = now
	g.CommitHash = commitHash(e.root)

	meta := &graph.Meta{
		LastScanAt:   now,
		CommitHash:   g.CommitHash,
		ScanDuration: time.Since(start).Round(time.Millisecond).String(),
		FileHashes:   current,
	}

	if err := e.store.SaveGraph(g); err != nil {
		return changes, nil, fmt.Errorf("codegraph: %w", err)
	}
	if err := e.store.SaveMeta(meta); err != nil {
		return changes, nil, fmt.Errorf("codegraph: %w", err)
	}
	return changes, g, nil
}

// Impact loads the graph and reports which modules depend, directly or
// transitively, on the target module or file.
func (e *Engine) Impact(target string, maxDepth int) (graph.ImpactResult, error) {
	g, err := e.store.LoadGraph()
	if err != nil {
		return graph.ImpactResult{}, err
	}
	return graph.AnalyzeImpact(g, target, maxDepth), nil
}

// filterPaths drops files whose language is excluded by WithLanguages.
func (e *Engine) filterPaths(paths []string, hasCpp bool) []string {
	if e.languages == nil {
		return paths
	}
	out := paths[:0]
	for _, rel := range paths {
		detected, ok := lang.Detect(rel)
		if !ok {
			continue
		}
		if e.languages[lang.Effective(rel, detected, hasCpp)] {
			out = append(out, rel)
		}
	}
	return out
}

// checkAdapters verifies every detected language has an extractor before
// any indexing starts. A missing adapter is a setup failure.
func checkAdapters(paths []string, hasCpp bool) error {
	seen := map[lang.Language]bool{}
	for _, rel := range paths {
		detected, ok := lang.Detect(rel)
		if !ok {
			continue
		}
		l := lang.Effective(rel, detected, hasCpp)
		if seen[l] {
			continue
		}
		seen[l] = true
		if _, ok := lang.ForLanguage(l); !ok {
			return fmt.Errorf("no extractor for language %q", l)
		}
	}
	return nil
}

func (e *Engine) config() graph.Config {
	languages := []string{}
	for l := range e.languages {
		languages = append(languages, string(l))
	}
	sort.Strings(languages)
	excludes := e.excludes
	if excludes == nil {
		excludes = []string{}
	}
	return graph.Config{Languages: languages, ExcludePatterns: excludes}
}

func entryHashes(entries []*graph.FileEntry) map[string]string {
	hashes := make(map[string]string, len(entries))
	for _, entry := range entries {
		hashes[entry.Path] = entry.Hash
	}
	return hashes
}
