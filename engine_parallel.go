package codegraph

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"github.com/jward/codegraph/internal/graph"
	"github.com/jward/codegraph/internal/lang"
)

// indexPathsParallel fans file indexing out over a worker pool. Tree-sitter
// parsers are not goroutine-safe, so each worker owns a private ParserSet.
// Results are collected and returned in path order.
func (e *Engine) indexPathsParallel(ctx context.Context, paths []string, hasCpp bool) []*graph.FileEntry {
	numWorkers := runtime.NumCPU()
	if numWorkers > len(paths) {
		numWorkers = len(paths)
	}

	workCh := make(chan string, len(paths))
	for _, rel := range paths {
		workCh <- rel
	}
	close(workCh)

	type result struct {
		path  string
		entry *graph.FileEntry
		err   error
	}
	resultCh := make(chan result, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			parsers := lang.NewParserSet()
			for rel := range workCh {
				entry, err := e.indexFile(ctx, parsers, rel, hasCpp)
				resultCh <- result{path: rel, entry: entry, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	entries := make([]*graph.FileEntry, 0, len(paths))
	for res := range resultCh {
		if res.err != nil {
			e.logger.Warn("skipping file", "path", res.path, "error", res.err)
			continue
		}
		if res.entry != nil {
			entries = append(entries, res.entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries
}
