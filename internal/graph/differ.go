package graph

import "sort"

// ChangeSet partitions the union of previous and current file paths. Every
// path lands in exactly one bucket; each bucket is sorted.
type ChangeSet struct {
	Added     []string
	Modified  []string
	Removed   []string
	Unchanged []string
}

// Empty reports whether the change set requires any graph work.
func (c ChangeSet) Empty() bool {
	return len(c.Added) == 0 && len(c.Modified) == 0 && len(c.Removed) == 0
}

// DetectChanges compares previously recorded hashes against current ones.
// previous comes from the meta sidecar; current from a fresh discovery pass.
func DetectChanges(previous, current map[string]string) ChangeSet {
	var c ChangeSet
	for path, hash := range current {
		prev, ok := previous[path]
		switch {
		case !ok:
			c.Added = append(c.Added, path)
		case prev != hash:
			c.Modified = append(c.Modified, path)
		default:
			c.Unchanged = append(c.Unchanged, path)
		}
	}
	for path := range previous {
		if _, ok := current[path]; !ok {
			c.Removed = append(c.Removed, path)
		}
	}
	sort.Strings(c.Added)
	sort.Strings(c.Modified)
	sort.Strings(c.Removed)
	sort.Strings(c.Unchanged)
	return c
}

// MergeUpdate applies re-indexed entries and removals to the graph, then
// restores all derived state: empty modules are pruned by the detach path,
// the summary is recomputed, and every dependency edge is rebuilt from
// scratch. Applying the same update twice yields the same graph.
func MergeUpdate(g *Graph, removed []string, entries []*FileEntry) {
	for _, path := range removed {
		g.DetachFile(path)
	}
	for _, entry := range entries {
		g.AttachFile(entry)
	}
	g.RecalculateSummary()
	g.RebuildDependencies()
}
