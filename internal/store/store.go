// Package store persists the code graph as a pair of JSON documents,
// graph.json and meta.json, inside the project's output directory. Both
// serialize with stable key order so consecutive runs diff cleanly.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jward/codegraph/internal/graph"
)

// ErrNoGraph is returned when no graph has been persisted yet.
var ErrNoGraph = errors.New("no graph found")

const (
	graphFile = "graph.json"
	metaFile  = "meta.json"
	slicesDir = "slices"
)

// Store reads and writes graph artifacts under one directory.
type Store struct {
	dir string
}

// New creates the output directory if needed and returns a store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the output directory path.
func (s *Store) Dir() string { return s.dir }

// SaveGraph writes graph.json atomically.
func (s *Store) SaveGraph(g *graph.Graph) error {
	return s.writeJSON(graphFile, g)
}

// LoadGraph reads graph.json. A missing file yields ErrNoGraph.
func (s *Store) LoadGraph() (*graph.Graph, error) {
	var g graph.Graph
	if err := s.readJSON(graphFile, &g); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoGraph
		}
		return nil, fmt.Errorf("load graph: %w", err)
	}
	return &g, nil
}

// SaveMeta writes meta.json atomically.
func (s *Store) SaveMeta(m *graph.Meta) error {
	return s.writeJSON(metaFile, m)
}

// LoadMeta reads meta.json. A missing file yields ErrNoGraph.
func (s *Store) LoadMeta() (*graph.Meta, error) {
	var m graph.Meta
	if err := s.readJSON(metaFile, &m); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoGraph
		}
		return nil, fmt.Errorf("load meta: %w", err)
	}
	return &m, nil
}

// WriteSlices saves the overview and one document per module under
// slices/. Existing slice files are replaced.
func (s *Store) WriteSlices(overview graph.Overview, slices []graph.ModuleSlice) error {
	dir := filepath.Join(s.dir, slicesDir)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clear slices dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create slices dir: %w", err)
	}
	if err := s.writeJSON(filepath.Join(slicesDir, "_overview.json"), overview); err != nil {
		return err
	}
	for _, slice := range slices {
		if err := s.writeJSON(filepath.Join(slicesDir, slice.Module+".json"), slice); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	data = append(data, '\n')

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (s *Store) readJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}
