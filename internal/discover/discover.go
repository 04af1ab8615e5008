// Package discover finds the source files to index under a project root.
// It prefers git ls-files so ignore rules match what the repository tracks,
// and falls back to a filesystem walk honoring .gitignore directly.
package discover

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/jward/codegraph/internal/lang"
)

// skipDirs are always excluded regardless of ignore rules.
var skipDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
	"build":        true,
	".git":         true,
	"vendor":       true,
	"__pycache__":  true,
	"target":       true,
}

// Options controls discovery.
type Options struct {
	// Excludes are glob patterns matched against relative paths, path
	// segments, and basenames.
	Excludes []string
	// OutputDir is the artifacts directory name to skip (e.g. ".codegraph").
	OutputDir string
}

// Files returns the project-relative paths of all supported source files
// under root, posix-separated and sorted.
func Files(root string, opts Options) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("read project root: %w", err)
	}
	globs, err := compileExcludes(opts.Excludes)
	if err != nil {
		return nil, err
	}

	paths, err := gitListFiles(root)
	if err != nil {
		paths, err = walkListFiles(root)
		if err != nil {
			return nil, err
		}
	}

	var out []string
	for _, rel := range paths {
		if _, ok := lang.Detect(rel); !ok {
			continue
		}
		if excluded(rel, opts.OutputDir, globs) {
			continue
		}
		out = append(out, rel)
	}
	sort.Strings(out)
	return out, nil
}

// gitListFiles lists tracked plus untracked-but-not-ignored files.
func gitListFiles(root string) ([]string, error) {
	cmd := exec.Command("git", "ls-files", "--cached", "--others", "--exclude-standard")
	cmd.Dir = root
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git ls-files: %w", err)
	}
	var paths []string
	for _, line := range strings.Split(stdout.String(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// git may still list files deleted from the working tree
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(line))); err != nil {
			continue
		}
		paths = append(paths, line)
	}
	return paths, nil
}

// walkListFiles is the fallback when git is unavailable. Hidden directories
// and the standard build/dependency dirs are skipped; a root .gitignore is
// honored when present.
func walkListFiles(root string) ([]string, error) {
	var ignore *gitignore.GitIgnore
	if gi, err := gitignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		ignore = gi
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, rerr := filepath.Rel(root, path)
		if rerr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			name := d.Name()
			if strings.HasPrefix(name, ".") || skipDirs[name] {
				return filepath.SkipDir
			}
			if ignore != nil && ignore.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if ignore != nil && ignore.MatchesPath(rel) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk project root: %w", err)
	}
	return paths, nil
}

func compileExcludes(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func excluded(rel, outputDir string, globs []glob.Glob) bool {
	segments := strings.Split(rel, "/")
	for _, seg := range segments[:len(segments)-1] {
		if skipDirs[seg] {
			return true
		}
		if outputDir != "" && seg == outputDir {
			return true
		}
	}
	for _, g := range globs {
		if g.Match(rel) {
			return true
		}
		for _, seg := range segments {
			if g.Match(seg) {
				return true
			}
		}
	}
	return false
}
