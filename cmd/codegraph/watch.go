package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var flagWatchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Watch the tree and update the graph as files change",
	Long:  "Watches the project recursively and runs an incremental update after each debounced batch of filesystem events.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&flagWatchDebounce, "debounce", 500*time.Millisecond, "quiet period before an update runs")
}

func runWatch(cmd *cobra.Command, args []string) error {
	engine, err := newEngine(args)
	if err != nil {
		return err
	}
	if _, err := engine.Graph(); err != nil {
		return requireGraph(err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchDirs(watcher, engine.Root()); err != nil {
		return err
	}
	fmt.Printf("Watching %s\n", engine.Root())

	// Timer starts drained; each event arms it for one debounce window.
	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-cmd.Context().Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if watchIgnored(engine.Root(), ev.Name) {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, serr := os.Stat(ev.Name); serr == nil && info.IsDir() {
					_ = watcher.Add(ev.Name)
				}
			}
			timer.Reset(flagWatchDebounce)

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %s\n", werr)

		case <-timer.C:
			changes, _, uerr := engine.Update(cmd.Context())
			switch {
			case uerr != nil:
				fmt.Fprintf(os.Stderr, "update failed: %s\n", uerr)
			case changes.Empty():
				// event batch touched nothing indexable
			default:
				fmt.Printf("+%d ~%d -%d\n", len(changes.Added), len(changes.Modified), len(changes.Removed))
			}
		}
	}
}

// watchDirs registers the root and every non-ignored subdirectory.
func watchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return err
		}
		if path != root && watchIgnored(root, path) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// watchIgnored skips hidden directories (including the output dir) and the
// standard build/dependency dirs.
func watchIgnored(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return false
	}
	for _, seg := range strings.Split(filepath.ToSlash(rel), "/") {
		switch {
		case strings.HasPrefix(seg, "."):
			return true
		case seg == "node_modules", seg == "dist", seg == "build",
			seg == "vendor", seg == "__pycache__", seg == "target":
			return true
		}
	}
	return false
}
