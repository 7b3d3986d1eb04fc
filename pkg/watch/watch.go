// Package watch re-runs the check suite when files under a directory
// tree change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// DefaultDebounce is how long the watcher waits after the last event
// before re-running.
const DefaultDebounce = 500 * time.Millisecond

// Options configures a watch loop.
type Options struct {
	Root     string        // tree to watch; empty means "."
	Debounce time.Duration // quiet period before a re-run; 0 means DefaultDebounce
	Ignore   []string      // paths whose events never trigger a run
}

// Run executes fn once, then again after every burst of changes under
// the tree, until ctx is done. Hidden directories are not watched, and
// events for ignored paths are dropped so a run writing its own output
// file does not retrigger itself.
func Run(ctx context.Context, opts Options, fn func()) error {
	root := opts.Root
	if root == "" {
		root = "."
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve watch root: %w", err)
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	ignore := make(map[string]bool, len(opts.Ignore))
	for _, p := range opts.Ignore {
		if abs, err := filepath.Abs(p); err == nil {
			ignore[abs] = true
		}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	if err := addTree(w, root); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	log.Debug().Str("root", root).Dur("debounce", debounce).Msg("watching for changes")

	fn()

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			if skipEvent(root, ignore, ev.Name) {
				continue
			}
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addTree(w, ev.Name); err != nil {
						log.Warn().Err(err).Str("path", ev.Name).Msg("cannot watch new directory")
					}
				}
			}
			log.Debug().Str("path", ev.Name).Str("op", ev.Op.String()).Msg("change detected")
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watch error")
		case <-timer.C:
			fn()
		}
	}
}

func addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && hiddenName(d.Name()) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

// skipEvent drops events for ignored paths and anything under a hidden
// directory relative to the watch root.
func skipEvent(root string, ignore map[string]bool, name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return true
	}
	if ignore[abs] {
		return true
	}

	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if hiddenName(part) {
			return true
		}
	}
	return false
}

func hiddenName(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
