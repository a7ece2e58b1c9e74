//go:build !noreload

package skiff

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// hotReloadEnabled reports whether this build carries the filesystem watcher.
// Build with -tags noreload to compile it out; rendering is identical either
// way, only staleness responsiveness changes.
const hotReloadEnabled = true

// Watcher listens for filesystem changes under the asset directory and marks
// the matching cache entries stale. It never touches GPU handles or blocks
// the frame thread: all it does is post logical paths into the caches' stale
// sets, which the pipeline reconciles at the next frame boundary.
type Watcher struct {
	fw   *fsnotify.Watcher
	done chan struct{}
}

// NewWatcher starts watching dir (recursively, one level of subdirectories)
// and routes change notifications into assets. Close stops it.
func NewWatcher(dir string, assets *Assets) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("asset watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("asset watcher: %w", err)
	}
	// Watch immediate subdirectories too; fsnotify is not recursive.
	if entries, err := os.ReadDir(dir); err == nil {
		for _, e := range entries {
			if e.IsDir() {
				_ = fw.Add(filepath.Join(dir, e.Name()))
			}
		}
	}

	w := &Watcher{fw: fw, done: make(chan struct{})}
	go w.run(dir, assets)
	return w, nil
}

// run consumes fsnotify events until Close. Runs on its own goroutine.
func (w *Watcher) run(dir string, assets *Assets) {
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			rel, err := filepath.Rel(dir, ev.Name)
			if err != nil {
				continue
			}
			assets.MarkStale(filepath.ToSlash(rel))
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "[skiff] asset watcher: %v\n", err)
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher. Pending stale flags still reconcile normally.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}
