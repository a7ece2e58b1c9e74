//go:build noreload

package skiff

// hotReloadEnabled reports whether this build carries the filesystem watcher.
const hotReloadEnabled = false

// Watcher is a no-op in noreload builds: MarkStale is never invoked, so all
// cache entries are immutable after first load. Rendering output is identical
// to a watching build given identical assets.
type Watcher struct{}

// NewWatcher returns an inert watcher.
func NewWatcher(dir string, assets *Assets) (*Watcher, error) {
	return &Watcher{}, nil
}

// Close is a no-op.
func (w *Watcher) Close() error { return nil }
