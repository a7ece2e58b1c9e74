package skiff

import (
	"fmt"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// Loader turns a logical asset path into a live GPU-uploadable handle.
// Load runs synchronously on the frame thread; Dispose retires a handle the
// cache no longer owns.
type Loader[T any] interface {
	Load(path string) (T, error)
	Dispose(handle T)
}

// Cache holds GPU-uploadable resources keyed by logical path. It is the sole
// owner of the handles it returns; callers borrow a handle for the duration
// of one render call and must not retain it across frames, because Reconcile
// may have retired it.
//
// GetOrLoad and Reconcile run exclusively on the frame thread. MarkStale is
// safe from any goroutine: it only flags a path in the stale set. All handle
// transitions happen inside Reconcile, at the frame boundary, so no pass ever
// observes a half-swapped resource.
type Cache[T any] struct {
	loader  Loader[T]
	entries map[string]T

	mu    sync.Mutex
	stale map[string]struct{}
}

// NewCache creates an empty cache over the given loader.
func NewCache[T any](loader Loader[T]) *Cache[T] {
	return &Cache[T]{
		loader:  loader,
		entries: make(map[string]T),
		stale:   make(map[string]struct{}),
	}
}

// GetOrLoad returns the cached handle for a logical path, synchronously
// loading and uploading it if absent. Subsequent calls for the same path are
// map lookups. A load failure caches nothing, so the next call retries.
func (c *Cache[T]) GetOrLoad(path string) (T, error) {
	if h, ok := c.entries[path]; ok {
		return h, nil
	}
	h, err := c.loader.Load(path)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("load asset %q: %w", path, err)
	}
	c.entries[path] = h
	return h, nil
}

// Get returns the cached handle without loading.
func (c *Cache[T]) Get(path string) (T, bool) {
	h, ok := c.entries[path]
	return h, ok
}

// MarkStale flags a logical path for reload at the next Reconcile. Paths the
// cache never loaded are ignored there. Never touches the GPU handle.
func (c *Cache[T]) MarkStale(path string) {
	c.mu.Lock()
	c.stale[path] = struct{}{}
	c.mu.Unlock()
}

// Reconcile reloads every stale entry, swaps in the new handle, and retires
// the old one. It runs on the frame thread before the first render pass, so
// the previous frame's draws no longer reference retired handles.
//
// A reload failure leaves the previous handle in place and logs the failure;
// it never interrupts the frame. With nothing stale, Reconcile is a no-op,
// so calling it twice in a row changes no handles. Returns the number of
// entries actually swapped.
func (c *Cache[T]) Reconcile() int {
	c.mu.Lock()
	if len(c.stale) == 0 {
		c.mu.Unlock()
		return 0
	}
	paths := make([]string, 0, len(c.stale))
	for p := range c.stale {
		paths = append(paths, p)
	}
	clear(c.stale)
	c.mu.Unlock()

	swapped := 0
	for _, path := range paths {
		old, ok := c.entries[path]
		if !ok {
			continue
		}
		h, err := c.loader.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[skiff] asset reload failed %q: %v\n", path, err)
			continue
		}
		c.entries[path] = h
		c.loader.Dispose(old)
		swapped++
	}
	return swapped
}

// Len returns the number of live entries.
func (c *Cache[T]) Len() int {
	return len(c.entries)
}

// Assets bundles the caches the render pipeline consumes: textures, shader
// programs, and glyph atlas fonts, all rooted at one asset directory.
type Assets struct {
	Textures *Cache[*ebiten.Image]
	Shaders  *Cache[*ebiten.Shader]
	Fonts    *Cache[*BitmapFont]
}

// NewAssets creates the asset caches rooted at dir. Shader paths resolve to
// files under dir when present and fall back to the built-in pipeline shader
// sources, so a repo without an asset tree still renders.
func NewAssets(dir string) *Assets {
	return &Assets{
		Textures: NewCache[*ebiten.Image](textureLoader{dir: dir}),
		Shaders:  NewCache[*ebiten.Shader](shaderLoader{dir: dir, builtin: builtinShaders}),
		Fonts:    NewCache[*BitmapFont](fontLoader{dir: dir}),
	}
}

// MarkStale routes a watcher notification to every cache; caches that never
// loaded the path ignore it at reconcile time.
func (a *Assets) MarkStale(path string) {
	a.Textures.MarkStale(path)
	a.Shaders.MarkStale(path)
	a.Fonts.MarkStale(path)
}

// Reconcile refreshes all stale entries across the caches. Called by the
// render pipeline at the start of each frame, never mid-frame.
func (a *Assets) Reconcile() {
	a.Textures.Reconcile()
	a.Shaders.Reconcile()
	a.Fonts.Reconcile()
}
