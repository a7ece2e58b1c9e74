package skiff

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config configures the native desktop host.
type Config struct {
	// Title is the window title.
	Title string
	// CanvasWidth and CanvasHeight are the logical canvas dimensions. All
	// pointer coordinates and render passes work in this space regardless of
	// the window size.
	CanvasWidth, CanvasHeight int
	// WindowScale multiplies the canvas size into the initial window size.
	// Zero means 1.
	WindowScale float64
	// AssetDir is the root of the on-disk asset tree.
	AssetDir string
	// LayoutPath is an optional JSON key-layout file. A missing or invalid
	// file falls back to the built-in bindings with a log line; it is never
	// fatal.
	LayoutPath string
	// EntityCap is the world's entity capacity. Zero means 1024.
	EntityCap int
	// HotReload starts the asset watcher over AssetDir. Ignored in builds
	// tagged noreload.
	HotReload bool
	// Debug enables per-pass timing logs.
	Debug bool
}

// maxFrameDelta caps the per-tick delta so a stalled host (window drag,
// debugger pause) does not produce one giant simulation step.
const maxFrameDelta = 0.25

// game adapts a Scene to the native host's update/draw callbacks and pumps
// polled keyboard and mouse state through the input bridge each tick.
type game struct {
	scene  *Scene
	bridge *Bridge[ebiten.Key]
	codes  []ebiten.Key

	lastTick time.Time
	lastX    int
	lastY    int
}

func (g *game) Update() error {
	now := time.Now()
	dt := 0.0
	if !g.lastTick.IsZero() {
		dt = now.Sub(g.lastTick).Seconds()
		if dt > maxFrameDelta {
			dt = maxFrameDelta
		}
	}
	g.lastTick = now

	for _, code := range g.codes {
		if inpututil.IsKeyJustPressed(code) {
			g.bridge.OnKeyDown(code)
		}
		if inpututil.IsKeyJustReleased(code) {
			g.bridge.OnKeyUp(code)
		}
	}
	if x, y := ebiten.CursorPosition(); x != g.lastX || y != g.lastY {
		g.lastX, g.lastY = x, y
		g.bridge.OnMouseMove(float64(x), float64(y))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.bridge.OnMouseClick()
	}

	g.scene.Update(dt)
	if g.scene.State() == SceneTerminated {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.scene.Input.CanvasSize()
	return int(w), int(h)
}

// loadDesktopTable resolves the key layout for the native host. Any failure
// along the way (missing file, bad JSON, unknown action or key name) logs and
// falls back to the defaults, so a broken config never blocks startup.
func loadDesktopTable(path string) Table[ebiten.Key] {
	if path == "" {
		return DefaultDesktopTable()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[skiff] key layout %q: %v; using defaults\n", path, err)
		return DefaultDesktopTable()
	}
	layout, err := ParseLayout(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[skiff] key layout %q: %v; using defaults\n", path, err)
		return DefaultDesktopTable()
	}
	table, err := layout.DesktopTable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[skiff] key layout %q: %v; using defaults\n", path, err)
		return DefaultDesktopTable()
	}
	return table
}

// Run opens the native window and drives the scene until it terminates or
// the window closes. setup receives the idle scene to populate the world,
// register systems, and configure the pipeline before the first tick.
func Run(cfg Config, setup func(*Scene) error) error {
	if cfg.CanvasWidth <= 0 || cfg.CanvasHeight <= 0 {
		return errors.New("run: canvas dimensions must be positive")
	}
	if cfg.WindowScale <= 0 {
		cfg.WindowScale = 1
	}
	if cfg.EntityCap <= 0 {
		cfg.EntityCap = 1024
	}

	assets := NewAssets(cfg.AssetDir)
	scene, err := NewScene(assets, float64(cfg.CanvasWidth), float64(cfg.CanvasHeight), cfg.EntityCap)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	scene.pipeline.SetDebug(cfg.Debug)

	if cfg.HotReload && hotReloadEnabled {
		watcher, err := NewWatcher(cfg.AssetDir, assets)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[skiff] hot reload disabled: %v\n", err)
		} else {
			defer watcher.Close()
		}
	}

	table := loadDesktopTable(cfg.LayoutPath)
	bridge := NewBridge(table)
	bridge.Attach(scene.Input)

	if setup != nil {
		if err := setup(scene); err != nil {
			return fmt.Errorf("run: setup: %w", err)
		}
	}
	scene.Start()

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(
		int(float64(cfg.CanvasWidth)*cfg.WindowScale),
		int(float64(cfg.CanvasHeight)*cfg.WindowScale),
	)

	g := &game{
		scene:  scene,
		bridge: bridge,
		codes:  table.Codes(),
		lastX:  -1,
		lastY:  -1,
	}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
