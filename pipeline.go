package skiff

import (
	"fmt"
	"os"
	"time"

	"github.com/edwinsyarief/teishoku"
	"github.com/hajimehoshi/ebiten/v2"
)

// Snapshot is the read-only view of one frame handed to every render pass.
// Built once per frame after the simulate phase; no pass mutates it, and no
// pass retains anything from it across frames.
type Snapshot struct {
	// World is the entity world. Passes iterate component tuples only.
	World *teishoku.World
	// View is the camera view matrix for this frame.
	View [6]float64
	// CameraX and CameraY drive the background parallax offset.
	CameraX, CameraY float64
	// CanvasW and CanvasH are the logical canvas dimensions.
	CanvasW, CanvasH float64
	// Time is seconds since the scene started, for time-based animation.
	Time float64
	// Paused requests the pause overlay on top of the frozen frame.
	Paused bool
}

// Pass is one shader-program-bound draw stage of the pipeline.
type Pass interface {
	// Name identifies the pass in logs and stats.
	Name() string
	// Render draws the pass's contribution onto dst.
	Render(dst *ebiten.Image, snap *Snapshot)
}

// Pipeline executes a fixed, ordered sequence of passes each frame:
// background, world sprites, particles, vector paths, text. The order is
// load-bearing: it defines painter's-algorithm compositing, so later passes
// always draw over earlier ones. There is no z-buffer.
type Pipeline struct {
	assets *Assets
	passes []Pass

	background *backgroundPass
	paths      *pathPass

	debug bool
}

// NewPipeline builds the pass sequence and compiles every required shader
// program through the asset cache. A missing or malformed shader is a fatal
// initialization error: the pipeline cannot start without its programs.
func NewPipeline(assets *Assets) (*Pipeline, error) {
	for _, path := range []string{backgroundShaderPath, spriteShaderPath} {
		if _, err := assets.Shaders.GetOrLoad(path); err != nil {
			return nil, fmt.Errorf("pipeline init: %w", err)
		}
	}
	background := newBackgroundPass(assets)
	paths := newPathPass()
	return &Pipeline{
		assets: assets,
		passes: []Pass{
			background,
			newSpritePass(assets),
			newParticlePass(),
			paths,
			newTextPass(assets),
		},
		background: background,
		paths:      paths,
	}, nil
}

// SetBackgroundLayers replaces the background layer stack. Layers render in
// slice order, first at the very back.
func (p *Pipeline) SetBackgroundLayers(layers []BackgroundLayer) {
	p.background.layers = layers
}

// Paths returns the immediate-mode vector queue, drained by the path pass
// each frame.
func (p *Pipeline) Paths() *PathQueue {
	return p.paths.queue
}

// SetDebug enables per-frame pass timing logs on stderr.
func (p *Pipeline) SetDebug(enabled bool) {
	p.debug = enabled
}

// PassNames returns the fixed pass order.
func (p *Pipeline) PassNames() []string {
	names := make([]string, len(p.passes))
	for i, pass := range p.passes {
		names[i] = pass.Name()
	}
	return names
}

// Render reconciles stale assets, then executes the pass sequence once.
// Reconciliation never happens mid-frame, so no pass observes a half-swapped
// resource; passes borrow cache handles only for the duration of this call.
func (p *Pipeline) Render(dst *ebiten.Image, snap *Snapshot) {
	p.assets.Reconcile()

	if !p.debug {
		for _, pass := range p.passes {
			pass.Render(dst, snap)
		}
		return
	}

	for _, pass := range p.passes {
		t0 := time.Now()
		pass.Render(dst, snap)
		fmt.Fprintf(os.Stderr, "[skiff] pass %s: %v\n", pass.Name(), time.Since(t0))
	}
}
