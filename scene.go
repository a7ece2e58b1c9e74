package skiff

import (
	"fmt"

	"github.com/edwinsyarief/teishoku"
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneState is the scene lifecycle state.
type SceneState uint8

const (
	// SceneIdle is the state before Start; nothing ticks or renders.
	SceneIdle SceneState = iota
	// SceneRunning advances simulation and renders every frame.
	SceneRunning
	// ScenePaused freezes simulation; the last frame keeps rendering under a
	// pause overlay. Input is still drained so the resume key works.
	ScenePaused
	// SceneTerminated is final; a terminated scene never runs again.
	SceneTerminated
)

func (s SceneState) String() string {
	switch s {
	case SceneIdle:
		return "idle"
	case SceneRunning:
		return "running"
	case ScenePaused:
		return "paused"
	default:
		return "terminated"
	}
}

// System is one simulation step, run in registration order each tick while
// the scene is running.
type System func(s *Scene, dt float64)

// FrameStats is a snapshot of per-frame timing counters.
type FrameStats struct {
	// Frame counts completed ticks since Start.
	Frame uint64
	// Delta is the last tick's wall-clock delta in seconds.
	Delta float64
	// Time is accumulated running time in seconds; it does not advance while
	// paused.
	Time float64
}

// Scene owns one simulation: the entity world, the input state, the camera,
// and the render pipeline. Its tick order is fixed: drain input, run systems,
// then (from the host's draw callback) render; edge states collapse at the
// very end of the tick so every system observes the same frame's edges.
type Scene struct {
	Input  *InputState
	Camera *Camera
	Assets *Assets

	// PauseFont is the logical font path for the pause overlay label; empty
	// disables the label (the dim layer still draws).
	PauseFont string
	// PauseText is the overlay label text.
	PauseText string

	world    teishoku.World
	pipeline *Pipeline
	systems  []System
	clicks   *teishoku.Filter[Clickable]
	script   *ScriptRunner

	state SceneState
	stats FrameStats
}

// NewScene creates an idle scene over a logical canvas of the given size.
// entityCap is the world's entity capacity.
func NewScene(assets *Assets, canvasW, canvasH float64, entityCap int) (*Scene, error) {
	pipeline, err := NewPipeline(assets)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	s := &Scene{
		Input:     NewInputState(canvasW, canvasH),
		Camera:    NewCamera(canvasW, canvasH),
		Assets:    assets,
		PauseText: "PAUSED",
		world:     teishoku.NewWorld(entityCap),
		pipeline:  pipeline,
	}
	s.clicks = teishoku.NewFilter[Clickable](&s.world)
	return s, nil
}

// World returns the entity world.
func (s *Scene) World() *teishoku.World {
	return &s.world
}

// Pipeline returns the scene's render pipeline.
func (s *Scene) Pipeline() *Pipeline {
	return s.pipeline
}

// AddSystem registers a simulation system. Systems run in registration order.
func (s *Scene) AddSystem(sys System) {
	s.systems = append(s.systems, sys)
}

// State returns the lifecycle state.
func (s *Scene) State() SceneState {
	return s.state
}

// Stats returns the per-frame counters as of the last completed tick.
func (s *Scene) Stats() FrameStats {
	return s.stats
}

// Start moves an idle scene to running. No-op in any other state.
func (s *Scene) Start() {
	if s.state == SceneIdle {
		s.state = SceneRunning
	}
}

// Pause freezes a running scene. No-op in any other state.
func (s *Scene) Pause() {
	if s.state == SceneRunning {
		s.state = ScenePaused
	}
}

// Resume unfreezes a paused scene. No-op in any other state.
func (s *Scene) Resume() {
	if s.state == ScenePaused {
		s.state = SceneRunning
	}
}

// Terminate ends the scene permanently. Idempotent.
func (s *Scene) Terminate() {
	s.state = SceneTerminated
}

// Update runs one tick with the given wall-clock delta in seconds: drain
// queued input, handle the pause key, advance the camera and systems, then
// collapse input edges. Idle and terminated scenes do not tick.
func (s *Scene) Update(dt float64) {
	if s.state == SceneIdle || s.state == SceneTerminated {
		return
	}

	if s.script != nil {
		s.script.step(s.Input)
	}

	s.Input.Drain()

	if s.Input.JustPressed(KeyPause) {
		if s.state == SceneRunning {
			s.state = ScenePaused
		} else {
			s.state = SceneRunning
		}
	}

	if s.state == SceneRunning {
		s.stats.Time += dt
		s.Camera.Update(dt)
		s.updateClickables()
		for _, sys := range s.systems {
			sys(s, dt)
		}
	}

	s.Input.EndFrame()
	s.stats.Frame++
	s.stats.Delta = dt
}

// updateClickables clears last tick's Clicked flags, then sets the flag on
// every Clickable whose bounds contain the pending click in world space. The
// click itself stays pending for TakeClick until the tick ends.
func (s *Scene) updateClickables() {
	pending := s.Input.ClickPending()
	var wx, wy float64
	if pending {
		p := s.Input.Pointer()
		wx, wy = s.Camera.ScreenToWorld(p.X, p.Y)
	}

	s.clicks.Reset()
	for s.clicks.Next() {
		c := s.clicks.Get()
		c.Clicked = pending && c.Bounds.Contains(wx, wy)
	}
}

// Draw renders the current frame. While paused the world renders frozen with
// a dim overlay and the pause label on top. Idle and terminated scenes draw
// nothing.
func (s *Scene) Draw(dst *ebiten.Image) {
	if s.state == SceneIdle || s.state == SceneTerminated {
		return
	}

	snap := Snapshot{
		World:   &s.world,
		View:    s.Camera.View(),
		CameraX: s.Camera.X,
		CameraY: s.Camera.Y,
		CanvasW: s.Camera.CanvasW,
		CanvasH: s.Camera.CanvasH,
		Time:    s.stats.Time,
		Paused:  s.state == ScenePaused,
	}
	s.pipeline.Render(dst, &snap)

	if snap.Paused {
		s.drawPauseOverlay(dst)
	}
}

func (s *Scene) drawPauseOverlay(dst *ebiten.Image) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(s.Camera.CanvasW, s.Camera.CanvasH)
	op.ColorScale.ScaleWithColor(toRGBA(Color{0, 0, 0, 0.5}))
	dst.DrawImage(WhitePixel, op)

	if s.PauseFont == "" || s.PauseText == "" {
		return
	}
	font, err := s.Assets.Fonts.GetOrLoad(s.PauseFont)
	if err != nil {
		return
	}
	w, h := font.Measure(s.PauseText)
	font.Draw(dst, s.PauseText, (s.Camera.CanvasW-w)/2, (s.Camera.CanvasH-h)/2, ColorWhite)
}
