package skiff

import (
	"testing"

	"github.com/edwinsyarief/teishoku"
)

func newTestScene(t *testing.T) *Scene {
	t.Helper()
	s, err := NewScene(NewAssets(t.TempDir()), 800, 480, 64)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	return s
}

func TestSceneLifecycle(t *testing.T) {
	s := newTestScene(t)

	if s.State() != SceneIdle {
		t.Fatalf("initial state = %v, want %v", s.State(), SceneIdle)
	}

	// Pause and Resume are no-ops before Start.
	s.Pause()
	s.Resume()
	if s.State() != SceneIdle {
		t.Errorf("state = %v after pre-start Pause/Resume, want %v", s.State(), SceneIdle)
	}

	s.Start()
	if s.State() != SceneRunning {
		t.Fatalf("state = %v after Start, want %v", s.State(), SceneRunning)
	}
	s.Start() // repeated Start is a no-op
	if s.State() != SceneRunning {
		t.Errorf("repeated Start changed state to %v", s.State())
	}

	s.Pause()
	if s.State() != ScenePaused {
		t.Fatalf("state = %v after Pause, want %v", s.State(), ScenePaused)
	}
	s.Resume()
	if s.State() != SceneRunning {
		t.Fatalf("state = %v after Resume, want %v", s.State(), SceneRunning)
	}

	s.Terminate()
	if s.State() != SceneTerminated {
		t.Fatalf("state = %v after Terminate, want %v", s.State(), SceneTerminated)
	}
	// Terminated is final.
	s.Start()
	s.Resume()
	if s.State() != SceneTerminated {
		t.Errorf("terminated scene revived to %v", s.State())
	}
}

func TestSceneIdleDoesNotTick(t *testing.T) {
	s := newTestScene(t)

	ran := false
	s.AddSystem(func(*Scene, float64) { ran = true })

	s.Update(0.016)
	if ran {
		t.Error("systems must not run before Start")
	}
	if s.Stats().Frame != 0 {
		t.Errorf("Frame = %d before Start, want 0", s.Stats().Frame)
	}
}

func TestSceneSystemsRunInOrder(t *testing.T) {
	s := newTestScene(t)

	var order []int
	s.AddSystem(func(*Scene, float64) { order = append(order, 1) })
	s.AddSystem(func(*Scene, float64) { order = append(order, 2) })
	s.AddSystem(func(*Scene, float64) { order = append(order, 3) })

	s.Start()
	s.Update(0.016)

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("system order = %v, want [1 2 3]", order)
	}
}

func TestScenePauseFreezesSimulation(t *testing.T) {
	s := newTestScene(t)

	ticks := 0
	s.AddSystem(func(*Scene, float64) { ticks++ })

	s.Start()
	s.Update(0.1)
	s.Pause()
	s.Update(0.1)
	s.Update(0.1)

	if ticks != 1 {
		t.Errorf("systems ran %d times, want 1 (paused ticks must not simulate)", ticks)
	}
	if got := s.Stats().Time; got != 0.1 {
		t.Errorf("Time = %v, want 0.1 (frozen while paused)", got)
	}
	// Frames still count while paused; only simulation freezes.
	if got := s.Stats().Frame; got != 3 {
		t.Errorf("Frame = %d, want 3", got)
	}
}

func TestScenePauseKeyToggles(t *testing.T) {
	s := newTestScene(t)
	s.Start()

	press := func() {
		s.Input.QueueKeyDown(KeyPause)
		s.Update(0.016)
		s.Input.QueueKeyUp(KeyPause)
		s.Update(0.016)
	}

	press()
	if s.State() != ScenePaused {
		t.Fatalf("state = %v after pause key, want %v", s.State(), ScenePaused)
	}
	press()
	if s.State() != SceneRunning {
		t.Fatalf("state = %v after second pause key, want %v", s.State(), SceneRunning)
	}
}

func TestSceneHeldPauseKeyTogglesOnce(t *testing.T) {
	s := newTestScene(t)
	s.Start()

	s.Input.QueueKeyDown(KeyPause)
	s.Update(0.016)
	// The key stays held across many frames; only the press edge toggles.
	for i := 0; i < 10; i++ {
		s.Update(0.016)
	}
	if s.State() != ScenePaused {
		t.Errorf("state = %v, want %v after a single held press", s.State(), ScenePaused)
	}
}

func TestSceneClickablesHitInWorldSpace(t *testing.T) {
	s := newTestScene(t)
	w := s.World()

	hit := w.CreateEntity()
	teishoku.SetComponent(w, hit, Clickable{Bounds: Rect{X: 90, Y: 90, Width: 20, Height: 20}})
	miss := w.CreateEntity()
	teishoku.SetComponent(w, miss, Clickable{Bounds: Rect{X: 500, Y: 500, Width: 20, Height: 20}})

	s.Start()
	s.Input.QueueMouseMove(100, 100)
	s.Input.QueueMouseClick()
	s.Update(0.016)

	if !teishoku.GetComponent[Clickable](w, hit).Clicked {
		t.Error("clickable under the pointer should be Clicked")
	}
	if teishoku.GetComponent[Clickable](w, miss).Clicked {
		t.Error("clickable away from the pointer should not be Clicked")
	}

	// The flag holds for exactly one tick.
	s.Update(0.016)
	if teishoku.GetComponent[Clickable](w, hit).Clicked {
		t.Error("Clicked must clear on the next tick")
	}
}

func TestSceneClickablesFollowCamera(t *testing.T) {
	s := newTestScene(t)
	w := s.World()

	// The target sits at world (1000, 100); pan the camera so it appears
	// at the canvas center.
	e := w.CreateEntity()
	teishoku.SetComponent(w, e, Clickable{Bounds: Rect{X: 990, Y: 90, Width: 20, Height: 20}})

	s.Camera.X, s.Camera.Y = 1000, 100
	s.Camera.MarkDirty()

	s.Start()
	s.Input.QueueMouseMove(400, 240)
	s.Input.QueueMouseClick()
	s.Update(0.016)

	if !teishoku.GetComponent[Clickable](w, e).Clicked {
		t.Error("click at the canvas center should hit the panned-to target")
	}
}

func TestSceneClickStillTakableBySystems(t *testing.T) {
	s := newTestScene(t)

	taken := false
	s.AddSystem(func(s *Scene, dt float64) {
		taken = s.Input.TakeClick()
	})

	s.Start()
	s.Input.QueueMouseClick()
	s.Update(0.016)

	if !taken {
		t.Error("the interaction system must not consume the click before gameplay systems")
	}
}

func TestSceneScriptDrivesInput(t *testing.T) {
	s := newTestScene(t)

	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "tap", "key": "Fire"},
		{"action": "wait", "frames": 2}
	]}`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	s.SetScript(runner)

	fired := 0
	s.AddSystem(func(s *Scene, dt float64) {
		if s.Input.JustPressed(KeyFire) {
			fired++
		}
	})

	s.Start()
	for i := 0; i < 6; i++ {
		s.Update(0.016)
	}

	if fired != 1 {
		t.Errorf("fire pressed %d times, want 1", fired)
	}
	if !runner.Done() {
		t.Error("script should complete within the run")
	}
}

func TestSceneTerminatedStopsTicking(t *testing.T) {
	s := newTestScene(t)

	ticks := 0
	s.AddSystem(func(*Scene, float64) { ticks++ })

	s.Start()
	s.Update(0.016)
	s.Terminate()
	s.Update(0.016)

	if ticks != 1 {
		t.Errorf("systems ran %d times, want 1", ticks)
	}
}

func TestSceneDeltaAccumulates(t *testing.T) {
	s := newTestScene(t)
	s.Start()

	s.Update(0.016)
	s.Update(0.020)

	stats := s.Stats()
	if stats.Delta != 0.020 {
		t.Errorf("Delta = %v, want 0.020", stats.Delta)
	}
	if got := stats.Time; got < 0.0359 || got > 0.0361 {
		t.Errorf("Time = %v, want ~0.036", got)
	}
}
