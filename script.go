package skiff

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Key    string  `json:"key,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Frames int     `json:"frames,omitempty"`

	key VirtualKey
}

// inputScript is the top-level JSON structure for an input script.
type inputScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences scripted input events across frames for automated
// testing and demo capture. It feeds the same queue host events use, so a
// scripted run exercises the full drain/edge-state path. Attach to a Scene
// via SetScript.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	pendingUp []VirtualKey
	done      bool
}

// LoadScript parses a JSON input script of the form
//
//	{"steps": [
//	  {"action": "tap", "key": "Fire"},
//	  {"action": "wait", "frames": 10},
//	  {"action": "click", "x": 100, "y": 200}
//	]}
//
// Actions: press, release, tap (press this frame, release next), move,
// click, wait. Key names use the virtual action vocabulary.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script inputScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i := range script.Steps {
		st := &script.Steps[i]
		switch st.Action {
		case "press", "release", "tap":
			k, ok := virtualKeyByName[st.Key]
			if !ok {
				return nil, fmt.Errorf("parse input script: step %d: unknown key %q", i, st.Key)
			}
			st.key = k
		case "move", "click", "wait":
		default:
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// SetScript attaches a script runner to the scene. The runner advances once
// per tick, before queued input drains.
func (s *Scene) SetScript(runner *ScriptRunner) {
	s.script = runner
}

// Done reports whether every step has executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the script by one frame, queueing events into the input
// state. Called from Scene.Update before Drain.
func (r *ScriptRunner) step(in *InputState) {
	// Releases scheduled by a tap land one frame after the press.
	if len(r.pendingUp) > 0 {
		for _, k := range r.pendingUp {
			in.QueueKeyUp(k)
		}
		r.pendingUp = r.pendingUp[:0]
		return
	}
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		in.QueueKeyDown(st.key)
	case "release":
		in.QueueKeyUp(st.key)
	case "tap":
		in.QueueKeyDown(st.key)
		r.pendingUp = append(r.pendingUp, st.key)
	case "move":
		in.QueueMouseMove(st.X, st.Y)
	case "click":
		in.QueueMouseMove(st.X, st.Y)
		in.QueueMouseClick()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(r.pendingUp) == 0 {
		r.done = true
	}
}
