// Package skiff is the runtime core of a real-time 2D game: a scene that owns
// an entity world, advances it once per tick, and renders it through a
// multi-pass pipeline, while reconciling input from heterogeneous hosts
// (native desktop window, browser bridge) into one canonical event model.
//
// The package is organized around five cooperating pieces:
//
//   - The virtual input model (VirtualKey, InputState): a host-independent
//     vocabulary of logical actions with per-frame press/release edges.
//   - The input bridge (Bridge, Table): translates host key codes and pointer
//     events into the virtual model, throttling and buffering at the boundary.
//   - The asset cache (Assets, Cache): GPU-uploadable resources keyed by
//     logical path, with optional filesystem hot reload reconciled at frame
//     boundaries.
//   - The render pipeline (Pipeline): a fixed ordered sequence of passes
//     (background, sprites, particles, paths, text) compositing painter-style.
//   - The scene loop (Scene, Run): drives one tick at Ebitengine's cadence:
//     drain input, simulate, reconcile assets, render, reset input edges.
//
// Entity storage is a teishoku archetype world; gameplay systems are plain
// functions registered on the Scene and run in a fixed order each tick.
package skiff
