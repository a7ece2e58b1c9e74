package skiff

// Components consumed by the render pipeline and the built-in interaction
// system. Gameplay systems are free to define their own component types; the
// pipeline only ever iterates the tuples below.

// Transform places an entity in world space.
type Transform struct {
	Pos      Vec2
	Rotation float64
	Scale    Vec2
}

// NewTransform returns a transform at (x, y) with unit scale.
func NewTransform(x, y float64) Transform {
	return Transform{Pos: Vec2{X: x, Y: y}, Scale: Vec2{X: 1, Y: 1}}
}

// model returns the local-to-world affine matrix, rotating and scaling
// around the sprite center (w, h are the texture dimensions).
func (t Transform) model(w, h float64) [6]float64 {
	m := identityTransform
	m[4], m[5] = t.Pos.X, t.Pos.Y
	if t.Rotation != 0 {
		m = multiplyAffine(m, rotationAffine(t.Rotation))
	}
	sx, sy := t.Scale.X, t.Scale.Y
	if sx == 0 && sy == 0 {
		sx, sy = 1, 1
	}
	m = multiplyAffine(m, [6]float64{sx, 0, 0, sy, 0, 0})
	// Center the quad on Pos.
	m = multiplyAffine(m, [6]float64{1, 0, 0, 1, -w / 2, -h / 2})
	return m
}

// Sprite renders a cached texture at the entity's transform.
type Sprite struct {
	// Path is the logical texture path in the asset cache.
	Path string
}

// Blink modulates a sprite's color by abs(sin(amplitude * time)). Attach to
// an entity with a Sprite to make it blink; remove to stop.
type Blink struct {
	Color     Color
	Amplitude float64
}

// Tint multiplies a sprite's color by a static color. Independent of Blink;
// both may be attached and compose in the shader.
type Tint struct {
	Color Color
}

// Particle renders a camera-facing quad with per-vertex color; the color's
// alpha carries the particle's opacity.
type Particle struct {
	Size  float64
	Color Color
}

// Shape renders arbitrary tessellated polygon geometry with per-vertex color,
// under the same view as world sprites. Vertices are in local space relative
// to the entity's transform.
type Shape struct {
	Verts   []PathVertex
	Indices []uint16
}

// Label renders a glyph run from a pre-rasterized atlas font.
type Label struct {
	Text string
	// Font is the logical path of the atlas metadata in the font cache.
	Font  string
	Color Color
	// Screen places the label in canvas space, ignoring the camera view.
	Screen bool
}

// Clickable marks an entity as a click target. The interaction system sets
// Clicked when the frame's pending click lands inside Bounds (world space);
// the flag holds for exactly one simulate phase.
type Clickable struct {
	Bounds  Rect
	Clicked bool
}
