package skiff

import (
	"math"

	"github.com/edwinsyarief/teishoku"
	"github.com/hajimehoshi/ebiten/v2"
)

// PathVertex is one tessellated vertex of a vector shape: a position plus a
// non-premultiplied color.
type PathVertex struct {
	Pos   Vec2
	Color Color
}

// PathQueue collects immediate-mode vector geometry for the current frame.
// Systems push lines, rectangles, and circles during the simulate phase; the
// path pass drains the queue when it renders, so geometry lives for exactly
// one frame and callers re-submit every tick. Not safe for concurrent use;
// push only from the frame thread.
type PathQueue struct {
	verts   []PathVertex
	indices []uint16
	screen  []bool // parallel to triangles: true = canvas space
	counts  []int  // index count per submission, parallel to screen
}

// Line pushes a world-space line segment of the given thickness.
func (q *PathQueue) Line(from, to Vec2, thickness float64, c Color) {
	q.line(from, to, thickness, c, false)
}

// ScreenLine is Line in canvas space, ignoring the camera.
func (q *PathQueue) ScreenLine(from, to Vec2, thickness float64, c Color) {
	q.line(from, to, thickness, c, true)
}

func (q *PathQueue) line(from, to Vec2, thickness float64, c Color, screen bool) {
	dx, dy := to.X-from.X, to.Y-from.Y
	length := math.Hypot(dx, dy)
	if length == 0 || thickness <= 0 {
		return
	}
	// Perpendicular half-extent.
	nx := -dy / length * thickness / 2
	ny := dx / length * thickness / 2
	q.push([]PathVertex{
		{Pos: Vec2{from.X + nx, from.Y + ny}, Color: c},
		{Pos: Vec2{to.X + nx, to.Y + ny}, Color: c},
		{Pos: Vec2{from.X - nx, from.Y - ny}, Color: c},
		{Pos: Vec2{to.X - nx, to.Y - ny}, Color: c},
	}, []uint16{0, 1, 2, 1, 3, 2}, screen)
}

// Rect pushes a filled world-space rectangle.
func (q *PathQueue) Rect(r Rect, c Color) {
	q.rect(r, c, false)
}

// ScreenRect is Rect in canvas space, ignoring the camera.
func (q *PathQueue) ScreenRect(r Rect, c Color) {
	q.rect(r, c, true)
}

func (q *PathQueue) rect(r Rect, c Color, screen bool) {
	q.push([]PathVertex{
		{Pos: Vec2{r.X, r.Y}, Color: c},
		{Pos: Vec2{r.X + r.Width, r.Y}, Color: c},
		{Pos: Vec2{r.X, r.Y + r.Height}, Color: c},
		{Pos: Vec2{r.X + r.Width, r.Y + r.Height}, Color: c},
	}, []uint16{0, 1, 2, 1, 3, 2}, screen)
}

// RectOutline pushes a world-space rectangle outline of the given thickness.
func (q *PathQueue) RectOutline(r Rect, thickness float64, c Color) {
	q.Line(Vec2{r.X, r.Y}, Vec2{r.X + r.Width, r.Y}, thickness, c)
	q.Line(Vec2{r.X + r.Width, r.Y}, Vec2{r.X + r.Width, r.Y + r.Height}, thickness, c)
	q.Line(Vec2{r.X + r.Width, r.Y + r.Height}, Vec2{r.X, r.Y + r.Height}, thickness, c)
	q.Line(Vec2{r.X, r.Y + r.Height}, Vec2{r.X, r.Y}, thickness, c)
}

// Circle pushes a filled world-space circle as a triangle fan.
func (q *PathQueue) Circle(center Vec2, radius float64, c Color) {
	if radius <= 0 {
		return
	}
	segments := circleSegments(radius)
	verts := make([]PathVertex, 0, segments+1)
	verts = append(verts, PathVertex{Pos: center, Color: c})
	for i := 0; i < segments; i++ {
		a := float64(i) / float64(segments) * 2 * math.Pi
		sin, cos := math.Sincos(a)
		verts = append(verts, PathVertex{
			Pos:   Vec2{center.X + cos*radius, center.Y + sin*radius},
			Color: c,
		})
	}
	indices := make([]uint16, 0, segments*3)
	for i := 0; i < segments; i++ {
		next := uint16(i) + 2
		if i == segments-1 {
			next = 1
		}
		indices = append(indices, 0, uint16(i)+1, next)
	}
	q.push(verts, indices, false)
}

// Push appends caller-tessellated geometry in world space.
func (q *PathQueue) Push(verts []PathVertex, indices []uint16) {
	q.push(verts, indices, false)
}

func (q *PathQueue) push(verts []PathVertex, indices []uint16, screen bool) {
	base := uint16(len(q.verts))
	q.verts = append(q.verts, verts...)
	for _, idx := range indices {
		q.indices = append(q.indices, base+idx)
	}
	q.screen = append(q.screen, screen)
	q.counts = append(q.counts, len(indices))
}

// Len reports the number of queued vertices.
func (q *PathQueue) Len() int {
	return len(q.verts)
}

// reset clears the queue, keeping capacity for the next frame.
func (q *PathQueue) reset() {
	q.verts = q.verts[:0]
	q.indices = q.indices[:0]
	q.screen = q.screen[:0]
	q.counts = q.counts[:0]
}

func circleSegments(radius float64) int {
	s := int(radius / 2)
	if s < 12 {
		return 12
	}
	if s > 64 {
		return 64
	}
	return s
}

// pathPass renders vector geometry: Shape components under the camera view,
// then the frame's immediate-mode queue. The queue is drained afterward.
type pathPass struct {
	queue *PathQueue

	world  *teishoku.World
	filter *teishoku.Filter2[Transform, Shape]

	verts   []ebiten.Vertex
	indices []uint16
}

func newPathPass() *pathPass {
	return &pathPass{queue: &PathQueue{}}
}

func (p *pathPass) Name() string { return "paths" }

func (p *pathPass) Render(dst *ebiten.Image, snap *Snapshot) {
	if p.world != snap.World {
		p.world = snap.World
		p.filter = teishoku.NewFilter2[Transform, Shape](snap.World)
	}
	p.filter.Reset()

	p.verts = p.verts[:0]
	p.indices = p.indices[:0]

	for p.filter.Next() {
		transform, shape := p.filter.Get()
		if len(shape.Verts) == 0 || len(shape.Indices) == 0 {
			continue
		}
		m := multiplyAffine(snap.View, transform.model(0, 0))
		p.appendGeometry(shape.Verts, shape.Indices, m)
	}

	// Immediate-mode geometry; per-submission space selection.
	offset := 0
	for i, count := range p.queue.counts {
		m := snap.View
		if p.queue.screen[i] {
			m = identityTransform
		}
		sub := p.queue.indices[offset : offset+count]
		p.appendIndexed(p.queue.verts, sub, m)
		offset += count
	}
	p.queue.reset()

	if len(p.indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{}
	dst.DrawTriangles(p.verts, p.indices, WhitePixel, op)
}

// appendGeometry appends verts transformed by m with locally-rebased indices.
func (p *pathPass) appendGeometry(verts []PathVertex, indices []uint16, m [6]float64) {
	base := uint16(len(p.verts))
	for _, v := range verts {
		p.verts = append(p.verts, transformVertex(v, m))
	}
	for _, idx := range indices {
		p.indices = append(p.indices, base+idx)
	}
}

// appendIndexed appends the vertices referenced by globally-based indices.
func (p *pathPass) appendIndexed(verts []PathVertex, indices []uint16, m [6]float64) {
	base := uint16(len(p.verts))
	remap := make(map[uint16]uint16, len(indices))
	for _, idx := range indices {
		local, ok := remap[idx]
		if !ok {
			local = base + uint16(len(remap))
			remap[idx] = local
			p.verts = append(p.verts, transformVertex(verts[idx], m))
		}
		p.indices = append(p.indices, local)
	}
}

func transformVertex(v PathVertex, m [6]float64) ebiten.Vertex {
	x, y := transformPoint(m, v.Pos.X, v.Pos.Y)
	r, g, b, a := v.Color.scaled()
	return ebiten.Vertex{
		DstX: float32(x), DstY: float32(y),
		SrcX: 0.5, SrcY: 0.5,
		ColorR: r, ColorG: g, ColorB: b, ColorA: a,
	}
}
