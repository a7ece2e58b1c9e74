package skiff

import (
	"math"

	"github.com/edwinsyarief/teishoku"
	"github.com/hajimehoshi/ebiten/v2"
)

// particlePass renders every (Transform, Particle) entity as a camera-facing
// colored quad in a single additive-blended batch. Quads are transformed on
// the CPU so the whole pass is one DrawTriangles call against the white pixel.
type particlePass struct {
	world  *teishoku.World
	filter *teishoku.Filter2[Transform, Particle]

	verts   []ebiten.Vertex
	indices []uint16
}

func newParticlePass() *particlePass {
	return &particlePass{}
}

func (p *particlePass) Name() string { return "particles" }

func (p *particlePass) Render(dst *ebiten.Image, snap *Snapshot) {
	if p.world != snap.World {
		p.world = snap.World
		p.filter = teishoku.NewFilter2[Transform, Particle](snap.World)
	}
	p.filter.Reset()

	p.verts = p.verts[:0]
	p.indices = p.indices[:0]

	for p.filter.Next() {
		transform, particle := p.filter.Get()
		if particle.Size <= 0 || particle.Color.A <= 0 {
			continue
		}
		half := particle.Size / 2
		cx, cy := transformPoint(snap.View, transform.Pos.X, transform.Pos.Y)
		// Camera-facing: scale by the view's uniform zoom, ignore rotation.
		zoom := math.Hypot(snap.View[0], snap.View[1])
		if zoom > 0 {
			half *= zoom
		}

		r, g, b, a := particle.Color.scaled()
		base := uint16(len(p.verts))
		for _, corner := range [4][2]float64{
			{cx - half, cy - half},
			{cx + half, cy - half},
			{cx - half, cy + half},
			{cx + half, cy + half},
		} {
			p.verts = append(p.verts, ebiten.Vertex{
				DstX: float32(corner[0]), DstY: float32(corner[1]),
				SrcX: 0.5, SrcY: 0.5,
				ColorR: r, ColorG: g, ColorB: b, ColorA: a,
			})
		}
		p.indices = append(p.indices, base, base+1, base+2, base+1, base+3, base+2)
	}

	if len(p.indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.Blend = BlendAdd.EbitenBlend()
	dst.DrawTriangles(p.verts, p.indices, WhitePixel, op)
}
