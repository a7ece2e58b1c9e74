package skiff

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// BackgroundLayer is one scrolling layer of the background pass.
type BackgroundLayer struct {
	// Texture is the logical path of the layer's tile texture.
	Texture string
	// ScrollSpeed is the UV scroll per second, in texture-size units.
	ScrollSpeed Vec2
	// Parallax scales the camera-derived offset; 0 pins the layer in place.
	Parallax float64
}

// backgroundPass renders full-canvas quads whose UV offset scrolls over time
// plus a camera parallax term. It ignores the view transform entirely: the
// background always fills the canvas behind everything else.
type backgroundPass struct {
	assets *Assets
	layers []BackgroundLayer

	uniforms map[string]any
	offset   [2]float32
	verts    [4]ebiten.Vertex
	indices  [6]uint16
	warned   map[string]bool
}

func newBackgroundPass(assets *Assets) *backgroundPass {
	p := &backgroundPass{
		assets:   assets,
		uniforms: make(map[string]any, 1),
		indices:  [6]uint16{0, 1, 2, 1, 3, 2},
		warned:   make(map[string]bool),
	}
	p.uniforms["Offset"] = p.offset[:]
	for i := range p.verts {
		p.verts[i].ColorR = 1
		p.verts[i].ColorG = 1
		p.verts[i].ColorB = 1
		p.verts[i].ColorA = 1
	}
	return p
}

func (p *backgroundPass) Name() string { return "background" }

func (p *backgroundPass) Render(dst *ebiten.Image, snap *Snapshot) {
	if len(p.layers) == 0 {
		return
	}
	shader, err := p.assets.Shaders.GetOrLoad(backgroundShaderPath)
	if err != nil {
		// Validated at pipeline init; a failed hot reload keeps the old
		// handle, so this only trips if the cache was never primed.
		return
	}

	w, h := float32(snap.CanvasW), float32(snap.CanvasH)
	// Source coordinates track the canvas 1:1; the shader wraps them over
	// the texture, tiling it at native texel scale.
	p.verts[0].DstX, p.verts[0].DstY, p.verts[0].SrcX, p.verts[0].SrcY = 0, 0, 0, 0
	p.verts[1].DstX, p.verts[1].DstY, p.verts[1].SrcX, p.verts[1].SrcY = w, 0, w, 0
	p.verts[2].DstX, p.verts[2].DstY, p.verts[2].SrcX, p.verts[2].SrcY = 0, h, 0, h
	p.verts[3].DstX, p.verts[3].DstY, p.verts[3].SrcX, p.verts[3].SrcY = w, h, w, h

	for _, layer := range p.layers {
		tex, err := p.assets.Textures.GetOrLoad(layer.Texture)
		if err != nil {
			if !p.warned[layer.Texture] {
				fmt.Fprintf(os.Stderr, "[skiff] background texture %q: %v\n", layer.Texture, err)
				p.warned[layer.Texture] = true
			}
			continue
		}

		p.offset[0] = float32(snap.Time*layer.ScrollSpeed.X + snap.CameraX/snap.CanvasW*layer.Parallax)
		p.offset[1] = float32(snap.Time*layer.ScrollSpeed.Y + snap.CameraY/snap.CanvasH*layer.Parallax)

		op := &ebiten.DrawTrianglesShaderOptions{}
		op.Images[0] = tex
		op.Uniforms = p.uniforms
		dst.DrawTrianglesShader(p.verts[:], p.indices[:], shader, op)
	}
}
