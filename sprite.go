package skiff

import (
	"github.com/edwinsyarief/teishoku"
	"github.com/hajimehoshi/ebiten/v2"
)

// spritePass renders every entity carrying (Transform, Sprite) through the
// sprite shader. Two orthogonal per-draw modifiers compose in the shader: a
// periodic blink (color modulated by abs(sin(amplitude*time))) and a static
// tint, each toggled by the presence of the Blink / Tint component.
type spritePass struct {
	assets *Assets

	world  *teishoku.World
	filter *teishoku.Filter2[Transform, Sprite]

	uniforms   map[string]any
	blinkColor [4]float32
	tint       [4]float32
	shaderOp   ebiten.DrawRectShaderOptions
}

func newSpritePass(assets *Assets) *spritePass {
	p := &spritePass{
		assets:   assets,
		uniforms: make(map[string]any, 5),
	}
	// Persistent slice headers; scalar uniforms are rewritten per draw.
	p.uniforms["BlinkColor"] = p.blinkColor[:]
	p.uniforms["Tint"] = p.tint[:]
	return p
}

func (p *spritePass) Name() string { return "sprites" }

func (p *spritePass) Render(dst *ebiten.Image, snap *Snapshot) {
	shader, err := p.assets.Shaders.GetOrLoad(spriteShaderPath)
	if err != nil {
		return
	}

	if p.world != snap.World {
		p.world = snap.World
		p.filter = teishoku.NewFilter2[Transform, Sprite](snap.World)
	}
	p.filter.Reset()

	p.uniforms["Time"] = float32(snap.Time)

	for p.filter.Next() {
		transform, sprite := p.filter.Get()
		if sprite.Path == "" {
			continue
		}
		tex, err := p.assets.Textures.GetOrLoad(sprite.Path)
		if err != nil {
			// Texture missing or failed to decode: skip this draw, the
			// rest of the frame proceeds.
			continue
		}
		entity := p.filter.Entity()

		b := tex.Bounds()
		w, h := b.Dx(), b.Dy()

		if blink := teishoku.GetComponent[Blink](snap.World, entity); blink != nil {
			p.uniforms["UseBlink"] = float32(1)
			p.uniforms["BlinkAmplitude"] = float32(blink.Amplitude)
			p.blinkColor[0] = float32(blink.Color.R)
			p.blinkColor[1] = float32(blink.Color.G)
			p.blinkColor[2] = float32(blink.Color.B)
			p.blinkColor[3] = float32(blink.Color.A)
		} else {
			p.uniforms["UseBlink"] = float32(0)
			p.uniforms["BlinkAmplitude"] = float32(0)
		}

		if tint := teishoku.GetComponent[Tint](snap.World, entity); tint != nil {
			p.tint[0] = float32(tint.Color.R)
			p.tint[1] = float32(tint.Color.G)
			p.tint[2] = float32(tint.Color.B)
			p.tint[3] = float32(tint.Color.A)
		} else {
			p.tint = [4]float32{1, 1, 1, 1}
		}

		model := transform.model(float64(w), float64(h))
		p.shaderOp.GeoM.Reset()
		applyGeoM(&p.shaderOp.GeoM, multiplyAffine(snap.View, model))
		p.shaderOp.Images[0] = tex
		p.shaderOp.Uniforms = p.uniforms
		dst.DrawRectShader(w, h, shader, &p.shaderOp)
	}
}
