package skiff

import (
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/edwinsyarief/teishoku"
	"github.com/hajimehoshi/ebiten/v2"
)

// Glyph is one rectangle of a font atlas page plus its layout metrics.
// Offsets shift the quad relative to the pen; Advance moves the pen.
type Glyph struct {
	X, Y, W, H float64
	XOffset    float64 `json:"xoff"`
	YOffset    float64 `json:"yoff"`
	Advance    float64 `json:"adv"`
}

// BitmapFont is a pre-rasterized glyph atlas: a single page image plus
// per-rune source rectangles and metrics. Text rendering never rasterizes;
// it only copies atlas rectangles.
type BitmapFont struct {
	// PagePath is the page image file, relative to the atlas metadata file.
	PagePath   string
	LineHeight float64
	glyphs     map[rune]Glyph
	page       *ebiten.Image
}

type bitmapFontJSON struct {
	Page       string           `json:"page"`
	LineHeight float64          `json:"lineHeight"`
	Glyphs     map[string]Glyph `json:"glyphs"`
}

// ParseBitmapFont decodes atlas metadata. The page image is loaded separately
// by the font loader; a parsed font without its page renders nothing.
func ParseBitmapFont(data []byte) (*BitmapFont, error) {
	var raw bitmapFontJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse font atlas: %w", err)
	}
	if raw.Page == "" {
		return nil, fmt.Errorf("font atlas missing page path")
	}
	if raw.LineHeight <= 0 {
		return nil, fmt.Errorf("font atlas line height %v out of range", raw.LineHeight)
	}
	font := &BitmapFont{
		PagePath:   raw.Page,
		LineHeight: raw.LineHeight,
		glyphs:     make(map[rune]Glyph, len(raw.Glyphs)),
	}
	for key, g := range raw.Glyphs {
		r, size := utf8.DecodeRuneInString(key)
		if r == utf8.RuneError || size != len(key) {
			return nil, fmt.Errorf("font atlas glyph key %q is not a single rune", key)
		}
		font.glyphs[r] = g
	}
	return font, nil
}

// Glyph returns the atlas entry for r, if present.
func (f *BitmapFont) Glyph(r rune) (Glyph, bool) {
	g, ok := f.glyphs[r]
	return g, ok
}

// Measure returns the layout size of text. Newlines break lines; runes with
// no atlas entry take no space.
func (f *BitmapFont) Measure(text string) (w, h float64) {
	if text == "" {
		return 0, 0
	}
	var lineW float64
	h = f.LineHeight
	for _, r := range text {
		if r == '\n' {
			if lineW > w {
				w = lineW
			}
			lineW = 0
			h += f.LineHeight
			continue
		}
		if g, ok := f.glyphs[r]; ok {
			lineW += g.Advance
		}
	}
	if lineW > w {
		w = lineW
	}
	return w, h
}

// textPass renders every (Transform, Label) entity, batching glyph quads into
// one DrawTriangles call per font page. Labels marked Screen ignore the
// camera and draw in canvas space, which is what HUD text wants.
type textPass struct {
	assets *Assets

	world  *teishoku.World
	filter *teishoku.Filter2[Transform, Label]

	batches map[*BitmapFont]*glyphBatch
	order   []*BitmapFont
	warned  map[string]bool
}

type glyphBatch struct {
	verts   []ebiten.Vertex
	indices []uint16
}

func newTextPass(assets *Assets) *textPass {
	return &textPass{
		assets:  assets,
		batches: make(map[*BitmapFont]*glyphBatch),
		warned:  make(map[string]bool),
	}
}

func (p *textPass) Name() string { return "text" }

func (p *textPass) Render(dst *ebiten.Image, snap *Snapshot) {
	if p.world != snap.World {
		p.world = snap.World
		p.filter = teishoku.NewFilter2[Transform, Label](snap.World)
	}
	p.filter.Reset()

	p.order = p.order[:0]

	for p.filter.Next() {
		transform, label := p.filter.Get()
		if label.Text == "" || label.Font == "" {
			continue
		}
		font, err := p.assets.Fonts.GetOrLoad(label.Font)
		if err != nil {
			if !p.warned[label.Font] {
				fmt.Fprintf(os.Stderr, "[skiff] font %q: %v\n", label.Font, err)
				p.warned[label.Font] = true
			}
			continue
		}
		if font.page == nil {
			continue
		}

		batch, ok := p.batches[font]
		if !ok {
			batch = &glyphBatch{}
			p.batches[font] = batch
		}
		if len(batch.verts) == 0 {
			p.order = append(p.order, font)
		}

		m := transform.model(0, 0)
		if !label.Screen {
			m = multiplyAffine(snap.View, m)
		}
		appendGlyphRun(batch, font, label.Text, label.Color, m)
	}

	for _, font := range p.order {
		batch := p.batches[font]
		if len(batch.indices) > 0 {
			op := &ebiten.DrawTrianglesOptions{}
			dst.DrawTriangles(batch.verts, batch.indices, font.page, op)
		}
		batch.verts = batch.verts[:0]
		batch.indices = batch.indices[:0]
	}
}

// Draw renders a glyph run directly at (x, y) in dst coordinates. Intended
// for overlays; entity text goes through a Label component instead.
func (f *BitmapFont) Draw(dst *ebiten.Image, text string, x, y float64, c Color) {
	if f.page == nil || text == "" {
		return
	}
	var batch glyphBatch
	m := identityTransform
	m[4], m[5] = x, y
	appendGlyphRun(&batch, f, text, c, m)
	if len(batch.indices) > 0 {
		dst.DrawTriangles(batch.verts, batch.indices, f.page, &ebiten.DrawTrianglesOptions{})
	}
}

func appendGlyphRun(batch *glyphBatch, font *BitmapFont, text string, c Color, m [6]float64) {
	r, g, b, a := c.scaled()
	var penX, penY float64
	for _, ch := range text {
		if ch == '\n' {
			penX = 0
			penY += font.LineHeight
			continue
		}
		glyph, ok := font.glyphs[ch]
		if !ok {
			continue
		}
		x0 := penX + glyph.XOffset
		y0 := penY + glyph.YOffset
		penX += glyph.Advance
		if glyph.W == 0 || glyph.H == 0 {
			continue
		}

		base := uint16(len(batch.verts))
		for _, corner := range [4][4]float64{
			{x0, y0, glyph.X, glyph.Y},
			{x0 + glyph.W, y0, glyph.X + glyph.W, glyph.Y},
			{x0, y0 + glyph.H, glyph.X, glyph.Y + glyph.H},
			{x0 + glyph.W, y0 + glyph.H, glyph.X + glyph.W, glyph.Y + glyph.H},
		} {
			dx, dy := transformPoint(m, corner[0], corner[1])
			batch.verts = append(batch.verts, ebiten.Vertex{
				DstX: float32(dx), DstY: float32(dy),
				SrcX: float32(corner[2]), SrcY: float32(corner[3]),
				ColorR: r, ColorG: g, ColorB: b, ColorA: a,
			})
		}
		batch.indices = append(batch.indices, base, base+1, base+2, base+1, base+3, base+2)
	}
}
