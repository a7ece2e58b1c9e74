package skiff

import (
	"math"
	"testing"
)

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 5, 40, false},
		{"outside bottom", 50, 75, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Rect.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestColorScaledPremultiplies(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: 0, A: 0.5}
	r, g, b, a := c.scaled()
	if r != 0.5 || g != 0.25 || b != 0 || a != 0.5 {
		t.Errorf("scaled = (%v, %v, %v, %v), want (0.5, 0.25, 0, 0.5)", r, g, b, a)
	}
}

func TestMultiplyAffine(t *testing.T) {
	// Translate then rotate 90 degrees: the translation rides along.
	rot := rotationAffine(math.Pi / 2)
	trans := [6]float64{1, 0, 0, 1, 10, 0}
	m := multiplyAffine(rot, trans)

	x, y := transformPoint(m, 0, 0)
	if math.Abs(x) > 1e-9 || math.Abs(y-10) > 1e-9 {
		t.Errorf("rotated translation = (%v, %v), want (0, 10)", x, y)
	}

	// Identity is neutral on both sides.
	if got := multiplyAffine(identityTransform, rot); got != rot {
		t.Error("identity * m != m")
	}
	if got := multiplyAffine(rot, identityTransform); got != rot {
		t.Error("m * identity != m")
	}
}

func TestInvertAffine(t *testing.T) {
	m := multiplyAffine(rotationAffine(0.7), [6]float64{2, 0, 0, 3, 5, -4})
	inv := invertAffine(m)

	x, y := transformPoint(m, 11, -7)
	bx, by := transformPoint(inv, x, y)
	if math.Abs(bx-11) > 1e-9 || math.Abs(by+7) > 1e-9 {
		t.Errorf("inverse round trip = (%v, %v), want (11, -7)", bx, by)
	}

	// Singular matrices fall back to identity instead of NaN.
	singular := [6]float64{0, 0, 0, 0, 1, 2}
	if got := invertAffine(singular); got != identityTransform {
		t.Errorf("invert(singular) = %v, want identity", got)
	}
}

func TestTransformModelCentersQuad(t *testing.T) {
	tr := NewTransform(100, 200)
	m := tr.model(40, 20)

	// The quad's center lands on the entity position.
	cx, cy := transformPoint(m, 20, 10)
	if cx != 100 || cy != 200 {
		t.Errorf("center = (%v, %v), want (100, 200)", cx, cy)
	}
}

func TestTransformModelZeroScaleDefaults(t *testing.T) {
	tr := Transform{Pos: Vec2{X: 10, Y: 10}}
	m := tr.model(2, 2)

	// A zero-valued scale renders at unit scale instead of collapsing.
	x0, _ := transformPoint(m, 0, 0)
	x1, _ := transformPoint(m, 2, 0)
	if x1-x0 != 2 {
		t.Errorf("width = %v, want 2", x1-x0)
	}
}

func TestTransformModelRotatesAroundCenter(t *testing.T) {
	tr := NewTransform(0, 0)
	tr.Rotation = math.Pi

	m := tr.model(10, 10)
	// After a half turn the former top-left corner sits at the former
	// bottom-right.
	x, y := transformPoint(m, 0, 0)
	if math.Abs(x-5) > 1e-9 || math.Abs(y-5) > 1e-9 {
		t.Errorf("corner = (%v, %v), want (5, 5)", x, y)
	}
}

func TestBlendModeMapping(t *testing.T) {
	if BlendNormal.EbitenBlend() == BlendAdd.EbitenBlend() {
		t.Error("normal and additive blends must differ")
	}
	if BlendAdd.EbitenBlend() == BlendNone.EbitenBlend() {
		t.Error("additive and copy blends must differ")
	}
}
