package inkwell

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestGeometryRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		geom Geometry
	}{
		{
			name: "axis aligned",
			geom: GeometryFromRect(100, 50, 800, 600),
		},
		{
			name: "rotated",
			geom: Geometry{
				BL: Pt(200, 100),
				BR: Pt(600, 300),
				TR: Pt(400, 700),
				TL: Pt(0, 500),
			},
		},
		{
			name: "anisotropic zoom",
			geom: Geometry{
				BL: Pt(0, 0),
				BR: Pt(1000, 0),
				TR: Pt(1000, 250),
				TL: Pt(0, 250),
			},
		},
	}

	points := []struct{ x, y float64 }{
		{0, 0}, {1, 1}, {0.5, 0.5}, {0.25, 0.75}, {0.931, 0.117},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.geom.Valid() {
				t.Fatal("geometry unexpectedly degenerate")
			}
			for _, p := range points {
				screen := tt.geom.StrokeToScreen(p.x, p.y)
				back := tt.geom.ScreenToStroke(screen)
				if !almostEqual(back.X, p.x, 1e-9) || !almostEqual(back.Y, p.y, 1e-9) {
					t.Errorf("round trip (%g,%g) -> %v -> %v", p.x, p.y, screen, back)
				}
			}
		})
	}
}

func TestGeometryCorners(t *testing.T) {
	g := GeometryFromRect(10, 20, 100, 200)

	// Normalized corners map onto the quad corners exactly.
	cases := []struct {
		x, y float64
		want Point
	}{
		{0, 0, g.BL},
		{1, 0, g.BR},
		{1, 1, g.TR},
		{0, 1, g.TL},
	}
	for _, c := range cases {
		got := g.StrokeToScreen(c.x, c.y)
		if !almostEqual(got.X, c.want.X, 1e-9) || !almostEqual(got.Y, c.want.Y, 1e-9) {
			t.Errorf("StrokeToScreen(%g,%g) = %v; want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestGeometryDegenerate(t *testing.T) {
	tests := []struct {
		name string
		geom Geometry
	}{
		{"zero area", Geometry{}},
		{"collapsed to line", Geometry{
			BL: Pt(0, 0), BR: Pt(100, 0), TR: Pt(200, 0), TL: Pt(100, 0),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.geom.Valid() {
				t.Error("Valid() = true for degenerate geometry")
			}
		})
	}
}

func TestGeometryScalar(t *testing.T) {
	// A 2x horizontal zoom doubles a horizontal length.
	g := Geometry{
		BL: Pt(0, 0), BR: Pt(2000, 0), TR: Pt(2000, 1000), TL: Pt(0, 1000),
	}
	d := g.ScalarToScreen(0.1)
	if !almostEqual(d, 200, 1e-9) {
		t.Errorf("ScalarToScreen(0.1) = %g; want 200", d)
	}

	// Inverse direction, and round trip.
	if s := g.ScalarToStroke(200); !almostEqual(s, 0.1, 1e-9) {
		t.Errorf("ScalarToStroke(200) = %g; want 0.1", s)
	}
	if rt := g.ScalarToStroke(g.ScalarToScreen(0.37)); !almostEqual(rt, 0.37, 1e-12) {
		t.Errorf("scalar round trip = %g; want 0.37", rt)
	}

	if s := (Geometry{}).ScalarToStroke(50); s != 0 {
		t.Errorf("degenerate ScalarToStroke = %g; want 0", s)
	}
}

func TestGeometryImageToStroke(t *testing.T) {
	x, y := ImageToStroke(1000, 500, 250, 125)
	if !almostEqual(x, 0.25, 1e-12) || !almostEqual(y, 0.25, 1e-12) {
		t.Errorf("ImageToStroke = (%g,%g); want (0.25,0.25)", x, y)
	}

	d := ImageScalarToStroke(1000, 40)
	if !almostEqual(d, 0.04, 1e-12) {
		t.Errorf("ImageScalarToStroke = %g; want 0.04", d)
	}
}
