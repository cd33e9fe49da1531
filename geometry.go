package inkwell

import "math"

// degenerateEpsilon is the determinant threshold below which an image
// geometry is considered to have zero area (no image displayed).
const degenerateEpsilon = 1e-12

// Geometry describes where the source image currently renders on screen:
// the four corner points of the image quadrilateral in viewport pixels,
// ordered bottom-left, bottom-right, top-right, top-left. It captures the
// viewer's live pan/zoom/rotate and is refreshed by the host once per
// render pass.
//
// The origin corner plus the two edge vectors form a 2D affine frame, so
// conversions between screen space and normalized stroke space are a
// single linear solve in each direction.
type Geometry struct {
	// BL, BR, TR, TL are the corners in screen space.
	BL, BR, TR, TL Point
}

// GeometryFromRect builds an axis-aligned geometry covering the rectangle
// from (x, y) to (x+w, y+h). Mainly useful for tests and headless replay
// where the viewer transform is identity.
func GeometryFromRect(x, y, w, h float64) Geometry {
	return Geometry{
		BL: Point{X: x, Y: y},
		BR: Point{X: x + w, Y: y},
		TR: Point{X: x + w, Y: y + h},
		TL: Point{X: x, Y: y + h},
	}
}

// basis returns the affine frame of the geometry: the origin corner and
// the two edge vectors u (along the bottom edge) and v (along the left edge).
func (g Geometry) basis() (t, u, v Point) {
	t = g.BL
	u = g.BR.Sub(g.BL)
	v = g.TL.Sub(g.BL)
	return t, u, v
}

// det returns the determinant of the 2x2 linear part of the frame.
// Zero means the quadrilateral has no area.
func (g Geometry) det() float64 {
	_, u, v := g.basis()
	return u.Cross(v)
}

// Valid reports whether the geometry spans a usable, non-degenerate area.
// Callers must check Valid before ScreenToStroke; a degenerate geometry
// means "no current image" and the caller should treat the event as a no-op
// rather than produce NaN coordinates.
func (g Geometry) Valid() bool {
	return math.Abs(g.det()) > degenerateEpsilon
}

// StrokeToScreen converts a point from normalized stroke space (0..1)
// to screen space: screen = origin + x*u + y*v.
func (g Geometry) StrokeToScreen(x, y float64) Point {
	t, u, v := g.basis()
	return Point{
		X: t.X + u.X*x + v.X*y,
		Y: t.Y + u.Y*x + v.Y*y,
	}
}

// ScreenToStroke converts a point from screen space to normalized stroke
// space by inverting the 2x2 linear system via the determinant. It is the
// exact inverse of StrokeToScreen for any geometry with Valid() == true.
func (g Geometry) ScreenToStroke(p Point) Point {
	t, u, v := g.basis()
	k := 1.0 / u.Cross(v)
	d := p.Sub(t)
	return Point{
		X: k * (v.Y*d.X - v.X*d.Y),
		Y: k * (u.X*d.Y - u.Y*d.X),
	}
}

// ScalarToScreen converts a scalar length (e.g. a brush diameter) from
// stroke space to screen space by transforming two reference points along
// the x axis and measuring their screen distance. This keeps brush sizes
// correct under anisotropic zoom.
func (g Geometry) ScalarToScreen(d float64) float64 {
	a := g.StrokeToScreen(0, 0)
	b := g.StrokeToScreen(d, 0)
	return a.Distance(b)
}

// ScalarToStroke is the inverse of ScalarToScreen: it converts a scalar
// screen length (e.g. an on-screen hit radius) to stroke space.
func (g Geometry) ScalarToStroke(d float64) float64 {
	unit := g.ScalarToScreen(1)
	if unit == 0 {
		return 0
	}
	return d / unit
}

// Corners returns the four corners of the geometry in
// bottom-left, bottom-right, top-right, top-left order. This is the quad
// the renderer composites a frame canvas onto.
func (g Geometry) Corners() [4]Point {
	return [4]Point{g.BL, g.BR, g.TR, g.TL}
}

// ImageToStroke converts a point from image pixel space to normalized
// stroke space for an image of the given dimensions.
func ImageToStroke(width, height int, x, y float64) (float64, float64) {
	return x / float64(width), y / float64(height)
}

// ImageScalarToStroke converts a scalar length in image pixels (e.g. a
// brush size) to normalized stroke units along the x axis.
func ImageScalarToStroke(width int, d float64) float64 {
	return d / float64(width)
}
