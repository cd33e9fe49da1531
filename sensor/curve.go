package sensor

// Curve is a response curve applied to a raw sensor value before strength.
// Curves are data, not code: presets store them by name and new curves are
// an enum extension.
type Curve uint8

const (
	// CurveLinear passes the value through unchanged.
	CurveLinear Curve = iota

	// CurveEaseIn starts slow and ends fast (x squared).
	CurveEaseIn

	// CurveEaseOut starts fast and ends slow.
	CurveEaseOut

	// CurveEaseInOut is slow at both ends, fast in the middle
	// (piecewise quadratic with the pivot at 0.5).
	CurveEaseInOut
)

// Apply evaluates the curve at x. Inputs are expected in [0, 1].
func (c Curve) Apply(x float64) float64 {
	switch c {
	case CurveEaseIn:
		return x * x
	case CurveEaseOut:
		return 1.0 - (1.0-x)*(1.0-x)
	case CurveEaseInOut:
		if x < 0.5 {
			return 2.0 * x * x
		}
		return 1.0 - 2.0*(1.0-x)*(1.0-x)
	default:
		return x
	}
}

// String returns the curve name as stored in presets and documents.
func (c Curve) String() string {
	switch c {
	case CurveEaseIn:
		return "ease_in"
	case CurveEaseOut:
		return "ease_out"
	case CurveEaseInOut:
		return "ease_in_out"
	default:
		return "linear"
	}
}

// ParseCurve maps a curve name to its Curve value.
// Unknown names fall back to CurveLinear; the caller decides whether the
// fallback deserves a diagnostic.
func ParseCurve(s string) (Curve, bool) {
	switch s {
	case "linear", "":
		return CurveLinear, true
	case "ease_in":
		return CurveEaseIn, true
	case "ease_out":
		return CurveEaseOut, true
	case "ease_in_out":
		return CurveEaseInOut, true
	default:
		return CurveLinear, false
	}
}
