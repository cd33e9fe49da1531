package sensor

// Reading is a snapshot of all sensor channels at one point in a stroke.
// It is created once per stamped point and copied channel-wise when the
// stroke path is interpolated. Readings are value types and never mutated
// after creation.
type Reading struct {
	// Pressure is the stylus pressure, 0 to 1. Mouse input reports 1.
	Pressure float64

	// TiltX and TiltY are the stylus tilt components, -1 to 1.
	TiltX float64
	TiltY float64

	// Rotation is the barrel rotation in degrees, 0 to 360.
	Rotation float64

	// Speed is the drawing speed in normalized units per second.
	Speed float64

	// Distance is the accumulated stroke distance in normalized units.
	Distance float64

	// Time is the elapsed time since stroke start, in seconds.
	Time float64

	// X and Y are the position in normalized stroke space, for reference.
	X float64
	Y float64

	// Timestamp is the wall-clock time of the sample, in Unix seconds.
	Timestamp float64
}

// lerp performs linear interpolation between two values.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Lerp interpolates every channel between r and other at fraction t.
// At t=0 the result equals r, at t=1 it equals other.
func (r Reading) Lerp(other Reading, t float64) Reading {
	return Reading{
		Pressure:  lerp(r.Pressure, other.Pressure, t),
		TiltX:     lerp(r.TiltX, other.TiltX, t),
		TiltY:     lerp(r.TiltY, other.TiltY, t),
		Rotation:  lerp(r.Rotation, other.Rotation, t),
		Speed:     lerp(r.Speed, other.Speed, t),
		Distance:  lerp(r.Distance, other.Distance, t),
		Time:      lerp(r.Time, other.Time, t),
		X:         lerp(r.X, other.X, t),
		Y:         lerp(r.Y, other.Y, t),
		Timestamp: lerp(r.Timestamp, other.Timestamp, t),
	}
}
