package sensor

import "math"

// Kind identifies one sensor channel.
type Kind uint8

const (
	// Pressure reads stylus pressure. The most common sensor, typically
	// driving size and opacity.
	Pressure Kind = iota

	// Tilt reads the stylus tilt angle (magnitude or a single axis,
	// depending on [Params.TiltMode]).
	Tilt

	// Rotation reads the stylus barrel rotation.
	Rotation

	// Speed reads the drawing velocity.
	Speed

	// Distance reads the accumulated distance within the stroke.
	Distance

	// Time reads the elapsed time since stroke start.
	Time
)

// String returns the kind name as stored in presets and documents.
func (k Kind) String() string {
	switch k {
	case Pressure:
		return "pressure"
	case Tilt:
		return "tilt"
	case Rotation:
		return "rotation"
	case Speed:
		return "speed"
	case Distance:
		return "distance"
	case Time:
		return "time"
	default:
		return "pressure"
	}
}

// ParseKind maps a sensor name to its Kind.
// Unknown names fall back to Pressure.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "pressure", "":
		return Pressure, true
	case "tilt":
		return Tilt, true
	case "rotation":
		return Rotation, true
	case "speed":
		return Speed, true
	case "distance":
		return Distance, true
	case "time":
		return Time, true
	default:
		return Pressure, false
	}
}

// TiltMode selects how the tilt sensor maps the two tilt axes to one value.
type TiltMode uint8

const (
	// TiltMagnitude is the total tilt amount: 0 when the pen is vertical,
	// 1 when fully tilted.
	TiltMagnitude TiltMode = iota

	// TiltAxisX maps the x-axis tilt from [-1, 1] to [0, 1].
	TiltAxisX

	// TiltAxisY maps the y-axis tilt from [-1, 1] to [0, 1].
	TiltAxisY
)

// RangeMode selects how the distance and time sensors map their
// unbounded inputs into [0, 1].
type RangeMode uint8

const (
	// RangeLinear maps 0..max directly to 0..1, clamped.
	RangeLinear RangeMode = iota

	// RangeFade is the inverse mapping: 1 at the start, 0 at max.
	// Useful for running-out-of-ink effects.
	RangeFade

	// RangePeriodic cycles from 0 to 1 repeatedly every max units.
	// For the time sensor this is a sine oscillation instead of a sawtooth.
	RangePeriodic
)

// maxTiltMagnitude is sqrt(2), the tilt vector length with both axes at 1.
const maxTiltMagnitude = 1.414

// Params holds the normalization ranges and mode switches shared by all
// sensor kinds. The zero value is not useful; start from DefaultParams.
type Params struct {
	// MaxSpeed is the speed that maps to 1.0, in normalized units/sec.
	MaxSpeed float64

	// MaxDistance is the accumulated distance that maps to 1.0.
	MaxDistance float64

	// MaxTime is the elapsed time that maps to 1.0, in seconds.
	MaxTime float64

	// TiltMode selects the tilt axis mapping.
	TiltMode TiltMode

	// DistanceMode selects the distance range mapping.
	DistanceMode RangeMode

	// TimeMode selects the time range mapping.
	TimeMode RangeMode
}

// DefaultParams returns the normalization ranges used when a preset does
// not override them.
func DefaultParams() Params {
	return Params{
		MaxSpeed:    2.0,
		MaxDistance: 2.0,
		MaxTime:     5.0,
	}
}

// Compute maps a reading to the raw sensor value in [0, 1] for one kind.
// Out-of-range inputs clamp rather than error: a pressure of 1.5 computes
// to 1.0.
func Compute(k Kind, p Params, r Reading) float64 {
	switch k {
	case Pressure:
		return clamp01(r.Pressure)

	case Tilt:
		switch p.TiltMode {
		case TiltAxisX:
			return clamp01((r.TiltX + 1.0) * 0.5)
		case TiltAxisY:
			return clamp01((r.TiltY + 1.0) * 0.5)
		default:
			mag := math.Sqrt(r.TiltX*r.TiltX + r.TiltY*r.TiltY)
			return math.Min(1.0, mag/maxTiltMagnitude)
		}

	case Rotation:
		deg := math.Mod(r.Rotation, 360.0)
		if deg < 0 {
			deg += 360.0
		}
		return deg / 360.0

	case Speed:
		return clamp01(r.Speed / p.MaxSpeed)

	case Distance:
		norm := r.Distance / p.MaxDistance
		switch p.DistanceMode {
		case RangeFade:
			return clamp01(1.0 - norm)
		case RangePeriodic:
			return math.Mod(norm, 1.0)
		default:
			return clamp01(norm)
		}

	case Time:
		norm := r.Time / p.MaxTime
		switch p.TimeMode {
		case RangeFade:
			return clamp01(1.0 - norm)
		case RangePeriodic:
			return (math.Sin(2.0*math.Pi*norm) + 1.0) * 0.5
		default:
			return clamp01(norm)
		}

	default:
		return clamp01(r.Pressure)
	}
}

// Config binds one sensor kind to a strength and response curve for a
// single brush parameter. A preset may carry any number of Configs per
// parameter; their Values compose multiplicatively.
type Config struct {
	// Kind is the sensor channel to read.
	Kind Kind

	// Enabled gates the whole config. A disabled config's Value is
	// exactly 1.0 for every reading.
	Enabled bool

	// Strength blends between no effect (0) and the full curved sensor
	// value (1).
	Strength float64

	// Curve is the response curve applied to the raw sensor value.
	Curve Curve
}

// NewConfig returns an enabled Config with full strength and linear curve.
func NewConfig(k Kind) Config {
	return Config{Kind: k, Enabled: true, Strength: 1.0}
}

// Value returns the modulation factor for the reading using DefaultParams.
func (c Config) Value(r Reading) float64 {
	return c.ValueWith(DefaultParams(), r)
}

// ValueWith returns the modulation factor for the reading:
// 1 + (curve(raw) - 1) * strength, or exactly 1.0 when disabled.
// The factor multiplies a base brush parameter; callers clamp the final
// product at zero.
func (c Config) ValueWith(p Params, r Reading) float64 {
	if !c.Enabled {
		return 1.0
	}
	raw := Compute(c.Kind, p, r)
	curved := c.Curve.Apply(raw)
	return 1.0 + (curved-1.0)*c.Strength
}

// Modulate applies a list of sensor configs to a base parameter value,
// multiplying in each factor and flooring the result at zero.
func Modulate(base float64, configs []Config, p Params, r Reading) float64 {
	v := base
	for _, c := range configs {
		v *= c.ValueWith(p, r)
	}
	return math.Max(0, v)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
