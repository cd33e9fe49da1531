package inkwell

import "github.com/gogpu/inkwell/sensor"

// BrushPreset is a complete brush configuration: base parameters plus
// per-parameter sensor modulation lists.
//
// A preset is shared by reference between the active tool and any UI
// that edits it. Recorded strokes snapshot the parameters they used at
// stroke start, so editing a preset never retroactively alters strokes
// already on the canvas.
type BrushPreset struct {
	Name string

	// Base brush parameters.
	Size     float64 // base diameter in image pixels
	Opacity  float64 // 0..1
	Flow     float64 // paint accumulation rate, 0..1
	Hardness float64 // edge softness, 0..1
	Spacing  float64 // inter-stamp distance as a fraction of Size

	Color   RGBA
	Texture string // brush tip shape identifier

	// Sensor modulation per target parameter. Each list composes
	// multiplicatively at stamp time.
	SizeModulation     []sensor.Config
	OpacityModulation  []sensor.Config
	FlowModulation     []sensor.Config
	RotationModulation []sensor.Config
}

// DefaultPreset returns a soft round brush with pressure-driven size
// and opacity, matching the settings a fresh session starts with.
func DefaultPreset() *BrushPreset {
	return &BrushPreset{
		Name:     "Soft Round",
		Size:     20,
		Opacity:  1.0,
		Flow:     1.0,
		Hardness: 0.5,
		Spacing:  0.15,
		Color:    RGBA{A: 1},
		Texture:  "soft_circle",
		SizeModulation: []sensor.Config{
			sensor.NewConfig(sensor.Pressure),
		},
		OpacityModulation: []sensor.Config{
			{Kind: sensor.Pressure, Enabled: true, Strength: 0.7},
		},
	}
}

// Clone returns a deep copy of the preset. Modulation lists are copied
// so the clone can be edited independently.
func (p *BrushPreset) Clone() *BrushPreset {
	c := *p
	c.SizeModulation = append([]sensor.Config(nil), p.SizeModulation...)
	c.OpacityModulation = append([]sensor.Config(nil), p.OpacityModulation...)
	c.FlowModulation = append([]sensor.Config(nil), p.FlowModulation...)
	c.RotationModulation = append([]sensor.Config(nil), p.RotationModulation...)
	return &c
}

// EffectiveSize returns the base size modulated by the size sensor
// list for the given reading. Floored at 0.
func (p *BrushPreset) EffectiveSize(r sensor.Reading) float64 {
	return sensor.Modulate(p.Size, p.SizeModulation, sensor.DefaultParams(), r)
}

// EffectiveOpacity returns opacity times flow, each modulated by its
// sensor list. Flow modulates accumulation rate, so it folds into the
// per-stamp opacity rather than the stored opacity value.
func (p *BrushPreset) EffectiveOpacity(r sensor.Reading) float64 {
	op := sensor.Modulate(p.Opacity, p.OpacityModulation, sensor.DefaultParams(), r)
	fl := sensor.Modulate(p.Flow, p.FlowModulation, sensor.DefaultParams(), r)
	return op * fl
}
