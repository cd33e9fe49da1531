// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/inkwell"
	"github.com/gogpu/inkwell/sensor"
)

// PresetResolver maps a stored preset name to the live preset whose
// sensor modulation lists apply during replay. A nil resolver, or a
// resolver returning nil, replays with the default preset's modulation.
type PresetResolver func(name string) *inkwell.BrushPreset

// Replay re-stamps every recorded stroke into the frame canvases.
// Each stamp recomputes the effective size and opacity from the
// stroke's stored base parameters and sensor readings with the same
// modulation arithmetic the live path uses, so the rebuilt canvas
// matches the pre-save pixels.
func Replay(r *BrushRenderer, canvas *inkwell.Canvas, resolve PresetResolver) error {
	for _, frame := range canvas.Frames() {
		if err := r.ClearFrame(frame); err != nil {
			return err
		}
		for _, s := range canvas.Strokes(frame) {
			if err := ReplayStroke(r, s, resolve); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReplayStroke re-stamps a single stroke.
func ReplayStroke(r *BrushRenderer, s *inkwell.BrushStroke, resolve PresetResolver) error {
	var mod *inkwell.BrushPreset
	if resolve != nil {
		mod = resolve(s.PresetName)
	}
	if mod == nil {
		mod = inkwell.DefaultPreset()
	}

	width, _ := r.ImageSize()
	if width < 1 {
		return nil
	}

	params := sensor.DefaultParams()
	r.BeginStroke()
	defer r.EndStroke()

	for _, pt := range s.Points {
		size := sensor.Modulate(s.Size, mod.SizeModulation, params, pt.Sensor)
		opacity := sensor.Modulate(s.Opacity, mod.OpacityModulation, params, pt.Sensor)
		flow := sensor.Modulate(s.Flow, mod.FlowModulation, params, pt.Sensor)

		err := r.Stamp(s.Frame, s.Texture, StampParams{
			X:        pt.X,
			Y:        pt.Y,
			Size:     inkwell.ImageScalarToStroke(width, size),
			Color:    s.Color,
			Opacity:  opacity * flow,
			Hardness: s.Hardness,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
