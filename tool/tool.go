// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package tool

import (
	"log/slog"
	"math"
	"time"

	"github.com/gogpu/inkwell"
	"github.com/gogpu/inkwell/render"
	"github.com/gogpu/inkwell/sensor"
)

// PointerEvent is one pointer or stylus sample from the host, with the
// position already mapped to normalized stroke space. Pressure is only
// meaningful when HasPressure is set; mouse input leaves it unset and
// is treated as full pressure. A zero Timestamp means "now".
type PointerEvent struct {
	X, Y float64

	Pressure    float64
	HasPressure bool

	TiltX, TiltY float64
	Rotation     float64 // degrees

	Timestamp float64 // Unix seconds
}

// reading builds the sensor snapshot for this event. Derived channels
// (speed, distance, elapsed time) come from the tool's tracking state.
func (ev PointerEvent) reading(speed, distance, elapsed, ts float64) sensor.Reading {
	pressure := 1.0
	if ev.HasPressure {
		pressure = ev.Pressure
	}
	return sensor.Reading{
		Pressure:  pressure,
		TiltX:     ev.TiltX,
		TiltY:     ev.TiltY,
		Rotation:  ev.Rotation,
		Speed:     speed,
		Distance:  distance,
		Time:      elapsed,
		X:         ev.X,
		Y:         ev.Y,
		Timestamp: ts,
	}
}

// RasterBrushTool is the stroke state machine. It is Idle until a press
// opens a stroke and Drawing until the matching release commits it.
// Drag events while Idle are ignored; the host's event ordering is not
// under this package's control, so a stray drag after release is
// routine rather than an error.
type RasterBrushTool struct {
	renderer *render.BrushRenderer
	preset   *inkwell.BrushPreset
	frame    int
	log      *slog.Logger

	drawing     bool
	startTime   float64
	lastX       float64
	lastY       float64
	lastTime    float64
	lastReading sensor.Reading
	distance    float64
}

// NewRasterBrushTool creates an idle tool stamping through the renderer.
// A nil logger uses the package default.
func NewRasterBrushTool(r *render.BrushRenderer, log *slog.Logger) *RasterBrushTool {
	if log == nil {
		log = inkwell.Logger()
	}
	return &RasterBrushTool{renderer: r, log: log}
}

// SetPreset selects the active brush preset. The tool holds the preset
// by reference; the caller keeps ownership. The preset may be nil, in
// which case presses are ignored.
func (t *RasterBrushTool) SetPreset(p *inkwell.BrushPreset) { t.preset = p }

// Preset returns the active preset, which may be nil.
func (t *RasterBrushTool) Preset() *inkwell.BrushPreset { return t.preset }

// SetFrame selects the frame new strokes are recorded on. It does not
// affect a stroke already in progress.
func (t *RasterBrushTool) SetFrame(frame int) { t.frame = frame }

// Frame returns the current target frame.
func (t *RasterBrushTool) Frame() int { return t.frame }

// Drawing reports whether a stroke is in progress.
func (t *RasterBrushTool) Drawing() bool { return t.drawing }

// OnPress opens a stroke on the canvas and stamps its first point.
// Without an active preset the event is ignored.
func (t *RasterBrushTool) OnPress(canvas *inkwell.Canvas, ev PointerEvent) {
	if t.preset == nil || t.drawing || canvas == nil {
		return
	}
	ts := eventTime(ev)
	r := ev.reading(0, 0, 0, ts)

	stroke := canvas.StartStroke(t.frame, t.preset)
	stroke.StartTime = ts
	t.renderer.BeginStroke()

	stroke.AddPoint(ev.X, ev.Y, r)
	t.stamp(ev.X, ev.Y, r)

	t.drawing = true
	t.startTime = ts
	t.lastX, t.lastY = ev.X, ev.Y
	t.lastTime = ts
	t.lastReading = r
	t.distance = 0
}

// OnDrag extends the stroke toward the event position. When the motion
// since the last sample exceeds half the stamp spacing, evenly spaced
// intermediate points are generated with sensor channels interpolated
// along the segment; slower motion stamps the sample directly.
func (t *RasterBrushTool) OnDrag(canvas *inkwell.Canvas, ev PointerEvent) {
	if !t.drawing || canvas == nil {
		return
	}
	stroke := canvas.CurrentStroke()
	if stroke == nil {
		return
	}

	ts := eventTime(ev)
	dx := ev.X - t.lastX
	dy := ev.Y - t.lastY
	dist := math.Hypot(dx, dy)

	// Speed is undefined when the clock has not advanced.
	speed := 0.0
	if dt := ts - t.lastTime; dt > 0 {
		speed = dist / dt
	}
	t.distance += dist

	current := ev.reading(speed, t.distance, ts-t.startTime, ts)

	spacing := t.spacing()
	if spacing > 0 && dist > spacing/2 {
		count := int(math.Max(1, math.Round(dist/spacing)))
		for i := 1; i <= count; i++ {
			f := float64(i) / float64(count)
			x := t.lastX + dx*f
			y := t.lastY + dy*f
			r := t.lastReading.Lerp(current, f)
			stroke.AddPoint(x, y, r)
			t.stamp(x, y, r)
		}
	} else {
		stroke.AddPoint(ev.X, ev.Y, current)
		t.stamp(ev.X, ev.Y, current)
	}

	t.lastX, t.lastY = ev.X, ev.Y
	t.lastTime = ts
	t.lastReading = current
}

// OnRelease performs a final drag to the release position, closes the
// renderer stroke, and commits the recorded stroke to the canvas.
func (t *RasterBrushTool) OnRelease(canvas *inkwell.Canvas, ev PointerEvent) {
	if !t.drawing || canvas == nil {
		return
	}
	t.OnDrag(canvas, ev)
	if stroke := canvas.CurrentStroke(); stroke != nil {
		stroke.EndTime = eventTime(ev)
	}

	t.renderer.EndStroke()
	canvas.EndStroke()

	t.drawing = false
	t.lastReading = sensor.Reading{}
	t.lastX, t.lastY = 0, 0
	t.lastTime = 0
	t.distance = 0
}

// spacing returns the inter-stamp distance in normalized units:
// the preset's spacing fraction of the brush diameter, scaled by the
// image width. Zero when no image is bound.
func (t *RasterBrushTool) spacing() float64 {
	width, _ := t.renderer.ImageSize()
	if width < 1 {
		return 0
	}
	return t.preset.Spacing * t.preset.Size / float64(width)
}

// stamp blends one brush impression into the current frame's canvas
// with size and opacity modulated by the reading.
func (t *RasterBrushTool) stamp(x, y float64, r sensor.Reading) {
	width, _ := t.renderer.ImageSize()
	if width < 1 {
		return
	}
	err := t.renderer.Stamp(t.frame, t.preset.Texture, render.StampParams{
		X:        x,
		Y:        y,
		Size:     inkwell.ImageScalarToStroke(width, t.preset.EffectiveSize(r)),
		Color:    t.preset.Color,
		Opacity:  t.preset.EffectiveOpacity(r),
		Hardness: t.preset.Hardness,
	})
	if err != nil {
		t.log.Error("inkwell: stamp failed", "frame", t.frame, "err", err)
	}
}

func eventTime(ev PointerEvent) float64 {
	if ev.Timestamp != 0 {
		return ev.Timestamp
	}
	return float64(time.Now().UnixNano()) / 1e9
}
