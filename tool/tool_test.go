// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package tool

import (
	"math"
	"testing"

	"github.com/gogpu/inkwell"
	"github.com/gogpu/inkwell/render"
)

// newTestTool builds a tool over a software device with a 1000px wide
// image, the configuration the spacing arithmetic in these tests
// assumes.
func newTestTool(t *testing.T) (*RasterBrushTool, *inkwell.Canvas) {
	t.Helper()
	dev := render.NewSoftwareDevice(200, 200)
	r := render.NewBrushRenderer(dev, nil)
	r.SetImageSize(1000, 1000)
	t.Cleanup(func() {
		r.Close()
		dev.Close()
	})

	tool := NewRasterBrushTool(r, nil)
	tool.SetPreset(inkwell.DefaultPreset())
	return tool, inkwell.NewCanvas()
}

func TestStrokeLifecycle(t *testing.T) {
	tool, canvas := newTestTool(t)

	if tool.Drawing() {
		t.Fatal("new tool should be idle")
	}
	tool.OnPress(canvas, PointerEvent{X: 0.5, Y: 0.5, Timestamp: 100})
	if !tool.Drawing() {
		t.Fatal("press did not enter drawing state")
	}
	if canvas.CurrentStroke() == nil {
		t.Fatal("press did not open a stroke")
	}
	tool.OnRelease(canvas, PointerEvent{X: 0.5, Y: 0.5, Timestamp: 100.5})
	if tool.Drawing() {
		t.Fatal("release did not return to idle")
	}
	if canvas.CurrentStroke() != nil {
		t.Fatal("release did not commit the stroke")
	}

	strokes := canvas.Strokes(0)
	if len(strokes) != 1 {
		t.Fatalf("committed strokes = %d, want 1", len(strokes))
	}
	s := strokes[0]
	if s.Len() < 1 {
		t.Error("press and release at the same point must record at least one point")
	}
	if s.StartTime != 100 || s.EndTime != 100.5 {
		t.Errorf("stroke times = %g..%g, want 100..100.5", s.StartTime, s.EndTime)
	}
}

func TestDragWhileIdleIgnored(t *testing.T) {
	tool, canvas := newTestTool(t)

	tool.OnDrag(canvas, PointerEvent{X: 0.3, Y: 0.3})
	tool.OnRelease(canvas, PointerEvent{X: 0.3, Y: 0.3})

	if canvas.CurrentStroke() != nil || canvas.HasStrokes(0) {
		t.Error("drag and release while idle must not create strokes")
	}
}

func TestPressWithoutPresetIgnored(t *testing.T) {
	tool, canvas := newTestTool(t)
	tool.SetPreset(nil)

	tool.OnPress(canvas, PointerEvent{X: 0.5, Y: 0.5})
	if tool.Drawing() || canvas.CurrentStroke() != nil {
		t.Error("press without a preset must be a no-op")
	}
}

func TestDragInterpolationSpacing(t *testing.T) {
	tool, canvas := newTestTool(t)

	// spacing fraction 0.25 of a 40px brush on a 1000px image gives an
	// inter-stamp distance of 0.01 normalized units, so a 0.05 drag must
	// produce exactly round(0.05/0.01) = 5 interpolated points.
	p := tool.Preset()
	p.Size = 40
	p.Spacing = 0.25

	tool.OnPress(canvas, PointerEvent{X: 0, Y: 0.5, Timestamp: 1})
	tool.OnDrag(canvas, PointerEvent{X: 0.05, Y: 0.5, Timestamp: 1.1})

	s := canvas.CurrentStroke()
	if s == nil {
		t.Fatal("no active stroke")
	}
	if got := s.Len(); got != 6 {
		t.Fatalf("points after press+drag = %d, want 6 (1 press + 5 interpolated)", got)
	}
	// Interpolated points are evenly spaced along the segment.
	for i := 1; i <= 5; i++ {
		wantX := 0.01 * float64(i)
		if got := s.Points[i].X; math.Abs(got-wantX) > 1e-12 {
			t.Errorf("point %d x = %g, want %g", i, got, wantX)
		}
	}
}

func TestDragBelowHalfSpacingStampsDirectly(t *testing.T) {
	tool, canvas := newTestTool(t)
	p := tool.Preset()
	p.Size = 40
	p.Spacing = 0.25 // spacing 0.01, half-spacing 0.005

	tool.OnPress(canvas, PointerEvent{X: 0.5, Y: 0.5, Timestamp: 1})
	tool.OnDrag(canvas, PointerEvent{X: 0.503, Y: 0.5, Timestamp: 1.05})

	s := canvas.CurrentStroke()
	if got := s.Len(); got != 2 {
		t.Fatalf("fine motion points = %d, want 2 (no interpolation)", got)
	}
	if s.Points[1].X != 0.503 {
		t.Errorf("direct stamp x = %g, want 0.503", s.Points[1].X)
	}
}

func TestSensorInterpolationAlongSegment(t *testing.T) {
	tool, canvas := newTestTool(t)
	p := tool.Preset()
	p.Size = 40
	p.Spacing = 0.25

	press := PointerEvent{X: 0, Y: 0.5, Pressure: 0, HasPressure: true, Timestamp: 1}
	drag := PointerEvent{X: 0.05, Y: 0.5, Pressure: 1, HasPressure: true, Timestamp: 1.1}
	tool.OnPress(canvas, press)
	tool.OnDrag(canvas, drag)

	s := canvas.CurrentStroke()
	if s.Len() != 6 {
		t.Fatalf("points = %d, want 6", s.Len())
	}
	for i := 1; i <= 5; i++ {
		want := float64(i) / 5.0
		if got := s.Points[i].Sensor.Pressure; math.Abs(got-want) > 1e-12 {
			t.Errorf("point %d pressure = %g, want %g", i, got, want)
		}
	}
}

func TestSpeedAndDistanceTracking(t *testing.T) {
	tool, canvas := newTestTool(t)

	tool.OnPress(canvas, PointerEvent{X: 0.1, Y: 0.5, Timestamp: 10})
	tool.OnDrag(canvas, PointerEvent{X: 0.3, Y: 0.5, Timestamp: 10.1})
	tool.OnDrag(canvas, PointerEvent{X: 0.3, Y: 0.6, Timestamp: 10.3})

	s := canvas.CurrentStroke()
	last := s.Points[s.Len()-1].Sensor

	// Second drag moved 0.1 in 0.2s.
	if math.Abs(last.Speed-0.5) > 1e-9 {
		t.Errorf("speed = %g, want 0.5", last.Speed)
	}
	// Accumulated distance is 0.2 + 0.1.
	if math.Abs(last.Distance-0.3) > 1e-9 {
		t.Errorf("distance = %g, want 0.3", last.Distance)
	}
	if math.Abs(last.Time-0.3) > 1e-9 {
		t.Errorf("elapsed time = %g, want 0.3", last.Time)
	}
}

func TestSpeedResetsWithoutClockAdvance(t *testing.T) {
	tool, canvas := newTestTool(t)

	tool.OnPress(canvas, PointerEvent{X: 0.1, Y: 0.5, Timestamp: 10})
	tool.OnDrag(canvas, PointerEvent{X: 0.3, Y: 0.5, Timestamp: 10.1})
	// Same timestamp as the previous event: speed is undefined, report 0
	// rather than carrying the previous reading forward.
	tool.OnDrag(canvas, PointerEvent{X: 0.3, Y: 0.6, Timestamp: 10.1})

	s := canvas.CurrentStroke()
	last := s.Points[s.Len()-1].Sensor
	if last.Speed != 0 {
		t.Errorf("speed with dt=0 = %g, want 0", last.Speed)
	}
	// Distance still accumulates.
	if math.Abs(last.Distance-0.3) > 1e-9 {
		t.Errorf("distance = %g, want 0.3", last.Distance)
	}
}

func TestMouseInputReportsFullPressure(t *testing.T) {
	tool, canvas := newTestTool(t)

	tool.OnPress(canvas, PointerEvent{X: 0.5, Y: 0.5, Timestamp: 1})
	s := canvas.CurrentStroke()
	if got := s.Points[0].Sensor.Pressure; got != 1 {
		t.Errorf("pressure without HasPressure = %g, want 1", got)
	}
}

func TestStampReachesCanvas(t *testing.T) {
	tool, canvas := newTestTool(t)

	tool.OnPress(canvas, PointerEvent{X: 0.5, Y: 0.5, Timestamp: 1})
	tool.OnRelease(canvas, PointerEvent{X: 0.5, Y: 0.5, Timestamp: 1.1})

	fc := tool.renderer.Canvases().Get(0)
	if fc == nil {
		t.Fatal("press did not create a frame canvas")
	}
	if !fc.Dirty {
		t.Error("stamped canvas should be dirty")
	}
}

func TestFrameSelection(t *testing.T) {
	tool, canvas := newTestTool(t)
	tool.SetFrame(7)

	tool.OnPress(canvas, PointerEvent{X: 0.5, Y: 0.5, Timestamp: 1})
	tool.OnRelease(canvas, PointerEvent{X: 0.6, Y: 0.5, Timestamp: 1.2})

	if !canvas.HasStrokes(7) {
		t.Error("stroke not recorded on frame 7")
	}
	if canvas.HasStrokes(0) {
		t.Error("stroke leaked to frame 0")
	}
}
