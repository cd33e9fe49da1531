// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/gogpu/inkwell"
	"github.com/gogpu/inkwell/sensor"
)

// paintRecordedStroke stamps a short stroke the way the live tool
// does, recording each point with its reading, and returns the ledger.
func paintRecordedStroke(t *testing.T, r *BrushRenderer, preset *inkwell.BrushPreset) *inkwell.Canvas {
	t.Helper()

	canvas := inkwell.NewCanvas()
	stroke := canvas.StartStroke(0, preset)

	points := []struct {
		x, y     float64
		pressure float64
	}{
		{0.3, 0.5, 0.4},
		{0.4, 0.5, 0.7},
		{0.5, 0.5, 1.0},
		{0.6, 0.5, 0.6},
	}

	width, _ := r.ImageSize()
	params := sensor.DefaultParams()
	r.BeginStroke()
	for _, p := range points {
		reading := sensor.Reading{Pressure: p.pressure}
		stroke.AddPoint(p.x, p.y, reading)

		size := sensor.Modulate(preset.Size, preset.SizeModulation, params, reading)
		opacity := sensor.Modulate(preset.Opacity, preset.OpacityModulation, params, reading)
		flow := sensor.Modulate(preset.Flow, preset.FlowModulation, params, reading)
		err := r.Stamp(0, preset.Texture, StampParams{
			X: p.x, Y: p.y,
			Size:     inkwell.ImageScalarToStroke(width, size),
			Color:    preset.Color,
			Opacity:  opacity * flow,
			Hardness: preset.Hardness,
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	r.EndStroke()
	canvas.EndStroke()
	return canvas
}

func TestReplayReproducesPixels(t *testing.T) {
	preset := inkwell.DefaultPreset()
	preset.Size = 30
	preset.Color = inkwell.RGB(0.2, 0.4, 0.9)

	// Live session.
	liveDev := NewSoftwareDevice(100, 100)
	defer liveDev.Close()
	live := NewBrushRenderer(liveDev, nil)
	defer live.Close()
	live.SetImageSize(128, 128)

	ledger := paintRecordedStroke(t, live, preset)

	data, err := inkwell.MarshalDocument(ledger)
	if err != nil {
		t.Fatalf("MarshalDocument: %v", err)
	}

	// Fresh session replaying the saved document.
	replayDev := NewSoftwareDevice(100, 100)
	defer replayDev.Close()
	replay := NewBrushRenderer(replayDev, nil)
	defer replay.Close()
	replay.SetImageSize(128, 128)

	restored, err := inkwell.UnmarshalDocument(data)
	if err != nil {
		t.Fatalf("UnmarshalDocument: %v", err)
	}
	resolve := func(string) *inkwell.BrushPreset { return preset }
	if err := Replay(replay, restored, resolve); err != nil {
		t.Fatalf("Replay: %v", err)
	}

	// Pixel-for-pixel equality between the live canvas and the replay.
	liveC := live.Canvases().Get(0)
	replayC := replay.Canvases().Get(0)
	if liveC == nil || replayC == nil {
		t.Fatal("missing frame canvas after replay")
	}
	livePix, _, _, _ := liveDev.CanvasPixels(liveC.ID)
	replayPix, _, _, _ := replayDev.CanvasPixels(replayC.ID)
	if len(livePix) != len(replayPix) {
		t.Fatalf("canvas sizes differ: %d vs %d", len(livePix), len(replayPix))
	}
	for i := range livePix {
		if livePix[i] != replayPix[i] {
			t.Fatalf("pixel %d differs: live %g, replay %g", i, livePix[i], replayPix[i])
		}
	}
}

func TestReplayUnknownPresetUsesDefaultModulation(t *testing.T) {
	dev := NewSoftwareDevice(50, 50)
	defer dev.Close()
	r := NewBrushRenderer(dev, nil)
	defer r.Close()
	r.SetImageSize(64, 64)

	canvas := inkwell.NewCanvas()
	p := inkwell.DefaultPreset()
	p.Name = "long-gone preset"
	s := canvas.StartStroke(0, p)
	s.AddPoint(0.5, 0.5, sensor.Reading{Pressure: 1})
	canvas.EndStroke()

	if err := Replay(r, canvas, nil); err != nil {
		t.Fatalf("Replay with nil resolver: %v", err)
	}
	c := r.Canvases().Get(0)
	if c == nil || !c.Dirty {
		t.Fatal("replay with default modulation did not paint")
	}
}

func TestEngineSaveLoadDocument(t *testing.T) {
	e := NewEngine(NewSoftwareDevice(100, 100))
	defer e.Close()
	e.Renderer().SetImageSize(64, 64)

	p := inkwell.DefaultPreset()
	s := e.Canvas().StartStroke(2, p)
	s.AddPoint(0.5, 0.5, sensor.Reading{Pressure: 0.8})
	e.Canvas().EndStroke()

	data, err := e.SaveDocument()
	if err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}

	e2 := NewEngine(NewSoftwareDevice(100, 100))
	defer e2.Close()
	e2.Renderer().SetImageSize(64, 64)
	if err := e2.LoadDocument(data, func(string) *inkwell.BrushPreset { return p }); err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}
	if !e2.Canvas().HasStrokes(2) {
		t.Error("loaded document lost the stroke ledger")
	}
	if e2.Renderer().Canvases().Get(2) == nil {
		t.Error("loaded document did not rebuild the frame canvas")
	}
}
