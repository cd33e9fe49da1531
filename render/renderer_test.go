// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/gogpu/inkwell"
)

func testRenderer(t *testing.T) (*BrushRenderer, *SoftwareDevice) {
	t.Helper()
	d := NewSoftwareDevice(400, 400)
	r := NewBrushRenderer(d, nil)
	r.SetImageSize(200, 200)
	r.SetGeometry(inkwell.GeometryFromRect(100, 100, 200, 200))
	t.Cleanup(func() {
		r.Close()
		d.Close()
	})
	return r, d
}

func stamp(t *testing.T, r *BrushRenderer, frame int, x, y float64) {
	t.Helper()
	err := r.Stamp(frame, "soft_circle", StampParams{
		X: x, Y: y, Size: 0.2,
		Color: inkwell.RGB(1, 0, 0), Opacity: 1, Hardness: 0.5,
	})
	if err != nil {
		t.Fatalf("Stamp: %v", err)
	}
}

func TestRendererStampMarksDirty(t *testing.T) {
	r, _ := testRenderer(t)

	stamp(t, r, 5, 0.5, 0.5)

	c := r.Canvases().Get(5)
	if c == nil {
		t.Fatal("stamping did not allocate a frame canvas")
	}
	if !c.Dirty {
		t.Error("stamping did not mark the canvas dirty")
	}
	if w, h := c.Width, c.Height; w != 200 || h != 200 {
		t.Errorf("canvas size = %dx%d; want image resolution 200x200", w, h)
	}
}

func TestRendererStampWithoutImage(t *testing.T) {
	d := NewSoftwareDevice(100, 100)
	defer d.Close()
	r := NewBrushRenderer(d, nil)
	defer r.Close()

	// No image displayed: stamping is a silent no-op.
	if err := r.Stamp(0, "soft_circle", StampParams{X: 0.5, Y: 0.5, Size: 0.2, Opacity: 1}); err != nil {
		t.Fatalf("Stamp without image = %v; want nil", err)
	}
	if r.Canvases().Len() != 0 {
		t.Error("stamping without an image allocated a canvas")
	}
}

func TestRendererUnknownShapeFallsBack(t *testing.T) {
	r, d := testRenderer(t)

	err := r.Stamp(0, "mystery_brush", StampParams{
		X: 0.5, Y: 0.5, Size: 0.3,
		Color: inkwell.RGB(0, 0, 1), Opacity: 1, Hardness: 0.5,
	})
	if err != nil {
		t.Fatalf("Stamp with unknown shape = %v; want fallback, not error", err)
	}
	c := r.Canvases().Get(0)
	if c == nil {
		t.Fatal("fallback stamp did not land")
	}
	pix, w, _, err := d.CanvasPixels(c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if pix[(100*w+100)*4+3] <= 0 {
		t.Error("fallback stamp left the canvas empty")
	}
}

func TestRendererCloseReleasesMaskTextures(t *testing.T) {
	d := NewSoftwareDevice(100, 100)
	defer d.Close()
	r := NewBrushRenderer(d, nil)
	r.SetImageSize(50, 50)

	for _, shape := range []string{"soft_circle", "splatter"} {
		err := r.Stamp(0, shape, StampParams{
			X: 0.5, Y: 0.5, Size: 0.2,
			Color: inkwell.RGB(1, 1, 1), Opacity: 1, Hardness: 0.5,
		})
		if err != nil {
			t.Fatalf("Stamp(%s): %v", shape, err)
		}
	}
	if len(d.masks) != 2 {
		t.Fatalf("device holds %d mask textures; want 2", len(d.masks))
	}

	r.Close()
	if len(d.masks) != 0 {
		t.Errorf("Close left %d mask textures on the device; want 0", len(d.masks))
	}
}

func TestRendererRenderFrameNoOp(t *testing.T) {
	r, d := testRenderer(t)

	// Unpainted frame: no composite, no allocation.
	if err := r.RenderFrame(3); err != nil {
		t.Fatalf("RenderFrame(unpainted) = %v", err)
	}
	if r.Canvases().Len() != 0 {
		t.Error("RenderFrame allocated a canvas for an unpainted frame")
	}

	// Painted then cleared: canvas exists but is clean, still a no-op.
	stamp(t, r, 3, 0.5, 0.5)
	if err := r.ClearFrame(3); err != nil {
		t.Fatal(err)
	}
	if err := r.RenderFrame(3); err != nil {
		t.Fatalf("RenderFrame(clean) = %v", err)
	}
	screen := d.ReadScreen()
	for _, p := range screen.Pix {
		if p != 0 {
			t.Fatal("clean canvas composited pixels to the screen")
		}
	}
}

func TestRendererRenderFrame(t *testing.T) {
	r, d := testRenderer(t)

	stamp(t, r, 1, 0.5, 0.5)
	if err := r.RenderFrame(1); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	// Canvas center maps to screen (200,200) under the 100..300 quad.
	screen := d.ReadScreen()
	center := screen.NRGBAAt(200, 200)
	if center.R < 200 || center.A < 200 {
		t.Errorf("screen center = %v; want opaque red", center)
	}
}

func TestRendererRenderFrameNoGeometry(t *testing.T) {
	r, d := testRenderer(t)

	stamp(t, r, 1, 0.5, 0.5)
	r.SetGeometry(inkwell.Geometry{}) // no image displayed

	if err := r.RenderFrame(1); err != nil {
		t.Fatalf("RenderFrame with degenerate geometry = %v; want silent no-op", err)
	}
	screen := d.ReadScreen()
	for _, p := range screen.Pix {
		if p != 0 {
			t.Fatal("degenerate geometry still composited")
		}
	}
}

func TestRendererClearFrame(t *testing.T) {
	r, d := testRenderer(t)

	stamp(t, r, 2, 0.5, 0.5)
	if err := r.ClearFrame(2); err != nil {
		t.Fatalf("ClearFrame: %v", err)
	}

	c := r.Canvases().Get(2)
	if c == nil {
		t.Fatal("ClearFrame must keep the allocation")
	}
	pix, _, _, _ := d.CanvasPixels(c.ID)
	for _, v := range pix {
		if v != 0 {
			t.Fatal("ClearFrame left pixels behind")
		}
	}
}

func TestEngineOwnsState(t *testing.T) {
	a := NewEngine(NewSoftwareDevice(100, 100))
	b := NewEngine(NewSoftwareDevice(100, 100))
	defer a.Close()
	defer b.Close()

	a.Renderer().SetImageSize(50, 50)
	if err := a.Renderer().Stamp(0, "soft_circle", StampParams{
		X: 0.5, Y: 0.5, Size: 0.2, Color: inkwell.RGB(1, 1, 1), Opacity: 1, Hardness: 0.5,
	}); err != nil {
		t.Fatal(err)
	}

	if b.Renderer().Canvases().Len() != 0 {
		t.Error("engines share canvas state")
	}
}
