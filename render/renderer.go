// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	_ "embed"
	"log/slog"

	"github.com/gogpu/inkwell"
	"github.com/gogpu/inkwell/brushtex"
	"github.com/gogpu/inkwell/internal/cache"
)

//go:embed shaders/brush.vert
var brushVertSrc string

//go:embed shaders/brush.frag
var brushFragSrc string

//go:embed shaders/composite.vert
var compositeVertSrc string

//go:embed shaders/composite.frag
var compositeFragSrc string

// BrushRenderer stamps dabs into per-frame canvases and composites
// them onto the screen under the current image-to-screen geometry.
// One renderer owns one FrameCanvasCache per tool session.
type BrushRenderer struct {
	device  Device
	canvas  *FrameCanvasCache
	shaders *ShaderCache
	masks   *brushtex.Cache
	log     *slog.Logger

	// Mask handles by shape, uploaded on first use. Eviction and
	// Clear release the device texture through the cache hook.
	maskTex *cache.Cache[brushtex.Shape, TextureID]

	brushProg     *Program
	compositeProg *Program

	geom      inkwell.Geometry
	geomValid bool
	imageW    int
	imageH    int

	strokeActive bool
}

// NewBrushRenderer creates a renderer over the device with default
// cache limits.
func NewBrushRenderer(device Device, log *slog.Logger) *BrushRenderer {
	if log == nil {
		log = slog.Default()
	}
	r := &BrushRenderer{
		device:  device,
		canvas:  NewFrameCanvasCache(device, MaxCachedFrames, log),
		shaders: NewShaderCache(device, log),
		masks:   brushtex.NewCache(log),
		maskTex: cache.New[brushtex.Shape, TextureID](0),
		log:     log,
	}
	r.maskTex.OnEvict(func(id TextureID) {
		r.device.DestroyTexture(id)
	})
	return r
}

// SetGeometry installs the image's current on-screen quad, refreshed
// once per host render pass.
func (r *BrushRenderer) SetGeometry(g inkwell.Geometry) {
	r.geom = g
	r.geomValid = g.Valid()
}

// SetImageSize installs the source image pixel dimensions. Canvases
// allocate at this resolution.
func (r *BrushRenderer) SetImageSize(width, height int) {
	r.imageW = width
	r.imageH = height
}

// ImageSize returns the current source image dimensions.
func (r *BrushRenderer) ImageSize() (width, height int) {
	return r.imageW, r.imageH
}

// Canvases exposes the frame canvas cache for diagnostics.
func (r *BrushRenderer) Canvases() *FrameCanvasCache { return r.canvas }

// Shaders exposes the shader cache.
func (r *BrushRenderer) Shaders() *ShaderCache { return r.shaders }

// ensurePrograms compiles the brush and composite programs on first
// stamp. Registration happens only after the device accepts them.
func (r *BrushRenderer) ensurePrograms() error {
	if r.brushProg == nil {
		p, err := r.shaders.Compile(brushVertSrc, brushFragSrc, "brush")
		if err != nil {
			return err
		}
		r.brushProg = p
	}
	if r.compositeProg == nil {
		p, err := r.shaders.Compile(compositeVertSrc, compositeFragSrc, "composite")
		if err != nil {
			return err
		}
		r.compositeProg = p
	}
	return nil
}

// maskTexture returns the device handle for a shape's mask, uploading
// it on first use. Unknown names fall back to the default shape.
func (r *BrushRenderer) maskTexture(texture string) (TextureID, error) {
	shape, ok := brushtex.ParseShape(texture)
	if !ok {
		r.log.Warn("unknown brush shape, using default",
			"shape", texture, "fallback", brushtex.DefaultShape.String())
	}
	if id, ok := r.maskTex.Get(shape); ok {
		return id, nil
	}
	id, err := r.device.UploadMask(r.masks.Get(shape))
	if err != nil {
		return InvalidID, err
	}
	r.maskTex.Set(shape, id)
	return id, nil
}

// BeginStroke brackets the start of a user gesture.
func (r *BrushRenderer) BeginStroke() { r.strokeActive = true }

// EndStroke brackets the end of a user gesture.
func (r *BrushRenderer) EndStroke() { r.strokeActive = false }

// Stamp blends one dab into the frame's canvas. Position and size are
// in normalized stroke space; the frame canvas allocates lazily at the
// current image resolution.
func (r *BrushRenderer) Stamp(frame int, texture string, s StampParams) error {
	if r.imageW < 1 || r.imageH < 1 {
		// No image displayed; stamping has nowhere to land.
		return nil
	}
	if err := r.ensurePrograms(); err != nil {
		return err
	}
	mask, err := r.maskTexture(texture)
	if err != nil {
		return err
	}
	c, err := r.canvas.GetOrCreate(frame, r.imageW, r.imageH)
	if err != nil {
		return err
	}

	r.brushProg.SetVec4("u_color", s.Color.Array())
	r.brushProg.SetFloat("u_opacity", s.Opacity)
	r.brushProg.SetFloat("u_hardness", s.Hardness)

	if err := r.device.Stamp(c.ID, mask, s); err != nil {
		return err
	}
	c.Dirty = true
	return nil
}

// RenderFrame composites the frame's canvas onto the screen. No-op
// when the frame has no canvas, the canvas holds nothing, or there is
// no valid geometry; viewing an unpainted frame never allocates.
func (r *BrushRenderer) RenderFrame(frame int) error {
	c := r.canvas.Get(frame)
	if c == nil || !c.Dirty {
		return nil
	}
	if !r.geomValid {
		return nil
	}
	if err := r.ensurePrograms(); err != nil {
		return err
	}
	r.compositeProg.SetFloat("u_opacity", 1.0)
	return r.device.Composite(c.ID, r.geom.Corners())
}

// ClearFrame zeroes the frame's canvas, keeping the allocation.
func (r *BrushRenderer) ClearFrame(frame int) error {
	return r.canvas.Clear(frame)
}

// Close releases all renderer-owned GPU resources.
func (r *BrushRenderer) Close() {
	r.canvas.DestroyAll()
	r.shaders.Clear()
	r.maskTex.Clear()
	r.brushProg = nil
	r.compositeProg = nil
}
