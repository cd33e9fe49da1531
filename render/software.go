// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/gogpu/inkwell"
	"github.com/gogpu/inkwell/brushtex"
)

// SoftwareDevice is the CPU rendering backend. It is the reference
// implementation of the stamp and composite semantics: the GPU backend
// is correct exactly when it matches this one.
//
// Canvases are float32 RGBA with straight alpha, matching the 16 bytes
// per pixel the GPU backend allocates.
type SoftwareDevice struct {
	screenW, screenH int
	screen           []float32

	canvases map[CanvasID]*softCanvas
	masks    map[TextureID]brushtex.Mask
	programs map[ProgramID]*softProgram

	nextID uint64
	closed bool
}

type softCanvas struct {
	w, h int
	pix  []float32 // RGBA, straight alpha
}

// softProgram records the uniform names declared in the source pair so
// setters can mirror the GPU contract: unknown names no-op.
type softProgram struct {
	label    string
	uniforms map[string]struct{}

	floats map[string]float64
	ints   map[string]int32
	vec4s  map[string][4]float64
	mat4s  map[string][16]float64
}

// NewSoftwareDevice creates a CPU device with the given screen size.
func NewSoftwareDevice(screenW, screenH int) *SoftwareDevice {
	if screenW < 1 {
		screenW = 1
	}
	if screenH < 1 {
		screenH = 1
	}
	return &SoftwareDevice{
		screenW:  screenW,
		screenH:  screenH,
		screen:   make([]float32, screenW*screenH*4),
		canvases: make(map[CanvasID]*softCanvas),
		masks:    make(map[TextureID]brushtex.Mask),
		programs: make(map[ProgramID]*softProgram),
	}
}

func (d *SoftwareDevice) newID() uint64 {
	d.nextID++
	return d.nextID
}

// CreateCanvas allocates a transparent canvas.
func (d *SoftwareDevice) CreateCanvas(width, height int) (CanvasID, error) {
	if d.closed {
		return InvalidID, ErrDeviceClosed
	}
	if width < 1 || height < 1 {
		return InvalidID, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	id := CanvasID(d.newID())
	d.canvases[id] = &softCanvas{w: width, h: height, pix: make([]float32, width*height*4)}
	return id, nil
}

// ClearCanvas zeroes a canvas in place.
func (d *SoftwareDevice) ClearCanvas(id CanvasID) error {
	c, ok := d.canvases[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidCanvas, id)
	}
	for i := range c.pix {
		c.pix[i] = 0
	}
	return nil
}

// DestroyCanvas releases a canvas.
func (d *SoftwareDevice) DestroyCanvas(id CanvasID) {
	delete(d.canvases, id)
}

// UploadMask registers a brush tip mask.
func (d *SoftwareDevice) UploadMask(mask brushtex.Mask) (TextureID, error) {
	if d.closed {
		return InvalidID, ErrDeviceClosed
	}
	id := TextureID(d.newID())
	d.masks[id] = mask
	return id, nil
}

// DestroyTexture releases a mask.
func (d *SoftwareDevice) DestroyTexture(id TextureID) {
	delete(d.masks, id)
}

// CompileProgram validates the source pair and records its uniform
// declarations. Empty source is a compile failure.
func (d *SoftwareDevice) CompileProgram(vertexSrc, fragmentSrc, label string) (ProgramID, error) {
	if d.closed {
		return InvalidID, ErrDeviceClosed
	}
	if strings.TrimSpace(vertexSrc) == "" {
		return InvalidID, fmt.Errorf("%w: %s: empty vertex source", ErrShaderCompile, label)
	}
	if strings.TrimSpace(fragmentSrc) == "" {
		return InvalidID, fmt.Errorf("%w: %s: empty fragment source", ErrShaderCompile, label)
	}

	p := &softProgram{
		label:    label,
		uniforms: make(map[string]struct{}),
		floats:   make(map[string]float64),
		ints:     make(map[string]int32),
		vec4s:    make(map[string][4]float64),
		mat4s:    make(map[string][16]float64),
	}
	scanUniforms(vertexSrc, p.uniforms)
	scanUniforms(fragmentSrc, p.uniforms)

	id := ProgramID(d.newID())
	d.programs[id] = p
	return id, nil
}

// scanUniforms collects declared uniform names from GLSL-style source:
// "uniform <type> <name>;".
func scanUniforms(src string, out map[string]struct{}) {
	for _, line := range strings.Split(src, "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) < 3 || fields[0] != "uniform" {
			continue
		}
		name := strings.TrimSuffix(fields[2], ";")
		if i := strings.IndexByte(name, '['); i >= 0 {
			name = name[:i]
		}
		if name != "" {
			out[name] = struct{}{}
		}
	}
}

// DestroyProgram releases a program.
func (d *SoftwareDevice) DestroyProgram(id ProgramID) {
	delete(d.programs, id)
}

func (d *SoftwareDevice) program(id ProgramID, name string) (*softProgram, bool) {
	p, ok := d.programs[id]
	if !ok {
		return nil, false
	}
	_, declared := p.uniforms[name]
	return p, declared
}

// SetUniformFloat sets a float uniform, reporting false for unknown names.
func (d *SoftwareDevice) SetUniformFloat(id ProgramID, name string, v float64) bool {
	p, ok := d.program(id, name)
	if !ok {
		return false
	}
	p.floats[name] = v
	return true
}

// SetUniformInt sets an int uniform, reporting false for unknown names.
func (d *SoftwareDevice) SetUniformInt(id ProgramID, name string, v int32) bool {
	p, ok := d.program(id, name)
	if !ok {
		return false
	}
	p.ints[name] = v
	return true
}

// SetUniformVec4 sets a vec4 uniform, reporting false for unknown names.
func (d *SoftwareDevice) SetUniformVec4(id ProgramID, name string, v [4]float64) bool {
	p, ok := d.program(id, name)
	if !ok {
		return false
	}
	p.vec4s[name] = v
	return true
}

// SetUniformMat4 sets a mat4 uniform, reporting false for unknown names.
func (d *SoftwareDevice) SetUniformMat4(id ProgramID, name string, v [16]float64) bool {
	p, ok := d.program(id, name)
	if !ok {
		return false
	}
	p.mat4s[name] = v
	return true
}

// hardnessGamma maps hardness to the exponent applied to the mask
// alpha. 0.5 is neutral; 1 sharpens the falloff, 0 softens it.
func hardnessGamma(hardness float64) float64 {
	return math.Pow(4, 1-2*clamp01(hardness))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Stamp alpha-blends one dab into the canvas with source-over blending,
// the same arithmetic as GL_SRC_ALPHA / GL_ONE_MINUS_SRC_ALPHA.
func (d *SoftwareDevice) Stamp(canvas CanvasID, mask TextureID, s StampParams) error {
	c, ok := d.canvases[canvas]
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidCanvas, canvas)
	}
	m, ok := d.masks[mask]
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidTexture, mask)
	}
	if s.Size <= 0 || s.Opacity <= 0 {
		return nil
	}

	// Brush size is normalized against canvas width on both axes so a
	// round tip stays round.
	radius := s.Size * float64(c.w) / 2
	cx := s.X * float64(c.w)
	cy := s.Y * float64(c.h)

	x0 := int(math.Floor(cx - radius))
	x1 := int(math.Ceil(cx + radius))
	y0 := int(math.Floor(cy - radius))
	y1 := int(math.Ceil(cy + radius))
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > c.w-1 {
		x1 = c.w - 1
	}
	if y1 > c.h-1 {
		y1 = c.h - 1
	}

	gamma := hardnessGamma(s.Hardness)
	opacity := clamp01(s.Opacity)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			// Map the pixel into the mask's unit square.
			u := (float64(x)+0.5-cx)/(2*radius) + 0.5
			v := (float64(y)+0.5-cy)/(2*radius) + 0.5
			if u < 0 || u > 1 || v < 0 || v > 1 {
				continue
			}
			a := float64(m.Sample(u, v))
			if a <= 0 {
				continue
			}
			a = math.Pow(a, gamma) * opacity
			blend(c.pix[(y*c.w+x)*4:], s.Color, a)
		}
	}
	return nil
}

// blend applies source-over onto a straight-alpha float pixel.
func blend(dst []float32, col inkwell.RGBA, a float64) {
	fa := float32(a)
	inv := 1 - fa
	dst[0] = float32(col.R)*fa + dst[0]*inv
	dst[1] = float32(col.G)*fa + dst[1]*inv
	dst[2] = float32(col.B)*fa + dst[2]*inv
	dst[3] = fa + dst[3]*inv
}

// Composite draws the canvas onto the screen quad. Corners are the
// screen positions of normalized (0,0),(1,0),(1,1),(0,1).
func (d *SoftwareDevice) Composite(canvas CanvasID, corners [4]inkwell.Point) error {
	c, ok := d.canvases[canvas]
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidCanvas, canvas)
	}
	geom := inkwell.Geometry{BL: corners[0], BR: corners[1], TR: corners[2], TL: corners[3]}
	if !geom.Valid() {
		return ErrNoGeometry
	}

	// Scan the quad's screen bounding box and invert each pixel back
	// into stroke space.
	lox, loy := corners[0].X, corners[0].Y
	hix, hiy := corners[0].X, corners[0].Y
	for _, p := range corners[1:] {
		lox = math.Min(lox, p.X)
		loy = math.Min(loy, p.Y)
		hix = math.Max(hix, p.X)
		hiy = math.Max(hiy, p.Y)
	}

	x0 := int(math.Max(0, math.Floor(lox)))
	y0 := int(math.Max(0, math.Floor(loy)))
	x1 := int(math.Min(float64(d.screenW-1), math.Ceil(hix)))
	y1 := int(math.Min(float64(d.screenH-1), math.Ceil(hiy)))

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			st := geom.ScreenToStroke(inkwell.Pt(float64(x)+0.5, float64(y)+0.5))
			if st.X < 0 || st.X > 1 || st.Y < 0 || st.Y > 1 {
				continue
			}
			r, g, b, a := c.sample(st.X, st.Y)
			if a <= 0 {
				continue
			}
			blend(d.screen[(y*d.screenW+x)*4:], inkwell.RGBA{R: r, G: g, B: b}, a)
		}
	}
	return nil
}

// sample bilinearly interpolates the canvas at normalized (u,v).
func (c *softCanvas) sample(u, v float64) (r, g, b, a float64) {
	fx := u*float64(c.w) - 0.5
	fy := v*float64(c.h) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	get := func(x, y int) (float64, float64, float64, float64) {
		if x < 0 {
			x = 0
		} else if x >= c.w {
			x = c.w - 1
		}
		if y < 0 {
			y = 0
		} else if y >= c.h {
			y = c.h - 1
		}
		i := (y*c.w + x) * 4
		return float64(c.pix[i]), float64(c.pix[i+1]), float64(c.pix[i+2]), float64(c.pix[i+3])
	}

	lerp2 := func(a, b, t float64) float64 { return a + (b-a)*t }

	r00, g00, b00, a00 := get(x0, y0)
	r10, g10, b10, a10 := get(x0+1, y0)
	r01, g01, b01, a01 := get(x0, y0+1)
	r11, g11, b11, a11 := get(x0+1, y0+1)

	r = lerp2(lerp2(r00, r10, tx), lerp2(r01, r11, tx), ty)
	g = lerp2(lerp2(g00, g10, tx), lerp2(g01, g11, tx), ty)
	b = lerp2(lerp2(b00, b10, tx), lerp2(b01, b11, tx), ty)
	a = lerp2(lerp2(a00, a10, tx), lerp2(a01, a11, tx), ty)
	return r, g, b, a
}

// ReadCanvas converts a canvas to straight-alpha 8-bit RGBA.
func (d *SoftwareDevice) ReadCanvas(id CanvasID) (*image.NRGBA, error) {
	c, ok := d.canvases[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCanvas, id)
	}
	return floatToNRGBA(c.pix, c.w, c.h), nil
}

// ReadScreen returns the composited screen framebuffer.
func (d *SoftwareDevice) ReadScreen() *image.NRGBA {
	return floatToNRGBA(d.screen, d.screenW, d.screenH)
}

// ClearScreen zeroes the screen framebuffer.
func (d *SoftwareDevice) ClearScreen() {
	for i := range d.screen {
		d.screen[i] = 0
	}
}

// CanvasPixels returns the raw float buffer of a canvas, for tests that
// compare pixel-exact replay output.
func (d *SoftwareDevice) CanvasPixels(id CanvasID) ([]float32, int, int, error) {
	c, ok := d.canvases[id]
	if !ok {
		return nil, 0, 0, fmt.Errorf("%w: %d", ErrInvalidCanvas, id)
	}
	return c.pix, c.w, c.h, nil
}

func floatToNRGBA(pix []float32, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		img.Pix[i*4+0] = to8(pix[i*4+0])
		img.Pix[i*4+1] = to8(pix[i*4+1])
		img.Pix[i*4+2] = to8(pix[i*4+2])
		img.Pix[i*4+3] = to8(pix[i*4+3])
	}
	return img
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Close releases every live resource.
func (d *SoftwareDevice) Close() {
	d.canvases = make(map[CanvasID]*softCanvas)
	d.masks = make(map[TextureID]brushtex.Mask)
	d.programs = make(map[ProgramID]*softProgram)
	d.closed = true
}
