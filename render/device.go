// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"image"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/inkwell"
	"github.com/gogpu/inkwell/brushtex"
)

// DeviceHandle provides GPU device access from the host application.
// The host owns the device; this package receives it and never creates
// one on its own. Alias for gpucontext.DeviceProvider so any gogpu host
// plugs in directly.
type DeviceHandle = gpucontext.DeviceProvider

// Opaque resource handles. Zero is never a valid handle.
type (
	// CanvasID identifies a per-frame accumulation canvas.
	CanvasID uint64

	// TextureID identifies an uploaded brush tip mask.
	TextureID uint64

	// ProgramID identifies a compiled shader program.
	ProgramID uint64
)

// InvalidID is the zero handle for all resource types.
const InvalidID = 0

var (
	// ErrDeviceClosed is returned by operations on a closed device.
	ErrDeviceClosed = errors.New("render: device is closed")

	// ErrInvalidCanvas is returned when a canvas handle is unknown.
	ErrInvalidCanvas = errors.New("render: invalid canvas handle")

	// ErrInvalidTexture is returned when a mask handle is unknown.
	ErrInvalidTexture = errors.New("render: invalid texture handle")

	// ErrInvalidSize is returned for non-positive canvas dimensions.
	ErrInvalidSize = errors.New("render: canvas dimensions must be positive")

	// ErrShaderCompile is returned when program compilation fails. The
	// wrapped error carries the compiler diagnostics.
	ErrShaderCompile = errors.New("render: shader compilation failed")

	// ErrNoGeometry is returned when compositing without a valid
	// image-to-screen geometry.
	ErrNoGeometry = errors.New("render: degenerate image geometry")
)

// StampParams carries one brush dab. Position and size are in
// normalized stroke space; the device maps them to canvas pixels.
type StampParams struct {
	X, Y     float64
	Size     float64 // diameter as a fraction of canvas width
	Color    inkwell.RGBA
	Opacity  float64 // 0..1, flow already folded in
	Hardness float64 // 0..1, 0.5 leaves the mask falloff untouched
}

// Device is the rendering backend. Implementations are not safe for
// concurrent use; the tool and renderer run on the host's event thread.
type Device interface {
	// CreateCanvas allocates a transparent accumulation canvas.
	CreateCanvas(width, height int) (CanvasID, error)

	// ClearCanvas zeroes a canvas, keeping the allocation.
	ClearCanvas(id CanvasID) error

	// DestroyCanvas releases a canvas. Unknown handles are a no-op.
	DestroyCanvas(id CanvasID)

	// UploadMask uploads a brush tip mask and returns its handle.
	UploadMask(mask brushtex.Mask) (TextureID, error)

	// DestroyTexture releases a mask. Unknown handles are a no-op.
	DestroyTexture(id TextureID)

	// CompileProgram compiles a shader pair. Failure never corrupts
	// previously compiled programs.
	CompileProgram(vertexSrc, fragmentSrc, label string) (ProgramID, error)

	// DestroyProgram releases a program. Unknown handles are a no-op.
	DestroyProgram(id ProgramID)

	// Typed uniform setters. They report false, without failing, when
	// the named uniform does not exist in the program; shader variants
	// may have any declared uniform optimized out.
	SetUniformFloat(p ProgramID, name string, v float64) bool
	SetUniformInt(p ProgramID, name string, v int32) bool
	SetUniformVec4(p ProgramID, name string, v [4]float64) bool
	SetUniformMat4(p ProgramID, name string, v [16]float64) bool

	// Stamp alpha-blends one dab into a canvas.
	Stamp(canvas CanvasID, mask TextureID, s StampParams) error

	// Composite draws a canvas onto the screen as a quad whose corners
	// are screen positions of normalized (0,0),(1,0),(1,1),(0,1).
	Composite(canvas CanvasID, corners [4]inkwell.Point) error

	// ReadCanvas downloads a canvas as straight-alpha 8-bit RGBA.
	ReadCanvas(id CanvasID) (*image.NRGBA, error)

	// Close releases every live resource.
	Close()
}
