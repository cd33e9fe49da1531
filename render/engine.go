// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"log/slog"

	"github.com/gogpu/inkwell"
)

// Engine bundles a device, its renderer, and the stroke ledger into
// one per-session value. There is no package-level state; two engines
// never share resources.
type Engine struct {
	device   Device
	renderer *BrushRenderer
	canvas   *inkwell.Canvas
	log      *slog.Logger
}

// NewEngine creates an engine over the device.
func NewEngine(device Device) *Engine {
	log := inkwell.Logger()
	return &Engine{
		device:   device,
		renderer: NewBrushRenderer(device, log),
		canvas:   inkwell.NewCanvas(),
		log:      log,
	}
}

// Device returns the underlying rendering device.
func (e *Engine) Device() Device { return e.device }

// Renderer returns the brush renderer.
func (e *Engine) Renderer() *BrushRenderer { return e.renderer }

// Canvas returns the stroke ledger.
func (e *Engine) Canvas() *inkwell.Canvas { return e.canvas }

// LoadDocument replaces the stroke ledger with the document's strokes
// and replays them into the frame canvases.
func (e *Engine) LoadDocument(data []byte, resolve PresetResolver) error {
	canvas, err := inkwell.UnmarshalDocument(data)
	if err != nil {
		return err
	}
	e.canvas = canvas
	return Replay(e.renderer, canvas, resolve)
}

// SaveDocument serializes the stroke ledger.
func (e *Engine) SaveDocument() ([]byte, error) {
	return inkwell.MarshalDocument(e.canvas)
}

// Close releases every engine-owned resource and the device.
func (e *Engine) Close() {
	e.renderer.Close()
	e.device.Close()
}
