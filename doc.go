// Package inkwell provides a pressure/tilt-aware raster annotation engine
// for frame-based media viewers.
//
// # Overview
//
// inkwell lets a host application paint stylus or mouse strokes over a
// displayed image. Strokes accumulate into per-frame canvases that composite
// over the viewer's pan/zoom/rotate transform without re-rasterizing existing
// paint. The engine is built for the GoGPU ecosystem and ships with both a
// software device (pure Go, used by tests and headless replay) and a
// wgpu/HAL-backed device.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/inkwell"
//	    "github.com/gogpu/inkwell/render"
//	    "github.com/gogpu/inkwell/tool"
//	)
//
//	engine := render.NewEngine(render.NewSoftwareDevice(1920, 1080))
//	defer engine.Close()
//	engine.Renderer().SetImageSize(1000, 750)
//	engine.Renderer().SetGeometry(inkwell.GeometryFromRect(0, 0, 1920, 1080))
//
//	brush := tool.NewRasterBrushTool(engine.Renderer(), nil)
//	brush.SetPreset(inkwell.DefaultPreset())
//
//	canvas := engine.Canvas()
//	brush.OnPress(canvas, tool.PointerEvent{X: 0.5, Y: 0.5, Pressure: 0.8, HasPressure: true})
//	brush.OnDrag(canvas, tool.PointerEvent{X: 0.6, Y: 0.5, Pressure: 0.9, HasPressure: true})
//	brush.OnRelease(canvas, tool.PointerEvent{X: 0.6, Y: 0.5})
//
//	engine.Renderer().RenderFrame(0)
//
// # Architecture
//
// The library is organized into:
//   - Root: data model (presets, strokes, canvases), coordinate transform,
//     stroke document schema
//   - sensor: stylus/motion sensors and response curves
//   - brushtex: procedural brush-tip masks with deterministic generation
//   - render: device abstraction, per-frame canvas cache, shader cache,
//     brush renderer
//   - tool: interactive stroke state machine
//
// # Coordinate Spaces
//
// Three spaces are used throughout:
//   - image: absolute pixels of the source media
//   - stroke: normalized 0..1, resolution independent, stable across zoom
//   - screen: current viewport pixels, reflects live pan/zoom/rotate
//
// See [Geometry] for the conversions between them.
package inkwell

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
