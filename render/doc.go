// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render stamps brush strokes into per-frame canvases and
// composites them onto the screen.
//
// # Architecture
//
// The Device interface abstracts the GPU. SoftwareDevice is the
// complete CPU reference implementation and the arbiter of stamp
// semantics; NativeDevice runs on gogpu/wgpu and must match it.
// Resources are opaque uint64 handles, 0 is always invalid.
//
// On top of the device sit three layers:
//
//   - FrameCanvasCache: per-frame accumulation canvases with LRU
//     eviction and whole-cache invalidation on resolution change.
//   - ShaderCache: programs compiled once per name, with typed uniform
//     setters that silently skip optimized-out uniforms.
//   - BrushRenderer: stamping, per-frame compositing under the current
//     image-to-screen geometry, and stroke bracketing.
//
// Engine bundles a device with the caches and the stroke ledger, so a
// tool session needs exactly one value and no package-level state.
package render
