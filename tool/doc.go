// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package tool implements the interactive brush controller.
//
// RasterBrushTool turns a host's press/drag/release pointer events into
// recorded stroke points and renderer stamps. It owns the stroke state
// machine (Idle or Drawing), derives speed and accumulated distance
// from consecutive samples, and interpolates the path so stamps land at
// a spacing proportional to the brush diameter regardless of how
// coarsely the host delivers events.
package tool
