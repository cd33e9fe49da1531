// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"container/list"
	"log/slog"
)

// MaxCachedFrames is the default resident canvas limit.
const MaxCachedFrames = 50

// bytesPerPixel is the canvas storage cost: 4 float32 channels.
const bytesPerPixel = 16

// FrameCanvas is one frame's accumulation canvas.
type FrameCanvas struct {
	Frame  int
	ID     CanvasID
	Width  int
	Height int

	// Dirty is set by stamping and cleared only by ClearCanvas. The
	// composite pass skips clean canvases.
	Dirty bool

	elem *list.Element
}

// FrameCanvasCache keeps per-frame canvases under a strict LRU limit.
// A resolution change invalidates the whole cache: accumulated pixels
// cannot be resampled, only replayed.
type FrameCanvasCache struct {
	device   Device
	maxSize  int
	width    int
	height   int
	canvases map[int]*FrameCanvas
	lru      *list.List // front = most recently used, values are frame numbers
	log      *slog.Logger
}

// NewFrameCanvasCache creates a cache holding at most maxSize canvases.
// maxSize < 1 falls back to MaxCachedFrames.
func NewFrameCanvasCache(device Device, maxSize int, log *slog.Logger) *FrameCanvasCache {
	if maxSize < 1 {
		maxSize = MaxCachedFrames
	}
	if log == nil {
		log = slog.Default()
	}
	return &FrameCanvasCache{
		device:   device,
		maxSize:  maxSize,
		canvases: make(map[int]*FrameCanvas),
		lru:      list.New(),
		log:      log,
	}
}

// GetOrCreate returns the canvas for a frame, allocating a transparent
// one if absent. A (width,height) different from the cache's current
// resolution destroys every cached canvas first.
func (fc *FrameCanvasCache) GetOrCreate(frame, width, height int) (*FrameCanvas, error) {
	if width != fc.width || height != fc.height {
		if len(fc.canvases) > 0 {
			fc.log.Info("canvas resolution changed, invalidating cache",
				"old_width", fc.width, "old_height", fc.height,
				"width", width, "height", height,
				"evicted", len(fc.canvases))
		}
		fc.DestroyAll()
		fc.width = width
		fc.height = height
	}

	if c, ok := fc.canvases[frame]; ok {
		fc.lru.MoveToFront(c.elem)
		return c, nil
	}

	id, err := fc.device.CreateCanvas(width, height)
	if err != nil {
		return nil, err
	}
	c := &FrameCanvas{Frame: frame, ID: id, Width: width, Height: height}
	c.elem = fc.lru.PushFront(frame)
	fc.canvases[frame] = c

	if len(fc.canvases) > fc.maxSize {
		fc.evictOldest()
	}
	return c, nil
}

// Get returns the canvas for a frame without allocating, or nil.
// Viewing an unpainted frame must never cost GPU memory.
func (fc *FrameCanvasCache) Get(frame int) *FrameCanvas {
	c, ok := fc.canvases[frame]
	if !ok {
		return nil
	}
	fc.lru.MoveToFront(c.elem)
	return c
}

// Clear zeroes a frame's canvas contents, keeping the allocation.
// Absent frames are a no-op.
func (fc *FrameCanvasCache) Clear(frame int) error {
	c, ok := fc.canvases[frame]
	if !ok {
		return nil
	}
	if err := fc.device.ClearCanvas(c.ID); err != nil {
		return err
	}
	c.Dirty = false
	return nil
}

// evictOldest drops the least-recently-used canvas and releases its
// GPU resources.
func (fc *FrameCanvasCache) evictOldest() {
	back := fc.lru.Back()
	if back == nil {
		return
	}
	frame := back.Value.(int)
	c := fc.canvases[frame]
	fc.lru.Remove(back)
	delete(fc.canvases, frame)
	fc.device.DestroyCanvas(c.ID)
	fc.log.Debug("evicted frame canvas", "frame", frame, "resident", len(fc.canvases))
}

// DestroyAll releases every canvas.
func (fc *FrameCanvasCache) DestroyAll() {
	for frame, c := range fc.canvases {
		fc.device.DestroyCanvas(c.ID)
		delete(fc.canvases, frame)
	}
	fc.lru.Init()
}

// Len returns the number of resident canvases.
func (fc *FrameCanvasCache) Len() int {
	return len(fc.canvases)
}

// MemoryUsage returns the resident canvas footprint in bytes.
func (fc *FrameCanvasCache) MemoryUsage() uint64 {
	return uint64(len(fc.canvases)) * uint64(fc.width) * uint64(fc.height) * bytesPerPixel
}

// Resolution returns the cache's current canvas size.
func (fc *FrameCanvasCache) Resolution() (width, height int) {
	return fc.width, fc.height
}
