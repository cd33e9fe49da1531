package inkwell

import "sort"

// Canvas is the stroke ledger: every finalized BrushStroke keyed by the
// frame it was painted on. Pixel data lives in the renderer's per-frame
// canvas cache; this ledger is what gets persisted and what a full
// replay rebuilds pixels from.
type Canvas struct {
	strokesByFrame map[int][]*BrushStroke
	current        *BrushStroke
}

// NewCanvas returns an empty stroke ledger.
func NewCanvas() *Canvas {
	return &Canvas{strokesByFrame: make(map[int][]*BrushStroke)}
}

// StartStroke opens a new stroke on the given frame, snapshotting the
// preset's parameters. Any stroke already in progress is replaced.
func (c *Canvas) StartStroke(frame int, p *BrushPreset) *BrushStroke {
	c.current = NewStroke(frame, p)
	return c.current
}

// CurrentStroke returns the in-progress stroke, or nil.
func (c *Canvas) CurrentStroke() *BrushStroke { return c.current }

// EndStroke finalizes the in-progress stroke and commits it to its
// frame. A stroke with zero points is discarded rather than stored.
func (c *Canvas) EndStroke() {
	s := c.current
	c.current = nil
	if s == nil || len(s.Points) == 0 {
		return
	}
	c.strokesByFrame[s.Frame] = append(c.strokesByFrame[s.Frame], s)
}

// Strokes returns the finalized strokes for a frame in paint order.
// The returned slice is owned by the canvas; callers must not mutate it.
func (c *Canvas) Strokes(frame int) []*BrushStroke {
	return c.strokesByFrame[frame]
}

// HasStrokes reports whether the frame has any finalized strokes.
func (c *Canvas) HasStrokes(frame int) bool {
	return len(c.strokesByFrame[frame]) > 0
}

// ClearFrame removes all finalized strokes from a frame.
func (c *Canvas) ClearFrame(frame int) {
	delete(c.strokesByFrame, frame)
}

// ClearAll removes every stroke on every frame and drops any stroke in
// progress.
func (c *Canvas) ClearAll() {
	c.strokesByFrame = make(map[int][]*BrushStroke)
	c.current = nil
}

// Frames returns the sorted frame numbers that have at least one
// finalized stroke.
func (c *Canvas) Frames() []int {
	frames := make([]int, 0, len(c.strokesByFrame))
	for f := range c.strokesByFrame {
		frames = append(frames, f)
	}
	sort.Ints(frames)
	return frames
}
