package inkwell

import (
	"github.com/google/uuid"

	"github.com/gogpu/inkwell/sensor"
)

// StrokePoint is a single sample in a brush stroke: a position in
// normalized stroke space plus the sensor readings captured (or
// interpolated) at that position.
type StrokePoint struct {
	X, Y   float64
	Sensor sensor.Reading
}

// BrushStroke is one recorded user gesture. Preset parameters are
// captured by value when the stroke opens, so later preset edits do not
// alter strokes already drawn. A stroke is append-only until finalized
// by Canvas.EndStroke and immutable after that.
type BrushStroke struct {
	ID uuid.UUID

	PresetName string
	Color      RGBA
	Texture    string
	Size       float64
	Opacity    float64
	Hardness   float64
	Flow       float64

	Frame     int
	StartTime float64 // Unix seconds
	EndTime   float64

	Points []StrokePoint
}

// NewStroke opens a stroke on the given frame, snapshotting the
// preset's stamp parameters.
func NewStroke(frame int, p *BrushPreset) *BrushStroke {
	return &BrushStroke{
		ID:         uuid.New(),
		PresetName: p.Name,
		Color:      p.Color,
		Texture:    p.Texture,
		Size:       p.Size,
		Opacity:    p.Opacity,
		Hardness:   p.Hardness,
		Flow:       p.Flow,
		Frame:      frame,
	}
}

// AddPoint appends a sample to the stroke.
func (s *BrushStroke) AddPoint(x, y float64, r sensor.Reading) {
	s.Points = append(s.Points, StrokePoint{X: x, Y: y, Sensor: r})
}

// Len returns the number of recorded points.
func (s *BrushStroke) Len() int { return len(s.Points) }

// Bounds returns the stroke's bounding box in normalized stroke space
// as (minX, minY, maxX, maxY). An empty stroke bounds to all zeros.
func (s *BrushStroke) Bounds() (minX, minY, maxX, maxY float64) {
	if len(s.Points) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = s.Points[0].X, s.Points[0].Y
	maxX, maxY = minX, minY
	for _, p := range s.Points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return minX, minY, maxX, maxY
}
