package inkwell

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/gogpu/inkwell/sensor"
)

// DocumentVersion is the stroke document schema version this package
// reads and writes.
const DocumentVersion = "1.0"

// Document is the persisted stroke file: schema version plus every
// finalized stroke, keyed by frame. Replaying a document's points
// through the renderer with the stored per-stroke parameters rebuilds
// the canvas pixels that existed before the save.
type Document struct {
	Version string                   `json:"version"`
	Frames  map[string][]StrokeRecord `json:"frames"`
}

// StrokeRecord is the wire form of one BrushStroke.
type StrokeRecord struct {
	ID         string        `json:"id,omitempty"`
	PresetName string        `json:"preset_name"`
	Color      [4]float64    `json:"color"`
	Texture    string        `json:"texture_type"`
	Size       float64       `json:"size"`
	Opacity    float64       `json:"opacity"`
	Hardness   float64       `json:"hardness"`
	Flow       float64       `json:"flow"`
	StartTime  float64       `json:"start_time"`
	EndTime    float64       `json:"end_time"`
	Points     []PointRecord `json:"points"`
}

// PointRecord is the wire form of one StrokePoint.
type PointRecord struct {
	X      float64      `json:"x"`
	Y      float64      `json:"y"`
	Sensor SensorRecord `json:"sensor"`
}

// SensorRecord is the wire form of a sensor.Reading.
type SensorRecord struct {
	Pressure  float64 `json:"pressure"`
	TiltX     float64 `json:"tilt_x"`
	TiltY     float64 `json:"tilt_y"`
	Rotation  float64 `json:"rotation"`
	Speed     float64 `json:"speed"`
	Distance  float64 `json:"distance"`
	Time      float64 `json:"time"`
	Timestamp float64 `json:"timestamp"`
}

func sensorRecord(r sensor.Reading) SensorRecord {
	return SensorRecord{
		Pressure:  r.Pressure,
		TiltX:     r.TiltX,
		TiltY:     r.TiltY,
		Rotation:  r.Rotation,
		Speed:     r.Speed,
		Distance:  r.Distance,
		Time:      r.Time,
		Timestamp: r.Timestamp,
	}
}

// Reading converts the record back to a sensor.Reading.
func (s SensorRecord) Reading() sensor.Reading {
	return sensor.Reading{
		Pressure:  s.Pressure,
		TiltX:     s.TiltX,
		TiltY:     s.TiltY,
		Rotation:  s.Rotation,
		Speed:     s.Speed,
		Distance:  s.Distance,
		Time:      s.Time,
		Timestamp: s.Timestamp,
	}
}

// NewDocument snapshots a canvas into its wire form.
func NewDocument(c *Canvas) *Document {
	doc := &Document{
		Version: DocumentVersion,
		Frames:  make(map[string][]StrokeRecord),
	}
	for _, frame := range c.Frames() {
		key := strconv.Itoa(frame)
		for _, s := range c.Strokes(frame) {
			rec := StrokeRecord{
				ID:         s.ID.String(),
				PresetName: s.PresetName,
				Color:      s.Color.Array(),
				Texture:    s.Texture,
				Size:       s.Size,
				Opacity:    s.Opacity,
				Hardness:   s.Hardness,
				Flow:       s.Flow,
				StartTime:  s.StartTime,
				EndTime:    s.EndTime,
				Points:     make([]PointRecord, len(s.Points)),
			}
			for i, p := range s.Points {
				rec.Points[i] = PointRecord{X: p.X, Y: p.Y, Sensor: sensorRecord(p.Sensor)}
			}
			doc.Frames[key] = append(doc.Frames[key], rec)
		}
	}
	return doc
}

// Canvas rebuilds a stroke ledger from the document. Frame keys that do
// not parse as integers are rejected.
func (d *Document) Canvas() (*Canvas, error) {
	c := NewCanvas()
	for key, records := range d.Frames {
		frame, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("inkwell: invalid frame key %q: %w", key, err)
		}
		for _, rec := range records {
			// Documents written by other tools may omit or mangle the
			// stroke id; a fresh one preserves uniqueness either way.
			id, err := uuid.Parse(rec.ID)
			if err != nil {
				id = uuid.New()
			}
			s := &BrushStroke{
				ID:         id,
				PresetName: rec.PresetName,
				Color:      ColorFromArray(rec.Color),
				Texture:    rec.Texture,
				Size:       rec.Size,
				Opacity:    rec.Opacity,
				Hardness:   rec.Hardness,
				Flow:       rec.Flow,
				Frame:      frame,
				StartTime:  rec.StartTime,
				EndTime:    rec.EndTime,
				Points:     make([]StrokePoint, len(rec.Points)),
			}
			for i, p := range rec.Points {
				s.Points[i] = StrokePoint{X: p.X, Y: p.Y, Sensor: p.Sensor.Reading()}
			}
			c.strokesByFrame[frame] = append(c.strokesByFrame[frame], s)
		}
	}
	return c, nil
}

// MarshalDocument serializes a canvas to the stroke document JSON form.
func MarshalDocument(c *Canvas) ([]byte, error) {
	return json.MarshalIndent(NewDocument(c), "", "  ")
}

// UnmarshalDocument parses stroke document JSON and rebuilds the canvas.
func UnmarshalDocument(data []byte) (*Canvas, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("inkwell: parse stroke document: %w", err)
	}
	return doc.Canvas()
}
