package brushtex

// Shape identifies a procedural brush tip pattern.
type Shape uint8

const (
	SoftCircle Shape = iota
	HardCircle
	SquareSoft
	SquareHard
	Triangle
	Star
	Diamond
	Splatter
	Stipple
	Grainy
	Scratchy
	Noise

	numShapes
)

// DefaultShape is the fallback for unknown shape names.
const DefaultShape = SoftCircle

var shapeNames = [numShapes]string{
	SoftCircle: "soft_circle",
	HardCircle: "hard_circle",
	SquareSoft: "square_soft",
	SquareHard: "square_hard",
	Triangle:   "triangle",
	Star:       "star",
	Diamond:    "diamond",
	Splatter:   "splatter",
	Stipple:    "stipple",
	Grainy:     "grainy",
	Scratchy:   "scratchy",
	Noise:      "noise",
}

// String returns the shape's document identifier.
func (s Shape) String() string {
	if s < numShapes {
		return shapeNames[s]
	}
	return "unknown"
}

// ParseShape maps a document identifier to a Shape. Unknown names
// return (DefaultShape, false); callers log the fallback.
func ParseShape(name string) (Shape, bool) {
	for s, n := range shapeNames {
		if n == name {
			return Shape(s), true
		}
	}
	return DefaultShape, false
}

// Shapes returns all shapes in identifier order, for UI pickers.
func Shapes() []Shape {
	all := make([]Shape, numShapes)
	for i := range all {
		all[i] = Shape(i)
	}
	return all
}
