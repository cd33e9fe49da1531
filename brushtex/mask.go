package brushtex

import (
	"math"
	"math/rand"
)

// MaskSize is the fixed working resolution of generated masks.
const MaskSize = 256

// Seeds for the stochastic generators. Fixed so regeneration is always
// pixel-identical to the cached mask it replaces.
const (
	noiseSeed    = 42
	splatterSeed = 123
	grainySeed   = 456
	scratchySeed = 789
)

// Mask is a square single-channel alpha mask with values in [0,1].
type Mask struct {
	Size int
	Data []float32 // row-major, Size*Size values
}

func newMask(size int) Mask {
	return Mask{Size: size, Data: make([]float32, size*size)}
}

// At returns the alpha at (x,y). Out-of-range coordinates return 0.
func (m Mask) At(x, y int) float32 {
	if x < 0 || y < 0 || x >= m.Size || y >= m.Size {
		return 0
	}
	return m.Data[y*m.Size+x]
}

func (m Mask) set(x, y int, v float32) {
	m.Data[y*m.Size+x] = v
}

func (m Mask) setMax(x, y int, v float32) {
	if x < 0 || y < 0 || x >= m.Size || y >= m.Size {
		return
	}
	if cur := m.Data[y*m.Size+x]; v > cur {
		m.Data[y*m.Size+x] = v
	}
}

// Sample returns the bilinearly interpolated alpha at normalized
// coordinates (u,v) in [0,1]. Used by CPU-side stamping.
func (m Mask) Sample(u, v float64) float32 {
	fx := u*float64(m.Size) - 0.5
	fy := v*float64(m.Size) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := float32(fx - float64(x0))
	ty := float32(fy - float64(y0))

	a := m.At(x0, y0)*(1-tx) + m.At(x0+1, y0)*tx
	b := m.At(x0, y0+1)*(1-tx) + m.At(x0+1, y0+1)*tx
	return a*(1-ty) + b*ty
}

// Generate renders the mask for a shape at the working resolution.
func Generate(shape Shape) Mask {
	return GenerateAt(shape, MaskSize)
}

// GenerateAt renders the mask at an explicit resolution. Thumbnails use
// small sizes; stamping uses MaskSize.
func GenerateAt(shape Shape, size int) Mask {
	switch shape {
	case HardCircle:
		return hardCircle(size)
	case SquareSoft:
		return squareSoft(size)
	case SquareHard:
		return squareHard(size)
	case Triangle:
		return triangle(size)
	case Star:
		return star(size)
	case Diamond:
		return diamond(size)
	case Splatter:
		return splatter(size)
	case Stipple:
		return stipple(size)
	case Grainy:
		return grainy(size)
	case Scratchy:
		return scratchy(size)
	case Noise:
		return noiseMask(size)
	default:
		return softCircle(size)
	}
}

func softCircle(size int) Mask {
	m := newMask(size)
	center := float64(size) / 2
	radius := float64(size) / 2

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) - center
			dy := float64(y) - center
			dist := math.Hypot(dx, dy)
			if dist < radius {
				t := dist / radius
				m.set(x, y, float32(math.Max(0, 1-t*t)))
			}
		}
	}
	return m
}

func hardCircle(size int) Mask {
	m := newMask(size)
	center := float64(size) / 2
	radius := float64(size)/2 - 1 // inset leaves room for the edge ramp

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) - center
			dy := float64(y) - center
			dist := math.Hypot(dx, dy)
			switch {
			case dist < radius:
				m.set(x, y, 1)
			case dist < radius+1:
				m.set(x, y, float32(radius+1-dist))
			}
		}
	}
	return m
}

func squareSoft(size int) Mask {
	m := newMask(size)
	center := float64(size) / 2
	half := float64(size) / 2

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := math.Abs(float64(x) - center)
			dy := math.Abs(float64(y) - center)
			if d := math.Max(dx, dy); d < half {
				t := d / half
				m.set(x, y, float32(math.Max(0, 1-t*t)))
			}
		}
	}
	return m
}

func squareHard(size int) Mask {
	m := newMask(size)
	center := float64(size) / 2
	half := float64(size)/2 - 1

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := math.Abs(float64(x) - center)
			dy := math.Abs(float64(y) - center)
			switch {
			case dx < half && dy < half:
				m.set(x, y, 1)
			case dx < half+1 && dy < half+1:
				fadeX := math.Max(0, half+1-dx)
				fadeY := math.Max(0, half+1-dy)
				m.set(x, y, float32(math.Min(fadeX, fadeY)))
			}
		}
	}
	return m
}

func triangle(size int) Mask {
	m := newMask(size)
	c := float64(size) / 2
	r := float64(size)/2 - 2

	// Equilateral, apex up.
	v1x, v1y := c, c-r
	v2x, v2y := c-r*0.866, c+r*0.5
	v3x, v3y := c+r*0.866, c+r*0.5

	sign := func(px, py, x1, y1, x2, y2 float64) float64 {
		return (px-x2)*(y1-y2) - (x1-x2)*(py-y2)
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fx, fy := float64(x), float64(y)
			d1 := sign(fx, fy, v1x, v1y, v2x, v2y)
			d2 := sign(fx, fy, v2x, v2y, v3x, v3y)
			d3 := sign(fx, fy, v3x, v3y, v1x, v1y)
			hasNeg := d1 < 0 || d2 < 0 || d3 < 0
			hasPos := d1 > 0 || d2 > 0 || d3 > 0
			if !(hasNeg && hasPos) {
				m.set(x, y, 1)
			}
		}
	}
	return m
}

func star(size int) Mask {
	m := newMask(size)
	c := float64(size) / 2
	outer := float64(size)/2 - 2
	inner := outer * 0.4

	// 5-pointed star: alternating outer and inner vertices.
	var verts [10][2]float64
	for i := 0; i < 5; i++ {
		a := float64(i)*2*math.Pi/5 - math.Pi/2
		verts[2*i] = [2]float64{c + outer*math.Cos(a), c + outer*math.Sin(a)}
		a = (float64(i)+0.5)*2*math.Pi/5 - math.Pi/2
		verts[2*i+1] = [2]float64{c + inner*math.Cos(a), c + inner*math.Sin(a)}
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if pointInPolygon(float64(x), float64(y), verts[:]) {
				m.set(x, y, 1)
			}
		}
	}
	return m
}

// pointInPolygon is a standard ray-cast containment test.
func pointInPolygon(x, y float64, verts [][2]float64) bool {
	inside := false
	n := len(verts)
	p1x, p1y := verts[0][0], verts[0][1]
	for i := 1; i <= n; i++ {
		p2x, p2y := verts[i%n][0], verts[i%n][1]
		if y > math.Min(p1y, p2y) && y <= math.Max(p1y, p2y) && x <= math.Max(p1x, p2x) {
			var xi float64
			if p1y != p2y {
				xi = (y-p1y)*(p2x-p1x)/(p2y-p1y) + p1x
			}
			if p1x == p2x || x <= xi {
				inside = !inside
			}
		}
		p1x, p1y = p2x, p2y
	}
	return inside
}

func diamond(size int) Mask {
	m := newMask(size)
	center := float64(size) / 2
	half := float64(size)/2 - 2

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := math.Abs(float64(x) - center)
			dy := math.Abs(float64(y) - center)
			dist := dx + dy
			switch {
			case dist < half:
				m.set(x, y, 1)
			case dist < half+2:
				m.set(x, y, float32((half+2-dist)/2))
			}
		}
	}
	return m
}

func splatter(size int) Mask {
	m := newMask(size)
	center := float64(size) / 2
	radius := float64(size) / 2
	rng := rand.New(rand.NewSource(splatterSeed))

	const particles = 80
	for i := 0; i < particles; i++ {
		angle := rng.Float64() * 2 * math.Pi
		dist := rng.Float64() * radius * 0.9
		px := int(center + dist*math.Cos(angle))
		py := int(center + dist*math.Sin(angle))
		pSize := 2 + rng.Float64()*6
		intensity := 0.3 + rng.Float64()*0.7

		r := int(pSize)
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				d := math.Hypot(float64(dx), float64(dy))
				if d < pSize {
					falloff := 1 - d/pSize
					m.setMax(px+dx, py+dy, float32(intensity*falloff))
				}
			}
		}
	}
	return m
}

func stipple(size int) Mask {
	m := newMask(size)
	center := float64(size) / 2
	radius := float64(size) / 2

	const (
		dotSpacing = 12
		dotSize    = 3
	)
	for y := 0; y < size; y += dotSpacing {
		for x := 0; x < size; x += dotSpacing {
			dx := float64(x) - center
			dy := float64(y) - center
			if math.Hypot(dx, dy) >= radius*0.9 {
				continue
			}
			for dyd := -dotSize; dyd <= dotSize; dyd++ {
				for dxd := -dotSize; dxd <= dotSize; dxd++ {
					d := math.Hypot(float64(dxd), float64(dyd))
					if d < dotSize {
						t := d / dotSize
						m.setMax(x+dxd, y+dyd, float32(1-t*t))
					}
				}
			}
		}
	}
	return m
}

func grainy(size int) Mask {
	m := newMask(size)
	center := float64(size) / 2
	radius := float64(size) / 2
	rng := rand.New(rand.NewSource(grainySeed))

	noise := make([]float64, size*size)
	for i := range noise {
		noise[i] = rng.Float64()
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) - center
			dy := float64(y) - center
			dist := math.Hypot(dx, dy)
			if dist < radius {
				t := dist / radius
				falloff := 1 - t*t
				grain := noise[y*size+x]*0.7 + 0.3
				m.set(x, y, float32(grain*falloff))
			}
		}
	}

	gaussianBlur(m, 0.5)
	return m
}

func scratchy(size int) Mask {
	m := newMask(size)
	center := float64(size) / 2
	radius := float64(size) / 2
	rng := rand.New(rand.NewSource(scratchySeed))

	const scratches = 30
	for i := 0; i < scratches; i++ {
		angle := rng.Float64() * 2 * math.Pi
		startDist := rng.Float64() * radius * 0.7
		sx := center + startDist*math.Cos(angle)
		sy := center + startDist*math.Sin(angle)

		scratchAngle := rng.Float64() * 2 * math.Pi
		length := 10 + int(rng.Float64()*30)
		width := 1.5 + rng.Float64()*1.5
		intensity := 0.4 + rng.Float64()*0.6

		for step := 0; step < length; step++ {
			px := sx + float64(step)*math.Cos(scratchAngle)
			py := sy + float64(step)*math.Sin(scratchAngle)
			w := int(width)
			for dw := -w; dw <= w; dw++ {
				x := int(px + float64(dw)*math.Sin(scratchAngle))
				y := int(py - float64(dw)*math.Cos(scratchAngle))
				if x < 0 || y < 0 || x >= size || y >= size {
					continue
				}
				dist := math.Hypot(float64(x)-center, float64(y)-center)
				if dist >= radius {
					continue
				}
				t := dist / radius
				falloff := 1 - t*t
				widthFalloff := 1 - math.Abs(float64(dw))/width
				m.setMax(x, y, float32(intensity*falloff*widthFalloff))
			}
		}
	}

	// Base grain under the scratches.
	for i := range m.Data {
		v := float64(m.Data[i]) + rng.Float64()*0.3
		if v > 1 {
			v = 1
		}
		m.Data[i] = float32(v)
	}
	return m
}

func noiseMask(size int) Mask {
	m := newMask(size)
	rng := rand.New(rand.NewSource(noiseSeed))
	for i := range m.Data {
		m.Data[i] = float32(rng.Float64())
	}

	// Coarse blobs: blur at a tenth of the mask size, then renormalize
	// the flattened dynamic range back to 0..1.
	gaussianBlur(m, 0.1*float64(size))

	lo, hi := m.Data[0], m.Data[0]
	for _, v := range m.Data {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi > lo {
		scale := 1 / (hi - lo)
		for i, v := range m.Data {
			m.Data[i] = (v - lo) * scale
		}
	}
	return m
}

// gaussianBlur applies a separable gaussian in place.
func gaussianBlur(m Mask, sigma float64) {
	if sigma <= 0 {
		return
	}
	r := int(math.Ceil(3 * sigma))
	kernel := make([]float64, 2*r+1)
	var sum float64
	for i := -r; i <= r; i++ {
		k := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+r] = k
		sum += k
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	size := m.Size
	tmp := make([]float32, size*size)

	// Horizontal pass. Edges clamp.
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			var acc float64
			for i := -r; i <= r; i++ {
				sx := x + i
				if sx < 0 {
					sx = 0
				} else if sx >= size {
					sx = size - 1
				}
				acc += float64(m.Data[y*size+sx]) * kernel[i+r]
			}
			tmp[y*size+x] = float32(acc)
		}
	}
	// Vertical pass.
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			var acc float64
			for i := -r; i <= r; i++ {
				sy := y + i
				if sy < 0 {
					sy = 0
				} else if sy >= size {
					sy = size - 1
				}
				acc += float64(tmp[sy*size+x]) * kernel[i+r]
			}
			m.Data[y*size+x] = float32(acc)
		}
	}
}
