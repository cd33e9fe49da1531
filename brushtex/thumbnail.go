package brushtex

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Image converts the mask to a grayscale image, white on black.
func (m Mask) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Size, m.Size))
	for y := 0; y < m.Size; y++ {
		for x := 0; x < m.Size; x++ {
			v := m.At(x, y)
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			img.SetGray(x, y, color.Gray{Y: uint8(v*255 + 0.5)})
		}
	}
	return img
}

// Thumbnail renders the mask downsampled to the given edge length,
// for shape-picker previews. Uses Catmull-Rom resampling so thin
// stochastic shapes keep their character at small sizes.
func Thumbnail(shape Shape, size int) *image.Gray {
	full := Generate(shape).Image()
	thumb := image.NewGray(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(thumb, thumb.Bounds(), full, full.Bounds(), draw.Src, nil)
	return thumb
}
