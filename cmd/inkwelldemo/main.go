// Command inkwelldemo paints a few synthetic brush strokes, composites
// them to the screen, and saves the result as a PNG. With -input it
// replays a saved stroke document instead of the built-in strokes.
package main

import (
	"flag"
	"image/png"
	"log"
	"math"
	"os"

	"github.com/gogpu/inkwell"
	"github.com/gogpu/inkwell/render"
	"github.com/gogpu/inkwell/tool"
)

func main() {
	var (
		width  = flag.Int("width", 800, "screen width")
		height = flag.Int("height", 600, "screen height")
		output = flag.String("output", "inkwell.png", "output PNG file")
		input  = flag.String("input", "", "stroke document to replay instead of the demo strokes")
		save   = flag.String("save", "", "write the painted strokes as a stroke document")
	)
	flag.Parse()

	dev := render.NewSoftwareDevice(*width, *height)
	engine := render.NewEngine(dev)
	defer engine.Close()

	// A 1000x750 image filling most of the screen, slightly inset.
	const imageW, imageH = 1000, 750
	engine.Renderer().SetImageSize(imageW, imageH)
	engine.Renderer().SetGeometry(inkwell.GeometryFromRect(
		40, 30, float64(*width-80), float64(*height-60)))

	if *input != "" {
		data, err := os.ReadFile(*input)
		if err != nil {
			log.Fatalf("read %s: %v", *input, err)
		}
		if err := engine.LoadDocument(data, nil); err != nil {
			log.Fatalf("replay %s: %v", *input, err)
		}
	} else {
		paintDemoStrokes(engine)
	}

	if err := engine.Renderer().RenderFrame(0); err != nil {
		log.Fatalf("render: %v", err)
	}

	if *save != "" {
		data, err := engine.SaveDocument()
		if err != nil {
			log.Fatalf("save document: %v", err)
		}
		if err := os.WriteFile(*save, data, 0o644); err != nil {
			log.Fatalf("write %s: %v", *save, err)
		}
		log.Printf("Strokes saved to %s", *save)
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("create %s: %v", *output, err)
	}
	defer f.Close()
	if err := png.Encode(f, dev.ReadScreen()); err != nil {
		log.Fatalf("encode PNG: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d)", *output, *width, *height)
}

// paintDemoStrokes drives the brush tool through a few gestures with a
// synthetic pressure envelope, one stroke per preset variation.
func paintDemoStrokes(engine *render.Engine) {
	brush := tool.NewRasterBrushTool(engine.Renderer(), nil)

	presets := []*inkwell.BrushPreset{
		demoPreset("crimson soft", inkwell.RGB(0.85, 0.15, 0.25), 60, 0.2, "soft_circle"),
		demoPreset("teal hard", inkwell.RGB(0.1, 0.6, 0.6), 36, 0.85, "hard_circle"),
		demoPreset("gold splatter", inkwell.RGB(0.95, 0.75, 0.2), 80, 0.5, "splatter"),
	}

	for i, p := range presets {
		brush.SetPreset(p)
		paintWave(brush, engine.Canvas(), 0.2+0.25*float64(i))
	}
}

func demoPreset(name string, c inkwell.RGBA, size, hardness float64, shape string) *inkwell.BrushPreset {
	p := inkwell.DefaultPreset()
	p.Name = name
	p.Color = c
	p.Size = size
	p.Hardness = hardness
	p.Texture = shape
	return p
}

// paintWave drags a sine wave across the image at the given normalized
// height. Pressure rises to full mid-stroke and falls off at the ends.
func paintWave(brush *tool.RasterBrushTool, canvas *inkwell.Canvas, y float64) {
	const steps = 60
	at := func(i int) (float64, float64, float64) {
		t := float64(i) / steps
		px := 0.08 + 0.84*t
		py := y + 0.06*math.Sin(t*4*math.Pi)
		pressure := math.Sin(t * math.Pi) // 0 at the ends, 1 mid-stroke
		return px, py, pressure
	}

	x0, y0, p0 := at(0)
	start := 100.0
	brush.OnPress(canvas, tool.PointerEvent{
		X: x0, Y: y0, Pressure: p0, HasPressure: true, Timestamp: start,
	})
	for i := 1; i < steps; i++ {
		px, py, pressure := at(i)
		brush.OnDrag(canvas, tool.PointerEvent{
			X: px, Y: py, Pressure: pressure, HasPressure: true,
			Timestamp: start + float64(i)*0.016,
		})
	}
	xn, yn, pn := at(steps)
	brush.OnRelease(canvas, tool.PointerEvent{
		X: xn, Y: yn, Pressure: pn, HasPressure: true,
		Timestamp: start + steps*0.016,
	})
}
