package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/backend/software"
	"github.com/gogpu/gfx/config"
)

// Demo is the application driven by the loop in main.
type Demo struct {
	dev      gfx.Device
	canvases []gfx.Canvas
	frame    int
}

// NewDemo returns a demo on dev. It does not take ownership of dev.
func NewDemo(dev gfx.Device) *Demo {
	return &Demo{dev: dev}
}

// Load creates the canvases listed in cfg, or a single "Demo" canvas of
// gfx.DefaultCanvasSize when cfg lists none.
func (d *Demo) Load(cfg config.Config) error {
	list := cfg.Canvases
	if len(list) == 0 {
		list = []config.CanvasConfig{{
			Title:  "Demo",
			Width:  gfx.DefaultCanvasSize.Width,
			Height: gfx.DefaultCanvasSize.Height,
		}}
	}
	for _, cc := range list {
		c, err := d.dev.CreateCanvas(cc.Options())
		if err != nil {
			return fmt.Errorf("create canvas %q: %w", cc.Title, err)
		}
		d.canvases = append(d.canvases, c)
	}
	return nil
}

// Update runs one frame and then processes every canvas. It reports
// whether a frame was presented.
func (d *Demo) Update() (bool, error) {
	ok, err := d.dev.BeginDraw()
	if err != nil {
		return false, fmt.Errorf("begin draw: %w", err)
	}
	if ok {
		d.draw()
		if err := d.dev.EndDraw(); err != nil {
			return false, fmt.Errorf("end draw: %w", err)
		}
		if err := d.dev.Present(); err != nil {
			return false, fmt.Errorf("present: %w", err)
		}
		d.frame++
	}

	var errs []error
	for _, c := range d.canvases {
		if err := c.Process(); err != nil {
			errs = append(errs, fmt.Errorf("canvas %q: %w", c.Options().Title, err))
		}
	}
	return ok, errors.Join(errs...)
}

// Frames returns the number of presented frames.
func (d *Demo) Frames() int {
	return d.frame
}

// Canvases returns the canvases created by Load.
func (d *Demo) Canvases() []gfx.Canvas {
	return d.canvases
}

// draw sweeps a bar across software canvases. Other backends show their
// clear color.
func (d *Demo) draw() {
	for _, c := range d.canvases {
		sc, ok := c.(*software.Canvas)
		if !ok {
			continue
		}
		dst := sc.Image()
		if dst == nil {
			continue
		}
		b := dst.Bounds()
		if b.Dx() == 0 {
			continue
		}
		x := b.Min.X + d.frame*8%b.Dx()
		bar := image.Rect(x, b.Min.Y, x+16, b.Max.Y).Intersect(b)
		draw.Draw(dst, bar, image.NewUniform(color.NRGBA{R: 0x4a, G: 0x90, B: 0xe2, A: 0xff}), image.Point{}, draw.Src)
	}
}

// Close closes every canvas.
func (d *Demo) Close() {
	for _, c := range d.canvases {
		_ = c.Close()
	}
	d.canvases = nil
}
