// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/internal/bufpool"
)

// Options configures a software device.
type Options struct {
	// MaxCanvases limits the number of live canvases. Zero means no limit.
	MaxCanvases int

	// ClearColor fills every back buffer at BeginDraw. Nil means
	// transparent.
	ClearColor color.Color

	// StampTitle draws each canvas title into the top-left corner of the
	// frame at EndDraw.
	StampTitle bool

	// MaxCanvasPixels bounds width×height of a single canvas. Zero means
	// DefaultMaxCanvasPixels.
	MaxCanvasPixels uint64
}

// DefaultMaxCanvasPixels is 16384×16384, 1 GiB per RGBA buffer.
const DefaultMaxCanvasPixels = 1 << 28

// DefaultOptions returns opaque black clearing without a canvas limit.
func DefaultOptions() Options {
	return Options{ClearColor: color.Black}
}

// Device is a gfx.Device that renders into CPU memory.
type Device struct {
	gfx.FrameCycle

	opts     Options
	fill     image.Image
	buffers  *bufpool.Pool
	life     *gfx.Lifetime
	canvases gfx.CanvasSet[*Canvas]

	// retired holds back buffers of canvases closed during a frame until
	// the frame ends.
	retired []*image.RGBA
}

var _ gfx.Device = (*Device)(nil)

// New creates a software device. It never fails for valid options.
func New(opts Options) (*Device, error) {
	if opts.MaxCanvases < 0 {
		return nil, fmt.Errorf("software: negative MaxCanvases %d", opts.MaxCanvases)
	}
	if opts.MaxCanvasPixels == 0 {
		opts.MaxCanvasPixels = DefaultMaxCanvasPixels
	}
	bg := opts.ClearColor
	if bg == nil {
		bg = color.Transparent
	}
	d := &Device{
		opts:    opts,
		fill:    image.NewUniform(bg),
		buffers: bufpool.New(4),
		life:    gfx.NewLifetime(),
	}
	gfx.Logger().Info("software: device created", "max_canvases", opts.MaxCanvases)
	return d, nil
}

// CreateCanvas creates a double-buffered canvas of opts.Size pixels.
// A zero size yields an empty canvas on which every operation is a no-op.
// Sizes above MaxCanvasPixels fail with gfx.ErrCanvasLimit.
func (d *Device) CreateCanvas(opts gfx.CanvasOptions) (gfx.Canvas, error) {
	if d.Closed() {
		return nil, gfx.ErrDeviceClosed
	}
	if d.opts.MaxCanvases > 0 && d.canvases.Len() >= d.opts.MaxCanvases {
		return nil, fmt.Errorf("software: %d canvases: %w", d.canvases.Len(), gfx.ErrCanvasLimit)
	}
	if err := d.checkSize(opts.Size); err != nil {
		return nil, err
	}
	c := newCanvas(d, opts)
	d.canvases.Add(c)
	gfx.Logger().Info("software: canvas created", "title", c.Options().Title, "size", opts.Size)
	return c, nil
}

// checkSize rejects sizes whose buffers exceed the pixel budget.
func (d *Device) checkSize(size gfx.Extent) error {
	if uint64(size.Width)*uint64(size.Height) > d.opts.MaxCanvasPixels {
		return fmt.Errorf("software: %v: %w", size, gfx.ErrCanvasLimit)
	}
	return nil
}

// BeginDraw opens a frame and clears every back buffer. It reports false
// while a canvas has a resize queued that Process has not applied yet.
func (d *Device) BeginDraw() (bool, error) {
	return d.Begin(func() (bool, error) {
		for _, c := range d.canvases.Snapshot() {
			if c.pending != nil {
				gfx.Logger().Debug("software: resize pending", "title", c.Options().Title)
				return false, nil
			}
		}
		d.canvases.Each(func(c *Canvas) {
			draw.Draw(c.back, c.back.Bounds(), d.fill, image.Point{}, draw.Src)
		})
		return true, nil
	})
}

// EndDraw finishes the frame, stamping titles when enabled.
func (d *Device) EndDraw() error {
	return d.End(func() error {
		if d.opts.StampTitle {
			d.canvases.Each(stampTitle)
		}
		return nil
	})
}

// Present swaps the back and front buffers of every canvas.
func (d *Device) Present() error {
	return d.FrameCycle.Present(func() error {
		d.canvases.Each(func(c *Canvas) {
			c.back, c.front = c.front, c.back
		})
		d.releaseRetired()
		return nil
	})
}

// releaseRetired returns buffers of canvases closed during the frame to
// the pool.
func (d *Device) releaseRetired() {
	for _, buf := range d.retired {
		d.buffers.Put(buf)
	}
	d.retired = nil
}

// Canvases returns the live canvases in creation order.
func (d *Device) Canvases() []gfx.Canvas {
	return d.canvases.Canvases()
}

// Close invalidates every canvas. Presented images stay readable through
// Canvas.Front.
func (d *Device) Close() error {
	if !d.FrameCycle.Close(func() {
		gfx.Logger().Debug("software: discarding unpresented frame")
		d.releaseRetired()
	}) {
		return nil
	}
	d.life.End()
	n := len(d.canvases.Drain())
	gfx.Logger().Info("software: device closed", "canvases", n, "frames", d.Frames())
	return nil
}

// stampTitle writes the canvas title with the 7x13 bitmap face.
func stampTitle(c *Canvas) {
	title := c.Options().Title
	if title == "" || c.back.Bounds().Empty() {
		return
	}
	face := basicfont.Face7x13
	drawer := font.Drawer{
		Dst:  c.back,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(4, 4+face.Ascent),
	}
	drawer.DrawString(title)
}
