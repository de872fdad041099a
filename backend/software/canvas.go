// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/gogpu/gfx"
)

// Canvas is an offscreen surface with a back buffer for drawing and a front
// buffer holding the last presented frame.
type Canvas struct {
	gfx.CanvasBase

	dev       *Device
	back      *image.RGBA
	front     *image.RGBA
	pending   *gfx.Extent
	processed uint64
}

var _ gfx.Canvas = (*Canvas)(nil)

func newCanvas(d *Device, opts gfx.CanvasOptions) *Canvas {
	return &Canvas{
		CanvasBase: gfx.NewCanvasBase(opts, d.life),
		dev:        d,
		back:       d.newBuffer(opts.Size),
		front:      d.newBuffer(opts.Size),
	}
}

func (d *Device) newBuffer(size gfx.Extent) *image.RGBA {
	return d.buffers.Get(int(size.Width), int(size.Height))
}

// Image returns the back buffer while a frame is open on a live canvas,
// and nil otherwise.
func (c *Canvas) Image() draw.Image {
	if c.Check() != nil || c.dev.State() != gfx.FrameOpen {
		return nil
	}
	return c.back
}

// Front returns the last presented frame. It stays valid until the next
// BeginDraw reuses it as the back buffer; Snapshot returns a copy.
func (c *Canvas) Front() *image.RGBA {
	return c.front
}

// Size returns the current buffer size. A queued resize is not reflected
// until Process applies it.
func (c *Canvas) Size() gfx.Extent {
	b := c.front.Bounds()
	return gfx.Extent{Width: uint32(b.Dx()), Height: uint32(b.Dy())}
}

// Resize queues a resize. BeginDraw declines frames until the next Process
// applies it, the way a window system reports a resize in progress.
// Sizes above the device's MaxCanvasPixels fail with gfx.ErrCanvasLimit
// and leave the canvas unchanged.
func (c *Canvas) Resize(width, height uint32) error {
	if err := c.Check(); err != nil {
		return err
	}
	size := gfx.Extent{Width: width, Height: height}
	if err := c.dev.checkSize(size); err != nil {
		return err
	}
	c.pending = &size
	return nil
}

// Processed returns how many times Process succeeded.
func (c *Canvas) Processed() uint64 {
	return c.processed
}

// Process applies a queued resize. The presented image is rescaled so the
// front buffer keeps showing the last frame at the new size.
func (c *Canvas) Process() error {
	if err := c.Check(); err != nil {
		return err
	}
	if c.pending != nil {
		size := *c.pending
		c.pending = nil
		front := c.dev.newBuffer(size)
		if !front.Bounds().Empty() && !c.front.Bounds().Empty() {
			draw.NearestNeighbor.Scale(front, front.Bounds(), c.front, c.front.Bounds(), draw.Src, nil)
		}
		c.front = front
		c.dev.buffers.Put(c.back)
		c.back = c.dev.newBuffer(size)
		gfx.Logger().Debug("software: canvas resized", "title", c.Options().Title, "size", size)
	}
	c.processed++
	return nil
}

// Snapshot returns the front buffer scaled to width×height with Catmull-Rom
// filtering.
func (c *Canvas) Snapshot(width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if dst.Bounds().Empty() || c.front.Bounds().Empty() {
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), c.front, c.front.Bounds(), draw.Src, nil)
	return dst
}

// SavePNG writes the front buffer to path.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("software: create %s: %w", path, err)
	}
	if err := png.Encode(f, c.front); err != nil {
		f.Close()
		return fmt.Errorf("software: encode %s: %w", path, err)
	}
	return f.Close()
}

// Close removes the canvas from its device. The front buffer stays
// readable. The back buffer of a canvas closed during a frame returns to
// the pool once the frame is presented or the device closed.
func (c *Canvas) Close() error {
	if !c.MarkClosed() {
		return nil
	}
	d := c.dev
	d.canvases.Remove(c)
	if d.life.Alive() && d.State() != gfx.FrameIdle {
		d.retired = append(d.retired, c.back)
	} else {
		d.buffers.Put(c.back)
	}
	c.back = nil
	gfx.Logger().Info("software: canvas closed", "title", c.Options().Title)
	return nil
}
