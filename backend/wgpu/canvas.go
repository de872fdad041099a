// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gfx"
)

// Canvas is a window with a configured hal.Surface.
type Canvas struct {
	gfx.CanvasBase

	dev     *Device
	window  Window
	surface hal.Surface

	// size is the window size the surface was last configured for.
	size       gfx.Extent
	configured bool
	outdated   bool

	// Current frame.
	texture hal.SurfaceTexture
	view    hal.TextureView
	pass    hal.RenderPassEncoder
}

var (
	_ gfx.Canvas                = (*Canvas)(nil)
	_ gpucontext.WindowProvider = (*Canvas)(nil)
)

// Window returns the native window behind the canvas.
func (c *Canvas) Window() Window {
	return c.window
}

// Surface returns the HAL surface.
func (c *Canvas) Surface() hal.Surface {
	return c.surface
}

// Configured reports whether the surface is configured. Zero-sized
// windows leave it unconfigured and are skipped by BeginDraw.
func (c *Canvas) Configured() bool {
	return c.configured
}

// Extent returns the size in physical pixels the surface is configured for.
func (c *Canvas) Extent() gfx.Extent {
	return c.size
}

// Pass returns the render pass recording into this canvas while a frame
// is open, and nil otherwise. Commands recorded into it are drawn over the
// clear and the backdrop.
func (c *Canvas) Pass() hal.RenderPassEncoder {
	if c.Check() != nil {
		return nil
	}
	return c.pass
}

// Size returns the window size in logical points.
func (c *Canvas) Size() (width, height int) {
	w, h := c.window.Size()
	scale := c.window.Scale()
	if scale <= 0 {
		return w, h
	}
	return int(float64(w) / scale), int(float64(h) / scale)
}

// ScaleFactor returns the window's DPI scale.
func (c *Canvas) ScaleFactor() float64 {
	return c.window.Scale()
}

// RequestRedraw is a no-op: the driver loop redraws every iteration.
func (c *Canvas) RequestRedraw() {}

// Process polls the window and reconfigures the surface when its size
// changed or the last frame reported it outdated or suboptimal.
func (c *Canvas) Process() error {
	if err := c.Check(); err != nil {
		return err
	}
	if err := c.window.Poll(); err != nil {
		c.Fail(fmt.Errorf("wgpu: window %q: %w", c.Options().Title, err))
		return c.Check()
	}
	if c.texture != nil {
		// A frame holds a surface texture; reconfigure after Present.
		return nil
	}
	w, h := c.window.Size()
	if c.outdated || uint32(max(w, 0)) != c.size.Width || uint32(max(h, 0)) != c.size.Height {
		if err := c.configure(); err != nil {
			c.Fail(err)
			return c.Check()
		}
	}
	return nil
}

// Close releases the surface and window and removes the canvas from its
// device. A canvas closed during a frame is released after that frame is
// presented or aborted.
func (c *Canvas) Close() error {
	if !c.MarkClosed() {
		return nil
	}
	d := c.dev
	d.canvases.Remove(c)
	gfx.Logger().Info("wgpu: canvas closed", "title", c.Options().Title)
	if !d.life.Alive() || c.texture != nil {
		return nil
	}
	d.waitIdle()
	c.release()
	return nil
}

// configure matches the surface to the window size. A zero size
// unconfigures the surface.
func (c *Canvas) configure() error {
	d := c.dev
	w, h := c.window.Size()
	c.outdated = false
	c.size = gfx.Extent{Width: uint32(max(w, 0)), Height: uint32(max(h, 0))}

	if c.size.Empty() {
		if c.configured {
			c.surface.Unconfigure(d.device)
			c.configured = false
			gfx.Logger().Debug("wgpu: surface unconfigured", "title", c.Options().Title)
		}
		return nil
	}

	err := c.surface.Configure(d.device, &hal.SurfaceConfiguration{
		Width:       c.size.Width,
		Height:      c.size.Height,
		Format:      d.format,
		Usage:       gputypes.TextureUsageRenderAttachment,
		PresentMode: d.presentMode,
		AlphaMode:   d.alphaMode,
	})
	if errors.Is(err, hal.ErrZeroArea) {
		c.configured = false
		return nil
	}
	if err != nil {
		c.configured = false
		return fmt.Errorf("wgpu: configure surface %q (%v): %w", c.Options().Title, c.size, err)
	}
	c.configured = true
	gfx.Logger().Debug("wgpu: surface configured", "title", c.Options().Title, "size", c.size)
	return nil
}

// acquire takes the next surface texture. It reports false for conditions
// that skip the frame and handles each of them: an outdated surface is
// reconfigured, a lost surface kills the canvas, a lost device is recorded
// on the device.
func (c *Canvas) acquire() (bool, error) {
	d := c.dev
	acquired, err := c.surface.AcquireTexture(nil)
	switch {
	case err == nil:
	case errors.Is(err, hal.ErrSurfaceOutdated):
		gfx.Logger().Debug("wgpu: surface outdated", "title", c.Options().Title)
		if err := c.configure(); err != nil {
			c.Fail(err)
		}
		return false, nil
	case errors.Is(err, hal.ErrNotReady), errors.Is(err, hal.ErrTimeout):
		gfx.Logger().Debug("wgpu: surface not ready", "title", c.Options().Title, "error", err)
		return false, nil
	case errors.Is(err, hal.ErrSurfaceLost):
		c.Fail(fmt.Errorf("wgpu: canvas %q: %w", c.Options().Title, err))
		return false, nil
	case errors.Is(err, hal.ErrDeviceLost):
		d.markLost(err)
		return false, nil
	default:
		return false, fmt.Errorf("wgpu: acquire %q: %w", c.Options().Title, err)
	}

	view, err := d.device.CreateTextureView(acquired.Texture, &hal.TextureViewDescriptor{
		Label: "gfx_surface_view",
	})
	if err != nil {
		c.surface.DiscardTexture(acquired.Texture)
		return false, fmt.Errorf("wgpu: create view %q: %w", c.Options().Title, err)
	}
	c.texture = acquired.Texture
	c.view = view
	c.outdated = acquired.Suboptimal
	return true, nil
}

// present queues the acquired texture for display.
func (c *Canvas) present() error {
	d := c.dev
	texture := c.texture
	c.texture, c.view = nil, nil
	if c.Closed() {
		c.surface.DiscardTexture(texture)
		return nil
	}
	err := d.queue.Present(c.surface, texture, nil)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, hal.ErrSurfaceOutdated):
		c.outdated = true
		return nil
	case errors.Is(err, hal.ErrSurfaceLost):
		c.Fail(fmt.Errorf("wgpu: canvas %q: %w", c.Options().Title, err))
		return nil
	case errors.Is(err, hal.ErrDeviceLost):
		d.markLost(err)
		return nil
	default:
		return fmt.Errorf("wgpu: present %q: %w", c.Options().Title, err)
	}
}

// discard returns an acquired texture without presenting it.
func (c *Canvas) discard() {
	c.pass = nil
	if c.view != nil {
		c.dev.device.DestroyTextureView(c.view)
		c.view = nil
	}
	if c.texture != nil {
		c.surface.DiscardTexture(c.texture)
		c.texture = nil
	}
}

// release destroys the surface and closes the window.
func (c *Canvas) release() {
	if c.surface == nil {
		return
	}
	if c.configured {
		c.surface.Unconfigure(c.dev.device)
		c.configured = false
	}
	c.surface.Destroy()
	c.surface = nil
	c.window.Close()
}
