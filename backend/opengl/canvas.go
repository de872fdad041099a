//go:build !nogl

package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/gfx"
)

// Canvas is a GLFW window with its own GL context.
type Canvas struct {
	gfx.CanvasBase

	dev   *Device
	win   *glfw.Window
	empty bool
}

var (
	_ gfx.Canvas                = (*Canvas)(nil)
	_ gpucontext.WindowProvider = (*Canvas)(nil)
)

// Window returns the GLFW window, or nil after the canvas is released.
func (c *Canvas) Window() *glfw.Window {
	return c.win
}

// MakeCurrent makes the canvas's context current so the application can
// issue GL calls for it. It is a no-op on dead canvases.
func (c *Canvas) MakeCurrent() {
	if c.Check() == nil {
		c.win.MakeContextCurrent()
	}
}

// Framebuffer returns the drawable size in pixels.
func (c *Canvas) Framebuffer() gfx.Extent {
	if c.win == nil || c.empty {
		return gfx.Extent{}
	}
	w, h := c.win.GetFramebufferSize()
	return gfx.Extent{Width: uint32(max(w, 0)), Height: uint32(max(h, 0))}
}

func (c *Canvas) drawable() bool {
	return c.Check() == nil && !c.Framebuffer().Empty()
}

// Size returns the window size in screen coordinates.
func (c *Canvas) Size() (width, height int) {
	if c.win == nil || c.empty {
		return 0, 0
	}
	return c.win.GetSize()
}

// ScaleFactor returns the horizontal content scale of the window.
func (c *Canvas) ScaleFactor() float64 {
	if c.win == nil {
		return 1
	}
	x, _ := c.win.GetContentScale()
	return float64(x)
}

// RequestRedraw wakes a loop blocked in event processing.
func (c *Canvas) RequestRedraw() {
	glfw.PostEmptyEvent()
}

// Process pumps window events. A window the user closed makes the canvas
// dead with ErrWindowClosed.
func (c *Canvas) Process() error {
	if err := c.Check(); err != nil {
		return err
	}
	glfw.PollEvents()
	if c.win.ShouldClose() {
		c.Fail(ErrWindowClosed)
	}
	return c.Check()
}

// Close destroys the window and removes the canvas from its device.
// Windows in the current frame are destroyed once it is presented.
func (c *Canvas) Close() error {
	if !c.MarkClosed() {
		return nil
	}
	d := c.dev
	d.canvases.Remove(c)
	gfx.Logger().Info("opengl: canvas closed", "title", c.Options().Title)
	if !d.life.Alive() || d.inFrame(c) {
		return nil
	}
	c.release()
	return nil
}

func (c *Canvas) release() {
	if c.win == nil {
		return
	}
	if glfw.GetCurrentContext() == c.win {
		c.dev.share.MakeContextCurrent()
	}
	c.win.Destroy()
	c.win = nil
}
