// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogl

package opengl

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/gfx"
)

// GLFW and every GL call must stay on the main thread.
func init() {
	runtime.LockOSThread()
}

// glfwUsers counts open devices; GLFW is terminated when it drops to zero.
var glfwUsers int

// Device is a gfx.Device on OpenGL 3.3 core. Every canvas is a GLFW
// window whose context shares objects with a hidden context window owned
// by the device.
//
// All methods must be called from the main goroutine.
type Device struct {
	gfx.FrameCycle

	opts     Options
	life     *gfx.Lifetime
	canvases gfx.CanvasSet[*Canvas]

	share *glfw.Window
	frame []*Canvas
}

var _ gfx.Device = (*Device)(nil)

// Create initializes GLFW, creates the shared context and loads the GL
// function pointers. Failures wrap gfx.ErrBackendUnavailable.
func Create(opts Options) (*Device, error) {
	if opts.MaxCanvases < 0 {
		return nil, fmt.Errorf("opengl: negative MaxCanvases %d", opts.MaxCanvases)
	}
	if glfwUsers == 0 {
		if err := glfw.Init(); err != nil {
			return nil, fmt.Errorf("opengl: glfw init: %w: %w", gfx.ErrBackendUnavailable, err)
		}
	}
	glfwUsers++

	share, err := createWindow(1, 1, "gfx", false, nil)
	if err != nil {
		releaseGLFW()
		return nil, fmt.Errorf("opengl: create context: %w: %w", gfx.ErrBackendUnavailable, err)
	}
	share.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		share.Destroy()
		releaseGLFW()
		return nil, fmt.Errorf("opengl: load GL: %w: %w", gfx.ErrBackendUnavailable, err)
	}

	d := &Device{
		opts:  opts,
		life:  gfx.NewLifetime(),
		share: share,
	}
	gfx.Logger().Info("opengl: device opened",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))
	return d, nil
}

func releaseGLFW() {
	glfwUsers--
	if glfwUsers == 0 {
		glfw.Terminate()
	}
}

// createWindow creates a GL 3.3 core window. GLFW reports a missing
// display as a panic from CreateWindow; it is returned as an error.
func createWindow(width, height int, title string, visible bool, share *glfw.Window) (w *glfw.Window, err error) {
	defer func() {
		if r := recover(); r != nil {
			w, err = nil, fmt.Errorf("glfw: %v", r)
		}
	}()
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfwBool(visible))
	return glfw.CreateWindow(max(width, 1), max(height, 1), title, nil, share)
}

func glfwBool(v bool) int {
	if v {
		return glfw.True
	}
	return glfw.False
}

// CreateCanvas opens a window. A canvas with an empty size gets a hidden
// 1x1 window and is never drawn.
func (d *Device) CreateCanvas(opts gfx.CanvasOptions) (gfx.Canvas, error) {
	if d.Closed() {
		return nil, gfx.ErrDeviceClosed
	}
	if d.opts.MaxCanvases > 0 && d.canvases.Len() >= d.opts.MaxCanvases {
		return nil, fmt.Errorf("opengl: %d canvases: %w", d.canvases.Len(), gfx.ErrCanvasLimit)
	}

	opts = opts.Normalize()
	empty := opts.Size.Empty()
	win, err := createWindow(int(opts.Size.Width), int(opts.Size.Height), opts.Title, false, d.share)
	if err != nil {
		return nil, fmt.Errorf("opengl: create window %q: %w", opts.Title, err)
	}
	win.MakeContextCurrent()
	if d.opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	if !empty && !d.opts.Hidden {
		win.SetPos(int(opts.Position.X), int(opts.Position.Y))
		win.Show()
	}

	c := &Canvas{
		CanvasBase: gfx.NewCanvasBase(opts, d.life),
		dev:        d,
		win:        win,
		empty:      empty,
	}
	d.canvases.Add(c)
	gfx.Logger().Info("opengl: canvas created", "title", opts.Title, "size", opts.Size)
	return c, nil
}

// BeginDraw clears every drawable canvas. It reports false when canvases
// exist but all of them have a zero-sized framebuffer, as when minimized.
func (d *Device) BeginDraw() (bool, error) {
	return d.Begin(func() (bool, error) {
		live := d.canvases.Snapshot()
		var frame []*Canvas
		for _, c := range live {
			if c.drawable() {
				frame = append(frame, c)
			}
		}
		if len(frame) == 0 && len(live) > 0 {
			return false, nil
		}
		bg := d.opts.ClearColor
		for _, c := range frame {
			w, h := c.win.GetFramebufferSize()
			c.win.MakeContextCurrent()
			gl.Viewport(0, 0, int32(w), int32(h))
			gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
			gl.Clear(gl.COLOR_BUFFER_BIT)
		}
		d.frame = frame
		return true, nil
	})
}

// EndDraw flushes every canvas's context and reports GL errors.
func (d *Device) EndDraw() error {
	return d.End(func() error {
		var errs []error
		for _, c := range d.frame {
			if c.win == nil {
				continue
			}
			c.win.MakeContextCurrent()
			gl.Flush()
			if code := gl.GetError(); code != gl.NO_ERROR {
				errs = append(errs, fmt.Errorf("opengl: canvas %q: GL error %#x", c.Options().Title, code))
			}
		}
		if err := errors.Join(errs...); err != nil {
			d.abortFrame()
			return err
		}
		return nil
	})
}

// Present swaps the buffers of every canvas in the frame.
func (d *Device) Present() error {
	return d.FrameCycle.Present(func() error {
		frame := d.frame
		d.frame = nil
		for _, c := range frame {
			if c.win != nil && !c.Closed() {
				c.win.SwapBuffers()
			}
		}
		d.retireClosed(frame)
		return nil
	})
}

func (d *Device) abortFrame() {
	frame := d.frame
	d.frame = nil
	d.retireClosed(frame)
}

// retireClosed destroys windows of canvases closed while in a frame.
func (d *Device) retireClosed(frame []*Canvas) {
	for _, c := range frame {
		if c.Closed() {
			c.release()
		}
	}
}

// inFrame reports whether c is part of the open or finished frame.
func (d *Device) inFrame(c *Canvas) bool {
	if d.State() == gfx.FrameIdle {
		return false
	}
	for _, f := range d.frame {
		if f == c {
			return true
		}
	}
	return false
}

// Canvases returns the live canvases in creation order.
func (d *Device) Canvases() []gfx.Canvas {
	return d.canvases.Canvases()
}

// Close destroys every window and the shared context. GLFW is terminated
// with the last device.
func (d *Device) Close() error {
	if !d.FrameCycle.Close(d.abortFrame) {
		return nil
	}
	d.life.End()
	for _, c := range d.canvases.Drain() {
		c.release()
	}
	glfw.DetachCurrentContext()
	d.share.Destroy()
	d.share = nil
	releaseGLFW()
	gfx.Logger().Info("opengl: device closed", "frames", d.Frames())
	return nil
}
