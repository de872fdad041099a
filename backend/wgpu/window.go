// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"sync"

	"github.com/gogpu/gfx"
)

// WindowSystem opens the native windows surfaces are created for.
type WindowSystem interface {
	// Open creates a window matching opts. A zero opts.Size is legal.
	Open(opts gfx.CanvasOptions) (Window, error)
}

// Window is one native window.
type Window interface {
	// Handles returns the platform display and window handles passed to
	// hal.Instance.CreateSurface.
	Handles() (display, window uintptr)

	// Poll processes pending window events. An error marks the canvas dead.
	Poll() error

	// Size returns the drawable size in physical pixels.
	Size() (width, height int)

	// Scale returns the ratio of physical pixels to logical points.
	Scale() float64

	// Close destroys the window.
	Close()
}

// ErrWindowClosed is returned by HeadlessWindow.Poll after Close.
var ErrWindowClosed = errors.New("wgpu: window closed")

// Headless returns a window system whose windows have null handles and a
// size that only changes through HeadlessWindow.SetSize. It suits HAL
// backends that need no real window, such as noop and software.
func Headless() WindowSystem {
	return headless{}
}

type headless struct{}

func (headless) Open(opts gfx.CanvasOptions) (Window, error) {
	return &HeadlessWindow{
		width:  int(opts.Size.Width),
		height: int(opts.Size.Height),
	}, nil
}

// HeadlessWindow is the Window created by Headless.
type HeadlessWindow struct {
	mu     sync.Mutex
	width  int
	height int
	closed bool
}

// SetSize changes the size reported to the canvas. It takes effect at the
// canvas's next Process, like a resize event.
func (w *HeadlessWindow) SetSize(width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.width, w.height = width, height
}

// Handles returns null handles.
func (w *HeadlessWindow) Handles() (display, window uintptr) { return 0, 0 }

// Poll fails once the window is closed.
func (w *HeadlessWindow) Poll() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWindowClosed
	}
	return nil
}

// Size returns the size set at Open or by SetSize.
func (w *HeadlessWindow) Size() (width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

// Scale is always 1.
func (w *HeadlessWindow) Scale() float64 { return 1 }

// Close marks the window closed.
func (w *HeadlessWindow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
}
