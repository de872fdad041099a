// Package gfx defines a small cross-backend graphics device abstraction.
//
// # Overview
//
// An application talks to a [Device] and one or more [Canvas] surfaces. The
// rendering technology behind them is chosen when the device is constructed
// and can be swapped without touching application code:
//
//	import (
//	    "github.com/gogpu/gfx"
//	    "github.com/gogpu/gfx/backend/software"
//	)
//
//	dev, err := software.New(software.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer dev.Close()
//
//	canvas, err := dev.CreateCanvas(gfx.CanvasOptions{
//	    Title: "Demo",
//	    Size:  gfx.Extent{Width: 800, Height: 600},
//	})
//
// # Frame Protocol
//
// Every frame follows BeginDraw → draw → EndDraw → Present, after which the
// driver calls Process on each canvas. BeginDraw may decline to open a frame
// (false, nil); the driver then skips the rest of the cycle and tries again
// on the next iteration. Calls made out of order are rejected with errors
// such as [ErrFrameNotOpen] and never change the device state.
//
// The protocol is implemented once, in [FrameCycle], and embedded by every
// backend.
//
// # Lifetimes
//
// A canvas never outlives its device. Closing a device ends the [Lifetime]
// shared with its canvases; Process on such a canvas returns
// [ErrDeviceClosed].
//
// # Backends
//
//   - backend/software: CPU double-buffered images, always available
//   - backend/wgpu: GPU surfaces through gogpu/wgpu HAL
//   - backend/opengl: OpenGL 3.3 core with GLFW windows
//
// Backends register themselves with package backend, which selects one by
// name or by priority.
//
// # Logging
//
// gfx is silent by default. Use [SetLogger] to route diagnostics to a
// [log/slog] logger.
package gfx
