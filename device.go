// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

// Device is one active connection to a rendering backend.
//
// A Device creates canvases and arbitrates the frame protocol:
//
//	ok, err := dev.BeginDraw()
//	if err != nil {
//	    return err // protocol violation or closed device
//	}
//	if ok {
//	    // draw
//	    if err := dev.EndDraw(); err != nil {
//	        return err
//	    }
//	    if err := dev.Present(); err != nil {
//	        return err
//	    }
//	}
//	for _, c := range dev.Canvases() {
//	    if err := c.Process(); err != nil {
//	        return err
//	    }
//	}
//
// The device moves Idle → FrameOpen (BeginDraw) → FrameClosed (EndDraw) →
// Idle (Present). Calls made out of this order are rejected with an error and
// leave the state unchanged. Backends implement this by embedding FrameCycle,
// so every backend behaves the same from the caller's point of view.
//
// Device is NOT safe for concurrent use. The device and its canvases belong
// to the driver's thread.
type Device interface {
	// CreateCanvas creates a new surface matching opts. Each call creates an
	// independent canvas. A backend that cannot create more surfaces returns
	// an error wrapping ErrCanvasLimit.
	CreateCanvas(opts CanvasOptions) (Canvas, error)

	// BeginDraw opens a frame. It reports false with a nil error when the
	// backend could not open a frame this time (device lost, resize in
	// progress); the caller must skip drawing, EndDraw and Present and retry
	// on the next loop iteration. The state stays Idle in that case.
	//
	// BeginDraw while a frame is open or pending Present returns
	// ErrFrameInProgress and leaves the state unchanged.
	BeginDraw() (bool, error)

	// EndDraw finishes command recording for the open frame. It does not
	// make the frame visible. Without an open frame it returns
	// ErrFrameNotOpen.
	EndDraw() error

	// Present makes the finished frame visible and returns the device to
	// Idle. Without a finished frame it returns ErrNoFrame or
	// ErrFrameNotEnded.
	Present() error

	// State returns the current frame phase.
	State() FrameState

	// Canvases returns the live canvases in creation order.
	Canvases() []Canvas

	// Close releases the backend context and invalidates every canvas the
	// device created. Close is safe in any frame state and idempotent.
	Close() error
}
