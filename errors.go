// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import "errors"

// Errors shared by every backend. Backends wrap them with additional context,
// so callers should match with errors.Is.
var (
	// ErrDeviceClosed is returned by any operation on a closed device and by
	// Process on canvases that outlived their device.
	ErrDeviceClosed = errors.New("gfx: device is closed")

	// ErrCanvasClosed is returned by Process after the canvas was closed.
	ErrCanvasClosed = errors.New("gfx: canvas is closed")

	// ErrFrameInProgress is returned by BeginDraw when a frame is already open
	// or still waiting for Present.
	ErrFrameInProgress = errors.New("gfx: frame already in progress")

	// ErrFrameNotOpen is returned by EndDraw without a successful BeginDraw.
	ErrFrameNotOpen = errors.New("gfx: no open frame")

	// ErrFrameNotEnded is returned by Present while the frame is still open.
	ErrFrameNotEnded = errors.New("gfx: frame not ended")

	// ErrNoFrame is returned by Present when there is no finished frame.
	ErrNoFrame = errors.New("gfx: no frame to present")

	// ErrCanvasLimit is returned by CreateCanvas when the backend cannot
	// create any more surfaces.
	ErrCanvasLimit = errors.New("gfx: canvas limit reached")

	// ErrBackendUnavailable is returned when a backend cannot be initialized
	// on this system.
	ErrBackendUnavailable = errors.New("gfx: backend not available")

	// ErrUnknownBackend is returned when no backend is registered under the
	// requested name.
	ErrUnknownBackend = errors.New("gfx: unknown backend")
)
