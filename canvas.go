// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

// Canvas is one drawable surface (a window or an offscreen target) created by
// a Device.
//
// A canvas is Live from the moment CreateCanvas returns it until either the
// driver closes it or its device is closed. Ownership is shared: the device
// keeps every live canvas for enumeration and teardown, the driver keeps the
// returned value for as long as it renders to it.
//
// Canvas methods must be called from the thread that drives the owning
// device.
type Canvas interface {
	// Process performs the per-frame surface housekeeping the backend needs,
	// such as pumping window events or applying a pending resize.
	// It is called once per frame, after Present.
	//
	// Process returns ErrDeviceClosed once the owning device is closed and
	// ErrCanvasClosed once the canvas itself is closed. Backend-fatal
	// failures (surface destroyed behind the backend's back) are returned
	// wrapped, and every later call returns the same error.
	Process() error

	// Options returns the normalized options the canvas was created with.
	Options() CanvasOptions

	// Close releases the surface and removes the canvas from its device.
	// Close is idempotent.
	Close() error
}
