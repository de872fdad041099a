// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Options configures a wgpu device.
type Options struct {
	// API is the HAL backend to open. Nil selects one by Variant.
	API hal.Backend

	// Variant picks a registered HAL backend when API is nil.
	// gputypes.BackendEmpty selects the most capable registered backend
	// (Vulkan > Metal > DX12 > GL > software).
	Variant gputypes.Backend

	// Windows opens the native window behind each canvas. Nil means
	// Headless().
	Windows WindowSystem

	// Format is the surface texture format. TextureFormatUndefined selects
	// the first format the first canvas's surface supports, preferring
	// BGRA8Unorm.
	Format gputypes.TextureFormat

	// PresentMode falls back to Fifo when the surface does not support it.
	PresentMode gputypes.PresentMode

	// ClearColor is the color every canvas is cleared to at BeginDraw.
	ClearColor gputypes.Color

	// Backdrop is optional WGSL source with vs_main and fs_main entry
	// points. It is drawn as a three-vertex full-screen pass after the
	// clear. See GradientBackdrop.
	Backdrop string

	// MaxCanvases limits the number of live canvases. Zero means no limit.
	MaxCanvases int
}

// DefaultOptions returns Fifo presentation on headless windows with an
// opaque black clear.
func DefaultOptions() Options {
	return Options{
		Windows:     Headless(),
		PresentMode: gputypes.PresentModeFifo,
		ClearColor:  gputypes.Color{A: 1},
	}
}
