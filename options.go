// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Point is a position in screen coordinates.
type Point struct {
	X, Y uint32
}

// Extent is a width×height size in pixels.
type Extent struct {
	Width, Height uint32
}

// Empty reports whether either dimension is zero.
func (e Extent) Empty() bool {
	return e.Width == 0 || e.Height == 0
}

// String returns the extent formatted as "WxH".
func (e Extent) String() string {
	return fmt.Sprintf("%dx%d", e.Width, e.Height)
}

// DefaultCanvasSize is a conventional window size for demos and tools.
// Backends never substitute it for a zero size.
var DefaultCanvasSize = Extent{Width: 800, Height: 600}

// CanvasOptions describes a surface requested from Device.CreateCanvas.
//
// Title is advisory: offscreen backends may only record it. A zero Size is
// legal input; each backend documents how it handles it.
type CanvasOptions struct {
	Title    string
	Position Point
	Size     Extent
}

// Normalize returns a copy of o with the title converted to Unicode NFC and
// stripped of control characters. Backends store normalized options so the
// title reported by Canvas.Options matches what the window system received.
func (o CanvasOptions) Normalize() CanvasOptions {
	title := norm.NFC.String(o.Title)
	o.Title = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, title)
	return o
}
