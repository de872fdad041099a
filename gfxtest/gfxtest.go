// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gfxtest checks that a gfx backend honors the device and canvas
// contract.
//
// Backend tests call Run with a constructor:
//
//	func TestConformance(t *testing.T) {
//		gfxtest.Run(t, func(t *testing.T) gfx.Device {
//			dev, err := software.New(software.DefaultOptions())
//			if err != nil {
//				t.Fatal(err)
//			}
//			return dev
//		})
//	}
//
// Run closes every device it opens.
package gfxtest

import (
	"errors"
	"testing"

	"github.com/gogpu/gfx"
)

// Opener returns a fresh device for one subtest.
type Opener func(t *testing.T) gfx.Device

// Cycles is the number of frames the multi-frame checks run.
const Cycles = 5

var testSize = gfx.Extent{Width: 64, Height: 48}

// Run executes the conformance subtests against devices from open.
func Run(t *testing.T, open Opener) {
	t.Helper()
	tests := []struct {
		name string
		fn   func(t *testing.T, dev gfx.Device)
	}{
		{"Smoke", testSmoke},
		{"Cycles", testCycles},
		{"OutOfOrderRejected", testOutOfOrder},
		{"BeginWhileOpen", testBeginWhileOpen},
		{"TwoCanvases", testTwoCanvases},
		{"CloseInvalidatesCanvases", testCloseInvalidates},
		{"CloseMidFrame", testCloseMidFrame},
		{"CloseIdempotent", testCloseIdempotent},
		{"OpsAfterClose", testOpsAfterClose},
		{"CanvasClose", testCanvasClose},
		{"ZeroSize", testZeroSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := open(t)
			if dev == nil {
				t.Fatal("opener returned nil device")
			}
			t.Cleanup(func() { _ = dev.Close() })
			tt.fn(t, dev)
		})
	}
}

// MustCanvas creates a canvas or fails the test.
func MustCanvas(t *testing.T, dev gfx.Device, opts gfx.CanvasOptions) gfx.Canvas {
	t.Helper()
	c, err := dev.CreateCanvas(opts)
	if err != nil {
		t.Fatalf("CreateCanvas(%+v) error = %v", opts, err)
	}
	if c == nil {
		t.Fatalf("CreateCanvas(%+v) returned nil canvas", opts)
	}
	return c
}

// Frame runs one full BeginDraw/EndDraw/Present cycle followed by Process
// on every canvas. It reports whether the frame was drawn.
func Frame(t *testing.T, dev gfx.Device) bool {
	t.Helper()
	ok, err := dev.BeginDraw()
	if err != nil {
		t.Fatalf("BeginDraw() error = %v", err)
	}
	if ok {
		if got := dev.State(); got != gfx.FrameOpen {
			t.Fatalf("State() after BeginDraw = %v, want FrameOpen", got)
		}
		if err := dev.EndDraw(); err != nil {
			t.Fatalf("EndDraw() error = %v", err)
		}
		if got := dev.State(); got != gfx.FrameClosed {
			t.Fatalf("State() after EndDraw = %v, want FrameClosed", got)
		}
		if err := dev.Present(); err != nil {
			t.Fatalf("Present() error = %v", err)
		}
	}
	if got := dev.State(); got != gfx.FrameIdle {
		t.Fatalf("State() after frame = %v, want Idle", got)
	}
	for _, c := range dev.Canvases() {
		if err := c.Process(); err != nil {
			t.Fatalf("Process() error = %v", err)
		}
	}
	return ok
}

func testSmoke(t *testing.T, dev gfx.Device) {
	c := MustCanvas(t, dev, gfx.CanvasOptions{Title: "Smoke", Size: testSize})
	if err := c.Process(); err != nil {
		t.Errorf("Process() error = %v", err)
	}
	if got := c.Options().Title; got != "Smoke" {
		t.Errorf("Options().Title = %q, want %q", got, "Smoke")
	}
	if got := c.Options().Size; got != testSize {
		t.Errorf("Options().Size = %v, want %v", got, testSize)
	}
	if got := dev.State(); got != gfx.FrameIdle {
		t.Errorf("State() = %v, want Idle", got)
	}
}

func testCycles(t *testing.T, dev gfx.Device) {
	MustCanvas(t, dev, gfx.CanvasOptions{Title: "Cycles", Size: testSize})
	drawn := 0
	for range Cycles {
		if Frame(t, dev) {
			drawn++
		}
	}
	if drawn == 0 {
		t.Errorf("no frame drawn in %d cycles", Cycles)
	}
}

func testOutOfOrder(t *testing.T, dev gfx.Device) {
	MustCanvas(t, dev, gfx.CanvasOptions{Title: "Order", Size: testSize})

	// The same call sequence must produce the same errors every time.
	for range 2 {
		if err := dev.EndDraw(); !errors.Is(err, gfx.ErrFrameNotOpen) {
			t.Errorf("EndDraw() without BeginDraw = %v, want ErrFrameNotOpen", err)
		}
		if err := dev.Present(); !errors.Is(err, gfx.ErrNoFrame) {
			t.Errorf("Present() without frame = %v, want ErrNoFrame", err)
		}
		if got := dev.State(); got != gfx.FrameIdle {
			t.Errorf("State() = %v, want Idle", got)
		}
	}

	openFrame(t, dev)
	if err := dev.Present(); !errors.Is(err, gfx.ErrFrameNotEnded) {
		t.Errorf("Present() before EndDraw = %v, want ErrFrameNotEnded", err)
	}
	if got := dev.State(); got != gfx.FrameOpen {
		t.Errorf("State() = %v, want FrameOpen", got)
	}
	if err := dev.EndDraw(); err != nil {
		t.Fatalf("EndDraw() error = %v", err)
	}
	if err := dev.EndDraw(); !errors.Is(err, gfx.ErrFrameNotOpen) {
		t.Errorf("EndDraw() twice = %v, want ErrFrameNotOpen", err)
	}
	if err := dev.Present(); err != nil {
		t.Errorf("Present() error = %v", err)
	}
}

func testBeginWhileOpen(t *testing.T, dev gfx.Device) {
	MustCanvas(t, dev, gfx.CanvasOptions{Title: "Reentry", Size: testSize})
	openFrame(t, dev)

	ok, err := dev.BeginDraw()
	if ok || !errors.Is(err, gfx.ErrFrameInProgress) {
		t.Errorf("BeginDraw() while open = %v, %v, want false, ErrFrameInProgress", ok, err)
	}
	if got := dev.State(); got != gfx.FrameOpen {
		t.Errorf("State() = %v, want FrameOpen", got)
	}

	if err := dev.EndDraw(); err != nil {
		t.Fatalf("EndDraw() error = %v", err)
	}
	ok, err = dev.BeginDraw()
	if ok || !errors.Is(err, gfx.ErrFrameInProgress) {
		t.Errorf("BeginDraw() before Present = %v, %v, want false, ErrFrameInProgress", ok, err)
	}
	if err := dev.Present(); err != nil {
		t.Errorf("Present() error = %v", err)
	}
}

func testTwoCanvases(t *testing.T, dev gfx.Device) {
	a := MustCanvas(t, dev, gfx.CanvasOptions{Title: "A", Size: testSize})
	b := MustCanvas(t, dev, gfx.CanvasOptions{Title: "B", Position: gfx.Point{X: 100}, Size: testSize})
	if a == b {
		t.Fatal("CreateCanvas returned the same canvas twice")
	}
	if n := len(dev.Canvases()); n != 2 {
		t.Fatalf("len(Canvases()) = %d, want 2", n)
	}
	Frame(t, dev)

	if err := a.Close(); err != nil {
		t.Fatalf("a.Close() error = %v", err)
	}
	if err := b.Process(); err != nil {
		t.Errorf("b.Process() after a.Close() = %v, want nil", err)
	}
	Frame(t, dev)
}

func testCloseInvalidates(t *testing.T, dev gfx.Device) {
	a := MustCanvas(t, dev, gfx.CanvasOptions{Title: "A", Size: testSize})
	b := MustCanvas(t, dev, gfx.CanvasOptions{Title: "B", Size: testSize})
	Frame(t, dev)

	if err := dev.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	for _, c := range []gfx.Canvas{a, b} {
		if err := c.Process(); !errors.Is(err, gfx.ErrDeviceClosed) {
			t.Errorf("Process() after device Close = %v, want ErrDeviceClosed", err)
		}
	}
	if n := len(dev.Canvases()); n != 0 {
		t.Errorf("len(Canvases()) after Close = %d, want 0", n)
	}
}

func testCloseMidFrame(t *testing.T, dev gfx.Device) {
	c := MustCanvas(t, dev, gfx.CanvasOptions{Title: "Mid", Size: testSize})
	openFrame(t, dev)
	if err := dev.EndDraw(); err != nil {
		t.Fatalf("EndDraw() error = %v", err)
	}
	if err := dev.Close(); err != nil {
		t.Fatalf("Close() mid-frame error = %v", err)
	}
	if err := c.Process(); !errors.Is(err, gfx.ErrDeviceClosed) {
		t.Errorf("Process() = %v, want ErrDeviceClosed", err)
	}
}

func testCloseIdempotent(t *testing.T, dev gfx.Device) {
	MustCanvas(t, dev, gfx.CanvasOptions{Title: "Twice", Size: testSize})
	openFrame(t, dev)
	for i := range 3 {
		if err := dev.Close(); err != nil {
			t.Errorf("Close() #%d error = %v", i+1, err)
		}
	}
}

func testOpsAfterClose(t *testing.T, dev gfx.Device) {
	c := MustCanvas(t, dev, gfx.CanvasOptions{Title: "After", Size: testSize})
	if err := dev.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := dev.CreateCanvas(gfx.CanvasOptions{Size: testSize}); !errors.Is(err, gfx.ErrDeviceClosed) {
		t.Errorf("CreateCanvas() after Close = %v, want ErrDeviceClosed", err)
	}
	if ok, err := dev.BeginDraw(); ok || !errors.Is(err, gfx.ErrDeviceClosed) {
		t.Errorf("BeginDraw() after Close = %v, %v, want false, ErrDeviceClosed", ok, err)
	}
	if err := dev.EndDraw(); !errors.Is(err, gfx.ErrDeviceClosed) {
		t.Errorf("EndDraw() after Close = %v, want ErrDeviceClosed", err)
	}
	if err := dev.Present(); !errors.Is(err, gfx.ErrDeviceClosed) {
		t.Errorf("Present() after Close = %v, want ErrDeviceClosed", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Canvas.Close() after device Close = %v, want nil", err)
	}
}

func testCanvasClose(t *testing.T, dev gfx.Device) {
	c := MustCanvas(t, dev, gfx.CanvasOptions{Title: "Closing", Size: testSize})
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := c.Process(); !errors.Is(err, gfx.ErrCanvasClosed) {
		t.Errorf("Process() after Close = %v, want ErrCanvasClosed", err)
	}
	for _, live := range dev.Canvases() {
		if live == c {
			t.Error("closed canvas still enumerated by Canvases()")
		}
	}
	// The device keeps working without canvases.
	Frame(t, dev)
}

func testZeroSize(t *testing.T, dev gfx.Device) {
	c := MustCanvas(t, dev, gfx.CanvasOptions{Title: "Zero"})
	if got := c.Options().Size; !got.Empty() {
		t.Errorf("Options().Size = %v, want empty", got)
	}
	for range 2 {
		Frame(t, dev)
	}
	if err := c.Process(); err != nil {
		t.Errorf("Process() on zero-size canvas = %v", err)
	}
}

// openFrame calls BeginDraw until a frame opens, processing canvases in
// between. The test is skipped if the backend declines every attempt.
func openFrame(t *testing.T, dev gfx.Device) {
	t.Helper()
	for range Cycles {
		ok, err := dev.BeginDraw()
		if err != nil {
			t.Fatalf("BeginDraw() error = %v", err)
		}
		if ok {
			return
		}
		for _, c := range dev.Canvases() {
			_ = c.Process()
		}
	}
	t.Skip("backend declined every frame")
}
