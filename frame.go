// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import "fmt"

// FrameState is the phase of a device's frame cycle.
type FrameState uint8

const (
	// FrameIdle means no frame is open. It is the initial state and the
	// state after every Present.
	FrameIdle FrameState = iota

	// FrameOpen means BeginDraw succeeded and drawing may be recorded.
	FrameOpen

	// FrameClosed means EndDraw finished the frame and it awaits Present.
	FrameClosed
)

// String returns the state name.
func (s FrameState) String() string {
	switch s {
	case FrameIdle:
		return "Idle"
	case FrameOpen:
		return "FrameOpen"
	case FrameClosed:
		return "FrameClosed"
	default:
		return fmt.Sprintf("FrameState(%d)", s)
	}
}

// FrameCycle is the frame state machine shared by all backends.
//
// A backend embeds a FrameCycle and passes its own work as hooks; FrameCycle
// validates the transition before calling the hook and decides the resulting
// state, so ordering rules cannot drift between backends.
//
// The zero value is an idle, open-for-business cycle.
type FrameCycle struct {
	state   FrameState
	closed  bool
	frames  uint64
	skipped uint64
}

// State returns the current phase.
func (f *FrameCycle) State() FrameState {
	return f.state
}

// Closed reports whether Close was called.
func (f *FrameCycle) Closed() bool {
	return f.closed
}

// Frames returns the number of frames presented successfully.
func (f *FrameCycle) Frames() uint64 {
	return f.frames
}

// Skipped returns the number of BeginDraw calls the backend declined.
func (f *FrameCycle) Skipped() uint64 {
	return f.skipped
}

// Begin validates Idle → FrameOpen and calls open.
//
// If open reports false or fails, the cycle stays Idle. A nil open always
// succeeds.
func (f *FrameCycle) Begin(open func() (bool, error)) (bool, error) {
	if f.closed {
		return false, ErrDeviceClosed
	}
	if f.state != FrameIdle {
		Logger().Warn("gfx: BeginDraw rejected", "state", f.state)
		return false, fmt.Errorf("%w (state %s)", ErrFrameInProgress, f.state)
	}
	if open != nil {
		ok, err := open()
		if err != nil {
			return false, err
		}
		if !ok {
			f.skipped++
			Logger().Debug("gfx: frame skipped", "skipped", f.skipped)
			return false, nil
		}
	}
	f.state = FrameOpen
	return true, nil
}

// End validates FrameOpen → FrameClosed and calls finish.
//
// If finish fails the frame is abandoned: the cycle returns to Idle and the
// error is returned.
func (f *FrameCycle) End(finish func() error) error {
	if f.closed {
		return ErrDeviceClosed
	}
	if f.state != FrameOpen {
		Logger().Warn("gfx: EndDraw rejected", "state", f.state)
		return fmt.Errorf("%w (state %s)", ErrFrameNotOpen, f.state)
	}
	if finish != nil {
		if err := finish(); err != nil {
			f.state = FrameIdle
			return err
		}
	}
	f.state = FrameClosed
	return nil
}

// Present validates FrameClosed → Idle and calls present.
//
// The cycle is Idle afterwards even if present fails; the frame is then not
// counted.
func (f *FrameCycle) Present(present func() error) error {
	if f.closed {
		return ErrDeviceClosed
	}
	switch f.state {
	case FrameIdle:
		Logger().Warn("gfx: Present rejected", "state", f.state)
		return ErrNoFrame
	case FrameOpen:
		Logger().Warn("gfx: Present rejected", "state", f.state)
		return ErrFrameNotEnded
	}
	f.state = FrameIdle
	if present != nil {
		if err := present(); err != nil {
			return err
		}
	}
	f.frames++
	return nil
}

// Close marks the cycle closed. If a frame was open or pending Present, abort
// is called first so the backend can discard recorded work.
// Close reports whether this call closed the cycle.
func (f *FrameCycle) Close(abort func()) bool {
	if f.closed {
		return false
	}
	if f.state != FrameIdle && abort != nil {
		abort()
	}
	f.state = FrameIdle
	f.closed = true
	return true
}
