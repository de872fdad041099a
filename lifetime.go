// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import "sync/atomic"

// Lifetime is the liveness token a device shares with its canvases.
// Ending it marks every canvas holding it as no longer Live.
type Lifetime struct {
	ended atomic.Bool
}

// NewLifetime returns a live token.
func NewLifetime() *Lifetime {
	return &Lifetime{}
}

// Alive reports whether End has not been called.
func (l *Lifetime) Alive() bool {
	return !l.ended.Load()
}

// End marks the token dead. It is idempotent.
func (l *Lifetime) End() {
	l.ended.Store(true)
}

// CanvasBase holds the state every backend canvas needs to implement the
// Live check. Backends embed it by value.
type CanvasBase struct {
	opts   CanvasOptions
	owner  *Lifetime
	closed bool
	fatal  error
}

// NewCanvasBase returns the base state for a canvas created with opts by the
// device that owns owner. opts is stored normalized.
func NewCanvasBase(opts CanvasOptions, owner *Lifetime) CanvasBase {
	return CanvasBase{opts: opts.Normalize(), owner: owner}
}

// Options returns the normalized creation options.
func (c *CanvasBase) Options() CanvasOptions {
	return c.opts
}

// Check returns nil while the canvas is Live. Otherwise it returns
// ErrDeviceClosed, ErrCanvasClosed or the recorded fatal error, in that
// order of precedence.
func (c *CanvasBase) Check() error {
	if c.owner != nil && !c.owner.Alive() {
		return ErrDeviceClosed
	}
	if c.closed {
		return ErrCanvasClosed
	}
	return c.fatal
}

// Fail records a backend-fatal error. Only the first error is kept.
func (c *CanvasBase) Fail(err error) {
	if c.fatal == nil && err != nil {
		c.fatal = err
		Logger().Error("gfx: canvas failed", "title", c.opts.Title, "error", err)
	}
}

// MarkClosed flags the canvas closed and reports whether it was open.
func (c *CanvasBase) MarkClosed() bool {
	if c.closed {
		return false
	}
	c.closed = true
	return true
}

// Closed reports whether MarkClosed was called.
func (c *CanvasBase) Closed() bool {
	return c.closed
}

// CanvasSet keeps the live canvases of a device in creation order.
// The zero value is an empty set.
type CanvasSet[C interface {
	Canvas
	comparable
}] struct {
	items []C
}

// Add appends c.
func (s *CanvasSet[C]) Add(c C) {
	s.items = append(s.items, c)
}

// Remove deletes c and reports whether it was present.
func (s *CanvasSet[C]) Remove(c C) bool {
	for i, item := range s.items {
		if item == c {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of canvases.
func (s *CanvasSet[C]) Len() int {
	return len(s.items)
}

// Each calls fn for every canvas in creation order.
func (s *CanvasSet[C]) Each(fn func(C)) {
	for _, item := range s.items {
		fn(item)
	}
}

// Snapshot returns a copy of the canvases.
func (s *CanvasSet[C]) Snapshot() []C {
	out := make([]C, len(s.items))
	copy(out, s.items)
	return out
}

// Canvases returns the canvases as the interface type.
func (s *CanvasSet[C]) Canvases() []Canvas {
	out := make([]Canvas, len(s.items))
	for i, item := range s.items {
		out[i] = item
	}
	return out
}

// Drain empties the set and returns its former contents.
func (s *CanvasSet[C]) Drain() []C {
	out := s.items
	s.items = nil
	return out
}
