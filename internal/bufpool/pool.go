// Package bufpool recycles *image.RGBA pixel buffers by size.
package bufpool

import (
	"image"
	"sync"
)

// Pool is a thread-safe pool of *image.RGBA buffers grouped by size.
//
// Buffers keep their bounds origin at (0, 0).
type Pool struct {
	mu      sync.Mutex
	buckets map[image.Point][]*image.RGBA
	maxSize int // max buffers per bucket
}

// New creates a pool that retains at most maxPerBucket buffers of each
// size. Zero or negative means unlimited.
func New(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[image.Point][]*image.RGBA),
		maxSize: maxPerBucket,
	}
}

// Get returns a zeroed buffer of width×height pixels, reusing a pooled
// one when available.
func (p *Pool) Get(width, height int) *image.RGBA {
	key := image.Pt(max(width, 0), max(height, 0))

	p.mu.Lock()
	bucket := p.buckets[key]
	if n := len(bucket); n > 0 {
		buf := bucket[n-1]
		p.buckets[key] = bucket[:n-1]
		p.mu.Unlock()
		clear(buf.Pix)
		return buf
	}
	p.mu.Unlock()

	return image.NewRGBA(image.Rectangle{Max: key})
}

// Put returns buf to the pool. Nil buffers and buffers beyond the bucket
// limit are dropped.
func (p *Pool) Put(buf *image.RGBA) {
	if buf == nil {
		return
	}
	key := buf.Bounds().Size()

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, buf)
}

// Len returns the number of pooled buffers of all sizes.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, bucket := range p.buckets {
		n += len(bucket)
	}
	return n
}
