// File: pool/framepool.go
// Author: momentics <momentics@gmail.com>
//
// Fixed-size frame pool over sync.Pool. All frames handed out have
// exactly the configured size.

package pool

import "sync"

// FramePool recycles []byte payloads of a single fixed size.
type FramePool struct {
	pool *sync.Pool
	size int
}

// NewFramePool creates a pool of size-byte frames.
func NewFramePool(size int) *FramePool {
	return &FramePool{
		pool: &sync.Pool{New: func() any { return make([]byte, size) }},
		size: size,
	}
}

// FrameSize returns the fixed frame size.
func (p *FramePool) FrameSize() int { return p.size }

// Get returns a frame from the pool.
func (p *FramePool) Get() []byte {
	return p.pool.Get().([]byte)
}

// Put returns a frame to the pool. Frames of the wrong size are dropped;
// the GC handles them.
func (p *FramePool) Put(frame []byte) {
	if len(frame) != p.size {
		return
	}
	p.pool.Put(frame)
}
