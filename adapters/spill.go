// File: adapters/spill.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
// Description:
//   Adapter wrapping an api.SlotRing with an unbounded overflow queue.
//   A non-blocking write that would be dropped is parked in the overflow
//   instead, and parked items are re-fed into the ring ahead of newer
//   writes, preserving FIFO order.
//
// Package adapters provides glue code between the core API contracts
// and deployment-specific policies.

package adapters

import (
	"time"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-ring/api"
	"github.com/momentics/hioload-ring/pool"
)

// Ensure compile-time interface compliance.
var _ api.SlotRing = (*SpillRing)(nil)

// SpillRing trades the drop-if-full policy for unbounded memory growth:
// nothing is lost, but a consumer that never catches up grows the
// overflow without limit. The write side is serialized by a mutex-free
// single-writer contract, same as the underlying ring.
type SpillRing struct {
	inner    api.SlotRing
	overflow *queue.Queue
	frames   *pool.FramePool
}

// NewSpillRing wraps inner with an overflow queue.
func NewSpillRing(inner api.SlotRing) *SpillRing {
	return &SpillRing{
		inner:    inner,
		overflow: queue.New(),
		frames:   pool.NewFramePool(inner.ItemSize()),
	}
}

// Overflow returns the number of parked items.
func (s *SpillRing) Overflow() int { return s.overflow.Length() }

// Flush re-feeds parked items into the ring from the writer side. Call
// it when the producer has gone idle but parked items remain; it is
// subject to the same single-writer contract as the write methods.
func (s *SpillRing) Flush() { s.drain() }

// Capacity returns the inner ring's capacity.
func (s *SpillRing) Capacity() int { return s.inner.Capacity() }

// ItemSize returns the inner ring's item size.
func (s *SpillRing) ItemSize() int { return s.inner.ItemSize() }

// Size returns the inner occupancy plus parked items.
func (s *SpillRing) Size() int { return s.inner.Size() + s.overflow.Length() }

// Empty reports whether neither the ring nor the overflow holds items.
func (s *SpillRing) Empty() bool { return s.Size() == 0 }

// Full always reports false: the overflow admits unconditionally.
func (s *SpillRing) Full() bool { return false }

// Write admits unconditionally; with parked items pending it spills to
// keep order, otherwise it delegates to the inner blocking write.
func (s *SpillRing) Write(fn api.WriteFn) {
	s.drain()
	if s.overflow.Length() > 0 {
		s.park(fn)
		return
	}
	s.inner.Write(fn)
}

// WriteOverwrite delegates to the inner ring after re-feeding parked
// items; overwrite deployments accept loss, so nothing spills here.
func (s *SpillRing) WriteOverwrite(fn api.WriteFn) {
	s.drain()
	s.inner.WriteOverwrite(fn)
}

// WriteNonblock admits unconditionally: items the inner ring rejects are
// parked in the overflow. Always returns true.
func (s *SpillRing) WriteNonblock(fn api.WriteFn) bool {
	s.drain()
	if s.overflow.Length() == 0 && s.inner.WriteNonblock(fn) {
		return true
	}
	s.park(fn)
	return true
}

// Read delegates to the inner ring.
func (s *SpillRing) Read(fn api.ReadFn) bool { return s.inner.Read(fn) }

// ReadTimeout delegates to the inner ring.
func (s *SpillRing) ReadTimeout(fn api.ReadFn, d time.Duration) bool {
	return s.inner.ReadTimeout(fn, d)
}

// ReadNonblock delegates to the inner ring.
func (s *SpillRing) ReadNonblock(fn api.ReadFn) bool { return s.inner.ReadNonblock(fn) }

// park stages the payload in a pooled frame and queues it.
func (s *SpillRing) park(fn api.WriteFn) {
	frame := s.frames.Get()
	fn(frame)
	s.overflow.Add(frame)
}

// drain re-feeds parked items into the inner ring, oldest first, until
// the ring refuses one.
func (s *SpillRing) drain() {
	for s.overflow.Length() > 0 {
		frame := s.overflow.Peek().([]byte)
		if !s.inner.WriteNonblock(func(slot []byte) { copy(slot, frame) }) {
			return
		}
		s.overflow.Remove()
		s.frames.Put(frame)
	}
}
