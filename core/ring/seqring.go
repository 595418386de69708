// File: core/ring/seqring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// SeqRing is the write-then-publish counterpart of SlotBuffer: per-slot
// sequence numbers are published only after the payload copy completes,
// so a reader can never observe a slot whose bytes are still in flight.
// There is no arbitration window, no deferral ceiling and no cursor reset
// requirement; backpressure is pure occupancy.

package ring

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/momentics/hioload-ring/api"
)

// Ensure compile-time interface compliance.
var _ api.SlotRing = (*SeqRing)(nil)

// SeqRing is a fixed-slot SPSC ring with sequence-based slot handoff.
// Cursors are padded onto separate cache lines to avoid false sharing.
//
// The tail cursor is owned exclusively by the producer. The head cursor
// is CAS-advanced: WriteOverwrite lets the producer retire the oldest
// unread slot, so the consumer and the producer may contend for it.
type SeqRing struct {
	head uint64
	_    [56]byte // Padding for hot/cold separation
	tail uint64
	_    [56]byte // Padding

	mask     uint64
	step     uint64
	itemSize uint64
	seq      []atomic.Uint64
	data     []byte

	mu       sync.Mutex
	notEmpty chan struct{}
	notFull  chan struct{}

	stats *Stats
}

// NewSeq creates a SeqRing holding itemCount slots of itemSize bytes.
// The slot count is rounded up to the next power of two for mask-based
// indexing.
func NewSeq(itemSize, itemCount int) (*SeqRing, error) {
	if itemSize < 1 {
		return nil, api.ErrInvalidItemSize
	}
	if itemCount < 2 {
		return nil, api.ErrInvalidItemCount
	}
	size := uint64(itemCount)
	if size&(size-1) != 0 {
		n := size - 1
		n |= n >> 1
		n |= n >> 2
		n |= n >> 4
		n |= n >> 8
		n |= n >> 16
		n |= n >> 32
		size = n + 1
	}
	r := &SeqRing{
		mask:     size - 1,
		step:     size,
		itemSize: uint64(itemSize),
		seq:      make([]atomic.Uint64, size),
		data:     make([]byte, size*uint64(itemSize)),
		notEmpty: make(chan struct{}),
		notFull:  make(chan struct{}),
	}
	for i := range r.seq {
		r.seq[i].Store(uint64(i))
	}
	return r, nil
}

// AttachStats registers a counter set updated by subsequent operations.
func (r *SeqRing) AttachStats(s *Stats) { r.stats = s }

// Capacity returns the slot count (power of two).
func (r *SeqRing) Capacity() int { return len(r.seq) }

// ItemSize returns the fixed per-slot byte size.
func (r *SeqRing) ItemSize() int { return int(r.itemSize) }

// Size returns the occupancy snapshot. Advisory only.
func (r *SeqRing) Size() int {
	head := atomic.LoadUint64(&r.head)
	tail := atomic.LoadUint64(&r.tail)
	return int(tail - head)
}

// Empty reports whether the occupancy snapshot is zero. Advisory only.
func (r *SeqRing) Empty() bool { return r.Size() == 0 }

// Full reports whether the occupancy snapshot equals Capacity. Advisory only.
func (r *SeqRing) Full() bool { return r.Size() == len(r.seq) }

// WriteNonblock fills the next slot if one is free and reports whether
// the item was admitted. The slot's sequence number is published only
// after fn returns, so the payload is complete before it becomes
// readable.
func (r *SeqRing) WriteNonblock(fn api.WriteFn) bool {
	t := atomic.LoadUint64(&r.tail)
	s := &r.seq[t&r.mask]
	if s.Load() != t {
		if r.stats != nil {
			r.stats.Drops.Add(1)
		}
		return false
	}
	off := (t & r.mask) * r.itemSize
	fn(r.data[off : off+r.itemSize : off+r.itemSize])
	s.Store(t + 1)
	atomic.StoreUint64(&r.tail, t+1)
	if r.stats != nil {
		r.stats.Writes.Add(1)
	}
	r.wakeCond(&r.notEmpty)
	return true
}

// Write blocks until a slot is free, then fills it.
func (r *SeqRing) Write(fn api.WriteFn) {
	for {
		if r.writeNoDropStat(fn) {
			return
		}
		r.mu.Lock()
		ch := r.notFull
		r.mu.Unlock()
		if r.writeNoDropStat(fn) {
			return
		}
		<-ch
	}
}

// WriteOverwrite never blocks: when the ring is full the oldest unread
// slot is retired and its item silently lost, then the write proceeds.
func (r *SeqRing) WriteOverwrite(fn api.WriteFn) {
	for {
		if r.writeNoDropStat(fn) {
			return
		}
		r.discardOldest()
	}
}

// Read blocks until an item is readable, then consumes it. Always
// returns true; no arbitration can defer a SeqRing read.
func (r *SeqRing) Read(fn api.ReadFn) bool {
	for {
		if r.ReadNonblock(fn) {
			return true
		}
		r.mu.Lock()
		ch := r.notEmpty
		r.mu.Unlock()
		if r.ReadNonblock(fn) {
			return true
		}
		<-ch
	}
}

// ReadTimeout is Read with the wait bounded by d. It returns false with
// no state change if no item became readable in time.
func (r *SeqRing) ReadTimeout(fn api.ReadFn, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	for {
		if r.ReadNonblock(fn) {
			return true
		}
		r.mu.Lock()
		ch := r.notEmpty
		r.mu.Unlock()
		if r.ReadNonblock(fn) {
			return true
		}
		select {
		case <-ch:
		case <-timer.C:
			return false
		}
	}
}

// ReadNonblock consumes the next readable slot, if any. The slot is
// claimed by a CAS on the head cursor because an overwriting producer
// may retire it concurrently.
func (r *SeqRing) ReadNonblock(fn api.ReadFn) bool {
	for {
		h := atomic.LoadUint64(&r.head)
		s := &r.seq[h&r.mask]
		if s.Load() != h+1 {
			return false
		}
		if !atomic.CompareAndSwapUint64(&r.head, h, h+1) {
			continue // lost the slot to an overwrite retirement
		}
		off := (h & r.mask) * r.itemSize
		fn(r.data[off : off+r.itemSize : off+r.itemSize])
		s.Store(h + r.step)
		if r.stats != nil {
			r.stats.Reads.Add(1)
		}
		r.wakeCond(&r.notFull)
		return true
	}
}

// writeNoDropStat is WriteNonblock without the drop counter, for callers
// that retry rather than drop.
func (r *SeqRing) writeNoDropStat(fn api.WriteFn) bool {
	t := atomic.LoadUint64(&r.tail)
	s := &r.seq[t&r.mask]
	if s.Load() != t {
		return false
	}
	off := (t & r.mask) * r.itemSize
	fn(r.data[off : off+r.itemSize : off+r.itemSize])
	s.Store(t + 1)
	atomic.StoreUint64(&r.tail, t+1)
	if r.stats != nil {
		r.stats.Writes.Add(1)
	}
	r.wakeCond(&r.notEmpty)
	return true
}

// discardOldest retires the oldest readable slot from the producer side.
// A failed CAS means the consumer took it first, which frees space just
// as well.
func (r *SeqRing) discardOldest() {
	h := atomic.LoadUint64(&r.head)
	s := &r.seq[h&r.mask]
	if s.Load() != h+1 {
		return
	}
	if atomic.CompareAndSwapUint64(&r.head, h, h+1) {
		s.Store(h + r.step)
		if r.stats != nil {
			r.stats.Overwrites.Add(1)
		}
		r.wakeCond(&r.notFull)
	}
}

// wakeCond broadcasts a wait condition; see SlotBuffer.wake.
func (r *SeqRing) wakeCond(ch *chan struct{}) {
	r.mu.Lock()
	close(*ch)
	*ch = make(chan struct{})
	r.mu.Unlock()
}
