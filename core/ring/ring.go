// File: core/ring/ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// SlotBuffer is a fixed-slot SPSC ring buffer with blocking, overwrite
// and non-blocking admission, and blocking, timed and non-blocking
// retrieval. The writer claims a slot by advancing the write cursor
// before its payload callback runs, so the reader arbitrates against the
// most recently claimed slot (see perform_read below).

package ring

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/momentics/hioload-ring/api"
)

// cursorSentinel marks a cursor that has not advanced yet. Incrementing
// it wraps to slot 0, so the first advance lands on the first slot.
const cursorSentinel = ^uint64(0)

// MaxReadDeferrals is the ceiling on consecutive deferred reads under the
// defer-up-to-ceiling policy. Once reached, one read is forced through
// regardless of arbitration so the reader cannot starve (for example when
// the writer has stalled). Exposed for tests.
const MaxReadDeferrals = 0xFFFF * 6

// Allocator sources the backing byte region for a SlotBuffer. pool
// provides a hugepage-backed implementation on Linux.
type Allocator interface {
	Alloc(n int) ([]byte, error)
	Free(buf []byte)
}

// Ensure compile-time interface compliance.
var _ api.SlotRing = (*SlotBuffer)(nil)

// SlotBuffer owns a contiguous byte region of itemSize*itemCount and two
// logical cursors. A single mutex guards the two wait conditions; the
// payload region itself is accessed without a lock during the copy, which
// is safe under the single-writer/single-reader contract because the slot
// address handed to a callback is exclusive to that call.
//
// The shared mutex serializes only the wait/notify phases of concurrent
// write and read calls; the bounded contention this adds was chosen over
// two independent mutexes to keep the wake ordering trivially correct.
type SlotBuffer struct {
	storage   []byte
	itemSize  uint64
	itemCount uint64

	occupancy   atomic.Uint64
	writeCursor atomic.Uint64
	readCursor  atomic.Uint64

	// Read-arbitration state.
	deferrals   atomic.Uint32
	alwaysDefer atomic.Bool

	mu       sync.Mutex
	notEmpty chan struct{}
	notFull  chan struct{}

	stats   *Stats
	release func([]byte)
}

// New creates a SlotBuffer with heap-backed storage.
func New(itemSize, itemCount int) (*SlotBuffer, error) {
	return NewWithAllocator(itemSize, itemCount, nil)
}

// NewWithAllocator creates a SlotBuffer whose storage is sourced from
// alloc. A nil allocator falls back to the Go heap.
func NewWithAllocator(itemSize, itemCount int, alloc Allocator) (*SlotBuffer, error) {
	if itemSize < 1 {
		return nil, api.ErrInvalidItemSize
	}
	if itemCount < 2 {
		return nil, api.ErrInvalidItemCount
	}
	b := &SlotBuffer{
		itemSize:  uint64(itemSize),
		itemCount: uint64(itemCount),
		notEmpty:  make(chan struct{}),
		notFull:   make(chan struct{}),
	}
	b.writeCursor.Store(cursorSentinel)
	b.readCursor.Store(cursorSentinel)
	b.alwaysDefer.Store(true)
	total := itemSize * itemCount
	if alloc == nil {
		b.storage = make([]byte, total)
	} else {
		buf, err := alloc.Alloc(total)
		if err != nil {
			return nil, err
		}
		b.storage = buf
		b.release = alloc.Free
	}
	return b, nil
}

// Close releases allocator-backed storage. The buffer must not be used
// afterwards. Heap-backed buffers need no Close.
func (b *SlotBuffer) Close() error {
	if b.release != nil {
		b.release(b.storage)
		b.release = nil
	}
	b.storage = nil
	return nil
}

// AttachStats registers a counter set updated by subsequent operations.
func (b *SlotBuffer) AttachStats(s *Stats) { b.stats = s }

// Capacity returns the maximum number of items the ring can hold.
func (b *SlotBuffer) Capacity() int { return int(b.itemCount) }

// ItemSize returns the fixed per-slot byte size.
func (b *SlotBuffer) ItemSize() int { return int(b.itemSize) }

// Size returns the current occupancy snapshot. A 0 or Capacity() result
// does not guarantee that an immediately following Read or Write will not
// block; concurrent activity on the other cursor can change occupancy
// between the check and the next call.
func (b *SlotBuffer) Size() int { return int(b.occupancy.Load()) }

// Empty reports whether the occupancy snapshot is zero. Advisory only.
func (b *SlotBuffer) Empty() bool { return b.occupancy.Load() == 0 }

// Full reports whether the occupancy snapshot equals Capacity. Advisory only.
func (b *SlotBuffer) Full() bool { return b.occupancy.Load() == b.itemCount }

// Write blocks the calling goroutine until the ring is not full, then
// fills one slot through fn. Selects the defer-up-to-ceiling arbitration
// policy for subsequent reads.
func (b *SlotBuffer) Write(fn api.WriteFn) {
	b.alwaysDefer.Store(false)
	b.mu.Lock()
	for b.Full() {
		ch := b.notFull
		b.mu.Unlock()
		<-ch
		b.mu.Lock()
	}
	b.mu.Unlock()
	b.performWrite(fn)
}

// WriteOverwrite never blocks. On a full ring the write cursor advances
// onto the oldest unread slot and its bytes are overwritten; the oldest
// logical item is silently lost. Selects the always-defer arbitration
// policy, because the slot being clobbered may be the exact slot the
// reader is about to consume.
func (b *SlotBuffer) WriteOverwrite(fn api.WriteFn) {
	b.alwaysDefer.Store(true)
	if b.stats != nil && b.Full() {
		b.stats.Overwrites.Add(1)
	}
	b.performWrite(fn)
}

// WriteNonblock fills one slot if the ring is not full and reports
// whether the item was admitted; on a full ring the item is dropped with
// no state change. Selects the defer-up-to-ceiling arbitration policy.
func (b *SlotBuffer) WriteNonblock(fn api.WriteFn) bool {
	b.alwaysDefer.Store(false)
	if b.Full() {
		if b.stats != nil {
			b.stats.Drops.Add(1)
		}
		return false
	}
	b.performWrite(fn)
	return true
}

// Read blocks until the ring is not empty, then attempts one read. The
// attempt may be deferred by arbitration without advancing the read
// cursor; the return value reports whether fn ran.
func (b *SlotBuffer) Read(fn api.ReadFn) bool {
	b.mu.Lock()
	for b.Empty() {
		ch := b.notEmpty
		b.mu.Unlock()
		<-ch
		b.mu.Lock()
	}
	b.mu.Unlock()
	return b.performRead(fn)
}

// ReadTimeout is Read with the wait bounded by d. It returns false with
// no state change if no item became readable in time.
func (b *SlotBuffer) ReadTimeout(fn api.ReadFn, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	b.mu.Lock()
	for b.Empty() {
		ch := b.notEmpty
		b.mu.Unlock()
		select {
		case <-ch:
		case <-timer.C:
			return false
		}
		b.mu.Lock()
	}
	b.mu.Unlock()
	return b.performRead(fn)
}

// ReadNonblock attempts one read without waiting. It returns false with
// no state change on an empty ring or a deferred attempt.
func (b *SlotBuffer) ReadNonblock(fn api.ReadFn) bool {
	if b.Empty() {
		return false
	}
	return b.performRead(fn)
}

// ResetWriteCursor returns the write cursor to its initial sentinel.
//
// Intended for tests and final-drain scenarios: the arbitration rule
// otherwise leaves the most recently written slot unread forever once the
// writer stops.
func (b *SlotBuffer) ResetWriteCursor() { b.writeCursor.Store(cursorSentinel) }

// ResetReadCursor returns the read cursor to its initial sentinel.
// Intended for tests restarting a scenario.
func (b *SlotBuffer) ResetReadCursor() { b.readCursor.Store(cursorSentinel) }

// performWrite claims the next slot, runs the payload callback on it,
// publishes occupancy and wakes waiting readers. The cursor advance
// happens before the callback: the slot is claimed first and the bytes
// land second, which is why perform_read must arbitrate.
func (b *SlotBuffer) performWrite(fn api.WriteFn) {
	idx := b.advance(&b.writeCursor)
	off := idx * b.itemSize
	fn(b.storage[off : off+b.itemSize : off+b.itemSize])
	b.push()
	if b.stats != nil {
		b.stats.Writes.Add(1)
	}
	b.wake(&b.notEmpty)
}

// performRead arbitrates, runs the payload callback on the claimed slot,
// publishes occupancy and wakes waiting writers.
//
// Arbitration: the writer publishes its cursor before the payload copy
// completes, so the slot the write cursor currently designates may hold
// bytes still in flight. If the slot this read would advance into is that
// slot, the read is deferred: unconditionally under always-defer, and up
// to MaxReadDeferrals consecutive times otherwise, after which one read
// is forced through to guarantee forward progress.
func (b *SlotBuffer) performRead(fn api.ReadFn) bool {
	next := (b.readCursor.Load() + 1) % b.itemCount
	ambiguous := next == b.writeCursor.Load()
	if ambiguous && (b.alwaysDefer.Load() || b.deferrals.Load() < MaxReadDeferrals) {
		b.deferrals.Add(1)
		if b.stats != nil {
			b.stats.Deferrals.Add(1)
		}
		return false
	}
	if ambiguous && b.stats != nil {
		b.stats.ForcedReads.Add(1)
	}
	b.deferrals.Store(0)

	idx := b.advance(&b.readCursor)
	off := idx * b.itemSize
	fn(b.storage[off : off+b.itemSize : off+b.itemSize])
	b.pop()
	if b.stats != nil {
		b.stats.Reads.Add(1)
	}
	b.wake(&b.notFull)
	return true
}

// advance increments a cursor modulo the item count and returns the new
// index from the same atomic operation. Callers must address the slot via
// the returned value, never via a separate load, so a concurrent advance
// on the other cursor cannot invalidate the address.
func (b *SlotBuffer) advance(cursor *atomic.Uint64) uint64 {
	for {
		cur := cursor.Load()
		next := (cur + 1) % b.itemCount
		if cursor.CompareAndSwap(cur, next) {
			return next
		}
	}
}

// push increments occupancy, clamped at capacity: in overwrite mode the
// logical item count stays at capacity even though the newest write has
// physically clobbered the oldest stored item.
func (b *SlotBuffer) push() {
	for {
		n := b.occupancy.Load()
		next := n + 1
		if next > b.itemCount {
			next = b.itemCount
		}
		if b.occupancy.CompareAndSwap(n, next) {
			return
		}
	}
}

// pop decrements occupancy, clamped at zero.
func (b *SlotBuffer) pop() {
	for {
		n := b.occupancy.Load()
		if n == 0 {
			return
		}
		if b.occupancy.CompareAndSwap(n, n-1) {
			return
		}
	}
}

// wake broadcasts one of the two wait conditions by closing its channel
// and installing a fresh one. Taking the mutex here orders the broadcast
// against waiters that observed the stale condition under the same lock,
// so a wakeup cannot be lost between their check and their wait.
func (b *SlotBuffer) wake(ch *chan struct{}) {
	b.mu.Lock()
	close(*ch)
	*ch = make(chan struct{})
	b.mu.Unlock()
}
