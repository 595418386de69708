// File: api/ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Slot ring contract for single-producer/single-consumer transfer of
// fixed-size items between OS threads.

package api

import "time"

// WriteFn fills one slot. The slice is exactly the ring's item size;
// the callback must write only within it, must not retain it, must not
// block and must not panic.
type WriteFn func(slot []byte)

// ReadFn consumes one slot. The slice is exactly the ring's item size
// and must be treated as read-only; it is invalid after the callback
// returns.
type ReadFn func(slot []byte)

// SlotRing is a fixed-capacity, fixed-item-size circular buffer shared
// between one producer thread and one consumer thread.
//
// Size, Empty and Full are advisory snapshots: concurrent activity on the
// other cursor can change occupancy between the check and the next call,
// so they are hints, never preconditions that eliminate blocking.
type SlotRing interface {
	// Capacity returns the fixed item count.
	Capacity() int
	// ItemSize returns the fixed per-slot byte size.
	ItemSize() int
	// Size returns the current occupancy snapshot.
	Size() int
	// Empty reports whether the occupancy snapshot is zero.
	Empty() bool
	// Full reports whether the occupancy snapshot equals Capacity.
	Full() bool

	// Write blocks until space is available, then fills one slot.
	Write(fn WriteFn)
	// WriteOverwrite never blocks; on a full ring it clobbers the oldest
	// unread item. Loss is silent: callers track it externally if needed.
	WriteOverwrite(fn WriteFn)
	// WriteNonblock fills one slot if space is available and reports
	// whether the item was admitted; on a full ring it drops the item.
	WriteNonblock(fn WriteFn) bool

	// Read blocks until data is available, then attempts one read.
	// The attempt may still be skipped by the ring's read-arbitration
	// policy; the return value reports whether the callback ran.
	Read(fn ReadFn) bool
	// ReadTimeout is Read with a bounded wait. It returns false with no
	// state change when no item became readable within d.
	ReadTimeout(fn ReadFn, d time.Duration) bool
	// ReadNonblock attempts one read without waiting.
	ReadNonblock(fn ReadFn) bool
}
