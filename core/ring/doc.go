// Package ring implements fixed-capacity, fixed-item-size circular buffers
// for one producer thread and one consumer thread.
//
// Two implementations are provided:
//
//   - SlotBuffer publishes the write cursor before the payload copy lands
//     and excludes the most recently claimed slot from read eligibility
//     (the read-arbitration rule). It carries test hooks to reset either
//     cursor so the final slot can be drained.
//
//   - SeqRing publishes per-slot sequence numbers after the payload copy,
//     which removes the arbitration window entirely. It is the recommended
//     default for new code.
//
// Both are safe for exactly one concurrent writer and one concurrent
// reader. Neither is safe for multiple simultaneous writers or readers.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package ring
