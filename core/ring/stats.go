// File: core/ring/stats.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ring

import "sync/atomic"

// Stats aggregates ring activity counters. All fields are updated
// atomically by the ring and may be read from any goroutine.
type Stats struct {
	Writes      atomic.Uint64 // slots filled, all admission policies
	Reads       atomic.Uint64 // slots consumed
	Drops       atomic.Uint64 // non-blocking writes rejected on a full ring
	Overwrites  atomic.Uint64 // overwrite writes that clobbered an unread item
	Deferrals   atomic.Uint64 // reads skipped by arbitration
	ForcedReads atomic.Uint64 // reads forced through after the deferral ceiling
}

// Snapshot returns the counters as a plain map, keyed for the control
// metrics registry.
func (s *Stats) Snapshot() map[string]uint64 {
	return map[string]uint64{
		"writes":       s.Writes.Load(),
		"reads":        s.Reads.Load(),
		"drops":        s.Drops.Load(),
		"overwrites":   s.Overwrites.Load(),
		"deferrals":    s.Deferrals.Load(),
		"forced_reads": s.ForcedReads.Load(),
	}
}
