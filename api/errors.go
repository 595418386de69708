// File: api/errors.go
// Author: momentics <momentics@gmail.com>
//
// Common error types shared across the hioload-ring library.

package api

import "errors"

var (
	// ErrInvalidItemSize indicates a non-positive per-slot byte size.
	ErrInvalidItemSize = errors.New("ring: item size must be positive")

	// ErrInvalidItemCount indicates an item count below two. A single-slot
	// ring cannot separate the reader from the most recently claimed slot.
	ErrInvalidItemCount = errors.New("ring: item count must be greater than one")

	// ErrAffinityNotSupported indicates CPU pinning is unavailable on this platform.
	ErrAffinityNotSupported = errors.New("affinity: not supported on this platform")

	// ErrFeedClosed indicates the packet feed socket has been shut down.
	ErrFeedClosed = errors.New("udp: packet feed is closed")
)
