// Package pool provides fixed-size frame pooling and slot storage
// allocation for ring buffers.
//
// FramePool recycles item-size []byte payloads for producers and tests.
// SlabAllocator sources ring backing regions, using 2 MiB hugepages on
// Linux with a heap fallback.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package pool
