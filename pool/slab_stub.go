//go:build !linux
// +build !linux

// File: pool/slab_stub.go
//
// Fallback slot-storage allocator for platforms without hugepage mmap.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

// SlabAllocator satisfies ring.Allocator with heap-backed regions.
type SlabAllocator struct{}

// NewSlabAllocator returns the platform slot-storage allocator.
func NewSlabAllocator() *SlabAllocator { return &SlabAllocator{} }

// Alloc returns a heap-backed region of exactly n bytes.
func (a *SlabAllocator) Alloc(n int) ([]byte, error) {
	return make([]byte, n), nil
}

// Free is a no-op; the GC reclaims heap regions.
func (a *SlabAllocator) Free(buf []byte) {}
