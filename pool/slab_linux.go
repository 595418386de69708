//go:build linux
// +build linux

// File: pool/slab_linux.go
//
// Linux slot-storage allocator using hugepages.
//
// Backing regions are allocated via mmap with MAP_HUGETLB for 2 MiB
// pages. Falls back to the Go heap if hugepage allocation fails.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"sync"

	"golang.org/x/sys/unix"
)

const hugePageSize = 2 << 20

// SlabAllocator satisfies ring.Allocator with hugepage-backed regions.
type SlabAllocator struct {
	mu     sync.Mutex
	mapped map[*byte][]byte // first-byte pointer -> full mapping
}

// NewSlabAllocator returns the platform slot-storage allocator.
func NewSlabAllocator() *SlabAllocator {
	return &SlabAllocator{mapped: make(map[*byte][]byte)}
}

// Alloc returns a region of exactly n bytes, hugepage-backed when possible.
func (a *SlabAllocator) Alloc(n int) ([]byte, error) {
	length := ((n + hugePageSize - 1) / hugePageSize) * hugePageSize
	data, err := unix.Mmap(-1, 0, length,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANONYMOUS|unix.MAP_PRIVATE|unix.MAP_HUGETLB)
	if err != nil {
		// No hugepages configured; the GC-managed heap serves instead.
		return make([]byte, n), nil
	}
	a.mu.Lock()
	a.mapped[&data[0]] = data
	a.mu.Unlock()
	return data[:n], nil
}

// Free returns hugepage memory to the OS. Heap-fallback regions are left
// to the GC.
func (a *SlabAllocator) Free(buf []byte) {
	if len(buf) == 0 {
		return
	}
	a.mu.Lock()
	full, ok := a.mapped[&buf[0]]
	if ok {
		delete(a.mapped, &buf[0])
	}
	a.mu.Unlock()
	if ok {
		_ = unix.Munmap(full)
	}
}
