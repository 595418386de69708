// Package api
// Author: momentics
//
// Mock/testing utilities for the core contracts; extendable for new interfaces.

package api

import "time"

// MockSlotRing is a test and mock-friendly implementation of SlotRing.
type MockSlotRing struct {
	CapacityFunc       func() int
	ItemSizeFunc       func() int
	SizeFunc           func() int
	WriteFunc          func(WriteFn)
	WriteOverwriteFunc func(WriteFn)
	WriteNonblockFunc  func(WriteFn) bool
	ReadFunc           func(ReadFn) bool
	ReadTimeoutFunc    func(ReadFn, time.Duration) bool
	ReadNonblockFunc   func(ReadFn) bool
}

func (m *MockSlotRing) Capacity() int            { return m.CapacityFunc() }
func (m *MockSlotRing) ItemSize() int            { return m.ItemSizeFunc() }
func (m *MockSlotRing) Size() int                { return m.SizeFunc() }
func (m *MockSlotRing) Empty() bool              { return m.SizeFunc() == 0 }
func (m *MockSlotRing) Full() bool               { return m.SizeFunc() == m.CapacityFunc() }
func (m *MockSlotRing) Write(fn WriteFn)         { m.WriteFunc(fn) }
func (m *MockSlotRing) WriteOverwrite(fn WriteFn) { m.WriteOverwriteFunc(fn) }
func (m *MockSlotRing) WriteNonblock(fn WriteFn) bool { return m.WriteNonblockFunc(fn) }
func (m *MockSlotRing) Read(fn ReadFn) bool      { return m.ReadFunc(fn) }
func (m *MockSlotRing) ReadTimeout(fn ReadFn, d time.Duration) bool {
	return m.ReadTimeoutFunc(fn, d)
}
func (m *MockSlotRing) ReadNonblock(fn ReadFn) bool { return m.ReadNonblockFunc(fn) }
