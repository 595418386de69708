// Package pool tests frame pooling and slot storage.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import "testing"

func TestFramePool_GetPut(t *testing.T) {
	p := NewFramePool(64)
	if p.FrameSize() != 64 {
		t.Errorf("Expected frame size 64, got %d", p.FrameSize())
	}
	frame := p.Get()
	if len(frame) != 64 {
		t.Errorf("Expected 64-byte frame, got %d", len(frame))
	}
	p.Put(frame)

	// Wrong-size frames must not poison the pool.
	p.Put(make([]byte, 8))
	again := p.Get()
	if len(again) != 64 {
		t.Errorf("Expected 64-byte frame after foreign Put, got %d", len(again))
	}
}

func TestSlabAllocator_Roundtrip(t *testing.T) {
	a := NewSlabAllocator()
	buf, err := a.Alloc(1000)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if len(buf) != 1000 {
		t.Fatalf("Expected 1000 bytes, got %d", len(buf))
	}
	for i := range buf {
		buf[i] = byte(i)
	}
	a.Free(buf)
}
