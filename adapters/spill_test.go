package adapters_test

import (
	"fmt"
	"testing"

	"github.com/momentics/hioload-ring/adapters"
	"github.com/momentics/hioload-ring/core/ring"
)

func TestSpillRing_NoLoss(t *testing.T) {
	inner, err := ring.NewSeq(4, 4)
	if err != nil {
		t.Fatalf("NewSeq: %v", err)
	}
	s := adapters.NewSpillRing(inner)

	const totalItems = 10
	for i := 0; i < totalItems; i++ {
		item := fmt.Sprintf("%04d", i)
		if !s.WriteNonblock(func(slot []byte) { copy(slot, item) }) {
			t.Fatalf("Expected spill write %d to be admitted", i)
		}
	}
	if s.Size() != totalItems {
		t.Errorf("Expected size %d, got %d", totalItems, s.Size())
	}
	if s.Overflow() != totalItems-inner.Capacity() {
		t.Errorf("Expected %d parked items, got %d", totalItems-inner.Capacity(), s.Overflow())
	}
	if s.Full() {
		t.Error("A spill ring must never report full")
	}

	// Drain in waves: parked items re-enter, oldest first, as space opens.
	got := make([]string, 0, totalItems)
	for len(got) < totalItems {
		read := s.ReadNonblock(func(slot []byte) { got = append(got, string(slot)) })
		if !read {
			if s.Overflow() == 0 {
				t.Fatal("Ring and overflow both empty before all items were seen")
			}
			s.Flush()
		}
	}

	for i, item := range got {
		want := fmt.Sprintf("%04d", i)
		if item != want {
			t.Errorf("Item %d: got %q, want %q", i, item, want)
		}
	}
	if s.Overflow() != 0 || !s.Empty() {
		t.Errorf("Expected drained spill ring, size %d overflow %d", s.Size(), s.Overflow())
	}
}

func TestSpillRing_PassThroughWhileSpaceRemains(t *testing.T) {
	inner, err := ring.NewSeq(4, 4)
	if err != nil {
		t.Fatalf("NewSeq: %v", err)
	}
	s := adapters.NewSpillRing(inner)

	for i := 0; i < inner.Capacity(); i++ {
		s.WriteNonblock(func(slot []byte) { copy(slot, "itm0") })
	}
	if s.Overflow() != 0 {
		t.Errorf("Expected no parked items while the ring has space, got %d", s.Overflow())
	}
}
