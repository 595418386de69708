// Package ring tests the sequence-based ring.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ring

import (
	"bytes"
	"sync"
	"testing"
	"time"
)

func TestSeqRing_New_Validation(t *testing.T) {
	if _, err := NewSeq(0, 4); err == nil {
		t.Error("Expected error for zero item size")
	}
	if _, err := NewSeq(4, 1); err == nil {
		t.Error("Expected error for single-slot ring")
	}
	r, err := NewSeq(4, 6)
	if err != nil {
		t.Fatalf("NewSeq: %v", err)
	}
	if r.Capacity() != 8 {
		t.Errorf("Expected capacity rounded to 8, got %d", r.Capacity())
	}
}

func TestSeqRing_FillAndDrain(t *testing.T) {
	r, err := NewSeq(testItemSize, 4)
	if err != nil {
		t.Fatalf("NewSeq: %v", err)
	}
	source := randItems(t, 4, testItemSize)

	if !r.Empty() || r.Full() {
		t.Fatal("Expected a fresh ring to be empty and not full")
	}
	for i := 0; i < 4; i++ {
		i := i
		if !r.WriteNonblock(func(slot []byte) { copy(slot, source[i]) }) {
			t.Fatalf("Expected write %d to be admitted", i)
		}
	}
	if !r.Full() || r.Size() != 4 {
		t.Fatalf("Expected full ring of size 4, got %d", r.Size())
	}
	if r.WriteNonblock(func([]byte) {}) {
		t.Error("Expected write on full ring to be rejected")
	}

	// No cursor reset is needed: slots become readable the moment their
	// payload is published.
	for i := 0; i < 4; i++ {
		i := i
		got := make([]byte, testItemSize)
		if !r.ReadNonblock(func(slot []byte) { copy(got, slot) }) {
			t.Fatalf("Expected read %d to succeed", i)
		}
		if !bytes.Equal(got, source[i]) {
			t.Errorf("Item %d: got %q, want %q", i, got, source[i])
		}
	}
	if !r.Empty() {
		t.Error("Expected ring to be empty after draining")
	}
	if r.ReadNonblock(func([]byte) {}) {
		t.Error("Expected read on empty ring to be rejected")
	}
}

func TestSeqRing_Overwrite(t *testing.T) {
	const totalItems = 10
	r, err := NewSeq(testItemSize, 4)
	if err != nil {
		t.Fatalf("NewSeq: %v", err)
	}
	source := randItems(t, totalItems, testItemSize)

	for i := 0; i < totalItems; i++ {
		i := i
		r.WriteOverwrite(func(slot []byte) { copy(slot, source[i]) })
	}
	if r.Size() != 4 {
		t.Fatalf("Expected size 4 after overwriting, got %d", r.Size())
	}

	// Exactly the last four items survive, in their original order.
	for i := 0; i < 4; i++ {
		got := make([]byte, testItemSize)
		if !r.ReadNonblock(func(slot []byte) { copy(got, slot) }) {
			t.Fatalf("Expected read %d to succeed", i)
		}
		want := source[totalItems-4+i]
		if !bytes.Equal(got, want) {
			t.Errorf("Item %d: got %q, want %q", i, got, want)
		}
	}
}

func TestSeqRing_BlockingFIFO(t *testing.T) {
	const totalItems = 200
	r, err := NewSeq(testItemSize, 4)
	if err != nil {
		t.Fatalf("NewSeq: %v", err)
	}
	source := randItems(t, totalItems, testItemSize)
	target := blankItems(totalItems, testItemSize)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < totalItems; i++ {
			i := i
			r.Write(func(slot []byte) { copy(slot, source[i]) })
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < totalItems; i++ {
			i := i
			r.Read(func(slot []byte) { copy(target[i], slot) })
		}
	}()

	wg.Wait()

	if !r.Empty() {
		t.Error("Expected ring drained after the run")
	}
	for i := range source {
		if !bytes.Equal(target[i], source[i]) {
			t.Errorf("Item %d: got %q, want %q", i, target[i], source[i])
		}
	}
}

func TestSeqRing_ReadTimeout(t *testing.T) {
	r, err := NewSeq(testItemSize, 4)
	if err != nil {
		t.Fatalf("NewSeq: %v", err)
	}
	if r.ReadTimeout(func([]byte) { t.Error("Callback must not run on timeout") }, 20*time.Millisecond) {
		t.Error("Expected timeout on empty ring")
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		r.Write(func(slot []byte) { copy(slot, "late") })
	}()
	got := make([]byte, testItemSize)
	if !r.ReadTimeout(func(slot []byte) { copy(got, slot) }, time.Second) {
		t.Fatal("Expected timed read to observe the write")
	}
	if string(got) != "late" {
		t.Errorf("Got %q, want late", got)
	}
}

func TestSeqRing_Stats(t *testing.T) {
	r, err := NewSeq(testItemSize, 2)
	if err != nil {
		t.Fatalf("NewSeq: %v", err)
	}
	var s Stats
	r.AttachStats(&s)

	r.WriteNonblock(func(slot []byte) { copy(slot, "aaaa") })
	r.WriteNonblock(func(slot []byte) { copy(slot, "bbbb") })
	r.WriteNonblock(func(slot []byte) { copy(slot, "cccc") }) // rejected
	r.WriteOverwrite(func(slot []byte) { copy(slot, "dddd") }) // retires oldest
	r.ReadNonblock(func([]byte) {})

	snap := s.Snapshot()
	if snap["writes"] != 3 {
		t.Errorf("writes: got %d, want 3", snap["writes"])
	}
	if snap["drops"] != 1 {
		t.Errorf("drops: got %d, want 1", snap["drops"])
	}
	if snap["overwrites"] != 1 {
		t.Errorf("overwrites: got %d, want 1", snap["overwrites"])
	}
	if snap["reads"] != 1 {
		t.Errorf("reads: got %d, want 1", snap["reads"])
	}
}
