// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ioengine

import (
	"testing"
)

func TestRingReserveWithinTailSpace(t *testing.T) {
	r := NewRing(16)
	if !r.Push([]byte("abcd")) {
		t.Fatalf("Push: want true")
	}
	r.Advance(2)
	// 12 bytes free at the tail (16-4), well more than the 4 requested, so
	// Reserve must succeed without compacting start back to 0.
	if !r.Reserve(4) {
		t.Fatalf("Reserve(4): want true")
	}
	if r.start != 2 {
		t.Fatalf("Reserve compacted unnecessarily: start = %d, want 2", r.start)
	}
}

func TestRingReserveCompacts(t *testing.T) {
	r := NewRing(8)
	if !r.Push([]byte("abcdefg")) {
		t.Fatalf("Push: want true")
	}
	r.Advance(5) // occupied = "fg", 2 bytes; 1 byte free at tail, 6 free total
	if r.Reserve(8) {
		t.Fatalf("Reserve(8): want false, total capacity is only 8 and 2 are occupied")
	}
	if !r.Reserve(6) {
		t.Fatalf("Reserve(6): want true after compaction (2 occupied + 6 free = 8 cap)")
	}
	if r.start != 0 {
		t.Fatalf("Reserve did not compact: start = %d, want 0", r.start)
	}
	if got := string(r.Occupied()); got != "fg" {
		t.Fatalf("Occupied after compaction = %q, want %q", got, "fg")
	}
}

func TestRingReserveExceedsCapacity(t *testing.T) {
	r := NewRing(8)
	if !r.Push([]byte("abcd")) {
		t.Fatalf("Push: want true")
	}
	if r.Reserve(5) {
		t.Fatalf("Reserve(5): want false, only 4 bytes free even after compaction")
	}
}

func TestRingWrapPreservesFIFOOrder(t *testing.T) {
	r := NewRing(8)
	if !r.Push([]byte("1234")) {
		t.Fatalf("Push: want true")
	}
	r.Advance(4) // drain everything; start/end reset to 0,0

	// Push again so the next run straddles where the old data used to sit,
	// exercising a fresh occupied region after a full drain rather than a
	// genuine wraparound, since Ring never wraps without compacting first.
	if !r.Push([]byte("5678")) {
		t.Fatalf("Push: want true")
	}
	r.Grow(0) // no-op; keeps Grow on the covered-call list
	n := copy(r.FreeAtTail(), "ab")
	r.Grow(n)
	if got := string(r.Occupied()); got != "5678ab" {
		t.Fatalf("Occupied = %q, want %q", got, "5678ab")
	}
	r.Advance(3)
	if got := string(r.Occupied()); got != "8ab" {
		t.Fatalf("Occupied after Advance(3) = %q, want %q", got, "8ab")
	}

	// Force a compaction mid-stream and confirm the remaining bytes keep
	// their relative order across the memmove: only 2 bytes of tail space
	// remain (cap 8, end at 6) but 5 bytes are needed, and 5 is exactly the
	// ring's total free space (8 - 3 occupied), so Reserve must compact
	// rather than report failure.
	if !r.Reserve(5) {
		t.Fatalf("Reserve(5): want true")
	}
	if got := string(r.Occupied()); got != "8ab" {
		t.Fatalf("Occupied after compaction = %q, want %q", got, "8ab")
	}
	n = copy(r.FreeAtTail(), "cdefg")
	r.Grow(n)
	if got := string(r.Occupied()); got != "8abcdefg" {
		t.Fatalf("Occupied after wrap-compaction append = %q, want %q", got, "8abcdefg")
	}
}

func TestRingAdvanceResetsWhenDrained(t *testing.T) {
	r := NewRing(8)
	r.Push([]byte("xy"))
	r.Advance(2)
	if r.start != 0 || r.end != 0 {
		t.Fatalf("Advance to empty did not reset offsets: start=%d end=%d", r.start, r.end)
	}
	if !r.Reserve(8) {
		t.Fatalf("Reserve(8) on drained ring: want true")
	}
}

func TestFDRingReserveWrapAndAdvance(t *testing.T) {
	r := NewFDRing(4)
	if !r.Push([]int{10, 11, 12}) {
		t.Fatalf("Push: want true")
	}
	r.Advance(2) // occupied = [12]
	if !r.Reserve(3) {
		t.Fatalf("Reserve(3): want true after compaction (1 occupied + 3 free = 4 cap)")
	}
	if got := r.Occupied(); !intsEqual(got, []int{12}) {
		t.Fatalf("Occupied after compaction = %v, want [12]", got)
	}
	if !r.Push([]int{13, 14}) {
		t.Fatalf("Push: want true")
	}
	if got := r.Occupied(); !intsEqual(got, []int{12, 13, 14}) {
		t.Fatalf("Occupied = %v, want [12 13 14]", got)
	}
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
