package scope

import "testing"

func TestRingEmptySnapshot(t *testing.T) {
	r := NewRing(16)
	if got := r.Snapshot(); len(got) != 0 {
		t.Fatalf("expected empty snapshot, got %d samples", len(got))
	}
	if r.Len() != 0 {
		t.Fatalf("expected empty ring, got len %d", r.Len())
	}
}

func TestRingKeepsMostRecentOnOverflow(t *testing.T) {
	r := NewRing(100)
	in := make([]int16, 150)
	for i := range in {
		in[i] = int16(i)
	}
	r.Push(in)

	snap := r.Snapshot()
	if len(snap) != 100 {
		t.Fatalf("snapshot length=%d want=100", len(snap))
	}
	for i, v := range snap {
		if v != int16(50+i) {
			t.Fatalf("snap[%d]=%d want=%d", i, v, 50+i)
		}
	}
}

func TestRingWrapsAcrossPushes(t *testing.T) {
	r := NewRing(8)
	for i := 0; i < 5; i++ {
		r.Push([]int16{int16(3 * i), int16(3*i + 1), int16(3*i + 2)})
	}
	// 15 samples through an 8-slot ring: last 8 survive.
	want := []int16{7, 8, 9, 10, 11, 12, 13, 14}
	snap := r.Snapshot()
	if len(snap) != len(want) {
		t.Fatalf("snapshot length=%d want=%d", len(snap), len(want))
	}
	for i, v := range snap {
		if v != want[i] {
			t.Fatalf("snap[%d]=%d want=%d", i, v, want[i])
		}
	}
}

func TestRingSnapshotNeverExceedsCapacity(t *testing.T) {
	r := NewRing(32)
	chunk := make([]int16, 7)
	for i := 0; i < 40; i++ {
		r.Push(chunk)
		if got := len(r.Snapshot()); got > r.Cap() {
			t.Fatalf("snapshot length %d exceeds capacity %d", got, r.Cap())
		}
	}
}

func TestRingSnapshotIsACopy(t *testing.T) {
	r := NewRing(4)
	r.Push([]int16{1, 2, 3})
	snap := r.Snapshot()
	snap[0] = 99
	if again := r.Snapshot(); again[0] != 1 {
		t.Fatalf("snapshot aliased internal storage: got %d", again[0])
	}
}

func TestRingTail(t *testing.T) {
	r := NewRing(10)
	r.Push([]int16{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12})

	tail := r.Tail(4)
	want := []int16{9, 10, 11, 12}
	if len(tail) != len(want) {
		t.Fatalf("tail length=%d want=%d", len(tail), len(want))
	}
	for i, v := range tail {
		if v != want[i] {
			t.Fatalf("tail[%d]=%d want=%d", i, v, want[i])
		}
	}

	if got := r.Tail(100); len(got) != 10 {
		t.Fatalf("oversized tail length=%d want=10", len(got))
	}
	if got := r.Tail(0); len(got) != 0 {
		t.Fatalf("zero tail length=%d want=0", len(got))
	}
}
