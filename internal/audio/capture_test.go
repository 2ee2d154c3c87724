package audio

import (
	"testing"

	"github.com/guidoenr/goscope/internal/scope"
)

func TestProcessExtractsLeftChannel(t *testing.T) {
	ring := scope.NewRing(64)
	c := &Capture{channels: 2, ring: ring, scratch: make([]int16, 4)}

	// Interleaved stereo: left channel carries 1,3,5; right is discarded.
	c.process([]int16{1, 2, 3, 4, 5, 6})

	want := []int16{1, 3, 5}
	got := ring.Snapshot()
	if len(got) != len(want) {
		t.Fatalf("ring length=%d want=%d", len(got), len(want))
	}
	for i, v := range got {
		if v != want[i] {
			t.Fatalf("ring[%d]=%d want=%d", i, v, want[i])
		}
	}
}

func TestProcessDropsIncompleteTrailingFrame(t *testing.T) {
	ring := scope.NewRing(64)
	c := &Capture{channels: 2, ring: ring, scratch: make([]int16, 4)}

	c.process([]int16{10, 11, 20, 21, 30})

	got := ring.Snapshot()
	if len(got) != 2 || got[0] != 10 || got[1] != 20 {
		t.Fatalf("unexpected ring contents %v, want [10 20]", got)
	}
}

func TestProcessMonoPassthrough(t *testing.T) {
	ring := scope.NewRing(64)
	c := &Capture{channels: 1, ring: ring}

	c.process([]int16{7, 8, 9})

	got := ring.Snapshot()
	if len(got) != 3 || got[0] != 7 || got[2] != 9 {
		t.Fatalf("unexpected ring contents %v, want [7 8 9]", got)
	}
}

func TestProcessEmptyAndShortFrames(t *testing.T) {
	ring := scope.NewRing(64)
	c := &Capture{channels: 2, ring: ring, scratch: make([]int16, 4)}

	c.process(nil)
	c.process([]int16{42}) // shorter than one frame

	if got := ring.Len(); got != 0 {
		t.Fatalf("ring length=%d want=0", got)
	}
}

func TestProcessGrowsScratchForLargeFrames(t *testing.T) {
	ring := scope.NewRing(8192)
	c := &Capture{channels: 2, ring: ring, scratch: make([]int16, 2)}

	in := make([]int16, 4096)
	for i := range in {
		in[i] = int16(i)
	}
	c.process(in)

	if got := ring.Len(); got != 2048 {
		t.Fatalf("ring length=%d want=2048", got)
	}
}
