package scope

import "sync"

// Ring is a fixed-capacity FIFO of int16 samples written by the capture
// callback and read by the analysis tick. A single mutex guards every access;
// readers always get a point-in-time copy, never a live view, so analysis
// work happens with the lock released.
type Ring struct {
	mu   sync.Mutex
	buf  []int16
	head int // next write position once the buffer has wrapped
	size int
}

// NewRing creates a Ring holding at most capacity samples.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring{buf: make([]int16, capacity)}
}

// Push appends samples in order, evicting the oldest entries beyond capacity.
func (r *Ring) Push(samples []int16) {
	if len(samples) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	capacity := len(r.buf)
	if len(samples) >= capacity {
		copy(r.buf, samples[len(samples)-capacity:])
		r.head = 0
		r.size = capacity
		return
	}

	if r.head+len(samples) <= capacity {
		copy(r.buf[r.head:], samples)
		r.head += len(samples)
		if r.head == capacity {
			r.head = 0
		}
	} else {
		remaining := capacity - r.head
		copy(r.buf[r.head:], samples[:remaining])
		copy(r.buf, samples[remaining:])
		r.head = len(samples) - remaining
	}

	r.size += len(samples)
	if r.size > capacity {
		r.size = capacity
	}
}

// Snapshot returns a consistent copy of the buffered samples in production
// order, oldest first. An empty ring yields an empty slice.
func (r *Ring) Snapshot() []int16 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int16, r.size)
	r.copyInto(out)
	return out
}

// Tail returns a copy of the most recent n samples, or all of them when fewer
// are buffered.
func (r *Ring) Tail(n int) []int16 {
	if n <= 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if n > r.size {
		n = r.size
	}
	out := make([]int16, r.size)
	r.copyInto(out)
	return out[r.size-n:]
}

// copyInto linearizes the ring into dst. Caller holds the lock.
func (r *Ring) copyInto(dst []int16) {
	if r.size < len(r.buf) {
		// Not wrapped yet: data lives at the front.
		copy(dst, r.buf[:r.size])
		return
	}
	copy(dst, r.buf[r.head:])
	copy(dst[len(r.buf)-r.head:], r.buf[:r.head])
}

// Len reports how many samples are currently buffered.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Cap reports the fixed capacity.
func (r *Ring) Cap() int {
	return len(r.buf)
}
