package app

import (
	"context"
	"math"
	"time"

	"github.com/guidoenr/goscope/internal/scope"
)

// synth feeds a paced sine into the ring so the full pipeline can run
// without an input device. A constant DC offset is mixed in on purpose: the
// estimator removes it, which makes the synthetic mode a live check of the
// DC handling.
type synth struct {
	ring  *scope.Ring
	rate  float64
	freq  float64
	phase float64
}

const (
	synthAmplitude = 18000
	synthDCOffset  = 2000
	synthInterval  = 10 * time.Millisecond
)

func newSynth(ring *scope.Ring, rate, freq float64) *synth {
	return &synth{ring: ring, rate: rate, freq: freq}
}

// run produces samples in near real time until the context is cancelled.
func (s *synth) run(ctx context.Context) {
	ticker := time.NewTicker(synthInterval)
	defer ticker.Stop()

	step := 2 * math.Pi * s.freq / s.rate
	buf := make([]int16, 0, int(s.rate/10))
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			n := int(s.rate * dt)
			if n <= 0 {
				continue
			}

			buf = buf[:0]
			for i := 0; i < n; i++ {
				v := synthAmplitude*math.Sin(s.phase) + synthDCOffset
				buf = append(buf, int16(v))
				s.phase += step
			}
			if s.phase > 2*math.Pi {
				s.phase = math.Mod(s.phase, 2*math.Pi)
			}
			s.ring.Push(buf)
		}
	}
}
