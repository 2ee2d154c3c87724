package instrument

import (
	"time"

	"github.com/guidoenr/goscope/internal/scope"
)

// Frame is one render tick's worth of display data.
type Frame struct {
	Samples []int16 // visual slice, already trigger-aligned
	Offset  int     // trigger offset applied to the visual slice
	Freq    float64
	HasFreq bool
}

// Cycle is the consumer side of the instrument: on every render tick it
// snapshots the ring, recomputes the frequency at most once per hop interval,
// and produces a trigger-aligned visual slice. All analysis runs on copies,
// never while holding the ring's lock.
type Cycle struct {
	ring  *scope.Ring
	rate  float64
	state *State
	now   func() time.Time
}

// NewCycle wires a Cycle to its ring, sample rate and shared state.
func NewCycle(ring *scope.Ring, rate float64, state *State) *Cycle {
	return &Cycle{
		ring:  ring,
		rate:  rate,
		state: state,
		now:   time.Now,
	}
}

// Tick produces the next display frame. It never fails: insufficient data
// simply yields an empty or unaligned frame.
func (c *Cycle) Tick() Frame {
	snapshot := c.ring.Snapshot()

	// Frequency recomputation is rate-limited by the hop interval,
	// independent of the render cadence, and always uses the fixed analysis
	// window rather than the visual one.
	now := c.now()
	if now.Sub(c.state.LastCalc).Seconds() >= scope.HopSeconds {
		calc := tail(snapshot, int(c.rate*scope.WindowSeconds))
		freq, ok := scope.EstimateFrequency(calc, c.rate)
		c.state.SetFrequency(freq, ok, now)
	}

	vis := tail(snapshot, int(c.rate*c.state.TimeWindow))

	offset := 0
	if c.state.TriggerOn {
		offset = scope.AlignTrigger(vis, c.state.TriggerLevel, scope.TriggerSearch)
	}

	return Frame{
		Samples: vis[offset:],
		Offset:  offset,
		Freq:    c.state.Freq,
		HasFreq: c.state.HasFreq,
	}
}

// AnalysisWindow returns a copy of the samples the next frequency
// computation would use.
func (c *Cycle) AnalysisWindow() []int16 {
	return c.ring.Tail(int(c.rate * scope.WindowSeconds))
}

// SampleRate returns the rate the cycle analyzes at.
func (c *Cycle) SampleRate() float64 {
	return c.rate
}

func tail(samples []int16, n int) []int16 {
	if n <= 0 {
		return nil
	}
	if len(samples) <= n {
		return samples
	}
	return samples[len(samples)-n:]
}
