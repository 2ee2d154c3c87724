// Package instrument ties the sample ring to the analysis cadence and holds
// the user-adjustable display state.
package instrument

import (
	"math"
	"time"
)

// Display parameter bounds. The visual window never drops below 2 ms and the
// vertical scale stays within the 16-bit sample range.
const (
	minTimeWindow  = 0.002
	minYLimit      = 200
	maxYLimit      = 32768
	zoomStep       = 1.5
	defaultWindow  = 1.0
	defaultTrigger = 0
)

// State holds the display parameters and the latest frequency reading. It is
// an explicit struct handed to the input and analysis components rather than
// a process-wide singleton. Fields are independent scalars: the input
// goroutine and the tick each touch disjoint fields, and a torn read costs at
// most one glitched frame.
type State struct {
	TimeWindow   float64 // visual window, seconds
	YLimit       float64 // vertical scale, sample units
	TriggerOn    bool
	TriggerLevel int

	LastCalc time.Time
	Freq     float64
	HasFreq  bool
}

// NewState returns the startup display configuration.
func NewState() *State {
	return &State{
		TimeWindow:   defaultWindow,
		YLimit:       maxYLimit,
		TriggerOn:    true,
		TriggerLevel: defaultTrigger,
	}
}

// WidenWindow zooms out on the time axis.
func (s *State) WidenWindow() {
	s.TimeWindow *= zoomStep
}

// NarrowWindow zooms in on the time axis.
func (s *State) NarrowWindow() {
	s.TimeWindow = math.Max(minTimeWindow, s.TimeWindow/zoomStep)
}

// ZoomIn tightens the vertical scale.
func (s *State) ZoomIn() {
	s.YLimit = math.Max(minYLimit, s.YLimit/zoomStep)
}

// ZoomOut relaxes the vertical scale.
func (s *State) ZoomOut() {
	s.YLimit = math.Min(maxYLimit, s.YLimit*zoomStep)
}

// ToggleTrigger flips display triggering.
func (s *State) ToggleTrigger() {
	s.TriggerOn = !s.TriggerOn
}

// SetFrequency stores a new reading and its computation time.
func (s *State) SetFrequency(freq float64, ok bool, at time.Time) {
	s.Freq = freq
	s.HasFreq = ok
	s.LastCalc = at
}
