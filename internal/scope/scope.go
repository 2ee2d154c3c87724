// Package scope holds the signal-processing core of the instrument: the
// sample ring buffer shared between the capture callback and the analysis
// tick, the zero-crossing frequency estimator, and the display trigger.
package scope

// Design constants shared by the analysis cycle and the tests. The hysteresis
// fraction and the window/hop pair are fixed rather than adaptive.
const (
	// HystFrac is the hysteresis band as a fraction of peak amplitude.
	HystFrac = 0.05

	// WindowSeconds is the analysis window used for frequency estimation,
	// independent of the user-adjustable visual window.
	WindowSeconds = 2.0

	// HopSeconds is the minimum interval between frequency recomputations.
	HopSeconds = 0.25

	// TriggerSearch is how many leading samples of the visual window the
	// trigger aligner examines.
	TriggerSearch = 2048

	// RetentionSeconds sizes the ring buffer.
	RetentionSeconds = 10

	// DefaultSampleRate is used when the capture device does not report one.
	DefaultSampleRate = 48000
)
