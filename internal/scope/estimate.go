package scope

import "sort"

// EstimateFrequency returns the fundamental frequency of the window in Hz,
// or false when no stable estimate exists (short window, silence, or fewer
// than two detected cycles).
//
// The detector removes DC bias, then scans for upward zero crossings with
// hysteresis: a crossing only counts after the signal has first dipped below
// -5% of peak, so noise near the zero line cannot re-trigger within a cycle.
// Crossing times are refined by linear interpolation between the two samples
// straddling zero, and the returned frequency is the reciprocal of the median
// consecutive period, which rejects isolated glitch periods without an
// explicit outlier pass.
func EstimateFrequency(window []int16, rate float64) (float64, bool) {
	if len(window) < 2 || rate <= 0 {
		return 0, false
	}

	sum := 0.0
	for _, s := range window {
		sum += float64(s)
	}
	mean := sum / float64(len(window))

	x := make([]float64, len(window))
	peak := 0.0
	for i, s := range window {
		v := float64(s) - mean
		x[i] = v
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		// Flat signal; keeps the threshold finite, no crossings will be found.
		peak = 1.0
	}
	th := peak * HystFrac

	var crossings []float64
	armed := false
	for i := 1; i < len(x); i++ {
		a, b := x[i-1], x[i]

		if !armed {
			if b <= -th {
				armed = true
			}
			continue
		}

		if a < 0 && b >= 0 {
			denom := b - a
			frac := 0.0
			if denom != 0 {
				frac = -a / denom
			}
			crossings = append(crossings, (float64(i-1)+frac)/rate)
			armed = false
		}
	}

	if len(crossings) < 2 {
		return 0, false
	}

	periods := make([]float64, len(crossings)-1)
	for i := range periods {
		periods[i] = crossings[i+1] - crossings[i]
	}

	period := median(periods)
	if period <= 0 {
		return 0, false
	}
	return 1.0 / period, true
}

// median averages the two middle values for even-length input.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
