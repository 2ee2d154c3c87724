package scope

// AlignTrigger returns the offset of the first upward crossing of level
// within the first searchLen samples of window, so successive rendered frames
// start at a consistent phase. Windows no longer than searchLen are not
// stabilized at all and yield offset 0, as does a prefix with no crossing.
// Sub-sample precision is not needed for display alignment.
func AlignTrigger(window []int16, level, searchLen int) int {
	if searchLen <= 0 || len(window) <= searchLen {
		return 0
	}

	prev := sign(int(window[0]) - level)
	for i := 1; i < searchLen; i++ {
		cur := sign(int(window[i]) - level)
		if cur > prev {
			return i - 1
		}
		prev = cur
	}
	return 0
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
