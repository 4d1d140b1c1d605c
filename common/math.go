package common

const (
	// TPS is the fixed simulation tick rate.
	TPS = 60

	Gravity = 1400.0
)

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SecondsToTicks converts a duration in seconds to whole simulation ticks,
// rounding to the nearest tick.
func SecondsToTicks(seconds float64) int {
	if seconds <= 0 {
		return 0
	}
	return int(seconds*TPS + 0.5)
}
