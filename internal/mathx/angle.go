package mathx

import "math"

const fullTurn = 2 * math.Pi

func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// NormalizeAngle wraps rad into [base, base+2π) by whole turns.
func NormalizeAngle(rad, base float64) float64 {
	for rad < base {
		rad += fullTurn
	}
	for rad >= base+fullTurn {
		rad -= fullTurn
	}
	return rad
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DampFactor converts an exponential-decay rate and a frame delta into a
// lerp fraction, capped at 1 so oversized deltas cannot overshoot.
func DampFactor(rate, dt float64) float64 {
	return math.Min(rate*dt, 1)
}
