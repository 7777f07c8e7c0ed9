package models

import "math"

// NearestStrike rounds spot to the closest multiple of step. An exact
// half-step rounds up (away from zero) rather than to even.
func NearestStrike(spot float64, step int) int {
	return int(math.Round(spot/float64(step))) * step
}

// FilterStrikes keeps strikes within window points of atm, preserving the
// input order.
func FilterStrikes(strikes []int, atm int, window int) []int {
	out := make([]int, 0, len(strikes))

	for _, s := range strikes {
		diff := s - atm
		if diff < 0 {
			diff = -diff
		}

		if diff <= window {
			out = append(out, s)
		}
	}

	return out
}
