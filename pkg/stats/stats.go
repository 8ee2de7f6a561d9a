// Package stats holds the small numeric helpers shared by the engine
// components. Everything here is pure float math with no state.
package stats

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean, 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// StdDev returns the population standard deviation, 0 for fewer than two
// samples.
func StdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := Mean(xs)
	ss := 0.0
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)))
}

// Median returns the middle value, averaging the two central elements for
// even-length input. The input slice is not modified.
func Median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	cp := make([]float64, n)
	copy(cp, xs)
	sort.Float64s(cp)
	if n%2 == 1 {
		return cp[n/2]
	}
	return (cp[n/2-1] + cp[n/2]) / 2
}

// Clamp bounds v into [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 bounds v into the unit interval.
func Clamp01(v float64) float64 { return Clamp(v, 0, 1) }

// BandDeviation measures how far v sits outside [lo, hi], normalised by the
// band width. 0 means inside the band; 1 means a full band-width outside.
func BandDeviation(v, lo, hi float64) float64 {
	width := hi - lo
	if width <= 0 {
		width = 1
	}
	switch {
	case v < lo:
		return (lo - v) / width
	case v > hi:
		return (v - hi) / width
	default:
		return 0
	}
}
