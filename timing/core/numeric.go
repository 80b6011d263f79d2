package core

import (
	"math"
	"sort"
)

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FirstNonFinite returns the index of the first NaN or Inf in s, or -1.
func FirstNonFinite(s Series) int {
	for i, v := range s {
		if !IsFinite(v) {
			return i
		}
	}

	return -1
}

// MaskNonFinite returns a copy of s with every NaN or Inf replaced by NaN.
func MaskNonFinite(s Series) Series {
	out := make(Series, len(s))
	for i, v := range s {
		if IsFinite(v) {
			out[i] = v
		} else {
			out[i] = math.NaN()
		}
	}

	return out
}

// Median returns the median of the finite values in s, or NaN if none.
func Median(s Series) float64 {
	vals := make([]float64, 0, len(s))
	for _, v := range s {
		if IsFinite(v) {
			vals = append(vals, v)
		}
	}

	if len(vals) == 0 {
		return math.NaN()
	}

	sort.Float64s(vals)

	mid := len(vals) / 2
	if len(vals)%2 == 1 {
		return vals[mid]
	}

	return 0.5 * (vals[mid-1] + vals[mid])
}

// ChannelToKeV converts a detector PI channel to its centre energy in keV.
// NICER channels are 10 eV wide.
func ChannelToKeV(channel float64) float64 {
	return (channel*10 + 5) / 1e3
}

// ChannelWidthKeV is the energy width of one detector channel.
const ChannelWidthKeV = 0.01
