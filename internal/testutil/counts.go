package testutil

import (
	"math"
	"math/rand"
)

// Channels returns the channel numbers 0..n-1 as floats.
func Channels(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

// Ramp returns start, start+step, ... with n samples.
func Ramp(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// Const returns a slice of length n filled with value.
func Const(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// PoissonCounts draws n Poisson-distributed counts with the given mean from
// a fixed seed, so fixtures are reproducible.
func PoissonCounts(seed int64, mean float64, n int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	limit := math.Exp(-mean)
	for i := range out {
		// Knuth's multiplication method; fine for the small means used in tests.
		k, p := 0, 1.0
		for {
			p *= rng.Float64()
			if p <= limit {
				break
			}
			k++
		}
		out[i] = float64(k)
	}
	return out
}

// PowerLaw returns norm * x^-index for each x.
func PowerLaw(xs []float64, norm, index float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = norm * math.Pow(x, -index)
	}
	return out
}
