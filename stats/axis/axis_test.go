package axis

import (
	"math"
	"testing"
)

const tolerance = 1e-12

func TestCalculateExcludesNonPositive(t *testing.T) {
	s := Calculate([]float64{-1, 0, 2, 4, math.NaN()})

	if s.Length != 5 || s.Finite != 4 || s.NonFinite != 1 || s.Positive != 2 {
		t.Fatalf("counts = %+v", s)
	}

	if s.PosMin != 2 || s.PosMax != 4 {
		t.Fatalf("positive bounds = [%v, %v], want [2, 4]", s.PosMin, s.PosMax)
	}

	if s.Min != -1 || s.Max != 4 {
		t.Fatalf("finite bounds = [%v, %v], want [-1, 4]", s.Min, s.Max)
	}
}

func TestLogRangeUsesOnlyPositiveFinite(t *testing.T) {
	r, ok := LogRange(DefaultMargin, []float64{-1, 0, 2, 4, math.NaN()})
	if !ok {
		t.Fatal("expected a range")
	}

	lo, hi := math.Log10(2), math.Log10(4)
	m := 0.1 * (hi - lo)

	if math.Abs(r[0]-(lo-m)) > tolerance || math.Abs(r[1]-(hi+m)) > tolerance {
		t.Fatalf("range = %v, want [%v, %v]", r, lo-m, hi+m)
	}
}

func TestLogRangeAcrossSeries(t *testing.T) {
	r, ok := LogRange(0, []float64{10, 100}, []float64{math.Inf(1), 1000}, nil)
	if !ok {
		t.Fatal("expected a range")
	}

	if math.Abs(r[0]-1) > tolerance || math.Abs(r[1]-3) > tolerance {
		t.Fatalf("range = %v, want [1, 3]", r)
	}
}

func TestLogRangeDegenerate(t *testing.T) {
	if _, ok := LogRange(DefaultMargin, []float64{-3, 0, math.NaN()}); ok {
		t.Fatal("expected no range for non-positive input")
	}

	if _, ok := LogRange(DefaultMargin); ok {
		t.Fatal("expected no range without series")
	}

	r, ok := LogRange(DefaultMargin, []float64{10, 10})
	if !ok {
		t.Fatal("expected a range")
	}

	if math.Abs(r[0]-0.9) > tolerance || math.Abs(r[1]-1.1) > tolerance {
		t.Fatalf("flat range = %v, want [0.9, 1.1]", r)
	}
}

func TestLinearRange(t *testing.T) {
	r, ok := Calculate([]float64{-2, 8, math.NaN()}).LinearRange(DefaultMargin)
	if !ok {
		t.Fatal("expected a range")
	}

	if math.Abs(r[0]+3) > tolerance || math.Abs(r[1]-9) > tolerance {
		t.Fatalf("range = %v, want [-3, 9]", r)
	}

	r, _ = Calculate([]float64{0}).LinearRange(DefaultMargin)
	if r[0] != -1 || r[1] != 1 {
		t.Fatalf("flat zero range = %v, want [-1, 1]", r)
	}

	if _, ok := Calculate(nil).LinearRange(DefaultMargin); ok {
		t.Fatal("expected no range for empty input")
	}
}

func TestAccumulatorMatchesCalculate(t *testing.T) {
	a := []float64{3, -1, 0.5}
	b := []float64{math.Inf(-1), 7}

	acc := NewAccumulator()
	acc.Update(a)
	acc.Update(b)

	got := acc.Result()
	want := Calculate(append(append([]float64{}, a...), b...))

	if got != want {
		t.Fatalf("accumulated %+v, want %+v", got, want)
	}
}
