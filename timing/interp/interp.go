package interp

import (
	"math"
	"sort"

	"github.com/cwbudde/algo-nicer/timing/core"
)

// Linear2 interpolates between x0 and x1 at fraction t in [0,1].
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// At evaluates the piecewise-linear curve through (xs, ys) at x.
// xs must be ascending. Outside the grid the nearest end value is returned.
// An empty grid yields NaN.
func At(xs, ys core.Series, x float64) float64 {
	n := min(len(xs), len(ys))
	if n == 0 || math.IsNaN(x) {
		return math.NaN()
	}

	if x <= xs[0] {
		return ys[0]
	}

	if x >= xs[n-1] {
		return ys[n-1]
	}

	i := sort.SearchFloat64s(xs[:n], x)
	if xs[i] == x {
		return ys[i]
	}

	x0, x1 := xs[i-1], xs[i]
	if x1 == x0 {
		return ys[i]
	}

	return Linear2((x-x0)/(x1-x0), ys[i-1], ys[i])
}

// PadWindow returns the samples of (xs, ys) inside window, plus one
// interpolated point at each cut boundary that falls strictly inside the
// grid. Boundaries are clamped to the grid extent, so an unbounded window
// returns the samples unchanged. xs must be ascending. The inputs are not
// modified.
func PadWindow(xs, ys core.Series, window core.Range) (core.Series, core.Series) {
	n := min(len(xs), len(ys))
	if n == 0 {
		return core.Series{}, core.Series{}
	}

	if window.High < xs[0] || window.Low > xs[n-1] {
		return core.Series{}, core.Series{}
	}

	grid := core.Range{Low: xs[0], High: xs[n-1]}
	lo, hi := grid.Clamp(window.Low), grid.Clamp(window.High)

	px := make(core.Series, 0, n+2)
	py := make(core.Series, 0, n+2)

	for i := 0; i < n; i++ {
		if !window.Contains(xs[i]) {
			continue
		}
		px = append(px, xs[i])
		py = append(py, ys[i])
	}

	if lo <= hi && (len(px) == 0 || px[0] > lo) {
		px = append(core.Series{lo}, px...)
		py = append(core.Series{At(xs[:n], ys[:n], lo)}, py...)
	}

	if lo <= hi && px[len(px)-1] < hi {
		px = append(px, hi)
		py = append(py, At(xs[:n], ys[:n], hi))
	}

	return px, py
}
