package lightcurve

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-nicer/internal/archive"
	"github.com/cwbudde/algo-nicer/internal/testutil"
	"github.com/cwbudde/algo-nicer/timing/binning"
	"github.com/cwbudde/algo-nicer/timing/core"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rampInput() Input {
	return Input{
		Time:       core.Series{0, 1, 2, 3},
		Counts:     core.Series{10, 20, 30, 40},
		Detectors:  core.Series{2, 2, 2, 2},
		Background: core.Series{2, 4, 6, 8},
	}
}

func TestNormalizeUnbinned(t *testing.T) {
	res, err := Normalize(rampInput())
	require.NoError(t, err)

	assert.Equal(t, binning.Identity(4), res.Edges)
	testutil.RequireSliceNearlyEqual(t, res.Time, []float64{0, 1, 2, 3}, 0)
	testutil.RequireSliceNearlyEqual(t, res.Value, []float64{4, 8, 12, 16}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, res.Background, []float64{1, 2, 3, 4}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, res.BackgroundTime, res.Time, 0)
	testutil.RequireSliceNearlyEqual(t, res.Uncertainty, []float64{
		math.Sqrt(10) / 2, math.Sqrt(20) / 2, math.Sqrt(30) / 2, math.Sqrt(40) / 2,
	}, 1e-12)
}

func TestNormalizeAdaptive(t *testing.T) {
	res, err := Normalize(rampInput(), core.WithMinCount(30))
	require.NoError(t, err)

	assert.Equal(t, binning.Edges{0, 2, 3, 4}, res.Edges)
	testutil.RequireSliceNearlyEqual(t, res.Time, []float64{0.5, 2, 3}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, res.Ticks, []float64{2, 1, 1}, 0)
	testutil.RequireSliceNearlyEqual(t, res.Value, []float64{6, 12, 16}, 1e-12)
	assert.InDelta(t, math.Sqrt(30)/4, res.Uncertainty[0], 1e-12)
}

func TestNormalizeRate(t *testing.T) {
	in := rampInput()
	in.Time = core.Series{0, 0.5, 1, 1.5}

	res, err := Normalize(in, core.WithRate(true))
	require.NoError(t, err)

	assert.Equal(t, 0.5, res.Tick)
	testutil.RequireSliceNearlyEqual(t, res.Value, []float64{8, 16, 24, 32}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, res.Uncertainty, []float64{
		math.Sqrt(10), math.Sqrt(20), math.Sqrt(30), math.Sqrt(40),
	}, 1e-12)
}

func TestNormalizePropagatesNaN(t *testing.T) {
	in := rampInput()
	in.Detectors = core.Series{2, 0, 2, 2}

	res, err := Normalize(in)
	require.NoError(t, err)

	assert.True(t, math.IsNaN(res.Value[1]))
	assert.True(t, math.IsNaN(res.Uncertainty[1]))
	assert.Equal(t, 12.0, res.Value[2])
}

func TestNormalizeCut(t *testing.T) {
	res, err := Normalize(rampInput(), core.WithCut(1, 2))
	require.NoError(t, err)

	testutil.RequireSliceNearlyEqual(t, res.Time, []float64{1, 2}, 0)
	testutil.RequireSliceNearlyEqual(t, res.Value, []float64{8, 12}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, res.BackgroundTime, []float64{1, 2}, 0)
	testutil.RequireSliceNearlyEqual(t, res.Background, []float64{2, 3}, 1e-12)
}

func TestNormalizeCutPadsBackground(t *testing.T) {
	res, err := Normalize(rampInput(), core.WithCut(0.5, 2.5))
	require.NoError(t, err)

	testutil.RequireSliceNearlyEqual(t, res.Time, []float64{1, 2}, 0)
	testutil.RequireSliceNearlyEqual(t, res.BackgroundTime, []float64{0.5, 1, 2, 2.5}, 0)
	testutil.RequireSliceNearlyEqual(t, res.Background, []float64{1.5, 2, 3, 3.5}, 1e-12)

	// Boundaries past the binned span are clamped to it.
	res, err = Normalize(rampInput(), core.WithCut(0.5, 3.5))
	require.NoError(t, err)

	testutil.RequireSliceNearlyEqual(t, res.Time, []float64{1, 2, 3}, 0)
	testutil.RequireSliceNearlyEqual(t, res.BackgroundTime, []float64{0.5, 1, 2, 3}, 0)
	testutil.RequireSliceNearlyEqual(t, res.Background, []float64{1.5, 2, 3, 4}, 1e-12)
}

func TestNormalizeWithoutBackground(t *testing.T) {
	in := rampInput()
	in.Background = nil

	res, err := Normalize(in)
	require.NoError(t, err)

	assert.Nil(t, res.Background)
	assert.Nil(t, res.BackgroundTime)
	testutil.RequireSliceNearlyEqual(t, res.Value, []float64{5, 10, 15, 20}, 1e-12)
}

func TestNormalizeInputErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{name: "empty", mutate: func(in *Input) { *in = Input{} }},
		{name: "short counts", mutate: func(in *Input) { in.Counts = in.Counts[:2] }},
		{name: "short detectors", mutate: func(in *Input) { in.Detectors = in.Detectors[:3] }},
		{name: "short background", mutate: func(in *Input) { in.Background = in.Background[:1] }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := rampInput()
			tc.mutate(&in)

			_, err := Normalize(in)
			assert.ErrorIs(t, err, core.ErrInvalidInput)
		})
	}
}

func TestTickSpacing(t *testing.T) {
	assert.Equal(t, 1.0, tickSpacing(core.Series{5}))
	assert.Equal(t, 2.0, tickSpacing(core.Series{0, 2, 4, 10}))
	assert.Equal(t, 1.0, tickSpacing(core.Series{3, 3, 3}))
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteText(t, fs, "/obs/ni1050_GTI0.lc.gz", testutil.Columns(
		[]float64{0, 1, 2, 3},
		[]float64{9, 9, 9, 9},
		[]float64{10, 20, 30, 40},
		[]float64{2, 2, 2, 2},
	))
	testutil.WriteText(t, fs, "/obs/ni1050_GTI0.bg-lc.gz", testutil.Columns(
		[]float64{0, 1, 2, 3},
		[]float64{0, 0, 0, 0},
		[]float64{2, 4, 6, 8},
	))

	res, err := Load(archive.New(fs), "/obs/ni1050_GTI0.lc.gz")
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, res.Value, []float64{4, 8, 12, 16}, 1e-12)
}

func TestLoadErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteText(t, fs, "/obs/a.lc.gz", testutil.Columns(
		[]float64{0, 1}, []float64{0, 0}, []float64{1, 2}, []float64{1, 1},
	))

	r := archive.New(fs)

	_, err := Load(r, "/obs/a.lc.gz")
	assert.ErrorIs(t, err, core.ErrFileAccess, "missing background")

	_, err = Load(r, "/obs/a.txt")
	assert.ErrorIs(t, err, core.ErrFileAccess, "unknown suffix")

	testutil.WriteText(t, fs, "/obs/a.bg-lc.gz", testutil.Columns(
		[]float64{0}, []float64{0}, []float64{1},
	))
	_, err = Load(r, "/obs/a.lc.gz")
	assert.ErrorIs(t, err, core.ErrInvalidInput, "background length")
}
