package plots

import (
	"errors"
	"fmt"
	"testing"

	"github.com/astrogo/fitsio"
	"github.com/cwbudde/algo-nicer/internal/testutil"
	"github.com/cwbudde/algo-nicer/plot"
	"github.com/cwbudde/algo-nicer/timing/core"
	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func writeLightCurve(t *testing.T, fs afero.Fs, gti int) {
	t.Helper()

	base := fmt.Sprintf("/obs/ni1050_GTI%d", gti)
	ticks := testutil.Ramp(0, 1, 4)
	testutil.WriteText(t, fs, base+".lc.gz", testutil.Columns(
		ticks, testutil.Const(0, 4), []float64{10, 20, 30, 40}, testutil.Const(2, 4),
	))
	testutil.WriteText(t, fs, base+".bg-lc.gz", testutil.Columns(
		ticks, testutil.Const(0, 4), []float64{2, 4, 6, 8},
	))
}

func writeSpectrum(t *testing.T, fs afero.Fs, gti int) {
	t.Helper()

	base := fmt.Sprintf("/obs/spectra/ni1050_GTI%d", gti)
	channels := testutil.FITSColumn{Name: "CHANNEL", Values: testutil.Channels(6), Int: true}
	testutil.WriteFITS(t, fs, base+".jsgrp", testutil.FITSTable{
		Name: "SPECTRUM",
		Cards: []fitsio.Card{
			{Name: "EXPOSURE", Value: 10.0},
			{Name: "RESPFILE", Value: "nixti_d02.rmf"},
		},
		Columns: []testutil.FITSColumn{channels, {Name: "COUNTS", Values: testutil.Const(10, 6)}},
	})
	testutil.WriteFITS(t, fs, base+".bg", testutil.FITSTable{
		Name:    "SPECTRUM",
		Cards:   []fitsio.Card{{Name: "EXPOSURE", Value: 20.0}},
		Columns: []testutil.FITSColumn{channels, {Name: "COUNTS", Values: testutil.Const(2, 6)}},
	})
}

func writePowerSpectrum(t *testing.T, fs afero.Fs, gti int) {
	t.Helper()

	base := fmt.Sprintf("/obs/pds/ni1050_GTI%d", gti)
	testutil.WriteFITS(t, fs, base+"-bin.pds", testutil.FITSTable{
		Name: "PDS",
		Columns: []testutil.FITSColumn{
			{Name: "RATE", Values: []float64{1, 2, 4}},
			{Name: "STAT_ERR", Values: []float64{0.1, 0.2, 0.4}},
		},
	})
	testutil.WriteFITS(t, fs, base+"-fak.rsp", testutil.FITSTable{
		Name: "EBOUNDS",
		Columns: []testutil.FITSColumn{
			{Name: "E_MIN", Values: []float64{1, 2, 4}},
			{Name: "E_MAX", Values: []float64{2, 4, 8}},
		},
	})
}

func writeBands(t *testing.T, fs afero.Fs, gti int, ticks []float64) {
	t.Helper()

	n := len(ticks)
	zero := testutil.Const(0, n)
	testutil.WriteText(t, fs, fmt.Sprintf("/obs/ni1050_GTI%d.lc.gz", gti), testutil.Columns(
		ticks, zero, zero, zero, zero,
		testutil.Const(1, n), testutil.Const(2, n), testutil.Const(1, n), testutil.Const(1, n),
	))
}

func newObserved(fs afero.Fs) (*Plotter, *observer.ObservedLogs) {
	obs, logs := observer.New(zap.WarnLevel)
	return New(fs, WithLogger(zap.New(obs))), logs
}

func TestPlotFigureSkipsMissingGTI(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeLightCurve(t, fs, 0)

	p, logs := newObserved(fs)
	fig, err := p.PlotFigure(LightCurve, Request{Path: "/obs/ni1050_GTI0.lc.gz", GTIs: []int{0, 1}})
	require.NoError(t, err)
	require.False(t, fig.IsNoData())

	require.Len(t, fig.Data, 2)
	assert.Equal(t, "GTI0", fig.Data[0].Name)
	assert.Equal(t, plot.Values{4, 8, 12, 16}, fig.Data[0].Y)
	assert.NotNil(t, fig.Data[0].ErrorY)
	assert.Nil(t, fig.Data[0].ErrorX)

	assert.Equal(t, "GTI0 BG", fig.Data[1].Name)
	assert.True(t, fig.Data[1].Background)
	assert.Equal(t, plot.Values{1, 2, 3, 4}, fig.Data[1].Y)

	skipped := logs.FilterMessage("skipping GTI").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, int64(1), skipped[0].ContextMap()["gti"])
}

func TestPlotFigureLightCurveBackgroundPaddedAtCut(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeLightCurve(t, fs, 0)

	fig, err := New(fs).PlotFigure(LightCurve, Request{
		Path: "/obs/ni1050_GTI0.lc.gz",
		Cut:  &core.Range{Low: 0.5, High: 2.5},
	})
	require.NoError(t, err)

	require.Len(t, fig.Data, 2)
	assert.Equal(t, plot.Values{1, 2}, fig.Data[0].X)

	bg := fig.Data[1]
	assert.Equal(t, "GTI0 BG", bg.Name)
	assert.Equal(t, plot.Values{0.5, 1, 2, 2.5}, bg.X)
	assert.InDeltaSlice(t, []float64{1.5, 2, 3, 3.5}, []float64(bg.Y), 1e-12)
}

func TestPlotFigureSpectrumWithBackground(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeSpectrum(t, fs, 0)
	writeSpectrum(t, fs, 3)

	p := New(fs)
	fig, err := p.PlotFigure(Spectrum, Request{
		Path:     "/obs/spectra/ni1050_GTI0.jsgrp",
		GTIs:     []int{0, 3},
		MinCount: lo.ToPtr(20.0),
		Cut:      lo.ToPtr(core.Unbounded()),
	})
	require.NoError(t, err)

	require.Len(t, fig.Data, 4)
	names := lo.Map(fig.Data, func(tr plot.Trace, _ int) string { return tr.Name })
	assert.Equal(t, []string{"GTI0", "GTI0 BG", "GTI3", "GTI3 BG"}, names)

	assert.Equal(t, plot.Values{45, 45, 45}, roundValues(fig.Data[0].Y))
	assert.NotNil(t, fig.Data[0].ErrorX)
	assert.Equal(t, fig.Data[0].Color(), fig.Data[1].Color())
	assert.Equal(t, plot.Log, fig.Layout.XAxis.Type)
	assert.Equal(t, 900, fig.Layout.Width)
}

func TestPlotFigureSpectrumDefaultCutLeavesNoData(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeSpectrum(t, fs, 0)

	fig, err := New(fs).PlotFigure(Spectrum, Request{Path: "/obs/spectra/ni1050_GTI0.jsgrp"})
	require.NoError(t, err)
	assert.True(t, fig.IsNoData())
}

func TestPlotFigurePowerSpectrum(t *testing.T) {
	fs := afero.NewMemMapFs()
	writePowerSpectrum(t, fs, 0)
	writePowerSpectrum(t, fs, 2)

	fig, err := New(fs).PlotFigure(PowerSpectrum, Request{
		Path: "/obs/pds/ni1050_GTI0-bin.pds",
		GTIs: []int{2, 0, 2},
	})
	require.NoError(t, err)

	require.Len(t, fig.Data, 2)
	assert.Equal(t, "GTI2", fig.Data[0].Name)
	assert.Equal(t, "GTI0", fig.Data[1].Name)
	assert.Len(t, fig.Layout.YAxis.Range, 2)
}

func TestPlotFigureHardnessMergesGTIs(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeBands(t, fs, 0, []float64{0, 8})
	writeBands(t, fs, 1, []float64{16, 32})

	fig, err := New(fs).PlotFigure(HardnessIntensity, Request{
		Path: "/obs/ni1050_GTI0.lc.gz",
		GTIs: []int{0, 1},
	})
	require.NoError(t, err)

	require.Len(t, fig.Data, 1)
	tr := fig.Data[0]
	assert.Equal(t, "HID", tr.Name)
	assert.Len(t, tr.X, 4)
	require.NotNil(t, tr.Marker)
	assert.Equal(t, plot.Values{0, 0.25, 0.5, 1}, tr.Marker.Color)
	assert.False(t, fig.Layout.ShowLegend)
}

func TestPlotFigureAllMissingIsNoData(t *testing.T) {
	p := New(afero.NewMemMapFs())

	fig, err := p.PlotFigure(LightCurve, Request{Path: "/obs/ni_GTI0.lc.gz", GTIs: []int{0, 1}})
	require.NoError(t, err)
	assert.True(t, fig.IsNoData())

	assert.Equal(t, core.NoDataMessage, p.Plot(LightCurve, Request{Path: "/obs/ni_GTI0.lc.gz"}))
}

func TestPlotFigureMetadataErrorSurfaces(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteFITS(t, fs, "/obs/spectra/ni_GTI0.jsgrp", testutil.FITSTable{
		Name: "SPECTRUM",
		Columns: []testutil.FITSColumn{
			{Name: "CHANNEL", Values: testutil.Channels(2), Int: true},
			{Name: "COUNTS", Values: testutil.Const(1, 2)},
		},
	})

	p := New(fs)
	_, err := p.PlotFigure(Spectrum, Request{Path: "/obs/spectra/ni_GTI0.jsgrp", GTIs: []int{0, 1}})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrMetadata)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 2)
	assert.NotContains(t, err.Error(), "\n")

	msg := p.Plot(Spectrum, Request{Path: "/obs/spectra/ni_GTI0.jsgrp"})
	assert.Contains(t, msg, "Unreadable file metadata")
}

func TestPlotFigureInvalidRequests(t *testing.T) {
	p := New(afero.NewMemMapFs())

	tests := []struct {
		name   string
		domain Domain
		req    Request
	}{
		{name: "unknown domain", domain: Domain(12), req: Request{Path: "/a"}},
		{name: "empty path", domain: LightCurve, req: Request{}},
		{name: "negative gti", domain: LightCurve, req: Request{Path: "/a_GTI0.lc.gz", GTIs: []int{-1}}},
		{name: "negative min count", domain: LightCurve, req: Request{Path: "/a.lc.gz", MinCount: lo.ToPtr(-1.0)}},
		{name: "inverted cut", domain: Spectrum, req: Request{Path: "/a.jsgrp", Cut: &core.Range{Low: 2, High: 1}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.PlotFigure(tc.domain, tc.req)
			assert.ErrorIs(t, err, core.ErrInvalidInput)
			assert.Contains(t, p.Plot(tc.domain, tc.req), "Invalid request")
		})
	}
}

func TestPlotHTML(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeLightCurve(t, fs, 0)

	html := New(fs).Plot(LightCurve, Request{Path: "/obs/ni1050_GTI0.lc.gz", ID: "lc-plot"})
	assert.Contains(t, html, `id="lc-plot"`)
	assert.Contains(t, html, "Plotly.newPlot")
	assert.Contains(t, html, "Light Curve")
}

func TestGTIList(t *testing.T) {
	assert.Equal(t, []int{0}, gtiList(Request{Path: "/a_GTI0.lc.gz"}))
	assert.Equal(t, []int{3, 1}, gtiList(Request{Path: "/a_GTI0.lc.gz", GTIs: []int{3, 1, 3}}))
	assert.Equal(t, []int{3}, gtiList(Request{Path: "/a.lc.gz", GTIs: []int{3, 1}}))
}

func TestMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: ""},
		{err: core.ErrNoData, want: core.NoDataMessage},
		{err: fmt.Errorf("%w: x", core.ErrFileAccess), want: core.NoDataMessage},
		{err: fmt.Errorf("%w: x", core.ErrNumericDegeneracy), want: "Corrupt data: numeric degeneracy: x"},
		{err: errors.New("boom"), want: "Plot failed: boom"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, Message(tc.err))
	}
}

func roundValues(v plot.Values) plot.Values {
	out := make(plot.Values, len(v))
	for i, x := range v {
		out[i] = float64(int64(x*1e6+0.5)) / 1e6
	}

	return out
}
