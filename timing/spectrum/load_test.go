package spectrum

import (
	"math"
	"testing"

	"github.com/astrogo/fitsio"
	"github.com/cwbudde/algo-nicer/internal/archive"
	"github.com/cwbudde/algo-nicer/internal/testutil"
	"github.com/cwbudde/algo-nicer/timing/core"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSpectrum(t *testing.T, fs afero.Fs, path string, cards []fitsio.Card, cols ...testutil.FITSColumn) {
	t.Helper()

	testutil.WriteFITS(t, fs, path, testutil.FITSTable{Name: "SPECTRUM", Cards: cards, Columns: cols})
}

func channelColumns(counts float64) []testutil.FITSColumn {
	return []testutil.FITSColumn{
		{Name: "CHANNEL", Values: testutil.Channels(6), Int: true},
		{Name: "COUNTS", Values: testutil.Const(counts, 6)},
	}
}

func TestLoadWithSiblingBackground(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeSpectrum(t, fs, "/obs/1050/spectra/ni1050_GTI0.jsgrp", []fitsio.Card{
		{Name: "EXPOSURE", Value: 10.0},
		{Name: "RESPFILE", Value: "nixtiref_d40.rmf"},
		{Name: "FKRSP001", Value: "nixtiaveonaxis_d02.rmf"},
	}, channelColumns(10)...)
	writeSpectrum(t, fs, "/obs/1050/spectra/ni1050_GTI0.bg", []fitsio.Card{
		{Name: "EXPOSURE", Value: 20.0},
	}, channelColumns(2)...)

	res, err := Load(archive.New(fs), "/obs/1050/spectra/ni1050_GTI0.jsgrp",
		core.WithMinCount(20), core.WithCut(math.Inf(-1), math.Inf(1)))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Detectors)
	assert.Equal(t, 10.0, res.Exposure)
	testutil.RequireSliceNearlyEqual(t, res.Flux, []float64{45, 45, 45}, 1e-9)
	testutil.RequireSliceNearlyEqual(t, res.Background, []float64{5, 5, 5}, 1e-9)
}

func TestLoadBackfileSynthFallback(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeSpectrum(t, fs, "/obs/spectra/ni.pha", []fitsio.Card{
		{Name: "EXPOSURE", Value: 10.0},
		{Name: "RESPFILE", Value: "nixtiref_d52.rmf"},
		{Name: "BACKFILE", Value: "synth_5.bg"},
	}, channelColumns(10)...)
	testutil.WriteFITS(t, fs, "/obs/spectra/synth_05.bg", testutil.FITSTable{
		Name: "SPECTRUM",
		Columns: []testutil.FITSColumn{
			{Name: "CHANNEL", Values: testutil.Channels(6), Int: true},
			{Name: "RATE", Values: testutil.Const(0, 6)},
		},
	})

	in, err := Read(archive.New(fs), "/obs/spectra/ni.pha")
	require.NoError(t, err)
	assert.Equal(t, 52, in.Detectors)
	assert.Nil(t, in.Background.Counts)
	assert.Len(t, in.Background.Rate, 6)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		cards []fitsio.Card
		bg    bool
		want  error
	}{
		{
			name:  "missing exposure",
			cards: []fitsio.Card{{Name: "RESPFILE", Value: "x_d52.rmf"}},
			bg:    true,
			want:  core.ErrMetadata,
		},
		{
			name:  "missing response",
			cards: []fitsio.Card{{Name: "EXPOSURE", Value: 10.0}},
			bg:    true,
			want:  core.ErrMetadata,
		},
		{
			name:  "malformed response",
			cards: []fitsio.Card{{Name: "EXPOSURE", Value: 10.0}, {Name: "RESPFILE", Value: "nixti.rmf"}},
			bg:    true,
			want:  core.ErrMetadata,
		},
		{
			name:  "missing background",
			cards: []fitsio.Card{{Name: "EXPOSURE", Value: 10.0}, {Name: "RESPFILE", Value: "x_d52.rmf"}},
			want:  core.ErrFileAccess,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeSpectrum(t, fs, "/o/ni.jsgrp", tc.cards, channelColumns(10)...)
			if tc.bg {
				writeSpectrum(t, fs, "/o/ni.bg", []fitsio.Card{{Name: "EXPOSURE", Value: 1.0}}, channelColumns(1)...)
			}

			_, err := Load(archive.New(fs), "/o/ni.jsgrp")
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := Load(archive.New(afero.NewMemMapFs()), "/o/none.jsgrp")
	assert.ErrorIs(t, err, core.ErrFileAccess)
}
