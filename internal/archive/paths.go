package archive

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-nicer/timing/core"
)

var (
	gtiToken      = regexp.MustCompile(`GTI\d+`)
	detectorToken = regexp.MustCompile(`_d(\d{2})`)
)

// Companion file suffixes.
const (
	LightCurveSuffix      = ".lc.gz"
	LightCurveBackground  = ".bg-lc.gz"
	SpectrumSuffix        = ".jsgrp"
	SpectrumBackground    = ".bg"
	PowerSpectrumSuffix   = "-bin.pds"
	PowerSpectrumResponse = "-fak.rsp"

	synthPrefix   = "spectra/synth_"
	synthFallback = "spectra/synth_0"
)

// HasGTI reports whether path carries a GTI<n> token.
func HasGTI(path string) bool {
	return gtiToken.MatchString(path)
}

// GTIPath returns path with every GTI<k> token replaced by GTI<gti>.
// Paths without a token are returned unchanged.
func GTIPath(path string, gti int) string {
	return gtiToken.ReplaceAllString(path, "GTI"+strconv.Itoa(gti))
}

// replaceSuffix swaps the last occurrence of from in path for to.
func replaceSuffix(path, from, to string) (string, bool) {
	i := strings.LastIndex(path, from)
	if i < 0 {
		return path, false
	}

	return path[:i] + to + path[i+len(from):], true
}

// LightCurveBackgroundPath maps a light curve to its background curve.
func LightCurveBackgroundPath(path string) (string, bool) {
	return replaceSuffix(path, LightCurveSuffix, LightCurveBackground)
}

// SpectrumBackgroundPath maps a grouped spectrum to its background spectrum.
func SpectrumBackgroundPath(path string) (string, bool) {
	return replaceSuffix(path, SpectrumSuffix, SpectrumBackground)
}

// ResponsePath maps a binned power-density spectrum to its frequency
// response file.
func ResponsePath(path string) (string, bool) {
	return replaceSuffix(path, PowerSpectrumSuffix, PowerSpectrumResponse)
}

// SynthFallbackPath returns the zero-padded synthetic background name used
// by older archive layouts.
func SynthFallbackPath(path string) (string, bool) {
	if !strings.Contains(path, synthPrefix) || strings.Contains(path, synthFallback) {
		return path, false
	}

	return strings.Replace(path, synthPrefix, synthFallback, 1), true
}

// Sibling resolves name relative to the directory holding primary. Absolute
// names are returned cleaned.
func Sibling(primary, name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}

	return filepath.Join(filepath.Dir(primary), name)
}

// DetectorCount parses the two-digit detector count from a response file
// name such as "nicer_d52.rmf".
func DetectorCount(response string) (int, error) {
	m := detectorToken.FindStringSubmatch(response)
	if m == nil {
		return 0, fmt.Errorf("%w: no detector token in response name %q", core.ErrMetadata, response)
	}

	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: detector count %q in %q", core.ErrMetadata, m[1], response)
	}

	return n, nil
}
