package spectrum

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-nicer/internal/archive"
	"github.com/cwbudde/algo-nicer/timing/core"
	"go.uber.org/zap"
)

// Header keywords read from spectrum files.
const (
	keyExposure  = "EXPOSURE"
	keyResponse  = "FKRSP001"
	keyRespFile  = "RESPFILE"
	keyBackFile  = "BACKFILE"
	columnCounts = "COUNTS"
	columnRate   = "RATE"
)

// Load reads the spectrum at path and its background, then normalizes them.
func Load(r *archive.Reader, path string, opts ...core.ProcessorOption) (*Result, error) {
	in, err := Read(r, path, opts...)
	if err != nil {
		return nil, err
	}

	return Normalize(in, opts...)
}

// Read loads the spectrum at path and its background into an Input.
func Read(r *archive.Reader, path string, opts ...core.ProcessorOption) (Input, error) {
	cfg := core.ApplyProcessorOptions(DefaultConfig(), opts...)

	f, err := r.ReadFITS(path)
	if err != nil {
		return Input{}, err
	}

	spec, err := f.HDU(1)
	if err != nil {
		return Input{}, err
	}

	exposure, err := spec.Header.Float(keyExposure)
	if err != nil {
		return Input{}, fmt.Errorf("%s: %w", path, err)
	}

	detectors, err := detectorCount(spec.Header)
	if err != nil {
		return Input{}, fmt.Errorf("%s: %w", path, err)
	}

	in := Input{Exposure: exposure, Detectors: detectors}

	if in.Channel, err = spec.Data.Column("CHANNEL"); err != nil {
		return Input{}, fmt.Errorf("%w: %s: %w", core.ErrMetadata, path, err)
	}

	switch {
	case spec.Data.Has(columnCounts):
		in.Counts, _ = spec.Data.Column(columnCounts)
	case spec.Data.Has(columnRate):
		in.Rate, _ = spec.Data.Column(columnRate)
	default:
		return Input{}, fmt.Errorf("%w: %s: no %s or %s column", core.ErrMetadata, path, columnCounts, columnRate)
	}

	if spec.Data.Has("GROUPING") {
		g, _ := spec.Data.Column("GROUPING")
		in.Grouping = make([]int, len(g))
		for i, v := range g {
			in.Grouping[i] = int(v)
		}
	}

	bgPath, err := backgroundPath(r, path, spec.Header)
	if err != nil {
		return Input{}, err
	}

	cfg.Logger.Debug("spectrum background", zap.String("path", path), zap.String("background", bgPath))

	if in.Background, err = readBackground(r, bgPath); err != nil {
		return Input{}, err
	}

	return in, nil
}

// detectorCount parses the detector count from the response file name,
// preferring FKRSP001 over RESPFILE.
func detectorCount(h archive.Header) (int, error) {
	for _, key := range []string{keyResponse, keyRespFile} {
		if !h.Has(key) {
			continue
		}

		name, err := h.String(key)
		if err != nil {
			return 0, err
		}

		return archive.DetectorCount(name)
	}

	return 0, fmt.Errorf("%w: neither %s nor %s present", core.ErrMetadata, keyResponse, keyRespFile)
}

// backgroundPath tries, in order: the ".bg" sibling of a ".jsgrp" spectrum,
// the BACKFILE keyword relative to the spectrum directory, and the
// zero-padded synthetic background name.
func backgroundPath(r *archive.Reader, path string, h archive.Header) (string, error) {
	var candidates []string

	if p, ok := archive.SpectrumBackgroundPath(path); ok {
		candidates = append(candidates, p)
	}

	if h.Has(keyBackFile) {
		name, err := h.String(keyBackFile)
		if err == nil && name != "" && !strings.EqualFold(name, "none") {
			p := archive.Sibling(path, name)
			candidates = append(candidates, p)
			if fb, ok := archive.SynthFallbackPath(p); ok {
				candidates = append(candidates, fb)
			}
		}
	}

	for _, c := range candidates {
		if r.Exists(c) {
			return c, nil
		}
	}

	return "", fmt.Errorf("%w: %s: no background among %v", core.ErrFileAccess, path, candidates)
}

func readBackground(r *archive.Reader, path string) (Background, error) {
	f, err := r.ReadFITS(path)
	if err != nil {
		return Background{}, err
	}

	t, err := f.HDU(1)
	if err != nil {
		return Background{}, err
	}

	if t.Data.Has(columnCounts) {
		exposure, err := t.Header.Float(keyExposure)
		if err != nil {
			return Background{}, fmt.Errorf("%s: %w", path, err)
		}

		counts, _ := t.Data.Column(columnCounts)

		return Background{Counts: counts, Exposure: exposure}, nil
	}

	if t.Data.Has(columnRate) {
		rate, _ := t.Data.Column(columnRate)
		return Background{Rate: rate}, nil
	}

	return Background{}, fmt.Errorf("%w: %s: no %s or %s column", core.ErrMetadata, path, columnCounts, columnRate)
}
