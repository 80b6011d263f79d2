package plots

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-nicer/internal/archive"
	"github.com/cwbudde/algo-nicer/internal/config"
	"github.com/cwbudde/algo-nicer/plot"
	"github.com/cwbudde/algo-nicer/timing/core"
	"github.com/cwbudde/algo-nicer/timing/hardness"
	"github.com/cwbudde/algo-nicer/timing/lightcurve"
	"github.com/cwbudde/algo-nicer/timing/powerspec"
	"github.com/cwbudde/algo-nicer/timing/spectrum"
)

// Domain selects the data product and its normalization.
type Domain int

const (
	Spectrum Domain = iota
	LightCurve
	PowerSpectrum
	HardnessIntensity
)

// loader normalizes the file at path and appends its series to acc.
type loader func(r *archive.Reader, path string, tag plot.Tag, opts []core.ProcessorOption, acc *traces) error

type domainInfo struct {
	name    string
	aliases []string
	policy  core.NonFinitePolicy
	style   plot.Style
	load    loader
	// finish post-processes the collected traces; optional.
	finish func(acc *traces)
	// defaults returns the configured minimum count, cut and rate flag.
	defaults func(c config.Config) (minCount float64, cut []float64, rate bool)
}

// domainTable is read-only after initialization.
var domainTable = [...]domainInfo{
	Spectrum: {
		name:    "spectrum",
		aliases: []string{"jsgrp", "pha"},
		policy:  spectrum.Policy,
		style: plot.Style{
			Title:      "Spectrum",
			XTitle:     "Energy (keV)",
			YTitle:     "Photons (keV⁻¹ s⁻¹ det⁻¹)",
			XType:      plot.Log,
			YType:      plot.Log,
			ShowLegend: true,
		},
		load: loadSpectrum,
		defaults: func(c config.Config) (float64, []float64, bool) {
			return c.Spectrum.MinCount, c.Spectrum.Cut, false
		},
	},
	LightCurve: {
		name:    "lightcurve",
		aliases: []string{"lc", "light-curve"},
		policy:  lightcurve.Policy,
		style: plot.Style{
			Title:      "Light Curve",
			XTitle:     "Relative Time (s)",
			YTitle:     "Photons (s⁻¹ det⁻¹)",
			ShowLegend: true,
		},
		load: loadLightCurve,
		defaults: func(c config.Config) (float64, []float64, bool) {
			return c.LightCurve.MinCount, c.LightCurve.Cut, c.LightCurve.Rate
		},
	},
	PowerSpectrum: {
		name:    "powerspec",
		aliases: []string{"pds", "power-density"},
		policy:  powerspec.Policy,
		style: plot.Style{
			Title:      "Power Density Spectrum",
			XTitle:     "Frequency (Hz)",
			YTitle:     "f x PDS Power (rms)",
			XType:      plot.Log,
			YType:      plot.Log,
			ShowLegend: true,
		},
		load: loadPowerSpectrum,
		defaults: func(c config.Config) (float64, []float64, bool) {
			return 0, c.PowerSpec.Cut, false
		},
	},
	HardnessIntensity: {
		name:    "hardness",
		aliases: []string{"hid", "hardness-intensity"},
		policy:  hardness.Policy,
		style: plot.Style{
			Title:      "Hardness-Intensity Diagram",
			XTitle:     "Hardness (4-12 keV / 2-4 keV)",
			YTitle:     "Intensity (counts/s)",
			XType:      plot.Log,
			YType:      plot.Log,
			ColorScale: "Viridis",
			ColorTitle: "Time",
		},
		load:   loadHardness,
		finish: mergeHardness,
		defaults: func(c config.Config) (float64, []float64, bool) {
			return c.Hardness.MinCount, nil, false
		},
	},
}

// Domains returns every domain in declaration order.
func Domains() []Domain {
	out := make([]Domain, len(domainTable))
	for i := range out {
		out[i] = Domain(i)
	}

	return out
}

// ParseDomain resolves a domain name or alias, case-insensitively.
func ParseDomain(s string) (Domain, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, info := range domainTable {
		if key == info.name {
			return Domain(i), nil
		}
		for _, a := range info.aliases {
			if key == a {
				return Domain(i), nil
			}
		}
	}

	return 0, fmt.Errorf("%w: unknown plot domain %q", core.ErrInvalidInput, s)
}

func (d Domain) info() (*domainInfo, bool) {
	if d < 0 || int(d) >= len(domainTable) {
		return nil, false
	}

	return &domainTable[d], true
}

// String returns the canonical domain name.
func (d Domain) String() string {
	if info, ok := d.info(); ok {
		return info.name
	}

	return fmt.Sprintf("Domain(%d)", int(d))
}

// Policy returns the non-finite handling of the domain.
func (d Domain) Policy() core.NonFinitePolicy {
	if info, ok := d.info(); ok {
		return info.policy
	}

	return core.RejectNonFinite
}

// Style returns a copy of the default figure style of the domain.
func (d Domain) Style() plot.Style {
	if info, ok := d.info(); ok {
		return info.style
	}

	return plot.Style{}
}

// Aliases returns the alternative names accepted by ParseDomain.
func (d Domain) Aliases() []string {
	info, ok := d.info()
	if !ok {
		return nil
	}

	out := make([]string, len(info.aliases))
	copy(out, info.aliases)

	return out
}

// DefaultCut returns the configured cut window of the domain in c.
func (d Domain) DefaultCut(c config.Config) (core.Range, error) {
	info, ok := d.info()
	if !ok {
		return core.Range{}, fmt.Errorf("%w: unknown domain %d", core.ErrInvalidInput, int(d))
	}

	_, cut, _ := info.defaults(c)

	return config.CutRange(cut)
}

func loadSpectrum(r *archive.Reader, path string, tag plot.Tag, opts []core.ProcessorOption, acc *traces) error {
	res, err := spectrum.Load(r, path, opts...)
	if err != nil {
		return err
	}

	acc.add(tag, series{
		x:    res.Energy,
		y:    res.Flux,
		xErr: res.HalfWidth,
		yErr: res.Uncertainty,
		bg:   res.Background,
		bgX:  res.BackgroundEnergy,
	})

	return nil
}

func loadLightCurve(r *archive.Reader, path string, tag plot.Tag, opts []core.ProcessorOption, acc *traces) error {
	res, err := lightcurve.Load(r, path, opts...)
	if err != nil {
		return err
	}

	acc.add(tag, series{
		x:    res.Time,
		y:    res.Value,
		yErr: res.Uncertainty,
		bg:   res.Background,
		bgX:  res.BackgroundTime,
	})

	return nil
}

func loadPowerSpectrum(r *archive.Reader, path string, tag plot.Tag, opts []core.ProcessorOption, acc *traces) error {
	res, err := powerspec.Load(r, path, opts...)
	if err != nil {
		return err
	}

	acc.add(tag, series{x: res.Frequency, y: res.Power, yErr: res.Uncertainty})

	return nil
}

// loadHardness keeps the raw times in the colour slot; mergeHardness
// normalizes them across GTIs.
func loadHardness(r *archive.Reader, path string, tag plot.Tag, opts []core.ProcessorOption, acc *traces) error {
	res, err := hardness.Load(r, path, opts...)
	if err != nil {
		return err
	}

	acc.add(tag, series{x: res.Hardness, y: res.Intensity, color: res.Time})

	return nil
}

// mergeHardness folds every GTI into one trace coloured by time.
func mergeHardness(acc *traces) {
	colors := hardness.NormalizedTime(acc.colors)

	merged := series{
		x:     concat(acc.xs),
		y:     concat(acc.ys),
		color: concat(colors),
	}

	*acc = traces{}
	if len(merged.x) == 0 {
		return
	}

	acc.add(plot.Tag{Label: "HID"}, merged)
}
