package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-nicer/timing/binning"
	"github.com/cwbudde/algo-nicer/timing/core"
	"github.com/cwbudde/algo-nicer/timing/interp"
	"go.uber.org/zap"
)

// Policy is the non-finite handling of spectra.
const Policy = core.RejectNonFinite

// DefaultCut returns the energy window in keV kept after binning.
func DefaultCut() core.Range {
	return core.Range{Low: 0.3, High: 10}
}

// DefaultRuns returns the channel grouping used when a spectrum carries no
// GROUPING column and no minimum count is requested. Each call returns a
// fresh slice.
func DefaultRuns() []binning.Run {
	return []binning.Run{
		{Start: 0, Width: 2},
		{Start: 20, Width: 3},
		{Start: 248, Width: 4},
		{Start: 600, Width: 5},
		{Start: 1200, Width: 6},
		{Start: 1494, Width: 2},
	}
}

// EdgeSource records where the bin edges came from.
type EdgeSource string

const (
	EdgesAdaptive EdgeSource = "adaptive"
	EdgesGrouping EdgeSource = "grouping"
	EdgesDefault  EdgeSource = "default"
)

// Background is the background spectrum in channel space. Counts with an
// exposure take precedence over Rate.
type Background struct {
	Counts   core.Series
	Rate     core.Series
	Exposure float64
}

func (b Background) present() bool {
	return b.Counts != nil || b.Rate != nil
}

// rate returns the background count rate per channel.
func (b Background) rate() core.Series {
	if b.Counts != nil {
		return core.Scaled(b.Counts, 1/b.Exposure)
	}

	return b.Rate
}

// Input is a spectrum in channel space.
type Input struct {
	Channel core.Series
	// Counts per channel. When nil, Rate is used and counts are recovered as
	// Rate * Exposure for binning and uncertainties.
	Counts     core.Series
	Rate       core.Series
	Exposure   float64
	Detectors  int
	Grouping   []int
	Background Background
}

// Result is a binned, normalized spectrum restricted to the energy window.
type Result struct {
	// Energy is the mean channel energy per bin in keV.
	Energy core.Series
	// HalfWidth is half the bin width in keV.
	HalfWidth core.Series
	// Flux is counts/s/keV/detector.
	Flux        core.Series
	Uncertainty core.Series
	// BackgroundEnergy and Background hold the normalized background padded
	// to the window edges; both are nil without a background.
	BackgroundEnergy core.Series
	Background       core.Series

	Detectors  int
	Exposure   float64
	Edges      binning.Edges
	EdgeSource EdgeSource
}

// DefaultConfig returns the processor defaults for spectra.
func DefaultConfig() core.ProcessorConfig {
	cfg := core.DefaultProcessorConfig()
	cfg.Cut = DefaultCut()

	return cfg
}

// Normalize bins and normalizes in. The input series are not modified.
func Normalize(in Input, opts ...core.ProcessorOption) (*Result, error) {
	cfg := core.ApplyProcessorOptions(DefaultConfig(), opts...)

	n := len(in.Channel)
	if n == 0 {
		return nil, fmt.Errorf("%w: spectrum: no channels", core.ErrInvalidInput)
	}

	if in.Detectors <= 0 {
		return nil, fmt.Errorf("%w: spectrum: detector count %d", core.ErrMetadata, in.Detectors)
	}

	counts, srcRate, err := sourceSeries(in)
	if err != nil {
		return nil, err
	}

	bgRate := make(core.Series, n)
	if in.Background.present() {
		bgRate = in.Background.rate()
		if len(bgRate) != n {
			return nil, fmt.Errorf("%w: spectrum: background has %d channels, want %d",
				core.ErrInvalidInput, len(bgRate), n)
		}
	}

	perDet := 1 / float64(in.Detectors)

	net, err := core.Difference(srcRate, bgRate)
	if err != nil {
		return nil, err
	}

	energy := make(core.Series, n)
	for i, ch := range in.Channel {
		energy[i] = core.ChannelToKeV(ch)
	}

	edges, source, err := edgesFor(in, counts, cfg.MinCount)
	if err != nil {
		return nil, err
	}

	tbl := core.NewTable().
		MustAdd("ENERGY", energy).
		MustAdd("NET", core.Scaled(net, perDet)).
		MustAdd("BACKGROUND", core.Scaled(bgRate, perDet)).
		MustAdd("COUNTS", counts)

	res, err := binning.Bin(edges, tbl,
		binning.WithMean("ENERGY"),
		binning.WithWidths(constSeries(core.ChannelWidthKeV, n)))
	if err != nil {
		return nil, err
	}

	binE, _ := res.Column("ENERGY")
	binNet, _ := res.Column("NET")
	binBG, _ := res.Column("BACKGROUND")
	countUnc, _ := res.UncertaintyOf("COUNTS")

	flux, err := core.Quotient(binNet, res.Widths)
	if err != nil {
		return nil, err
	}

	bg, err := core.Quotient(binBG, res.Widths)
	if err != nil {
		return nil, err
	}

	binned := core.NewTable().
		MustAdd("ENERGY", binE).
		MustAdd("HALFWIDTH", core.Scaled(res.Widths, 0.5)).
		MustAdd("FLUX", flux).
		MustAdd("ERROR", core.Scaled(countUnc, perDet/in.Exposure))

	kept := binned.Filter(func(row int) bool { return cfg.Cut.Contains(binE[row]) })

	out := &Result{
		Detectors:  in.Detectors,
		Exposure:   in.Exposure,
		Edges:      edges,
		EdgeSource: source,
	}
	out.Energy, _ = kept.Column("ENERGY")
	out.HalfWidth, _ = kept.Column("HALFWIDTH")
	out.Flux, _ = kept.Column("FLUX")
	out.Uncertainty, _ = kept.Column("ERROR")

	for _, c := range []struct {
		name string
		s    core.Series
	}{
		{name: "flux", s: out.Flux},
		{name: "uncertainty", s: out.Uncertainty},
	} {
		if i := core.FirstNonFinite(c.s); i >= 0 {
			return nil, fmt.Errorf("%w: spectrum: %s is %v at %.3f keV",
				core.ErrNumericDegeneracy, c.name, c.s[i], out.Energy[i])
		}
	}

	if in.Background.present() {
		out.BackgroundEnergy, out.Background = interp.PadWindow(binE, bg, cfg.Cut)
	}

	cfg.Logger.Debug("normalized spectrum",
		zap.String("edges", string(source)),
		zap.Int("channels", n),
		zap.Int("bins", edges.Bins()),
		zap.Int("kept", out.Energy.Len()),
		zap.Stringer("cut", cfg.Cut))

	return out, nil
}

// sourceSeries returns the raw counts and the count rate per channel.
func sourceSeries(in Input) (counts, rate core.Series, err error) {
	n := len(in.Channel)

	switch {
	case in.Counts != nil:
		if len(in.Counts) != n {
			return nil, nil, fmt.Errorf("%w: spectrum: %d counts for %d channels", core.ErrInvalidInput, len(in.Counts), n)
		}
		return in.Counts, core.Scaled(in.Counts, 1/in.Exposure), nil
	case in.Rate != nil:
		if len(in.Rate) != n {
			return nil, nil, fmt.Errorf("%w: spectrum: %d rates for %d channels", core.ErrInvalidInput, len(in.Rate), n)
		}
		return core.Scaled(in.Rate, in.Exposure), in.Rate, nil
	default:
		return nil, nil, fmt.Errorf("%w: spectrum: neither counts nor rate given", core.ErrInvalidInput)
	}
}

func edgesFor(in Input, counts core.Series, minCount float64) (binning.Edges, EdgeSource, error) {
	switch {
	case minCount > 0:
		e, err := binning.ComputeEdges(minCount, counts)
		return e, EdgesAdaptive, err
	case in.Grouping != nil:
		if len(in.Grouping) != len(counts) {
			return nil, "", fmt.Errorf("%w: spectrum: %d grouping flags for %d channels",
				core.ErrInvalidInput, len(in.Grouping), len(counts))
		}
		e, err := binning.EdgesFromGrouping(in.Grouping)
		return e, EdgesGrouping, err
	default:
		e, err := binning.EdgesFromRuns(len(counts), DefaultRuns())
		return e, EdgesDefault, err
	}
}

func constSeries(v float64, n int) core.Series {
	out := make(core.Series, n)
	for i := range out {
		out[i] = v
	}

	return out
}
