package binning

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-nicer/timing/core"
)

// Aggregation selects how samples inside a bin are combined.
type Aggregation int

const (
	// Sum adds the samples of a bin; used for count-like quantities.
	Sum Aggregation = iota
	// Mean averages the samples of a bin (weighted when weights are given);
	// used for axis quantities such as energy or time.
	Mean
)

// String returns the aggregation name.
func (a Aggregation) String() string {
	switch a {
	case Sum:
		return "sum"
	case Mean:
		return "mean"
	default:
		return "unknown"
	}
}

// Result holds the binned columns together with per-bin widths and
// uncertainties. Column names and order follow the input table.
type Result struct {
	Edges Edges
	// Table holds the aggregated value of every input column.
	Table *core.Table
	// Widths is the sample count per bin, or the summed physical width when
	// WithWidths was given.
	Widths core.Series
	// Uncertainty holds sqrt(max(sum, 1)) / width per column and bin, where
	// sum is the raw (unweighted) sum of the column over the bin.
	Uncertainty *core.Table
}

// Bins returns the number of bins.
func (r *Result) Bins() int { return r.Edges.Bins() }

// Column returns a binned column by name.
func (r *Result) Column(name string) (core.Series, error) { return r.Table.Column(name) }

// UncertaintyOf returns the uncertainty column for name.
func (r *Result) UncertaintyOf(name string) (core.Series, error) { return r.Uncertainty.Column(name) }

type binConfig struct {
	mean    map[string]bool
	weights core.Series
	widths  core.Series
}

// Option configures Bin.
type Option func(*binConfig)

// WithMean aggregates the named columns by mean instead of sum.
func WithMean(columns ...string) Option {
	return func(cfg *binConfig) {
		for _, c := range columns {
			cfg.mean[c] = true
		}
	}
}

// WithWeights turns mean aggregation into a weighted mean sum(w*x)/sum(w).
// Sum columns are unaffected.
func WithWeights(w core.Series) Option {
	return func(cfg *binConfig) {
		cfg.weights = w
	}
}

// WithWidths reports bin widths as the sum of a per-sample physical width
// (for example energy or time per sample) instead of the sample count.
func WithWidths(w core.Series) Option {
	return func(cfg *binConfig) {
		cfg.widths = w
	}
}

// Bin aggregates every column of data over edges. The input table is not
// modified.
func Bin(edges Edges, data *core.Table, opts ...Option) (*Result, error) {
	if data == nil || data.NumColumns() == 0 {
		return nil, fmt.Errorf("%w: binning: no data columns", core.ErrInvalidInput)
	}

	n := data.Len()
	if n == 0 {
		return nil, fmt.Errorf("%w: binning: empty data", core.ErrInvalidInput)
	}

	if err := edges.Validate(n); err != nil {
		return nil, err
	}

	cfg := binConfig{mean: make(map[string]bool)}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.weights != nil && len(cfg.weights) != n {
		return nil, fmt.Errorf("%w: binning: %d weights for %d samples", core.ErrInvalidInput, len(cfg.weights), n)
	}

	if cfg.widths != nil && len(cfg.widths) != n {
		return nil, fmt.Errorf("%w: binning: %d widths for %d samples", core.ErrInvalidInput, len(cfg.widths), n)
	}

	for name := range cfg.mean {
		if !data.Has(name) {
			return nil, fmt.Errorf("%w: binning: mean column %q not in data", core.ErrInvalidInput, name)
		}
	}

	widths := binWidths(edges, cfg.widths)

	out := core.NewTable()
	unc := core.NewTable()

	for _, name := range data.Names() {
		col, _ := data.Column(name)

		agg := Sum
		if cfg.mean[name] {
			agg = Mean
		}

		values, sums := aggregate(edges, col, agg, cfg.weights)
		if err := out.Add(name, values); err != nil {
			return nil, err
		}

		if err := unc.Add(name, poisson(sums, widths)); err != nil {
			return nil, err
		}
	}

	return &Result{
		Edges:       edges,
		Table:       out,
		Widths:      widths,
		Uncertainty: unc,
	}, nil
}

// BinSeries aggregates a single series over edges and returns the values,
// the sample-count widths and the Poisson uncertainty.
func BinSeries(edges Edges, s core.Series, agg Aggregation) (values, widths, uncertainty core.Series, err error) {
	const name = "series"

	tbl := core.NewTable()
	if err = tbl.Add(name, s); err != nil {
		return nil, nil, nil, err
	}

	var opts []Option
	if agg == Mean {
		opts = append(opts, WithMean(name))
	}

	res, err := Bin(edges, tbl, opts...)
	if err != nil {
		return nil, nil, nil, err
	}

	values, _ = res.Column(name)
	uncertainty, _ = res.UncertaintyOf(name)

	return values, res.Widths, uncertainty, nil
}

func binWidths(edges Edges, physical core.Series) core.Series {
	out := make(core.Series, edges.Bins())
	for b := range out {
		lo, hi := edges[b], edges[b+1]
		if physical == nil {
			out[b] = float64(hi - lo)
			continue
		}

		w := 0.0
		for i := lo; i < hi; i++ {
			w += physical[i]
		}
		out[b] = w
	}

	return out
}

// aggregate returns the aggregated values and the raw per-bin sums.
func aggregate(edges Edges, col core.Series, agg Aggregation, weights core.Series) (values, sums core.Series) {
	bins := edges.Bins()
	values = make(core.Series, bins)
	sums = make(core.Series, bins)

	for b := 0; b < bins; b++ {
		lo, hi := edges[b], edges[b+1]

		sum := 0.0
		for i := lo; i < hi; i++ {
			sum += col[i]
		}
		sums[b] = sum

		switch {
		case agg == Sum:
			values[b] = sum
		case weights == nil:
			values[b] = sum / float64(hi-lo)
		default:
			var wx, ws float64
			for i := lo; i < hi; i++ {
				wx += weights[i] * col[i]
				ws += weights[i]
			}
			values[b] = wx / ws
		}
	}

	return values, sums
}

func poisson(sums, widths core.Series) core.Series {
	out := make(core.Series, len(sums))
	for b, s := range sums {
		out[b] = math.Sqrt(math.Max(s, 1)) / widths[b]
	}

	return out
}
