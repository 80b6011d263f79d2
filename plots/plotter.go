package plots

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-nicer/internal/archive"
	"github.com/cwbudde/algo-nicer/internal/config"
	"github.com/cwbudde/algo-nicer/plot"
	"github.com/cwbudde/algo-nicer/timing/core"
	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Request describes one plot.
type Request struct {
	// Path is the primary file. With more than one GTI it must contain a
	// GTI<n> token, which is replaced per interval.
	Path string
	// GTIs lists the intervals to load; empty means GTI 0.
	GTIs []int
	// MinCount overrides the configured minimum count per bin. Zero selects
	// the file-native grouping.
	MinCount *float64
	// Cut overrides the configured window.
	Cut *core.Range
	// ID fixes the DOM id of the figure.
	ID string
}

// Plotter renders plot requests. It holds no mutable state and is safe for
// concurrent use.
type Plotter struct {
	reader *archive.Reader
	logger *zap.Logger
	config config.Config
}

// Option configures a Plotter.
type Option func(*Plotter)

// WithLogger sets the logger. Per-GTI failures are logged at Warn.
func WithLogger(l *zap.Logger) Option {
	return func(p *Plotter) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithConfig replaces the default configuration.
func WithConfig(c config.Config) Option {
	return func(p *Plotter) { p.config = c }
}

// New returns a Plotter reading from fsys (the OS filesystem when nil).
func New(fsys afero.Fs, opts ...Option) *Plotter {
	p := &Plotter{
		logger: zap.NewNop(),
		config: config.Default(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	p.reader = archive.New(fsys, archive.WithLogger(p.logger))

	return p
}

// Plot renders req and returns an HTML fragment, or a short message when
// the plot cannot be produced.
func (p *Plotter) Plot(d Domain, req Request) string {
	fig, err := p.PlotFigure(d, req)
	if err != nil {
		p.logger.Error("plot failed",
			zap.Stringer("domain", d),
			zap.String("path", req.Path),
			zap.Error(err))

		return Message(err)
	}

	html, err := fig.HTML()
	if err != nil {
		return Message(err)
	}

	return html
}

// PlotFigure renders req. A request in which no GTI produced data returns
// the NoData figure when every failure was a missing file, and the
// collected errors otherwise.
func (p *Plotter) PlotFigure(d Domain, req Request) (*plot.Figure, error) {
	info, ok := d.info()
	if !ok {
		return nil, fmt.Errorf("%w: unknown domain %d", core.ErrInvalidInput, int(d))
	}

	if strings.TrimSpace(req.Path) == "" {
		return nil, fmt.Errorf("%w: empty path", core.ErrInvalidInput)
	}

	if lo.SomeBy(req.GTIs, func(n int) bool { return n < 0 }) {
		return nil, fmt.Errorf("%w: negative GTI in %v", core.ErrInvalidInput, req.GTIs)
	}

	opts, err := p.processorOptions(info, req)
	if err != nil {
		return nil, err
	}

	acc := &traces{}
	var merr *multierror.Error

	for _, gti := range gtiList(req) {
		path := archive.GTIPath(req.Path, gti)

		if err := info.load(p.reader, path, plot.GTITag(gti), opts, acc); err != nil {
			p.logger.Warn("skipping GTI",
				zap.Stringer("domain", d),
				zap.String("path", path),
				zap.Int("gti", gti),
				zap.Error(err))

			merr = multierror.Append(merr, fmt.Errorf("GTI%d: %w", gti, err))
		}
	}

	if acc.len() == 0 {
		if merr == nil || lo.EveryBy(merr.Errors, isFileAccess) {
			return plot.NoData(), nil
		}

		merr.ErrorFormat = listFormat

		return nil, merr.ErrorOrNil()
	}

	if info.finish != nil {
		info.finish(acc)
	}

	style := info.style
	style.Width = p.config.Plot.Width
	style.Height = p.config.Plot.Height
	style.GroupToggle = p.config.Plot.GroupToggle

	ropts := acc.options()
	if req.ID != "" {
		ropts = append(ropts, plot.WithID(req.ID))
	}

	return plot.Render(acc.tags, acc.xs, acc.ys, style, ropts...)
}

// processorOptions merges the configured defaults of the domain with the
// request overrides.
func (p *Plotter) processorOptions(info *domainInfo, req Request) ([]core.ProcessorOption, error) {
	minCount, cut, rate := info.defaults(p.config)

	window, err := config.CutRange(cut)
	if err != nil {
		return nil, err
	}
	window = lo.FromPtrOr(req.Cut, window)

	if err := window.Validate(); err != nil {
		return nil, err
	}

	minCount = lo.FromPtrOr(req.MinCount, minCount)
	if minCount < 0 {
		return nil, fmt.Errorf("%w: negative minimum count %g", core.ErrInvalidInput, minCount)
	}

	return []core.ProcessorOption{
		core.WithMinCount(minCount),
		core.WithCut(window.Low, window.High),
		core.WithRate(rate),
		core.WithLogger(p.logger),
	}, nil
}

// gtiList returns the distinct requested GTIs in request order. A path
// without a GTI token is loaded once.
func gtiList(req Request) []int {
	gtis := lo.Uniq(req.GTIs)
	if len(gtis) == 0 {
		return []int{0}
	}

	if !archive.HasGTI(req.Path) {
		return gtis[:1]
	}

	return gtis
}

func isFileAccess(err error) bool {
	return errors.Is(err, core.ErrFileAccess)
}

func listFormat(errs []error) string {
	msgs := lo.Map(errs, func(err error, _ int) string { return err.Error() })
	return strings.Join(msgs, "; ")
}

// Message maps err to the short text shown instead of a plot.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, core.ErrNoData):
		return core.NoDataMessage
	case errors.Is(err, core.ErrInvalidInput):
		return "Invalid request: " + err.Error()
	case errors.Is(err, core.ErrMetadata):
		return "Unreadable file metadata: " + err.Error()
	case errors.Is(err, core.ErrNumericDegeneracy):
		return "Corrupt data: " + err.Error()
	case errors.Is(err, core.ErrFileAccess):
		return core.NoDataMessage
	default:
		return "Plot failed: " + err.Error()
	}
}
