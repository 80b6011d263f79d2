package static

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-nicer/plot"
	"github.com/cwbudde/algo-nicer/timing/core"
	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Format is an output image format.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

// ErrFormat reports an unsupported output format.
var ErrFormat = errors.New("static: unsupported format")

type config struct {
	width  vg.Length
	height vg.Length
}

// Option configures Write.
type Option func(*config)

// WithSize sets the canvas size.
func WithSize(width, height vg.Length) Option {
	return func(c *config) {
		if width > 0 && height > 0 {
			c.width, c.height = width, height
		}
	}
}

// WithPixels sets the canvas size from a pixel count at 96 dpi, matching the
// figure layout units.
func WithPixels(width, height int) Option {
	return WithSize(vg.Length(width)*vg.Inch/96, vg.Length(height)*vg.Inch/96)
}

// Write draws fig and encodes it to w. The "no data" sentinel fails with
// core.ErrNoData.
func Write(w io.Writer, fig *plot.Figure, format Format, opts ...Option) error {
	if format != SVG && format != PNG {
		return fmt.Errorf("%w: %q", ErrFormat, format)
	}

	if fig.IsNoData() {
		return core.ErrNoData
	}

	cfg := config{width: 16 * vg.Centimeter, height: 12 * vg.Centimeter}
	if fig.Layout.Width > 0 && fig.Layout.Height > 0 {
		WithPixels(fig.Layout.Width, fig.Layout.Height)(&cfg)
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	p, err := Build(fig)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(cfg.width, cfg.height, string(format))
	if err != nil {
		return fmt.Errorf("static: %w", err)
	}

	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("static: write %s: %w", format, err)
	}

	return nil
}

// errorPoints carries points with symmetric error bars.
type errorPoints struct {
	plotter.XYs
	plotter.XErrors
	plotter.YErrors
}

// Build converts fig into a gonum plot.
func Build(fig *plot.Figure) (*gplot.Plot, error) {
	p := gplot.New()

	if fig.Layout.Title != nil {
		p.Title.Text = fig.Layout.Title.Text
	}

	logX := configureAxis(&p.X, fig.Layout.XAxis)
	logY := configureAxis(&p.Y, fig.Layout.YAxis)

	for i := range fig.Data {
		tr := &fig.Data[i]

		c := parseColor(tr.Color(), i)
		pts := points(tr, logX, logY)
		if len(pts.XYs) == 0 {
			continue
		}

		if tr.Mode == plot.Lines || tr.Mode == plot.LinesMarkers {
			l, err := plotter.NewLine(pts.XYs)
			if err != nil {
				return nil, fmt.Errorf("static: trace %q: %w", tr.Name, err)
			}
			l.LineStyle.Color = c
			l.LineStyle.Width = vg.Points(1.5)
			if tr.Background {
				l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
			}
			p.Add(l)
			p.Legend.Add(tr.Name, l)
		}

		if tr.Mode == plot.Markers || tr.Mode == plot.LinesMarkers {
			s, err := plotter.NewScatter(pts.XYs)
			if err != nil {
				return nil, fmt.Errorf("static: trace %q: %w", tr.Name, err)
			}
			s.GlyphStyle.Color = c
			s.GlyphStyle.Radius = vg.Points(2)
			s.GlyphStyle.Shape = draw.CircleGlyph{}
			p.Add(s)
			if tr.Mode == plot.Markers {
				p.Legend.Add(tr.Name, s)
			}
		}

		if tr.ErrorY != nil {
			e, err := plotter.NewYErrorBars(pts)
			if err != nil {
				return nil, fmt.Errorf("static: trace %q: %w", tr.Name, err)
			}
			e.LineStyle.Color = c
			p.Add(e)
		}

		if tr.ErrorX != nil {
			e, err := plotter.NewXErrorBars(pts)
			if err != nil {
				return nil, fmt.Errorf("static: trace %q: %w", tr.Name, err)
			}
			e.LineStyle.Color = c
			p.Add(e)
		}
	}

	return p, nil
}

func configureAxis(a *gplot.Axis, ax plot.Axis) bool {
	if ax.Title != nil {
		a.Label.Text = ax.Title.Text
	}

	log := ax.Type == plot.Log
	if log {
		a.Scale = gplot.LogScale{}
		a.Tick.Marker = gplot.LogTicks{Prec: -1}
	}

	if len(ax.Range) == 2 {
		lo, hi := ax.Range[0], ax.Range[1]
		if log {
			lo, hi = math.Pow(10, lo), math.Pow(10, hi)
		}
		a.Min, a.Max = lo, hi
	}

	return log
}

// points keeps the finite samples of tr that a log axis can place and
// clips error bars so their ends stay positive on log axes.
func points(tr *plot.Trace, logX, logY bool) errorPoints {
	var pts errorPoints

	for i := range tr.X {
		x, y := tr.X[i], tr.Y[i]
		if !finite(x) || !finite(y) || (logX && x <= 0) || (logY && y <= 0) {
			continue
		}

		pts.XYs = append(pts.XYs, plotter.XY{X: x, Y: y})
		pts.XErrors = append(pts.XErrors, errorAt(tr.ErrorX, i, x, logX))
		pts.YErrors = append(pts.YErrors, errorAt(tr.ErrorY, i, y, logY))
	}

	return pts
}

func errorAt(bar *plot.ErrorBar, i int, v float64, log bool) struct{ Low, High float64 } {
	if bar == nil || i >= len(bar.Array) || !finite(bar.Array[i]) {
		return struct{ Low, High float64 }{}
	}

	e := math.Abs(bar.Array[i])
	low := e
	if log && v-low <= 0 {
		low = 0.99 * v
	}

	return struct{ Low, High float64 }{Low: low, High: e}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// parseColor decodes "#RRGGBB", falling back to the palette entry for i.
func parseColor(hex string, i int) color.Color {
	if c, ok := decodeHex(hex); ok {
		return c
	}

	c, _ := decodeHex(plot.Color(i))

	return c
}

func decodeHex(hex string) (color.RGBA, bool) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return color.RGBA{}, false
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}

	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
}
