package plot

import (
	"strconv"

	"github.com/cwbudde/algo-nicer/timing/core"
)

// Tag identifies one series group, typically a GTI.
type Tag struct {
	// Label names the primary trace; the background trace is "<Label> BG".
	Label string
	// Group is the legend group shared by the primary and background traces.
	Group string
}

// GTITag returns the tag used for GTI number n.
func GTITag(n int) Tag {
	return Tag{Label: "GTI" + strconv.Itoa(n), Group: strconv.Itoa(n)}
}

// GTITags maps GTI numbers to tags.
func GTITags(gtis []int) []Tag {
	tags := make([]Tag, len(gtis))
	for i, n := range gtis {
		tags[i] = GTITag(n)
	}

	return tags
}

// Style holds the per-figure presentation settings.
type Style struct {
	Title  string
	XTitle string
	YTitle string
	Mode   Mode
	XType  AxisType
	YType  AxisType
	// ShowLegend toggles the legend.
	ShowLegend bool
	// GroupToggle makes a legend click toggle the whole legend group.
	GroupToggle bool
	// Opacity of every trace; zero selects 0.8.
	Opacity float64
	Width   int
	Height  int
	// ColorScale and ColorTitle apply when per-point colour values are given.
	ColorScale string
	ColorTitle string
}

const defaultOpacity = 0.8

type renderConfig struct {
	xErrors     []core.Series
	yErrors     []core.Series
	background  []core.Series
	backgroundX []core.Series
	colors      []core.Series
	id          string
}

// Option configures Render. Every list option takes one entry per tag; a
// nil entry means "none for this tag".
type Option func(*renderConfig)

// WithXErrors attaches x error bars (for example half bin widths).
func WithXErrors(e []core.Series) Option {
	return func(cfg *renderConfig) { cfg.xErrors = e }
}

// WithYErrors attaches y error bars.
func WithYErrors(e []core.Series) Option {
	return func(cfg *renderConfig) { cfg.yErrors = e }
}

// WithBackground adds a background line per tag.
func WithBackground(bg []core.Series) Option {
	return func(cfg *renderConfig) { cfg.background = bg }
}

// WithBackgroundX gives the background lines their own x values. Without
// it backgrounds share the primary x values.
func WithBackgroundX(x []core.Series) Option {
	return func(cfg *renderConfig) { cfg.backgroundX = x }
}

// WithColors colours markers by per-point values through Style.ColorScale.
func WithColors(c []core.Series) Option {
	return func(cfg *renderConfig) { cfg.colors = c }
}

// WithID fixes the DOM id instead of generating one.
func WithID(id string) Option {
	return func(cfg *renderConfig) { cfg.id = id }
}
