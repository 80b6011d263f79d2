// Package plot assembles normalized series into plot figures.
//
// A [Figure] follows the plotly figure schema (data traces plus layout) so
// it can be serialised with [Figure.JSON] or embedded in a page with
// [Figure.HTML]. [Render] builds a figure from per-GTI series: one coloured
// primary trace per [Tag], optional error bars, and an optional background
// line sharing the tag's colour and legend group. Logarithmic axes get a
// range computed over strictly positive finite values with a 10% margin.
//
// When nothing plottable remains, Render returns the [NoData] sentinel
// figure instead of an error.
//
// Sub-packages render the same figure model with other backends:
// plot/static (SVG/PNG through gonum/plot) and plot/echarts (standalone
// interactive page).
package plot
