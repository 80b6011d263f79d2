// Package static renders plot figures to SVG or PNG with gonum/plot, for
// reports and command-line use where no browser is available.
//
// Log axes use gonum's LogScale, which cannot place non-positive values;
// such points (and error bar ends) are dropped or clipped before drawing.
package static
