// Package lightcurve normalizes NICER light curves.
//
// A light curve is a time series of counts per tick with the number of
// active detectors. Ticks are merged adaptively when a minimum count is
// requested; the background curve is binned on the same edges. The result
// is the background-subtracted count per tick and detector, or per second
// and detector with rate normalization enabled. A cut window keeps the bins
// whose mean time falls inside it and pads the background at the window
// boundaries.
//
// Non-finite values (for example from a tick without active detectors) are
// kept as NaN so that plotting can skip them.
package lightcurve
