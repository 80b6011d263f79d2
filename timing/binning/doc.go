// Package binning groups contiguous samples of a series into coarser bins
// that satisfy a statistical adequacy threshold, and aggregates any number
// of aligned series over those bins.
//
// Bin boundaries come from one of three sources, all producing [Edges]:
//
//   - [ComputeEdges]: adaptive merging until each bin holds a minimum count
//   - [EdgesFromGrouping]: OGIP quality-grouping flags stored in the file
//   - [EdgesFromRuns]: fixed-width groups over channel ranges
//
// [Bin] then sums or averages every column of a [core.Table] over the edges
// and attaches the per-bin width and Poisson uncertainty
// sqrt(max(sum, 1)) / width.
//
// # Usage
//
//	edges, err := binning.ComputeEdges(25, counts)
//	res, err := binning.Bin(edges, tbl, binning.WithMean("ENERGY"))
//	energy, _ := res.Table.Column("ENERGY")
package binning
