// Package hardness builds hardness-intensity diagrams from multi-band
// NICER light curves.
//
// Each tick carries count rates in four energy bands (0.3-2, 2-4, 4-6 and
// 6-12 keV). Hardness is the ratio (4-12 keV)/(2-4 keV) and intensity the
// sum of all bands. A zero soft band gives a non-finite ratio, which is
// replaced by NaN and dropped together with every point whose hardness or
// intensity is not strictly positive.
package hardness
