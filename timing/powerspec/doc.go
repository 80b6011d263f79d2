// Package powerspec normalizes binned power-density spectra (PDS).
//
// The frequency bins come from the paired response file rather than from
// the binner. Power and its error are divided by the bin width and scaled
// by the bin centre, giving f x PDS power:
//
//	power = rate / (f_max - f_min) * (f_min + f_max) / 2
//
// Non-finite results signal corrupt input and fail with
// core.ErrNumericDegeneracy.
package powerspec
