// Package spectrum normalizes NICER energy spectra.
//
// A spectrum and its background are read per detector channel, grouped into
// energy bins and converted to a background-subtracted photon flux:
//
//	flux = (counts/exposure - bg/bg_exposure) / (detectors * width_keV)
//
// Bins come from adaptive merging when a minimum count is requested, from
// the file's GROUPING column otherwise, and from a fixed channel grouping
// when the file carries none. The energy window is applied after binning,
// and the background line is padded to both window edges.
//
// Non-finite results signal corrupt input and fail with
// core.ErrNumericDegeneracy.
package spectrum
