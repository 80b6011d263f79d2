// Package archive reads NICER data products from the observation archive.
//
// All access goes through an [afero.Fs] so callers and tests can swap the
// operating-system filesystem for an in-memory one. Files may be stored
// plain or gzip, bzip2 or xz compressed; the format is detected from the
// leading magic bytes, not the file extension.
//
// Two product formats are understood:
//
//   - FITS binary tables ([Reader.ReadFITS]) for spectra, power-density
//     spectra and response files
//   - whitespace-separated text tables ([Reader.ReadColumns]) for light
//     curves
//
// The path helpers in paths.go derive companion files (backgrounds,
// responses, per-GTI variants) from a primary product path.
package archive
