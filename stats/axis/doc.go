// Package axis computes plot axis statistics over one or more series.
//
// [Calculate] summarises a single series, an [Accumulator] merges several
// series (one per GTI) and [LogRange] turns the result into a log10 axis
// range with a relative margin. Only strictly positive finite values take
// part in log ranges; zero, negative and non-finite samples are excluded,
// never clamped.
package axis
