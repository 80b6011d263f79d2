// Package plots is the request-level entry point of the engine.
//
// A Plotter resolves a Domain to its normalizer, loads one file per
// requested GTI, renders the normalized series and returns an embeddable
// HTML fragment. Failures of single GTIs are logged and skipped; when
// nothing remains the result is the "No valid data to plot" message. No
// error value reaches the caller of Plot, only short messages.
package plots
