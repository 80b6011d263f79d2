// Package interp provides the interpolation primitives used to resample
// background series onto the retained window of a binned product.
//
//   - [Linear2]:   2-point linear interpolation
//   - [At]:        piecewise-linear lookup on an ascending grid, clamped at
//     the grid ends
//   - [PadWindow]: window cut that adds interpolated points at both cut
//     boundaries so an overlaid line spans the window without gaps
package interp
