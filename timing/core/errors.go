package core

import "errors"

// Error taxonomy shared by the binning, normalization and plotting layers.
// Callers test with errors.Is; concrete errors wrap one of these with the
// offending path or argument.
var (
	// ErrInvalidInput reports malformed caller arguments such as mismatched
	// list lengths or an empty series where data is required.
	ErrInvalidInput = errors.New("invalid input")

	// ErrFileAccess reports a primary or companion file that is missing or
	// unreadable.
	ErrFileAccess = errors.New("file access")

	// ErrMetadata reports a required header field that is absent or cannot be
	// parsed (exposure, detector count, response file name).
	ErrMetadata = errors.New("metadata")

	// ErrNumericDegeneracy reports non-finite results in a domain where they
	// signal corrupt input.
	ErrNumericDegeneracy = errors.New("numeric degeneracy")

	// ErrNoData reports that nothing plottable remained after filtering.
	ErrNoData = errors.New("no valid data to plot")
)

// NoDataMessage is the user-facing text for ErrNoData.
const NoDataMessage = "No valid data to plot"

// NonFinitePolicy selects how a normalizer treats NaN and Inf results.
type NonFinitePolicy int

const (
	// PropagateNaN keeps non-finite values as NaN and leaves exclusion to
	// downstream finiteness filters.
	PropagateNaN NonFinitePolicy = iota
	// RejectNonFinite turns any non-finite normalized value into
	// ErrNumericDegeneracy.
	RejectNonFinite
)

// String returns the policy name.
func (p NonFinitePolicy) String() string {
	switch p {
	case PropagateNaN:
		return "propagate-nan"
	case RejectNonFinite:
		return "reject"
	default:
		return "unknown"
	}
}
