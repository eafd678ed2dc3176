package filter

import "errors"

// Sentinel errors returned by the filter package. Callers can match them
// with errors.Is even when they arrive wrapped with positional context.
var (
	// ErrOutOfBounds reports an index access beyond a grid's extent.
	ErrOutOfBounds = errors.New("filter: index out of bounds")

	// ErrSizeMismatch reports a flat value buffer whose length does not
	// match the target's cell count.
	ErrSizeMismatch = errors.New("filter: value buffer size mismatch")

	// ErrDimensionMismatch reports two grids whose shapes disagree where
	// they are required to match.
	ErrDimensionMismatch = errors.New("filter: grid dimensions mismatch")

	// ErrInconsistentShape reports a channel image whose three planes no
	// longer share the same shape.
	ErrInconsistentShape = errors.New("filter: channel grids disagree in shape")

	// ErrInvalidKernelSize reports a kernel size that is not a positive
	// odd integer.
	ErrInvalidKernelSize = errors.New("filter: kernel size must be odd and positive")

	// ErrKernelLargerThanInput reports a convolution whose kernel does not
	// fit inside the input grid.
	ErrKernelLargerThanInput = errors.New("filter: kernel larger than input grid")

	// ErrInvalidDimensions reports a negative row or column count.
	ErrInvalidDimensions = errors.New("filter: negative grid dimensions")
)
