package imaging

import "errors"

var (
	// ErrInvalidImage is returned for buffers with zero height or width, or
	// whose sample slice does not match their declared shape.
	ErrInvalidImage = errors.New("invalid image")

	// ErrUnsupportedChannelCount is returned when an operation is handed a
	// buffer whose channel count it cannot process.
	ErrUnsupportedChannelCount = errors.New("unsupported channel count")

	// ErrInvalidKernelSize is returned for kernels with an even (or zero)
	// dimension, which have no unique center.
	ErrInvalidKernelSize = errors.New("invalid kernel size")

	// ErrDivisionByZero is returned by Stretch when min equals max.
	ErrDivisionByZero = errors.New("division by zero")
)
