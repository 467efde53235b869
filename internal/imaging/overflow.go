package imaging

import "math"

// Overflow selects how a result outside [0,255] is stored into an 8-bit sample.
type Overflow int

const (
	// Wrap truncates toward zero and keeps the low 8 bits, so 262 becomes 6
	// and -1 becomes 255. This is the default.
	Wrap Overflow = iota

	// Saturate truncates toward zero and clamps to [0,255].
	Saturate
)

// String returns "wrap" or "saturate".
func (o Overflow) String() string {
	if o == Saturate {
		return "saturate"
	}
	return "wrap"
}

// Option configures an operation with unbounded arithmetic.
type Option func(*options)

type options struct {
	overflow Overflow
}

// WithOverflow selects the overflow policy of an operation.
func WithOverflow(o Overflow) Option {
	return func(opts *options) {
		opts.overflow = o
	}
}

func buildOptions(opts []Option) options {
	o := options{overflow: Wrap}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// fromFloat truncates v toward zero and stores it per policy.
func (o Overflow) fromFloat(v float64) uint8 {
	t := math.Trunc(v)
	if o == Saturate {
		switch {
		case t < 0:
			return 0
		case t > 255:
			return 255
		}
		return uint8(t)
	}
	// Float to uint8 conversion of out-of-range values is implementation
	// defined; int64 first.
	return uint8(int64(t))
}

// fromInt stores an integer result per policy.
func (o Overflow) fromInt(v int) uint8 {
	if o == Saturate {
		switch {
		case v < 0:
			return 0
		case v > 255:
			return 255
		}
	}
	return uint8(v)
}

// sub computes a-b per policy.
func (o Overflow) sub(a, b uint8) uint8 {
	return o.fromInt(int(a) - int(b))
}

// add computes a+b per policy.
func (o Overflow) add(a, b uint8) uint8 {
	return o.fromInt(int(a) + int(b))
}
