package imaging

import "fmt"

// Levels is the number of gray levels of an 8-bit sample.
const Levels = 256

// Histogram counts pixels per gray level; index is the level.
type Histogram [Levels]int

// Total returns the sum of all counts.
func (h *Histogram) Total() int {
	n := 0
	for _, c := range h {
		n += c
	}
	return n
}

// Cumulative returns the running sum of h: out[v] is the number of pixels
// with level <= v.
func (h *Histogram) Cumulative() Histogram {
	var out Histogram
	out[0] = h[0]
	for v := 1; v < Levels; v++ {
		out[v] = out[v-1] + h[v]
	}
	return out
}

// Peak returns the largest count.
func (h *Histogram) Peak() int {
	m := 0
	for _, c := range h {
		if c > m {
			m = c
		}
	}
	return m
}

// ComputeHistogram converts img to gray and counts pixels per level.
// The counts sum to Height*Width.
func ComputeHistogram(img *Image) (*Histogram, error) {
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("histogram: %w", err)
	}
	return histogramOf(toGray(img, Wrap)), nil
}

func histogramOf(gray *Image) *Histogram {
	var h Histogram
	for _, v := range gray.Pix {
		h[v]++
	}
	return &h
}

// Equalize spreads the gray levels of img over the full range.
//
// The remap table is lut[v] = trunc(cdf[v] / (H*W) * 255), where cdf is the
// cumulative histogram of the gray image. The remapped gray image is
// replicated into a 3-channel result.
func Equalize(img *Image) (*Image, error) {
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("equalize: %w", err)
	}

	gray := toGray(img, Wrap)
	cdf := histogramOf(gray).Cumulative()
	total := float64(len(gray.Pix))

	var lut [Levels]uint8
	for v := range lut {
		lut[v] = Wrap.fromFloat(float64(cdf[v]) / total * 255)
	}

	for i, v := range gray.Pix {
		gray.Pix[i] = lut[v]
	}
	return broadcast(gray), nil
}

// Stretch linearly maps the gray range [min, max] of img onto [0, 255].
//
// Each sample becomes trunc(255*(gray-min)/(max-min)). Values outside
// [0,255] wrap by default; pass WithOverflow(Saturate) to clamp. The policy
// applies to the stretch only; the gray reduction always wraps as in ToGray.
// The result is replicated into a 3-channel buffer.
//
// # Errors
//
//   - ErrDivisionByZero when min == max
//   - ErrInvalidImage or ErrUnsupportedChannelCount for an invalid buffer
func Stretch(img *Image, min, max float64, opts ...Option) (*Image, error) {
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("stretch: %w", err)
	}
	if max == min {
		return nil, fmt.Errorf("stretch: %w: min and max are both %g", ErrDivisionByZero, min)
	}
	overflow := buildOptions(opts).overflow

	// Stretched level depends only on the gray level; build it once.
	var lut [Levels]uint8
	for v := range lut {
		lut[v] = overflow.fromFloat(255 * (float64(v) - min) / (max - min))
	}

	gray := toGray(img, Wrap)
	for i, v := range gray.Pix {
		gray.Pix[i] = lut[v]
	}
	return broadcast(gray), nil
}

// RenderHistogram draws h as a bar chart into a width×height gray buffer.
//
// Each of the 256 levels owns a column band of the chart; bar heights are
// scaled so the largest count reaches the top row. Bars are white on black.
func RenderHistogram(h *Histogram, width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render histogram: %w: %dx%d", ErrInvalidImage, width, height)
	}

	out := NewGray(height, width)
	peak := h.Peak()
	if peak == 0 {
		return out, nil
	}

	for x := 0; x < width; x++ {
		level := x * Levels / width
		bar := int(float64(h[level]) / float64(peak) * float64(height))
		for y := height - bar; y < height; y++ {
			out.Pix[y*width+x] = 255
		}
	}
	return out, nil
}
