package imaging

import "fmt"

// Binary sample values.
const (
	Black uint8 = 0
	White uint8 = 255
)

// Binarize converts img to gray and maps every level >= threshold to White
// and every other level to Black.
func Binarize(img *Image, threshold float64) (*Image, error) {
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("binarize: %w", err)
	}
	return binarize(toGray(img, Wrap), threshold), nil
}

// binarize thresholds a gray buffer in place and returns it.
func binarize(gray *Image, threshold float64) *Image {
	for i, v := range gray.Pix {
		if float64(v) >= threshold {
			gray.Pix[i] = White
		} else {
			gray.Pix[i] = Black
		}
	}
	return gray
}

// Invert produces the negative of img relative to its own brightest sample.
//
// M is the largest raw sample found in any channel of the input (not a fixed
// 255), and each output pixel is M - gray. Gray levels above M, which the
// luma weights make possible, wrap by default; pass WithOverflow(Saturate) to
// clamp them to 0. The result is a 1-channel buffer.
func Invert(img *Image, opts ...Option) (*Image, error) {
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("invert: %w", err)
	}
	overflow := buildOptions(opts).overflow

	ceiling := img.Max()
	gray := toGray(img, Wrap)
	for i, v := range gray.Pix {
		gray.Pix[i] = overflow.sub(ceiling, v)
	}
	return gray, nil
}
