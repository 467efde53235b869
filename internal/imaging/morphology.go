package imaging

import "fmt"

// MorphThreshold is the level at which the composite morphology operators
// binarize their input.
const MorphThreshold = 128

// neighbors calls fn with every source sample of the 1-channel buffer img
// covered by an enabled (non-zero) weight of kernel centered at (y, x).
// Positions outside the image are not visited at all. Iteration stops as soon
// as fn returns false.
func neighbors(img *Image, kernel *Kernel, y, x int, fn func(v uint8) bool) {
	halfRows, halfCols := kernel.Rows/2, kernel.Cols/2
	for i := 0; i < kernel.Rows; i++ {
		sy := y + i - halfRows
		for j := 0; j < kernel.Cols; j++ {
			sx := x + j - halfCols
			if !img.InBounds(sy, sx) || kernel.At(i, j) == 0 {
				continue
			}
			if !fn(img.Gray(sy, sx)) {
				return
			}
		}
	}
}

// morph applies a per-pixel neighborhood rule to a validated 1-channel buffer.
func morph(img *Image, kernel *Kernel, rule func(y, x int) uint8) *Image {
	out := NewGray(img.Height, img.Width)
	forEachRow(img.Height, func(y int) {
		for x := 0; x < img.Width; x++ {
			out.Pix[y*img.Width+x] = rule(y, x)
		}
	})
	return out
}

func dilate(img *Image, kernel *Kernel) *Image {
	return morph(img, kernel, func(y, x int) uint8 {
		v := Black
		neighbors(img, kernel, y, x, func(s uint8) bool {
			if s != 0 {
				v = White
				return false
			}
			return true
		})
		return v
	})
}

func erode(img *Image, kernel *Kernel) *Image {
	return morph(img, kernel, func(y, x int) uint8 {
		v := White
		neighbors(img, kernel, y, x, func(s uint8) bool {
			if s == 0 {
				v = Black
				return false
			}
			return true
		})
		return v
	})
}

func checkBinaryInput(op string, img *Image) error {
	if err := img.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if img.Channels != 1 {
		return fmt.Errorf("%s: %w: %d, want 1", op, ErrUnsupportedChannelCount, img.Channels)
	}
	return nil
}

// Dilate sets a pixel White when any in-bounds neighbor under the 3×3
// structuring element is non-zero, and Black otherwise.
//
// img must have 1 channel; any non-zero sample counts as true. Neighbors
// outside the image are ignored, so border pixels only need one true neighbor
// among those that exist.
func Dilate(img *Image) (*Image, error) {
	if err := checkBinaryInput("dilate", img); err != nil {
		return nil, err
	}
	return dilate(img, StructuringElement()), nil
}

// Erode sets a pixel Black when any in-bounds neighbor under the 3×3
// structuring element is zero, and White otherwise.
//
// img must have 1 channel. Neighbors outside the image are ignored, so a
// border pixel survives as long as the neighbors that exist are all true.
func Erode(img *Image) (*Image, error) {
	if err := checkBinaryInput("erode", img); err != nil {
		return nil, err
	}
	return erode(img, StructuringElement()), nil
}

// binarizeForMorph validates img and returns its binarization at
// MorphThreshold.
func binarizeForMorph(op string, img *Image) (*Image, error) {
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return binarize(toGray(img, Wrap), MorphThreshold), nil
}

// Opening binarizes img at 128 then applies erosion followed by dilation.
func Opening(img *Image) (*Image, error) {
	b, err := binarizeForMorph("opening", img)
	if err != nil {
		return nil, err
	}
	se := StructuringElement()
	return dilate(erode(b, se), se), nil
}

// Closing binarizes img at 128 then applies dilation followed by erosion.
func Closing(img *Image) (*Image, error) {
	b, err := binarizeForMorph("closing", img)
	if err != nil {
		return nil, err
	}
	se := StructuringElement()
	return erode(dilate(b, se), se), nil
}

// OpeningTopHat returns binarize(img, 128) - Opening(img), isolating bright
// features smaller than the structuring element.
//
// Subtraction is per sample. Where the opening is brighter than the
// binarization the result wraps by default; pass WithOverflow(Saturate) to
// clamp at 0.
func OpeningTopHat(img *Image, opts ...Option) (*Image, error) {
	b, err := binarizeForMorph("opening top-hat", img)
	if err != nil {
		return nil, err
	}
	se := StructuringElement()
	return subtract(b, dilate(erode(b, se), se), buildOptions(opts).overflow), nil
}

// ClosingTopHat returns Closing(img) - binarize(img, 128), isolating dark
// features smaller than the structuring element. Overflow is handled as in
// OpeningTopHat.
func ClosingTopHat(img *Image, opts ...Option) (*Image, error) {
	b, err := binarizeForMorph("closing top-hat", img)
	if err != nil {
		return nil, err
	}
	se := StructuringElement()
	return subtract(erode(dilate(b, se), se), b, buildOptions(opts).overflow), nil
}

// EdgeDetect extracts the morphological boundary of img.
//
// With B = binarize(img, 128):
//
//	result = (B - dilate(B)) + (B - erode(B))
//
// The second term marks the inner boundary at 255. The first term is
// negative on the outer boundary; under the default Wrap policy it stores 1
// there, under Saturate it stores 0 and only the inner boundary remains.
// Uniform images produce an all-zero result under either policy.
func EdgeDetect(img *Image, opts ...Option) (*Image, error) {
	b, err := binarizeForMorph("edge detect", img)
	if err != nil {
		return nil, err
	}
	overflow := buildOptions(opts).overflow
	se := StructuringElement()

	outer := subtract(b, dilate(b, se), overflow)
	inner := subtract(b, erode(b, se), overflow)
	for i := range outer.Pix {
		outer.Pix[i] = overflow.add(outer.Pix[i], inner.Pix[i])
	}
	return outer, nil
}

// subtract returns a-b sample by sample for two buffers of the same shape.
func subtract(a, b *Image, overflow Overflow) *Image {
	out := NewImage(a.Height, a.Width, a.Channels)
	for i := range out.Pix {
		out.Pix[i] = overflow.sub(a.Pix[i], b.Pix[i])
	}
	return out
}
