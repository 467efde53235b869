package imaging

import "fmt"

// BlurSize is the side of the box kernel used by Blur.
const BlurSize = 7

// Kernel is a Rows×Cols weight matrix stored row-major. Both dimensions are
// odd so the kernel has a unique center.
type Kernel struct {
	Rows   int       `json:"rows"`
	Cols   int       `json:"cols"`
	Values []float64 `json:"values"`
}

// NewKernel builds a kernel from rows of weights.
//
// All rows must have the same length and both dimensions must be odd;
// otherwise an error wrapping ErrInvalidKernelSize is returned.
func NewKernel(rows [][]float64) (*Kernel, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidKernelSize)
	}
	k := &Kernel{Rows: len(rows), Cols: len(rows[0])}
	for i, r := range rows {
		if len(r) != k.Cols {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrInvalidKernelSize, i, len(r), k.Cols)
		}
		k.Values = append(k.Values, r...)
	}
	if err := k.Validate(); err != nil {
		return nil, err
	}
	return k, nil
}

// BoxKernel returns an n×n kernel whose weights are all 1/(n*n).
func BoxKernel(n int) *Kernel {
	k := &Kernel{Rows: n, Cols: n, Values: make([]float64, n*n)}
	w := 1 / float64(n*n)
	for i := range k.Values {
		k.Values[i] = w
	}
	return k
}

// StructuringElement returns the 3×3 all-ones kernel used by the morphology
// operators.
func StructuringElement() *Kernel {
	k := &Kernel{Rows: 3, Cols: 3, Values: make([]float64, 9)}
	for i := range k.Values {
		k.Values[i] = 1
	}
	return k
}

// Validate checks that k has odd dimensions and a matching weight slice.
func (k *Kernel) Validate() error {
	if k == nil {
		return fmt.Errorf("%w: nil kernel", ErrInvalidKernelSize)
	}
	if k.Rows <= 0 || k.Cols <= 0 || k.Rows%2 == 0 || k.Cols%2 == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidKernelSize, k.Rows, k.Cols)
	}
	if len(k.Values) != k.Rows*k.Cols {
		return fmt.Errorf("%w: %d values for %dx%d", ErrInvalidKernelSize, len(k.Values), k.Rows, k.Cols)
	}
	return nil
}

// At returns the weight at kernel row i, column j.
func (k *Kernel) At(i, j int) float64 {
	return k.Values[i*k.Cols+j]
}

// Convolve applies kernel to the gray reduction of img.
//
// For every destination pixel (y, x) the result is
//
//	sum over (i, j) of kernel[i][j] * gray[y+i-Rows/2][x+j-Cols/2]
//
// accumulated in float64, kernel row outer and column inner. Source positions
// outside the image are skipped: there is no padding and the sum is not
// renormalized, so border pixels of an averaging kernel come out darker than
// interior ones. Each sum is truncated toward zero and stored wrapped to 8 bits.
func Convolve(img *Image, kernel *Kernel) (*Image, error) {
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("convolve: %w", err)
	}
	if err := kernel.Validate(); err != nil {
		return nil, fmt.Errorf("convolve: %w", err)
	}
	return convolve(toGray(img, Wrap), kernel), nil
}

func convolve(gray *Image, kernel *Kernel) *Image {
	halfRows, halfCols := kernel.Rows/2, kernel.Cols/2
	out := NewGray(gray.Height, gray.Width)
	forEachRow(gray.Height, func(y int) {
		for x := 0; x < gray.Width; x++ {
			var sum float64
			for i := 0; i < kernel.Rows; i++ {
				sy := y + i - halfRows
				if sy < 0 || sy >= gray.Height {
					continue
				}
				for j := 0; j < kernel.Cols; j++ {
					sx := x + j - halfCols
					if sx < 0 || sx >= gray.Width {
						continue
					}
					// Explicit conversion keeps the product rounded before the add.
					sum += float64(kernel.At(i, j) * float64(gray.Gray(sy, sx)))
				}
			}
			out.Pix[y*gray.Width+x] = Wrap.fromFloat(sum)
		}
	})
	return out
}

// Blur smooths img with a 7×7 box kernel. The result is a 1-channel buffer.
func Blur(img *Image) (*Image, error) {
	return Convolve(img, BoxKernel(BlurSize))
}
