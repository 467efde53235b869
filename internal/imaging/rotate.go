package imaging

import (
	"fmt"
	"math"
)

// Rotation angles used by the editor's "rotate left" and "rotate right" actions.
const (
	AngleLeft  = 90.0
	AngleRight = -90.0
)

// Rotate turns img by degrees about its center using inverse-mapped
// nearest-neighbor sampling.
//
// With cx = W/2, cy = H/2 and θ = degrees, each destination pixel (row i,
// column j) reads the source at
//
//	x = cosθ·j − sinθ·i + cx(1−cosθ) + cy·sinθ
//	y = sinθ·j + cosθ·i + cy(1−cosθ) − cx·sinθ
//
// truncated to integers. Destination pixels whose source falls outside
// [0,W)×[0,H) stay black. The output has the same shape as the input.
//
// There is no interpolation, so rotating by +90 then −90 is not guaranteed to
// restore boundary pixels.
func Rotate(img *Image, degrees float64) (*Image, error) {
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("rotate: %w", err)
	}

	rad := degrees * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	cx, cy := float64(img.Width)/2, float64(img.Height)/2

	m := [2][3]float64{
		{cos, -sin, cx*(1-cos) + cy*sin},
		{sin, cos, cy*(1-cos) - cx*sin},
	}

	w, h := float64(img.Width), float64(img.Height)
	out := NewImage(img.Height, img.Width, img.Channels)
	forEachRow(img.Height, func(i int) {
		fi := float64(i)
		for j := 0; j < img.Width; j++ {
			fj := float64(j)
			x := m[0][0]*fj + m[0][1]*fi + m[0][2]
			y := m[1][0]*fj + m[1][1]*fi + m[1][2]
			if x < 0 || x >= w || y < 0 || y >= h {
				continue
			}
			src := img.offset(int(y), int(x))
			dst := out.offset(i, j)
			copy(out.Pix[dst:dst+img.Channels], img.Pix[src:src+img.Channels])
		}
	})
	return out, nil
}

// RotateLeft rotates img by +90 degrees.
func RotateLeft(img *Image) (*Image, error) {
	return Rotate(img, AngleLeft)
}

// RotateRight rotates img by −90 degrees.
func RotateRight(img *Image) (*Image, error) {
	return Rotate(img, AngleRight)
}
