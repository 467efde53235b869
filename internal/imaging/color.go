package imaging

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Luma weights applied by ToGray. They sum to 1.030, so bright pixels can
// exceed 255 before conversion.
const (
	LumaRed   = 0.299
	LumaGreen = 0.587
	LumaBlue  = 0.144
)

// ToGray reduces img to a single luma channel.
//
// For a 3-channel buffer each output sample is
//
//	trunc(0.299*red + 0.587*green + 0.144*blue)
//
// with red, green and blue read from channels 2, 1 and 0. Values above 255
// wrap by default (a white pixel computes to 262 and is stored as 6); pass
// WithOverflow(Saturate) to clamp them. A 1-channel buffer is already luma and
// is returned as a copy.
//
// The input is never modified.
func ToGray(img *Image, opts ...Option) (*Image, error) {
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("to gray: %w", err)
	}
	return toGray(img, buildOptions(opts).overflow), nil
}

// toGray assumes img has already been validated.
func toGray(img *Image, overflow Overflow) *Image {
	if img.Channels == 1 {
		return img.Clone()
	}

	out := NewGray(img.Height, img.Width)
	forEachRow(img.Height, func(y int) {
		for x := 0; x < img.Width; x++ {
			i := img.offset(y, x)
			red := float64(img.Pix[i+ChannelRed])
			green := float64(img.Pix[i+ChannelGreen])
			blue := float64(img.Pix[i+ChannelBlue])
			out.Pix[y*img.Width+x] = overflow.fromFloat(float64(LumaRed*red) + float64(LumaGreen*green) + float64(LumaBlue*blue))
		}
	})
	return out
}

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// PixelResult describes one pixel of a buffer.
type PixelResult struct {
	X        int      `json:"x"`
	Y        int      `json:"y"`
	Channels int      `json:"channels"`
	Samples  []int    `json:"samples"` // Raw samples in storage order
	Hex      string   `json:"hex"`     // "#rrggbb"
	RGB      RGBColor `json:"rgb"`
	HSL      HSLColor `json:"hsl"`
}

// SamplePixel reports the value at column x, row y of img.
//
// Samples holds the raw stored values (blue, green, red for a 3-channel
// buffer). Hex, RGB and HSL are derived in canonical red-green-blue order; a
// 1-channel sample is reported as the gray color with that level.
//
// # Errors
//
//   - Returns an error wrapping ErrInvalidImage or ErrUnsupportedChannelCount
//     for an invalid buffer
//   - Returns an error if (x, y) is outside the image bounds
func SamplePixel(img *Image, x, y int) (*PixelResult, error) {
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("sample pixel: %w", err)
	}
	if !img.InBounds(y, x) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	raw := img.Pix[img.offset(y, x) : img.offset(y, x)+img.Channels]
	samples := make([]int, len(raw))
	for i, v := range raw {
		samples[i] = int(v)
	}

	var r, g, b uint8
	if img.Channels == 1 {
		r, g, b = raw[0], raw[0], raw[0]
	} else {
		r, g, b = raw[ChannelRed], raw[ChannelGreen], raw[ChannelBlue]
	}

	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, l := c.Hsl()
	if math.IsNaN(h) {
		h = 0
	}

	return &PixelResult{
		X:        x,
		Y:        y,
		Channels: img.Channels,
		Samples:  samples,
		Hex:      c.Hex(),
		RGB:      RGBColor{R: r, G: g, B: b},
		HSL:      HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
	}, nil
}
