package imaging

import (
	"fmt"

	"github.com/anthonynsimon/bild/parallel"
)

// Channel indices of a 3-channel buffer. Samples are stored in (blue, green,
// red) order, the order Load produces.
const (
	ChannelBlue  = 0
	ChannelGreen = 1
	ChannelRed   = 2
)

// Image is a dense 8-bit pixel buffer.
//
// Samples are stored row-major with channels interleaved:
//
//	Pix[(y*Width+x)*Channels+c]
//
// A 1-channel Image holds gray levels (or binary 0/255 masks). A 3-channel
// Image holds (blue, green, red) samples.
type Image struct {
	Height   int     `json:"height"`
	Width    int     `json:"width"`
	Channels int     `json:"channels"`
	Pix      []uint8 `json:"-"`
}

// NewImage allocates a zero-filled (black) buffer of the given shape.
//
// The shape is not validated here; operations validate their inputs with
// Validate before use.
func NewImage(height, width, channels int) *Image {
	n := 0
	if height > 0 && width > 0 && channels > 0 {
		n = height * width * channels
	}
	return &Image{
		Height:   height,
		Width:    width,
		Channels: channels,
		Pix:      make([]uint8, n),
	}
}

// NewGray allocates a zero-filled 1-channel buffer.
func NewGray(height, width int) *Image {
	return NewImage(height, width, 1)
}

// Validate reports whether img is a usable buffer.
//
// It returns ErrInvalidImage for a nil buffer, a non-positive height or width,
// or a sample slice whose length does not match the shape, and
// ErrUnsupportedChannelCount for channel counts other than 1 or 3.
func (img *Image) Validate() error {
	if img == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidImage)
	}
	if img.Height <= 0 || img.Width <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidImage, img.Width, img.Height)
	}
	if img.Channels != 1 && img.Channels != 3 {
		return fmt.Errorf("%w: %d", ErrUnsupportedChannelCount, img.Channels)
	}
	if len(img.Pix) != img.Height*img.Width*img.Channels {
		return fmt.Errorf("%w: %d samples for %dx%dx%d",
			ErrInvalidImage, len(img.Pix), img.Width, img.Height, img.Channels)
	}
	return nil
}

// Clone returns a deep copy of img.
func (img *Image) Clone() *Image {
	out := &Image{Height: img.Height, Width: img.Width, Channels: img.Channels}
	out.Pix = make([]uint8, len(img.Pix))
	copy(out.Pix, img.Pix)
	return out
}

// At returns the sample of channel c at row y, column x.
func (img *Image) At(y, x, c int) uint8 {
	return img.Pix[img.offset(y, x)+c]
}

// Set stores v into channel c at row y, column x.
func (img *Image) Set(y, x, c int, v uint8) {
	img.Pix[img.offset(y, x)+c] = v
}

// Gray returns the sample at (y, x) of a 1-channel buffer.
func (img *Image) Gray(y, x int) uint8 {
	return img.Pix[y*img.Width+x]
}

// InBounds reports whether (y, x) addresses a pixel of img.
func (img *Image) InBounds(y, x int) bool {
	return y >= 0 && y < img.Height && x >= 0 && x < img.Width
}

// Max returns the largest raw sample of any channel.
func (img *Image) Max() uint8 {
	var m uint8
	for _, v := range img.Pix {
		if v > m {
			m = v
		}
	}
	return m
}

func (img *Image) offset(y, x int) int {
	return (y*img.Width + x) * img.Channels
}

// broadcast replicates a 1-channel buffer into a 3-channel one.
func broadcast(gray *Image) *Image {
	out := NewImage(gray.Height, gray.Width, 3)
	for i, v := range gray.Pix {
		out.Pix[3*i] = v
		out.Pix[3*i+1] = v
		out.Pix[3*i+2] = v
	}
	return out
}

// forEachRow calls fn once for every row in [0, height), spreading rows across
// the available CPUs. fn must only write to destination row y.
func forEachRow(height int, fn func(y int)) {
	parallel.Line(height, func(start, end int) {
		for y := start; y < end; y++ {
			fn(y)
		}
	})
}
