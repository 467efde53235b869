package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif" // Register GIF format decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
)

// Load decodes the image file at path into a buffer.
//
// Gray sources (8- or 16-bit) produce a 1-channel buffer; every other source
// produces a 3-channel buffer in (blue, green, red) order with any alpha
// channel dropped. EXIF orientation is applied. Supported formats are PNG,
// JPEG, GIF, BMP and TIFF.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a decodable image
func Load(path string) (*Image, error) {
	src, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	img := FromImage(src)
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", path, err)
	}
	return img, nil
}

// FromImage converts a decoded image.Image into a buffer.
func FromImage(src image.Image) *Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	switch g := src.(type) {
	case *image.Gray:
		out := NewGray(h, w)
		for y := 0; y < h; y++ {
			start := g.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(out.Pix[y*w:(y+1)*w], g.Pix[start:start+w])
		}
		return out
	case *image.Gray16:
		out := NewGray(h, w)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Pix[y*w+x] = uint8(g.Gray16At(bounds.Min.X+x, bounds.Min.Y+y).Y >> 8)
			}
		}
		return out
	}

	nrgba := imaging.Clone(src)
	out := NewImage(h, w, 3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s := y*nrgba.Stride + x*4
			d := (y*w + x) * 3
			out.Pix[d+ChannelRed] = nrgba.Pix[s]
			out.Pix[d+ChannelGreen] = nrgba.Pix[s+1]
			out.Pix[d+ChannelBlue] = nrgba.Pix[s+2]
		}
	}
	return out
}

// ToImage converts a buffer into an image.Image for writers and displays.
//
// A 1-channel buffer becomes *image.Gray. A 3-channel buffer becomes an opaque
// *image.NRGBA with channels reordered from (blue, green, red) storage to
// red-green-blue, so written files show the colors the buffer holds.
func ToImage(img *Image) (image.Image, error) {
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("to image: %w", err)
	}

	rect := image.Rect(0, 0, img.Width, img.Height)
	if img.Channels == 1 {
		out := image.NewGray(rect)
		copy(out.Pix, img.Pix)
		return out, nil
	}

	out := image.NewNRGBA(rect)
	for i := 0; i < img.Width*img.Height; i++ {
		out.Pix[4*i] = img.Pix[3*i+ChannelRed]
		out.Pix[4*i+1] = img.Pix[3*i+ChannelGreen]
		out.Pix[4*i+2] = img.Pix[3*i+ChannelBlue]
		out.Pix[4*i+3] = 255
	}
	return out, nil
}

// Save writes img to path. The format is chosen from the file extension.
func Save(img *Image, path string) error {
	out, err := ToImage(img)
	if err != nil {
		return err
	}
	if err := imaging.Save(out, path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img *Image) error {
	out, err := ToImage(img)
	if err != nil {
		return err
	}
	if err := imaging.Encode(w, out, imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// EncodeBase64PNG returns img as a base64 encoded PNG.
func EncodeBase64PNG(img *Image) (string, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// ImageInfo contains metadata about an image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Channels is 1 for gray sources and 3 for color sources.
	Channels int `json:"channels"`

	// Format is the detected image format: "png", "jpeg", "gif", "bmp",
	// "tiff", or "unknown". Detection is based on file extension.
	Format string `json:"format"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Describe returns metadata for the buffer img loaded from path.
func Describe(img *Image, path string) (*ImageInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	case ".bmp":
		format = "bmp"
	case ".tif", ".tiff":
		format = "tiff"
	}

	return &ImageInfo{
		Width:         img.Width,
		Height:        img.Height,
		Channels:      img.Channels,
		Format:        format,
		FileSizeBytes: stat.Size(),
	}, nil
}
