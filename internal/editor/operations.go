package editor

import (
	"fmt"
	"sort"

	"github.com/ironsheep/image-editor-mcp/internal/imaging"
)

// Default parameters, matching the editor menu actions.
const (
	DefaultThreshold  = 128
	DefaultStretchMin = 64
	DefaultStretchMax = 192
)

// OperationFunc transforms a source buffer into a new buffer.
type OperationFunc func(src *imaging.Image, p Params) (*imaging.Image, error)

// Operation is a named transform the session can apply.
type Operation struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Params      []string      `json:"params,omitempty"`
	Run         OperationFunc `json:"-"`
}

var operations = map[string]Operation{}

func register(op Operation) {
	if _, dup := operations[op.Name]; dup {
		panic("editor: duplicate operation " + op.Name)
	}
	operations[op.Name] = op
}

// Lookup returns the operation registered under name.
func Lookup(name string) (Operation, bool) {
	op, ok := operations[name]
	return op, ok
}

// Operations returns every registered operation sorted by name.
func Operations() []Operation {
	ops := make([]Operation, 0, len(operations))
	for _, op := range operations {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].Name < ops[j].Name })
	return ops
}

// withOverflow adapts an operation that takes imaging options.
func withOverflow(fn func(*imaging.Image, ...imaging.Option) (*imaging.Image, error)) OperationFunc {
	return func(src *imaging.Image, p Params) (*imaging.Image, error) {
		opts, err := p.overflowOptions()
		if err != nil {
			return nil, err
		}
		return fn(src, opts...)
	}
}

// plain adapts an operation without parameters.
func plain(fn func(*imaging.Image) (*imaging.Image, error)) OperationFunc {
	return func(src *imaging.Image, _ Params) (*imaging.Image, error) {
		return fn(src)
	}
}

// binarized runs a binary primitive on the source binarized at the default
// threshold.
func binarized(fn func(*imaging.Image) (*imaging.Image, error)) OperationFunc {
	return func(src *imaging.Image, p Params) (*imaging.Image, error) {
		t, err := p.Float("threshold", DefaultThreshold)
		if err != nil {
			return nil, err
		}
		b, err := imaging.Binarize(src, t)
		if err != nil {
			return nil, err
		}
		return fn(b)
	}
}

func init() {
	register(Operation{
		Name:        "gray",
		Description: "Convert to gray levels using the 0.299/0.587/0.144 luma weights",
		Params:      []string{"saturate"},
		Run:         withOverflow(imaging.ToGray),
	})
	register(Operation{
		Name:        "rotate",
		Description: "Rotate about the center by angle degrees (positive turns left)",
		Params:      []string{"angle"},
		Run: func(src *imaging.Image, p Params) (*imaging.Image, error) {
			angle, err := p.Float("angle", imaging.AngleLeft)
			if err != nil {
				return nil, err
			}
			return imaging.Rotate(src, angle)
		},
	})
	register(Operation{
		Name:        "rotate_left",
		Description: "Rotate 90 degrees to the left",
		Run:         plain(imaging.RotateLeft),
	})
	register(Operation{
		Name:        "rotate_right",
		Description: "Rotate 90 degrees to the right",
		Run:         plain(imaging.RotateRight),
	})
	register(Operation{
		Name:        "binarize",
		Description: "Black and white: gray levels at or above threshold become white",
		Params:      []string{"threshold"},
		Run: func(src *imaging.Image, p Params) (*imaging.Image, error) {
			t, err := p.Float("threshold", DefaultThreshold)
			if err != nil {
				return nil, err
			}
			return imaging.Binarize(src, t)
		},
	})
	register(Operation{
		Name:        "invert",
		Description: "Negative relative to the brightest sample of the image",
		Params:      []string{"saturate"},
		Run:         withOverflow(imaging.Invert),
	})
	register(Operation{
		Name:        "equalize",
		Description: "Histogram equalization (adjust contrast)",
		Run:         plain(imaging.Equalize),
	})
	register(Operation{
		Name:        "stretch",
		Description: "Linear histogram stretch of [min, max] onto [0, 255] (adjust luminosity)",
		Params:      []string{"min", "max", "saturate"},
		Run: func(src *imaging.Image, p Params) (*imaging.Image, error) {
			lo, err := p.Float("min", DefaultStretchMin)
			if err != nil {
				return nil, err
			}
			hi, err := p.Float("max", DefaultStretchMax)
			if err != nil {
				return nil, err
			}
			opts, err := p.overflowOptions()
			if err != nil {
				return nil, err
			}
			return imaging.Stretch(src, lo, hi, opts...)
		},
	})
	register(Operation{
		Name:        "blur",
		Description: fmt.Sprintf("%dx%d box blur", imaging.BlurSize, imaging.BlurSize),
		Run:         plain(imaging.Blur),
	})
	register(Operation{
		Name:        "convolve",
		Description: "Convolve the gray image with an odd-sized kernel",
		Params:      []string{"kernel"},
		Run: func(src *imaging.Image, p Params) (*imaging.Image, error) {
			k, err := p.Kernel("kernel")
			if err != nil {
				return nil, err
			}
			return imaging.Convolve(src, k)
		},
	})
	register(Operation{
		Name:        "dilate",
		Description: "Binarize then dilate with a 3x3 structuring element",
		Params:      []string{"threshold"},
		Run:         binarized(imaging.Dilate),
	})
	register(Operation{
		Name:        "erode",
		Description: "Binarize then erode with a 3x3 structuring element",
		Params:      []string{"threshold"},
		Run:         binarized(imaging.Erode),
	})
	register(Operation{
		Name:        "opening",
		Description: "Morphological opening (erosion then dilation)",
		Run:         plain(imaging.Opening),
	})
	register(Operation{
		Name:        "closing",
		Description: "Morphological closing (dilation then erosion)",
		Run:         plain(imaging.Closing),
	})
	register(Operation{
		Name:        "opening_top_hat",
		Description: "Binary image minus its opening",
		Params:      []string{"saturate"},
		Run:         withOverflow(imaging.OpeningTopHat),
	})
	register(Operation{
		Name:        "closing_top_hat",
		Description: "Closing minus the binary image",
		Params:      []string{"saturate"},
		Run:         withOverflow(imaging.ClosingTopHat),
	})
	register(Operation{
		Name:        "edge_detect",
		Description: "Morphological edge detection",
		Params:      []string{"saturate"},
		Run:         withOverflow(imaging.EdgeDetect),
	})
}
