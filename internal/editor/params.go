package editor

import (
	"fmt"

	"github.com/ironsheep/image-editor-mcp/internal/imaging"
)

// Params carries the optional arguments of an operation, keyed by name.
//
// Values normally come from decoded JSON, so numbers arrive as float64. Ints
// are accepted too for callers building Params in Go.
type Params map[string]any

// Float returns the numeric parameter name, or def when it is absent.
func (p Params) Float(name string, def float64) (float64, error) {
	v, ok := p[name]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("parameter %q: expected a number, got %T", name, v)
	}
}

// Bool returns the boolean parameter name, or false when it is absent.
func (p Params) Bool(name string) (bool, error) {
	v, ok := p[name]
	if !ok || v == nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("parameter %q: expected a boolean, got %T", name, v)
	}
	return b, nil
}

// Kernel decodes the parameter name as a matrix of weights.
//
// Accepted shapes are [][]float64 and the []any of []any produced by
// encoding/json.
func (p Params) Kernel(name string) (*imaging.Kernel, error) {
	v, ok := p[name]
	if !ok || v == nil {
		return nil, fmt.Errorf("parameter %q is required", name)
	}

	var rows [][]float64
	switch m := v.(type) {
	case [][]float64:
		rows = m
	case []any:
		rows = make([][]float64, len(m))
		for i, r := range m {
			cells, ok := r.([]any)
			if !ok {
				return nil, fmt.Errorf("parameter %q: row %d is not an array", name, i)
			}
			rows[i] = make([]float64, len(cells))
			for j, c := range cells {
				f, ok := c.(float64)
				if !ok {
					return nil, fmt.Errorf("parameter %q: value [%d][%d] is not a number", name, i, j)
				}
				rows[i][j] = f
			}
		}
	default:
		return nil, fmt.Errorf("parameter %q: expected a matrix, got %T", name, v)
	}
	return imaging.NewKernel(rows)
}

// overflowOptions maps the "saturate" flag onto imaging options.
func (p Params) overflowOptions() ([]imaging.Option, error) {
	saturate, err := p.Bool("saturate")
	if err != nil {
		return nil, err
	}
	if saturate {
		return []imaging.Option{imaging.WithOverflow(imaging.Saturate)}, nil
	}
	return nil, nil
}
