package editor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-editor-mcp/internal/imaging"
)

func TestParams_Float(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		want    float64
		wantErr bool
	}{
		{name: "absent", params: nil, want: 7},
		{name: "nil value", params: Params{"v": nil}, want: 7},
		{name: "float64", params: Params{"v": 1.5}, want: 1.5},
		{name: "float32", params: Params{"v": float32(2.5)}, want: 2.5},
		{name: "int", params: Params{"v": 3}, want: 3},
		{name: "int64", params: Params{"v": int64(-4)}, want: -4},
		{name: "string", params: Params{"v": "12"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.params.Float("v", 7)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParams_Bool(t *testing.T) {
	b, err := Params{}.Bool("saturate")
	require.NoError(t, err)
	assert.False(t, b)

	b, err = Params{"saturate": true}.Bool("saturate")
	require.NoError(t, err)
	assert.True(t, b)

	_, err = Params{"saturate": "yes"}.Bool("saturate")
	assert.Error(t, err)
}

func TestParams_KernelFromJSON(t *testing.T) {
	var p Params
	require.NoError(t, json.Unmarshal([]byte(`{"kernel": [[0, 1, 0], [1, -4, 1], [0, 1, 0]]}`), &p))

	k, err := p.Kernel("kernel")
	require.NoError(t, err)
	assert.Equal(t, 3, k.Rows)
	assert.Equal(t, 3, k.Cols)
	assert.Equal(t, -4.0, k.At(1, 1))
}

func TestParams_KernelErrors(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		isSize bool
	}{
		{name: "missing", params: Params{}},
		{name: "not a matrix", params: Params{"kernel": 3.0}},
		{name: "row not array", params: Params{"kernel": []any{1.0}}},
		{name: "cell not number", params: Params{"kernel": []any{[]any{"a"}}}},
		{name: "even", params: Params{"kernel": [][]float64{{1, 1}, {1, 1}}}, isSize: true},
		{name: "ragged", params: Params{"kernel": [][]float64{{1, 1, 1}, {1}, {1, 1, 1}}}, isSize: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.params.Kernel("kernel")
			require.Error(t, err)
			if tt.isSize {
				assert.ErrorIs(t, err, imaging.ErrInvalidKernelSize)
			}
		})
	}
}

func TestParams_OverflowOptions(t *testing.T) {
	opts, err := Params{}.overflowOptions()
	require.NoError(t, err)
	assert.Empty(t, opts)

	opts, err = Params{"saturate": true}.overflowOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 1)
}
