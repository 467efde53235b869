package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-editor-mcp/internal/imaging"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRoot(context.Background(), BuildInfo{Version: "1.0.0-test", BuildTime: "now", GitCommit: "abc123"})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeImage(t *testing.T, img *imaging.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.png")
	require.NoError(t, imaging.Save(img, path))
	return path
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "image-editor 1.0.0-test")
	assert.Contains(t, out, "abc123")
}

func TestRootPrintsCommandTree(t *testing.T) {
	out, err := run(t, "")
	require.NoError(t, err)
	for _, name := range []string{"serve", "apply", "histogram", "operations", "version"} {
		assert.Contains(t, out, name)
	}
}

func TestApply(t *testing.T) {
	src := imaging.NewImage(4, 4, 3)
	src.Set(2, 1, imaging.ChannelGreen, 255)
	in := writeImage(t, src)
	out := filepath.Join(t.TempDir(), "out.png")

	stdout, err := run(t, "", "apply", "binarize", "--in", in, "--out", out, "--threshold", "100")
	require.NoError(t, err)
	assert.Contains(t, stdout, "binarize")

	got, err := imaging.Load(out)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Channels)
	assert.Equal(t, imaging.White, got.Gray(2, 1))
	assert.Equal(t, imaging.Black, got.Gray(0, 0))
}

func TestApply_Kernel(t *testing.T) {
	src := imaging.NewGray(3, 3)
	for i := range src.Pix {
		src.Pix[i] = 10
	}
	in := writeImage(t, src)
	out := filepath.Join(t.TempDir(), "out.png")

	_, err := run(t, "", "apply", "convolve", "-i", in, "-o", out, "--kernel", "[[0,0,0],[0,3,0],[0,0,0]]")
	require.NoError(t, err)

	got, err := imaging.Load(out)
	require.NoError(t, err)
	assert.Equal(t, uint8(30), got.Gray(1, 1))
}

func TestApply_Errors(t *testing.T) {
	in := writeImage(t, imaging.NewImage(2, 2, 3))
	out := filepath.Join(t.TempDir(), "out.png")

	_, err := run(t, "", "apply", "blur", "--in", in)
	assert.Error(t, err, "missing --out")

	_, err = run(t, "", "apply", "stretch", "--in", in, "--out", out, "--min", "50", "--max", "50")
	assert.ErrorIs(t, err, imaging.ErrDivisionByZero)

	_, err = run(t, "", "apply", "convolve", "--in", in, "--out", out, "--kernel", "not json")
	assert.Error(t, err)

	_, err = run(t, "", "apply", "--in", in, "--out", out)
	assert.Error(t, err, "missing operation name")

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "failed runs must not write output")
}

func TestParamsFromFlags_OnlyChanged(t *testing.T) {
	cmd := NewApplyCmd(context.Background())
	require.NoError(t, cmd.ParseFlags([]string{"--min", "10", "--saturate"}))

	params, err := paramsFromFlags(cmd)
	require.NoError(t, err)
	assert.Equal(t, 10.0, params["min"])
	assert.Equal(t, true, params["saturate"])
	assert.NotContains(t, params, "max")
	assert.NotContains(t, params, "angle")
}

func TestHistogram(t *testing.T) {
	src := imaging.NewGray(2, 3)
	copy(src.Pix, []uint8{0, 0, 7, 7, 7, 200})
	in := writeImage(t, src)
	plot := filepath.Join(t.TempDir(), "plot.png")

	out, err := run(t, "", "histogram", in, "--plot", plot, "--width", "32", "--height", "16")
	require.NoError(t, err)
	assert.Equal(t, "  0 2\n  7 3\n200 1\n", out)

	chart, err := imaging.Load(plot)
	require.NoError(t, err)
	assert.Equal(t, 32, chart.Width)
	assert.Equal(t, 16, chart.Height)

	out, err = run(t, "", "histogram", "--in", in, "--format", "json")
	require.NoError(t, err)
	var bins []int
	require.NoError(t, json.Unmarshal([]byte(out), &bins))
	assert.Len(t, bins, imaging.Levels)
	assert.Equal(t, 3, bins[7])

	_, err = run(t, "", "histogram")
	assert.Error(t, err)
}

func TestOperations(t *testing.T) {
	out, err := run(t, "", "operations")
	require.NoError(t, err)
	assert.Contains(t, out, "edge_detect")
	assert.Contains(t, out, "--threshold")
}

func TestServe(t *testing.T) {
	out, err := run(t, `{"jsonrpc":"2.0","id":1,"method":"initialize"}`+"\n", "serve")
	require.NoError(t, err)

	var resp struct {
		Result struct {
			ServerInfo struct {
				Name    string `json:"name"`
				Version string `json:"version"`
			} `json:"serverInfo"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "image-editor-mcp", resp.Result.ServerInfo.Name)
	assert.Equal(t, "1.0.0-test", resp.Result.ServerInfo.Version)
}

func TestLogFileFlag(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "editor.log")
	_, err := run(t, "", "--log-file", logPath, "--log-json", "--log-level", "debug", "histogram", "/nonexistent.png")
	require.Error(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"open failed"`)
}
