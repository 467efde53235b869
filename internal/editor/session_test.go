package editor

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-editor-mcp/internal/imaging"
)

type memLoader struct {
	mu    sync.Mutex
	files map[string]*imaging.Image
	loads int
}

func (l *memLoader) Load(path string) (*imaging.Image, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loads++
	img, ok := l.files[path]
	if !ok {
		return nil, errors.New("file not found: " + path)
	}
	return img.Clone(), nil
}

type memWriter struct {
	saved map[string]*imaging.Image
	err   error
}

func (w *memWriter) Save(img *imaging.Image, path string) error {
	if w.err != nil {
		return w.err
	}
	w.saved[path] = img.Clone()
	return nil
}

type recordingDisplay struct {
	shown []*imaging.Image
}

func (d *recordingDisplay) Show(img *imaging.Image) {
	d.shown = append(d.shown, img.Clone())
}

func colorImage(h, w int) *imaging.Image {
	img := imaging.NewImage(h, w, 3)
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 11)
	}
	return img
}

func newTestSession(t *testing.T, files map[string]*imaging.Image) (*Session, *memLoader, *memWriter, *recordingDisplay) {
	t.Helper()
	loader := &memLoader{files: files}
	writer := &memWriter{saved: map[string]*imaging.Image{}}
	display := &recordingDisplay{}
	s := New(WithLoader(loader), WithWriter(writer), WithDisplay(display))
	return s, loader, writer, display
}

func TestSession_NothingOpened(t *testing.T) {
	s, _, _, _ := newTestSession(t, nil)
	ctx := context.Background()

	_, err := s.Apply(ctx, "blur", nil)
	assert.ErrorIs(t, err, ErrNoImage)
	_, err = s.Current()
	assert.ErrorIs(t, err, ErrNoImage)
	_, err = s.Histogram(ctx)
	assert.ErrorIs(t, err, ErrNoImage)
	_, err = s.ResetToSource(ctx)
	assert.ErrorIs(t, err, ErrNoImage)
	_, err = s.Reload(ctx)
	assert.ErrorIs(t, err, ErrNoImage)
	assert.ErrorIs(t, s.Save(ctx, "/out.png"), ErrNoImage)
	assert.Empty(t, s.Path())
	assert.NotEmpty(t, s.ID())
}

func TestSession_OpenShowsImage(t *testing.T) {
	src := colorImage(4, 5)
	s, _, _, display := newTestSession(t, map[string]*imaging.Image{"/a.png": src})

	got, err := s.Open(context.Background(), "/a.png")
	require.NoError(t, err)
	assert.Equal(t, src, got)
	assert.Equal(t, "/a.png", s.Path())
	require.Len(t, display.shown, 1)
	assert.Equal(t, src, display.shown[0])
}

func TestSession_OpenFailureKeepsPreviousImage(t *testing.T) {
	src := colorImage(2, 2)
	s, _, _, _ := newTestSession(t, map[string]*imaging.Image{"/a.png": src})
	ctx := context.Background()

	_, err := s.Open(ctx, "/a.png")
	require.NoError(t, err)
	_, err = s.Open(ctx, "/missing.png")
	require.Error(t, err)

	assert.Equal(t, "/a.png", s.Path())
	cur, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, src, cur)
}

func TestSession_EditsDoNotChain(t *testing.T) {
	src := colorImage(6, 6)
	s, _, _, _ := newTestSession(t, map[string]*imaging.Image{"/a.png": src})
	ctx := context.Background()
	_, err := s.Open(ctx, "/a.png")
	require.NoError(t, err)

	first, err := s.Apply(ctx, "rotate_left", nil)
	require.NoError(t, err)
	second, err := s.Apply(ctx, "rotate_left", nil)
	require.NoError(t, err)
	assert.Equal(t, first, second, "second rotation should start from the source again")

	want, err := imaging.RotateLeft(src)
	require.NoError(t, err)
	assert.Equal(t, want, second)
	assert.Equal(t, "rotate_left", s.LastOperation())
}

func TestSession_ApplyErrorLeavesCurrentUnchanged(t *testing.T) {
	src := colorImage(3, 3)
	s, _, _, display := newTestSession(t, map[string]*imaging.Image{"/a.png": src})
	ctx := context.Background()
	_, err := s.Open(ctx, "/a.png")
	require.NoError(t, err)
	blurred, err := s.Apply(ctx, "blur", nil)
	require.NoError(t, err)
	shown := len(display.shown)

	_, err = s.Apply(ctx, "stretch", Params{"min": 10.0, "max": 10.0})
	assert.ErrorIs(t, err, imaging.ErrDivisionByZero)

	_, err = s.Apply(ctx, "convolve", Params{"kernel": [][]float64{{1, 1}}})
	assert.ErrorIs(t, err, imaging.ErrInvalidKernelSize)

	_, err = s.Apply(ctx, "no_such_op", nil)
	assert.ErrorIs(t, err, ErrUnknownOperation)

	cur, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, blurred, cur)
	assert.Equal(t, "blur", s.LastOperation())
	assert.Len(t, display.shown, shown, "failed operations must not reach the display")
}

func TestSession_ApplyCancelledContext(t *testing.T) {
	s, _, _, _ := newTestSession(t, map[string]*imaging.Image{"/a.png": colorImage(2, 2)})
	_, err := s.Open(context.Background(), "/a.png")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Apply(ctx, "gray", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSession_ResetAndReload(t *testing.T) {
	src := colorImage(4, 4)
	files := map[string]*imaging.Image{"/a.png": src}
	s, loader, _, _ := newTestSession(t, files)
	ctx := context.Background()
	_, err := s.Open(ctx, "/a.png")
	require.NoError(t, err)
	_, err = s.Apply(ctx, "invert", nil)
	require.NoError(t, err)

	reset, err := s.ResetToSource(ctx)
	require.NoError(t, err)
	assert.Equal(t, src, reset)
	assert.Empty(t, s.LastOperation())

	// Replace the file on "disk"; only Reload sees it.
	changed := colorImage(2, 3)
	loader.mu.Lock()
	files["/a.png"] = changed
	loader.mu.Unlock()

	got, err := s.Apply(ctx, "gray", nil)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Height)

	reloaded, err := s.Reload(ctx)
	require.NoError(t, err)
	assert.Equal(t, changed, reloaded)
	assert.Equal(t, 2, loader.loads)
}

func TestSession_Histogram(t *testing.T) {
	s, _, _, _ := newTestSession(t, map[string]*imaging.Image{"/a.png": colorImage(5, 7)})
	ctx := context.Background()
	_, err := s.Open(ctx, "/a.png")
	require.NoError(t, err)

	h, err := s.Histogram(ctx)
	require.NoError(t, err)
	assert.Equal(t, 35, h.Total())
}

func TestSession_Save(t *testing.T) {
	s, _, writer, _ := newTestSession(t, map[string]*imaging.Image{"/a.png": colorImage(3, 3)})
	ctx := context.Background()
	_, err := s.Open(ctx, "/a.png")
	require.NoError(t, err)
	edges, err := s.Apply(ctx, "edge_detect", nil)
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "/out.png"))
	assert.Equal(t, edges, writer.saved["/out.png"])

	assert.Error(t, s.Save(ctx, ""))

	writer.err = errors.New("disk full")
	assert.Error(t, s.Save(ctx, "/other.png"))
}

func TestSession_Close(t *testing.T) {
	s, _, _, _ := newTestSession(t, map[string]*imaging.Image{"/a.png": colorImage(3, 3)})
	ctx := context.Background()
	_, err := s.Open(ctx, "/a.png")
	require.NoError(t, err)

	s.Close(ctx)
	assert.Empty(t, s.Path())
	_, err = s.Current()
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestSession_ReturnedBuffersAreCopies(t *testing.T) {
	src := colorImage(2, 2)
	s, _, _, _ := newTestSession(t, map[string]*imaging.Image{"/a.png": src})
	ctx := context.Background()
	opened, err := s.Open(ctx, "/a.png")
	require.NoError(t, err)

	opened.Pix[0] = 255
	cur, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, src.Pix[0], cur.Pix[0])
}

func TestSession_ConcurrentApply(t *testing.T) {
	s, _, _, _ := newTestSession(t, map[string]*imaging.Image{"/a.png": colorImage(16, 16)})
	ctx := context.Background()
	_, err := s.Open(ctx, "/a.png")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, name := range []string{"gray", "blur", "opening", "closing", "equalize", "invert"} {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			_, err := s.Apply(ctx, name, nil)
			assert.NoError(t, err)
		}(name)
	}
	wg.Wait()

	cur, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, 16, cur.Height)
}

func TestSession_FileIO(t *testing.T) {
	dir := t.TempDir()
	src := imaging.NewImage(3, 4, 3)
	src.Set(1, 2, imaging.ChannelRed, 200)
	in := filepath.Join(dir, "in.png")
	require.NoError(t, imaging.Save(src, in))

	s := New()
	ctx := context.Background()
	_, err := s.Open(ctx, in)
	require.NoError(t, err)
	_, err = s.Apply(ctx, "binarize", Params{"threshold": 50.0})
	require.NoError(t, err)

	out := filepath.Join(dir, "out.png")
	require.NoError(t, s.Save(ctx, out))

	saved, err := imaging.Load(out)
	require.NoError(t, err)
	assert.Equal(t, 1, saved.Channels)
	// Red 200 has luma 59.8, above the threshold.
	assert.Equal(t, imaging.White, saved.Gray(1, 2))
	assert.Equal(t, imaging.Black, saved.Gray(0, 0))
}
