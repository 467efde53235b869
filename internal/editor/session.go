package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/ironsheep/image-editor-mcp/internal/imaging"
)

var (
	// ErrNoImage is returned by operations that need an opened image.
	ErrNoImage = errors.New("no image opened")

	// ErrUnknownOperation is returned by Apply for an unregistered name.
	ErrUnknownOperation = errors.New("unknown operation")
)

// Loader decodes image files into buffers.
type Loader interface {
	Load(path string) (*imaging.Image, error)
}

// Writer encodes buffers into image files.
type Writer interface {
	Save(img *imaging.Image, path string) error
}

// Display renders a buffer. Show is assumed to always succeed.
type Display interface {
	Show(img *imaging.Image)
}

// FileIO loads and saves through the imaging package.
type FileIO struct{}

// Load implements Loader.
func (FileIO) Load(path string) (*imaging.Image, error) { return imaging.Load(path) }

// Save implements Writer.
func (FileIO) Save(img *imaging.Image, path string) error { return imaging.Save(img, path) }

type nopDisplay struct{}

func (nopDisplay) Show(*imaging.Image) {}

// Option configures a Session.
type Option func(*Session)

// WithLoader replaces the file loader.
func WithLoader(l Loader) Option { return func(s *Session) { s.loader = l } }

// WithWriter replaces the file writer.
func WithWriter(w Writer) Option { return func(s *Session) { s.writer = w } }

// WithDisplay sets the surface that is shown every new current image.
func WithDisplay(d Display) Option { return func(s *Session) { s.display = d } }

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option { return func(s *Session) { s.logger = l } }

// Session owns one opened image: the path it came from, the pristine source
// buffer decoded from that path and the current (displayed) buffer.
//
// Edits do not chain. Every Apply transforms the pristine source, never the
// previous result, so applying "blur" twice yields the same image as applying
// it once.
//
// Session is safe for concurrent use; calls are serialized so there is only
// ever one mutator.
type Session struct {
	id      string
	loader  Loader
	writer  Writer
	display Display
	logger  *slog.Logger

	mu      sync.Mutex
	path    string
	source  *imaging.Image
	current *imaging.Image
	lastOp  string
}

// New creates a session with no image opened.
func New(opts ...Option) *Session {
	s := &Session{
		id:      uuid.NewString(),
		loader:  FileIO{},
		writer:  FileIO{},
		display: nopDisplay{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("session", s.id))
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Path returns the path of the opened image, or "" when none is open.
func (s *Session) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// LastOperation returns the name of the operation that produced the current
// image, or "" when the current image is the source.
func (s *Session) LastOperation() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastOp
}

// Current returns a copy of the current image.
func (s *Session) Current() (*imaging.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, ErrNoImage
	}
	return s.current.Clone(), nil
}

// Source returns a copy of the pristine source image.
func (s *Session) Source() (*imaging.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.source == nil {
		return nil, ErrNoImage
	}
	return s.source.Clone(), nil
}

// Open loads path and makes it both the source and the current image.
//
// On failure the previously opened image, if any, stays in place.
func (s *Session) Open(ctx context.Context, path string) (*imaging.Image, error) {
	img, err := s.loader.Load(path)
	if err != nil {
		s.logger.WarnContext(ctx, "open failed", "path", path, "error", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = path
	s.source = img
	s.current = img.Clone()
	s.lastOp = ""
	s.display.Show(s.current)

	s.logger.InfoContext(ctx, "image opened", "path", path,
		"width", img.Width, "height", img.Height, "channels", img.Channels)
	return s.current.Clone(), nil
}

// Reload decodes the source file again, picking up changes made on disk, and
// resets the current image to it.
func (s *Session) Reload(ctx context.Context) (*imaging.Image, error) {
	path := s.Path()
	if path == "" {
		return nil, ErrNoImage
	}
	return s.Open(ctx, path)
}

// ResetToSource discards the current result and shows the source again.
func (s *Session) ResetToSource(ctx context.Context) (*imaging.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.source == nil {
		return nil, ErrNoImage
	}
	s.current = s.source.Clone()
	s.lastOp = ""
	s.display.Show(s.current)
	s.logger.DebugContext(ctx, "reset to source")
	return s.current.Clone(), nil
}

// Apply runs the operation name on the pristine source and, on success, makes
// the result the current image.
//
// On any error the current image is left unchanged.
func (s *Session) Apply(ctx context.Context, name string, params Params) (*imaging.Image, error) {
	op, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.source == nil {
		return nil, ErrNoImage
	}

	out, err := op.Run(s.source, params)
	if err != nil {
		s.logger.WarnContext(ctx, "operation failed", "operation", name, "error", err)
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	s.current = out
	s.lastOp = name
	s.display.Show(s.current)
	s.logger.InfoContext(ctx, "operation applied", "operation", name,
		"width", out.Width, "height", out.Height, "channels", out.Channels)
	return out.Clone(), nil
}

// Histogram computes the gray-level histogram of the source image.
func (s *Session) Histogram(ctx context.Context) (*imaging.Histogram, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.source == nil {
		return nil, ErrNoImage
	}
	return imaging.ComputeHistogram(s.source)
}

// Save writes the current image to path.
func (s *Session) Save(ctx context.Context, path string) error {
	if path == "" {
		return errors.New("save: path is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ErrNoImage
	}
	if err := s.writer.Save(s.current, path); err != nil {
		s.logger.WarnContext(ctx, "save failed", "path", path, "error", err)
		return err
	}
	s.logger.InfoContext(ctx, "image saved", "path", path)
	return nil
}

// Close forgets the opened image.
func (s *Session) Close(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = ""
	s.source = nil
	s.current = nil
	s.lastOp = ""
	s.logger.DebugContext(ctx, "session closed")
}
