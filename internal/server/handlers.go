package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ironsheep/image-editor-mcp/internal/editor"
	"github.com/ironsheep/image-editor-mcp/internal/imaging"
	"github.com/ironsheep/image-editor-mcp/internal/logging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_open", "image_apply").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}
	if len(params.Arguments) == 0 {
		params.Arguments = json.RawMessage("{}")
	}

	ctx = logging.AppendCtx(ctx, slog.String("tool", params.Name))
	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.WarnContext(ctx, "tool failed", "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Session lifecycle
	case "image_open":
		return s.handleImageOpen(ctx, args)
	case "image_info":
		return s.handleImageInfo(ctx, args)
	case "image_close":
		return s.handleImageClose(ctx, args)

	// Editing
	case "image_apply":
		return s.handleImageApply(ctx, args)
	case "image_reset":
		return s.handleImageReset(ctx, args)
	case "image_reload":
		return s.handleImageReload(ctx, args)
	case "image_save":
		return s.handleImageSave(ctx, args)

	// Analysis
	case "image_histogram":
		return s.handleImageHistogram(ctx, args)
	case "image_sample_pixel":
		return s.handleImageSamplePixel(ctx, args)
	case "image_list_operations":
		return editor.Operations(), nil

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// ImageResult is returned by every tool that produces a new current image.
type ImageResult struct {
	SessionID string `json:"session_id"`
	Path      string `json:"path"`
	Operation string `json:"operation,omitempty"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Channels  int    `json:"channels"`
	MimeType  string `json:"mime_type"`
	ImageData string `json:"image_data"` // base64 PNG
}

func newImageResult(sess *editor.Session, img *imaging.Image) (*ImageResult, error) {
	data, err := imaging.EncodeBase64PNG(img)
	if err != nil {
		return nil, err
	}
	return &ImageResult{
		SessionID: sess.ID(),
		Path:      sess.Path(),
		Operation: sess.LastOperation(),
		Width:     img.Width,
		Height:    img.Height,
		Channels:  img.Channels,
		MimeType:  "image/png",
		ImageData: data,
	}, nil
}

type sessionArgs struct {
	SessionID string `json:"session_id"`
}

func (s *Server) session(args json.RawMessage) (*editor.Session, error) {
	var a sessionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.sessions.Get(a.SessionID)
}

// === Session Lifecycle Handlers ===

type imageOpenArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageOpen(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageOpenArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	sess := s.newSess(editor.WithLogger(s.logger))
	img, err := sess.Open(ctx, a.Path)
	if err != nil {
		return nil, err
	}
	s.sessions.Add(sess)
	return newImageResult(sess, img)
}

// InfoResult describes the current image of a session.
type InfoResult struct {
	SessionID string `json:"session_id"`
	Path      string `json:"path"`
	Operation string `json:"operation,omitempty"`
	*imaging.ImageInfo
}

func (s *Server) handleImageInfo(_ context.Context, args json.RawMessage) (interface{}, error) {
	sess, err := s.session(args)
	if err != nil {
		return nil, err
	}
	img, err := sess.Current()
	if err != nil {
		return nil, err
	}
	info, err := imaging.Describe(img, sess.Path())
	if err != nil {
		return nil, err
	}
	return &InfoResult{
		SessionID: sess.ID(),
		Path:      sess.Path(),
		Operation: sess.LastOperation(),
		ImageInfo: info,
	}, nil
}

func (s *Server) handleImageClose(ctx context.Context, args json.RawMessage) (interface{}, error) {
	sess, err := s.session(args)
	if err != nil {
		return nil, err
	}
	sess.Close(ctx)
	s.sessions.Remove(sess.ID())
	return map[string]interface{}{
		"session_id": sess.ID(),
		"closed":     true,
	}, nil
}

// === Editing Handlers ===

type imageApplyArgs struct {
	SessionID string `json:"session_id"`
	Operation string `json:"operation"`
}

func (s *Server) handleImageApply(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageApplyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.sessions.Get(a.SessionID)
	if err != nil {
		return nil, err
	}

	// Every other argument is an operation parameter.
	var params editor.Params
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, err
	}
	delete(params, "session_id")
	delete(params, "operation")

	img, err := sess.Apply(ctx, a.Operation, params)
	if err != nil {
		return nil, err
	}
	return newImageResult(sess, img)
}

func (s *Server) handleImageReset(ctx context.Context, args json.RawMessage) (interface{}, error) {
	sess, err := s.session(args)
	if err != nil {
		return nil, err
	}
	img, err := sess.ResetToSource(ctx)
	if err != nil {
		return nil, err
	}
	return newImageResult(sess, img)
}

func (s *Server) handleImageReload(ctx context.Context, args json.RawMessage) (interface{}, error) {
	sess, err := s.session(args)
	if err != nil {
		return nil, err
	}
	img, err := sess.Reload(ctx)
	if err != nil {
		return nil, err
	}
	return newImageResult(sess, img)
}

type imageSaveArgs struct {
	SessionID string `json:"session_id"`
	Path      string `json:"path"`
}

func (s *Server) handleImageSave(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageSaveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.sessions.Get(a.SessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.Save(ctx, a.Path); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"session_id": sess.ID(),
		"path":       a.Path,
		"saved":      true,
	}, nil
}

// === Analysis Handlers ===

type imageHistogramArgs struct {
	SessionID  string `json:"session_id"`
	Plot       bool   `json:"plot"`
	PlotWidth  int    `json:"plot_width"`
	PlotHeight int    `json:"plot_height"`
}

// HistogramResult carries the gray-level histogram of a session's source.
type HistogramResult struct {
	SessionID string            `json:"session_id"`
	Total     int               `json:"total"`
	Peak      int               `json:"peak"`
	Bins      imaging.Histogram `json:"bins"`
	PlotData  string            `json:"plot_data,omitempty"` // base64 PNG
}

func (s *Server) handleImageHistogram(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageHistogramArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.PlotWidth == 0 {
		a.PlotWidth = imaging.Levels
	}
	if a.PlotHeight == 0 {
		a.PlotHeight = 128
	}
	sess, err := s.sessions.Get(a.SessionID)
	if err != nil {
		return nil, err
	}

	h, err := sess.Histogram(ctx)
	if err != nil {
		return nil, err
	}
	result := &HistogramResult{
		SessionID: sess.ID(),
		Total:     h.Total(),
		Peak:      h.Peak(),
		Bins:      *h,
	}
	if a.Plot {
		plot, err := imaging.RenderHistogram(h, a.PlotWidth, a.PlotHeight)
		if err != nil {
			return nil, err
		}
		if result.PlotData, err = imaging.EncodeBase64PNG(plot); err != nil {
			return nil, err
		}
	}
	return result, nil
}

type imageSamplePixelArgs struct {
	SessionID string `json:"session_id"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
}

func (s *Server) handleImageSamplePixel(_ context.Context, args json.RawMessage) (interface{}, error) {
	var a imageSamplePixelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.sessions.Get(a.SessionID)
	if err != nil {
		return nil, err
	}
	img, err := sess.Current()
	if err != nil {
		return nil, err
	}
	return imaging.SamplePixel(img, a.X, a.Y)
}
