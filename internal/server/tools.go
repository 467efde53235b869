package server

import "github.com/ironsheep/image-editor-mcp/internal/editor"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session id returned by image_open",
	}
}

func sessionOnlySchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"session_id": sessionIDProperty(),
		},
		"required": []string{"session_id"},
	}
}

func operationNames() []string {
	ops := editor.Operations()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.Name
	}
	return names
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Session lifecycle
		{
			Name:        "image_open",
			Description: "Open an image file in a new editing session. Returns the session id and the image as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file (PNG, JPEG, GIF, BMP or TIFF)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_info",
			Description: "Get the dimensions, channel count and format of the session's current image.",
			InputSchema: sessionOnlySchema(),
		},
		{
			Name:        "image_close",
			Description: "Close an editing session and release its buffers.",
			InputSchema: sessionOnlySchema(),
		},

		// Editing
		{
			Name: "image_apply",
			Description: "Apply one operation to the session's source image and make the result current. " +
				"Edits do not chain: every call starts from the image as opened, not from the previous result.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionIDProperty(),
					"operation": map[string]interface{}{
						"type":        "string",
						"enum":        operationNames(),
						"description": "Operation name (see image_list_operations)",
					},
					"angle": map[string]interface{}{
						"type":        "number",
						"description": "rotate: degrees, positive turns left. Default 90",
					},
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "binarize/dilate/erode: gray level threshold. Default 128",
					},
					"min": map[string]interface{}{
						"type":        "number",
						"description": "stretch: input level mapped to 0. Default 64",
					},
					"max": map[string]interface{}{
						"type":        "number",
						"description": "stretch: input level mapped to 255. Default 192",
					},
					"kernel": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "number"}},
						"description": "convolve: odd-sized matrix of weights",
					},
					"saturate": map[string]interface{}{
						"type":        "boolean",
						"description": "Clamp out-of-range results to [0, 255] instead of wrapping. Default false",
					},
				},
				"required": []string{"session_id", "operation"},
			},
		},
		{
			Name:        "image_reset",
			Description: "Discard the current result and show the source image again.",
			InputSchema: sessionOnlySchema(),
		},
		{
			Name:        "image_reload",
			Description: "Decode the source file from disk again, picking up external changes, and reset the current image to it.",
			InputSchema: sessionOnlySchema(),
		},
		{
			Name:        "image_save",
			Description: "Write the current image to a file. The format follows the file extension.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionIDProperty(),
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the output file",
					},
				},
				"required": []string{"session_id", "path"},
			},
		},

		// Analysis
		{
			Name:        "image_histogram",
			Description: "Compute the 256-bin gray-level histogram of the source image, optionally rendered as a bar chart.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionIDProperty(),
					"plot": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return the histogram as a base64-encoded PNG bar chart. Default false",
					},
					"plot_width": map[string]interface{}{
						"type":        "integer",
						"description": "Bar chart width in pixels. Default 256",
						"default":     256,
					},
					"plot_height": map[string]interface{}{
						"type":        "integer",
						"description": "Bar chart height in pixels. Default 128",
						"default":     128,
					},
				},
				"required": []string{"session_id"},
			},
		},
		{
			Name:        "image_sample_pixel",
			Description: "Get the raw samples and RGB/HSL color of one pixel of the current image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionIDProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"session_id", "x", "y"},
			},
		},
		{
			Name:        "image_list_operations",
			Description: "List the operations accepted by image_apply with their parameters.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}
