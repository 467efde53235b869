// Package server implements the MCP (Model Context Protocol) server for the
// image editor.
//
// This package provides a JSON-RPC 2.0 server that exposes editing sessions
// through the MCP protocol, so an MCP client can open an image, apply the
// editor's operations to it and save the result.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Session lifecycle:
//   - image_open: Open a file in a new session, returns the session id
//   - image_info: Dimensions, channels and format of the current image
//   - image_close: Drop a session
//
// Editing:
//   - image_apply: Run one operation on the source image
//   - image_reset: Show the source image again
//   - image_reload: Decode the source file from disk again
//   - image_save: Write the current image to a file
//
// Analysis:
//   - image_histogram: Gray-level histogram, optionally plotted
//   - image_sample_pixel: Raw samples and color of one pixel
//   - image_list_operations: Operations accepted by image_apply
//
// Tools that produce an image return it as base64-encoded PNG.
//
// # Sessions
//
// Every image_open creates an editor.Session with its own id. Sessions are
// independent: each keeps its own pristine source and current image, and
// edits on one never affect another. Sessions live until image_close or
// until the server exits.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// A failed tool call never changes the session's current image.
//
// # Usage
//
//	srv := server.New(server.WithLogger(logger))
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
