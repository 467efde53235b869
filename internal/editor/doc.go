// Package editor holds the session controller that sits between the outer
// surfaces (MCP server, CLI) and the imaging library.
//
// A Session owns exactly one opened image. It keeps the pristine source
// buffer decoded from disk and the current buffer produced by the last
// operation. Operations are looked up by name in a registry (see Operations)
// and always run on the pristine source, so edits never compose: each call
// replaces the current image with a single transform of the opened file.
//
// # Collaborators
//
// File decoding, file encoding and rendering are delegated to the Loader,
// Writer and Display interfaces. FileIO implements the first two on top of
// the imaging package; tests substitute in-memory fakes.
//
// # Error Handling
//
// A failed Open, Apply or Save leaves the session exactly as it was. Errors
// from the imaging package are wrapped with the operation name and can be
// matched with errors.Is against the imaging sentinel errors.
package editor
