// Package imaging provides the pixel-level transformation library of the editor.
//
// All operations work on the package's own dense buffer type, Image, rather than
// on image.Image. Buffers are row-major with interleaved channels and use a
// coordinate system where (0,0) is at the top-left corner, X increases
// rightward, and Y increases downward.
//
// # Buffer Shapes
//
// An Image has either 1 channel (gray or binary) or 3 channels. Three-channel
// buffers store samples in (blue, green, red) order, matching what Load
// produces. Operations return whichever shape their definition calls for:
//   - ToGray, Convolve, Blur, Binarize, Invert and the morphology family: 1 channel
//   - Equalize and Stretch: 3 channels (the gray result replicated)
//   - Rotate: same shape as the input
//
// Callers should branch on Image.Channels rather than assume a shape.
//
// # Arithmetic
//
// Samples are 8-bit unsigned. Several operations compute values outside
// [0,255] (the luma weights sum to 1.030, stretching is unclamped, top-hats
// subtract). By default these results wrap modulo 256, as plain 8-bit
// arithmetic does. Pass WithOverflow(Saturate) to clamp instead.
//
// # Error Handling
//
// Functions validate their inputs before touching any pixel and return one of
// the sentinel errors ErrInvalidImage, ErrUnsupportedChannelCount,
// ErrInvalidKernelSize or ErrDivisionByZero, wrapped with context. No partial
// buffer is ever returned.
//
// # Thread Safety
//
// Operations never mutate their input. Per-pixel passes are split across rows
// and run concurrently; each worker writes a disjoint set of destination rows,
// so results are identical to a sequential pass.
package imaging
