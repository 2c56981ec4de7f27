// Package processor runs a stereo transform kernel over host sample
// buffers one block at a time.
//
// For each frame, in temporal order, the [Processor] reads the input pair,
// guards both channels against denormals, applies the block's pre-gain,
// calls the kernel, adds per-channel floating-point dither and narrows the
// result to single precision. Which of these stages run is fixed per
// plugin by its [Mode].
//
// Block processing never allocates, blocks or takes locks. All state
// (dither seeds, kernel memory) is reset only by [Processor.Activate].
package processor
