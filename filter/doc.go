// Package filter implements a small convolution engine for RGB images.
//
// The engine is built from four layers. Grid is a dense row-major float32
// matrix with bounds-checked access. ChannelImage splits an interleaved
// RGBA pixel buffer into three Grids, one per color channel. Kernel is an
// odd square convolution matrix that slides over a Grid (Convolve2D) or
// expands one (Deconvolve2D), always normalizing by the kernel's current
// value sum. Combinator owns one Kernel per input channel plus per-channel
// weights and folds a full ChannelImage into a single output plane;
// Transformer runs three Combinators to produce a complete output image.
//
// Convolution here is valid-region cross-correlation: no padding, the
// kernel anchored at its top-left corner. An n-kernel over an RxC grid
// yields an (R-n)x(C-n) result, so each pass shaves a one-kernel margin
// off the right and bottom edges. Deconvolve2D is the expansion adjoint
// in shape only, scaling each source cell into an nxn block for an
// (R*n)x(C*n) result; it does not invert Convolve2D numerically.
//
// Kernels and weights are plain float32 values exposed through accessors,
// so external search loops can mutate a Transformer in place, score the
// result (see the evolve package), and keep or revert the change.
package filter
