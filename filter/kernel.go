package filter

import (
	"fmt"
	"math/rand"

	"github.com/ajroetker/go-highway/hwy/contrib/vec"
	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
)

// minParallelRows is the smallest output row count worth dispatching to a
// worker pool; below it the dispatch overhead dominates the row work.
const minParallelRows = 4

// Kernel is an odd square convolution matrix. Both directions of the
// sliding pass normalize by the kernel's value sum (its modulus), which
// is recomputed from the current values on every pass so that in-place
// mutation through Values/SetValues is always honored.
//
// A kernel whose values sum to zero has a zero modulus, and convolving
// with it produces infinities or NaNs per IEEE 754. That is left to the
// caller to avoid; see EdgeKernel for a preset that deliberately carries
// a zero modulus.
type Kernel struct {
	n    int
	grid *Grid
}

// NewKernel returns an n x n kernel of zeros. The size must be a positive
// odd integer.
func NewKernel(n int) (*Kernel, error) {
	if n < 1 || n%2 == 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKernelSize, n)
	}
	g, _ := NewGrid(n, n)
	return &Kernel{n: n, grid: g}, nil
}

// Size returns the kernel's side length.
func (k *Kernel) Size() int {
	return k.n
}

// Grid returns the kernel's backing grid. The grid is shared; writes to
// it change the kernel.
func (k *Kernel) Grid() *Grid {
	return k.grid
}

// Values returns the kernel's cells in row-major order, aliasing the
// backing storage.
func (k *Kernel) Values() []float32 {
	return k.grid.Values()
}

// SetValues copies vs into the kernel in row-major order. The buffer must
// hold exactly Size*Size values.
func (k *Kernel) SetValues(vs []float32) error {
	return k.grid.SetValues(vs)
}

// Sum returns the kernel's modulus, the sum of all its cells.
func (k *Kernel) Sum() float32 {
	return k.grid.Sum()
}

// Randomize fills the kernel with uniform values in [0, 1). A nil rng
// draws from the shared math/rand source; pass a seeded *rand.Rand for
// reproducible kernels.
func (k *Kernel) Randomize(rng *rand.Rand) {
	vs := k.grid.values
	if rng == nil {
		for i := range vs {
			vs[i] = rand.Float32()
		}
		return
	}
	for i := range vs {
		vs[i] = rng.Float32()
	}
}

// ConvolveAt computes one normalized convolution sample with the kernel's
// top-left cell anchored on grid cell (r, c). The kernel footprint must
// lie fully inside the grid.
func (k *Kernel) ConvolveAt(g *Grid, r, c int) (float32, error) {
	if r < 0 || c < 0 || r+k.n > g.rows || c+k.n > g.cols {
		return 0, fmt.Errorf("%w: %dx%d kernel anchored at (%d,%d) in %dx%d grid",
			ErrOutOfBounds, k.n, k.n, r, c, g.rows, g.cols)
	}
	return k.convolveAt(g, r, c, k.Sum()), nil
}

// convolveAt computes one sample without bounds checks, accumulating one
// dot product per kernel row.
func (k *Kernel) convolveAt(g *Grid, r, c int, modulus float32) float32 {
	var sum float32
	for i := 0; i < k.n; i++ {
		krow := k.grid.row(i)
		grow := g.values[(r+i)*g.cols+c : (r+i)*g.cols+c+k.n]
		sum += vec.BaseDot(krow, grow)
	}
	return sum / modulus
}

// Convolve2D slides the kernel over g and returns the valid-region result.
// An n-kernel over an RxC grid yields an (R-n)x(C-n) grid: anchors run
// from 0 to R-n-1 and 0 to C-n-1, trimming a full kernel width from the
// right and bottom edges. The modulus is read once at the start of the
// pass, so mutating the kernel mid-pass from another goroutine is not
// supported.
func (k *Kernel) Convolve2D(g *Grid) (*Grid, error) {
	return k.convolve2D(nil, g)
}

// Convolve2DPool is Convolve2D with output rows fanned out over pool.
// A nil pool runs sequentially; results are identical either way because
// each output row is written by exactly one worker.
func (k *Kernel) Convolve2DPool(pool *workerpool.Pool, g *Grid) (*Grid, error) {
	return k.convolve2D(pool, g)
}

func (k *Kernel) convolve2D(pool *workerpool.Pool, g *Grid) (*Grid, error) {
	if g.rows < k.n || g.cols < k.n {
		return nil, fmt.Errorf("%w: %dx%d kernel over %dx%d grid",
			ErrKernelLargerThanInput, k.n, k.n, g.rows, g.cols)
	}
	outRows := g.rows - k.n
	outCols := g.cols - k.n
	out, _ := NewGrid(outRows, outCols)
	modulus := k.Sum()

	convolveRow := func(r int) {
		dst := out.row(r)
		for c := 0; c < outCols; c++ {
			dst[c] = k.convolveAt(g, r, c, modulus)
		}
	}

	if pool == nil || outRows < minParallelRows {
		for r := 0; r < outRows; r++ {
			convolveRow(r)
		}
		return out, nil
	}
	pool.ParallelFor(outRows, func(start, end int) {
		for r := start; r < end; r++ {
			convolveRow(r)
		}
	})
	return out, nil
}

// DeconvolveAt computes the expansion contribution of kernel cell (r, c)
// applied to a single source value: the cell scaled by the value and
// normalized by the modulus.
func (k *Kernel) DeconvolveAt(v float32, r, c int) (float32, error) {
	if !k.grid.inBounds(r, c) {
		return 0, fmt.Errorf("%w: (%d,%d) in %dx%d kernel", ErrOutOfBounds, r, c, k.n, k.n)
	}
	return k.grid.values[r*k.n+c] * v / k.Sum(), nil
}

// Deconvolve2D expands g by the kernel: every source cell (i, j) is
// spread into the n x n output block with top-left corner (i*n, j*n),
// each block cell holding the source value scaled by the matching kernel
// cell over the modulus. An RxC input yields an (R*n)x(C*n) output.
// Deconvolve2D reverses Convolve2D's shape contraction, not its values.
func (k *Kernel) Deconvolve2D(g *Grid) (*Grid, error) {
	return k.deconvolve2D(nil, g)
}

// Deconvolve2DPool is Deconvolve2D with source rows fanned out over pool.
// A nil pool runs sequentially. Each source row owns a disjoint band of
// output rows, so pooled and sequential results are identical.
func (k *Kernel) Deconvolve2DPool(pool *workerpool.Pool, g *Grid) (*Grid, error) {
	return k.deconvolve2D(pool, g)
}

func (k *Kernel) deconvolve2D(pool *workerpool.Pool, g *Grid) (*Grid, error) {
	outRows := g.rows * k.n
	outCols := g.cols * k.n
	out, _ := NewGrid(outRows, outCols)
	modulus := k.Sum()

	expandRow := func(i int) {
		for j := 0; j < g.cols; j++ {
			v := g.values[i*g.cols+j]
			for ii := 0; ii < k.n; ii++ {
				krow := k.grid.row(ii)
				dst := out.values[(i*k.n+ii)*outCols+j*k.n:]
				for jj := 0; jj < k.n; jj++ {
					dst[jj] = krow[jj] * v / modulus
				}
			}
		}
	}

	if pool == nil || g.rows < minParallelRows {
		for i := 0; i < g.rows; i++ {
			expandRow(i)
		}
		return out, nil
	}
	pool.ParallelFor(g.rows, func(start, end int) {
		for i := start; i < end; i++ {
			expandRow(i)
		}
	})
	return out, nil
}
