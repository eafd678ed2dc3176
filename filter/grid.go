package filter

import (
	"fmt"

	"github.com/ajroetker/go-highway/hwy/contrib/vec"
)

// Grid is a dense row-major float32 matrix. Cell (r, c) lives at flat
// index r*cols+c. Public accessors are bounds-checked; arithmetic helpers
// operate on whole grids in place.
type Grid struct {
	rows   int
	cols   int
	values []float32
}

// NewGrid returns a zero-filled rows x cols grid. Either dimension may be
// zero, producing a grid with no cells.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	return &Grid{
		rows:   rows,
		cols:   cols,
		values: make([]float32, rows*cols),
	}, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	return g.cols
}

// Len returns the total cell count.
func (g *Grid) Len() int {
	return len(g.values)
}

func (g *Grid) inBounds(r, c int) bool {
	return r >= 0 && r < g.rows && c >= 0 && c < g.cols
}

// At returns the value at (r, c).
func (g *Grid) At(r, c int) (float32, error) {
	if !g.inBounds(r, c) {
		return 0, fmt.Errorf("%w: (%d,%d) in %dx%d grid", ErrOutOfBounds, r, c, g.rows, g.cols)
	}
	return g.values[r*g.cols+c], nil
}

// Set stores v at (r, c).
func (g *Grid) Set(r, c int, v float32) error {
	if !g.inBounds(r, c) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d grid", ErrOutOfBounds, r, c, g.rows, g.cols)
	}
	g.values[r*g.cols+c] = v
	return nil
}

// Row returns row r as a slice aliasing the grid's backing storage.
// Writes through the slice are visible in the grid.
func (g *Grid) Row(r int) ([]float32, error) {
	if r < 0 || r >= g.rows {
		return nil, fmt.Errorf("%w: row %d of %d", ErrOutOfBounds, r, g.rows)
	}
	return g.row(r), nil
}

// row returns row r without bounds checking.
func (g *Grid) row(r int) []float32 {
	return g.values[r*g.cols : (r+1)*g.cols]
}

// Values returns the backing storage in row-major order. The slice aliases
// the grid; mutating it mutates the grid.
func (g *Grid) Values() []float32 {
	return g.values
}

// SetValues copies vs into the grid in row-major order. The buffer length
// must equal Len.
func (g *Grid) SetValues(vs []float32) error {
	if len(vs) != len(g.values) {
		return fmt.Errorf("%w: got %d values, grid holds %d", ErrSizeMismatch, len(vs), len(g.values))
	}
	copy(g.values, vs)
	return nil
}

// Sum returns the sum of all cells. A grid with no cells sums to zero.
func (g *Grid) Sum() float32 {
	return vec.BaseSum(g.values)
}

// Scale multiplies every cell by f in place.
func (g *Grid) Scale(f float32) {
	vec.BaseScale(f, g.values)
}

// Add accumulates o into g cell by cell. Shapes must match exactly.
func (g *Grid) Add(o *Grid) error {
	if g.rows != o.rows || g.cols != o.cols {
		return fmt.Errorf("%w: %dx%d + %dx%d", ErrDimensionMismatch, g.rows, g.cols, o.rows, o.cols)
	}
	vec.BaseAdd(g.values, o.values)
	return nil
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cp := &Grid{
		rows:   g.rows,
		cols:   g.cols,
		values: make([]float32, len(g.values)),
	}
	copy(cp.values, g.values)
	return cp
}

// sameShape reports whether two grids have identical dimensions.
func sameShape(a, b *Grid) bool {
	return a.rows == b.rows && a.cols == b.cols
}
