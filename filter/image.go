package filter

import (
	"fmt"
	"image"
	"image/draw"
)

// ChannelImage holds an RGB image as three same-shaped Grids, one per
// color channel. Alpha is dropped on ingest and reinstated as fully
// opaque on export.
type ChannelImage struct {
	planes [NumChannels]*Grid
}

// NewChannelImageFromPixels splits an interleaved RGBA buffer into three
// channel grids. The buffer is walked row-major against the declared
// shape, four bytes per pixel, and must hold exactly rows*cols*4 bytes.
func NewChannelImageFromPixels(pix []uint8, rows, cols int) (*ChannelImage, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	if len(pix) != rows*cols*4 {
		return nil, fmt.Errorf("%w: got %d bytes, %dx%d RGBA needs %d",
			ErrSizeMismatch, len(pix), rows, cols, rows*cols*4)
	}

	m := &ChannelImage{}
	for i := range m.planes {
		m.planes[i], _ = NewGrid(rows, cols)
	}
	red := m.planes[Red].values
	green := m.planes[Green].values
	blue := m.planes[Blue].values
	for i := 0; i < rows*cols; i++ {
		base := i * 4
		red[i] = float32(pix[base])
		green[i] = float32(pix[base+1])
		blue[i] = float32(pix[base+2])
	}
	return m, nil
}

// NewChannelImageFromGrids assembles an image from three channel grids,
// which must all share the same shape. The grids are referenced, not
// copied.
func NewChannelImageFromGrids(red, green, blue *Grid) (*ChannelImage, error) {
	if !sameShape(red, green) || !sameShape(red, blue) {
		return nil, fmt.Errorf("%w: r=%dx%d g=%dx%d b=%dx%d", ErrDimensionMismatch,
			red.rows, red.cols, green.rows, green.cols, blue.rows, blue.cols)
	}
	return &ChannelImage{planes: [NumChannels]*Grid{red, green, blue}}, nil
}

// FromImage converts any image.Image into a ChannelImage with one grid
// row per pixel row. Color values land in the 0..255 range.
func FromImage(img image.Image) *ChannelImage {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	m, _ := NewChannelImageFromPixels(rgba.Pix, b.Dy(), b.Dx())
	return m
}

// Rows returns the shared row count of the three channel grids. Because
// callers hold direct grid references, the shape is re-verified on every
// call rather than trusted from construction time.
func (m *ChannelImage) Rows() (int, error) {
	if err := m.checkShape(); err != nil {
		return 0, err
	}
	return m.planes[Red].rows, nil
}

// Cols returns the shared column count of the three channel grids,
// re-verifying shape consistency like Rows.
func (m *ChannelImage) Cols() (int, error) {
	if err := m.checkShape(); err != nil {
		return 0, err
	}
	return m.planes[Red].cols, nil
}

func (m *ChannelImage) checkShape() error {
	r, g, b := m.planes[Red], m.planes[Green], m.planes[Blue]
	if !sameShape(r, g) || !sameShape(r, b) {
		return fmt.Errorf("%w: r=%dx%d g=%dx%d b=%dx%d", ErrInconsistentShape,
			r.rows, r.cols, g.rows, g.cols, b.rows, b.cols)
	}
	return nil
}

// At returns the red, green and blue values at (r, c) in channel order.
func (m *ChannelImage) At(r, c int) ([NumChannels]float32, error) {
	var px [NumChannels]float32
	if err := m.checkShape(); err != nil {
		return px, err
	}
	if !m.planes[Red].inBounds(r, c) {
		return px, fmt.Errorf("%w: (%d,%d) in %dx%d image", ErrOutOfBounds,
			r, c, m.planes[Red].rows, m.planes[Red].cols)
	}
	idx := r*m.planes[Red].cols + c
	for i := range m.planes {
		px[i] = m.planes[i].values[idx]
	}
	return px, nil
}

// Channel returns the grid backing one color plane, or nil for an invalid
// channel. The grid is shared, not copied; mutations are visible in the
// image.
func (m *ChannelImage) Channel(ch Channel) *Grid {
	if !ch.Valid() {
		return nil
	}
	return m.planes[ch]
}

// Clone returns a deep copy of the image.
func (m *ChannelImage) Clone() *ChannelImage {
	cp := &ChannelImage{}
	for i, p := range m.planes {
		cp.planes[i] = p.Clone()
	}
	return cp
}

// ToRGBA renders the image into a stdlib RGBA buffer. Channel values are
// clamped to 0..255 and rounded to the nearest byte; alpha is set fully
// opaque.
func (m *ChannelImage) ToRGBA() (*image.RGBA, error) {
	if err := m.checkShape(); err != nil {
		return nil, err
	}
	rows, cols := m.planes[Red].rows, m.planes[Red].cols
	out := image.NewRGBA(image.Rect(0, 0, cols, rows))
	red := m.planes[Red].values
	green := m.planes[Green].values
	blue := m.planes[Blue].values
	for i := 0; i < rows*cols; i++ {
		base := i * 4
		out.Pix[base] = clampByte(red[i])
		out.Pix[base+1] = clampByte(green[i])
		out.Pix[base+2] = clampByte(blue[i])
		out.Pix[base+3] = 0xff
	}
	return out, nil
}

// clampByte maps a float channel value onto 0..255, rounding halves up.
// NaN clamps to zero.
func clampByte(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
