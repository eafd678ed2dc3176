package evolve

import (
	"errors"
	"math"
	"testing"

	"github.com/openfluke/prism/filter"
)

// imageFromValues builds an image whose three planes hold the given
// row-major values.
func imageFromValues(t *testing.T, rows, cols int, r, g, b []float32) *filter.ChannelImage {
	t.Helper()
	grids := make([]*filter.Grid, 3)
	for i, vs := range [][]float32{r, g, b} {
		grid, err := filter.NewGrid(rows, cols)
		if err != nil {
			t.Fatalf("NewGrid failed: %v", err)
		}
		if err := grid.SetValues(vs); err != nil {
			t.Fatalf("SetValues failed: %v", err)
		}
		grids[i] = grid
	}
	img, err := filter.NewChannelImageFromGrids(grids[0], grids[1], grids[2])
	if err != nil {
		t.Fatalf("NewChannelImageFromGrids failed: %v", err)
	}
	return img
}

func TestGridMSE(t *testing.T) {
	a, _ := filter.NewGrid(1, 4)
	b, _ := filter.NewGrid(1, 4)
	a.SetValues([]float32{0, 1, 2, 3})
	b.SetValues([]float32{1, 1, 4, 3})

	// Squared diffs: 1, 0, 4, 0 -> mean 1.25
	got, err := GridMSE(a, b)
	if err != nil {
		t.Fatalf("GridMSE failed: %v", err)
	}
	if math.Abs(got-1.25) > 1e-9 {
		t.Errorf("Expected MSE 1.25, got %v", got)
	}

	c, _ := filter.NewGrid(2, 2)
	if _, err := GridMSE(a, c); !errors.Is(err, filter.ErrDimensionMismatch) {
		t.Errorf("Expected ErrDimensionMismatch, got %v", err)
	}
}

func TestGridMaxAbsDiff(t *testing.T) {
	a, _ := filter.NewGrid(1, 3)
	b, _ := filter.NewGrid(1, 3)
	a.SetValues([]float32{1, -5, 2})
	b.SetValues([]float32{1.5, 5, 2})

	got, err := GridMaxAbsDiff(a, b)
	if err != nil {
		t.Fatalf("GridMaxAbsDiff failed: %v", err)
	}
	if math.Abs(got-10) > 1e-9 {
		t.Errorf("Expected max diff 10, got %v", got)
	}
}

func TestIdenticalImages(t *testing.T) {
	vals := []float32{1, 2, 3, 4, 5, 6}
	img := imageFromValues(t, 2, 3, vals, vals, vals)
	same := imageFromValues(t, 2, 3, vals, vals, vals)

	if mse, _ := MSE(img, same); mse != 0 {
		t.Errorf("Expected MSE 0, got %v", mse)
	}
	if mae, _ := MAE(img, same); mae != 0 {
		t.Errorf("Expected MAE 0, got %v", mae)
	}
	psnr, err := PSNR(img, same)
	if err != nil {
		t.Fatalf("PSNR failed: %v", err)
	}
	if !math.IsInf(psnr, 1) {
		t.Errorf("Expected +Inf PSNR, got %v", psnr)
	}
	for _, ch := range filter.Channels {
		r, err := ChannelCorrelation(img, same, ch)
		if err != nil {
			t.Fatalf("ChannelCorrelation failed: %v", err)
		}
		if math.Abs(r-1) > 1e-9 {
			t.Errorf("%s: expected correlation 1, got %v", ch, r)
		}
	}
}

func TestImageMetricsKnownValues(t *testing.T) {
	a := imageFromValues(t, 1, 2,
		[]float32{0, 0}, []float32{0, 0}, []float32{0, 0})
	b := imageFromValues(t, 1, 2,
		[]float32{3, 0}, []float32{0, 4}, []float32{0, 0})

	// Per-channel MSE: (9+0)/2, (0+16)/2, 0 -> mean 25/6
	mse, err := MSE(a, b)
	if err != nil {
		t.Fatalf("MSE failed: %v", err)
	}
	if math.Abs(mse-25.0/6) > 1e-9 {
		t.Errorf("Expected MSE %v, got %v", 25.0/6, mse)
	}

	// Absolute diffs: 3,0 / 0,4 / 0,0 over 6 cells
	mae, err := MAE(a, b)
	if err != nil {
		t.Fatalf("MAE failed: %v", err)
	}
	if math.Abs(mae-7.0/6) > 1e-9 {
		t.Errorf("Expected MAE %v, got %v", 7.0/6, mae)
	}

	psnr, err := PSNR(a, b)
	if err != nil {
		t.Fatalf("PSNR failed: %v", err)
	}
	want := 10 * math.Log10(255*255/(25.0/6))
	if math.Abs(psnr-want) > 1e-9 {
		t.Errorf("Expected PSNR %v, got %v", want, psnr)
	}
}

func TestChannelCorrelationSign(t *testing.T) {
	up := []float32{1, 2, 3, 4}
	down := []float32{4, 3, 2, 1}
	a := imageFromValues(t, 2, 2, up, up, up)
	b := imageFromValues(t, 2, 2, down, up, down)

	r, err := ChannelCorrelation(a, b, filter.Red)
	if err != nil {
		t.Fatalf("ChannelCorrelation failed: %v", err)
	}
	if math.Abs(r+1) > 1e-9 {
		t.Errorf("Expected correlation -1 on red, got %v", r)
	}

	g, err := ChannelCorrelation(a, b, filter.Green)
	if err != nil {
		t.Fatalf("ChannelCorrelation failed: %v", err)
	}
	if math.Abs(g-1) > 1e-9 {
		t.Errorf("Expected correlation 1 on green, got %v", g)
	}

	if _, err := ChannelCorrelation(a, b, filter.Channel(9)); !errors.Is(err, filter.ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds for invalid channel, got %v", err)
	}
}

func TestFitnessOrdering(t *testing.T) {
	ref := imageFromValues(t, 1, 4,
		[]float32{10, 20, 30, 40}, []float32{5, 15, 25, 35}, []float32{0, 50, 100, 150})
	near := imageFromValues(t, 1, 4,
		[]float32{11, 19, 30, 40}, []float32{5, 15, 25, 35}, []float32{0, 50, 100, 150})
	far := imageFromValues(t, 1, 4,
		[]float32{100, 0, 90, 10}, []float32{60, 5, 80, 2}, []float32{150, 0, 50, 100})

	mseFit := MSEFitness()
	perfect, err := mseFit(ref, ref)
	if err != nil {
		t.Fatalf("MSEFitness failed: %v", err)
	}
	if perfect != 0 {
		t.Errorf("Expected fitness 0 for identical images, got %v", perfect)
	}
	nearScore, _ := mseFit(near, ref)
	farScore, _ := mseFit(far, ref)
	if !(perfect > nearScore && nearScore > farScore) {
		t.Errorf("Expected 0 > near > far, got %v, %v, %v", perfect, nearScore, farScore)
	}

	corrFit := CorrelationFitness()
	perfectCorr, err := corrFit(ref, ref)
	if err != nil {
		t.Fatalf("CorrelationFitness failed: %v", err)
	}
	if math.Abs(perfectCorr-1) > 1e-9 {
		t.Errorf("Expected correlation fitness 1 for identical images, got %v", perfectCorr)
	}
	nearCorr, _ := corrFit(near, ref)
	farCorr, _ := corrFit(far, ref)
	if !(nearCorr > farCorr) {
		t.Errorf("Expected near correlation %v to beat far %v", nearCorr, farCorr)
	}
}

func TestMetricsShapeMismatch(t *testing.T) {
	a := imageFromValues(t, 1, 2, []float32{1, 2}, []float32{1, 2}, []float32{1, 2})
	b := imageFromValues(t, 2, 1, []float32{1, 2}, []float32{1, 2}, []float32{1, 2})

	if _, err := MSE(a, b); !errors.Is(err, filter.ErrDimensionMismatch) {
		t.Errorf("MSE: expected ErrDimensionMismatch, got %v", err)
	}
	if _, err := MAE(a, b); !errors.Is(err, filter.ErrDimensionMismatch) {
		t.Errorf("MAE: expected ErrDimensionMismatch, got %v", err)
	}
	if _, err := MSEFitness()(a, b); !errors.Is(err, filter.ErrDimensionMismatch) {
		t.Errorf("MSEFitness: expected ErrDimensionMismatch, got %v", err)
	}
}
