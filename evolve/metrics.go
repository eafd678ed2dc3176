package evolve

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/openfluke/prism/filter"
)

// Distance metrics between grids and images. Accumulation runs in float64
// even though the engine stores float32, so large planes do not lose the
// low bits of the running sums.

// GridMSE returns the mean squared difference between two same-shaped
// grids. Zero-area grids yield zero.
func GridMSE(a, b *filter.Grid) (float64, error) {
	if err := checkGridShapes(a, b); err != nil {
		return 0, err
	}
	av, bv := a.Values(), b.Values()
	if len(av) == 0 {
		return 0, nil
	}
	sum := 0.0
	for i := range av {
		d := float64(av[i]) - float64(bv[i])
		sum += d * d
	}
	return sum / float64(len(av)), nil
}

// GridMaxAbsDiff returns the largest absolute cellwise difference between
// two same-shaped grids. Zero-area grids yield zero.
func GridMaxAbsDiff(a, b *filter.Grid) (float64, error) {
	if err := checkGridShapes(a, b); err != nil {
		return 0, err
	}
	av, bv := a.Values(), b.Values()
	max := 0.0
	for i := range av {
		d := math.Abs(float64(av[i]) - float64(bv[i]))
		if d > max {
			max = d
		}
	}
	return max, nil
}

// MSE returns the mean squared error between two images, averaged over the
// three channels.
func MSE(a, b *filter.ChannelImage) (float64, error) {
	var total float64
	for _, ch := range filter.Channels {
		m, err := GridMSE(a.Channel(ch), b.Channel(ch))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", ch, err)
		}
		total += m
	}
	return total / filter.NumChannels, nil
}

// MAE returns the mean absolute error between two images, averaged over
// the three channels.
func MAE(a, b *filter.ChannelImage) (float64, error) {
	var total float64
	var cells int
	for _, ch := range filter.Channels {
		ga, gb := a.Channel(ch), b.Channel(ch)
		if err := checkGridShapes(ga, gb); err != nil {
			return 0, fmt.Errorf("%s: %w", ch, err)
		}
		av, bv := ga.Values(), gb.Values()
		for i := range av {
			total += math.Abs(float64(av[i]) - float64(bv[i]))
		}
		cells += len(av)
	}
	if cells == 0 {
		return 0, nil
	}
	return total / float64(cells), nil
}

// PSNR returns the peak signal-to-noise ratio between two images in
// decibels, with channel values on the usual 0..255 scale. Identical
// images yield +Inf.
func PSNR(a, b *filter.ChannelImage) (float64, error) {
	mse, err := MSE(a, b)
	if err != nil {
		return 0, err
	}
	if mse == 0 {
		return math.Inf(1), nil
	}
	return 10 * math.Log10(255*255/mse), nil
}

// ChannelCorrelation returns the Pearson correlation between one channel
// of a and the same channel of b, over the flattened planes. A constant
// plane has no variance and yields NaN.
func ChannelCorrelation(a, b *filter.ChannelImage, ch filter.Channel) (float64, error) {
	if !ch.Valid() {
		return 0, fmt.Errorf("%w: channel %d", filter.ErrOutOfBounds, ch)
	}
	ga, gb := a.Channel(ch), b.Channel(ch)
	if err := checkGridShapes(ga, gb); err != nil {
		return 0, fmt.Errorf("%s: %w", ch, err)
	}
	return stat.Correlation(toFloat64(ga.Values()), toFloat64(gb.Values()), nil), nil
}

func checkGridShapes(a, b *filter.Grid) error {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return fmt.Errorf("%w: %dx%d vs %dx%d",
			filter.ErrDimensionMismatch, a.Rows(), a.Cols(), b.Rows(), b.Cols())
	}
	return nil
}

func toFloat64(vs []float32) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = float64(v)
	}
	return out
}
