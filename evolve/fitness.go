package evolve

import "github.com/openfluke/prism/filter"

// Fitness scores a candidate image against a reference. Higher is better;
// a search loop maximizes it. Implementations fail when the two images'
// channel shapes disagree.
type Fitness func(candidate, reference *filter.ChannelImage) (float64, error)

// MSEFitness returns a Fitness that negates mean squared error: a perfect
// reproduction scores 0 and every deviation scores below it.
func MSEFitness() Fitness {
	return func(candidate, reference *filter.ChannelImage) (float64, error) {
		mse, err := MSE(candidate, reference)
		if err != nil {
			return 0, err
		}
		return -mse, nil
	}
}

// CorrelationFitness returns a Fitness that averages the per-channel
// Pearson correlation, landing in [-1, 1] with 1 for a perfectly
// correlated reproduction. Constant channels carry no variance and poison
// the score with NaN; references are expected to have texture.
func CorrelationFitness() Fitness {
	return func(candidate, reference *filter.ChannelImage) (float64, error) {
		var total float64
		for _, ch := range filter.Channels {
			r, err := ChannelCorrelation(candidate, reference, ch)
			if err != nil {
				return 0, err
			}
			total += r
		}
		return total / filter.NumChannels, nil
	}
}
