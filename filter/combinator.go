package filter

import (
	"fmt"
	"math/rand"

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
)

// Combinator folds a full ChannelImage into one output plane. It owns a
// dedicated Kernel per input channel plus a scalar weight per input
// channel, and combines the three convolved planes as
//
//	out = (weight[R]*conv[R] + weight[G]*conv[G] + weight[B]*conv[B]) * WeightSum
//
// Each input contribution is scaled by its channel weight and the merged
// plane is then scaled by the weight sum again, so weights enter the
// output twice. A Combinator with all weights at their initial value of 1
// therefore emits three times the plain channel average.
type Combinator struct {
	FromRed   *Kernel
	FromGreen *Kernel
	FromBlue  *Kernel

	weights [NumChannels]float32
}

// NewCombinator returns a combinator with three zero-filled n x n kernels
// and all channel weights set to 1. The kernel size must be a positive
// odd integer.
func NewCombinator(n int) (*Combinator, error) {
	cb := &Combinator{weights: [NumChannels]float32{1, 1, 1}}
	var err error
	if cb.FromRed, err = NewKernel(n); err != nil {
		return nil, err
	}
	if cb.FromGreen, err = NewKernel(n); err != nil {
		return nil, err
	}
	if cb.FromBlue, err = NewKernel(n); err != nil {
		return nil, err
	}
	return cb, nil
}

// Kernel returns the kernel applied to input channel ch, or nil for an
// invalid channel.
func (cb *Combinator) Kernel(ch Channel) *Kernel {
	switch ch {
	case Red:
		return cb.FromRed
	case Green:
		return cb.FromGreen
	case Blue:
		return cb.FromBlue
	}
	return nil
}

// Weight returns the scalar weight applied to input channel ch, or 0 for
// an invalid channel.
func (cb *Combinator) Weight(ch Channel) float32 {
	if !ch.Valid() {
		return 0
	}
	return cb.weights[ch]
}

// SetWeight stores the scalar weight for input channel ch. Invalid
// channels are ignored.
func (cb *Combinator) SetWeight(ch Channel, w float32) {
	if !ch.Valid() {
		return
	}
	cb.weights[ch] = w
}

// WeightSum returns the sum of the three channel weights.
func (cb *Combinator) WeightSum() float32 {
	return cb.weights[Red] + cb.weights[Green] + cb.weights[Blue]
}

// Randomize fills all three kernels and all three channel weights with
// uniform values in [0, 1). A nil rng draws from the shared math/rand
// source.
func (cb *Combinator) Randomize(rng *rand.Rand) {
	for _, ch := range Channels {
		cb.Kernel(ch).Randomize(rng)
		if rng == nil {
			cb.weights[ch] = rand.Float32()
		} else {
			cb.weights[ch] = rng.Float32()
		}
	}
}

// ConvolvePartial convolves a single input channel of img with that
// channel's kernel and scales the result by the channel weight. The
// returned grid is the ch contribution to Convolve's output, before the
// final WeightSum scaling.
func (cb *Combinator) ConvolvePartial(ch Channel, img *ChannelImage) (*Grid, error) {
	return cb.convolvePartial(nil, ch, img)
}

func (cb *Combinator) convolvePartial(pool *workerpool.Pool, ch Channel, img *ChannelImage) (*Grid, error) {
	if !ch.Valid() {
		return nil, fmt.Errorf("%w: channel %d", ErrOutOfBounds, ch)
	}
	out, err := cb.Kernel(ch).convolve2D(pool, img.Channel(ch))
	if err != nil {
		return nil, err
	}
	out.Scale(cb.weights[ch])
	return out, nil
}

// Convolve folds all three channels of img into a single plane: the three
// weighted partials are accumulated and the total is scaled by WeightSum.
// The output shape is (R-n)x(C-n) for an RxC image and n-sized kernels.
func (cb *Combinator) Convolve(img *ChannelImage) (*Grid, error) {
	return cb.convolve(nil, img)
}

func (cb *Combinator) convolve(pool *workerpool.Pool, img *ChannelImage) (*Grid, error) {
	if err := img.checkShape(); err != nil {
		return nil, err
	}
	total, err := cb.convolvePartial(pool, Red, img)
	if err != nil {
		return nil, err
	}
	for _, ch := range [2]Channel{Green, Blue} {
		partial, err := cb.convolvePartial(pool, ch, img)
		if err != nil {
			return nil, err
		}
		if err := total.Add(partial); err != nil {
			return nil, err
		}
	}
	total.Scale(cb.WeightSum())
	return total, nil
}

// DeconvolvePartial expands a single input channel of img with that
// channel's kernel and scales the result by the channel weight.
func (cb *Combinator) DeconvolvePartial(ch Channel, img *ChannelImage) (*Grid, error) {
	return cb.deconvolvePartial(nil, ch, img)
}

func (cb *Combinator) deconvolvePartial(pool *workerpool.Pool, ch Channel, img *ChannelImage) (*Grid, error) {
	if !ch.Valid() {
		return nil, fmt.Errorf("%w: channel %d", ErrOutOfBounds, ch)
	}
	out, err := cb.Kernel(ch).deconvolve2D(pool, img.Channel(ch))
	if err != nil {
		return nil, err
	}
	out.Scale(cb.weights[ch])
	return out, nil
}

// Deconvolve is Convolve's expanding counterpart: the three weighted
// channel expansions are accumulated and scaled by WeightSum, yielding an
// (R*n)x(C*n) plane for an RxC image and n-sized kernels.
func (cb *Combinator) Deconvolve(img *ChannelImage) (*Grid, error) {
	return cb.deconvolve(nil, img)
}

func (cb *Combinator) deconvolve(pool *workerpool.Pool, img *ChannelImage) (*Grid, error) {
	if err := img.checkShape(); err != nil {
		return nil, err
	}
	total, err := cb.deconvolvePartial(pool, Red, img)
	if err != nil {
		return nil, err
	}
	for _, ch := range [2]Channel{Green, Blue} {
		partial, err := cb.deconvolvePartial(pool, ch, img)
		if err != nil {
			return nil, err
		}
		if err := total.Add(partial); err != nil {
			return nil, err
		}
	}
	total.Scale(cb.WeightSum())
	return total, nil
}
