package filter

import (
	"fmt"
	"math/rand"

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
)

// Stage operation names carried on StageEvent.Op.
const (
	opConvolve   = "convolve"
	opDeconvolve = "deconvolve"
)

// Transformer turns one ChannelImage into another by running a dedicated
// Combinator per output channel. All three combinators see the full input
// image; the red combinator's output becomes the red plane of the result,
// and likewise for green and blue.
//
// Pool and Observer are optional. A non-nil Pool parallelizes the row
// loops of every pass; the pool stays owned by the caller, who is
// responsible for closing it. A non-nil Observer is notified once per
// output plane per pass.
type Transformer struct {
	KernelSize int // side length the transformer was built with

	Red   *Combinator
	Green *Combinator
	Blue  *Combinator

	Pool     *workerpool.Pool
	Observer Observer
}

// NewTransformer returns a transformer with three zero-filled combinators
// of size n. The kernel size must be a positive odd integer.
func NewTransformer(n int) (*Transformer, error) {
	t := &Transformer{KernelSize: n}
	var err error
	if t.Red, err = NewCombinator(n); err != nil {
		return nil, err
	}
	if t.Green, err = NewCombinator(n); err != nil {
		return nil, err
	}
	if t.Blue, err = NewCombinator(n); err != nil {
		return nil, err
	}
	return t, nil
}

// Combinator returns the combinator producing output channel ch, or nil
// for an invalid channel.
func (t *Transformer) Combinator(ch Channel) *Combinator {
	switch ch {
	case Red:
		return t.Red
	case Green:
		return t.Green
	case Blue:
		return t.Blue
	}
	return nil
}

// Randomize fills every kernel and weight in all three combinators with
// uniform values in [0, 1). A nil rng draws from the shared math/rand
// source.
func (t *Transformer) Randomize(rng *rand.Rand) {
	for _, ch := range Channels {
		t.Combinator(ch).Randomize(rng)
	}
}

// Transform convolves img through all three combinators and assembles the
// results into a new image. For an RxC input and kernel size n the output
// is (R-n)x(C-n), so every pass trims a kernel-sized margin; inputs
// smaller than the kernel fail with ErrKernelLargerThanInput.
func (t *Transformer) Transform(img *ChannelImage) (*ChannelImage, error) {
	return t.apply(opConvolve, img, func(cb *Combinator, img *ChannelImage) (*Grid, error) {
		return cb.convolve(t.Pool, img)
	})
}

// Untransform runs the expanding pass: img is deconvolved through all
// three combinators into an (R*n)x(C*n) image. It mirrors Transform's
// shape change, not its values.
func (t *Transformer) Untransform(img *ChannelImage) (*ChannelImage, error) {
	return t.apply(opDeconvolve, img, func(cb *Combinator, img *ChannelImage) (*Grid, error) {
		return cb.deconvolve(t.Pool, img)
	})
}

// apply folds img through the per-channel combinators in fixed R, G, B
// order, notifying the observer as each plane lands.
func (t *Transformer) apply(op string, img *ChannelImage, fold func(*Combinator, *ChannelImage) (*Grid, error)) (*ChannelImage, error) {
	var planes [NumChannels]*Grid
	for _, ch := range Channels {
		out, err := fold(t.Combinator(ch), img)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", op, ch, err)
		}
		notifyObserver(t.Observer, op, ch, out)
		planes[ch] = out
	}
	return NewChannelImageFromGrids(planes[Red], planes[Green], planes[Blue])
}
