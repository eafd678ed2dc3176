package evolve

import (
	"fmt"

	"github.com/openfluke/prism/filter"
)

// Genome is a flat snapshot of a Transformer's trainable state: every
// kernel cell and every channel weight, in one float32 vector. The layout
// is fixed so that equal-sized transformers can exchange genomes: for each
// output channel in red, green, blue order, the three input kernels'
// row-major values (again red, green, blue), followed by that combinator's
// three channel weights.
type Genome []float32

// GenomeLen returns the genome length for kernel size n: three combinators,
// each carrying three n*n kernels and three weights.
func GenomeLen(n int) int {
	return filter.NumChannels * (filter.NumChannels*n*n + filter.NumChannels)
}

// Snapshot copies t's kernels and weights into a fresh Genome. The
// transformer is not retained; later mutations of t do not affect the
// snapshot.
func Snapshot(t *filter.Transformer) Genome {
	g := make(Genome, 0, GenomeLen(t.KernelSize))
	for _, out := range filter.Channels {
		cb := t.Combinator(out)
		for _, in := range filter.Channels {
			g = append(g, cb.Kernel(in).Values()...)
		}
		for _, in := range filter.Channels {
			g = append(g, cb.Weight(in))
		}
	}
	return g
}

// Apply writes the genome back into t, overwriting every kernel cell and
// channel weight. The genome length must match GenomeLen(t.KernelSize).
func (g Genome) Apply(t *filter.Transformer) error {
	n := t.KernelSize
	if len(g) != GenomeLen(n) {
		return fmt.Errorf("%w: genome holds %d values, size-%d transformer needs %d",
			filter.ErrSizeMismatch, len(g), n, GenomeLen(n))
	}
	pos := 0
	for _, out := range filter.Channels {
		cb := t.Combinator(out)
		for _, in := range filter.Channels {
			if err := cb.Kernel(in).SetValues(g[pos : pos+n*n]); err != nil {
				return err
			}
			pos += n * n
		}
		for _, in := range filter.Channels {
			cb.SetWeight(in, g[pos])
			pos++
		}
	}
	return nil
}

// Clone returns an independent copy of the genome.
func (g Genome) Clone() Genome {
	cp := make(Genome, len(g))
	copy(cp, g)
	return cp
}
