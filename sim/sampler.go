package sim

import (
	"iter"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// ExponentialGenerator produces an infinite, non-restartable stream of
// i.i.d. exponential samples with the given rate. Its state lives in the
// underlying source, so every caller shares one sequence.
type ExponentialGenerator struct {
	dist  distuv.Exponential
	drawn uint64
}

// NewExponentialGenerator creates a generator with mean 1/rate drawing from src.
func NewExponentialGenerator(rate float64, src rand.Source) *ExponentialGenerator {
	return &ExponentialGenerator{
		dist: distuv.Exponential{Rate: rate, Src: src},
	}
}

// Next returns the next sample. Always strictly positive.
func (g *ExponentialGenerator) Next() float64 {
	g.drawn++
	v := g.dist.Rand()
	if v <= 0 {
		return math.SmallestNonzeroFloat64
	}
	return v
}

// Samples exposes the generator as a lazy sequence. Breaking out of a range
// loop leaves the generator positioned after the last yielded sample.
func (g *ExponentialGenerator) Samples() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for {
			if !yield(g.Next()) {
				return
			}
		}
	}
}

// Rate returns the configured rate parameter.
func (g *ExponentialGenerator) Rate() float64 { return g.dist.Rate }

// Drawn returns how many samples have been taken.
func (g *ExponentialGenerator) Drawn() uint64 { return g.drawn }
