package sampling

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/sampleuv"
)

// DefaultSeed reproduces the draws every study has been reported with
const DefaultSeed = 5310

// ErrSampleTooLarge is returned when more rows are requested than exist
var ErrSampleTooLarge = errors.New("sample larger than population")

// Sampler draws reproducible uniform samples without replacement
type Sampler struct {
	Seed uint64
}

// New returns a sampler for the given seed
func New(seed uint64) Sampler {
	return Sampler{Seed: seed}
}

// Indices returns n distinct positions from [0, population). The same seed and
// population always produce the same positions in the same order, so sampling
// several columns of one table selects the same rows.
func (s Sampler) Indices(population, n int) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative sample size %d", n)
	}
	if n > population {
		return nil, fmt.Errorf("%w: %d > %d", ErrSampleTooLarge, n, population)
	}

	idx := make([]int, n)
	if n == 0 {
		return idx, nil
	}
	sampleuv.WithoutReplacement(idx, population, rand.NewPCG(s.Seed, s.Seed^0x9e3779b97f4a7c15))
	return idx, nil
}

// Sample returns n values drawn from column together with their row positions
func (s Sampler) Sample(column []float64, n int) ([]float64, []int, error) {
	idx, err := s.Indices(len(column), n)
	if err != nil {
		return nil, nil, err
	}
	return Take(column, idx), idx, nil
}

// Take returns the values of column at the given positions
func Take(column []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, row := range idx {
		out[i] = column[row]
	}
	return out
}
