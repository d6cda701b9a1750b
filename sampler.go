package quantumsim

import "math/rand"

// DefaultSamplerSeed seeds samplers constructed without an explicit seed.
const DefaultSamplerSeed int64 = 42

// Sampler turns a pair of relative (unnormalized) outcome probabilities
// into a measurement declaration.
//
// projected is the true outcome the state is collapsed onto; declared is
// the outcome reported to the experiment, which may differ under a noisy
// readout model; weight is the conditional probability of this declaration
// given the projection (1 for a perfect sampler).
//
// Samplers are long-lived and stateful: one per circuit or session, with an
// internal reproducible random stream advanced by each call.
type Sampler interface {
	Sample(p0, p1 float64) (declared, projected int, weight float64)
}

// SelectionSampler always declares and projects a pre-chosen result with
// unit weight, ignoring the input probabilities. It forces evaluation of
// one specific branch, leaving probability bookkeeping to the caller.
type SelectionSampler struct {
	Result int
}

func NewSelectionSampler(result int) *SelectionSampler {
	return &SelectionSampler{Result: result}
}

func (s *SelectionSampler) Sample(p0, p1 float64) (int, int, float64) {
	return s.Result, s.Result, 1
}

// UniformSampler draws outcomes by direct Monte Carlo sampling from a
// seeded stream: outcome 0 iff r < p0/(p0+p1). Declarations always match
// projections and the weight is always 1.
type UniformSampler struct {
	rng *rand.Rand
}

func NewUniformSampler(seed int64) *UniformSampler {
	return &UniformSampler{rng: rand.New(rand.NewSource(seed))}
}

func (s *UniformSampler) Sample(p0, p1 float64) (int, int, float64) {
	if s.rng.Float64() < p0/(p0+p1) {
		return 0, 0, 1
	}
	return 1, 1, 1
}

// NoisyUniformSampler draws the true outcome like UniformSampler, then
// independently flips the declaration with probability ReadoutError.
// The weight is ReadoutError on a flip and 1-ReadoutError otherwise.
type NoisyUniformSampler struct {
	ReadoutError float64
	rng          *rand.Rand
}

func NewNoisyUniformSampler(readoutError float64, seed int64) *NoisyUniformSampler {
	return &NoisyUniformSampler{
		ReadoutError: readoutError,
		rng:          rand.New(rand.NewSource(seed)),
	}
}

func (s *NoisyUniformSampler) Sample(p0, p1 float64) (int, int, float64) {
	projected := 1
	if s.rng.Float64() < p0/(p0+p1) {
		projected = 0
	}
	if s.rng.Float64() < s.ReadoutError {
		return 1 - projected, projected, s.ReadoutError
	}
	return projected, projected, 1 - s.ReadoutError
}
