package genealogical

import (
	"context"
	"fmt"
	"math"

	rare "github.com/marco-hrlic/go-rare"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ComputeWeights scores every member and stores the raw scores as weights.
// It clears the normalization factor.
func (b *Base) ComputeWeights(ctx context.Context) error {
	if b.state != ready {
		return rare.ErrUninitialized
	}

	raw := make([]float64, len(b.ensemble))
	if err := b.forEach(ctx, func(i int) error {
		raw[i] = b.ensemble[i].Score(b.score)
		return nil
	}); err != nil {
		return err
	}

	b.weights = mat.NewVecDense(len(raw), raw)
	b.normalized = false
	b.norm = 0
	b.meanScore = stat.Mean(raw, nil)

	return nil
}

// NormalizeWeights tilts raw scores to exp(k*score) and normalizes them to sum to 1.
// Calling it twice without ComputeWeights in between fails with rare.ErrAlreadyNormalized.
// Tilted weights must have a finite positive sum: a zero or infinite sum fails
// with rare.ErrDegenerateWeights and is never repaired.
func (b *Base) NormalizeWeights() error {
	if b.normalized {
		return rare.ErrAlreadyNormalized
	}

	if b.weights == nil {
		return fmt.Errorf("%w: weights not computed", rare.ErrUninitialized)
	}

	k := b.cfg.Tilt
	w := make([]float64, b.weights.Len())
	for i := range w {
		w[i] = math.Exp(k * b.weights.AtVec(i))
	}

	sum := floats.Sum(w)
	if !(sum > 0) || math.IsInf(sum, 0) {
		return fmt.Errorf("%w: tilted weights sum to %v", rare.ErrDegenerateWeights, sum)
	}

	floats.Scale(1/sum, w)

	b.weights = mat.NewVecDense(len(w), w)
	b.norm = sum
	b.normalized = true

	return nil
}

// Weights returns a copy of the current weights: raw scores after ComputeWeights,
// selection probabilities after NormalizeWeights. It returns nil if no weights were computed.
func (b *Base) Weights() mat.Vector {
	if b.weights == nil {
		return nil
	}

	return mat.VecDenseCopyOf(b.weights)
}

// NormalizationFactor returns the sum used by the latest normalization.
// ok is false until the current weights are normalized.
func (b *Base) NormalizationFactor() (factor float64, ok bool) {
	return b.norm, b.normalized
}

// EffectiveSampleSize returns 1/sum(w_i^2) of the normalized weights
func (b *Base) EffectiveSampleSize() (float64, error) {
	if !b.normalized {
		return 0, rare.ErrNotNormalized
	}

	w := b.weights.RawVector().Data

	return 1 / floats.Dot(w, w), nil
}

// Normalizations returns the normalization factor of every completed step
func (b *Base) Normalizations() []float64 {
	h := make([]float64, len(b.history))
	copy(h, b.history)

	return h
}

// LogNormalization returns the sum of the logs of all normalization factors
func (b *Base) LogNormalization() float64 {
	var l float64
	for _, z := range b.history {
		l += math.Log(z)
	}

	return l
}
