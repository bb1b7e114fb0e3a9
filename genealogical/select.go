package genealogical

import (
	"fmt"
	"math"

	rare "github.com/marco-hrlic/go-rare"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Multinomial draws every parent independently with probability equal to its weight
type Multinomial struct {
	src rand.Source
}

// NewMultinomial creates multinomial selector drawing from src
func NewMultinomial(src rand.Source) *Multinomial {
	return &Multinomial{src: src}
}

// Select draws w.Len() indices with replacement
func (m *Multinomial) Select(w mat.Vector) ([]int, error) {
	p, err := probabilities(w)
	if err != nil {
		return nil, err
	}

	c := distuv.NewCategorical(p, m.src)
	idx := make([]int, len(p))
	for i := range idx {
		idx[i] = int(c.Rand())
	}

	return idx, nil
}

// Systematic resamples with a single uniform offset shared by all draws.
// The number of copies of member i differs from n*w_i by less than one.
type Systematic struct {
	u distuv.Uniform
}

// NewSystematic creates systematic selector drawing from src
func NewSystematic(src rand.Source) *Systematic {
	return &Systematic{
		u: distuv.Uniform{Min: 0, Max: 1, Src: src},
	}
}

// Select draws w.Len() sorted indices with replacement
func (s *Systematic) Select(w mat.Vector) ([]int, error) {
	p, err := probabilities(w)
	if err != nil {
		return nil, err
	}

	n := len(p)
	cum := floats.CumSum(make([]float64, n), p)
	total := cum[n-1]
	offset := s.u.Rand()

	idx := make([]int, n)
	j := 0
	for i := range idx {
		u := (offset + float64(i)) / float64(n) * total
		for j < n-1 && cum[j] <= u {
			j++
		}
		idx[i] = j
	}

	return idx, nil
}

func probabilities(w mat.Vector) ([]float64, error) {
	if w == nil || w.Len() == 0 {
		return nil, fmt.Errorf("%w: empty weights", rare.ErrInvalidSize)
	}

	p := make([]float64, w.Len())
	for i := range p {
		p[i] = w.AtVec(i)
		if p[i] < 0 || math.IsNaN(p[i]) || math.IsInf(p[i], 0) {
			return nil, fmt.Errorf("%w: weight %d is %v", rare.ErrDegenerateWeights, i, p[i])
		}
	}

	if floats.Sum(p) <= 0 {
		return nil, fmt.Errorf("%w: weights sum to zero", rare.ErrDegenerateWeights)
	}

	return p, nil
}
