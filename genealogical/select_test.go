package genealogical

import (
	"errors"
	"math"
	"testing"

	rare "github.com/marco-hrlic/go-rare"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

func TestMultinomial(t *testing.T) {
	assert := assert.New(t)

	m := NewMultinomial(rand.NewSource(5))
	w := mat.NewVecDense(4, []float64{0.1, 0.2, 0.3, 0.4})

	trials := 20000
	counts := make([]float64, 4)
	for i := 0; i < trials; i++ {
		idx, err := m.Select(w)
		assert.NoError(err)
		assert.Len(idx, 4)
		for _, j := range idx {
			counts[j]++
		}
	}

	for j, c := range counts {
		assert.InDelta(w.AtVec(j), c/float64(4*trials), 0.01, "index %d", j)
	}

	// zero weight members are never drawn
	w = mat.NewVecDense(3, []float64{0.5, 0, 0.5})
	for i := 0; i < 1000; i++ {
		idx, err := m.Select(w)
		assert.NoError(err)
		assert.NotContains(idx, 1)
	}
}

func TestSystematic(t *testing.T) {
	assert := assert.New(t)

	s := NewSystematic(rand.NewSource(5))

	w := mat.NewVecDense(4, []float64{0.25, 0.25, 0.25, 0.25})
	idx, err := s.Select(w)
	assert.NoError(err)
	assert.Equal([]int{0, 1, 2, 3}, idx)

	w = mat.NewVecDense(4, []float64{1, 0, 0, 0})
	idx, err = s.Select(w)
	assert.NoError(err)
	assert.Equal([]int{0, 0, 0, 0}, idx)

	// every member gets floor(n*w) or ceil(n*w) copies
	w = mat.NewVecDense(5, []float64{0.05, 0.35, 0, 0.4, 0.2})
	for i := 0; i < 200; i++ {
		idx, err := s.Select(w)
		assert.NoError(err)
		assert.Len(idx, 5)

		counts := make([]int, 5)
		for _, j := range idx {
			counts[j]++
		}
		for j, c := range counts {
			nw := 5 * w.AtVec(j)
			assert.True(float64(c) >= math.Floor(nw)-1e-9 && float64(c) <= math.Ceil(nw)+1e-9,
				"member %d got %d copies for weight %v", j, c, w.AtVec(j))
		}
	}
}

func TestSelectDegenerate(t *testing.T) {
	assert := assert.New(t)

	selectors := []Selector{
		NewMultinomial(rand.NewSource(1)),
		NewSystematic(rand.NewSource(1)),
	}

	for _, s := range selectors {
		_, err := s.Select(mat.NewVecDense(2, []float64{0, 0}))
		assert.True(errors.Is(err, rare.ErrDegenerateWeights))

		_, err = s.Select(mat.NewVecDense(2, []float64{-0.5, 1.5}))
		assert.True(errors.Is(err, rare.ErrDegenerateWeights))

		_, err = s.Select(mat.NewVecDense(2, []float64{math.NaN(), 1}))
		assert.True(errors.Is(err, rare.ErrDegenerateWeights))

		_, err = s.Select(nil)
		assert.True(errors.Is(err, rare.ErrInvalidSize))
	}
}
