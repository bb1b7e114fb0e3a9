package rare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLast(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0.0, Last(nil, nil))
	assert.Equal(-2.0, Last([]float64{0, 1, 2}, []float64{3, 5, -2}))
}

func TestMax(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0.0, Max(nil, nil))
	assert.Equal(5.0, Max([]float64{0, 1, 2}, []float64{3, 5, -2}))
}
