package particle

import (
	rare "github.com/marco-hrlic/go-rare"
	"gonum.org/v1/gonum/mat"
)

// Particle is interacting particle system
type Particle interface {
	// rare.Sampler is genealogical rare event sampler
	rare.Sampler
	// Weights returns particle weights
	Weights() mat.Vector
	// EffectiveSampleSize returns effective number of particles
	EffectiveSampleSize() (float64, error)
}
