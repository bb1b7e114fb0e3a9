package ou

import (
	"fmt"
	"math"

	rare "github.com/marco-hrlic/go-rare"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Process is Ornstein-Uhlenbeck process dx = Theta*(Mu-x)*dt + Sigma*dW
type Process struct {
	// Mu is the long term mean
	Mu float64
	// Theta is the mean reversion rate
	Theta float64
	// Sigma is the noise amplitude
	Sigma float64
}

// Validate checks process parameters
func (p Process) Validate() error {
	if p.Theta < 0 {
		return fmt.Errorf("invalid mean reversion rate: %v", p.Theta)
	}

	if p.Sigma < 0 {
		return fmt.Errorf("invalid noise amplitude: %v", p.Sigma)
	}

	return nil
}

// Trajectory is a sample path of Process integrated with Euler-Maruyama scheme
type Trajectory struct {
	p     Process
	t     []float64
	x     []float64
	src   rand.Source
	noise distuv.Normal
}

// NewTrajectory creates trajectory of p started at x0 at time t0.
// Noise is drawn from src, which the trajectory owns from now on.
func NewTrajectory(p Process, t0, x0 float64, src rand.Source) (*Trajectory, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if src == nil {
		return nil, fmt.Errorf("invalid random source: nil")
	}

	return &Trajectory{
		p:     p,
		t:     []float64{t0},
		x:     []float64{x0},
		src:   src,
		noise: distuv.Normal{Mu: 0, Sigma: 1, Src: src},
	}, nil
}

// Advance appends a new state dt after the latest one
func (tr *Trajectory) Advance(dt float64) error {
	if !(dt > 0) {
		return fmt.Errorf("invalid timestep: %v", dt)
	}

	n := len(tr.x) - 1
	x := tr.x[n]
	dw := math.Sqrt(dt) * tr.noise.Rand()
	x += tr.p.Theta*(tr.p.Mu-x)*dt + tr.p.Sigma*dw

	tr.t = append(tr.t, tr.t[n]+dt)
	tr.x = append(tr.x, x)

	return nil
}

// Score evaluates f against the trajectory history
func (tr *Trajectory) Score(f rare.ScoreFunc) float64 {
	return f(tr.t, tr.x)
}

// Copy returns a trajectory with the same history.
// The copy draws its noise from a new source seeded by the original one,
// so copies of the same trajectory diverge once advanced.
func (tr *Trajectory) Copy() rare.Trajectory {
	src := rand.NewSource(tr.src.Uint64())

	t := make([]float64, len(tr.t))
	copy(t, tr.t)
	x := make([]float64, len(tr.x))
	copy(x, tr.x)

	return &Trajectory{
		p:     tr.p,
		t:     t,
		x:     x,
		src:   src,
		noise: distuv.Normal{Mu: 0, Sigma: 1, Src: src},
	}
}

// Len returns the number of recorded states
func (tr *Trajectory) Len() int {
	return len(tr.x)
}

// Time returns a copy of the time axis
func (tr *Trajectory) Time() []float64 {
	t := make([]float64, len(tr.t))
	copy(t, tr.t)

	return t
}

// State returns a copy of the state history
func (tr *Trajectory) State() []float64 {
	x := make([]float64, len(tr.x))
	copy(x, tr.x)

	return x
}

// Initializer creates ensembles of trajectories of Process started at (T0, X0)
type Initializer struct {
	Process Process
	T0      float64
	X0      float64
	// Src seeds the noise source of every created trajectory
	Src rand.Source
}

// InitializeEnsemble creates size trajectories with independent noise sources
func (in *Initializer) InitializeEnsemble(size int) ([]rare.Trajectory, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", rare.ErrInvalidSize, size)
	}

	if in.Src == nil {
		return nil, fmt.Errorf("invalid random source: nil")
	}

	ensemble := make([]rare.Trajectory, size)
	for i := range ensemble {
		tr, err := NewTrajectory(in.Process, in.T0, in.X0, rand.NewSource(in.Src.Uint64()))
		if err != nil {
			return nil, err
		}
		ensemble[i] = tr
	}

	return ensemble, nil
}
