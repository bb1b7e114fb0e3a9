package genealogical

import (
	"context"

	rare "github.com/marco-hrlic/go-rare"
	"gonum.org/v1/gonum/mat"
)

// Initializer builds the initial ensemble.
// Base has no default initial distribution.
type Initializer interface {
	// InitializeEnsemble returns exactly size independent trajectories
	InitializeEnsemble(size int) ([]rare.Trajectory, error)
}

// Selector chooses the parents of the next generation from normalized weights.
// It must return w.Len() indices in [0, w.Len()); repeated indices are allowed.
type Selector interface {
	Select(w mat.Vector) ([]int, error)
}

// Propagator advances the ensemble in place.
// It must neither resize the ensemble nor replace its members.
type Propagator interface {
	Propagate(ctx context.Context, ensemble []rare.Trajectory) error
}

// InitializerFunc is an adapter to use ordinary functions as Initializer
type InitializerFunc func(size int) ([]rare.Trajectory, error)

// InitializeEnsemble calls f(size)
func (f InitializerFunc) InitializeEnsemble(size int) ([]rare.Trajectory, error) {
	return f(size)
}

// SelectorFunc is an adapter to use ordinary functions as Selector
type SelectorFunc func(w mat.Vector) ([]int, error)

// Select calls f(w)
func (f SelectorFunc) Select(w mat.Vector) ([]int, error) {
	return f(w)
}

// PropagatorFunc is an adapter to use ordinary functions as Propagator
type PropagatorFunc func(ctx context.Context, ensemble []rare.Trajectory) error

// Propagate calls f(ctx, ensemble)
func (f PropagatorFunc) Propagate(ctx context.Context, ensemble []rare.Trajectory) error {
	return f(ctx, ensemble)
}
