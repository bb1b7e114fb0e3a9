package rare

import (
	"context"
	"errors"
)

var (
	// ErrNotImplemented is returned when an extension point has no concrete implementation
	ErrNotImplemented = errors.New("not implemented")
	// ErrAlreadyNormalized is returned when weights are normalized twice in one cycle
	ErrAlreadyNormalized = errors.New("weights already normalized")
	// ErrNotNormalized is returned when normalized weights are requested too early
	ErrNotNormalized = errors.New("weights not normalized")
	// ErrDegenerateWeights is returned when tilted weights do not sum to a finite positive value
	ErrDegenerateWeights = errors.New("degenerate weights")
	// ErrInvalidSelection is returned when selected indices break the selection contract
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrInvalidSize is returned for non-positive or mismatched ensemble sizes
	ErrInvalidSize = errors.New("invalid ensemble size")
	// ErrNoTimestep is returned when default propagation runs without a timestep
	ErrNoTimestep = errors.New("timestep not configured")
	// ErrUninitialized is returned when stepping an ensemble that was never initialized
	ErrUninitialized = errors.New("ensemble not initialized")
	// ErrInvalidIterations is returned for negative iteration counts
	ErrInvalidIterations = errors.New("invalid iteration count")
)

// ScoreFunc maps a trajectory history to a real-valued score.
// It must not modify t or x.
type ScoreFunc func(t, x []float64) float64

// Trajectory is a member of the ensemble
type Trajectory interface {
	// Advance propagates the trajectory in place by dt
	Advance(dt float64) error
	// Score evaluates f against the trajectory history
	Score(f ScoreFunc) float64
	// Copy returns an independent copy of the trajectory
	Copy() Trajectory
}

// Sampler is a genealogical rare event sampler
type Sampler interface {
	// Step runs a single propagate/weight/select cycle
	Step(ctx context.Context) error
	// Run runs n steps, initializing the ensemble first if needed
	Run(ctx context.Context, n int) error
	// Ensemble returns the current generation
	Ensemble() []Trajectory
}
