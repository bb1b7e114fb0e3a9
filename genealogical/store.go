package genealogical

import (
	"fmt"

	rare "github.com/marco-hrlic/go-rare"
	"github.com/marco-hrlic/go-rare/lineage"
)

// InitializeEnsemble builds the initial generation with the configured Initializer.
// It fails with rare.ErrNotImplemented when no Initializer is configured.
func (b *Base) InitializeEnsemble() error {
	if b.init == nil {
		return fmt.Errorf("initialize ensemble: %w", rare.ErrNotImplemented)
	}

	size := b.cfg.EnsembleSize

	ensemble, err := b.init.InitializeEnsemble(size)
	if err != nil {
		return fmt.Errorf("initialize ensemble: %w", err)
	}

	if len(ensemble) != size {
		return fmt.Errorf("%w: initializer returned %d members, expected %d", rare.ErrInvalidSize, len(ensemble), size)
	}

	for i, m := range ensemble {
		if m == nil {
			return fmt.Errorf("initialize ensemble: member %d is nil", i)
		}
	}

	tree, err := lineage.New(size)
	if err != nil {
		return err
	}

	b.ensemble = ensemble
	b.tree = tree
	b.gen = 0
	b.history = nil
	b.weights = nil
	b.normalized = false
	b.norm = 0
	b.state = ready

	b.logger.Debug("ensemble initialized", "size", size)

	return nil
}

// PrepareForNextGeneration replaces the ensemble with independent copies of the selected members.
// Member i of the new generation is a copy of member selected[i] of the current one.
// The ensemble is left untouched if any copy fails.
func (b *Base) PrepareForNextGeneration(selected []int) error {
	if b.state != ready {
		return rare.ErrUninitialized
	}

	if err := b.checkSelection(selected); err != nil {
		return err
	}

	// copies run sequentially: Copy may draw from the source member's random stream
	next := make([]rare.Trajectory, len(selected))
	for i, j := range selected {
		c := b.ensemble[j].Copy()
		if c == nil {
			return fmt.Errorf("copy of member %d is nil", j)
		}
		next[i] = c
	}

	if err := b.tree.Append(selected); err != nil {
		return err
	}
	b.ensemble = next

	return nil
}

// Ensemble returns the current generation.
// The returned members are owned by the sampler and must not be modified.
func (b *Base) Ensemble() []rare.Trajectory {
	if b.ensemble == nil {
		return nil
	}

	e := make([]rare.Trajectory, len(b.ensemble))
	copy(e, b.ensemble)

	return e
}

func (b *Base) checkSelection(selected []int) error {
	n := b.cfg.EnsembleSize

	if len(selected) != n {
		return fmt.Errorf("%w: got %d indices, expected %d", rare.ErrInvalidSelection, len(selected), n)
	}

	for i, j := range selected {
		if j < 0 || j >= n {
			return fmt.Errorf("%w: index %d at position %d out of range [0, %d)", rare.ErrInvalidSelection, j, i, n)
		}
	}

	return nil
}
