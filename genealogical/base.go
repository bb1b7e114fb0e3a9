package genealogical

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	rare "github.com/marco-hrlic/go-rare"
	"github.com/marco-hrlic/go-rare/lineage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

const tracerName = "github.com/marco-hrlic/go-rare/genealogical"

type state int

const (
	uninitialized state = iota
	ready
)

// Base is genealogical rare event sampler.
// Every step propagates the ensemble, weights members by exp(k*score),
// and replaces the ensemble with independent copies of the selected members.
// Base is not safe for concurrent use.
type Base struct {
	score rare.ScoreFunc
	cfg   Config

	init Initializer
	sel  Selector
	prop Propagator

	state    state
	ensemble []rare.Trajectory
	tree     *lineage.Tree
	gen      int

	// weights holds raw scores until normalized
	weights    *mat.VecDense
	normalized bool
	norm       float64
	meanScore  float64
	history    []float64

	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *Metrics
}

// New creates new genealogical sampler scoring trajectories with score.
// Unless overridden by options the ensemble has DefaultEnsembleSize members,
// no timestep, tilt DefaultTilt and multinomial selection.
func New(score rare.ScoreFunc, opts ...Option) (*Base, error) {
	if score == nil {
		return nil, fmt.Errorf("invalid score function: nil")
	}

	b := &Base{
		score:  score,
		cfg:    *DefaultConfig(),
		logger: slog.New(slog.DiscardHandler),
		tracer: otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(b)
	}

	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	if b.sel == nil {
		b.sel = NewMultinomial(rand.NewSource(b.cfg.Seed))
	}

	return b, nil
}

// Config returns a copy of sampler configuration
func (b *Base) Config() Config {
	return b.cfg.clone()
}

// Run initializes the ensemble if it has not been initialized yet and runs n steps
func (b *Base) Run(ctx context.Context, n int) (err error) {
	ctx, span := b.tracer.Start(ctx, "genealogical.Run", trace.WithAttributes(
		attribute.Int("iterations", n),
		attribute.Int("ensemble.size", b.cfg.EnsembleSize),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if n < 0 {
		return fmt.Errorf("%w: %d", rare.ErrInvalidIterations, n)
	}

	if b.state == uninitialized {
		if err := b.InitializeEnsemble(); err != nil {
			return err
		}
	}

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run stopped after %d of %d steps: %w", i, n, err)
		}

		if err := b.Step(ctx); err != nil {
			return fmt.Errorf("step %d: %w", b.gen, err)
		}
	}

	b.logger.Info("run complete",
		"steps", n,
		"generation", b.gen,
		"log_normalization", b.LogNormalization(),
	)

	return nil
}

// Step propagates the ensemble, weights and normalizes it, and resamples the next generation
func (b *Base) Step(ctx context.Context) (err error) {
	ctx, span := b.tracer.Start(ctx, "genealogical.Step", trace.WithAttributes(
		attribute.Int("generation", b.gen),
		attribute.Int("ensemble.size", b.cfg.EnsembleSize),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if b.state != ready {
		return rare.ErrUninitialized
	}

	if err := b.PropagateEnsemble(ctx); err != nil {
		return fmt.Errorf("propagation failed: %w", err)
	}

	if err := b.ComputeWeights(ctx); err != nil {
		return fmt.Errorf("weighting failed: %w", err)
	}

	if err := b.NormalizeWeights(); err != nil {
		return fmt.Errorf("normalization failed: %w", err)
	}

	ess, err := b.EffectiveSampleSize()
	if err != nil {
		return err
	}

	selected, err := b.Select()
	if err != nil {
		return fmt.Errorf("selection failed: %w", err)
	}

	if err := b.PrepareForNextGeneration(selected); err != nil {
		return fmt.Errorf("resampling failed: %w", err)
	}

	b.history = append(b.history, b.norm)
	b.gen++

	distinct, err := b.tree.Distinct(b.tree.Generations() - 1)
	if err != nil {
		return err
	}

	span.SetAttributes(
		attribute.Float64("normalization", b.norm),
		attribute.Float64("ess", ess),
		attribute.Int("distinct_parents", distinct),
	)

	b.observe(ess, distinct)

	b.logger.Debug("step complete",
		"generation", b.gen,
		"normalization", b.norm,
		"ess", ess,
		"mean_score", b.meanScore,
		"distinct_parents", distinct,
	)

	return nil
}

// PropagateEnsemble advances every member of the ensemble.
// Without custom Propagator every member is advanced in place by the configured timestep.
func (b *Base) PropagateEnsemble(ctx context.Context) error {
	if b.state != ready {
		return rare.ErrUninitialized
	}

	if b.prop != nil {
		return b.prop.Propagate(ctx, b.ensemble)
	}

	if b.cfg.Timestep == nil {
		return rare.ErrNoTimestep
	}

	dt := *b.cfg.Timestep

	return b.forEach(ctx, func(i int) error {
		if err := b.ensemble[i].Advance(dt); err != nil {
			return fmt.Errorf("member %d: %w", i, err)
		}
		return nil
	})
}

// Select returns parent indices of the next generation drawn from normalized weights
func (b *Base) Select() ([]int, error) {
	if !b.normalized {
		return nil, rare.ErrNotNormalized
	}

	selected, err := b.sel.Select(b.weights)
	if err != nil {
		return nil, err
	}

	if err := b.checkSelection(selected); err != nil {
		return nil, err
	}

	return selected, nil
}

// Generation returns the number of steps completed since initialization
func (b *Base) Generation() int {
	return b.gen
}

// Lineage returns the genealogy of the current ensemble.
// It returns nil before initialization.
func (b *Base) Lineage() *lineage.Tree {
	return b.tree
}

// forEach runs fn for every member index, concurrently when more than one worker is configured.
// It returns once every call has finished.
func (b *Base) forEach(ctx context.Context, fn func(i int) error) error {
	n := len(b.ensemble)

	if b.cfg.Workers <= 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.Workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(i)
		})
	}

	return g.Wait()
}

func (b *Base) observe(ess float64, distinct int) {
	if b.metrics == nil {
		return
	}

	b.metrics.Steps.Inc()
	b.metrics.EffectiveSampleSize.Set(ess)
	b.metrics.LogNormalization.Set(math.Log(b.norm))
	b.metrics.DistinctParents.Set(float64(distinct))
	b.metrics.MeanScore.Set(b.meanScore)
}
