package genealogical

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Option configures Base
type Option func(*Base)

// WithConfig replaces the whole configuration
func WithConfig(c *Config) Option {
	return func(b *Base) {
		if c != nil {
			b.cfg = c.clone()
		}
	}
}

// WithEnsembleSize sets the number of trajectories
func WithEnsembleSize(n int) Option {
	return func(b *Base) {
		b.cfg.EnsembleSize = n
	}
}

// WithTimestep sets the timestep used by the default propagator
func WithTimestep(dt float64) Option {
	return func(b *Base) {
		b.cfg.Timestep = &dt
	}
}

// WithTilt sets the exponential tilting intensity
func WithTilt(k float64) Option {
	return func(b *Base) {
		b.cfg.Tilt = k
	}
}

// WithWorkers sets the number of concurrent member operations
func WithWorkers(n int) Option {
	return func(b *Base) {
		b.cfg.Workers = n
	}
}

// WithSeed seeds the default selector
func WithSeed(seed uint64) Option {
	return func(b *Base) {
		b.cfg.Seed = seed
	}
}

// WithInitializer sets the initial ensemble constructor
func WithInitializer(in Initializer) Option {
	return func(b *Base) {
		b.init = in
	}
}

// WithSelector overrides multinomial resampling
func WithSelector(s Selector) Option {
	return func(b *Base) {
		b.sel = s
	}
}

// WithPropagator overrides default propagation
func WithPropagator(p Propagator) Option {
	return func(b *Base) {
		b.prop = p
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(b *Base) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithMetrics enables metrics collection
func WithMetrics(m *Metrics) Option {
	return func(b *Base) {
		b.metrics = m
	}
}

// WithTracerProvider sets the provider of the tracer used for Run and Step spans
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(b *Base) {
		if tp != nil {
			b.tracer = tp.Tracer(tracerName)
		}
	}
}
