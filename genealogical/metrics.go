package genealogical

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "rare"
	metricsSubsystem = "genealogical"
)

// Metrics collects sampler metrics
type Metrics struct {
	// Steps counts completed steps
	Steps prometheus.Counter
	// EffectiveSampleSize is 1/sum(w^2) of the latest normalized weights
	EffectiveSampleSize prometheus.Gauge
	// LogNormalization is the log of the latest normalization factor
	LogNormalization prometheus.Gauge
	// DistinctParents is the number of distinct members selected in the latest step
	DistinctParents prometheus.Gauge
	// MeanScore is the mean raw score of the latest scored generation
	MeanScore prometheus.Gauge
}

// NewMetrics creates sampler metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "steps_total",
			Help:      "Total number of completed resampling steps",
		}),
		EffectiveSampleSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "effective_sample_size",
			Help:      "Effective sample size of the latest normalized weights",
		}),
		LogNormalization: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "log_normalization",
			Help:      "Log of the latest weight normalization factor",
		}),
		DistinctParents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "distinct_parents",
			Help:      "Number of distinct members selected in the latest step",
		}),
		MeanScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "mean_score",
			Help:      "Mean raw score of the latest scored generation",
		}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.Steps, m.EffectiveSampleSize, m.LogNormalization, m.DistinctParents, m.MeanScore} {
			if err := reg.Register(c); err != nil {
				return nil, fmt.Errorf("failed to register metric: %w", err)
			}
		}
	}

	return m, nil
}
