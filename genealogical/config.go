package genealogical

import (
	"fmt"
	"math"
	"os"

	"github.com/go-playground/validator/v10"
	rare "github.com/marco-hrlic/go-rare"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultEnsembleSize is the default number of trajectories
	DefaultEnsembleSize = 10
	// DefaultTilt is the default exponential tilting intensity
	DefaultTilt = 1.0
	// DefaultSeed seeds the default selector
	DefaultSeed uint64 = 1
)

var validate = validator.New()

// Config configures the sampler.
type Config struct {
	// EnsembleSize is the number of trajectories in every generation.
	EnsembleSize int `yaml:"ensemble_size" validate:"gt=0"`

	// Timestep used by the default propagator.
	// Nil is only valid with a custom Propagator.
	Timestep *float64 `yaml:"timestep,omitempty" validate:"omitempty,gt=0"`

	// Tilt is the intensity k in exp(k*score).
	Tilt float64 `yaml:"tilt"`

	// Workers bounds the number of members propagated or scored concurrently.
	// Default: 1 (sequential)
	Workers int `yaml:"workers" validate:"gte=1"`

	// Seed seeds the default multinomial selector.
	Seed uint64 `yaml:"seed"`
}

// DefaultConfig returns the default sampler configuration
func DefaultConfig() *Config {
	return &Config{
		EnsembleSize: DefaultEnsembleSize,
		Tilt:         DefaultTilt,
		Workers:      1,
		Seed:         DefaultSeed,
	}
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.EnsembleSize <= 0 {
		return fmt.Errorf("%w: %d", rare.ErrInvalidSize, c.EnsembleSize)
	}

	if math.IsNaN(c.Tilt) || math.IsInf(c.Tilt, 0) {
		return fmt.Errorf("invalid tilt intensity: %v", c.Tilt)
	}

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// ParseConfig parses YAML data on top of DefaultConfig and validates the result
func ParseConfig(data []byte) (*Config, error) {
	c := DefaultConfig()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadConfig reads and parses the YAML config stored in path
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return ParseConfig(data)
}

func (c *Config) clone() Config {
	cc := *c
	if c.Timestep != nil {
		dt := *c.Timestep
		cc.Timestep = &dt
	}

	return cc
}
