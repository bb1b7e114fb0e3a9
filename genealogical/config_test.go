package genealogical

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	rare "github.com/marco-hrlic/go-rare"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	assert := assert.New(t)

	c := DefaultConfig()
	assert.NoError(c.Validate())
	assert.Equal(10, c.EnsembleSize)
	assert.Nil(c.Timestep)
	assert.Equal(1.0, c.Tilt)
	assert.Equal(1, c.Workers)
}

func TestParseConfig(t *testing.T) {
	assert := assert.New(t)

	c, err := ParseConfig([]byte("ensemble_size: 50\ntimestep: 0.01\ntilt: 2.5\nworkers: 4\nseed: 42\n"))
	assert.NoError(err)
	assert.Equal(50, c.EnsembleSize)
	if assert.NotNil(c.Timestep) {
		assert.Equal(0.01, *c.Timestep)
	}
	assert.Equal(2.5, c.Tilt)
	assert.Equal(4, c.Workers)
	assert.Equal(uint64(42), c.Seed)

	// missing fields keep their defaults
	c, err = ParseConfig([]byte("timestep: 0.5\n"))
	assert.NoError(err)
	assert.Equal(DefaultEnsembleSize, c.EnsembleSize)
	assert.Equal(DefaultTilt, c.Tilt)

	_, err = ParseConfig([]byte("ensemble_size: 0\n"))
	assert.True(errors.Is(err, rare.ErrInvalidSize))

	_, err = ParseConfig([]byte("timestep: -1\n"))
	assert.Error(err)

	_, err = ParseConfig([]byte("workers: 0\n"))
	assert.Error(err)

	_, err = ParseConfig([]byte("ensemble_size: [\n"))
	assert.Error(err)
}

func TestLoadConfig(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	assert.NoError(os.WriteFile(path, []byte("ensemble_size: 8\ntilt: 0.5\n"), 0o600))

	c, err := LoadConfig(path)
	assert.NoError(err)
	assert.Equal(8, c.EnsembleSize)
	assert.Equal(0.5, c.Tilt)

	b, err := New(rare.Last, WithConfig(c))
	assert.NoError(err)
	assert.Equal(8, b.Config().EnsembleSize)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(err)
}

func TestWithConfigCopies(t *testing.T) {
	assert := assert.New(t)

	dt := 0.1
	c := DefaultConfig()
	c.Timestep = &dt

	b, err := New(rare.Last, WithConfig(c))
	assert.NoError(err)

	dt = 5
	assert.Equal(0.1, *b.Config().Timestep)
}
