package compiler

import (
	"fmt"
	"io"
	"iter"
	"maps"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ezrec/gtac/regfile"
)

const (
	BIT_DEPTH_DEFAULT = 8  // Default register width.
	BIT_DEPTH_MAX     = 32 // Widest supported register.
)

// Config is the build configuration shared by every program.
type Config struct {
	BitDepth  int `yaml:"bit_depth"`  // Width of every register.
	StackSize int `yaml:"stack_size"` // Call stack slots.
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		BitDepth:  BIT_DEPTH_DEFAULT,
		StackSize: regfile.STACK_LIMIT,
	}
}

// LoadConfig reads a YAML configuration. Missing keys keep their defaults.
func LoadConfig(input io.Reader) (cfg Config, err error) {
	cfg = DefaultConfig()

	data, err := io.ReadAll(input)
	if err != nil {
		err = errors.Wrap(err, "read config")
		return
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		err = errors.Wrap(err, "parse config")
		return
	}

	err = cfg.Validate()

	return
}

// Validate checks the configuration ranges.
func (cfg Config) Validate() error {
	if cfg.BitDepth < 1 || cfg.BitDepth > BIT_DEPTH_MAX {
		return errors.Wrapf(ErrConfigDepth, "bit_depth %d", cfg.BitDepth)
	}
	if cfg.StackSize < 1 {
		return errors.Wrapf(ErrConfigStack, "stack_size %d", cfg.StackSize)
	}
	return nil
}

// Defines returns the equates predefined for programs built with this
// configuration.
func (cfg Config) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"BIT_DEPTH":  fmt.Sprintf("%d", cfg.BitDepth),
		"STACK_SIZE": fmt.Sprintf("%d", cfg.StackSize),
		"WORD_MAX":   fmt.Sprintf("%#x", regfile.Mask(cfg.BitDepth)),
	})
}
