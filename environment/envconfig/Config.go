// Package envconfig provides configuration structs for configuring
// warehouse environments with default parameters. Environment
// configurations in this package are JSON serializable.
package envconfig

import (
	"fmt"
	"strings"

	env "github.com/samuelfneumann/warehouse/environment"
	"github.com/samuelfneumann/warehouse/environment/warehouse"
	ts "github.com/samuelfneumann/warehouse/timestep"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	Basic    EnvName = "warehouse-robot-v0"
	Advanced EnvName = "warehouse-robot-advanced-v1"
)

// Default grid dimensions
const (
	DefaultRows int = 4
	DefaultCols int = 5
)

// ParseEnvName returns the environment named name. Both the registered
// names and the short names "basic" and "advanced" are accepted.
func ParseEnvName(name string) (EnvName, error) {
	switch strings.ToLower(name) {
	case string(Basic), "basic":
		return Basic, nil
	case string(Advanced), "advanced":
		return Advanced, nil
	}
	return "", fmt.Errorf("parseEnvName: no such environment %q", name)
}

// Config implements a specific configuration of a warehouse
// environment. MaxBattery and Obstacles are only used by the Advanced
// environment.
type Config struct {
	Environment EnvName
	Rows        int
	Cols        int
	MaxBattery  int
	Obstacles   int
}

// NewConfig returns a new environment Config
func NewConfig(envName EnvName, rows, cols, maxBattery,
	obstacles int) Config {
	return Config{
		Environment: envName,
		Rows:        rows,
		Cols:        cols,
		MaxBattery:  maxBattery,
		Obstacles:   obstacles,
	}
}

// Default returns the default configuration of environment envName
func Default(envName EnvName) Config {
	return NewConfig(envName, DefaultRows, DefaultCols,
		warehouse.DefaultMaxBattery, warehouse.DefaultNumObstacles)
}

// Validate returns an error if the Config cannot describe an
// environment
func (c Config) Validate() error {
	if c.Rows < 2 || c.Cols < 2 {
		return fmt.Errorf("validate: %w: got %d x %d",
			warehouse.ErrGridTooSmall, c.Rows, c.Cols)
	}

	switch c.Environment {
	case Basic:
		return nil

	case Advanced:
		if c.MaxBattery < 1 {
			return fmt.Errorf("validate: max battery must be positive, "+
				"got %d", c.MaxBattery)
		}
		if c.Obstacles < 0 {
			return fmt.Errorf("validate: negative obstacle count %d",
				c.Obstacles)
		}
		if c.Obstacles > c.Rows*c.Cols-2 {
			return fmt.Errorf("validate: %w: %d obstacles on a %d x %d grid",
				warehouse.ErrTooManyObstacles, c.Obstacles, c.Rows, c.Cols)
		}
		return nil
	}

	return fmt.Errorf("validate: no such environment %q", c.Environment)
}

// Create returns the environment described by the Config as well as
// the first timestep of the environment. The environment's generator is
// seeded with seed; opts may further configure the environment.
func (c Config) Create(seed uint64,
	opts ...warehouse.Option) (env.Environment, ts.TimeStep, error) {
	if err := c.Validate(); err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
	}

	opts = append([]warehouse.Option{warehouse.WithSeed(seed)}, opts...)

	switch c.Environment {
	case Basic:
		e, step, err := warehouse.NewBasic(c.Rows, c.Cols, opts...)
		if err != nil {
			return nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
		}
		return e, step, nil

	case Advanced:
		e, step, err := warehouse.NewAdvanced(c.Rows, c.Cols, c.MaxBattery,
			c.Obstacles, opts...)
		if err != nil {
			return nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
		}
		return e, step, nil
	}

	panic(fmt.Sprintf("create: cannot create environment %v, no such "+
		"environment", c.Environment))
}
