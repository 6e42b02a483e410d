// Package environment outlines the interfaces and structs needed to
// implement concrete environments
package environment

import (
	ts "github.com/samuelfneumann/warehouse/timestep"
	"gonum.org/v1/gonum/mat"
)

// Environment implements a simulated environment that an agent can act
// in. Environments start ready to use after construction, but callers
// should call Reset() before the first Step() of every episode.
type Environment interface {
	// Seed reseeds the environment's own random number generator so
	// that subsequent calls to Reset() are reproducible
	Seed(seed uint64)

	// Reset begins a new episode and returns its first TimeStep
	Reset() (ts.TimeStep, error)

	// Step takes a single action in the environment and returns the
	// resulting TimeStep, along with whether that TimeStep ends the
	// episode
	Step(action *mat.VecDense) (ts.TimeStep, bool, error)

	// Render sends the current state to the environment's renderer, if
	// it has one
	Render() error

	RewardSpec() Spec
	ObservationSpec() Spec
	ActionSpec() Spec
}
