// Package agent defines the interfaces of agents which act in
// environments
package agent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samuelfneumann/warehouse/timestep"
	"gonum.org/v1/gonum/mat"
)

// ErrMalformedObservation is returned by policies given an observation
// they cannot interpret
var ErrMalformedObservation = errors.New("malformed observation")

// Type names a kind of agent
type Type string

// Agents available for configuration
const (
	Random Type = "RandomAgent"
	Greedy Type = "GreedyAgent"
)

// Policy represents a policy that an agent can have. Policies
// determine how agents select actions.
type Policy interface {
	// SelectAction selects an action given the current timestep
	SelectAction(t timestep.TimeStep) (*mat.VecDense, error)

	// Reset clears any per-episode state, and is called at the start of
	// each episode
	Reset()
}

// Learner implements a learning algorithm. Learners are only given
// transitions while training; during evaluation they are left
// untouched.
type Learner interface {
	// Observe records that an action led to some timestep
	Observe(action *mat.VecDense, nextObs timestep.TimeStep) error

	// EndEpisode performs cleanup at the end of a training episode
	EndEpisode()
}

// Agent is a Policy that also learns
type Agent interface {
	Policy
	Learner
}

// ParseType returns the agent type named name. Both the type names and
// the short names "random" and "greedy" are accepted.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(name) {
	case strings.ToLower(string(Random)), "random":
		return Random, nil
	case strings.ToLower(string(Greedy)), "greedy":
		return Greedy, nil
	}
	return "", fmt.Errorf("parseType: no such agent %q", name)
}
