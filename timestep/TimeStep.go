// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"github.com/samuelfneumann/warehouse/utils/matutils"
	"gonum.org/v1/gonum/mat"
)

// StepType denotes the type of step that a TimeStep can be, either the
// first environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType describes why an episode ended. Only TimeSteps with StepType
// Last carry an EndType other than Unended.
type EndType int

const (
	// Unended marks a TimeStep that does not end its episode
	Unended EndType = iota

	// TerminalStateReached marks an episode ended by the environment
	// itself, e.g. reaching the target or running out of battery
	TerminalStateReached

	// Truncated marks an episode ended externally to the environment's
	// own dynamics
	Truncated
)

func (e EndType) String() string {
	switch e {
	case TerminalStateReached:
		return "TerminalStateReached"
	case Truncated:
		return "Truncated"
	default:
		return "Unended"
	}
}

// TimeStep packages together a single timestep in an environment.
//
// The Observation is a snapshot owned by the TimeStep: environments
// never mutate an Observation after returning it.
type TimeStep struct {
	StepType
	EndType
	Reward      float64
	Observation *mat.VecDense
	Number      int

	// Info is reserved for diagnostic payloads and is currently nil
	Info map[string]interface{}
}

// New returns a new TimeStep of type t with reward r, observation o
// and step number n
func New(t StepType, r float64, o *mat.VecDense, n int) TimeStep {
	return TimeStep{StepType: t, Reward: r, Observation: o, Number: n}
}

// First returns whether a TimeStep is the first in an episode
func (t TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an episode
func (t TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an episode
func (t TimeStep) Last() bool {
	return t.StepType == Last
}

// SetEnd marks the TimeStep as the last in its episode, ending it with
// EndType e
func (t *TimeStep) SetEnd(e EndType) {
	t.StepType = Last
	t.EndType = e
}

// Terminated returns whether the environment ended the episode
func (t TimeStep) Terminated() bool {
	return t.Last() && t.EndType == TerminalStateReached
}

// Truncated returns whether the episode was cut off externally
func (t TimeStep) Truncated() bool {
	return t.Last() && t.EndType == Truncated
}

// Success returns whether the TimeStep ends its episode successfully,
// which is when the environment terminated the episode with a positive
// reward
func (t TimeStep) Success() bool {
	return t.Terminated() && t.Reward > 0
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  End: %v  |  Reward:  %.2f  |  " +
		"Step Number:  %v  |  Observation: %v"

	obs := "<nil>"
	if t.Observation != nil {
		obs = matutils.Format(t.Observation.T())
	}
	return fmt.Sprintf(str, t.StepType, t.EndType, t.Reward, t.Number, obs)
}
