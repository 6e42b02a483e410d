package policy

import (
	"fmt"

	"github.com/samuelfneumann/warehouse/agent"
	env "github.com/samuelfneumann/warehouse/environment"
	"github.com/samuelfneumann/warehouse/environment/warehouse"
	"github.com/samuelfneumann/warehouse/timestep"
	"github.com/samuelfneumann/warehouse/utils/matutils"
	"gonum.org/v1/gonum/mat"
)

// Greedy implements a heuristic policy for warehouse environments
// which moves the robot towards the target, first along rows and then,
// once the rows are aligned, along columns. Without obstacles in the
// way, every action selected by Greedy reduces the Manhattan distance
// to the target by one. If the robot is already at the target, a
// uniform random action is selected.
//
// Greedy reads the first four observation features as (robot row,
// robot col, target row, target col); further features are ignored.
type Greedy struct {
	*Uniform
}

// NewGreedy returns a new Greedy policy for the warehouse action spec
// actions. The policy's generator, used only when no action moves the
// robot closer to the target, is seeded with seed.
func NewGreedy(actions env.Spec, seed uint64) (*Greedy, error) {
	if n := actions.Cardinal(); n != warehouse.Actions {
		return nil, fmt.Errorf("newGreedy: greedy policy requires the %d "+
			"warehouse actions, got %d actions", warehouse.Actions, n)
	}

	u, err := NewUniform(actions, seed)
	if err != nil {
		return nil, fmt.Errorf("newGreedy: %w", err)
	}
	return &Greedy{u}, nil
}

// SelectAction selects the greedy action for the observation of t
func (g *Greedy) SelectAction(t timestep.TimeStep) (*mat.VecDense, error) {
	obs := t.Observation
	if obs == nil || obs.Len() < warehouse.BasicObservationLen {
		n := 0
		if obs != nil {
			n = obs.Len()
		}
		return nil, fmt.Errorf("selectAction: %w: need at least %d "+
			"features, got %d", agent.ErrMalformedObservation,
			warehouse.BasicObservationLen, n)
	}

	f := matutils.Ints(obs)
	candidates := Candidates(
		warehouse.Position{Row: f[0], Col: f[1]},
		warehouse.Position{Row: f[2], Col: f[3]},
	)

	switch len(candidates) {
	case 0:
		return g.sample(), nil
	case 1:
		return candidates[0].Vec(), nil
	}
	return candidates[g.rng.Intn(len(candidates))].Vec(), nil
}

// Candidates returns the actions which greedily move a robot at robot
// towards target. Rows are aligned first: while the rows differ, only
// a vertical action is returned. No actions are returned if the robot
// is at the target.
func Candidates(robot, target warehouse.Position) []warehouse.Action {
	var candidates []warehouse.Action

	if robot.Row < target.Row {
		candidates = append(candidates, warehouse.Down)
	} else if robot.Row > target.Row {
		candidates = append(candidates, warehouse.Up)
	}

	if robot.Row == target.Row {
		if robot.Col < target.Col {
			candidates = append(candidates, warehouse.Right)
		} else if robot.Col > target.Col {
			candidates = append(candidates, warehouse.Left)
		}
	}

	return candidates
}

var _ agent.Policy = &Greedy{}
