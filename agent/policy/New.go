package policy

import (
	"fmt"

	"github.com/samuelfneumann/warehouse/agent"
	env "github.com/samuelfneumann/warehouse/environment"
)

// New creates a policy of type t over the action spec actions, seeding
// its generator with seed
func New(t agent.Type, actions env.Spec, seed uint64) (agent.Policy, error) {
	var (
		p   agent.Policy
		err error
	)

	switch t {
	case agent.Random:
		var u *Uniform
		if u, err = NewUniform(actions, seed); err == nil {
			p = u
		}

	case agent.Greedy:
		var g *Greedy
		if g, err = NewGreedy(actions, seed); err == nil {
			p = g
		}

	default:
		err = fmt.Errorf("no such policy %q", t)
	}

	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}
	return p, nil
}
