// Package policy implements stateless policies for discrete action
// environments
package policy

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/warehouse/agent"
	env "github.com/samuelfneumann/warehouse/environment"
	"github.com/samuelfneumann/warehouse/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Uniform implements a policy which selects actions uniformly at
// random, ignoring observations
type Uniform struct {
	rng    *rand.Rand
	dist   distuv.Categorical
	offset float64 // lowest action
}

// NewUniform returns a new Uniform policy over the actions described
// by a 1-dimensional discrete action spec. The policy's generator is
// seeded with seed, independently of any environment.
func NewUniform(actions env.Spec, seed uint64) (*Uniform, error) {
	n := actions.Cardinal()
	if n < 1 {
		return nil, fmt.Errorf("newUniform: uniform policy requires "+
			"1-dimensional discrete actions, got %v %v actions",
			actions.Shape.Len(), actions.Cardinality)
	}

	rng := rand.New(rand.NewSource(seed))
	return &Uniform{
		rng:    rng,
		dist:   distuv.NewCategorical(uniformWeights(n), rng),
		offset: actions.LowerBound.AtVec(0),
	}, nil
}

// SelectAction samples an action uniformly at random
func (u *Uniform) SelectAction(_ timestep.TimeStep) (*mat.VecDense, error) {
	return u.sample(), nil
}

func (u *Uniform) sample() *mat.VecDense {
	return mat.NewVecDense(1, []float64{u.offset + u.dist.Rand()})
}

// Reset is a no-op, since Uniform has no per-episode state
func (u *Uniform) Reset() {}

// Seed reseeds the policy's generator
func (u *Uniform) Seed(seed uint64) {
	u.rng.Seed(seed)
}

// uniformWeights returns n equal weights for a categorical distribution
func uniformWeights(n int) []float64 {
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1.0 / float64(n)
	}
	return weights
}

var _ agent.Policy = &Uniform{}
