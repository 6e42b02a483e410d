package timestep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestEnds(t *testing.T) {
	obs := mat.NewVecDense(2, []float64{1, 2})

	first := New(First, 0, obs, 0)
	assert.True(t, first.First())
	assert.False(t, first.Last())
	assert.Equal(t, Unended, first.EndType)

	goal := New(Mid, 1, obs, 3)
	goal.SetEnd(TerminalStateReached)
	assert.True(t, goal.Last())
	assert.True(t, goal.Terminated())
	assert.False(t, goal.Truncated())
	assert.True(t, goal.Success())

	depleted := New(Mid, -1, obs, 30)
	depleted.SetEnd(TerminalStateReached)
	assert.True(t, depleted.Terminated())
	assert.False(t, depleted.Success())

	cut := New(Mid, 1, obs, 50)
	cut.SetEnd(Truncated)
	assert.True(t, cut.Truncated())
	assert.False(t, cut.Success())

	// A positive reward alone does not end an episode
	assert.False(t, New(Mid, 1, obs, 2).Success())
}

func TestString(t *testing.T) {
	step := New(Mid, -0.2, mat.NewVecDense(2, []float64{1, 2}), 4)
	str := step.String()
	assert.Contains(t, str, "Type: Mid")
	assert.Contains(t, str, "Reward:  -0.20")
	assert.Contains(t, str, "Step Number:  4")

	assert.Contains(t, TimeStep{}.String(), "<nil>")
}
