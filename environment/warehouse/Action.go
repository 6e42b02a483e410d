package warehouse

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Action is a movement the robot can perform, one cell in a direction
type Action int

// Actions available to the robot. Rows grow downwards, so DOWN moves
// the robot to a larger row index.
const (
	Left Action = iota
	Down
	Right
	Up
)

// Actions is the number of actions available to the robot
const Actions int = 4

func (a Action) String() string {
	switch a {
	case Left:
		return "LEFT"
	case Down:
		return "DOWN"
	case Right:
		return "RIGHT"
	case Up:
		return "UP"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Valid returns whether a is one of the robot's actions
func (a Action) Valid() bool {
	return a >= Left && a <= Up
}

// Vec returns the action as a 1-dimensional action vector, which is
// how actions are passed to Step()
func (a Action) Vec() *mat.VecDense {
	return mat.NewVecDense(1, []float64{float64(a)})
}

// InvalidActionError is returned when an action vector does not hold
// one of the robot's actions
type InvalidActionError struct {
	Value float64
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("invalid action %v: actions must be integers in "+
		"[0, %d]", e.Value, Actions-1)
}

// ParseAction parses an action from its name, e.g. "left" or "UP"
func ParseAction(name string) (Action, error) {
	for a := Left; a <= Up; a++ {
		if strings.EqualFold(name, a.String()) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("parseAction: no such action %q", name)
}

// ActionFromVec extracts the action held in a 1-dimensional action
// vector. An *InvalidActionError is returned if the vector does not
// hold a valid action.
func ActionFromVec(v *mat.VecDense) (Action, error) {
	if v == nil || v.Len() != 1 {
		length := 0
		if v != nil {
			length = v.Len()
		}
		return 0, fmt.Errorf("actionFromVec: actions must be "+
			"1-dimensional, got length %d", length)
	}

	value := v.AtVec(0)
	if value != math.Trunc(value) || value < float64(Left) ||
		value > float64(Up) {
		return 0, &InvalidActionError{Value: value}
	}
	return Action(value), nil
}
