package warehouse

import (
	"fmt"

	env "github.com/samuelfneumann/warehouse/environment"
	ts "github.com/samuelfneumann/warehouse/timestep"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Basic is the warehouse environment without obstacles or battery. An
// episode ends when the robot reaches the target, which yields a
// reward of GoalReward; every other step yields StepReward.
//
// Observations are (robot row, robot col, target row, target col).
type Basic struct {
	*grid
	currentStep ts.TimeStep
}

// NewBasic creates a new Basic environment with r rows and c columns
// and returns it along with the first timestep of its first episode
func NewBasic(r, c int, opts ...Option) (*Basic, ts.TimeStep, error) {
	g, err := newGrid(r, c, collect(opts))
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newBasic: %w", err)
	}

	b := &Basic{grid: g}
	step, err := b.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newBasic: %w", err)
	}
	return b, step, nil
}

// Reset starts a new episode, placing the robot at Start and placing a
// new target
func (b *Basic) Reset() (ts.TimeStep, error) {
	if err := b.reset(); err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %w", err)
	}

	b.currentStep = ts.New(ts.First, 0, b.observation(), 0)
	return b.currentStep, nil
}

// Step moves the robot according to action. Moves off the grid leave
// the robot in place. Step never truncates episodes.
func (b *Basic) Step(action *mat.VecDense) (ts.TimeStep, bool, error) {
	a, err := ActionFromVec(action)
	if err != nil {
		return ts.TimeStep{}, false, fmt.Errorf("step: %w", err)
	}

	b.robot = b.move(a)
	b.record(a)

	step := ts.New(ts.Mid, StepReward, b.observation(), b.number)
	if b.atTarget() {
		step.Reward = GoalReward
		step.SetEnd(ts.TerminalStateReached)
	}

	b.currentStep = step
	return step, step.Last(), nil
}

// CurrentTimeStep returns the last TimeStep returned by the environment
func (b *Basic) CurrentTimeStep() ts.TimeStep {
	return b.currentStep
}

// Render sends the current state to the environment's renderer
func (b *Basic) Render() error {
	return b.render(b.frame())
}

// ActionSpec returns the action specification of the environment
func (b *Basic) ActionSpec() env.Spec {
	return actionSpec()
}

// ObservationSpec returns the observation specification of the
// environment
func (b *Basic) ObservationSpec() env.Spec {
	return observationSpec(b.r, b.c)
}

// RewardSpec returns the reward specification of the environment
func (b *Basic) RewardSpec() env.Spec {
	return rewardSpec(StepReward, GoalReward)
}

func (b *Basic) String() string {
	str := "Basic Warehouse | Robot: %v  |  Target: %v  |  Bounds: (%d, %d)"
	return fmt.Sprintf(str, b.robot, b.target, b.r, b.c)
}

func actionSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{float64(Left)})
	upperBound := mat.NewVecDense(1, []float64{float64(Up)})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Discrete)
}

// observationSpec returns the spec of observations in an r x c grid,
// with extra upper bounds appended for any extra features
func observationSpec(r, c int, extra ...float64) env.Spec {
	upper := append([]float64{
		float64(r - 1),
		float64(c - 1),
		float64(r - 1),
		float64(c - 1),
	}, extra...)
	n := len(upper)

	shape := mat.NewVecDense(n, nil)
	lowerBound := mat.NewVecDense(n, nil)
	upperBound := mat.NewVecDense(n, upper)

	return env.NewSpec(shape, env.Observation, lowerBound, upperBound,
		env.Discrete)
}

func rewardSpec(rewards ...float64) env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{floats.Min(rewards)})
	upperBound := mat.NewVecDense(1, []float64{floats.Max(rewards)})

	return env.NewSpec(shape, env.Reward, lowerBound, upperBound,
		env.Continuous)
}
