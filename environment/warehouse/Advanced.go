package warehouse

import (
	"fmt"

	env "github.com/samuelfneumann/warehouse/environment"
	ts "github.com/samuelfneumann/warehouse/timestep"
	"gonum.org/v1/gonum/mat"
)

// Default parameters of the Advanced environment
const (
	DefaultMaxBattery   int = 30
	DefaultNumObstacles int = 4
)

// Advanced is the warehouse environment with obstacles and a battery.
//
// Each step, the robot first moves as in the Basic environment. A move
// onto an obstacle is undone and yields CollisionReward. The battery
// then drains by one; once it is empty the episode ends with
// BatteryDepletedReward. Reaching the target ends the episode with
// GoalReward, even on the step that empties the battery.
//
// Observations are (robot row, robot col, target row, target col,
// battery).
type Advanced struct {
	*grid
	obstacles     map[Position]struct{}
	obstacleOrder []Position
	placer        ObstacleStarter

	battery    int
	maxBattery int

	currentStep ts.TimeStep
}

// NewAdvanced creates a new Advanced environment with r rows, c
// columns, a battery that lasts maxBattery steps and numObstacles
// obstacles placed uniformly at random each episode. The environment
// is returned along with the first timestep of its first episode.
func NewAdvanced(r, c, maxBattery, numObstacles int,
	opts ...Option) (*Advanced, ts.TimeStep, error) {
	if maxBattery < 1 {
		return nil, ts.TimeStep{}, fmt.Errorf("newAdvanced: max battery "+
			"must be positive, got %d", maxBattery)
	}

	o := collect(opts)
	g, err := newGrid(r, c, o)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newAdvanced: %w", err)
	}

	placer := o.obstacles
	if placer == nil {
		placer = RandomObstacles(numObstacles)
	}

	a := &Advanced{
		grid:       g,
		placer:     placer,
		maxBattery: maxBattery,
		battery:    maxBattery,
	}
	step, err := a.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newAdvanced: %w", err)
	}
	return a, step, nil
}

// Reset starts a new episode, placing the robot at Start, placing a
// new target and new obstacles, and recharging the battery
func (a *Advanced) Reset() (ts.TimeStep, error) {
	if err := a.reset(); err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %w", err)
	}

	obstacles, err := a.placer.Obstacles(a.rng, a.r, a.c, a.robot, a.target)
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %w", err)
	}
	a.obstacleOrder = obstacles
	a.obstacles = make(map[Position]struct{}, len(obstacles))
	for _, pos := range obstacles {
		a.obstacles[pos] = struct{}{}
	}

	a.battery = a.maxBattery

	a.currentStep = ts.New(ts.First, 0, a.observation(), 0)
	return a.currentStep, nil
}

// Step moves the robot according to action, applying obstacle and
// battery rules. Step never truncates episodes.
func (a *Advanced) Step(action *mat.VecDense) (ts.TimeStep, bool, error) {
	act, err := ActionFromVec(action)
	if err != nil {
		return ts.TimeStep{}, false, fmt.Errorf("step: %w", err)
	}

	reward := StepReward
	terminal := false

	next := a.move(act)
	if a.IsObstacle(next) {
		next = a.robot
		reward = CollisionReward
	}
	a.robot = next
	a.record(act)

	a.battery--
	if a.battery <= 0 {
		reward = BatteryDepletedReward
		terminal = true
	}

	// Checked last so that reaching the target with the last unit of
	// battery is still a success
	if a.atTarget() {
		reward = GoalReward
		terminal = true
	}

	step := ts.New(ts.Mid, reward, a.observation(), a.number)
	if terminal {
		step.SetEnd(ts.TerminalStateReached)
	}

	a.currentStep = step
	return step, step.Last(), nil
}

// IsObstacle returns whether p holds an obstacle in the current episode
func (a *Advanced) IsObstacle(p Position) bool {
	_, ok := a.obstacles[p]
	return ok
}

// Obstacles returns the obstacles of the current episode
func (a *Advanced) Obstacles() []Position {
	obstacles := make([]Position, len(a.obstacleOrder))
	copy(obstacles, a.obstacleOrder)
	return obstacles
}

// Battery returns the remaining battery
func (a *Advanced) Battery() int {
	return a.battery
}

// MaxBattery returns the battery the robot starts each episode with
func (a *Advanced) MaxBattery() int {
	return a.maxBattery
}

// CurrentTimeStep returns the last TimeStep returned by the environment
func (a *Advanced) CurrentTimeStep() ts.TimeStep {
	return a.currentStep
}

// Render sends the current state to the environment's renderer
func (a *Advanced) Render() error {
	f := a.frame()
	f.Obstacles = a.Obstacles()
	f.Battery = a.battery
	f.HasBattery = true
	return a.render(f)
}

// ActionSpec returns the action specification of the environment
func (a *Advanced) ActionSpec() env.Spec {
	return actionSpec()
}

// ObservationSpec returns the observation specification of the
// environment
func (a *Advanced) ObservationSpec() env.Spec {
	return observationSpec(a.r, a.c, float64(a.maxBattery))
}

// RewardSpec returns the reward specification of the environment
func (a *Advanced) RewardSpec() env.Spec {
	return rewardSpec(StepReward, CollisionReward, BatteryDepletedReward,
		GoalReward)
}

func (a *Advanced) observation() *mat.VecDense {
	return a.grid.observation(float64(a.battery))
}

func (a *Advanced) String() string {
	str := "Advanced Warehouse | Robot: %v  |  Target: %v  |  " +
		"Obstacles: %v  |  Battery: %d/%d  |  Bounds: (%d, %d)"
	return fmt.Sprintf(str, a.robot, a.target, a.obstacleOrder, a.battery,
		a.maxBattery, a.r, a.c)
}
