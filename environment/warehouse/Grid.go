// Package warehouse implements a warehouse robot gridworld. A robot
// starts in the top-left cell of a rectangular grid and must reach a
// randomly placed target. The Advanced variant adds obstacles and a
// battery budget.
package warehouse

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
)

// Rewards returned by the warehouse environments
const (
	GoalReward            float64 = 1.0
	StepReward            float64 = 0.0
	CollisionReward       float64 = -0.2
	BatteryDepletedReward float64 = -1.0
)

// BasicObservationLen is the length of observations of the Basic
// environment: (robot row, robot col, target row, target col)
const BasicObservationLen int = 4

// AdvancedObservationLen is the length of observations of the Advanced
// environment, which append the battery to the basic observation
const AdvancedObservationLen int = BasicObservationLen + 1

var (
	// ErrGridTooSmall is returned when a grid cannot hold a target
	// outside the robot's starting row and column
	ErrGridTooSmall = errors.New("grid must have at least 2 rows and 2 cols")

	// ErrTooManyObstacles is returned when obstacles cannot all be
	// placed on distinct free cells
	ErrTooManyObstacles = errors.New("not enough free cells for obstacles")
)

// Position is a cell in the grid
type Position struct {
	Row, Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// in returns whether p lies in a grid with r rows and c columns
func (p Position) in(r, c int) bool {
	return p.Row >= 0 && p.Row < r && p.Col >= 0 && p.Col < c
}

// Start is the position the robot starts each episode in
var Start = Position{0, 0}

// grid tracks the state shared by all warehouse environments: the grid
// dimensions, the robot and target positions and the generator used to
// place the target
type grid struct {
	r, c   int
	robot  Position
	target Position

	rng      *rand.Rand
	targets  TargetStarter
	renderer Renderer

	lastAction Action
	acted      bool
	number     int // steps taken in the current episode
}

func newGrid(r, c int, o options) (*grid, error) {
	if r < 2 || c < 2 {
		return nil, fmt.Errorf("%w: got %d x %d", ErrGridTooSmall, r, c)
	}

	seed := uint64(time.Now().UnixNano())
	if o.seeded {
		seed = o.seed
	}

	targets := o.targets
	if targets == nil {
		targets = UniformTarget{}
	}

	return &grid{
		r:        r,
		c:        c,
		robot:    Start,
		rng:      rand.New(rand.NewSource(seed)),
		targets:  targets,
		renderer: o.renderer,
	}, nil
}

// Dims gets the rows and columns of the grid
func (g *grid) Dims() (r, c int) {
	return g.r, g.c
}

// Robot returns the current position of the robot
func (g *grid) Robot() Position {
	return g.robot
}

// Target returns the position of the target in the current episode
func (g *grid) Target() Position {
	return g.target
}

// Seed reseeds the generator that places the target (and obstacles)
// on each call to Reset()
func (g *grid) Seed(seed uint64) {
	g.rng.Seed(seed)
}

// reset moves the robot back to its start and places a new target
func (g *grid) reset() error {
	target, err := g.targets.Target(g.rng, g.r, g.c)
	if err != nil {
		return err
	}

	g.robot = Start
	g.target = target
	g.acted = false
	g.lastAction = 0
	g.number = 0
	return nil
}

// move returns the position the robot would end up in by taking
// action a. Moves off the edge of the grid leave the robot in place.
func (g *grid) move(a Action) Position {
	next := g.robot
	switch a {
	case Left:
		if next.Col > 0 {
			next.Col--
		}

	case Right:
		if next.Col < g.c-1 {
			next.Col++
		}

	case Up:
		if next.Row > 0 {
			next.Row--
		}

	case Down:
		if next.Row < g.r-1 {
			next.Row++
		}
	}
	return next
}

// record registers that action a was taken
func (g *grid) record(a Action) {
	g.lastAction = a
	g.acted = true
	g.number++
}

func (g *grid) atTarget() bool {
	return g.robot == g.target
}

// observation returns a fresh observation vector holding the robot and
// target positions followed by extra
func (g *grid) observation(extra ...float64) *mat.VecDense {
	obs := make([]float64, 0, BasicObservationLen+len(extra))
	obs = append(obs,
		float64(g.robot.Row),
		float64(g.robot.Col),
		float64(g.target.Row),
		float64(g.target.Col),
	)
	obs = append(obs, extra...)
	return mat.NewVecDense(len(obs), obs)
}

// frame returns a snapshot of the grid for rendering
func (g *grid) frame() Frame {
	return Frame{
		Rows:       g.r,
		Cols:       g.c,
		Robot:      g.robot,
		Target:     g.target,
		LastAction: g.lastAction,
		Acted:      g.acted,
	}
}

func (g *grid) render(f Frame) error {
	if g.renderer == nil {
		return nil
	}
	if err := g.renderer.Render(f); err != nil {
		return fmt.Errorf("render: %v", err)
	}
	return nil
}
