package warehouse

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// TargetStarter places the target at the start of each episode
type TargetStarter interface {
	Target(rng *rand.Rand, r, c int) (Position, error)
}

// UniformTarget places the target uniformly at random outside the
// first row and first column of the grid, so the target never shares
// a row or column with the robot's starting cell
type UniformTarget struct{}

// Target samples a target position
func (UniformTarget) Target(rng *rand.Rand, r, c int) (Position, error) {
	if r < 2 || c < 2 {
		return Position{}, fmt.Errorf("target: %w", ErrGridTooSmall)
	}
	return Position{
		Row: 1 + rng.Intn(r-1),
		Col: 1 + rng.Intn(c-1),
	}, nil
}

// FixedTarget places the target at the same position every episode
type FixedTarget Position

// Target returns the fixed target position
func (f FixedTarget) Target(_ *rand.Rand, r, c int) (Position, error) {
	pos := Position(f)
	if !pos.in(r, c) {
		return Position{}, fmt.Errorf("target: %v outside %d x %d grid",
			pos, r, c)
	}
	return pos, nil
}

// ObstacleStarter places obstacles at the start of each episode. The
// returned obstacles must be distinct, inside the grid, and must not
// cover the robot or target.
type ObstacleStarter interface {
	Obstacles(rng *rand.Rand, r, c int, robot, target Position) ([]Position,
		error)
}

// RandomObstacles places a fixed number of obstacles uniformly at
// random, resampling any cell that is already taken
type RandomObstacles int

// Obstacles samples the obstacle positions
func (n RandomObstacles) Obstacles(rng *rand.Rand, r, c int, robot,
	target Position) ([]Position, error) {
	count := int(n)
	if count < 0 {
		return nil, fmt.Errorf("obstacles: negative obstacle count %d", count)
	}

	free := r*c - 1
	if robot != target {
		free--
	}
	if count > free {
		return nil, fmt.Errorf("obstacles: %w: %d obstacles, %d free cells",
			ErrTooManyObstacles, count, free)
	}

	taken := make(map[Position]bool, count)
	obstacles := make([]Position, 0, count)
	for len(obstacles) < count {
		pos := Position{rng.Intn(r), rng.Intn(c)}
		if pos == robot || pos == target || taken[pos] {
			continue
		}
		taken[pos] = true
		obstacles = append(obstacles, pos)
	}
	return obstacles, nil
}

// FixedObstacles places the same obstacles every episode
type FixedObstacles []Position

// Obstacles returns the fixed obstacles, or an error if any of them is
// outside the grid, repeated, or covers the robot or target
func (f FixedObstacles) Obstacles(_ *rand.Rand, r, c int, robot,
	target Position) ([]Position, error) {
	taken := make(map[Position]bool, len(f))
	for _, pos := range f {
		switch {
		case !pos.in(r, c):
			return nil, fmt.Errorf("obstacles: %v outside %d x %d grid",
				pos, r, c)
		case pos == robot:
			return nil, fmt.Errorf("obstacles: %v covers the robot", pos)
		case pos == target:
			return nil, fmt.Errorf("obstacles: %v covers the target", pos)
		case taken[pos]:
			return nil, fmt.Errorf("obstacles: %v repeated", pos)
		}
		taken[pos] = true
	}

	obstacles := make([]Position, len(f))
	copy(obstacles, f)
	return obstacles, nil
}
