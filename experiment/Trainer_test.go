package experiment

import (
	"bytes"
	"errors"
	"log"
	"math"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/warehouse/agent"
	"github.com/samuelfneumann/warehouse/agent/policy"
	env "github.com/samuelfneumann/warehouse/environment"
	"github.com/samuelfneumann/warehouse/environment/warehouse"
	"github.com/samuelfneumann/warehouse/experiment/trackers"
	ts "github.com/samuelfneumann/warehouse/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// corridor is an environment whose episodes never end on their own
type corridor struct {
	number int
}

func (c *corridor) Seed(uint64) {}

func (c *corridor) Reset() (ts.TimeStep, error) {
	c.number = 0
	return ts.New(ts.First, 0, mat.NewVecDense(1, nil), 0), nil
}

func (c *corridor) Step(*mat.VecDense) (ts.TimeStep, bool, error) {
	c.number++
	return ts.New(ts.Mid, -1, mat.NewVecDense(1, nil), c.number), false, nil
}

func (c *corridor) Render() error { return nil }

func (c *corridor) RewardSpec() env.Spec      { return env.Spec{} }
func (c *corridor) ObservationSpec() env.Spec { return env.Spec{} }
func (c *corridor) ActionSpec() env.Spec      { return env.Spec{} }

// learner is an agent.Agent which always selects the same action and
// counts the transitions it observes
type learner struct {
	resets, observed, episodes int
}

func (l *learner) SelectAction(ts.TimeStep) (*mat.VecDense, error) {
	return warehouse.Down.Vec(), nil
}

func (l *learner) Reset() { l.resets++ }

func (l *learner) Observe(*mat.VecDense, ts.TimeStep) error {
	l.observed++
	return nil
}

func (l *learner) EndEpisode() { l.episodes++ }

type counter int

func (c *counter) Increment() { *c++ }

func TestNewTrainerErrors(t *testing.T) {
	_, err := NewTrainer(nil, &learner{})
	assert.Error(t, err)

	_, err = NewTrainer(&corridor{}, nil)
	assert.Error(t, err)

	_, err = NewTrainer(&corridor{}, &learner{}, WithMaxSteps(-1))
	assert.Error(t, err)
}

func TestTrainerStepLimit(t *testing.T) {
	tr, err := NewTrainer(&corridor{}, &learner{}, WithMaxSteps(7))
	require.NoError(t, err)
	assert.Equal(t, 7, tr.MaxSteps())

	outcome, err := tr.RunEpisode(false, false)
	require.NoError(t, err)
	assert.Equal(t, Outcome{TotalReward: -7, Success: false, Steps: 7},
		outcome)
}

func TestTrainerZeroEpisodes(t *testing.T) {
	tr, err := NewTrainer(&corridor{}, &learner{}, WithMaxSteps(3))
	require.NoError(t, err)

	stats, err := tr.Train(0, false)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)

	stats, err = tr.Evaluate(0, false)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)

	_, err = tr.Evaluate(-1, false)
	assert.Error(t, err)
}

func TestTrainerLearnsOnlyInTraining(t *testing.T) {
	l := &learner{}
	tr, err := NewTrainer(&corridor{}, l, WithMaxSteps(4))
	require.NoError(t, err)

	_, err = tr.Evaluate(3, false)
	require.NoError(t, err)
	assert.Equal(t, 3, l.resets)
	assert.Equal(t, 0, l.observed)
	assert.Equal(t, 0, l.episodes)

	_, err = tr.Train(2, false)
	require.NoError(t, err)
	assert.Equal(t, 5, l.resets)
	assert.Equal(t, 8, l.observed)
	assert.Equal(t, 2, l.episodes)
}

func TestTrainerGreedyBasic(t *testing.T) {
	c := DefaultConfig()
	c.EnvSeed, c.AgentSeed = 3, 4

	var progress counter
	tr, err := c.CreateTrainer(nil, WithProgress(&progress))
	require.NoError(t, err)

	stats, err := tr.Evaluate(20, false)
	require.NoError(t, err)

	assert.Equal(t, 20, int(progress))
	assert.Equal(t, 20, stats.Episodes)
	assert.Equal(t, 20, stats.Successes)
	assert.Equal(t, 1.0, stats.SuccessRate)
	assert.Equal(t, 1.0, stats.AverageReward)
	assert.Equal(t, 0.0, stats.RewardStdDev)

	// Targets lie outside the first row and column of the 4 x 5 grid
	assert.GreaterOrEqual(t, stats.AverageSteps, 2.0)
	assert.LessOrEqual(t, stats.AverageSteps, 7.0)
}

func TestTrainerAdvancedBatteryDepleted(t *testing.T) {
	e, _, err := warehouse.NewAdvanced(4, 5, 2, 0, warehouse.WithSeed(1),
		warehouse.WithTarget(warehouse.FixedTarget{Row: 3, Col: 4}))
	require.NoError(t, err)
	p, err := policy.NewGreedy(e.ActionSpec(), 1)
	require.NoError(t, err)

	tr, err := NewTrainer(e, p, WithMaxSteps(50))
	require.NoError(t, err)

	outcome, err := tr.RunEpisode(false, false)
	require.NoError(t, err)
	assert.Equal(t, Outcome{TotalReward: -1, Success: false, Steps: 2},
		outcome)

	stats, err := tr.Evaluate(3, false)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stats.SuccessRate)
	assert.Equal(t, -1.0, stats.AverageReward)
	assert.Equal(t, 2.0, stats.AverageSteps)
}

func TestTrainerTrackers(t *testing.T) {
	dir := t.TempDir()
	ret := trackers.NewReturn(filepath.Join(dir, "return.bin"))
	length := trackers.NewEpisodeLength(filepath.Join(dir, "length.bin"))
	success := trackers.NewSuccess(filepath.Join(dir, "success.bin"))

	e, _, err := warehouse.NewBasic(4, 5, warehouse.WithSeed(1),
		warehouse.WithTarget(warehouse.FixedTarget{Row: 2, Col: 3}))
	require.NoError(t, err)
	p, err := policy.NewGreedy(e.ActionSpec(), 1)
	require.NoError(t, err)

	tr, err := NewTrainer(e, p, WithTrackers(ret, length))
	require.NoError(t, err)
	tr.Register(success)

	_, err = tr.Train(4, false)
	require.NoError(t, err)
	require.NoError(t, tr.Save())

	assert.Equal(t, []float64{1, 1, 1, 1}, ret.Data())
	assert.Equal(t, []int{5, 5, 5, 5}, length.Data())
	assert.Equal(t, []bool{true, true, true, true}, success.Data())

	data, err := trackers.LoadData(filepath.Join(dir, "return.bin"))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1, 1}, data)
}

func TestTrainerRender(t *testing.T) {
	r := &frames{}
	e, _, err := warehouse.NewBasic(4, 5, warehouse.WithSeed(1),
		warehouse.WithTarget(warehouse.FixedTarget{Row: 2, Col: 3}),
		warehouse.WithRenderer(r))
	require.NoError(t, err)
	p, err := policy.NewGreedy(e.ActionSpec(), 1)
	require.NoError(t, err)

	tr, err := NewTrainer(e, p)
	require.NoError(t, err)

	_, err = tr.Evaluate(1, false)
	require.NoError(t, err)
	assert.Equal(t, 0, r.n)

	// One frame for the reset and one per step
	_, err = tr.Evaluate(1, true)
	require.NoError(t, err)
	assert.Equal(t, 6, r.n)
}

type frames struct {
	n int
}

func (f *frames) Render(warehouse.Frame) error {
	f.n++
	return nil
}

func TestTrainerLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	tr, err := NewTrainer(&corridor{}, &learner{}, WithMaxSteps(2),
		WithLogger(logger))
	require.NoError(t, err)

	_, err = tr.Train(2, false)
	require.NoError(t, err)
	_, err = tr.Evaluate(1, false)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "[TRAIN] Episodes: 2")
	assert.Contains(t, out, "[TRAIN] Success rate: 0.00%")
	assert.Contains(t, out, "[TRAIN] Average reward: -2.000")
	assert.Contains(t, out, "[TRAIN] Average steps: 2.00")
	assert.Contains(t, out, "[EVAL] Episodes: 1")
}

func TestAggregate(t *testing.T) {
	assert.Equal(t, Stats{}, Aggregate(nil))

	stats := Aggregate([]Outcome{
		{TotalReward: 1, Success: true, Steps: 4},
		{TotalReward: -1, Success: false, Steps: 30},
		{TotalReward: 0.6, Success: true, Steps: 8},
		{TotalReward: -0.2, Success: false, Steps: 50},
	})

	assert.Equal(t, 4, stats.Episodes)
	assert.Equal(t, 2, stats.Successes)
	assert.Equal(t, 0.5, stats.SuccessRate)
	assert.InDelta(t, 0.1, stats.AverageReward, 1e-12)
	assert.InDelta(t, 23.0, stats.AverageSteps, 1e-12)

	// Sample standard deviation of the rewards
	want := math.Sqrt((0.81 + 1.21 + 0.25 + 0.09) / 3)
	assert.InDelta(t, want, stats.RewardStdDev, 1e-12)

	single := Aggregate([]Outcome{{TotalReward: 1, Success: true, Steps: 2}})
	assert.Equal(t, 0.0, single.RewardStdDev)
	assert.Equal(t, 1.0, single.SuccessRate)
}

func TestStatsLines(t *testing.T) {
	stats := Stats{Episodes: 20, SuccessRate: 0.85, AverageReward: 0.7,
		AverageSteps: 6.25}

	assert.Equal(t, []string{
		"Episodes: 20",
		"Success rate: 85.00%",
		"Average reward: 0.700",
		"Average steps: 6.25",
	}, stats.Lines())
	assert.Contains(t, stats.String(), "Success rate: 85.00%")
}

var _ agent.Agent = &learner{}

func BenchmarkTrainerEpisode(b *testing.B) {
	c := DefaultConfig()
	tr, err := c.CreateTrainer(nil)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tr.RunEpisode(false, false); err != nil {
			b.Fatal(err)
		}
	}
}

// timeout is an environment which cuts off its episodes after limit
// steps, rewarding every step
type timeout struct {
	corridor
	limit int
}

func (e *timeout) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	step, _, _ := e.corridor.Step(a)
	step.Reward = 1
	if step.Number >= e.limit {
		step.SetEnd(ts.Truncated)
	}
	return step, step.Last(), nil
}

func TestTrainerTruncated(t *testing.T) {
	length := trackers.NewEpisodeLength("")
	success := trackers.NewSuccess("")
	l := &learner{}

	tr, err := NewTrainer(&timeout{limit: 3}, l, WithMaxSteps(50),
		WithTrackers(length, success))
	require.NoError(t, err)

	outcome, err := tr.RunEpisode(true, false)
	require.NoError(t, err)
	assert.Equal(t, Outcome{TotalReward: 3, Success: false, Steps: 3},
		outcome)

	assert.Equal(t, []int{3}, length.Data())
	assert.Equal(t, []bool{false}, success.Data())
	assert.Equal(t, 1, l.episodes)
	assert.Equal(t, 3, l.observed)
}

// faulty is a policy which fails to select an action after a number of
// successful selections
type faulty struct {
	learner
	remaining int
}

func (f *faulty) SelectAction(s ts.TimeStep) (*mat.VecDense, error) {
	if f.remaining == 0 {
		return nil, errors.New("no action")
	}
	f.remaining--
	return f.learner.SelectAction(s)
}

func TestTrainerEndsFailedEpisode(t *testing.T) {
	length := trackers.NewEpisodeLength("")
	ret := trackers.NewReturn("")
	p := &faulty{remaining: 2}

	tr, err := NewTrainer(&corridor{}, p, WithMaxSteps(10),
		WithTrackers(length, ret))
	require.NoError(t, err)

	_, err = tr.RunEpisode(true, false)
	require.Error(t, err)

	// The failed episode is ended, so trackers hold whole episodes
	assert.Equal(t, []int{2}, length.Data())
	assert.Equal(t, []float64{-2}, ret.Data())
	assert.Equal(t, 1, p.episodes)

	p.remaining = 4
	outcome, err := tr.RunEpisode(false, false)
	require.Error(t, err)
	assert.Equal(t, Outcome{}, outcome)
	assert.Equal(t, []int{2, 4}, length.Data())
	assert.Equal(t, 1, p.episodes)
}
