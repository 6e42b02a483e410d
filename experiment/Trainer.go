package experiment

import (
	"fmt"
	"io"
	"log"

	"github.com/samuelfneumann/warehouse/agent"
	env "github.com/samuelfneumann/warehouse/environment"
	"github.com/samuelfneumann/warehouse/experiment/trackers"
	ts "github.com/samuelfneumann/warehouse/timestep"
)

// Incrementer is notified each time an episode finishes, e.g. a
// progress bar
type Incrementer interface {
	Increment()
}

// Trainer runs episodes of a Policy acting in an Environment and
// aggregates the results.
//
// Episodes end when the environment ends them, or when the Trainer's
// step limit is reached. Ending an episode at the step limit is not
// reported as termination or truncation; such episodes are simply not
// successful.
type Trainer struct {
	env      env.Environment
	policy   agent.Policy
	maxSteps int // 0 means no limit

	trackers []trackers.Tracker
	progress Incrementer
	logger   *log.Logger
}

// Option configures a Trainer
type Option func(*Trainer)

// WithMaxSteps limits episodes to at most n steps. The default, n = 0,
// sets no limit.
func WithMaxSteps(n int) Option {
	return func(t *Trainer) {
		t.maxSteps = n
	}
}

// WithTrackers registers trackers.Trackers which are sent every
// TimeStep of every episode
func WithTrackers(tr ...trackers.Tracker) Option {
	return func(t *Trainer) {
		t.trackers = append(t.trackers, tr...)
	}
}

// WithProgress sets an Incrementer which is incremented after each
// episode of Train() and Evaluate()
func WithProgress(p Incrementer) Option {
	return func(t *Trainer) {
		t.progress = p
	}
}

// WithLogger sets the logger that Train() and Evaluate() summaries are
// written to. By default, nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(t *Trainer) {
		t.logger = l
	}
}

// NewTrainer returns a new Trainer running policy p in environment e
func NewTrainer(e env.Environment, p agent.Policy,
	opts ...Option) (*Trainer, error) {
	if e == nil || p == nil {
		return nil, fmt.Errorf("newTrainer: environment and policy must " +
			"not be nil")
	}

	t := &Trainer{env: e, policy: p}
	for _, opt := range opts {
		opt(t)
	}

	if t.maxSteps < 0 {
		return nil, fmt.Errorf("newTrainer: negative step limit %d",
			t.maxSteps)
	}
	if t.logger == nil {
		t.logger = log.New(io.Discard, "", 0)
	}
	return t, nil
}

// Register registers a trackers.Tracker with the Trainer so that data
// generated in future episodes is tracked
func (t *Trainer) Register(tracker trackers.Tracker) {
	t.trackers = append(t.trackers, tracker)
}

// MaxSteps returns the step limit of episodes, 0 if there is none
func (t *Trainer) MaxSteps() int {
	return t.maxSteps
}

// RunEpisode runs a single episode. If train is set and the policy is
// an agent.Learner, the policy observes each transition of the
// episode. If render is set, the environment is rendered after the
// reset and after each step.
//
// Once the environment has been reset, the episode is ended for the
// trackers and learner even if a later step fails, so that trackers
// always hold complete episodes.
func (t *Trainer) RunEpisode(train, render bool) (Outcome, error) {
	step, err := t.env.Reset()
	if err != nil {
		return Outcome{}, fmt.Errorf("runEpisode: could not reset "+
			"environment: %v", err)
	}
	t.policy.Reset()
	t.track(step)

	learner, learning := t.policy.(agent.Learner)
	learning = learning && train

	outcome, err := t.episode(step, learner, learning, render)

	if learning {
		learner.EndEpisode()
	}
	t.endEpisode()

	if err != nil {
		return Outcome{}, fmt.Errorf("runEpisode: %v", err)
	}
	return outcome, nil
}

// episode acts in the environment from its first TimeStep step until
// the episode ends or the step limit is reached
func (t *Trainer) episode(step ts.TimeStep, learner agent.Learner,
	learning, render bool) (Outcome, error) {
	var outcome Outcome
	if err := t.render(render); err != nil {
		return outcome, err
	}

	for {
		action, err := t.policy.SelectAction(step)
		if err != nil {
			return outcome, fmt.Errorf("could not select action: %v", err)
		}

		var last bool
		step, last, err = t.env.Step(action)
		if err != nil {
			return outcome, fmt.Errorf("could not step environment: %v",
				err)
		}

		outcome.TotalReward += step.Reward
		outcome.Steps++
		t.track(step)

		if err := t.render(render); err != nil {
			return outcome, err
		}

		if learning {
			if err := learner.Observe(action, step); err != nil {
				return outcome, fmt.Errorf("could not observe "+
					"transition: %v", err)
			}
		}

		if last {
			// Truncated episodes are never successful
			outcome.Success = step.Success()
			return outcome, nil
		}
		if t.maxSteps > 0 && outcome.Steps >= t.maxSteps {
			return outcome, nil
		}
	}
}

// Train runs numEpisodes episodes in training mode and returns their
// Stats
func (t *Trainer) Train(numEpisodes int, render bool) (Stats, error) {
	stats, err := t.run(numEpisodes, true, render, "[TRAIN]")
	if err != nil {
		return Stats{}, fmt.Errorf("train: %v", err)
	}
	return stats, nil
}

// Evaluate runs numEpisodes episodes in evaluation mode and returns
// their Stats
func (t *Trainer) Evaluate(numEpisodes int, render bool) (Stats, error) {
	stats, err := t.run(numEpisodes, false, render, "[EVAL]")
	if err != nil {
		return Stats{}, fmt.Errorf("evaluate: %v", err)
	}
	return stats, nil
}

// run runs numEpisodes episodes and logs their Stats, each line
// prefixed with tag
func (t *Trainer) run(numEpisodes int, train, render bool,
	tag string) (Stats, error) {
	if numEpisodes < 0 {
		return Stats{}, fmt.Errorf("negative number of episodes %d",
			numEpisodes)
	}

	outcomes := make([]Outcome, 0, numEpisodes)
	for i := 0; i < numEpisodes; i++ {
		outcome, err := t.RunEpisode(train, render)
		if err != nil {
			return Stats{}, fmt.Errorf("episode %d: %v", i, err)
		}
		outcomes = append(outcomes, outcome)

		if t.progress != nil {
			t.progress.Increment()
		}
	}

	stats := Aggregate(outcomes)
	for _, line := range stats.Lines() {
		t.logger.Printf("%v %v", tag, line)
	}
	return stats, nil
}

// Save saves the data of all registered trackers
func (t *Trainer) Save() error {
	for _, tracker := range t.trackers {
		if err := tracker.Save(); err != nil {
			return fmt.Errorf("save: %v", err)
		}
	}
	return nil
}

func (t *Trainer) render(render bool) error {
	if !render {
		return nil
	}
	if err := t.env.Render(); err != nil {
		return fmt.Errorf("could not render environment: %v", err)
	}
	return nil
}

// track tracks the current timestep by caching its data in each tracker
func (t *Trainer) track(step ts.TimeStep) {
	for _, tracker := range t.trackers {
		tracker.Track(step)
	}
}

func (t *Trainer) endEpisode() {
	for _, tracker := range t.trackers {
		tracker.EndEpisode()
	}
}
