package experiment

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samuelfneumann/warehouse/agent"
	"github.com/samuelfneumann/warehouse/agent/policy"
	"github.com/samuelfneumann/warehouse/environment/envconfig"
	"github.com/samuelfneumann/warehouse/environment/warehouse"
)

// Defaults of a run Config
const (
	DefaultTrainEpisodes int = 50
	DefaultEvalEpisodes  int = 20
	DefaultMaxSteps      int = 50
)

// Config represents a configuration of an experiment: which agent acts
// in which environment, for how many episodes. Configs are JSON
// serializable.
//
// The environment and agent are seeded separately, so reproducing a
// run requires both seeds.
type Config struct {
	Agent         agent.Type
	EnvConf       envconfig.Config
	TrainEpisodes int
	EvalEpisodes  int
	MaxSteps      int
	EnvSeed       uint64
	AgentSeed     uint64

	// DataDir is the directory trackers save their data in. No data is
	// saved if DataDir is empty.
	DataDir string
}

// DefaultConfig returns the default Config: a GreedyAgent in the basic
// 4 x 5 warehouse
func DefaultConfig() Config {
	return Config{
		Agent:         agent.Greedy,
		EnvConf:       envconfig.Default(envconfig.Basic),
		TrainEpisodes: DefaultTrainEpisodes,
		EvalEpisodes:  DefaultEvalEpisodes,
		MaxSteps:      DefaultMaxSteps,
	}
}

// Load reads a JSON Config from filename. Fields missing from the file
// keep their DefaultConfig values.
func Load(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("load: could not read config: %v", err)
	}

	c := DefaultConfig()
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("load: could not decode config: %v", err)
	}
	return c, c.Validate()
}

// Save writes the Config as JSON to filename
func (c Config) Save(filename string) error {
	data, err := json.MarshalIndent(c, "", "\t")
	if err != nil {
		return fmt.Errorf("save: could not encode config: %v", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("save: could not write config: %v", err)
	}
	return nil
}

// Validate returns an error if the Config cannot describe an experiment
func (c Config) Validate() error {
	if _, err := agent.ParseType(string(c.Agent)); err != nil {
		return fmt.Errorf("validate: %v", err)
	}
	if err := c.EnvConf.Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if c.TrainEpisodes < 0 || c.EvalEpisodes < 0 {
		return fmt.Errorf("validate: negative episode count (train %d, "+
			"eval %d)", c.TrainEpisodes, c.EvalEpisodes)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("validate: negative step limit %d", c.MaxSteps)
	}
	return nil
}

// CreateTrainer creates the environment and policy described by the
// Config and returns a Trainer running them. The environment is
// further configured by envOpts, and the Trainer by opts.
func (c Config) CreateTrainer(envOpts []warehouse.Option,
	opts ...Option) (*Trainer, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("createTrainer: %w", err)
	}

	agentType, _ := agent.ParseType(string(c.Agent))

	e, _, err := c.EnvConf.Create(c.EnvSeed, envOpts...)
	if err != nil {
		return nil, fmt.Errorf("createTrainer: could not create "+
			"environment: %w", err)
	}

	p, err := policy.New(agentType, e.ActionSpec(), c.AgentSeed)
	if err != nil {
		return nil, fmt.Errorf("createTrainer: could not create agent: %w",
			err)
	}

	opts = append([]Option{WithMaxSteps(c.MaxSteps)}, opts...)
	return NewTrainer(e, p, opts...)
}
