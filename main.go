package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/samuelfneumann/warehouse/agent"
	"github.com/samuelfneumann/warehouse/environment/envconfig"
	"github.com/samuelfneumann/warehouse/environment/warehouse"
	"github.com/samuelfneumann/warehouse/environment/warehouse/render"
	"github.com/samuelfneumann/warehouse/experiment"
	"github.com/samuelfneumann/warehouse/experiment/trackers"
	"github.com/samuelfneumann/warehouse/utils/progressbar"
	"github.com/spf13/cobra"
)

// flags holds the command line flags shared by all commands
type flags struct {
	configFile string
	envFiles   []string

	agent      string
	env        string
	rows       int
	cols       int
	battery    int
	obstacles  int
	maxSteps   int
	envSeed    uint64
	agentSeed  uint64
	trainEps   int
	evalEps    int
	dataDir    string
	progress   bool
	demoEps    int
	renderer   string
	framesDir  string
	fps        int
	defaultCfg experiment.Config
}

func main() {
	f := &flags{defaultCfg: experiment.DefaultConfig()}

	rootCmd := &cobra.Command{
		Use:   "warehouse",
		Short: "Warehouse runs agents which steer a robot to a package in a grid warehouse.",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Train and evaluate an agent, printing statistics only",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := f.config(cmd)
			if err != nil {
				return err
			}
			return runStats(c, f.progress)
		},
	}

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Render a few evaluation episodes of an agent",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := f.config(cmd)
			if err != nil {
				return err
			}
			return runDemo(c, f)
		},
	}

	bothCmd := &cobra.Command{
		Use:   "both",
		Short: "Print statistics, then render a few evaluation episodes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := f.config(cmd)
			if err != nil {
				return err
			}
			if err := runStats(c, f.progress); err != nil {
				return err
			}
			return runDemo(c, f)
		},
	}

	d := f.defaultCfg
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&f.configFile, "config", "", "JSON experiment config file")
	pf.StringSliceVar(&f.envFiles, "env-file", nil, ".env files to load (default ./.env)")
	pf.StringVar(&f.agent, "agent", "greedy", "agent to run: random or greedy")
	pf.StringVar(&f.env, "env", "basic", "environment: basic or advanced")
	pf.IntVar(&f.rows, "rows", d.EnvConf.Rows, "grid rows")
	pf.IntVar(&f.cols, "cols", d.EnvConf.Cols, "grid columns")
	pf.IntVar(&f.battery, "battery", d.EnvConf.MaxBattery, "battery of the advanced environment")
	pf.IntVar(&f.obstacles, "obstacles", d.EnvConf.Obstacles, "obstacles in the advanced environment")
	pf.IntVar(&f.maxSteps, "max-steps", d.MaxSteps, "step limit per episode, 0 for none")
	pf.Uint64Var(&f.envSeed, "env-seed", d.EnvSeed, "environment seed")
	pf.Uint64Var(&f.agentSeed, "agent-seed", d.AgentSeed, "agent seed")

	for _, cmd := range []*cobra.Command{runCmd, bothCmd} {
		cmd.Flags().IntVar(&f.trainEps, "train-episodes", d.TrainEpisodes, "training episodes")
		cmd.Flags().IntVar(&f.evalEps, "eval-episodes", d.EvalEpisodes, "evaluation episodes")
		cmd.Flags().StringVar(&f.dataDir, "data-dir", d.DataDir, "directory to save per-episode data in")
		cmd.Flags().BoolVar(&f.progress, "progress", false, "display a progress bar")
	}
	for _, cmd := range []*cobra.Command{demoCmd, bothCmd} {
		cmd.Flags().IntVar(&f.demoEps, "episodes", 3, "episodes to render")
		cmd.Flags().StringVar(&f.renderer, "renderer", "console", "renderer: console or png")
		cmd.Flags().StringVar(&f.framesDir, "frames", "frames", "directory PNG frames are saved in")
		cmd.Flags().IntVar(&f.fps, "fps", 4, "frames per second of the console renderer")
	}

	rootCmd.AddCommand(runCmd, demoCmd, bothCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// config resolves the experiment Config: defaults, then the config
// file, then environment variables, then explicitly set flags
func (f *flags) config(cmd *cobra.Command) (experiment.Config, error) {
	c := f.defaultCfg
	if f.configFile != "" {
		var err error
		if c, err = experiment.Load(f.configFile); err != nil {
			return c, err
		}
	}

	c, err := experiment.FromEnv(c, f.envFiles...)
	if err != nil {
		return c, err
	}

	set := cmd.Flags().Changed
	if set("agent") {
		if c.Agent, err = agent.ParseType(f.agent); err != nil {
			return c, err
		}
	}
	if set("env") {
		if c.EnvConf.Environment, err = envconfig.ParseEnvName(f.env); err != nil {
			return c, err
		}
	}
	if set("rows") {
		c.EnvConf.Rows = f.rows
	}
	if set("cols") {
		c.EnvConf.Cols = f.cols
	}
	if set("battery") {
		c.EnvConf.MaxBattery = f.battery
	}
	if set("obstacles") {
		c.EnvConf.Obstacles = f.obstacles
	}
	if set("max-steps") {
		c.MaxSteps = f.maxSteps
	}
	if set("env-seed") {
		c.EnvSeed = f.envSeed
	}
	if set("agent-seed") {
		c.AgentSeed = f.agentSeed
	}
	if set("train-episodes") {
		c.TrainEpisodes = f.trainEps
	}
	if set("eval-episodes") {
		c.EvalEpisodes = f.evalEps
	}
	if set("data-dir") {
		c.DataDir = f.dataDir
	}

	return c, c.Validate()
}

// runStats trains and then evaluates the configured agent, each phase
// on its own environment and agent, and prints a summary
func runStats(c experiment.Config, showProgress bool) error {
	runID := uuid.New().String()
	logger := log.New(os.Stderr, fmt.Sprintf("[%.8s] ", runID), log.LstdFlags)

	fmt.Println("============================================================")
	fmt.Printf("Running experiments with %v\n", c.Agent)
	fmt.Println("============================================================")

	train, err := phase(c, runID, "train", logger, showProgress, c.TrainEpisodes)
	if err != nil {
		return err
	}
	trainStats, err := train.run(func(t *experiment.Trainer, n int) (experiment.Stats, error) {
		return t.Train(n, false)
	})
	if err != nil {
		return err
	}

	// Evaluation runs on fresh instances, seeded apart from training
	evalConf := c
	evalConf.EnvSeed++
	evalConf.AgentSeed++
	eval, err := phase(evalConf, runID, "eval", logger, showProgress, c.EvalEpisodes)
	if err != nil {
		return err
	}
	evalStats, err := eval.run(func(t *experiment.Trainer, n int) (experiment.Stats, error) {
		return t.Evaluate(n, false)
	})
	if err != nil {
		return err
	}

	fmt.Printf("[%v] Train success rate: %.2f%%\n", c.Agent, trainStats.SuccessRate*100)
	fmt.Printf("[%v] Train avg reward:    %.3f\n", c.Agent, trainStats.AverageReward)
	fmt.Printf("[%v] Train avg steps:     %.2f\n", c.Agent, trainStats.AverageSteps)
	fmt.Println()
	fmt.Printf("[%v] Eval success rate:  %.2f%%\n", c.Agent, evalStats.SuccessRate*100)
	fmt.Printf("[%v] Eval avg reward:    %.3f\n", c.Agent, evalStats.AverageReward)
	fmt.Printf("[%v] Eval avg steps:     %.2f\n", c.Agent, evalStats.AverageSteps)
	fmt.Println()

	return nil
}

// runPhase is a Trainer for one phase of a run, along with its optional
// progress bar
type runPhase struct {
	trainer  *experiment.Trainer
	bar      *progressbar.ProgressBar
	episodes int
	save     bool
}

func phase(c experiment.Config, runID, name string, logger *log.Logger,
	showProgress bool, episodes int) (*runPhase, error) {
	opts := []experiment.Option{experiment.WithLogger(logger)}

	p := &runPhase{episodes: episodes}
	if showProgress {
		p.bar = progressbar.NewProgressBar(os.Stderr, 40, episodes,
			250*time.Millisecond, true)
		opts = append(opts, experiment.WithProgress(p.bar))
	}

	if c.DataDir != "" {
		if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("could not create data directory: %v", err)
		}
		prefix := filepath.Join(c.DataDir, fmt.Sprintf("%v-%v-", runID, name))
		opts = append(opts, experiment.WithTrackers(
			trackers.NewReturn(prefix+"return.bin"),
			trackers.NewEpisodeLength(prefix+"length.bin"),
			trackers.NewSuccess(prefix+"success.bin"),
		))
		p.save = true
	}

	t, err := c.CreateTrainer(nil, opts...)
	if err != nil {
		return nil, err
	}
	p.trainer = t
	return p, nil
}

func (p *runPhase) run(f func(*experiment.Trainer, int) (experiment.Stats, error)) (experiment.Stats, error) {
	if p.bar != nil {
		p.bar.Display()
	}
	stats, err := f(p.trainer, p.episodes)
	if p.bar != nil {
		p.bar.Close()
	}
	if err != nil {
		return experiment.Stats{}, err
	}

	if p.save {
		if err := p.trainer.Save(); err != nil {
			return experiment.Stats{}, err
		}
	}
	return stats, nil
}

// runDemo evaluates the configured agent for a few episodes, rendering
// every step
func runDemo(c experiment.Config, f *flags) error {
	fmt.Println("============================================================")
	fmt.Printf("Starting visual demo with %v\n", c.Agent)
	fmt.Println("============================================================")

	var r warehouse.Renderer
	switch f.renderer {
	case "console":
		r = render.NewConsole(os.Stdout, f.fps)
	case "png":
		p, err := render.NewPNG(f.framesDir, "frame")
		if err != nil {
			return err
		}
		defer func() {
			fmt.Printf("Saved %d frames to %v\n", p.Frames(), f.framesDir)
		}()
		r = p
	default:
		return fmt.Errorf("no such renderer %q", f.renderer)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	t, err := c.CreateTrainer([]warehouse.Option{warehouse.WithRenderer(r)},
		experiment.WithLogger(logger))
	if err != nil {
		return err
	}

	_, err = t.Evaluate(f.demoEps, true)
	return err
}
