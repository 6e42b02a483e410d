package experiment

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/samuelfneumann/warehouse/agent"
	"github.com/samuelfneumann/warehouse/environment/envconfig"
)

// Environment variables read by FromEnv
const (
	EnvAgent         = "WAREHOUSE_AGENT"
	EnvEnvironment   = "WAREHOUSE_ENV"
	EnvRows          = "WAREHOUSE_ROWS"
	EnvCols          = "WAREHOUSE_COLS"
	EnvMaxBattery    = "WAREHOUSE_MAX_BATTERY"
	EnvObstacles     = "WAREHOUSE_OBSTACLES"
	EnvTrainEpisodes = "WAREHOUSE_TRAIN_EPISODES"
	EnvEvalEpisodes  = "WAREHOUSE_EVAL_EPISODES"
	EnvMaxSteps      = "WAREHOUSE_MAX_STEPS"
	EnvEnvSeed       = "WAREHOUSE_ENV_SEED"
	EnvAgentSeed     = "WAREHOUSE_AGENT_SEED"
	EnvDataDir       = "WAREHOUSE_DATA_DIR"
)

// FromEnv overlays the WAREHOUSE_* environment variables onto c. The
// given .env files (or ./.env if none are given) are loaded first; a
// missing file is not an error. Variables already set in the process
// environment take precedence over those in .env files.
func FromEnv(c Config, files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be "+
			"loaded: %v", err)
	}

	if v, ok := os.LookupEnv(EnvAgent); ok {
		t, err := agent.ParseType(v)
		if err != nil {
			return Config{}, fmt.Errorf("fromEnv: %s: %v", EnvAgent, err)
		}
		c.Agent = t
	}

	if v, ok := os.LookupEnv(EnvEnvironment); ok {
		name, err := envconfig.ParseEnvName(v)
		if err != nil {
			return Config{}, fmt.Errorf("fromEnv: %s: %v", EnvEnvironment,
				err)
		}
		c.EnvConf.Environment = name
	}

	ints := []struct {
		key string
		dst *int
	}{
		{EnvRows, &c.EnvConf.Rows},
		{EnvCols, &c.EnvConf.Cols},
		{EnvMaxBattery, &c.EnvConf.MaxBattery},
		{EnvObstacles, &c.EnvConf.Obstacles},
		{EnvTrainEpisodes, &c.TrainEpisodes},
		{EnvEvalEpisodes, &c.EvalEpisodes},
		{EnvMaxSteps, &c.MaxSteps},
	}
	for _, i := range ints {
		if err := lookupInt(i.key, i.dst); err != nil {
			return Config{}, fmt.Errorf("fromEnv: %v", err)
		}
	}

	seeds := []struct {
		key string
		dst *uint64
	}{
		{EnvEnvSeed, &c.EnvSeed},
		{EnvAgentSeed, &c.AgentSeed},
	}
	for _, s := range seeds {
		v, ok := os.LookupEnv(s.key)
		if !ok {
			continue
		}
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("fromEnv: %s must be an unsigned "+
				"integer: %v", s.key, err)
		}
		*s.dst = seed
	}

	if v, ok := os.LookupEnv(EnvDataDir); ok {
		c.DataDir = v
	}

	return c, c.Validate()
}

// lookupInt stores the integer value of environment variable key in
// dst, leaving dst unchanged if key is not set
func lookupInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	value, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s must be an integer: %v", key, err)
	}
	*dst = value
	return nil
}
