// Package experiment implements functionality for running agents in
// environments and summarizing how well they perform
package experiment

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Outcome is the result of a single episode
type Outcome struct {
	TotalReward float64
	Success     bool
	Steps       int
}

// Stats summarizes the Outcomes of a number of episodes. All averages
// and rates are 0 if no episodes were run.
type Stats struct {
	Episodes      int
	Successes     int
	SuccessRate   float64
	AverageReward float64
	AverageSteps  float64
	RewardStdDev  float64
}

// Aggregate computes the Stats of a number of episode Outcomes
func Aggregate(outcomes []Outcome) Stats {
	n := len(outcomes)
	if n == 0 {
		return Stats{}
	}

	rewards := make([]float64, n)
	steps := make([]float64, n)
	successes := 0
	for i, o := range outcomes {
		rewards[i] = o.TotalReward
		steps[i] = float64(o.Steps)
		if o.Success {
			successes++
		}
	}

	stats := Stats{
		Episodes:      n,
		Successes:     successes,
		SuccessRate:   float64(successes) / float64(n),
		AverageReward: floats.Sum(rewards) / float64(n),
		AverageSteps:  stat.Mean(steps, nil),
	}
	if n > 1 {
		stats.RewardStdDev = stat.StdDev(rewards, nil)
	}
	return stats
}

// Lines returns the human readable summary of the Stats, one line per
// statistic
func (s Stats) Lines() []string {
	return []string{
		fmt.Sprintf("Episodes: %d", s.Episodes),
		fmt.Sprintf("Success rate: %.2f%%", s.SuccessRate*100),
		fmt.Sprintf("Average reward: %.3f", s.AverageReward),
		fmt.Sprintf("Average steps: %.2f", s.AverageSteps),
	}
}

func (s Stats) String() string {
	str := "Stats | Episodes: %d  |  Success rate: %.2f%%  |  " +
		"Average reward: %.3f  |  Average steps: %.2f"
	return fmt.Sprintf(str, s.Episodes, s.SuccessRate*100, s.AverageReward,
		s.AverageSteps)
}
