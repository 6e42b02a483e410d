package trackers

import (
	ts "github.com/samuelfneumann/warehouse/timestep"
)

// EpisodeLength tracks and saves the lengths of episodes in an
// experiment
type EpisodeLength struct {
	current        int
	episodeLengths []int
	filename       string
}

// NewEpisodeLength returns a new EpisodeLength Tracker which will save
// its data at the specified location filename
func NewEpisodeLength(filename string) *EpisodeLength {
	return &EpisodeLength{filename: filename}
}

// Track records the step number of the most recent timestep
func (e *EpisodeLength) Track(t ts.TimeStep) {
	e.current = t.Number
}

// EndEpisode caches the length of the episode that just ended
func (e *EpisodeLength) EndEpisode() {
	e.episodeLengths = append(e.episodeLengths, e.current)
	e.current = 0
}

// Data returns the episode lengths tracked so far
func (e *EpisodeLength) Data() []int {
	data := make([]int, len(e.episodeLengths))
	copy(data, e.episodeLengths)
	return data
}

// Save saves the data tracked by the EpisodeLength Tracker to disk.
func (e *EpisodeLength) Save() error {
	return save(e.filename, e.episodeLengths)
}
