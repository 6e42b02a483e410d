package trackers

import (
	ts "github.com/samuelfneumann/warehouse/timestep"
)

// Success tracks and saves whether each episode of an experiment ended
// successfully
type Success struct {
	last      ts.TimeStep
	successes []bool
	filename  string
}

// NewSuccess returns a new Success Tracker which will save its data at
// filename
func NewSuccess(filename string) *Success {
	return &Success{filename: filename}
}

// Track records the most recent timestep
func (s *Success) Track(t ts.TimeStep) {
	s.last = t
}

// EndEpisode records whether the episode that just ended was a success
func (s *Success) EndEpisode() {
	s.successes = append(s.successes, s.last.Success())
	s.last = ts.TimeStep{}
}

// Data returns the successes tracked so far
func (s *Success) Data() []bool {
	data := make([]bool, len(s.successes))
	copy(data, s.successes)
	return data
}

// Save saves the data tracked by the Success Tracker to disk
func (s *Success) Save() error {
	return save(s.filename, s.successes)
}
