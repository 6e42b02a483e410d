// Package trackers implements Trackers, which track and save data
// generated while running episodes
package trackers

import (
	"encoding/gob"
	"fmt"
	"os"

	ts "github.com/samuelfneumann/warehouse/timestep"
)

// Tracker keeps track of experiment data and saves the data after the
// experiment has finished.
//
// Track is called with every TimeStep of an episode, starting with the
// first TimeStep returned by the environment's Reset(). EndEpisode is
// called once the episode has ended, whether the environment ended it
// or a step limit did.
type Tracker interface {
	Track(t ts.TimeStep)
	EndEpisode()
	Save() error
}

// save gob-encodes data to filename
func save(filename string, data interface{}) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not open save file: %v", err)
	}
	defer file.Close()

	en := gob.NewEncoder(file)
	if err = en.Encode(data); err != nil {
		return fmt.Errorf("save: could not encode data: %v", err)
	}
	return file.Close()
}

// Load loads the data saved by a Tracker into data, which should be a
// pointer to the type of data the Tracker saves: *[]float64 for Return,
// *[]int for EpisodeLength and *[]bool for Success
func Load(filename string, data interface{}) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("load: could not open data file: %v", err)
	}
	defer file.Close()

	dec := gob.NewDecoder(file)
	if err = dec.Decode(data); err != nil {
		return fmt.Errorf("load: could not decode data: %v", err)
	}
	return nil
}

// LoadData loads and returns the data saved by a Return Tracker
func LoadData(filename string) ([]float64, error) {
	var data []float64
	if err := Load(filename, &data); err != nil {
		return nil, err
	}
	return data, nil
}
