package trackers

import (
	"path/filepath"
	"testing"

	ts "github.com/samuelfneumann/warehouse/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// episode feeds tracker an episode with the given rewards, ending it
// as terminal if terminal is set
func episode(tracker Tracker, terminal bool, rewards ...float64) {
	tracker.Track(ts.New(ts.First, 0, nil, 0))
	for i, r := range rewards {
		step := ts.New(ts.Mid, r, nil, i+1)
		if terminal && i == len(rewards)-1 {
			step.SetEnd(ts.TerminalStateReached)
		}
		tracker.Track(step)
	}
	tracker.EndEpisode()
}

func TestReturn(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "return.bin")
	r := NewReturn(filename)

	episode(r, true, 0, 0, 1)
	episode(r, false, -0.2, 0, -0.2)
	episode(r, true, -1)

	assert.Equal(t, []float64{1, -0.4, -1}, r.Data())

	require.NoError(t, r.Save())
	data, err := LoadData(filename)
	require.NoError(t, err)
	assert.Equal(t, r.Data(), data)
}

func TestReturnNonSequential(t *testing.T) {
	r := NewReturn("")
	r.Track(ts.New(ts.First, 0, nil, 0))

	assert.Panics(t, func() {
		r.Track(ts.New(ts.Mid, 1, nil, 2))
	})
}

func TestEpisodeLength(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "length.bin")
	e := NewEpisodeLength(filename)

	episode(e, true, 0, 0, 0, 1)
	episode(e, false, 0, 0)
	assert.Equal(t, []int{4, 2}, e.Data())

	require.NoError(t, e.Save())
	var data []int
	require.NoError(t, Load(filename, &data))
	assert.Equal(t, []int{4, 2}, data)
}

func TestSuccess(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "success.bin")
	s := NewSuccess(filename)

	episode(s, true, 0, 1)  // Reached the target
	episode(s, true, 0, -1) // Battery depleted
	episode(s, false, 0, 0) // Step limit
	assert.Equal(t, []bool{true, false, false}, s.Data())

	require.NoError(t, s.Save())
	var data []bool
	require.NoError(t, Load(filename, &data))
	assert.Equal(t, []bool{true, false, false}, data)
}

func TestLoadMissing(t *testing.T) {
	_, err := LoadData(filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(t, err)
}
