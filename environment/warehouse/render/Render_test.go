package render

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/warehouse/environment/warehouse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame() warehouse.Frame {
	return warehouse.Frame{
		Rows:       2,
		Cols:       3,
		Robot:      warehouse.Position{Row: 0, Col: 0},
		Target:     warehouse.Position{Row: 1, Col: 2},
		Obstacles:  []warehouse.Position{{Row: 0, Col: 2}},
		Battery:    5,
		HasBattery: true,
		LastAction: warehouse.Down,
		Acted:      true,
	}
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, 0)

	require.NoError(t, c.Render(frame()))
	assert.Equal(t, "R _ X \n_ _ T \nAction: DOWN | Battery: 5\n\n",
		buf.String())
}

func TestConsoleRobotOnTarget(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, 0)

	f := warehouse.Frame{
		Rows:   2,
		Cols:   2,
		Robot:  warehouse.Position{Row: 1, Col: 1},
		Target: warehouse.Position{Row: 1, Col: 1},
	}
	require.NoError(t, c.Render(f))
	assert.Equal(t, "_ _ \n_ R \n\n", buf.String())
}

func TestCaption(t *testing.T) {
	f := frame()
	assert.Equal(t, "Action: DOWN | Battery: 5", Caption(f))

	f.HasBattery = false
	assert.Equal(t, "Action: DOWN", Caption(f))

	f.Acted = false
	assert.Equal(t, "", Caption(f))

	f.HasBattery = true
	assert.Equal(t, "Battery: 5", Caption(f))
}

func TestPNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	p, err := NewPNG(dir, "frame")
	require.NoError(t, err)

	require.NoError(t, p.Render(frame()))
	require.NoError(t, p.Render(frame()))
	assert.Equal(t, 2, p.Frames())

	for _, name := range []string{"frame0001.png", "frame0002.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestDraw(t *testing.T) {
	dc := Draw(frame())
	assert.Equal(t, 3*CellSize, dc.Width())
	assert.Equal(t, 2*CellSize+InfoHeight, dc.Height())
}
