// Package render implements Renderers which display warehouse
// environments, either as text or as PNG images
package render

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/samuelfneumann/warehouse/environment/warehouse"
)

// Tiles printed by the Console renderer
const (
	FloorTile    = "_"
	RobotTile    = "R"
	TargetTile   = "T"
	ObstacleTile = "X"
)

// Console renders frames as text, one character per cell, followed by
// a line describing the last action and battery
type Console struct {
	out   io.Writer
	delay time.Duration
}

// NewConsole returns a Console renderer writing to out. If fps is
// positive, Render() sleeps after each frame so that at most fps frames
// are drawn per second.
func NewConsole(out io.Writer, fps int) *Console {
	var delay time.Duration
	if fps > 0 {
		delay = time.Second / time.Duration(fps)
	}
	return &Console{out: out, delay: delay}
}

// Render writes a frame
func (c *Console) Render(f warehouse.Frame) error {
	w := bufio.NewWriter(c.out)

	for r := 0; r < f.Rows; r++ {
		for col := 0; col < f.Cols; col++ {
			fmt.Fprintf(w, "%s ", tile(f, warehouse.Position{Row: r, Col: col}))
		}
		fmt.Fprintln(w)
	}
	if caption := Caption(f); caption != "" {
		fmt.Fprintln(w, caption)
	}
	fmt.Fprintln(w)

	if err := w.Flush(); err != nil {
		return fmt.Errorf("render: %v", err)
	}

	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	return nil
}

// tile returns the character to draw at p. The robot is drawn over the
// target, and the target over obstacles.
func tile(f warehouse.Frame, p warehouse.Position) string {
	switch {
	case p == f.Robot:
		return RobotTile
	case p == f.Target:
		return TargetTile
	case f.IsObstacle(p):
		return ObstacleTile
	default:
		return FloorTile
	}
}

// Caption describes the last action and the battery of a frame, e.g.
// "Action: LEFT | Battery: 12". Parts that the frame does not hold are
// left out.
func Caption(f warehouse.Frame) string {
	caption := ""
	if f.Acted {
		caption = fmt.Sprintf("Action: %v", f.LastAction)
	}
	if f.HasBattery {
		if caption != "" {
			caption += " | "
		}
		caption += fmt.Sprintf("Battery: %d", f.Battery)
	}
	return caption
}
