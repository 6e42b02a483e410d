package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/samuelfneumann/warehouse/environment/warehouse"
)

const (
	// CellSize is the width and height in pixels of a single cell
	CellSize int = 96

	// InfoHeight is the height in pixels of the caption below the grid
	InfoHeight int = 30
)

// PNG renders each frame to a numbered PNG file in a directory, e.g.
// frame0001.png, frame0002.png, ...
type PNG struct {
	dir    string
	prefix string
	frames int
}

// NewPNG returns a new PNG renderer saving frames to dir, creating the
// directory if needed
func NewPNG(dir, prefix string) (*PNG, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("newPNG: could not create frame directory: %v",
			err)
	}
	return &PNG{dir: dir, prefix: prefix}, nil
}

// Frames returns the number of frames saved so far
func (p *PNG) Frames() int {
	return p.frames
}

// Render draws a frame and saves it to the next numbered file
func (p *PNG) Render(f warehouse.Frame) error {
	dc := Draw(f)

	p.frames++
	filename := filepath.Join(p.dir, fmt.Sprintf("%v%04d.png", p.prefix,
		p.frames))
	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("render: could not save frame: %v", err)
	}
	return nil
}

// Draw draws a frame on a new drawing context, with the grid on top and
// the caption below it
func Draw(f warehouse.Frame) *gg.Context {
	width := CellSize * f.Cols
	height := CellSize*f.Rows + InfoHeight
	cell := float64(CellSize)

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for r := 0; r < f.Rows; r++ {
		for c := 0; c < f.Cols; c++ {
			x, y := float64(c)*cell, float64(r)*cell
			pos := warehouse.Position{Row: r, Col: c}

			// Floor
			dc.DrawRectangle(x, y, cell, cell)
			dc.SetRGB255(214, 204, 184)
			dc.FillPreserve()
			dc.SetRGB255(160, 150, 130)
			dc.SetLineWidth(1)
			dc.Stroke()

			if f.IsObstacle(pos) {
				dc.DrawRectangle(x, y, cell, cell)
				dc.SetRGB255(120, 120, 120)
				dc.Fill()
			}

			// Package to deliver
			if pos == f.Target {
				inset := cell / 4
				dc.DrawRectangle(x+inset, y+inset, cell-2*inset, cell-2*inset)
				dc.SetRGB255(176, 122, 64)
				dc.Fill()
			}

			if pos == f.Robot {
				dc.DrawCircle(x+cell/2, y+cell/2, cell/3)
				dc.SetRGB255(40, 90, 200)
				dc.Fill()
			}
		}
	}

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(Caption(f), 6, float64(height)-float64(InfoHeight)/2,
		0, 0.5)

	return dc
}
