// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// ProgressBar implements a progress bar which redraws itself in a
// separate goroutine, so that the progress bar runs concurrently with
// the work it measures.
type ProgressBar struct {
	// width determines the number of characters wide that the progress
	// bar should be
	width int

	// maxProgress determines the number of times Increment() should
	// be called before the progress bar reaches 100%.
	maxProgress int

	out               io.Writer
	updateEvery       time.Duration
	updateAtIncrement bool

	mu              sync.Mutex
	currentProgress int
	started         time.Time
	closed          bool

	// incrementEvent signals the display goroutine that Increment() was
	// called
	incrementEvent chan struct{}
	closeEvent     chan struct{}
	done           chan struct{}
}

// NewProgressBar returns a new progress bar that is width characters
// wide, reaches 100% capacity after max Increment() calls and is drawn
// to out. The bar is redrawn every updateEvery, and also on every
// Increment() if updateAtIncrement is set.
func NewProgressBar(out io.Writer, width, max int, updateEvery time.Duration,
	updateAtIncrement bool) *ProgressBar {
	if max < 1 {
		max = 1
	}
	if updateEvery <= 0 {
		updateEvery = time.Second
	}
	return &ProgressBar{
		width:             width,
		maxProgress:       max,
		out:               out,
		updateEvery:       updateEvery,
		updateAtIncrement: updateAtIncrement,
		incrementEvent:    make(chan struct{}, 1),
		closeEvent:        make(chan struct{}),
		done:              make(chan struct{}),
	}
}

// Increment increments the internal progress counter. Each time an
// iteration is performed, Increment should be called.
func (p *ProgressBar) Increment() {
	p.mu.Lock()
	if p.currentProgress < p.maxProgress && !p.closed {
		p.currentProgress++
	}
	p.mu.Unlock()

	if p.updateAtIncrement {
		select {
		case p.incrementEvent <- struct{}{}:
		default:
		}
	}
}

// Progress returns the number of Increment() calls counted so far
func (p *ProgressBar) Progress() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentProgress
}

// Display displays the progress bar on the screen. It should only be
// called once.
func (p *ProgressBar) Display() {
	p.mu.Lock()
	p.started = time.Now()
	p.mu.Unlock()

	go func() {
		defer close(p.done)

		tick := time.NewTicker(p.updateEvery)
		defer tick.Stop()

		for {
			select {
			case <-p.incrementEvent:
			case <-tick.C:
			case <-p.closeEvent:
				p.draw()
				return
			}
			p.draw()
		}
	}()
}

// Close draws the progress bar a final time and stops it from being
// redrawn. Close panics if the progress bar is already closed.
func (p *ProgressBar) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		panic("close: close on closed progress bar")
	}
	p.closed = true
	displayed := !p.started.IsZero()
	p.mu.Unlock()

	close(p.closeEvent)
	if displayed {
		<-p.done
	}
	fmt.Fprintln(p.out) // Jump to next line after printed pbar
}

// String returns the progress bar as it is currently drawn
func (p *ProgressBar) String() string {
	p.mu.Lock()
	current, max := p.currentProgress, p.maxProgress
	elapsed := time.Duration(0)
	if !p.started.IsZero() {
		elapsed = time.Since(p.started).Truncate(time.Second)
	}
	p.mu.Unlock()

	filled := current * p.width / max

	var bar strings.Builder
	bar.WriteString("|")
	bar.WriteString(strings.Repeat("█", filled))
	bar.WriteString(strings.Repeat(" ", p.width-filled))
	fmt.Fprintf(&bar, "| [%.2f%% | elapsed: %v]",
		float64(current)/float64(max)*100, elapsed)

	return bar.String()
}

func (p *ProgressBar) draw() {
	fmt.Fprintf(p.out, "\n\033[1A\033[K%v", p.String())
}
