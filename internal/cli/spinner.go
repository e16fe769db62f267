package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// spinnerFrames cycle on stderr while the planner runs out its time budget.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner is the solve command's progress indicator for non-verbose runs.
// It redraws a single line until Stop is called or its context ends, then
// erases the line so later output starts at column zero.
type Spinner struct {
	label    string
	out      io.Writer
	ctx      context.Context
	cancel   context.CancelFunc
	finished chan struct{}
}

func newSpinner(label string) *Spinner {
	return newSpinnerWithContext(context.Background(), label)
}

func newSpinnerWithContext(ctx context.Context, label string) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		label:    label,
		out:      os.Stderr,
		ctx:      ctx,
		cancel:   cancel,
		finished: make(chan struct{}),
	}
}

// Start launches the redraw loop in a goroutine.
func (s *Spinner) Start() {
	go func() {
		defer close(s.finished)
		defer s.erase()
		tick := time.NewTicker(spinnerInterval)
		defer tick.Stop()
		for frame := 0; ; frame++ {
			select {
			case <-s.ctx.Done():
				return
			case <-tick.C:
				glyph := spinnerFrames[frame%len(spinnerFrames)]
				fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(glyph), StyleDim.Render(s.label))
			}
		}
	}()
}

// Stop ends the animation and waits for the final erase, so a caller can
// print immediately after without landing mid-line. Safe to call twice.
func (s *Spinner) Stop() {
	s.cancel()
	<-s.finished
}

func (s *Spinner) erase() {
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.label)+4))
}
