package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/cep78-cli/internal/usecase"
)

// SpinnerProgressReporter shows a spinner while a deploy is in flight
type SpinnerProgressReporter struct {
	spinner      *spinner.Spinner
	out          io.Writer
	currentStage string
	stageStart   time.Time
	spinning     bool
}

// NewSpinnerProgressReporter creates a new spinner-based progress reporter
func NewSpinnerProgressReporter() *SpinnerProgressReporter {
	return newSpinnerProgressReporter(os.Stderr)
}

func newSpinnerProgressReporter(out io.Writer) *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerProgressReporter{
		spinner: s,
		out:     out,
	}
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Stage != r.currentStage {
		if r.spinning && !event.Spinner {
			r.finish()
		}
		r.currentStage = event.Stage
		r.stageStart = time.Now()
	}
	r.spinning = event.Spinner

	if event.Spinner {
		r.spinner.Suffix = " " + event.Message
		if !r.spinner.Active() {
			r.spinner.Start()
		}
	} else if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.pause(func() {
		color.New(color.FgCyan).Fprintln(r.out, message)
	})
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.pause(func() {
		color.New(color.FgRed).Fprintln(r.out, message)
	})
}

// Elapsed returns how long the current stage has been running
func (r *SpinnerProgressReporter) Elapsed() time.Duration {
	if r.stageStart.IsZero() {
		return 0
	}
	return time.Since(r.stageStart).Round(time.Millisecond)
}

// finish stops the spinner and reports how long its stage ran
func (r *SpinnerProgressReporter) finish() {
	if r.spinner.Active() {
		r.spinner.Stop()
	}
	fmt.Fprintf(r.out, "%s (%s)\n", strings.TrimSpace(r.spinner.Suffix), r.Elapsed())
}

// pause stops the spinner around print and restarts it if it was running
func (r *SpinnerProgressReporter) pause(print func()) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}
	print()
	if wasActive {
		r.spinner.Start()
	}
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
