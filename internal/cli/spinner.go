package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinnerStyle  = lipgloss.NewStyle().Foreground(colorAccent)
)

const spinnerInterval = 80 * time.Millisecond

// spinner animates a one-line progress message on a terminal until it is
// stopped or its context ends. On anything but a terminal it draws
// nothing.
type spinner struct {
	w       io.Writer
	msg     string
	tty     bool
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once
}

// startSpinner starts animating msg on f.
func startSpinner(ctx context.Context, f *os.File, msg string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{
		w:       f,
		msg:     msg,
		tty:     isTerminal(f),
		ctx:     ctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *spinner) run() {
	defer close(s.stopped)
	if !s.tty {
		<-s.ctx.Done()
		return
	}

	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()
	for i := 0; ; i++ {
		frame := spinnerStyle.Render(spinnerFrames[i%len(spinnerFrames)])
		fmt.Fprintf(s.w, "\r%s %s", frame, StyleDim.Render(s.msg))
		select {
		case <-s.ctx.Done():
			fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.msg)+4))
			return
		case <-tick.C:
		}
	}
}

// stop ends the animation and erases it. Calling stop again is a no-op.
func (s *spinner) stop() {
	s.once.Do(s.cancel)
	<-s.stopped
}

// fail stops the spinner and leaves a failure line in its place.
func (s *spinner) fail(msg string) {
	s.stop()
	newConsole(s.w).fail("%s", msg)
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
