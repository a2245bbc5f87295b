package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

// spinner redraws a one-line status on w until stop is called or its
// context ends. The status text can change while it runs.
type spinner struct {
	w      io.Writer
	ctx    context.Context
	cancel context.CancelFunc
	exited chan struct{}
	once   sync.Once

	mu    sync.Mutex
	text  string
	width int // runes on screen after the last draw
}

func newSpinner(ctx context.Context, w io.Writer, text string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &spinner{w: w, ctx: ctx, cancel: cancel, text: text, exited: make(chan struct{})}
}

// start launches the redraw loop.
func (s *spinner) start() {
	go s.loop()
}

func (s *spinner) loop() {
	defer close(s.exited)
	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()

	frame := 0
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-tick.C:
			s.draw(spinnerFrames[frame%len(spinnerFrames)])
			frame++
		}
	}
}

// set replaces the status text shown from the next frame on.
func (s *spinner) set(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
}

// progress shows "<label> n/total" as the status text.
func (s *spinner) progress(label string) func(n, total int) {
	return func(n, total int) {
		s.set(fmt.Sprintf("%s %d/%d", label, n, total))
	}
}

func (s *spinner) draw(frame rune) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := string(frame) + " " + s.text
	pad := max(s.width-utf8.RuneCountInString(line), 0)
	fmt.Fprintf(s.w, "\r%s %s%s", styleIconSpinner.Render(string(frame)), StyleDim.Render(s.text), strings.Repeat(" ", pad))
	s.width = utf8.RuneCountInString(line) + pad
}

// stop ends the loop and blanks the status line. It is safe to call more
// than once.
func (s *spinner) stop() {
	s.once.Do(func() {
		s.cancel()
		<-s.exited
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.width > 0 {
			fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
		}
	})
}

// done reports whether the spinner has been stopped or its parent context
// has ended.
func (s *spinner) done() bool {
	return s.ctx.Err() != nil
}
