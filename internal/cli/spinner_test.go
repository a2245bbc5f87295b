package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer shared with the redraw goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDrawsAndClears(t *testing.T) {
	out := &syncBuffer{}
	s := newSpinner(context.Background(), out, "Tracking samples...")
	s.start()
	time.Sleep(3 * spinnerInterval)
	s.stop()

	got := out.String()
	if !strings.Contains(got, "Tracking samples...") {
		t.Errorf("output %q does not contain the status text", got)
	}
	if !strings.HasSuffix(got, " \r") {
		t.Errorf("output does not end with a blanked line: %q", got)
	}
}

func TestSpinnerProgress(t *testing.T) {
	out := &syncBuffer{}
	s := newSpinner(context.Background(), out, "Augmenting samples...")
	report := s.progress("Augmenting")
	s.start()
	report(3, 8)
	time.Sleep(3 * spinnerInterval)
	s.stop()

	if got := out.String(); !strings.Contains(got, "Augmenting 3/8") {
		t.Errorf("output %q does not show progress", got)
	}
}

func TestSpinnerStopTwice(t *testing.T) {
	s := newSpinner(context.Background(), &syncBuffer{}, "x")
	s.start()
	s.stop()
	s.stop()

	if !s.done() {
		t.Error("done() = false after stop")
	}
}

func TestSpinnerFollowsContext(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx, cancel
		}},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 20*time.Millisecond)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()

			s := newSpinner(ctx, &syncBuffer{}, "Augmenting samples...")
			s.start()
			time.Sleep(100 * time.Millisecond)

			if !s.done() {
				t.Error("done() = false after the parent context ended")
			}
			s.stop()
		})
	}
}
