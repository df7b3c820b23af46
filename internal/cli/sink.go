package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/raja-blip/onetap-remote/internal/domain"
)

// ConsoleSink prints backend events to the terminal. Command traces are
// shown only in verbose mode.
type ConsoleSink struct {
	mu      sync.Mutex
	out     io.Writer
	Verbose bool
}

func NewConsoleSink(out io.Writer) *ConsoleSink {
	return &ConsoleSink{out: out}
}

func (s *ConsoleSink) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format+"\n", args...)
}

func (s *ConsoleSink) MeetingStateChanged(state domain.MeetingState, reason domain.StateReason) {
	s.printf("state: %s (%s)", state, reason)
}

func (s *ConsoleSink) ToggleStateChanged(state domain.ToggleState) {
	s.printf("toggles: muted=%v camera=%v", state.Muted, state.CameraOn)
}

func (s *ConsoleSink) ActionError(code domain.ErrorCode, detail string) {
	s.printf("error: %s: %s", code, detail)
}

func (s *ConsoleSink) Navigate(route domain.Route) {
	if s.Verbose {
		s.printf("navigate: %s", route)
	}
}

func (s *ConsoleSink) CommandTrace(trace domain.CommandTrace) {
	if !s.Verbose {
		return
	}
	line := fmt.Sprintf("trace: [%s] %s %s -> %s", trace.RequestID, trace.Service, trace.Operation, trace.Outcome)
	if trace.Detail != "" {
		line += " (" + trace.Detail + ")"
	}
	s.printf("%s", line)
}
