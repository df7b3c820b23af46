package cli

import (
	"strings"
	"testing"

	"github.com/raja-blip/onetap-remote/internal/domain"
)

func TestConsoleSinkTracesOnlyWhenVerbose(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	sink := NewConsoleSink(&buf)

	sink.CommandTrace(domain.CommandTrace{RequestID: "r1", Service: "bridge", Operation: "/api/control", Outcome: domain.TraceOK})
	if buf.Len() != 0 {
		t.Fatalf("trace printed without verbose: %q", buf.String())
	}

	sink.Verbose = true
	sink.CommandTrace(domain.CommandTrace{RequestID: "r2", Service: "bridge", Operation: "/api/control", Outcome: domain.TraceTimeout, Detail: "deadline"})
	out := buf.String()
	if !strings.Contains(out, "r2") || !strings.Contains(out, "timeout") || !strings.Contains(out, "deadline") {
		t.Fatalf("unexpected trace output: %q", out)
	}
}

func TestConsoleSinkStateAndErrors(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	sink := NewConsoleSink(&buf)

	sink.MeetingStateChanged(domain.MeetingStateJoining, domain.ReasonJoinStarted)
	sink.ActionError(domain.ErrorCodeRemoteReject, "camera busy")
	sink.ToggleStateChanged(domain.ToggleState{Muted: true, CameraOn: true})

	out := buf.String()
	for _, want := range []string{"joining", "join_started", "remote_reject", "camera busy", "muted=true"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q: %q", want, out)
		}
	}
}
