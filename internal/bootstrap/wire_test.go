package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/raja-blip/onetap-remote/internal/domain"
)

func TestBuildSuccess(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ONETAP_SETTINGS_FILE", filepath.Join(dir, "settings.toml"))

	services, err := Build(noopEventSink{})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if services.Resolver == nil || services.Registry == nil {
		t.Fatalf("incomplete graph: %+v", services)
	}
	if services.Bridge == nil || services.Launcher == nil {
		t.Fatalf("remote clients missing: %+v", services)
	}
}

func TestBuildFailsOnCorruptSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	if err := os.WriteFile(path, []byte("not = valid = toml"), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	t.Setenv("ONETAP_SETTINGS_FILE", path)

	if _, err := Build(noopEventSink{}); err == nil {
		t.Fatalf("expected build error for corrupt settings file")
	}
}

func TestTimerSleeperHonorsCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	if err := (timerSleeper{}).Sleep(ctx, 5*time.Second); err == nil {
		t.Fatalf("expected context error")
	}
	if time.Since(start) > time.Second {
		t.Fatalf("cancelled sleep waited the full delay")
	}
}

type noopEventSink struct{}

func (noopEventSink) MeetingStateChanged(_ domain.MeetingState, _ domain.StateReason) {}
func (noopEventSink) ToggleStateChanged(_ domain.ToggleState)                         {}
func (noopEventSink) ActionError(_ domain.ErrorCode, _ string)                        {}
func (noopEventSink) Navigate(_ domain.Route)                                         {}
func (noopEventSink) CommandTrace(_ domain.CommandTrace)                              {}
