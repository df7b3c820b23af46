package ports

import (
	"context"
	"time"

	"github.com/raja-blip/onetap-remote/internal/domain"
)

// Service names the two remote control surfaces.
type Service string

const (
	ServiceBridge   Service = "bridge"
	ServiceLauncher Service = "launcher"
)

// Endpoint is a remote host/port pair. Port stays a string because it is
// user-entered and persisted verbatim.
type Endpoint struct {
	Host string
	Port string
}

// URL renders the endpoint as a plain http base URL.
func (e Endpoint) URL() string {
	return "http://" + e.Host + ":" + e.Port
}

// Bridge is the room PC's coarse control surface: navigation, touch taps,
// camera motion, and the coordinate/app-state meeting fallback.
type Bridge interface {
	Control(ctx context.Context, action string, extra map[string]any) domain.Result
	Touch(ctx context.Context, x, y int) domain.Result
	MeetingAction(ctx context.Context, action string, platform domain.Platform, meetingType domain.MeetingType) domain.Result
	Casting(ctx context.Context, action string) domain.Result
	CameraMode(ctx context.Context) (mode int, ok bool)
	InstantMeeting(ctx context.Context, platform domain.Platform) domain.Result
	GoogleMeetSetup(ctx context.Context)
	GoogleMeetJoin(ctx context.Context, signedIn bool, roomName string) domain.Result
	Status(ctx context.Context) (deviceName string, ok bool)
}

// Launcher is the Android-automation surface: accessibility clicks, text
// injection, calendar state, and meeting launch.
type Launcher interface {
	UIState(ctx context.Context) ([]domain.Meeting, error)
	ClickByText(ctx context.Context, text string) domain.Result
	ClickByContentDescription(ctx context.Context, description string) domain.Result
	InjectText(ctx context.Context, text string) domain.Result
	LaunchMeeting(ctx context.Context, meetingURL string, platform domain.Platform) domain.Result
	DumpText(ctx context.Context) (string, error)
}

// Settings is the flat persisted string map backing the registry. Absent
// keys return ok=false, never an error.
type Settings interface {
	Get(key string) (value string, ok bool)
	Set(key, value string) error
	Delete(key string) error
}

// EventSink emits backend state and diagnostics to the UI.
type EventSink interface {
	MeetingStateChanged(state domain.MeetingState, reason domain.StateReason)
	ToggleStateChanged(state domain.ToggleState)
	ActionError(code domain.ErrorCode, detail string)
	Navigate(route domain.Route)
	CommandTrace(trace domain.CommandTrace)
}

// Sleeper waits out a settle delay. The remote UI offers no transition acks,
// so flows blindly wait an assumed settle time; injecting the wait keeps
// those delays assertable in tests and cancellable mid-flow.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}
