// Package resolver turns logical meeting intents into ordered sequences of
// Bridge and Launcher calls. Platforms expose different automatable
// affordances, so each flow tries the cheapest mechanism first and degrades
// through text clicks, content-description clicks, and coordinate taps.
package resolver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/raja-blip/onetap-remote/internal/config"
	"github.com/raja-blip/onetap-remote/internal/domain"
	"github.com/raja-blip/onetap-remote/internal/ports"
)

// Settle delays. The remote device never acknowledges UI transitions, so
// flows wait out an assumed settle time before the next step. The values
// are measured approximations for the shipped 4K panel, not guarantees.
const (
	settleTypeName    = 500 * time.Millisecond
	settleInject      = 500 * time.Millisecond
	settleGoogleRetry = 1500 * time.Millisecond
	settleGoogleJoin  = 1 * time.Second
	settleConfirm     = 1500 * time.Millisecond
	settleTabClose    = 2 * time.Second
	settleBackGap     = 1 * time.Second
	settleWebexDialog = 3 * time.Second
	settleWebexInject = 1 * time.Second
	settleWebexNext   = 5 * time.Second
	settleWebexJoin   = 2 * time.Second
	settleCastHome    = 2 * time.Second
	settlePanTilt     = 300 * time.Millisecond
	settleZoom        = 150 * time.Millisecond
)

// Volume and zoom-level steps are optimistic local mirrors, clamped to the
// device's accepted ranges.
const (
	volumeStep = 10
	volumeMin  = 0
	volumeMax  = 100

	zoomStep = 5
	zoomMin  = 50
	zoomMax  = 300
)

// Session is the slice of the connection registry the resolver needs:
// room identity, sign-in markers, and the active-meeting marker.
type Session interface {
	RoomName() string
	SignedIn(platform domain.Platform) bool
	ActivePlatform() (domain.Platform, bool)
	SetActivePlatform(platform domain.Platform) error
	ClearActivePlatform() error
}

// StepError reports which step of a multi-step flow failed. The remote
// device is left in whatever state the failed step produced; there is no
// compensating rollback.
type StepError struct {
	Step   string
	Detail string
}

func (e *StepError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("step %q failed", e.Step)
	}
	return fmt.Sprintf("step %q failed: %s", e.Step, e.Detail)
}

// Resolver orchestrates meeting control over the Bridge and Launcher.
type Resolver struct {
	bridge   ports.Bridge
	launcher ports.Launcher
	session  Session
	events   ports.EventSink
	sleep    ports.Sleeper
	cfg      config.Config

	mu          sync.Mutex
	toggles     domain.ToggleState
	meetingType domain.MeetingType
	volume      int
	zoomLevel   int
	focusMode   int
	focusKnown  bool
}

func New(
	bridge ports.Bridge,
	launcher ports.Launcher,
	session Session,
	events ports.EventSink,
	sleep ports.Sleeper,
	cfg config.Config,
) *Resolver {
	return &Resolver{
		bridge:      bridge,
		launcher:    launcher,
		session:     session,
		events:      events,
		sleep:       sleep,
		cfg:         cfg,
		toggles:     domain.ToggleState{Muted: false, CameraOn: true},
		meetingType: domain.MeetingTypeScheduled,
		volume:      75,
		zoomLevel:   100,
	}
}

// Toggles returns the current optimistic toggle state.
func (r *Resolver) Toggles() domain.ToggleState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.toggles
}

func (r *Resolver) snapshot() (domain.ToggleState, domain.MeetingType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.toggles, r.meetingType
}

func (r *Resolver) setToggles(state domain.ToggleState) {
	r.mu.Lock()
	r.toggles = state
	r.mu.Unlock()
	r.events.ToggleStateChanged(state)
}

func (r *Resolver) setMeetingType(t domain.MeetingType) {
	r.mu.Lock()
	r.meetingType = t
	r.mu.Unlock()
}

func (r *Resolver) activePlatform() domain.Platform {
	platform, ok := r.session.ActivePlatform()
	if !ok {
		return domain.PlatformUnknown
	}
	return platform
}

// Wake taps the center of the panel to wake the display.
func (r *Resolver) Wake(ctx context.Context) domain.Result {
	return r.bridge.Touch(ctx, r.cfg.Geometry.WakeX, r.cfg.Geometry.WakeY)
}

// Home sends the device to its home screen.
func (r *Resolver) Home(ctx context.Context) domain.Result {
	result := r.bridge.Control(ctx, "go_home", nil)
	if !result.Success {
		r.events.ActionError(domain.ErrorCodeRemoteReject, failureDetail(result, "go_home failed"))
	}
	return result
}

// StartInstantMeeting homes the device and asks the Bridge to start an
// ad-hoc meeting on the given platform.
func (r *Resolver) StartInstantMeeting(ctx context.Context, platform domain.Platform) domain.Result {
	r.bridge.Control(ctx, "go_home", nil)

	result := r.bridge.InstantMeeting(ctx, platform)
	if !result.Success {
		r.events.ActionError(domain.ErrorCodeRemoteReject, failureDetail(result, "instant meeting failed"))
		r.events.MeetingStateChanged(domain.MeetingStateError, domain.ReasonLaunchFailed)
		return result
	}

	_ = r.session.SetActivePlatform(platform)
	r.setMeetingType(domain.MeetingTypeInstant)
	r.setToggles(domain.ToggleState{Muted: false, CameraOn: true})
	r.events.MeetingStateChanged(domain.MeetingStateInMeeting, domain.ReasonInstantStarted)
	r.events.Navigate(domain.RouteMeetingControls)
	return result
}

// ManualGoogleJoin asks the Bridge to drive a Google Meet join directly,
// bypassing the Launcher assist flow.
func (r *Resolver) ManualGoogleJoin(ctx context.Context) domain.Result {
	signedIn := r.session.SignedIn(domain.PlatformGoogleMeet)
	result := r.bridge.GoogleMeetJoin(ctx, signedIn, r.session.RoomName())
	if !result.Success {
		r.events.ActionError(domain.ErrorCodeRemoteReject, failureDetail(result, "google meet join failed"))
	}
	return result
}

func failureDetail(result domain.Result, fallback string) string {
	if msg := result.Message(); msg != "" {
		return msg
	}
	return fallback
}
