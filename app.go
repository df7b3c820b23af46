package main

import (
	"context"
	"fmt"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/raja-blip/onetap-remote/internal/bootstrap"
	"github.com/raja-blip/onetap-remote/internal/config"
	"github.com/raja-blip/onetap-remote/internal/domain"
	"github.com/raja-blip/onetap-remote/internal/ports"
	"github.com/raja-blip/onetap-remote/internal/registry"
	"github.com/raja-blip/onetap-remote/internal/resolver"
)

const (
	eventState    = "onetap:state"
	eventToggles  = "onetap:toggles"
	eventError    = "onetap:error"
	eventNavigate = "onetap:navigate"
	eventTrace    = "onetap:trace"
)

// App is the Wails application root.
type App struct {
	ctx context.Context

	resolver *resolver.Resolver
	registry *registry.Registry
	launcher ports.Launcher
	bridge   ports.Bridge
	cfg      config.Config
	bootErr  error
}

func NewApp() *App {
	return &App{}
}

func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	services, err := bootstrap.Build(a)
	if err != nil {
		a.bootErr = err
		a.ActionError(domain.ErrorCodeStartup, err.Error())
		return
	}

	a.resolver = services.Resolver
	a.registry = services.Registry
	a.launcher = services.Launcher
	a.bridge = services.Bridge
	a.cfg = services.Config
	a.MeetingStateChanged(domain.MeetingStateIdle, domain.ReasonReady)
}

// ToggleMute flips the mute state of the active meeting.
func (a *App) ToggleMute() (domain.ToggleState, error) {
	if err := a.requireReady(); err != nil {
		return domain.ToggleState{}, err
	}
	return a.resolver.ToggleMute(a.ctx), nil
}

// ToggleCamera flips the camera state of the active meeting.
func (a *App) ToggleCamera() (domain.ToggleState, error) {
	if err := a.requireReady(); err != nil {
		return domain.ToggleState{}, err
	}
	return a.resolver.ToggleCamera(a.ctx), nil
}

// GetToggles returns the current optimistic toggle state.
func (a *App) GetToggles() domain.ToggleState {
	if a.resolver == nil {
		return domain.ToggleState{CameraOn: true}
	}
	return a.resolver.Toggles()
}

// EndCall leaves the active meeting and returns the UI home.
func (a *App) EndCall() error {
	if err := a.requireReady(); err != nil {
		return err
	}
	return a.resolver.EndCall(a.ctx)
}

// LaunchMeeting opens a meeting link on the device and returns the
// detected platform for the join-assist screen.
func (a *App) LaunchMeeting(meetingURL string) (string, error) {
	if err := a.requireReady(); err != nil {
		return "", err
	}
	platform, result := a.resolver.LaunchMeeting(a.ctx, meetingURL)
	if !result.Success {
		return string(platform), fmt.Errorf("meeting launch failed")
	}
	return string(platform), nil
}

// JoinMeeting runs the platform join-assist sequence.
func (a *App) JoinMeeting(platform string) (domain.JoinReport, error) {
	if err := a.requireReady(); err != nil {
		return domain.JoinReport{}, err
	}
	return a.resolver.JoinAssist(a.ctx, domain.ParsePlatform(platform))
}

// StartInstantMeeting starts an ad-hoc meeting on the given platform.
func (a *App) StartInstantMeeting(platform string) error {
	if err := a.requireReady(); err != nil {
		return err
	}
	if result := a.resolver.StartInstantMeeting(a.ctx, domain.ParsePlatform(platform)); !result.Success {
		return fmt.Errorf("instant meeting failed")
	}
	return nil
}

// ManualGoogleJoin drives a Google Meet join through the Bridge directly.
func (a *App) ManualGoogleJoin() error {
	if err := a.requireReady(); err != nil {
		return err
	}
	if result := a.resolver.ManualGoogleJoin(a.ctx); !result.Success {
		return fmt.Errorf("google meet join failed")
	}
	return nil
}

// GetMeetings fetches today's calendar from the Launcher.
func (a *App) GetMeetings() ([]domain.Meeting, error) {
	if err := a.requireReady(); err != nil {
		return nil, err
	}
	return a.launcher.UIState(a.ctx)
}

// WakeDevice taps the panel center to wake the display.
func (a *App) WakeDevice() error {
	if err := a.requireReady(); err != nil {
		return err
	}
	a.resolver.Wake(a.ctx)
	return nil
}

// GoHome sends the device to its home screen.
func (a *App) GoHome() error {
	if err := a.requireReady(); err != nil {
		return err
	}
	a.resolver.Home(a.ctx)
	return nil
}

// MoveCamera pans or tilts the camera in a UI direction, or recenters it.
func (a *App) MoveCamera(direction string) error {
	if err := a.requireReady(); err != nil {
		return err
	}
	a.resolver.MoveCamera(a.ctx, resolver.CameraDirection(direction))
	return nil
}

// ZoomCamera nudges the camera zoom and returns the mirrored level.
func (a *App) ZoomCamera(in bool) (int, error) {
	if err := a.requireReady(); err != nil {
		return 0, err
	}
	level, _ := a.resolver.ZoomCamera(a.ctx, in)
	return level, nil
}

// StepVolume adjusts the device volume and returns the mirrored value.
func (a *App) StepVolume(up bool) (int, error) {
	if err := a.requireReady(); err != nil {
		return 0, err
	}
	value, _ := a.resolver.StepVolume(a.ctx, up)
	return value, nil
}

// ToggleFocusMode flips the camera framing mode and returns the new mode.
func (a *App) ToggleFocusMode() (int, error) {
	if err := a.requireReady(); err != nil {
		return 0, err
	}
	mode, _ := a.resolver.ToggleFocusMode(a.ctx)
	return mode, nil
}

// StartCasting opens the screen-cast app on the device.
func (a *App) StartCasting() error {
	if err := a.requireReady(); err != nil {
		return err
	}
	if result := a.resolver.StartCasting(a.ctx); !result.Success {
		return fmt.Errorf("casting failed to start")
	}
	return nil
}

// ViewCastScreen switches the device to the cast-preview surface.
func (a *App) ViewCastScreen() error {
	if err := a.requireReady(); err != nil {
		return err
	}
	a.resolver.ViewCastScreen(a.ctx)
	return nil
}

// SetCastFullscreen enters or leaves fullscreen cast view.
func (a *App) SetCastFullscreen(on bool) error {
	if err := a.requireReady(); err != nil {
		return err
	}
	a.resolver.SetCastFullscreen(a.ctx, on)
	return nil
}

// SaveEndpoint persists a remote endpoint from the settings screen.
func (a *App) SaveEndpoint(service, host, port string) error {
	if err := a.requireReady(); err != nil {
		return err
	}
	return a.registry.SetEndpoint(ports.Service(service), ports.Endpoint{Host: host, Port: port})
}

// TestConnection probes the service's status endpoint.
func (a *App) TestConnection(service string) bool {
	if a.registry == nil {
		return false
	}
	return a.registry.TestReachability(a.ctx, ports.Service(service))
}

// ScanForBridge sweeps the subnet around the configured Bridge address and
// returns the first responding host.
func (a *App) ScanForBridge() (string, error) {
	if err := a.requireReady(); err != nil {
		return "", err
	}
	ep, err := a.registry.ScanSubnet(a.ctx)
	if err != nil {
		a.ActionError(domain.ErrorCodeReachability, err.Error())
		return "", err
	}
	return ep.Host, nil
}

// SetRoomName persists the room display name.
func (a *App) SetRoomName(name string) error {
	if err := a.requireReady(); err != nil {
		return err
	}
	return a.registry.SetRoomName(name)
}

// SetSignedIn records whether the device holds a signed-in session for a
// platform, steering the join-assist flow.
func (a *App) SetSignedIn(platform string, signedIn bool) error {
	if err := a.requireReady(); err != nil {
		return err
	}
	return a.registry.SetSignedIn(domain.ParsePlatform(platform), signedIn)
}

// GetRuntimeInfo returns non-sensitive config for the UI.
func (a *App) GetRuntimeInfo() map[string]string {
	if a.bootErr != nil {
		return map[string]string{"error": a.bootErr.Error()}
	}
	if a.registry == nil {
		return map[string]string{}
	}

	bridge := a.registry.Endpoint(ports.ServiceBridge)
	launcher := a.registry.Endpoint(ports.ServiceLauncher)
	return map[string]string{
		"roomName":     a.registry.RoomName(),
		"bridgeHost":   bridge.Host,
		"bridgePort":   bridge.Port,
		"launcherHost": launcher.Host,
		"launcherPort": launcher.Port,
	}
}

func (a *App) requireReady() error {
	if a.bootErr != nil {
		return a.bootErr
	}
	if a.resolver == nil {
		return fmt.Errorf("application is not initialized")
	}
	return nil
}

// MeetingStateChanged emits meeting lifecycle updates to the frontend.
func (a *App) MeetingStateChanged(state domain.MeetingState, reason domain.StateReason) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventState, map[string]string{
		"state":   string(state),
		"reason":  string(reason),
		"message": stateReasonMessage(reason),
	})
}

// ToggleStateChanged emits the optimistic toggle mirror.
func (a *App) ToggleStateChanged(state domain.ToggleState) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventToggles, state)
}

// ActionError emits backend errors to the UI.
func (a *App) ActionError(code domain.ErrorCode, detail string) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventError, map[string]string{
		"code":    string(code),
		"message": errorMessage(code, detail),
		"detail":  detail,
	})
}

// Navigate asks the frontend to move to a route.
func (a *App) Navigate(route domain.Route) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventNavigate, map[string]string{"route": string(route)})
}

// CommandTrace emits per-dispatch diagnostics for the debug overlay.
func (a *App) CommandTrace(trace domain.CommandTrace) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventTrace, trace)
}

func stateReasonMessage(reason domain.StateReason) string {
	switch reason {
	case domain.ReasonReady:
		return "Ready"
	case domain.ReasonMeetingLaunched:
		return "Opening meeting on the room device"
	case domain.ReasonJoinStarted:
		return "Joining meeting"
	case domain.ReasonJoinCompleted:
		return "Joined meeting"
	case domain.ReasonJoinStepFailed:
		return "Join sequence failed"
	case domain.ReasonToggleApplied:
		return "Control applied"
	case domain.ReasonDesyncCorrected:
		return "Control state re-synced"
	case domain.ReasonFallbackUsed:
		return "Control applied via device fallback"
	case domain.ReasonMeetingEnded:
		return "Meeting ended"
	case domain.ReasonInstantStarted:
		return "Instant meeting started"
	case domain.ReasonCastingStarted:
		return "Screen casting started"
	case domain.ReasonLaunchFailed:
		return "Could not open the meeting"
	case domain.ReasonControlFailed:
		return "Control failed"
	default:
		return ""
	}
}

func errorMessage(code domain.ErrorCode, detail string) string {
	switch code {
	case domain.ErrorCodeStartup:
		return "Startup failed"
	case domain.ErrorCodeConfig:
		return "Check connection settings"
	case domain.ErrorCodeReachability:
		return "Room device is unreachable"
	case domain.ErrorCodeRemoteReject:
		return "The room device rejected the command"
	case domain.ErrorCodeDesync:
		return "Control state was out of sync"
	case domain.ErrorCodeStepFailed:
		return "A join step failed"
	default:
		if detail == "" {
			return "Unknown error"
		}
		return detail
	}
}
