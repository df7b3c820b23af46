package remote

import (
	"context"

	"github.com/raja-blip/onetap-remote/internal/config"
	"github.com/raja-blip/onetap-remote/internal/domain"
	"github.com/raja-blip/onetap-remote/internal/ports"
)

// Bridge endpoints.
const (
	bridgeControlPath         = "/api/control"
	bridgeTouchpadPath        = "/api/touchpad"
	bridgeMeetingPath         = "/api/meeting"
	bridgeCastingPath         = "/api/casting"
	bridgeCameraModePath      = "/api/camera/mode"
	bridgeInstantMeetingPath  = "/api/instant-meeting"
	bridgeGoogleMeetSetupPath = "/api/google-meet-setup"
	bridgeGoogleMeetJoinPath  = "/api/google-meet-join"
	bridgeStatusPath          = "/api/status"
)

// BridgeClient implements ports.Bridge over HTTP.
type BridgeClient struct {
	dispatcher
}

func NewBridgeClient(endpoints Endpoints, events ports.EventSink, cfg config.Config) *BridgeClient {
	return &BridgeClient{dispatcher: newDispatcher(endpoints, events, cfg)}
}

// Control posts a navigation/camera/volume action, with optional extra
// fields merged into the body.
func (c *BridgeClient) Control(ctx context.Context, action string, extra map[string]any) domain.Result {
	body := map[string]any{"action": action}
	for k, v := range extra {
		body[k] = v
	}
	return c.post(ctx, ports.ServiceBridge, bridgeControlPath, body)
}

// Touch taps a raw screen coordinate.
func (c *BridgeClient) Touch(ctx context.Context, x, y int) domain.Result {
	return c.post(ctx, ports.ServiceBridge, bridgeTouchpadPath, map[string]any{
		"action": "click",
		"x":      x,
		"y":      y,
	})
}

// MeetingAction is the coordinate/app-state fallback path used when the
// Launcher's text-based control fails or is unavailable.
func (c *BridgeClient) MeetingAction(ctx context.Context, action string, platform domain.Platform, meetingType domain.MeetingType) domain.Result {
	return c.post(ctx, ports.ServiceBridge, bridgeMeetingPath, map[string]any{
		"action":       action,
		"app":          string(platform),
		"meeting_type": string(meetingType),
	})
}

func (c *BridgeClient) Casting(ctx context.Context, action string) domain.Result {
	return c.post(ctx, ports.ServiceBridge, bridgeCastingPath, map[string]any{"action": action})
}

// CameraMode reads the current focus mode: 0 panoramic, 1 smart framing.
func (c *BridgeClient) CameraMode(ctx context.Context) (int, bool) {
	raw, ok := c.get(ctx, ports.ServiceBridge, bridgeCameraModePath)
	if !ok || !envelopeSuccess(raw) {
		return 0, false
	}
	mode, ok := raw["mode"].(float64)
	if !ok {
		return 0, false
	}
	return int(mode), true
}

func (c *BridgeClient) InstantMeeting(ctx context.Context, platform domain.Platform) domain.Result {
	return c.post(ctx, ports.ServiceBridge, bridgeInstantMeetingPath, map[string]any{
		"platform": string(platform),
	})
}

// GoogleMeetSetup triggers device-side post-join cleanup (fullscreen, dialog
// dismissal). Fire-and-forget: the outcome appears only in the trace.
func (c *BridgeClient) GoogleMeetSetup(ctx context.Context) {
	go func() {
		_ = c.post(context.WithoutCancel(ctx), ports.ServiceBridge, bridgeGoogleMeetSetupPath, map[string]any{})
	}()
}

func (c *BridgeClient) GoogleMeetJoin(ctx context.Context, signedIn bool, roomName string) domain.Result {
	return c.post(ctx, ports.ServiceBridge, bridgeGoogleMeetJoinPath, map[string]any{
		"signedIn": signedIn,
		"roomName": roomName,
	})
}

// Status probes the Bridge and returns its advertised device name.
func (c *BridgeClient) Status(ctx context.Context) (string, bool) {
	raw, ok := c.get(ctx, ports.ServiceBridge, bridgeStatusPath)
	if !ok {
		return "", false
	}
	name, _ := raw["device_name"].(string)
	return name, true
}
