package resolver

import (
	"context"

	"github.com/raja-blip/onetap-remote/internal/domain"
)

// CameraDirection is a pan/tilt direction expressed in UI terms.
type CameraDirection string

const (
	CameraUp    CameraDirection = "up"
	CameraDown  CameraDirection = "down"
	CameraLeft  CameraDirection = "left"
	CameraRight CameraDirection = "right"
	CameraReset CameraDirection = "reset"
)

// invertDirection mirrors the cardinal directions. The camera SDK's axes
// are mirrored relative to the panel, so the UI's left is the device's
// right and the UI's up is the device's down. Reset passes through.
func invertDirection(d CameraDirection) CameraDirection {
	switch d {
	case CameraLeft:
		return CameraRight
	case CameraRight:
		return CameraLeft
	case CameraUp:
		return CameraDown
	case CameraDown:
		return CameraUp
	default:
		return d
	}
}

// MoveCamera starts a pan/tilt in the given UI direction, then stops the
// continuous motion after a short settle. Reset is a single positioning
// command with no stop.
func (r *Resolver) MoveCamera(ctx context.Context, direction CameraDirection) domain.Result {
	result := r.bridge.Control(ctx, "camera_"+string(invertDirection(direction)), nil)
	if !result.Success {
		r.events.ActionError(domain.ErrorCodeRemoteReject, failureDetail(result, "camera move failed"))
		return result
	}
	if direction == CameraReset {
		return result
	}
	if err := r.sleep.Sleep(ctx, settlePanTilt); err != nil {
		return result
	}
	r.bridge.Control(ctx, "camera_stop", nil)
	return result
}

// ZoomCamera nudges the optical zoom one step and stops it after a settle.
// The level sent alongside is the optimistic local mirror.
func (r *Resolver) ZoomCamera(ctx context.Context, in bool) (int, domain.Result) {
	action := "zoom_out"
	step := -zoomStep
	if in {
		action = "zoom_in"
		step = zoomStep
	}

	r.mu.Lock()
	r.zoomLevel = clamp(r.zoomLevel+step, zoomMin, zoomMax)
	level := r.zoomLevel
	r.mu.Unlock()

	result := r.bridge.Control(ctx, action, map[string]any{"level": level})
	if !result.Success {
		r.events.ActionError(domain.ErrorCodeRemoteReject, failureDetail(result, action+" failed"))
		return level, result
	}
	if err := r.sleep.Sleep(ctx, settleZoom); err != nil {
		return level, result
	}
	r.bridge.Control(ctx, "zoom_stop", nil)
	return level, result
}

// StepVolume raises or lowers the device volume by one step. The returned
// value is the optimistic local mirror sent with the command.
func (r *Resolver) StepVolume(ctx context.Context, up bool) (int, domain.Result) {
	action := "volume_down"
	step := -volumeStep
	if up {
		action = "volume_up"
		step = volumeStep
	}

	r.mu.Lock()
	r.volume = clamp(r.volume+step, volumeMin, volumeMax)
	value := r.volume
	r.mu.Unlock()

	result := r.bridge.Control(ctx, action, map[string]any{"value": value})
	if !result.Success {
		r.events.ActionError(domain.ErrorCodeRemoteReject, failureDetail(result, action+" failed"))
	}
	return value, result
}

// ToggleFocusMode flips the camera between panoramic (0) and smart-focus
// (1) framing. The first toggle seeds the local mirror from the device.
func (r *Resolver) ToggleFocusMode(ctx context.Context) (int, domain.Result) {
	r.mu.Lock()
	known := r.focusKnown
	current := r.focusMode
	r.mu.Unlock()

	if !known {
		if mode, ok := r.bridge.CameraMode(ctx); ok {
			current = mode
		} else {
			current = 0
		}
	}

	next := 1 - current
	result := r.bridge.Control(ctx, "focus_mode", map[string]any{"mode": next})
	if !result.Success {
		r.events.ActionError(domain.ErrorCodeRemoteReject, failureDetail(result, "focus mode failed"))
		return current, result
	}

	r.mu.Lock()
	r.focusMode = next
	r.focusKnown = true
	r.mu.Unlock()
	return next, result
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
