package resolver

import (
	"context"

	"github.com/raja-blip/onetap-remote/internal/domain"
)

// ToggleMute flips the mute state of the active meeting. See toggle for the
// text-click / opposite-label / Bridge-fallback ladder.
func (r *Resolver) ToggleMute(ctx context.Context) domain.ToggleState {
	return r.toggle(ctx, "toggle_mute",
		func(p domain.Platform, s domain.ToggleState) string { return muteLabel(p, s.Muted) },
		func(s domain.ToggleState) domain.ToggleState { s.Muted = !s.Muted; return s },
	)
}

// ToggleCamera flips the camera state of the active meeting.
func (r *Resolver) ToggleCamera(ctx context.Context) domain.ToggleState {
	return r.toggle(ctx, "toggle_camera",
		func(p domain.Platform, s domain.ToggleState) string { return cameraLabel(p, s.CameraOn) },
		func(s domain.ToggleState) domain.ToggleState { s.CameraOn = !s.CameraOn; return s },
	)
}

// toggle resolves one mute/camera gesture:
//
//  1. Click the label matching the current local state. Success confirms
//     the expected transition, so the local bit flips.
//  2. On failure, click the opposite label. Success there means the local
//     state was already out of sync and the click just moved the remote
//     back in line with what the UI already believed, so nothing flips.
//  3. Otherwise fall back to the Bridge's coordinate/app-state path. The
//     local bit flips even when the fallback reports failure, matching the
//     shipped behavior, unless RequireFallbackAck is set.
func (r *Resolver) toggle(
	ctx context.Context,
	fallbackAction string,
	labelFor func(domain.Platform, domain.ToggleState) string,
	flip func(domain.ToggleState) domain.ToggleState,
) domain.ToggleState {
	platform := r.activePlatform()
	state, meetingType := r.snapshot()

	if expected := labelFor(platform, state); expected != "" {
		if r.launcher.ClickByText(ctx, expected).Success {
			next := flip(state)
			r.setToggles(next)
			r.events.MeetingStateChanged(domain.MeetingStateInMeeting, domain.ReasonToggleApplied)
			return next
		}

		opposite := labelFor(platform, flip(state))
		if opposite != "" && r.launcher.ClickByText(ctx, opposite).Success {
			r.events.MeetingStateChanged(domain.MeetingStateInMeeting, domain.ReasonDesyncCorrected)
			return state
		}
	}

	result := r.bridge.MeetingAction(ctx, fallbackAction, platform, meetingType)
	if !result.Success {
		r.events.ActionError(domain.ErrorCodeRemoteReject, failureDetail(result, fallbackAction+" fallback failed"))
		if r.cfg.Behavior.RequireFallbackAck {
			return state
		}
	}

	next := flip(state)
	r.setToggles(next)
	r.events.MeetingStateChanged(domain.MeetingStateInMeeting, domain.ReasonFallbackUsed)
	return next
}
