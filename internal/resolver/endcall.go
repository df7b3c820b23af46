package resolver

import (
	"context"

	"github.com/raja-blip/onetap-remote/internal/domain"
)

// EndCall leaves the active meeting. The active-platform marker is cleared
// no matter how the remote calls fare, and the UI always ends up back home.
func (r *Resolver) EndCall(ctx context.Context) error {
	platform := r.activePlatform()
	_, meetingType := r.snapshot()

	r.events.MeetingStateChanged(domain.MeetingStateEnding, domain.ReasonMeetingEnded)

	clicked := r.launcher.ClickByContentDescription(ctx, endLabel(platform))
	if clicked.Success {
		if confirm := confirmLabel(platform); confirm != "" {
			if err := r.sleep.Sleep(ctx, settleConfirm); err != nil {
				return err
			}
			// The confirmation dialog is best effort. Some platform
			// versions skip it entirely.
			r.launcher.ClickByContentDescription(ctx, confirm)
		}
	} else {
		fallback := r.bridge.MeetingAction(ctx, "leave_call", platform, meetingType)
		if !fallback.Success {
			r.events.ActionError(domain.ErrorCodeRemoteReject, failureDetail(fallback, "leave_call failed"))
		}
	}

	_ = r.session.ClearActivePlatform()
	r.setMeetingType(domain.MeetingTypeScheduled)
	r.setToggles(domain.ToggleState{Muted: false, CameraOn: true})

	// Google Meet runs in a browser tab that survives the in-call end
	// control. Two back navigations close the tab and its parent window;
	// both are always issued once the end flow ran, whatever its outcome.
	if platform == domain.PlatformGoogleMeet {
		if err := r.sleep.Sleep(ctx, settleTabClose); err != nil {
			return err
		}
		r.bridge.Control(ctx, "go_back", nil)
		if err := r.sleep.Sleep(ctx, settleBackGap); err != nil {
			return err
		}
		r.bridge.Control(ctx, "go_back", nil)
	}

	r.events.MeetingStateChanged(domain.MeetingStateIdle, domain.ReasonMeetingEnded)
	r.events.Navigate(domain.RouteHome)
	return nil
}
