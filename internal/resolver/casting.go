package resolver

import (
	"context"

	"github.com/raja-blip/onetap-remote/internal/domain"
)

// StartCasting homes the device and opens the screen-cast app, preferring
// the accessible control and falling back to the Bridge's app launcher.
func (r *Resolver) StartCasting(ctx context.Context) domain.Result {
	r.bridge.Control(ctx, "go_home", nil)
	if err := r.sleep.Sleep(ctx, settleCastHome); err != nil {
		return domain.Result{}
	}

	result := r.launcher.ClickByContentDescription(ctx, "Cast Screen")
	if !result.Success {
		result = r.bridge.Casting(ctx, "open_cast_app")
	}
	if !result.Success {
		r.events.ActionError(domain.ErrorCodeRemoteReject, failureDetail(result, "cast app failed to open"))
		return result
	}

	r.events.MeetingStateChanged(domain.MeetingStateInMeeting, domain.ReasonCastingStarted)
	r.events.Navigate(domain.RouteCasting)
	return result
}

// ViewCastScreen switches the device to the cast-preview surface.
func (r *Resolver) ViewCastScreen(ctx context.Context) domain.Result {
	result := r.bridge.Casting(ctx, "view_screen")
	if !result.Success {
		r.events.ActionError(domain.ErrorCodeRemoteReject, failureDetail(result, "view_screen failed"))
	}
	return result
}

// SetCastFullscreen enters or leaves fullscreen cast view. Leaving is a
// plain back navigation; the cast surface has no explicit exit control.
func (r *Resolver) SetCastFullscreen(ctx context.Context, on bool) domain.Result {
	if on {
		return r.bridge.Casting(ctx, "full_screen")
	}
	return r.bridge.Control(ctx, "go_back", nil)
}
