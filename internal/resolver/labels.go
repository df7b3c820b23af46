package resolver

import "github.com/raja-blip/onetap-remote/internal/domain"

// The label tables below encode which accessibility affordances each
// platform exposes. An empty label means the platform has no stable text
// for that control and the Bridge fallback is the only option.

// muteLabel returns the text to click for a mute toggle given the current
// local state. When the UI believes it is unmuted, the button on screen
// reads "Mute", and vice versa.
func muteLabel(platform domain.Platform, muted bool) string {
	switch platform {
	case domain.PlatformTeams, domain.PlatformZoom, domain.PlatformWebex:
		if muted {
			return "Unmute"
		}
		return "Mute"
	case domain.PlatformGoogleMeet:
		return ""
	default:
		return ""
	}
}

// cameraLabel returns the text to click for a camera toggle given the
// current local state.
func cameraLabel(platform domain.Platform, cameraOn bool) string {
	switch platform {
	case domain.PlatformTeams:
		if cameraOn {
			return "Turn off camera"
		}
		return "Turn on camera"
	case domain.PlatformZoom, domain.PlatformWebex:
		if cameraOn {
			return "Stop video"
		}
		return "Start video"
	case domain.PlatformGoogleMeet:
		return ""
	default:
		return ""
	}
}

// endLabel is the content description of the end-call control.
func endLabel(platform domain.Platform) string {
	switch platform {
	case domain.PlatformTeams:
		return "Hang up"
	case domain.PlatformZoom:
		return "Leave"
	case domain.PlatformWebex, domain.PlatformGoogleMeet:
		return "End call"
	default:
		return "End call"
	}
}

// confirmLabel is the content description of the confirmation that some
// platforms show after the end-call control. Empty when none appears.
func confirmLabel(platform domain.Platform) string {
	switch platform {
	case domain.PlatformZoom:
		return "Leave meeting"
	case domain.PlatformWebex:
		return "End meeting"
	case domain.PlatformTeams, domain.PlatformGoogleMeet:
		return ""
	default:
		return ""
	}
}
