package resolver

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/raja-blip/onetap-remote/internal/domain"
)

// Calendar links arrive wrapped by mail and calendar clients. The wrappers
// below are unwrapped before platform detection so the Launcher opens the
// real meeting URL.
var owaTeamsLink = regexp.MustCompile(`https%3[aA]%2[fF]%2[fF]teams\.microsoft\.com[^&"]*`)

// UnwrapMeetingURL strips known redirect wrappers from a meeting link:
// Google's interstitial (url?q=), Outlook Safe Links (?url=), and OWA
// calendar deep links embedding an escaped Teams URL.
func UnwrapMeetingURL(raw string) string {
	if strings.Contains(raw, "google.com/url") {
		if q := queryParam(raw, "q"); q != "" {
			return q
		}
	}
	if strings.Contains(raw, "safelinks.protection.outlook.com") {
		if target := queryParam(raw, "url"); target != "" {
			return target
		}
	}
	if strings.Contains(raw, "outlook.office.com") || strings.Contains(raw, "outlook.live.com") {
		if match := owaTeamsLink.FindString(raw); match != "" {
			if unescaped, err := url.QueryUnescape(match); err == nil {
				return unescaped
			}
		}
	}
	return raw
}

func queryParam(raw, key string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return parsed.Query().Get(key)
}

// LaunchMeeting unwraps the link, detects the platform, and asks the
// Launcher to open the meeting app. On success the UI moves to the
// join-assist flow for that platform.
func (r *Resolver) LaunchMeeting(ctx context.Context, rawURL string) (domain.Platform, domain.Result) {
	meetingURL := UnwrapMeetingURL(rawURL)
	platform := domain.PlatformFromURL(meetingURL)

	r.events.MeetingStateChanged(domain.MeetingStateLaunching, domain.ReasonMeetingLaunched)

	result := r.launcher.LaunchMeeting(ctx, meetingURL, platform)
	if !result.Success {
		r.events.ActionError(domain.ErrorCodeRemoteReject, failureDetail(result, "meeting launch failed"))
		r.events.MeetingStateChanged(domain.MeetingStateError, domain.ReasonLaunchFailed)
		return platform, result
	}

	r.events.Navigate(domain.RouteJoinAssist)
	return platform, result
}
