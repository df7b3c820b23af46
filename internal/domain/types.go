package domain

import "strings"

// Platform identifies the videoconferencing app running on the room device.
type Platform string

const (
	PlatformTeams      Platform = "teams"
	PlatformGoogleMeet Platform = "google"
	PlatformZoom       Platform = "zoom"
	PlatformWebex      Platform = "webex"
	PlatformUnknown    Platform = "unknown"
)

// ParsePlatform normalizes a stored or caller-provided platform name.
// "meet" is a legacy alias for Google Meet kept for old persisted markers.
func ParsePlatform(s string) Platform {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "teams":
		return PlatformTeams
	case "google", "meet":
		return PlatformGoogleMeet
	case "zoom":
		return PlatformZoom
	case "webex":
		return PlatformWebex
	default:
		return PlatformUnknown
	}
}

// PlatformFromURL derives the platform from a meeting link's domain.
func PlatformFromURL(link string) Platform {
	switch {
	case strings.Contains(link, "teams.microsoft.com"), strings.Contains(link, "teams.live.com"):
		return PlatformTeams
	case strings.Contains(link, "meet.google.com"):
		return PlatformGoogleMeet
	case strings.Contains(link, "zoom.us"):
		return PlatformZoom
	case strings.Contains(link, "webex.com"):
		return PlatformWebex
	default:
		return PlatformUnknown
	}
}

// MeetingType distinguishes scheduled joins from instant meetings in the
// Bridge's coordinate lookups.
type MeetingType string

const (
	MeetingTypeScheduled MeetingType = "scheduled"
	MeetingTypeInstant   MeetingType = "instant"
)

// ToggleState is the optimistic local mirror of the remote mute/camera state.
type ToggleState struct {
	Muted    bool `json:"muted"`
	CameraOn bool `json:"cameraOn"`
}

// MeetingStatus is derived from the meeting's time bounds, never stored.
type MeetingStatus string

const (
	MeetingStatusUpcoming  MeetingStatus = "upcoming"
	MeetingStatusLive      MeetingStatus = "live"
	MeetingStatusCompleted MeetingStatus = "completed"
)

// Meeting is a calendar entry reported by the Launcher's UI state.
type Meeting struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	StartTime int64         `json:"startTime"`
	EndTime   int64         `json:"endTime"`
	Link      string        `json:"link"`
	Platform  Platform      `json:"platform"`
	Status    MeetingStatus `json:"status"`
}

// StatusAt derives the meeting status for the given instant in epoch-ms.
func (m Meeting) StatusAt(nowMillis int64) MeetingStatus {
	switch {
	case nowMillis >= m.StartTime && nowMillis <= m.EndTime:
		return MeetingStatusLive
	case nowMillis > m.EndTime:
		return MeetingStatusCompleted
	default:
		return MeetingStatusUpcoming
	}
}

// Result is the uniform outcome of one dispatched remote command. Ordinary
// remote failures never surface as errors, only as Success=false.
type Result struct {
	Success bool           `json:"success"`
	Raw     map[string]any `json:"raw,omitempty"`
}

// Message returns the remote-provided message, when present.
func (r Result) Message() string {
	if r.Raw == nil {
		return ""
	}
	if s, ok := r.Raw["message"].(string); ok {
		return s
	}
	return ""
}

// MeetingState models the meeting-session lifecycle reported to the UI.
type MeetingState string

const (
	MeetingStateIdle      MeetingState = "idle"
	MeetingStateLaunching MeetingState = "launching"
	MeetingStateJoining   MeetingState = "joining"
	MeetingStateInMeeting MeetingState = "in_meeting"
	MeetingStateEnding    MeetingState = "ending"
	MeetingStateError     MeetingState = "error"
)

// StateReason provides a structured reason for state transitions.
type StateReason string

const (
	ReasonReady           StateReason = "ready"
	ReasonMeetingLaunched StateReason = "meeting_launched"
	ReasonJoinStarted     StateReason = "join_started"
	ReasonJoinCompleted   StateReason = "join_completed"
	ReasonJoinStepFailed  StateReason = "join_step_failed"
	ReasonToggleApplied   StateReason = "toggle_applied"
	ReasonDesyncCorrected StateReason = "desync_corrected"
	ReasonFallbackUsed    StateReason = "fallback_used"
	ReasonMeetingEnded    StateReason = "meeting_ended"
	ReasonInstantStarted  StateReason = "instant_started"
	ReasonCastingStarted  StateReason = "casting_started"
	ReasonLaunchFailed    StateReason = "launch_failed"
	ReasonControlFailed   StateReason = "control_failed"
)

// ErrorCode identifies the failure taxonomy surfaced to the UI.
type ErrorCode string

const (
	ErrorCodeStartup      ErrorCode = "startup"
	ErrorCodeConfig       ErrorCode = "config"
	ErrorCodeReachability ErrorCode = "reachability"
	ErrorCodeRemoteReject ErrorCode = "remote_reject"
	ErrorCodeDesync       ErrorCode = "desync"
	ErrorCodeStepFailed   ErrorCode = "step_failed"
)

// Route names a UI destination. Navigation is an emitted event; the backend
// has no navigation stack of its own.
type Route string

const (
	RouteHome            Route = "/"
	RouteMeetingControls Route = "/meeting-controls"
	RouteJoinAssist      Route = "/join-meeting-assist"
	RouteCalendar        Route = "/calendar"
	RouteCasting         Route = "/casting"
)

// CommandTrace is the per-dispatch diagnostic record. It distinguishes a
// timeout from a refused connection even though the Result does not.
type CommandTrace struct {
	RequestID string `json:"requestId"`
	Service   string `json:"service"`
	Operation string `json:"operation"`
	Target    string `json:"target"`
	Outcome   string `json:"outcome"`
	Detail    string `json:"detail,omitempty"`
}

// Trace outcomes.
const (
	TraceOK      = "ok"
	TraceReject  = "rejected"
	TraceTimeout = "timeout"
	TraceRefused = "refused"
	TraceBadBody = "bad_body"
)

// JoinReport is returned once a join-assist sequence finishes.
type JoinReport struct {
	Platform Platform `json:"platform"`
	SignedIn bool     `json:"signedIn"`
	Joined   bool     `json:"joined"`
	Step     string   `json:"step,omitempty"`
}
