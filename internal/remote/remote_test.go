package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/raja-blip/onetap-remote/internal/config"
	"github.com/raja-blip/onetap-remote/internal/domain"
	"github.com/raja-blip/onetap-remote/internal/ports"
)

type staticEndpoints struct {
	bridge   ports.Endpoint
	launcher ports.Endpoint
}

func (s staticEndpoints) Endpoint(service ports.Service) ports.Endpoint {
	if service == ports.ServiceLauncher {
		return s.launcher
	}
	return s.bridge
}

type traceSink struct {
	mu     sync.Mutex
	traces []domain.CommandTrace
}

func (t *traceSink) MeetingStateChanged(domain.MeetingState, domain.StateReason) {}
func (t *traceSink) ToggleStateChanged(domain.ToggleState)                       {}
func (t *traceSink) ActionError(domain.ErrorCode, string)                        {}
func (t *traceSink) Navigate(domain.Route)                                       {}

func (t *traceSink) CommandTrace(trace domain.CommandTrace) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.traces = append(t.traces, trace)
}

func (t *traceSink) last(tb testing.TB) domain.CommandTrace {
	tb.Helper()
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.traces) == 0 {
		tb.Fatal("no traces recorded")
	}
	return t.traces[len(t.traces)-1]
}

func endpointFor(tb testing.TB, server *httptest.Server) ports.Endpoint {
	tb.Helper()
	parsed, err := url.Parse(server.URL)
	if err != nil {
		tb.Fatalf("bad test server url: %v", err)
	}
	return ports.Endpoint{Host: parsed.Hostname(), Port: parsed.Port()}
}

func testCfg() config.Config {
	return config.Config{
		Bridge:   config.BridgeConfig{Timeout: 2 * time.Second},
		Launcher: config.LauncherConfig{Timeout: 2 * time.Second},
	}
}

func TestEnvelopeSuccess(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  map[string]any
		want bool
	}{
		{map[string]any{"status": "success"}, true},
		{map[string]any{"success": true}, true},
		{map[string]any{"status": "error"}, false},
		{map[string]any{"success": false}, false},
		{map[string]any{}, false},
		{nil, false},
	}
	for _, tc := range cases {
		if got := envelopeSuccess(tc.raw); got != tc.want {
			t.Fatalf("envelopeSuccess(%v) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestBridgeControlBodyAndSuccess(t *testing.T) {
	t.Parallel()

	var body map[string]any
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/control" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		requestID = r.Header.Get("X-Request-ID")
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "success"})
	}))
	defer server.Close()

	sink := &traceSink{}
	client := NewBridgeClient(staticEndpoints{bridge: endpointFor(t, server)}, sink, testCfg())

	result := client.Control(context.Background(), "focus_mode", map[string]any{"mode": 1})
	if !result.Success {
		t.Fatalf("expected success: %+v", result)
	}
	if body["action"] != "focus_mode" || body["mode"] != float64(1) {
		t.Fatalf("unexpected body: %v", body)
	}
	if requestID == "" {
		t.Fatalf("request ID header missing")
	}

	trace := sink.last(t)
	if trace.Outcome != domain.TraceOK || trace.RequestID != requestID {
		t.Fatalf("unexpected trace: %+v", trace)
	}
}

func TestBridgeTouchBody(t *testing.T) {
	t.Parallel()

	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/touchpad" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "success"})
	}))
	defer server.Close()

	client := NewBridgeClient(staticEndpoints{bridge: endpointFor(t, server)}, &traceSink{}, testCfg())
	if !client.Touch(context.Background(), 1920, 1080).Success {
		t.Fatalf("expected success")
	}
	if body["action"] != "click" || body["x"] != float64(1920) || body["y"] != float64(1080) {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestBridgeMeetingActionBody(t *testing.T) {
	t.Parallel()

	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "success"})
	}))
	defer server.Close()

	client := NewBridgeClient(staticEndpoints{bridge: endpointFor(t, server)}, &traceSink{}, testCfg())
	client.MeetingAction(context.Background(), "toggle_mute", domain.PlatformZoom, domain.MeetingTypeScheduled)
	if body["action"] != "toggle_mute" || body["app"] != "zoom" || body["meeting_type"] != "scheduled" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestBridgeRejectionCarriesRemoteMessage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "error", "message": "camera busy"})
	}))
	defer server.Close()

	sink := &traceSink{}
	client := NewBridgeClient(staticEndpoints{bridge: endpointFor(t, server)}, sink, testCfg())

	result := client.Control(context.Background(), "camera_left", nil)
	if result.Success {
		t.Fatalf("expected rejection")
	}
	if result.Message() != "camera busy" {
		t.Fatalf("remote message lost: %q", result.Message())
	}
	trace := sink.last(t)
	if trace.Outcome != domain.TraceReject || trace.Detail != "camera busy" {
		t.Fatalf("unexpected trace: %+v", trace)
	}
}

func TestBridgeNon2xxIsFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "success"})
	}))
	defer server.Close()

	client := NewBridgeClient(staticEndpoints{bridge: endpointFor(t, server)}, &traceSink{}, testCfg())
	if client.Control(context.Background(), "go_home", nil).Success {
		t.Fatalf("non-2xx must fail even with a success body")
	}
}

func TestBridgeMalformedBodyIsFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	sink := &traceSink{}
	client := NewBridgeClient(staticEndpoints{bridge: endpointFor(t, server)}, sink, testCfg())
	if client.Control(context.Background(), "go_home", nil).Success {
		t.Fatalf("malformed body must fail")
	}
	if sink.last(t).Outcome != domain.TraceBadBody {
		t.Fatalf("unexpected trace: %+v", sink.last(t))
	}
}

func TestBridgeTimeoutDistinguishedInTrace(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "success"})
	}))
	defer server.Close()

	cfg := testCfg()
	cfg.Bridge.Timeout = 50 * time.Millisecond

	sink := &traceSink{}
	client := NewBridgeClient(staticEndpoints{bridge: endpointFor(t, server)}, sink, cfg)
	if client.Control(context.Background(), "go_home", nil).Success {
		t.Fatalf("expected timeout failure")
	}
	if sink.last(t).Outcome != domain.TraceTimeout {
		t.Fatalf("unexpected trace outcome: %+v", sink.last(t))
	}
}

func TestBridgeRefusedDistinguishedInTrace(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ep := endpointFor(t, server)
	server.Close()

	sink := &traceSink{}
	client := NewBridgeClient(staticEndpoints{bridge: ep}, sink, testCfg())
	if client.Control(context.Background(), "go_home", nil).Success {
		t.Fatalf("expected refused failure")
	}
	if sink.last(t).Outcome != domain.TraceRefused {
		t.Fatalf("unexpected trace outcome: %+v", sink.last(t))
	}
}

func TestBridgeCameraMode(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "success", "mode": 1})
	}))
	defer server.Close()

	client := NewBridgeClient(staticEndpoints{bridge: endpointFor(t, server)}, &traceSink{}, testCfg())
	mode, ok := client.CameraMode(context.Background())
	if !ok || mode != 1 {
		t.Fatalf("unexpected camera mode: %d %v", mode, ok)
	}
}

func TestBridgeStatusDeviceName(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/status" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"device_name": "VC Bridge"})
	}))
	defer server.Close()

	client := NewBridgeClient(staticEndpoints{bridge: endpointFor(t, server)}, &traceSink{}, testCfg())
	name, ok := client.Status(context.Background())
	if !ok || name != "VC Bridge" {
		t.Fatalf("unexpected status: %q %v", name, ok)
	}
}

func TestBridgeGoogleMeetSetupFireAndForget(t *testing.T) {
	t.Parallel()

	hit := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit <- r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "success"})
	}))
	defer server.Close()

	client := NewBridgeClient(staticEndpoints{bridge: endpointFor(t, server)}, &traceSink{}, testCfg())
	client.GoogleMeetSetup(context.Background())

	select {
	case path := <-hit:
		if path != "/api/google-meet-setup" {
			t.Fatalf("unexpected path %q", path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("setup request never arrived")
	}
}

func TestLauncherCommandEnvelopes(t *testing.T) {
	t.Parallel()

	var bodies []map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/commands/send" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		bodies = append(bodies, body)
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "success"})
	}))
	defer server.Close()

	client := NewLauncherClient(staticEndpoints{launcher: endpointFor(t, server)}, &traceSink{}, testCfg())
	ctx := context.Background()

	client.ClickByText(ctx, "Join now")
	client.ClickByContentDescription(ctx, "End call")
	client.InjectText(ctx, "Room 3")
	client.LaunchMeeting(ctx, "https://meet.google.com/abc", domain.PlatformGoogleMeet)

	want := []struct {
		commandType string
		key         string
		value       string
	}{
		{"click_by_text", "clickText", "Join now"},
		{"click_by_content_description", "contentDescription", "End call"},
		{"text_injection", "textToInject", "Room 3"},
		{"meeting_launch", "meetingUrl", "https://meet.google.com/abc"},
	}
	if len(bodies) != len(want) {
		t.Fatalf("expected %d commands, got %d", len(want), len(bodies))
	}
	for i, w := range want {
		if bodies[i]["type"] != w.commandType {
			t.Fatalf("command %d: type %v, want %s", i, bodies[i]["type"], w.commandType)
		}
		payload, _ := bodies[i]["payload"].(map[string]any)
		if payload[w.key] != w.value {
			t.Fatalf("command %d: payload %v, want %s=%s", i, payload, w.key, w.value)
		}
	}
	launchPayload, _ := bodies[3]["payload"].(map[string]any)
	if launchPayload["meetingType"] != "google" {
		t.Fatalf("meeting_launch payload missing type: %v", launchPayload)
	}
}

func TestLauncherUIStateDerivesPlatformAndStatus(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	nowMs := now.UnixMilli()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ui/state" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"meetings": []map[string]any{
				{
					"id":        42,
					"title":     "Standup",
					"startTime": nowMs - 60_000,
					"endTime":   nowMs + 60_000,
					"link":      "https://us02web.zoom.us/j/1",
				},
				{
					"startTime": nowMs + 3_600_000,
					"endTime":   nowMs + 7_200_000,
					"link":      "https://meet.google.com/abc",
				},
				{
					"id":        "done",
					"title":     "Retro",
					"startTime": nowMs - 7_200_000,
					"endTime":   nowMs - 3_600_000,
					"link":      "https://example.com/x",
				},
			},
		})
	}))
	defer server.Close()

	client := NewLauncherClient(staticEndpoints{launcher: endpointFor(t, server)}, &traceSink{}, testCfg())
	client.now = func() time.Time { return now }

	meetings, err := client.UIState(context.Background())
	if err != nil {
		t.Fatalf("ui state failed: %v", err)
	}
	if len(meetings) != 3 {
		t.Fatalf("expected 3 meetings, got %d", len(meetings))
	}

	if meetings[0].ID != "42" || meetings[0].Platform != domain.PlatformZoom || meetings[0].Status != domain.MeetingStatusLive {
		t.Fatalf("unexpected first meeting: %+v", meetings[0])
	}
	if meetings[1].ID != "1" || meetings[1].Title != "Untitled Meeting" {
		t.Fatalf("missing fields not defaulted: %+v", meetings[1])
	}
	if meetings[1].Platform != domain.PlatformGoogleMeet || meetings[1].Status != domain.MeetingStatusUpcoming {
		t.Fatalf("unexpected second meeting: %+v", meetings[1])
	}
	if meetings[2].Platform != domain.PlatformUnknown || meetings[2].Status != domain.MeetingStatusCompleted {
		t.Fatalf("unexpected third meeting: %+v", meetings[2])
	}
}

func TestLauncherUIStateUnreachable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ep := endpointFor(t, server)
	server.Close()

	client := NewLauncherClient(staticEndpoints{launcher: ep}, &traceSink{}, testCfg())
	if _, err := client.UIState(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLauncherDumpTextFallbacks(t *testing.T) {
	t.Parallel()

	responses := []map[string]any{
		{"status": "success", "text": "Join now Mute"},
		{"status": "success", "message": "no dump available"},
	}
	var call int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(responses[call])
		call++
	}))
	defer server.Close()

	client := NewLauncherClient(staticEndpoints{launcher: endpointFor(t, server)}, &traceSink{}, testCfg())

	text, err := client.DumpText(context.Background())
	if err != nil || text != "Join now Mute" {
		t.Fatalf("unexpected dump: %q %v", text, err)
	}
	text, err = client.DumpText(context.Background())
	if err != nil || text != "no dump available" {
		t.Fatalf("message fallback failed: %q %v", text, err)
	}
}

func TestEmptyHostIsConfigFailure(t *testing.T) {
	t.Parallel()

	sink := &traceSink{}
	client := NewLauncherClient(staticEndpoints{launcher: ports.Endpoint{Host: "", Port: "8001"}}, sink, testCfg())
	if client.ClickByText(context.Background(), "Mute").Success {
		t.Fatalf("expected failure with no host")
	}
	if sink.last(t).Detail != ErrNotConfigured.Error() {
		t.Fatalf("unexpected trace detail: %+v", sink.last(t))
	}
}
