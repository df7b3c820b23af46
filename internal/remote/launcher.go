package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/raja-blip/onetap-remote/internal/config"
	"github.com/raja-blip/onetap-remote/internal/domain"
	"github.com/raja-blip/onetap-remote/internal/ports"
)

// Launcher endpoints and command types.
const (
	launcherUIStatePath = "/ui/state"
	launcherCommandPath = "/commands/send"

	cmdClickByText        = "click_by_text"
	cmdClickByContentDesc = "click_by_content_description"
	cmdTextInjection      = "text_injection"
	cmdMeetingLaunch      = "meeting_launch"
	cmdDumpText           = "dump_text"
)

// LauncherClient implements ports.Launcher over HTTP. All commands share the
// {type, payload} envelope.
type LauncherClient struct {
	dispatcher
	now func() time.Time
}

func NewLauncherClient(endpoints Endpoints, events ports.EventSink, cfg config.Config) *LauncherClient {
	return &LauncherClient{
		dispatcher: newDispatcher(endpoints, events, cfg),
		now:        time.Now,
	}
}

func (c *LauncherClient) command(ctx context.Context, commandType string, payload map[string]any) domain.Result {
	return c.post(ctx, ports.ServiceLauncher, launcherCommandPath, map[string]any{
		"type":    commandType,
		"payload": payload,
	})
}

// ClickByText taps the on-screen element whose visible text matches.
func (c *LauncherClient) ClickByText(ctx context.Context, text string) domain.Result {
	return c.command(ctx, cmdClickByText, map[string]any{"clickText": text})
}

// ClickByContentDescription taps by accessibility label, for elements whose
// visible text is unreliable.
func (c *LauncherClient) ClickByContentDescription(ctx context.Context, description string) domain.Result {
	return c.command(ctx, cmdClickByContentDesc, map[string]any{"contentDescription": description})
}

// InjectText types into whatever field currently holds focus on the device.
func (c *LauncherClient) InjectText(ctx context.Context, text string) domain.Result {
	return c.command(ctx, cmdTextInjection, map[string]any{"textToInject": text})
}

// LaunchMeeting opens the meeting URL in the platform's app on the device.
func (c *LauncherClient) LaunchMeeting(ctx context.Context, meetingURL string, platform domain.Platform) domain.Result {
	return c.command(ctx, cmdMeetingLaunch, map[string]any{
		"meetingUrl":  meetingURL,
		"meetingType": string(platform),
	})
}

// DumpText returns all visible text on the device screen.
func (c *LauncherClient) DumpText(ctx context.Context) (string, error) {
	result := c.command(ctx, cmdDumpText, map[string]any{})
	if result.Raw == nil {
		return "", fmt.Errorf("dump_text: no response body")
	}
	if text, ok := result.Raw["text"].(string); ok && text != "" {
		return text, nil
	}
	if msg := result.Message(); msg != "" {
		return msg, nil
	}
	encoded, err := json.Marshal(result.Raw)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// UIState fetches today's meetings and derives platform and status for each.
func (c *LauncherClient) UIState(ctx context.Context) ([]domain.Meeting, error) {
	raw, ok := c.get(ctx, ports.ServiceLauncher, launcherUIStatePath)
	if !ok {
		return nil, fmt.Errorf("launcher ui/state unavailable")
	}

	entries, _ := raw["meetings"].([]any)
	nowMillis := c.now().UnixMilli()

	meetings := make([]domain.Meeting, 0, len(entries))
	for i, entry := range entries {
		fields, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		meetings = append(meetings, parseMeeting(fields, i, nowMillis))
	}
	return meetings, nil
}

func parseMeeting(fields map[string]any, index int, nowMillis int64) domain.Meeting {
	m := domain.Meeting{
		ID:        stringField(fields, "id"),
		Title:     stringField(fields, "title"),
		StartTime: intField(fields, "startTime"),
		EndTime:   intField(fields, "endTime"),
		Link:      stringField(fields, "link"),
	}
	if m.ID == "" {
		m.ID = strconv.Itoa(index)
	}
	if m.Title == "" {
		m.Title = "Untitled Meeting"
	}
	m.Platform = domain.PlatformFromURL(m.Link)
	m.Status = m.StatusAt(nowMillis)
	return m
}

func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	default:
		return ""
	}
}

func intField(fields map[string]any, key string) int64 {
	if v, ok := fields[key].(float64); ok {
		return int64(v)
	}
	return 0
}
