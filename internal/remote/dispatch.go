// Package remote wraps the two HTTP control surfaces consumed by the client:
// the Bridge (coarse touch/navigation/camera primitives on the room PC) and
// the Launcher (Android accessibility automation and calendar state).
//
// Every command resolves its endpoint at call time, carries a bounded
// timeout and a request ID, and reports a boolean Result. Timeouts and
// refused connections are told apart only in the emitted trace.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/raja-blip/onetap-remote/internal/config"
	"github.com/raja-blip/onetap-remote/internal/domain"
	"github.com/raja-blip/onetap-remote/internal/ports"
)

// ErrNotConfigured flags a call attempted before an endpoint host is known.
var ErrNotConfigured = errors.New("remote endpoint not configured")

// Endpoints resolves the current endpoint for a service. Satisfied by the
// connection registry; calls resolve per dispatch so settings changes take
// effect without re-wiring.
type Endpoints interface {
	Endpoint(service ports.Service) ports.Endpoint
}

type callOutcome struct {
	requestID string
	target    string
	outcome   string
	detail    string
}

type dispatcher struct {
	endpoints Endpoints
	events    ports.EventSink
	cfg       config.Config
	client    *http.Client
}

func newDispatcher(endpoints Endpoints, events ports.EventSink, cfg config.Config) dispatcher {
	return dispatcher{
		endpoints: endpoints,
		events:    events,
		cfg:       cfg,
		client:    &http.Client{},
	}
}

// post sends a JSON command and decodes the uniform success envelope.
func (d dispatcher) post(ctx context.Context, service ports.Service, path string, body any) domain.Result {
	raw, call := d.roundTrip(ctx, service, http.MethodPost, path, body)
	result := domain.Result{Raw: raw, Success: call.outcome == domain.TraceOK && envelopeSuccess(raw)}
	if call.outcome == domain.TraceOK && !result.Success {
		call.outcome = domain.TraceReject
		if msg := result.Message(); msg != "" {
			call.detail = msg
		}
	}
	d.trace(service, path, call)
	return result
}

// get fetches a JSON document without an envelope check.
func (d dispatcher) get(ctx context.Context, service ports.Service, path string) (map[string]any, bool) {
	raw, call := d.roundTrip(ctx, service, http.MethodGet, path, nil)
	d.trace(service, path, call)
	return raw, call.outcome == domain.TraceOK
}

func (d dispatcher) roundTrip(ctx context.Context, service ports.Service, method, path string, body any) (map[string]any, callOutcome) {
	call := callOutcome{requestID: uuid.NewString()}

	ep := d.endpoints.Endpoint(service)
	call.target = ep.URL()
	if strings.TrimSpace(ep.Host) == "" {
		call.outcome, call.detail = domain.TraceRefused, ErrNotConfigured.Error()
		return nil, call
	}

	timeout := d.cfg.Bridge.Timeout
	if service == ports.ServiceLauncher {
		timeout = d.cfg.Launcher.Timeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			call.outcome, call.detail = domain.TraceBadBody, err.Error()
			return nil, call
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(callCtx, method, ep.URL()+path, payload)
	if err != nil {
		call.outcome, call.detail = domain.TraceRefused, err.Error()
		return nil, call
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", call.requestID)

	resp, err := d.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			call.outcome = domain.TraceTimeout
		} else {
			call.outcome = domain.TraceRefused
		}
		call.detail = err.Error()
		return nil, call
	}
	defer resp.Body.Close()

	decoded := map[string]any{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		call.outcome, call.detail = domain.TraceBadBody, err.Error()
		return nil, call
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		call.outcome, call.detail = domain.TraceReject, resp.Status
		return decoded, call
	}
	call.outcome = domain.TraceOK
	return decoded, call
}

func (d dispatcher) trace(service ports.Service, path string, call callOutcome) {
	if d.events == nil {
		return
	}
	d.events.CommandTrace(domain.CommandTrace{
		RequestID: call.requestID,
		Service:   string(service),
		Operation: path,
		Target:    call.target,
		Outcome:   call.outcome,
		Detail:    call.detail,
	})
}

// envelopeSuccess applies the shared success rule: the decoded body's status
// field equals "success" or its success field is true.
func envelopeSuccess(raw map[string]any) bool {
	if raw == nil {
		return false
	}
	if s, ok := raw["status"].(string); ok && s == "success" {
		return true
	}
	if b, ok := raw["success"].(bool); ok && b {
		return true
	}
	return false
}
