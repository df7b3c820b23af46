// Package registry owns the two remote endpoints and the small set of
// persisted room state: room name, per-platform sign-in flags, and the
// active-meeting marker.
package registry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/raja-blip/onetap-remote/internal/config"
	"github.com/raja-blip/onetap-remote/internal/domain"
	"github.com/raja-blip/onetap-remote/internal/ports"
)

// ErrBridgeNotFound is returned when a subnet scan exhausts its window.
var ErrBridgeNotFound = errors.New("no bridge found on subnet")

// Settings keys. The persisted file is a flat string map with no versioning.
const (
	keyBridgeIP          = "bridge_ip"
	keyBridgePort        = "bridge_port"
	keyLauncherIP        = "launcher_ip"
	keyLauncherPort      = "launcher_port"
	keyRoomName          = "room_name"
	keyActivePlatform    = "active_meeting_platform"
	keyBridgeConnected   = "bridge_connected"
	keyLauncherConnected = "launcher_connected"
)

const defaultRoomName = "Meeting Room 1"

// Prober checks whether a service answers at an endpoint. Injected so
// reachability and scanning are testable without a network.
type Prober func(ctx context.Context, service ports.Service, ep ports.Endpoint) bool

// Registry resolves endpoints with read-after-write consistency. Values live
// in the settings store; defaults come from runtime config and never fail.
type Registry struct {
	store ports.Settings
	cfg   config.Config
	probe Prober
}

// New builds a registry over the given settings store. A nil prober falls
// back to a plain HTTP GET against the service's status path.
func New(store ports.Settings, cfg config.Config, probe Prober) *Registry {
	r := &Registry{store: store, cfg: cfg, probe: probe}
	if r.probe == nil {
		r.probe = httpProbe
	}
	return r
}

// Endpoint returns the last-saved endpoint for the service, or its
// documented default. Absent configuration is not an error.
func (r *Registry) Endpoint(service ports.Service) ports.Endpoint {
	switch service {
	case ports.ServiceLauncher:
		ep := ports.Endpoint{Host: r.cfg.Bridge.DefaultHost, Port: r.cfg.Launcher.DefaultPort}
		if v, ok := r.store.Get(keyLauncherIP); ok && v != "" {
			ep.Host = v
		}
		if v, ok := r.store.Get(keyLauncherPort); ok && v != "" {
			ep.Port = v
		}
		return ep
	default:
		ep := ports.Endpoint{Host: r.cfg.Bridge.DefaultHost, Port: r.cfg.Bridge.DefaultPort}
		if v, ok := r.store.Get(keyBridgeIP); ok && v != "" {
			ep.Host = v
		}
		if v, ok := r.store.Get(keyBridgePort); ok && v != "" {
			ep.Port = v
		}
		return ep
	}
}

// SetEndpoint persists the endpoint for the service.
func (r *Registry) SetEndpoint(service ports.Service, ep ports.Endpoint) error {
	hostKey, portKey := keyBridgeIP, keyBridgePort
	if service == ports.ServiceLauncher {
		hostKey, portKey = keyLauncherIP, keyLauncherPort
	}
	if err := r.store.Set(hostKey, strings.TrimSpace(ep.Host)); err != nil {
		return err
	}
	return r.store.Set(portKey, strings.TrimSpace(ep.Port))
}

// RoomName returns the persisted room display label.
func (r *Registry) RoomName() string {
	if v, ok := r.store.Get(keyRoomName); ok && v != "" {
		return v
	}
	return defaultRoomName
}

func (r *Registry) SetRoomName(name string) error {
	return r.store.Set(keyRoomName, name)
}

// SignedIn reports whether the room account is signed into the platform.
// Absent flags default to signed-in, matching the shipped client.
func (r *Registry) SignedIn(platform domain.Platform) bool {
	v, ok := r.store.Get(signedInKey(platform))
	if !ok {
		return true
	}
	return v == "true"
}

func (r *Registry) SetSignedIn(platform domain.Platform, signedIn bool) error {
	return r.store.Set(signedInKey(platform), strconv.FormatBool(signedIn))
}

func signedInKey(platform domain.Platform) string {
	return string(platform) + "_signed_in"
}

// ActivePlatform returns the persisted active-meeting marker, if set.
func (r *Registry) ActivePlatform() (domain.Platform, bool) {
	v, ok := r.store.Get(keyActivePlatform)
	if !ok || v == "" {
		return domain.PlatformUnknown, false
	}
	return domain.ParsePlatform(v), true
}

func (r *Registry) SetActivePlatform(platform domain.Platform) error {
	return r.store.Set(keyActivePlatform, string(platform))
}

func (r *Registry) ClearActivePlatform() error {
	return r.store.Delete(keyActivePlatform)
}

// TestReachability probes the service's status surface with a bounded
// timeout. It never returns an error; any failure is false. The result is
// recorded in the per-service connected flag.
func (r *Registry) TestReachability(ctx context.Context, service ports.Service) bool {
	timeout := r.cfg.Bridge.Timeout
	connKey := keyBridgeConnected
	if service == ports.ServiceLauncher {
		timeout = r.cfg.Launcher.Timeout
		connKey = keyLauncherConnected
	}

	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ok := r.probe(probeCtx, service, r.Endpoint(service))
	_ = r.store.Set(connKey, strconv.FormatBool(ok))
	return ok
}

// ScanSubnet probes the /24 window around the configured bridge host and
// persists the first responder. The scan is sequential and stops on the
// first hit; the window is host±N clamped to [1,254].
func (r *Registry) ScanSubnet(ctx context.Context) (ports.Endpoint, error) {
	base := r.Endpoint(ports.ServiceBridge)

	prefix, lastOctet, err := splitIPv4(base.Host)
	if err != nil {
		return ports.Endpoint{}, err
	}

	start := lastOctet - r.cfg.Scan.Window
	if start < 1 {
		start = 1
	}
	end := lastOctet + r.cfg.Scan.Window
	if end > 254 {
		end = 254
	}

	for i := start; i <= end; i++ {
		if err := ctx.Err(); err != nil {
			return ports.Endpoint{}, err
		}

		candidate := ports.Endpoint{
			Host: fmt.Sprintf("%s.%d", prefix, i),
			Port: base.Port,
		}

		probeCtx, cancel := context.WithTimeout(ctx, r.cfg.Scan.ProbeTimeout)
		found := r.probe(probeCtx, ports.ServiceBridge, candidate)
		cancel()

		if found {
			if err := r.SetEndpoint(ports.ServiceBridge, candidate); err != nil {
				return ports.Endpoint{}, err
			}
			_ = r.store.Set(keyBridgeConnected, "true")
			return candidate, nil
		}
	}

	return ports.Endpoint{}, ErrBridgeNotFound
}

func splitIPv4(host string) (prefix string, lastOctet int, err error) {
	ip := net.ParseIP(host)
	if ip == nil || ip.To4() == nil {
		return "", 0, fmt.Errorf("bridge host %q is not an IPv4 address", host)
	}
	parts := strings.Split(host, ".")
	octet, err := strconv.Atoi(parts[3])
	if err != nil {
		return "", 0, fmt.Errorf("bridge host %q is not an IPv4 address", host)
	}
	return strings.Join(parts[:3], "."), octet, nil
}

// StatusPath returns the reachability probe path for a service.
func StatusPath(service ports.Service) string {
	if service == ports.ServiceLauncher {
		return "/discover"
	}
	return "/api/status"
}

func httpProbe(ctx context.Context, service ports.Service, ep ports.Endpoint) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ep.URL()+StatusPath(service), nil)
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Transport: probeTransport}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// probeTransport disables keep-alives; scan candidates are probed once.
var probeTransport = &http.Transport{
	DisableKeepAlives: true,
	DialContext: (&net.Dialer{
		Timeout: 10 * time.Second,
	}).DialContext,
}
