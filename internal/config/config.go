package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config stores runtime configuration for the remote client.
type Config struct {
	Bridge   BridgeConfig
	Launcher LauncherConfig
	Scan     ScanConfig
	Geometry GeometryConfig
	Behavior BehaviorConfig
	Settings SettingsConfig
}

type BridgeConfig struct {
	DefaultHost string
	DefaultPort string
	Timeout     time.Duration
}

type LauncherConfig struct {
	DefaultPort string
	Timeout     time.Duration
}

type ScanConfig struct {
	Window       int
	ProbeTimeout time.Duration
}

// GeometryConfig isolates device/resolution-specific coordinates so a
// different panel only needs one substitution point.
type GeometryConfig struct {
	WakeX int
	WakeY int

	WebexGuestX int
	WebexGuestY int
	WebexNextX  int
	WebexNextY  int
	WebexJoinX  int
	WebexJoinY  int
}

type BehaviorConfig struct {
	// RequireFallbackAck gates the optimistic toggle flip on the Bridge
	// fallback reporting success. Off by default to match the shipped
	// behavior, where the UI flips even when the fallback fails.
	RequireFallbackAck bool
}

type SettingsConfig struct {
	Path string
}

// Load resolves configuration from environment variables and defaults.
func Load() (Config, error) {
	settingsPath := strings.TrimSpace(os.Getenv("ONETAP_SETTINGS_FILE"))
	if settingsPath == "" {
		settingsPath = defaultSettingsPath()
	}

	cfg := Config{
		Bridge: BridgeConfig{
			DefaultHost: envOrDefault("ONETAP_BRIDGE_HOST", "192.168.68.102"),
			DefaultPort: envOrDefault("ONETAP_BRIDGE_PORT", "9090"),
			Timeout:     time.Duration(envOrDefaultInt("ONETAP_BRIDGE_TIMEOUT_MS", 10000)) * time.Millisecond,
		},
		Launcher: LauncherConfig{
			DefaultPort: envOrDefault("ONETAP_LAUNCHER_PORT", "8001"),
			Timeout:     time.Duration(envOrDefaultInt("ONETAP_LAUNCHER_TIMEOUT_MS", 10000)) * time.Millisecond,
		},
		Scan: ScanConfig{
			Window:       envOrDefaultInt("ONETAP_SCAN_WINDOW", 10),
			ProbeTimeout: time.Duration(envOrDefaultInt("ONETAP_SCAN_PROBE_TIMEOUT_MS", 500)) * time.Millisecond,
		},
		Geometry: GeometryConfig{
			WakeX:       envOrDefaultInt("ONETAP_WAKE_X", 1920),
			WakeY:       envOrDefaultInt("ONETAP_WAKE_Y", 1080),
			WebexGuestX: 1792,
			WebexGuestY: 1512,
			WebexNextX:  1792,
			WebexNextY:  1052,
			WebexJoinX:  1935,
			WebexJoinY:  1901,
		},
		Behavior: BehaviorConfig{
			RequireFallbackAck: envOrDefaultBool("ONETAP_REQUIRE_FALLBACK_ACK", false),
		},
		Settings: SettingsConfig{Path: settingsPath},
	}

	if cfg.Bridge.Timeout <= 0 {
		cfg.Bridge.Timeout = 10 * time.Second
	}
	if cfg.Launcher.Timeout <= 0 {
		cfg.Launcher.Timeout = 10 * time.Second
	}
	if cfg.Scan.Window <= 0 {
		cfg.Scan.Window = 10
	}
	if cfg.Scan.ProbeTimeout <= 0 {
		cfg.Scan.ProbeTimeout = 500 * time.Millisecond
	}

	return cfg, nil
}

func defaultSettingsPath() string {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, "onetap", "settings.toml")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "onetap", "settings.toml")
	}
	return filepath.Join(".", "onetap-settings.toml")
}

func envOrDefault(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrDefaultInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDefaultBool(key string, fallback bool) bool {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	switch value {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
