package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/1broseidon/deskd/internal/desktop"
)

// AppConfig describes a registered window kind: its display metadata and
// the default geometry used when an open request omits its own.
type AppConfig struct {
	Title  string `yaml:"title"`
	Icon   string `yaml:"icon"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// TelemetryConfig configures the in-memory telemetry collector.
type TelemetryConfig struct {
	// Enabled turns collection on/off. Defaults to true.
	Enabled *bool `yaml:"enabled,omitempty"`
}

// LoggingConfig configures the session action log.
type LoggingConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`
	// Level controls verbosity: debug, info, warn, error
	Level string `yaml:"level,omitempty"`
	// File is the log file path (default: ~/.local/share/deskd/session.log)
	File      string `yaml:"file,omitempty"`
	MaxSizeMB int    `yaml:"max_size_mb,omitempty"`
	MaxFiles  int    `yaml:"max_files,omitempty"`
}

// RelayConfig configures the chat-completion relay: the external agent
// command whose stdout is streamed token by token.
type RelayConfig struct {
	Command string   `yaml:"command,omitempty"`
	Args    []string `yaml:"args,omitempty"`
}

// Config is the deskd configuration.
type Config struct {
	// SocketPath overrides the default IPC socket location.
	SocketPath string `yaml:"socket_path,omitempty"`
	// Apps maps window kinds to their defaults.
	Apps      map[string]AppConfig `yaml:"apps,omitempty"`
	Telemetry TelemetryConfig      `yaml:"telemetry,omitempty"`
	Logging   LoggingConfig        `yaml:"logging,omitempty"`
	Relay     RelayConfig          `yaml:"relay,omitempty"`
}

// Default geometry for kinds with no app entry.
const (
	DefaultWindowWidth  = 480
	DefaultWindowHeight = 360
)

// DefaultApps returns the built-in window kinds.
func DefaultApps() map[string]AppConfig {
	return map[string]AppConfig{
		"notes":    {Title: "Notes", Icon: "notes", X: 40, Y: 40, Width: 400, Height: 300},
		"calc":     {Title: "Calculator", Icon: "calc", X: 120, Y: 80, Width: 280, Height: 360},
		"browser":  {Title: "Browser", Icon: "browser", X: 80, Y: 60, Width: 800, Height: 600},
		"terminal": {Title: "Terminal", Icon: "terminal", X: 160, Y: 120, Width: 640, Height: 400},
		"chat":     {Title: "Chat", Icon: "chat", X: 200, Y: 100, Width: 420, Height: 520},
	}
}

// applyDefaults fills unset fields in place.
func (c *Config) applyDefaults() {
	if c.Apps == nil {
		c.Apps = DefaultApps()
	} else {
		// Merge: built-in kinds the user didn't override stay available.
		for kind, app := range DefaultApps() {
			if _, ok := c.Apps[kind]; !ok {
				c.Apps[kind] = app
			}
		}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = 10
	}
	if c.Logging.MaxFiles <= 0 {
		c.Logging.MaxFiles = 3
	}
}

// TelemetryEnabled reports whether the collector should run.
func (c *Config) TelemetryEnabled() bool {
	if c.Telemetry.Enabled == nil {
		return true
	}
	return *c.Telemetry.Enabled
}

// Validate checks the configuration for mistakes worth failing on.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid logging level %q (expected debug, info, warn, or error)", c.Logging.Level)
	}
	kinds := make([]string, 0, len(c.Apps))
	for kind := range c.Apps {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		app := c.Apps[kind]
		if strings.Contains(kind, "-") {
			return fmt.Errorf("app kind %q must not contain '-': the kind is derived from the id prefix before the first '-'", kind)
		}
		if app.Width < 0 || app.Height < 0 {
			return fmt.Errorf("app %q has negative default size %dx%d", kind, app.Width, app.Height)
		}
	}
	return nil
}

// OpenSpec builds an open request for id, filling title, icon, and geometry
// from the app entry for the id's kind. Unknown kinds get the generic
// defaults with the kind itself as title and icon.
func (c *Config) OpenSpec(id string) desktop.OpenSpec {
	kind := desktop.Kind(id)
	app, ok := c.Apps[kind]
	if !ok {
		return desktop.OpenSpec{
			ID:     id,
			Title:  kind,
			Icon:   kind,
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
		}
	}
	return desktop.OpenSpec{
		ID:     id,
		Title:  app.Title,
		Icon:   app.Icon,
		X:      app.X,
		Y:      app.Y,
		Width:  app.Width,
		Height: app.Height,
	}
}
