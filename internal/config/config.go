package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/Iron-Ham/workorders/internal/api"
	"github.com/Iron-Ham/workorders/internal/format"
	"github.com/Iron-Ham/workorders/internal/host"
	"github.com/Iron-Ham/workorders/internal/launch"
)

// AppName names the config and log directories.
const AppName = "workorders"

// Config represents the complete workorders configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Host    HostConfig    `mapstructure:"host"`
	Launch  LaunchConfig  `mapstructure:"launch"`
	TUI     TUIConfig     `mapstructure:"tui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig controls how the order-management API is reached
type APIConfig struct {
	// BaseURL is the API origin, without the /api/app prefix (default: http://localhost:8000)
	BaseURL string `mapstructure:"base_url"`
}

// HostConfig describes the chat-platform host the client was launched from
type HostConfig struct {
	// Present is true when the launcher runs the client inside the host
	Present bool `mapstructure:"present"`
	// InitData is the opaque session blob handed over by the host
	InitData string `mapstructure:"init_data"`
}

// LaunchConfig carries the launch parameters
type LaunchConfig struct {
	// URL is the launch URL or query string, e.g. "?debug_user_id=42&order_id=ORD-1"
	URL string `mapstructure:"url"`
	// DebugUserID overrides the debug_user_id query parameter
	DebugUserID string `mapstructure:"debug_user_id"`
	// OrderID overrides the order_id query parameter
	OrderID string `mapstructure:"order_id"`
}

// TUIConfig controls the terminal UI
type TUIConfig struct {
	// Theme is a built-in theme name or a path to a YAML theme file (default: "default")
	Theme string `mapstructure:"theme"`
	// TimeFormat is the Go layout for stage dates (default: 02.01.2006, 15:04:05)
	TimeFormat string `mapstructure:"locale_time_format"`
	// Title is shown in the header and the markup page title
	Title string `mapstructure:"title"`
}

// LoggingConfig controls debug logging
type LoggingConfig struct {
	// Enabled controls whether logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is where workorders.log is written; empty means the config directory
	Dir string `mapstructure:"dir"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: api.DefaultBaseURL,
		},
		Host: HostConfig{
			Present:  false,
			InitData: "",
		},
		Launch: LaunchConfig{},
		TUI: TUIConfig{
			Theme:      "default",
			TimeFormat: format.DefaultTimeLayout,
			Title:      "Work orders",
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			Dir:     "",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("api.base_url", defaults.API.BaseURL)

	viper.SetDefault("host.present", defaults.Host.Present)
	viper.SetDefault("host.init_data", defaults.Host.InitData)

	viper.SetDefault("launch.url", defaults.Launch.URL)
	viper.SetDefault("launch.debug_user_id", defaults.Launch.DebugUserID)
	viper.SetDefault("launch.order_id", defaults.Launch.OrderID)

	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.locale_time_format", defaults.TUI.TimeFormat)
	viper.SetDefault("tui.title", defaults.TUI.Title)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Params merges the launch URL with the explicit overrides. Explicit keys
// win over the query string.
func (l *LaunchConfig) Params() (launch.Params, error) {
	fromURL, err := launch.Parse(l.URL)
	if err != nil {
		return launch.Params{}, err
	}
	explicit := launch.Params{DebugUserID: l.DebugUserID, OrderID: l.OrderID}
	return explicit.Merge(fromURL), nil
}

// Options converts the host settings for host.Detect.
func (h *HostConfig) Options() host.Options {
	return host.Options{Present: h.Present, InitData: h.InitData}
}

// TimeLayout returns the stage date layout, falling back to the default.
func (t *TUIConfig) TimeLayout() string {
	if t.TimeFormat == "" {
		return format.DefaultTimeLayout
	}
	return t.TimeFormat
}

// ResolveLogDir returns the directory for the log file.
func (l *LoggingConfig) ResolveLogDir() string {
	if l.Dir != "" {
		return l.Dir
	}
	return ConfigDir()
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// exampleTime renders a fixed instant with layout, for validation messages
// and the config show command.
func exampleTime(layout string) string {
	ts := time.Date(2024, time.March, 9, 14, 5, 0, 0, time.UTC)
	return ts.Format(layout)
}

// Describe returns a human-readable summary of the effective settings.
func (c *Config) Describe() []string {
	return []string{
		fmt.Sprintf("api.base_url = %s", c.API.BaseURL),
		fmt.Sprintf("host.present = %t", c.Host.Present),
		fmt.Sprintf("host.init_data = %s", redact(c.Host.InitData)),
		fmt.Sprintf("launch.url = %s", c.Launch.URL),
		fmt.Sprintf("launch.debug_user_id = %s", c.Launch.DebugUserID),
		fmt.Sprintf("launch.order_id = %s", c.Launch.OrderID),
		fmt.Sprintf("tui.theme = %s", c.TUI.Theme),
		fmt.Sprintf("tui.locale_time_format = %s (e.g. %s)", c.TUI.TimeLayout(), exampleTime(c.TUI.TimeLayout())),
		fmt.Sprintf("tui.title = %s", c.TUI.Title),
		fmt.Sprintf("logging.enabled = %t", c.Logging.Enabled),
		fmt.Sprintf("logging.level = %s", c.Logging.Level),
		fmt.Sprintf("logging.dir = %s", c.Logging.ResolveLogDir()),
	}
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	return fmt.Sprintf("<%d bytes>", len(s))
}
