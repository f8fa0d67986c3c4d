// Package config provides CLI commands for managing workorders configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appconfig "github.com/Iron-Ham/workorders/internal/config"
	"github.com/Iron-Ham/workorders/internal/launch"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify workorders configuration",
	Long: `View or modify workorders configuration.

Without arguments, displays the effective configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  workorders config set api.base_url https://orders.example.com
  workorders config set tui.theme nord
  workorders config set launch.debug_user_id 42

Valid keys:
  api.base_url           - API origin (http or https)
  host.present           - Running inside the chat host (true/false)
  host.init_data         - Session blob handed over by the host
  launch.url             - Launch URL or query string
  launch.debug_user_id   - Debug user id for local testing
  launch.order_id        - Order to open after bootstrap
  tui.theme              - Built-in theme name or path to a theme file
  tui.locale_time_format - Go time layout for stage dates
  tui.title              - Header title
  logging.enabled        - Write a log file (true/false)
  logging.level          - Minimum level: debug, info, warn, error
  logging.dir            - Log directory (default: the config directory)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/workorders/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Reset configuration to defaults",
	Long: `Reset configuration values to their defaults.

Without arguments, resets all configuration to defaults.
With a key argument, resets only that specific key.

Examples:
  workorders config reset            # Reset all to defaults
  workorders config reset tui.theme  # Reset only tui.theme to default`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigReset,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configResetCmd)
}

// Register adds all config-related commands to the given parent command.
func Register(parent *cobra.Command) {
	parent.AddCommand(configCmd)
}

// keyKind is how a settable key's value is parsed and checked.
type keyKind int

const (
	kindString keyKind = iota
	kindBool
	kindURL
	kindLaunch
	kindTheme
	kindLayout
	kindLevel
)

var settableKeys = map[string]keyKind{
	"api.base_url":           kindURL,
	"host.present":           kindBool,
	"host.init_data":         kindString,
	"launch.url":             kindLaunch,
	"launch.debug_user_id":   kindString,
	"launch.order_id":        kindString,
	"tui.theme":              kindTheme,
	"tui.locale_time_format": kindLayout,
	"tui.title":              kindString,
	"logging.enabled":        kindBool,
	"logging.level":          kindLevel,
	"logging.dir":            kindString,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := appconfig.Load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out)
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Config file: (none - using defaults)\n")
	}
	fmt.Fprintln(out)

	for _, line := range cfg.Describe() {
		fmt.Fprintf(out, "  %s\n", line)
	}
	return nil
}

// parseValue converts value for key and checks it the way Validate would.
func parseValue(key, value string) (any, error) {
	kind, ok := settableKeys[key]
	if !ok {
		return nil, fmt.Errorf("unknown configuration key: %s\nRun 'workorders config set --help' to see valid keys", key)
	}

	// Check the value in isolation against a default config.
	probe := appconfig.Default()
	switch kind {
	case kindBool:
		if value != "true" && value != "false" {
			return nil, fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		return value == "true", nil
	case kindURL:
		probe.API.BaseURL = value
	case kindLaunch:
		if _, err := launch.Parse(value); err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", key, err)
		}
		return value, nil
	case kindTheme:
		probe.TUI.Theme = value
	case kindLayout:
		probe.TUI.TimeFormat = value
	case kindLevel:
		if !slices.Contains(appconfig.ValidLogLevels(), strings.ToLower(value)) {
			return nil, fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(appconfig.ValidLogLevels(), ", "))
		}
		return strings.ToLower(value), nil
	default:
		return value, nil
	}
	if errs := probe.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid value for %s: %s", key, errs[0].Message)
	}
	return value, nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	typedValue, err := parseValue(key, value)
	if err != nil {
		return err
	}

	viper.Set(key, typedValue)
	configFile, err := writeConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	shown := typedValue
	if key == "host.init_data" {
		shown = fmt.Sprintf("<%d bytes>", len(value))
	}
	fmt.Fprintf(out, "Set %s = %v\n", key, shown)
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}

// writeConfig saves viper's settings to the user's config file.
func writeConfig() (string, error) {
	if err := os.MkdirAll(appconfig.ConfigDir(), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	configFile := appconfig.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return configFile, nil
}

const configTemplate = `# workorders configuration

# Order-management API
api:
  # Origin of the API, without the /api/app prefix
  base_url: http://localhost:8000

# Chat host. The launcher sets these when it runs the client inside the host.
host:
  present: false
  # Opaque session blob, forwarded verbatim as X-Telegram-Init-Data
  init_data: ""

# Launch parameters. Explicit keys win over the query in url.
launch:
  # e.g. "?debug_user_id=42&order_id=ORD-1"
  url: ""
  debug_user_id: ""
  order_id: ""

# TUI (terminal user interface) settings
tui:
  # default, nord, dracula, solarized-light, or a path to a theme file
  theme: default
  # Go time layout for stage dates
  locale_time_format: "02.01.2006, 15:04:05"
  title: Work orders

# Log file settings
logging:
  enabled: true
  # debug, info, warn or error
  level: info
  # Defaults to the config directory
  dir: ""
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'workorders config set' to modify values", configFile)
	}
	if err := os.MkdirAll(appconfig.ConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(configFile, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out, "Edit this file to customize workorders.")
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", appconfig.ConfigFile())
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", filepath.Join(appconfig.ConfigDir(), "config.yaml"))
	fmt.Fprintf(out, "  2. ./config.yaml (current directory)\n")
	fmt.Fprintln(out, "\nEnvironment variables: WORKORDERS_* (e.g., WORKORDERS_HOST_INIT_DATA)")
	return nil
}

func defaultValues() map[string]any {
	d := appconfig.Default()
	return map[string]any{
		"api.base_url":           d.API.BaseURL,
		"host.present":           d.Host.Present,
		"host.init_data":         d.Host.InitData,
		"launch.url":             d.Launch.URL,
		"launch.debug_user_id":   d.Launch.DebugUserID,
		"launch.order_id":        d.Launch.OrderID,
		"tui.theme":              d.TUI.Theme,
		"tui.locale_time_format": d.TUI.TimeFormat,
		"tui.title":              d.TUI.Title,
		"logging.enabled":        d.Logging.Enabled,
		"logging.level":          d.Logging.Level,
		"logging.dir":            d.Logging.Dir,
	}
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	defaults := defaultValues()

	if len(args) == 0 {
		for key, value := range defaults {
			viper.Set(key, value)
		}
		fmt.Fprintln(out, "Reset all configuration to defaults.")
	} else {
		key := args[0]
		value, ok := defaults[key]
		if !ok {
			return fmt.Errorf("unknown configuration key: %s\nRun 'workorders config set --help' to see valid keys", key)
		}
		viper.Set(key, value)
		fmt.Fprintf(out, "Reset %s to default: %v\n", key, value)
	}

	configFile, err := writeConfig()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}
