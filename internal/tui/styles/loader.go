package styles

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ThemeFile represents a custom theme definition loaded from YAML.
type ThemeFile struct {
	// Name is the theme's display name (e.g., "Night shift")
	Name string `yaml:"name"`
	// Author is the theme creator's name (optional)
	Author string `yaml:"author,omitempty"`
	// Version is the theme file format version (currently "1")
	Version string `yaml:"version"`
	// Colors defines the color palette
	Colors ThemeColors `yaml:"colors"`
}

// ThemeColors contains all color definitions for a theme.
// All colors should be hex format (#RRGGBB or #RGB).
type ThemeColors struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Warning   string `yaml:"warning"`
	Error     string `yaml:"error"`
	Muted     string `yaml:"muted"`
	Surface   string `yaml:"surface"`
	Text      string `yaml:"text"`
	Border    string `yaml:"border"`
	// Link defaults to Primary when omitted
	Link string `yaml:"link,omitempty"`
}

// hexColorRegex validates hex color format.
var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// ParseThemeFile decodes and validates a theme from YAML.
func ParseThemeFile(data []byte) (*ThemeFile, error) {
	var theme ThemeFile
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}
	if err := theme.Validate(); err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}
	return &theme, nil
}

// LoadThemeFile loads a theme from a YAML file.
func LoadThemeFile(path string) (*ThemeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}
	return ParseThemeFile(data)
}

// Validate checks that the theme file is well-formed.
func (t *ThemeFile) Validate() error {
	if t.Name == "" {
		return errors.New("theme name is required")
	}
	if t.Version == "" {
		return errors.New("theme version is required")
	}
	if t.Version != "1" {
		return fmt.Errorf("unsupported theme version: %s (supported: 1)", t.Version)
	}

	required := []struct{ name, color string }{
		{"primary", t.Colors.Primary},
		{"secondary", t.Colors.Secondary},
		{"warning", t.Colors.Warning},
		{"error", t.Colors.Error},
		{"muted", t.Colors.Muted},
		{"surface", t.Colors.Surface},
		{"text", t.Colors.Text},
		{"border", t.Colors.Border},
	}
	for _, c := range required {
		if c.color == "" {
			return fmt.Errorf("color '%s' is required", c.name)
		}
		if !isValidHexColor(c.color) {
			return fmt.Errorf("color '%s' has invalid format: %s (expected #RGB or #RRGGBB)", c.name, c.color)
		}
	}
	if t.Colors.Link != "" && !isValidHexColor(t.Colors.Link) {
		return fmt.Errorf("color 'link' has invalid format: %s (expected #RGB or #RRGGBB)", t.Colors.Link)
	}
	return nil
}

func isValidHexColor(color string) bool {
	return hexColorRegex.MatchString(color)
}

// ToPalette converts the theme file to a ColorPalette.
func (t *ThemeFile) ToPalette() *ColorPalette {
	link := t.Colors.Link
	if link == "" {
		link = t.Colors.Primary
	}
	return &ColorPalette{
		Primary:   lipgloss.Color(t.Colors.Primary),
		Secondary: lipgloss.Color(t.Colors.Secondary),
		Warning:   lipgloss.Color(t.Colors.Warning),
		Error:     lipgloss.Color(t.Colors.Error),
		Muted:     lipgloss.Color(t.Colors.Muted),
		Surface:   lipgloss.Color(t.Colors.Surface),
		Text:      lipgloss.Color(t.Colors.Text),
		Border:    lipgloss.Color(t.Colors.Border),
		Link:      lipgloss.Color(link),
	}
}

// ResolvePalette returns the palette for a built-in theme name or, failing
// that, loads theme as a path to a YAML theme file. An empty theme selects
// the default palette.
func ResolvePalette(theme string) (*ColorPalette, error) {
	if theme == "" || IsBuiltinTheme(theme) {
		return GetPalette(ThemeName(theme)), nil
	}
	file, err := LoadThemeFile(theme)
	if err != nil {
		return nil, err
	}
	return file.ToPalette(), nil
}

// ExportTheme returns a built-in theme as a YAML theme file, ready to be
// edited and pointed to with tui.theme.
func ExportTheme(name ThemeName) ([]byte, error) {
	if !IsBuiltinTheme(string(name)) {
		return nil, fmt.Errorf("unknown theme: %s", name)
	}
	p := GetPalette(name)
	file := ThemeFile{
		Name:    string(name),
		Version: "1",
		Colors: ThemeColors{
			Primary:   string(p.Primary),
			Secondary: string(p.Secondary),
			Warning:   string(p.Warning),
			Error:     string(p.Error),
			Muted:     string(p.Muted),
			Surface:   string(p.Surface),
			Text:      string(p.Text),
			Border:    string(p.Border),
			Link:      string(p.Link),
		},
	}
	data, err := yaml.Marshal(&file)
	if err != nil {
		return nil, fmt.Errorf("encoding theme: %w", err)
	}
	return data, nil
}
