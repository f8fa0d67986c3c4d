package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// ThemeName represents a named color theme.
type ThemeName string

// Available theme names.
const (
	ThemeDefault        ThemeName = "default"         // Purple/green dark theme
	ThemeNord           ThemeName = "nord"            // Cool blue-gray
	ThemeDracula        ThemeName = "dracula"         // Dracula theme colors
	ThemeSolarizedLight ThemeName = "solarized-light" // For light terminals
)

// ThemeNames returns all built-in theme names.
func ThemeNames() []string {
	return []string{
		string(ThemeDefault),
		string(ThemeNord),
		string(ThemeDracula),
		string(ThemeSolarizedLight),
	}
}

// IsBuiltinTheme checks if a theme name is a built-in theme.
func IsBuiltinTheme(name string) bool {
	return slices.Contains(ThemeNames(), name)
}

// ColorPalette defines the color scheme for a theme.
type ColorPalette struct {
	// Primary accent color (active tab, titles)
	Primary lipgloss.Color
	// Secondary accent color (success states, help keys)
	Secondary lipgloss.Color
	// Warning color (busy status, notices)
	Warning lipgloss.Color
	// Error color (failures, alerts)
	Error lipgloss.Color
	// Muted color (placeholders, labels)
	Muted lipgloss.Color
	// Surface color (status bar background)
	Surface lipgloss.Color
	// Text color (primary text)
	Text lipgloss.Color
	// Border color (cards, dialog)
	Border lipgloss.Color
	// Link color (chat and file links)
	Link lipgloss.Color
}

// DefaultPalette returns the default purple/green dark palette.
func DefaultPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#A78BFA"), // Purple (violet-400)
		Secondary: lipgloss.Color("#10B981"), // Green
		Warning:   lipgloss.Color("#F59E0B"), // Amber
		Error:     lipgloss.Color("#F87171"), // Red (red-400)
		Muted:     lipgloss.Color("#9CA3AF"), // Gray
		Surface:   lipgloss.Color("#1F2937"), // Dark surface
		Text:      lipgloss.Color("#F9FAFB"), // Light text
		Border:    lipgloss.Color("#6B7280"), // Gray-500
		Link:      lipgloss.Color("#60A5FA"), // Blue
	}
}

// NordPalette returns the Nord palette.
func NordPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#88C0D0"), // Frost
		Secondary: lipgloss.Color("#A3BE8C"), // Aurora green
		Warning:   lipgloss.Color("#EBCB8B"), // Aurora yellow
		Error:     lipgloss.Color("#BF616A"), // Aurora red
		Muted:     lipgloss.Color("#81A1C1"),
		Surface:   lipgloss.Color("#3B4252"),
		Text:      lipgloss.Color("#ECEFF4"),
		Border:    lipgloss.Color("#4C566A"),
		Link:      lipgloss.Color("#8FBCBB"),
	}
}

// DraculaPalette returns the Dracula palette.
func DraculaPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#BD93F9"),
		Secondary: lipgloss.Color("#50FA7B"),
		Warning:   lipgloss.Color("#F1FA8C"),
		Error:     lipgloss.Color("#FF5555"),
		Muted:     lipgloss.Color("#6272A4"),
		Surface:   lipgloss.Color("#44475A"),
		Text:      lipgloss.Color("#F8F8F2"),
		Border:    lipgloss.Color("#6272A4"),
		Link:      lipgloss.Color("#8BE9FD"),
	}
}

// SolarizedLightPalette returns the Solarized Light palette.
func SolarizedLightPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#6C71C4"), // Violet
		Secondary: lipgloss.Color("#859900"), // Green
		Warning:   lipgloss.Color("#B58900"), // Yellow
		Error:     lipgloss.Color("#DC322F"), // Red
		Muted:     lipgloss.Color("#93A1A1"), // base1
		Surface:   lipgloss.Color("#EEE8D5"), // base2
		Text:      lipgloss.Color("#073642"), // base02
		Border:    lipgloss.Color("#93A1A1"),
		Link:      lipgloss.Color("#268BD2"), // Blue
	}
}

// GetPalette returns the color palette for the given built-in theme name.
// Returns the default palette for unknown theme names.
func GetPalette(name ThemeName) *ColorPalette {
	switch name {
	case ThemeNord:
		return NordPalette()
	case ThemeDracula:
		return DraculaPalette()
	case ThemeSolarizedLight:
		return SolarizedLightPalette()
	default:
		return DefaultPalette()
	}
}
