// Package keymap defines the key bindings of the terminal client. Bindings
// are grouped by input mode; only the bindings of the current mode are
// matched and shown in the help line.
package keymap

import "github.com/charmbracelet/bubbles/key"

// Mode represents the current input mode of the TUI.
type Mode string

const (
	ModeBrowse      Mode = "browse"       // Moving between tabs and targets
	ModeEditProfile Mode = "edit_profile" // Typing into the profile fields
	ModeStageDialog Mode = "stage_dialog" // Typing into the stage dialog
	ModeAlert       Mode = "alert"        // A blocking alert is shown
)

// KeyMap holds every binding of the client.
type KeyMap struct {
	NextTab   key.Binding
	PrevTab   key.Binding
	JumpTab   key.Binding
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Activate  key.Binding
	Copy      key.Binding
	Edit      key.Binding
	Help      key.Binding
	Quit      key.Binding
	NextField key.Binding
	Submit    key.Binding
	Cancel    key.Binding
	Dismiss   key.Binding
}

// Default returns the default bindings.
func Default() KeyMap {
	return KeyMap{
		NextTab: key.NewBinding(
			key.WithKeys("tab", "l", "right"),
			key.WithHelp("tab/l", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "h", "left"),
			key.WithHelp("S-tab/h", "prev tab"),
		),
		JumpTab: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "jump to tab"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+b"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+f"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy link"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit profile"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "next field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc", " "),
			key.WithHelp("enter", "ok"),
		),
	}
}

// ForMode returns the help.KeyMap for mode.
func (k KeyMap) ForMode(mode Mode) ModeHelp {
	return ModeHelp{keys: k, mode: mode}
}

// ModeHelp adapts a KeyMap to help.KeyMap for one mode.
type ModeHelp struct {
	keys KeyMap
	mode Mode
}

// ShortHelp returns the single-line bindings of the mode.
func (h ModeHelp) ShortHelp() []key.Binding {
	k := h.keys
	switch h.mode {
	case ModeEditProfile:
		return []key.Binding{k.NextField, k.Submit, k.Cancel}
	case ModeStageDialog:
		return []key.Binding{k.NextField, k.Submit, k.Cancel}
	case ModeAlert:
		return []key.Binding{k.Dismiss}
	default:
		return []key.Binding{k.NextTab, k.Down, k.Activate, k.Copy, k.Help, k.Quit}
	}
}

// FullHelp returns every binding of the mode in columns.
func (h ModeHelp) FullHelp() [][]key.Binding {
	k := h.keys
	if h.mode != ModeBrowse {
		return [][]key.Binding{h.ShortHelp()}
	}
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.JumpTab},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Activate, k.Copy, k.Edit},
		{k.Help, k.Quit},
	}
}

// TabIndex maps a jump key to a zero-based tab index.
func TabIndex(s string) (int, bool) {
	if len(s) != 1 || s[0] < '1' || s[0] > '4' {
		return 0, false
	}
	return int(s[0] - '1'), true
}
