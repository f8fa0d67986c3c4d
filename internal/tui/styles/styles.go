package styles

import "github.com/charmbracelet/lipgloss"

// Styles holds every lipgloss style the client draws with, derived from a
// single palette.
type Styles struct {
	Palette *ColorPalette

	// Convenience styles for colors
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	Text      lipgloss.Style

	// Header
	Header lipgloss.Style

	// Tab styles
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// Content area
	ContentBox lipgloss.Style
	CardTitle  lipgloss.Style
	Label      lipgloss.Style
	Strong     lipgloss.Style
	Link       lipgloss.Style
	Notice     lipgloss.Style

	// Selectable actions and links
	Action         lipgloss.Style
	ActionSelected lipgloss.Style

	// Footer / status bar
	StatusBar   lipgloss.Style
	StatusOK    lipgloss.Style
	StatusBusy  lipgloss.Style
	StatusError lipgloss.Style

	// Help bar
	HelpBar lipgloss.Style
	HelpKey lipgloss.Style

	// Modal boxes
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
	Alert       lipgloss.Style
}

// New builds Styles from p.
func New(p *ColorPalette) *Styles {
	if p == nil {
		p = DefaultPalette()
	}
	s := &Styles{Palette: p}

	s.Primary = lipgloss.NewStyle().Foreground(p.Primary)
	s.Secondary = lipgloss.NewStyle().Foreground(p.Secondary)
	s.Warning = lipgloss.NewStyle().Foreground(p.Warning)
	s.Error = lipgloss.NewStyle().Foreground(p.Error)
	s.Muted = lipgloss.NewStyle().Foreground(p.Muted)
	s.Text = lipgloss.NewStyle().Foreground(p.Text)

	s.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(p.Border)

	s.TabActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Text).
		Background(p.Primary).
		Padding(0, 2)

	s.TabInactive = lipgloss.NewStyle().
		Foreground(p.Muted).
		Padding(0, 2)

	s.ContentBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)

	s.CardTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)

	s.Label = lipgloss.NewStyle().Foreground(p.Muted)
	s.Strong = lipgloss.NewStyle().Bold(true).Foreground(p.Text)
	s.Link = lipgloss.NewStyle().Underline(true).Foreground(p.Link)
	s.Notice = lipgloss.NewStyle().Italic(true).Foreground(p.Warning)

	s.Action = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Padding(0, 1)

	s.ActionSelected = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Text).
		Background(p.Secondary).
		Padding(0, 1)

	s.StatusBar = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.Surface).
		Padding(0, 1)

	s.StatusOK = s.StatusBar.Foreground(p.Secondary)
	s.StatusBusy = s.StatusBar.Foreground(p.Warning)
	s.StatusError = s.StatusBar.Bold(true).Foreground(p.Error)

	s.HelpBar = lipgloss.NewStyle().Foreground(p.Muted)
	s.HelpKey = lipgloss.NewStyle().Bold(true).Foreground(p.Secondary)

	s.Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)

	s.DialogTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary).
		MarginBottom(1)

	s.Alert = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(p.Error).
		Padding(1, 2)

	return s
}

// Default returns Styles for the default palette.
func Default() *Styles {
	return New(DefaultPalette())
}
