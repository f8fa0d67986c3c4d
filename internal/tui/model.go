// Package tui is the interactive terminal client. The Model is a thin
// bubbletea adapter over app.Core: it turns key presses into core
// operations, forwards completion messages to the core, and draws the
// core's views with the tui/view package.
package tui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/workorders/internal/app"
	"github.com/Iron-Ham/workorders/internal/render"
	"github.com/Iron-Ham/workorders/internal/tui/keymap"
	"github.com/Iron-Ham/workorders/internal/tui/styles"
)

// Options configure the Model.
type Options struct {
	// Title is shown in the header.
	Title string
	// Styles defaults to styles.Default().
	Styles *styles.Styles
	// Copy writes text to the clipboard; nil uses the system clipboard.
	Copy func(string) error
	// StaticCursor disables cursor blinking in the text inputs.
	StaticCursor bool
}

// copiedMsg reports the outcome of a clipboard write.
type copiedMsg struct {
	text string
	err  error
}

// Model is the bubbletea model of the client.
type Model struct {
	core   *app.Core
	title  string
	styles *styles.Styles
	keys   keymap.KeyMap
	copy   func(string) error

	help     help.Model
	spinner  spinner.Model
	viewport viewport.Model

	// Stage dialog inputs.
	hours   textinput.Model
	comment textarea.Model
	// Profile fields.
	contact textarea.Model
	payment textarea.Model

	mode       keymap.Mode
	focus      int
	selected   int
	viewID     render.ViewID
	profileRev int
	flash      string

	width  int
	height int
	ready  bool
}

// New creates a Model around core. The core should not have been started;
// Init starts it.
func New(core *app.Core, opts Options) Model {
	st := opts.Styles
	if st == nil {
		st = styles.Default()
	}
	copyFn := opts.Copy
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = st.Warning

	hours := textinput.New()
	hours.Placeholder = "0"
	hours.CharLimit = 12
	hours.Width = 12

	m := Model{
		core:     core,
		title:    opts.Title,
		styles:   st,
		keys:     keymap.Default(),
		copy:     copyFn,
		help:     help.New(),
		spinner:  sp,
		viewport: viewport.New(0, 0),
		hours:    hours,
		comment:  newTextarea("Optional", 2),
		contact:  newTextarea("Phone / email / @username", 3),
		payment:  newTextarea("Payment details", 3),
		mode:     keymap.ModeBrowse,
		selected: 0,
	}
	if opts.StaticCursor {
		m.hours.Cursor.SetMode(cursor.CursorStatic)
		m.comment.Cursor.SetMode(cursor.CursorStatic)
		m.contact.Cursor.SetMode(cursor.CursorStatic)
		m.payment.Cursor.SetMode(cursor.CursorStatic)
	}
	m.help.Styles.ShortKey = st.HelpKey
	m.help.Styles.FullKey = st.HelpKey
	m.help.Styles.ShortDesc = st.HelpBar
	m.help.Styles.FullDesc = st.HelpBar
	m.sync()
	return m
}

func newTextarea(placeholder string, rows int) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(rows)
	ta.SetWidth(40)
	return ta
}

// Run starts the interactive program and blocks until it exits.
func Run(core *app.Core, opts Options) error {
	_, err := tea.NewProgram(New(core, opts), tea.WithAltScreen()).Run()
	return err
}

// Init starts bootstrap and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.core.Start(), m.spinner.Tick)
}

// Update handles terminal events and core completion messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.resize()
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case copiedMsg:
		if msg.err != nil {
			m.flash = "Copy failed: " + msg.err.Error()
		} else {
			m.flash = "Copied " + msg.text
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Completion messages belong to the core; anything else (cursor blinks)
	// goes to the focused input.
	cmd := m.core.Update(msg)
	widgetCmd := m.updateFocused(msg)
	m.sync()
	return m, tea.Batch(cmd, widgetCmd)
}

// Mode returns the effective input mode. Pending alerts take precedence.
func (m Model) Mode() keymap.Mode {
	if len(m.core.Alerts()) > 0 {
		return keymap.ModeAlert
	}
	return m.mode
}

// Selected returns the index of the highlighted target in the active view.
func (m Model) Selected() int { return m.selected }

// Flash returns the transient message shown under the status bar.
func (m Model) Flash() string { return m.flash }

// ProfileInputs returns the values typed into the profile fields.
func (m Model) ProfileInputs() (contact, payment string) {
	return m.contact.Value(), m.payment.Value()
}

// StageInputs returns the values typed into the stage dialog.
func (m Model) StageInputs() (hours, comment string) {
	return m.hours.Value(), m.comment.Value()
}

// sync pulls state changes out of the core: the dialog may have closed,
// the active view may have changed, and the profile may have been
// re-rendered.
func (m *Model) sync() {
	if m.mode == keymap.ModeStageDialog && !m.core.Dialog().IsOpen() {
		m.mode = keymap.ModeBrowse
		m.hours.Blur()
		m.comment.Blur()
	}

	if id := m.core.ActiveView(); id != m.viewID {
		m.viewID = id
		m.selected = 0
		m.viewport.GotoTop()
		if m.mode == keymap.ModeEditProfile && id != render.ViewProfile {
			m.leaveProfileEdit()
		}
	}

	if rev := m.core.Revision(render.ViewProfile); rev != m.profileRev {
		m.profileRev = rev
		for _, f := range m.core.View(render.ViewProfile).Fields() {
			switch f.ID {
			case render.FieldContactInfo:
				m.contact.SetValue(f.Value)
			case render.FieldPaymentInfo:
				m.payment.SetValue(f.Value)
			}
		}
	}

	if n := len(m.targets()); m.selected >= n {
		m.selected = max(n-1, 0)
	}
	m.refresh()
}

func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.mode {
	case keymap.ModeStageDialog:
		if m.focus == 0 {
			m.hours, cmd = m.hours.Update(msg)
		} else {
			m.comment, cmd = m.comment.Update(msg)
		}
	case keymap.ModeEditProfile:
		if m.focus == 0 {
			m.contact, cmd = m.contact.Update(msg)
		} else {
			m.payment, cmd = m.payment.Update(msg)
		}
	}
	return cmd
}
