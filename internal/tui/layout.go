package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/workorders/internal/app"
	"github.com/Iron-Ham/workorders/internal/render"
	"github.com/Iron-Ham/workorders/internal/tui/keymap"
	"github.com/Iron-Ham/workorders/internal/tui/view"
)

// View renders the screen.
func (m Model) View() string {
	if !m.ready {
		return m.spinner.View() + " " + m.core.Status()
	}

	sections := []string{
		view.Header(m.styles, m.title, m.width),
		view.Tabs(m.styles, m.core.Page(m.title).Tabs),
		m.body(),
		view.StatusBar(m.styles, m.statusText(), m.tone(), m.spinner.View(), m.width),
	}
	if m.flash != "" {
		sections = append(sections, m.styles.Notice.Render(m.flash))
	}
	sections = append(sections, m.help.View(m.keys.ForMode(m.Mode())))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// body is the viewport, or the overlay that replaces it.
func (m Model) body() string {
	switch m.Mode() {
	case keymap.ModeAlert:
		alerts := m.core.Alerts()
		return m.place(view.Alert(m.styles, alerts[0], len(alerts), m.width))
	case keymap.ModeStageDialog:
		return m.place(view.StageDialog(m.styles, view.StageDialogState{
			OrderID: m.core.Dialog().OrderID(),
			Hours:   m.hours.View(),
			Comment: m.comment.View(),
			Focus:   m.focus,
		}, m.width))
	}
	return m.viewport.View()
}

// place centers an overlay in the viewport area.
func (m Model) place(overlay string) string {
	return lipgloss.Place(m.viewport.Width, m.viewport.Height, lipgloss.Center, lipgloss.Center, overlay)
}

func (m Model) statusText() string {
	if s := m.core.Status(); s != "" {
		return s
	}
	return app.StatusReady
}

func (m Model) tone() view.Tone {
	switch m.core.Status() {
	case app.StatusError, app.StatusSaveFailed, app.StatusBootError:
		return view.ToneError
	}
	if m.core.Busy() {
		return view.ToneBusy
	}
	return view.ToneOK
}

// resize gives the viewport whatever the chrome leaves over.
func (m *Model) resize() {
	m.help.Width = m.width
	chrome := lipgloss.Height(view.Header(m.styles, m.title, m.width)) +
		lipgloss.Height(view.Tabs(m.styles, m.core.Page(m.title).Tabs)) +
		lipgloss.Height(view.StatusBar(m.styles, " ", view.ToneOK, "", m.width)) +
		lipgloss.Height(m.help.View(m.keys.ForMode(m.Mode()))) + 1

	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-chrome, 1)

	fieldWidth := max(m.width-8, 10)
	m.contact.SetWidth(fieldWidth)
	m.payment.SetWidth(fieldWidth)
	m.comment.SetWidth(max(min(fieldWidth, 60), 10))
}

// refresh redraws the active view into the viewport.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	opts := view.ContentOptions{Width: m.width, Selected: m.selected}
	if m.viewID == render.ViewProfile {
		opts.Field = m.profileField
	}
	if m.mode == keymap.ModeEditProfile {
		opts.Selected = -1
	}
	content := view.Content(m.styles, m.core.View(m.viewID), opts)
	m.viewport.SetContent(strings.TrimRight(content, "\n"))
}

func (m Model) profileField(f render.Field) string {
	switch f.ID {
	case render.FieldContactInfo:
		return m.contact.View()
	case render.FieldPaymentInfo:
		return m.payment.View()
	}
	return f.Value
}
