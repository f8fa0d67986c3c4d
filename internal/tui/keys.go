package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/workorders/internal/errors"
	"github.com/Iron-Ham/workorders/internal/nav"
	"github.com/Iron-Ham/workorders/internal/render"
	"github.com/Iron-Ham/workorders/internal/tui/keymap"
	"github.com/Iron-Ham/workorders/internal/tui/view"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	m.flash = ""

	var cmd tea.Cmd
	switch m.Mode() {
	case keymap.ModeAlert:
		if key.Matches(msg, m.keys.Dismiss) {
			m.core.DismissAlert()
		}
	case keymap.ModeStageDialog:
		cmd = m.handleDialogKey(msg)
	case keymap.ModeEditProfile:
		cmd = m.handleProfileKey(msg)
	default:
		cmd = m.handleBrowseKey(msg)
	}
	m.sync()
	return m, cmd
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.NextTab):
		m.activateTab(m.core.NextTab())
	case key.Matches(msg, m.keys.PrevTab):
		m.activateTab(m.core.PrevTab())
	case key.Matches(msg, m.keys.JumpTab):
		if i, ok := keymap.TabIndex(msg.String()); ok {
			m.activateTab(nav.Tabs[i])
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.targets())-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
	case key.Matches(msg, m.keys.Activate):
		return m.activateTarget()
	case key.Matches(msg, m.keys.Copy):
		if t, ok := m.target(); ok && t.Link != nil {
			return m.copyCmd(t.Link.Href)
		}
	case key.Matches(msg, m.keys.Edit):
		return m.enterProfileEdit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	}
	return nil
}

func (m *Model) handleDialogKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.core.CancelStageDialog()
		return nil
	case key.Matches(msg, m.keys.Submit):
		cmd, err := m.core.SubmitStage(m.hours.Value(), m.comment.Value())
		if err != nil && !errors.Is(err, errors.ErrInvalidInput) {
			// A submission is already in flight for this opening.
			m.flash = err.Error()
		}
		return cmd
	case key.Matches(msg, m.keys.NextField):
		return m.setFocus(1 - m.focus)
	}
	return m.updateFocused(msg)
}

func (m *Model) handleProfileKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.leaveProfileEdit()
		return nil
	case key.Matches(msg, m.keys.Submit):
		contact, payment := m.ProfileInputs()
		m.leaveProfileEdit()
		return m.core.SaveProfile(contact, payment)
	case key.Matches(msg, m.keys.NextField):
		return m.setFocus(1 - m.focus)
	}
	return m.updateFocused(msg)
}

func (m *Model) activateTab(tab nav.Tab) {
	if err := m.core.ActivateTab(tab); err != nil {
		m.flash = err.Error()
	}
}

func (m *Model) activateTarget() tea.Cmd {
	t, ok := m.target()
	if !ok {
		return nil
	}
	if t.Link != nil {
		return m.copyCmd(t.Link.Href)
	}
	switch t.Action.Kind {
	case render.ActionOpenOrder:
		return m.core.OpenOrder(t.Action.OrderID)
	case render.ActionAddStage:
		if err := m.core.OpenStageDialog(); err != nil {
			m.flash = err.Error()
			return nil
		}
		m.mode = keymap.ModeStageDialog
		m.hours.SetValue("")
		m.comment.SetValue("")
		return m.setFocus(0)
	case render.ActionSaveProfile:
		contact, payment := m.ProfileInputs()
		return m.core.SaveProfile(contact, payment)
	}
	return nil
}

func (m *Model) enterProfileEdit() tea.Cmd {
	if m.core.ActiveView() != render.ViewProfile || m.core.State().Contractor() == nil {
		return nil
	}
	m.mode = keymap.ModeEditProfile
	return m.setFocus(0)
}

func (m *Model) leaveProfileEdit() {
	m.mode = keymap.ModeBrowse
	m.contact.Blur()
	m.payment.Blur()
}

// setFocus focuses input i of the current mode and blurs the other.
func (m *Model) setFocus(i int) tea.Cmd {
	m.focus = i
	switch m.mode {
	case keymap.ModeStageDialog:
		if i == 0 {
			m.comment.Blur()
			return m.hours.Focus()
		}
		m.hours.Blur()
		return m.comment.Focus()
	case keymap.ModeEditProfile:
		if i == 0 {
			m.payment.Blur()
			return m.contact.Focus()
		}
		m.contact.Blur()
		return m.payment.Focus()
	}
	return nil
}

func (m *Model) targets() []view.Target {
	return view.Targets(m.core.View(m.core.ActiveView()))
}

func (m *Model) target() (view.Target, bool) {
	targets := m.targets()
	if m.selected < 0 || m.selected >= len(targets) {
		return view.Target{}, false
	}
	return targets[m.selected], true
}

func (m *Model) copyCmd(text string) tea.Cmd {
	write := m.copy
	return func() tea.Msg {
		return copiedMsg{text: text, err: write(text)}
	}
}
