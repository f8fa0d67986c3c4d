package view

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/workorders/internal/render"
	"github.com/Iron-Ham/workorders/internal/tui/styles"
	"github.com/Iron-Ham/workorders/internal/util"
)

// Tone selects the status bar color.
type Tone int

const (
	ToneOK Tone = iota
	ToneBusy
	ToneError
)

// Header draws the title line.
func Header(st *styles.Styles, title string, width int) string {
	if width > 0 {
		return st.Header.Width(width).Render(util.TruncateANSI(title, width))
	}
	return st.Header.Render(title)
}

// Tabs draws the tab strip. Labels are prefixed with their jump key.
func Tabs(st *styles.Styles, tabs []render.PageTab) string {
	parts := make([]string, 0, len(tabs))
	for i, t := range tabs {
		label := string(rune('1'+i)) + " " + t.Label
		if t.Active {
			parts = append(parts, st.TabActive.Render(label))
		} else {
			parts = append(parts, st.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// StatusBar draws the status line. spin is prefixed while busy.
func StatusBar(st *styles.Styles, status string, tone Tone, spin string, width int) string {
	style := st.StatusOK
	switch tone {
	case ToneBusy:
		style = st.StatusBusy
		if spin != "" {
			status = spin + " " + status
		}
	case ToneError:
		style = st.StatusError
	}
	if width > 0 {
		status = util.TruncateANSI(status, width-style.GetHorizontalPadding())
		style = style.Width(width)
	}
	return style.Render(status)
}

// Alert draws a blocking alert box.
func Alert(st *styles.Styles, message string, pending int, width int) string {
	inner := boxWidth(st.Alert, width)
	body := strings.TrimSpace(message)
	if inner > 0 {
		body = util.WrapANSI(body, inner)
	}
	footer := st.Muted.Render("enter to dismiss")
	if pending > 1 {
		footer = st.Muted.Render("enter to dismiss (" + strconv.Itoa(pending-1) + " more)")
	}
	return st.Alert.Render(st.Error.Bold(true).Render("Error") + "\n\n" + body + "\n\n" + footer)
}

// StageDialogState is what the stage dialog shows.
type StageDialogState struct {
	OrderID string
	Hours   string // rendered hours input
	Comment string // rendered comment input
	Focus   int    // 0 hours, 1 comment
}

// StageDialog draws the add-stage dialog around the given input widgets.
func StageDialog(st *styles.Styles, s StageDialogState, width int) string {
	label := func(text string, focused bool) string {
		if focused {
			return st.Primary.Bold(true).Render("› " + text)
		}
		return st.Label.Render("  " + text)
	}
	var b strings.Builder
	b.WriteString(st.DialogTitle.Render("Add stage · " + s.OrderID))
	b.WriteString("\n")
	b.WriteString(label("Hours", s.Focus == 0))
	b.WriteString("\n")
	b.WriteString(s.Hours)
	b.WriteString("\n\n")
	b.WriteString(label("Comment", s.Focus == 1))
	b.WriteString("\n")
	b.WriteString(s.Comment)
	b.WriteString("\n\n")
	b.WriteString(st.Muted.Render("ctrl+s save · esc cancel"))

	box := st.Dialog
	if inner := boxWidth(box, width); inner > 0 {
		box = box.Width(inner + box.GetHorizontalPadding())
	}
	return box.Render(b.String())
}

func boxWidth(style lipgloss.Style, width int) int {
	if width <= 0 {
		return 0
	}
	return max(width-style.GetHorizontalFrameSize(), 10)
}
