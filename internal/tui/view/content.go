package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/workorders/internal/render"
	"github.com/Iron-Ham/workorders/internal/tui/styles"
	"github.com/Iron-Ham/workorders/internal/util"
)

// Target is a selectable element: exactly one of Action and Link is set.
type Target struct {
	Action *render.Action
	Link   *render.Link
}

// Targets returns the selectable elements of v in document order.
func Targets(v render.View) []Target {
	var out []Target
	walkTargets(v, func(t Target) { out = append(out, t) })
	return out
}

func walkTargets(v render.View, fn func(Target)) {
	for _, c := range v.Cards {
		for _, b := range c.Blocks {
			if b.Link != nil {
				fn(Target{Link: b.Link})
			}
			if b.Action != nil {
				fn(Target{Action: b.Action})
			}
			for _, it := range b.Items {
				if it.Link != nil {
					fn(Target{Link: it.Link})
				}
				if it.Action != nil {
					fn(Target{Action: it.Action})
				}
			}
		}
	}
}

// ContentOptions control how a view is drawn.
type ContentOptions struct {
	// Width is the total width available, borders included.
	Width int
	// Selected is the index into Targets of the highlighted element, or -1.
	Selected int
	// Field draws an editable field; nil shows the field's value as text.
	Field func(render.Field) string
}

// Content draws every card of v.
func Content(st *styles.Styles, v render.View, opts ContentOptions) string {
	w := &writer{st: st, opts: opts, inner: innerWidth(st, opts.Width)}
	cards := make([]string, 0, len(v.Cards))
	for _, c := range v.Cards {
		cards = append(cards, w.card(c))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func innerWidth(st *styles.Styles, width int) int {
	if width <= 0 {
		return 0
	}
	frame := st.ContentBox.GetHorizontalFrameSize()
	return max(width-frame, 10)
}

type writer struct {
	st    *styles.Styles
	opts  ContentOptions
	inner int
	index int
}

func (w *writer) card(c render.Card) string {
	var lines []string
	if c.Title != "" {
		lines = append(lines, w.st.CardTitle.Render(w.fit(c.Title)))
	}
	for _, b := range c.Blocks {
		lines = append(lines, w.block(b))
	}
	box := w.st.ContentBox
	if w.inner > 0 {
		box = box.Width(w.inner + box.GetHorizontalPadding())
	}
	return box.Render(strings.Join(lines, "\n"))
}

func (w *writer) block(b render.Block) string {
	switch b.Kind {
	case render.BlockParagraph:
		return w.wrap(b.Text)
	case render.BlockPlaceholder:
		return w.st.Muted.Italic(true).Render(w.wrap(b.Text))
	case render.BlockNotice:
		return w.st.Notice.Render(w.wrap(b.Text))
	case render.BlockKV:
		label := w.st.Label.Render(b.Label + ": ")
		if b.Link != nil {
			return label + w.link(*b.Link)
		}
		value := b.Text
		if b.Strong {
			value = w.st.Strong.Render(value)
		}
		return label + value
	case render.BlockList:
		rows := make([]string, 0, len(b.Items))
		for _, it := range b.Items {
			rows = append(rows, w.item(it))
		}
		return strings.Join(rows, "\n")
	case render.BlockAction:
		if b.Action == nil {
			return ""
		}
		return w.action(*b.Action)
	case render.BlockField:
		if b.Field == nil {
			return ""
		}
		return w.field(*b.Field)
	}
	return ""
}

func (w *writer) item(it render.Item) string {
	head := "• " + it.Title
	if it.Aside != "" {
		head += "  " + w.st.Muted.Render(it.Aside)
	}
	lines := []string{w.fit(head)}
	if it.Sub != "" {
		lines = append(lines, util.Indent(w.st.Muted.Render(w.wrapAt(it.Sub, w.inner-2)), 2))
	}
	var controls []string
	if it.Link != nil {
		controls = append(controls, w.link(*it.Link))
	}
	if it.Action != nil {
		controls = append(controls, w.action(*it.Action))
	}
	if len(controls) > 0 {
		lines = append(lines, "  "+strings.Join(controls, " "))
	}
	return strings.Join(lines, "\n")
}

// next reports whether the element being drawn is the selected target.
func (w *writer) next() bool {
	selected := w.index == w.opts.Selected
	w.index++
	return selected
}

func (w *writer) link(l render.Link) string {
	if w.next() {
		return w.st.ActionSelected.Render(l.Text + " ↗")
	}
	return w.st.Link.Render(l.Text) + w.st.Muted.Render(" ↗")
}

func (w *writer) action(a render.Action) string {
	label := "[ " + a.Label + " ]"
	if w.next() {
		return w.st.ActionSelected.Render(label)
	}
	return w.st.Action.Render(label)
}

func (w *writer) field(f render.Field) string {
	if w.opts.Field != nil {
		return w.st.Label.Render(f.Label) + "\n" + w.opts.Field(f)
	}
	value := f.Value
	if value == "" {
		value = w.st.Muted.Italic(true).Render(f.Placeholder)
	} else {
		value = w.wrap(value)
	}
	return w.st.Label.Render(f.Label) + "\n" + value
}

func (w *writer) wrap(s string) string {
	return w.wrapAt(s, w.inner)
}

func (w *writer) wrapAt(s string, width int) string {
	if w.inner <= 0 {
		return s
	}
	return util.WrapANSI(s, width)
}

func (w *writer) fit(s string) string {
	if w.inner <= 0 {
		return s
	}
	return util.TruncateANSI(s, w.inner)
}
