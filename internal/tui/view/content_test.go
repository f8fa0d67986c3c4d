package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/workorders/internal/render"
	"github.com/Iron-Ham/workorders/internal/tui/styles"
	"github.com/Iron-Ham/workorders/internal/util"
)

func detailView() render.View {
	return render.View{
		ID: render.ViewOrder,
		Cards: []render.Card{
			{
				Title: "Details",
				Blocks: []render.Block{
					{Kind: render.BlockKV, Label: "Order ID", Text: "ORD-1", Strong: true},
					{Kind: render.BlockKV, Label: "Chat", Link: &render.Link{Href: "https://t.me/c/1", Text: "Open"}},
					{Kind: render.BlockAction, Action: &render.Action{Kind: render.ActionAddStage, Label: "Add stage", OrderID: "ORD-1"}},
				},
			},
			{
				Title: "Files",
				Blocks: []render.Block{{
					Kind: render.BlockList,
					Items: []render.Item{
						{Title: "plan.pdf", Link: &render.Link{Href: "https://files/plan.pdf", Text: "Download"}},
						{Title: "File", Link: &render.Link{Href: "https://files/2", Text: "Download"}},
					},
				}},
			},
			{
				Title:  "Stages",
				Blocks: []render.Block{{Kind: render.BlockPlaceholder, Text: "No stages yet."}},
			},
		},
	}
}

func TestTargets_DocumentOrder(t *testing.T) {
	targets := Targets(detailView())
	if len(targets) != 4 {
		t.Fatalf("got %d targets, want 4", len(targets))
	}
	if targets[0].Link == nil || targets[0].Link.Href != "https://t.me/c/1" {
		t.Errorf("targets[0] = %+v, want chat link", targets[0])
	}
	if targets[1].Action == nil || targets[1].Action.Kind != render.ActionAddStage {
		t.Errorf("targets[1] = %+v, want add-stage action", targets[1])
	}
	if targets[3].Link == nil || targets[3].Link.Href != "https://files/2" {
		t.Errorf("targets[3] = %+v", targets[3])
	}
}

func TestContent(t *testing.T) {
	st := styles.Default()
	out := util.PlainText(Content(st, detailView(), ContentOptions{Width: 40, Selected: 1}))

	for _, want := range []string{"Details", "Order ID: ORD-1", "Chat: Open ↗", "[ Add stage ]", "• plan.pdf", "No stages yet."} {
		if !strings.Contains(out, want) {
			t.Errorf("content missing %q:\n%s", want, out)
		}
	}
	for _, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w > 40 {
			t.Errorf("line wider than 40 (%d): %q", w, line)
		}
	}
}

func TestContent_WrapsLongText(t *testing.T) {
	v := render.View{Cards: []render.Card{{
		Title:  "Specification",
		Blocks: []render.Block{{Kind: render.BlockParagraph, Text: strings.Repeat("paint the walls ", 10)}},
	}}}
	out := util.PlainText(Content(styles.Default(), v, ContentOptions{Width: 30, Selected: -1}))
	if strings.Count(out, "paint") != 10 {
		t.Errorf("wrapping lost text:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if lipgloss.Width(line) > 30 {
			t.Errorf("line wider than 30: %q", line)
		}
	}
}

func TestContent_FieldCallback(t *testing.T) {
	v := render.View{Cards: []render.Card{{
		Title: "Contacts",
		Blocks: []render.Block{{
			Kind:  render.BlockField,
			Field: &render.Field{ID: render.FieldContactInfo, Label: "Contact", Value: "@me", Placeholder: "Phone"},
		}},
	}}}

	static := util.PlainText(Content(styles.Default(), v, ContentOptions{Selected: -1}))
	if !strings.Contains(static, "@me") {
		t.Errorf("static field should show its value:\n%s", static)
	}

	var seen render.FieldID
	edited := util.PlainText(Content(styles.Default(), v, ContentOptions{
		Selected: -1,
		Field: func(f render.Field) string {
			seen = f.ID
			return "<editor>"
		},
	}))
	if seen != render.FieldContactInfo || !strings.Contains(edited, "<editor>") {
		t.Errorf("field callback not used: seen=%q\n%s", seen, edited)
	}

	v.Cards[0].Blocks[0].Field.Value = ""
	empty := util.PlainText(Content(styles.Default(), v, ContentOptions{Selected: -1}))
	if !strings.Contains(empty, "Phone") {
		t.Errorf("empty field should show the placeholder:\n%s", empty)
	}
}

func TestChrome(t *testing.T) {
	st := styles.Default()

	tabs := util.PlainText(Tabs(st, []render.PageTab{
		{Name: "orders", Label: "Orders", Active: true},
		{Name: "order", Label: "Order"},
	}))
	if !strings.Contains(tabs, "1 Orders") || !strings.Contains(tabs, "2 Order") {
		t.Errorf("Tabs() = %q", tabs)
	}

	bar := util.PlainText(StatusBar(st, "Saving…", ToneBusy, "⣾", 30))
	if !strings.Contains(bar, "⣾ Saving…") || lipgloss.Width(bar) != 30 {
		t.Errorf("StatusBar() = %q (width %d)", bar, lipgloss.Width(bar))
	}
	if got := util.PlainText(StatusBar(st, "Error", ToneError, "⣾", 0)); strings.Contains(got, "⣾") {
		t.Errorf("spinner shown outside busy tone: %q", got)
	}

	alert := util.PlainText(Alert(st, "Order not found or not assigned", 3, 40))
	if !strings.Contains(alert, "Order not found") || !strings.Contains(alert, "(2 more)") {
		t.Errorf("Alert() = %s", alert)
	}

	dlg := util.PlainText(StageDialog(st, StageDialogState{OrderID: "ORD-1", Hours: "[2]", Comment: "[primer]", Focus: 1}, 50))
	for _, want := range []string{"Add stage · ORD-1", "  Hours", "› Comment", "[primer]"} {
		if !strings.Contains(dlg, want) {
			t.Errorf("StageDialog() missing %q:\n%s", want, dlg)
		}
	}
}
