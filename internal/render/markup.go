package render

import (
	"strconv"
	"strings"

	"github.com/Iron-Ham/workorders/internal/format"
)

// ActiveClass marks the single visible view and the single selected tab.
const ActiveClass = "active"

// PageTab is a tab control in the page header.
type PageTab struct {
	Name   string
	Label  string
	Active bool
}

// PageDialog is the state of the stage dialog element.
type PageDialog struct {
	Open    bool
	Hours   string
	Comment string
}

// Page describes a full document: tabs, status line, every view, and the
// stage dialog.
type Page struct {
	Title  string
	Status string
	Tabs   []PageTab
	Views  []View
	Active ViewID
	Dialog PageDialog
}

// Markup renders v as a .view section. Every piece of user-supplied text is
// escaped; URLs are attribute-encoded.
func Markup(v View, active bool) string {
	var b strings.Builder
	writeView(&b, v, active)
	return b.String()
}

// HTML renders the page as a standalone HTML document.
func (p Page) HTML() string {
	var b strings.Builder
	b.WriteString("<!doctype html>\n<html>\n<head><meta charset=\"utf-8\"><title>")
	b.WriteString(format.EscapeText(p.Title))
	b.WriteString("</title></head>\n<body>\n")

	b.WriteString(`<header><div id="status">`)
	b.WriteString(format.EscapeText(p.Status))
	b.WriteString("</div>\n<nav class=\"tabs\">")
	for _, t := range p.Tabs {
		b.WriteString(`<button class="`)
		b.WriteString(classes("tab", t.Active))
		b.WriteString(`" data-tab="`)
		b.WriteString(format.EscapeAttr(t.Name))
		b.WriteString(`">`)
		b.WriteString(format.EscapeText(t.Label))
		b.WriteString("</button>")
	}
	b.WriteString("</nav></header>\n<main>\n")

	for _, v := range p.Views {
		writeView(&b, v, v.ID == p.Active)
		b.WriteString("\n")
	}
	b.WriteString("</main>\n")

	b.WriteString(`<dialog id="stageDialog"`)
	if p.Dialog.Open {
		b.WriteString(" open")
	}
	b.WriteString(`><input id="stageHours" type="number" value="`)
	b.WriteString(format.EscapeAttr(p.Dialog.Hours))
	b.WriteString(`"><textarea id="stageComment">`)
	b.WriteString(format.EscapeText(p.Dialog.Comment))
	b.WriteString(`</textarea><button id="stageSubmit" class="btn">Save</button></dialog>`)
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}

func classes(base string, active bool) string {
	if active {
		return base + " " + ActiveClass
	}
	return base
}

func writeView(b *strings.Builder, v View, active bool) {
	b.WriteString(`<section class="`)
	b.WriteString(classes("view", active))
	b.WriteString(`" id="`)
	b.WriteString(format.EscapeAttr(string(v.ID)))
	b.WriteString(`">`)
	for _, c := range v.Cards {
		b.WriteString(`<div class="card"><div class="h">`)
		b.WriteString(format.EscapeText(c.Title))
		b.WriteString("</div>")
		for _, blk := range c.Blocks {
			writeBlock(b, blk)
		}
		b.WriteString("</div>")
	}
	b.WriteString("</section>")
}

func writeBlock(b *strings.Builder, blk Block) {
	switch blk.Kind {
	case BlockParagraph, BlockPlaceholder, BlockNotice:
		b.WriteString(`<p class="p">`)
		b.WriteString(format.EscapeText(blk.Text))
		b.WriteString("</p>")
	case BlockKV:
		b.WriteString(`<div class="kv"><span class="k">`)
		b.WriteString(format.EscapeText(blk.Label))
		b.WriteString(":</span> ")
		switch {
		case blk.Link != nil:
			writeLink(b, *blk.Link)
		case blk.Strong:
			b.WriteString("<b>")
			b.WriteString(format.EscapeText(blk.Text))
			b.WriteString("</b>")
		default:
			b.WriteString(format.EscapeText(blk.Text))
		}
		b.WriteString("</div>")
	case BlockList:
		b.WriteString(`<div class="list">`)
		for _, it := range blk.Items {
			writeItem(b, it)
		}
		b.WriteString("</div>")
	case BlockAction:
		if blk.Action != nil {
			writeAction(b, *blk.Action)
		}
	case BlockField:
		if f := blk.Field; f != nil {
			b.WriteString(`<label class="kv"><span class="k">`)
			b.WriteString(format.EscapeText(f.Label))
			b.WriteString(`</span><textarea id="`)
			b.WriteString(format.EscapeAttr(string(f.ID)))
			b.WriteString(`" rows="`)
			b.WriteString(strconv.Itoa(f.Rows))
			b.WriteString(`" placeholder="`)
			b.WriteString(format.EscapeAttr(f.Placeholder))
			b.WriteString(`">`)
			b.WriteString(format.EscapeText(f.Value))
			b.WriteString("</textarea></label>")
		}
	}
}

func writeItem(b *strings.Builder, it Item) {
	b.WriteString(`<div class="item"><div class="row"><div class="item-title">`)
	b.WriteString(format.EscapeText(it.Title))
	b.WriteString("</div>")
	if it.Aside != "" {
		b.WriteString(`<div class="item-title">`)
		b.WriteString(format.EscapeText(it.Aside))
		b.WriteString("</div>")
	}
	b.WriteString(`</div><div class="item-sub">`)
	if it.Link != nil {
		writeLink(b, *it.Link)
	} else {
		b.WriteString(format.EscapeText(it.Sub))
	}
	b.WriteString("</div>")
	if it.Action != nil {
		writeAction(b, *it.Action)
	}
	b.WriteString("</div>")
}

func writeLink(b *strings.Builder, l Link) {
	b.WriteString(`<a href="`)
	b.WriteString(format.EscapeAttr(l.Href))
	b.WriteString(`" target="_blank">`)
	b.WriteString(format.EscapeText(l.Text))
	b.WriteString("</a>")
}

func writeAction(b *strings.Builder, a Action) {
	b.WriteString(`<button class="btn full"`)
	switch a.Kind {
	case ActionOpenOrder:
		b.WriteString(` data-open-order="`)
		b.WriteString(format.EscapeAttr(a.OrderID))
		b.WriteString(`"`)
	case ActionAddStage:
		b.WriteString(` id="addStageBtn" data-order="`)
		b.WriteString(format.EscapeAttr(a.OrderID))
		b.WriteString(`"`)
	case ActionSaveProfile:
		b.WriteString(` id="saveProfileBtn"`)
	}
	b.WriteString(">")
	b.WriteString(format.EscapeText(a.Label))
	b.WriteString("</button>")
}
