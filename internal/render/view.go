// Package render turns application state into view descriptions. Every
// renderer is a pure function of a state.AppState: the same state always
// yields the same View, and nothing is mutated. Adapters apply a View to a
// concrete surface: [Markup] produces an HTML page, the tui/view package
// draws it in the terminal.
//
// Text inside a View is raw and unescaped; escaping is the adapter's job.
package render

import (
	"time"

	"github.com/Iron-Ham/workorders/internal/state"
)

// ViewID names one of the four views.
type ViewID string

const (
	ViewOrders   ViewID = "view-orders"
	ViewOrder    ViewID = "view-order"
	ViewProperty ViewID = "view-property"
	ViewProfile  ViewID = "view-profile"
)

// AllViews lists the views in display order.
var AllViews = []ViewID{ViewOrders, ViewOrder, ViewProperty, ViewProfile}

// View is the rendered content of one view.
type View struct {
	ID    ViewID
	Cards []Card
}

// Card is a titled group of blocks.
type Card struct {
	Title  string
	Blocks []Block
}

// BlockKind discriminates Block.
type BlockKind int

const (
	// BlockParagraph is free text.
	BlockParagraph BlockKind = iota
	// BlockPlaceholder explains why there is nothing to show.
	BlockPlaceholder
	// BlockNotice explains why an action is unavailable.
	BlockNotice
	// BlockKV is a labelled value, optionally a link.
	BlockKV
	// BlockList is a list of items.
	BlockList
	// BlockAction is a button.
	BlockAction
	// BlockField is an editable multi-line text input.
	BlockField
)

// Block is one element of a card. Which fields are set depends on Kind.
type Block struct {
	Kind   BlockKind
	Text   string
	Label  string
	Strong bool
	Link   *Link
	Items  []Item
	Action *Action
	Field  *Field
}

// Link is a navigable URL with visible text.
type Link struct {
	Href string
	Text string
}

// Item is a row of a list block.
type Item struct {
	Title  string
	Aside  string
	Sub    string
	Link   *Link
	Action *Action
}

// ActionKind identifies what activating an action does.
type ActionKind int

const (
	ActionOpenOrder ActionKind = iota
	ActionAddStage
	ActionSaveProfile
)

// Action is an interactive control. OrderID is set for order-scoped
// actions.
type Action struct {
	Kind    ActionKind
	Label   string
	OrderID string
}

// FieldID identifies an editable profile field.
type FieldID string

const (
	FieldContactInfo FieldID = "contactInfo"
	FieldPaymentInfo FieldID = "paymentInfo"
)

// Field is an editable multi-line input pre-filled with Value.
type Field struct {
	ID          FieldID
	Label       string
	Value       string
	Placeholder string
	Rows        int
}

// Options control locale-dependent formatting.
type Options struct {
	// TimeLayout formats stage dates; empty selects format.DefaultTimeLayout.
	TimeLayout string
	// Location is the zone stage dates are shown in; nil selects time.Local.
	Location *time.Location
}

// Renderer renders views with fixed formatting options.
type Renderer struct {
	opts Options
}

// New returns a Renderer.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render dispatches to the renderer for id. Unknown ids yield an empty View.
func (r *Renderer) Render(id ViewID, s state.AppState) View {
	switch id {
	case ViewOrders:
		return Orders(s)
	case ViewOrder:
		return r.OrderDetail(s)
	case ViewProperty:
		return Property(s)
	case ViewProfile:
		return Profile(s)
	default:
		return View{ID: id}
	}
}

// RenderAll renders every view in display order.
func (r *Renderer) RenderAll(s state.AppState) []View {
	views := make([]View, 0, len(AllViews))
	for _, id := range AllViews {
		views = append(views, r.Render(id, s))
	}
	return views
}

// Actions returns every action in v in document order.
func (v View) Actions() []Action {
	var out []Action
	for _, c := range v.Cards {
		for _, b := range c.Blocks {
			if b.Action != nil {
				out = append(out, *b.Action)
			}
			for _, it := range b.Items {
				if it.Action != nil {
					out = append(out, *it.Action)
				}
			}
		}
	}
	return out
}

// HasAction reports whether v offers an action of kind.
func (v View) HasAction(kind ActionKind) bool {
	for _, a := range v.Actions() {
		if a.Kind == kind {
			return true
		}
	}
	return false
}

// Links returns every link in v in document order.
func (v View) Links() []Link {
	var out []Link
	for _, c := range v.Cards {
		for _, b := range c.Blocks {
			if b.Link != nil {
				out = append(out, *b.Link)
			}
			for _, it := range b.Items {
				if it.Link != nil {
					out = append(out, *it.Link)
				}
			}
		}
	}
	return out
}

// Fields returns every editable field in v.
func (v View) Fields() []Field {
	var out []Field
	for _, c := range v.Cards {
		for _, b := range c.Blocks {
			if b.Field != nil {
				out = append(out, *b.Field)
			}
		}
	}
	return out
}

func paragraph(text string) Block   { return Block{Kind: BlockParagraph, Text: text} }
func placeholder(text string) Block { return Block{Kind: BlockPlaceholder, Text: text} }
func notice(text string) Block      { return Block{Kind: BlockNotice, Text: text} }
func list(items []Item) Block       { return Block{Kind: BlockList, Items: items} }
func action(a Action) Block         { return Block{Kind: BlockAction, Action: &a} }

func kv(label, value string, strong bool) Block {
	return Block{Kind: BlockKV, Label: label, Text: value, Strong: strong}
}

func kvLink(label string, link Link) Block {
	return Block{Kind: BlockKV, Label: label, Link: &link}
}
