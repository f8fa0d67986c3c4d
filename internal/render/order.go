package render

import (
	"github.com/Iron-Ham/workorders/internal/format"
	"github.com/Iron-Ham/workorders/internal/state"
)

// OrderDetail renders the currently opened order: details, specification,
// terms, files and stages. The add-stage action is offered only when the
// order is denominated in hours and not read-only.
func (r *Renderer) OrderDetail(s state.AppState) View {
	v := View{ID: ViewOrder}
	if s.CurrentOrder == nil {
		v.Cards = []Card{{Title: "Order", Blocks: []Block{placeholder("Select an order on the Orders tab.")}}}
		return v
	}

	detail := s.CurrentOrder
	o := detail.Order

	details := []Block{kv("Order ID", o.OrderID, true)}
	if chat := o.Chat(); chat != "" {
		details = append(details, kvLink("Chat", Link{Href: chat, Text: "Open"}))
	} else {
		details = append(details, kv("Chat", format.Placeholder, false))
	}
	details = append(details, kv("Stage display", format.ModeLabel(o.StagesDisplayMode), false))
	if o.CanAddStage() {
		details = append(details, action(Action{Kind: ActionAddStage, Label: "Add stage", OrderID: o.OrderID}))
	} else {
		details = append(details, notice("Adding stages is disabled for this order."))
	}

	var files Block
	if len(detail.Files) == 0 {
		files = placeholder("No files attached.")
	} else {
		items := make([]Item, 0, len(detail.Files))
		for _, f := range detail.Files {
			items = append(items, Item{
				Title: format.FileName(f),
				Link:  &Link{Href: f.URL, Text: f.URL},
			})
		}
		files = list(items)
	}

	var stages Block
	if len(detail.Stages) == 0 {
		stages = placeholder("No stages yet.")
	} else {
		items := make([]Item, 0, len(detail.Stages))
		for _, st := range detail.Stages {
			items = append(items, Item{
				Title: format.Timestamp(st.Date, r.opts.TimeLayout, r.opts.Location),
				Aside: format.StageValue(o.StagesDisplayMode, st),
				Sub:   st.Note(),
			})
		}
		stages = list(items)
	}

	v.Cards = []Card{
		{Title: "Details", Blocks: details},
		{Title: "Specification", Blocks: []Block{paragraph(format.OrDash(o.Tz()))}},
		{Title: "Terms", Blocks: []Block{paragraph(format.OrDash(o.Terms()))}},
		{Title: "Files", Blocks: []Block{files}},
		{Title: "Stages", Blocks: []Block{stages}},
	}
	return v
}
