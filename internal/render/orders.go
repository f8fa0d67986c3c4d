package render

import "github.com/Iron-Ham/workorders/internal/state"

// Orders renders the contractor's order list. Before the profile loads it
// shows a loading placeholder; an empty list shows only the "no orders"
// placeholder.
func Orders(s state.AppState) View {
	v := View{ID: ViewOrders}
	if s.Me == nil {
		v.Cards = []Card{{Title: "Orders", Blocks: []Block{placeholder("…")}}}
		return v
	}

	orders := s.Me.Orders
	if len(orders) == 0 {
		v.Cards = []Card{{Title: "Orders", Blocks: []Block{placeholder("No orders have been assigned to you yet.")}}}
		return v
	}

	items := make([]Item, 0, len(orders))
	for _, o := range orders {
		it := Item{
			Title:  o.OrderID,
			Action: &Action{Kind: ActionOpenOrder, Label: "Open", OrderID: o.OrderID},
		}
		if chat := o.Chat(); chat != "" {
			it.Link = &Link{Href: chat, Text: "Open chat"}
		} else {
			it.Sub = "Chat not set"
		}
		items = append(items, it)
	}
	v.Cards = []Card{{Title: "Your orders", Blocks: []Block{list(items)}}}
	return v
}
