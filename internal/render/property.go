package render

import (
	"github.com/Iron-Ham/workorders/internal/format"
	"github.com/Iron-Ham/workorders/internal/state"
)

// Property renders the property held for the current order.
func Property(s state.AppState) View {
	v := View{ID: ViewProperty}
	if s.CurrentOrder == nil {
		v.Cards = []Card{{Title: "Property", Blocks: []Block{placeholder("Open an order to see its property.")}}}
		return v
	}

	props := s.CurrentOrder.Properties
	if len(props) == 0 {
		v.Cards = []Card{{Title: "Property in custody", Blocks: []Block{placeholder("No property is recorded.")}}}
		return v
	}

	items := make([]Item, 0, len(props))
	for _, p := range props {
		items = append(items, Item{
			Title: p.Name,
			Aside: format.Quantity(p.Quantity),
			Sub:   p.Note(),
		})
	}
	v.Cards = []Card{{Title: "Property in custody", Blocks: []Block{list(items)}}}
	return v
}
