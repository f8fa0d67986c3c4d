package render

import (
	"strconv"

	"github.com/Iron-Ham/workorders/internal/format"
	"github.com/Iron-Ham/workorders/internal/state"
)

// Profile renders the contractor profile with its two editable fields.
func Profile(s state.AppState) View {
	v := View{ID: ViewProfile}
	c := s.Contractor()
	if c == nil {
		v.Cards = []Card{{Title: "Profile", Blocks: []Block{placeholder("…")}}}
		return v
	}

	v.Cards = []Card{{
		Title: "Profile",
		Blocks: []Block{
			kv("Telegram ID", strconv.FormatInt(c.TgID, 10), true),
			kv("Current advance", format.Balance(c.AdvanceAmount), true),
			{Kind: BlockField, Field: &Field{
				ID:          FieldContactInfo,
				Label:       "How to reach you",
				Value:       c.Contact(),
				Placeholder: "Phone / email / @username",
				Rows:        3,
			}},
			{Kind: BlockField, Field: &Field{
				ID:          FieldPaymentInfo,
				Label:       "How to pay you",
				Value:       c.Payment(),
				Placeholder: "Payment details",
				Rows:        3,
			}},
			action(Action{Kind: ActionSaveProfile, Label: "Save"}),
		},
	}}
	return v
}
