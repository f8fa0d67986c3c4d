// Package state holds the client's in-memory application state. A single
// AppState is owned by the core and handed to renderers by value; it is
// mutated only when a request completes.
package state

import (
	"github.com/Iron-Ham/workorders/internal/credential"
	"github.com/Iron-Ham/workorders/internal/model"
)

// AppState is everything the renderers read.
type AppState struct {
	Credential     credential.Credential
	Me             *model.Me
	CurrentOrderID string
	CurrentOrder   *model.OrderDetail
}

// New returns the state for a session authenticated with cred.
func New(cred credential.Credential) *AppState {
	return &AppState{Credential: cred}
}

// SetMe replaces the profile and order summaries.
func (s *AppState) SetMe(me *model.Me) {
	s.Me = me
}

// SetOrder replaces the current order id and detail together, so stages,
// files and properties always belong to the order that produced them.
func (s *AppState) SetOrder(id string, detail *model.OrderDetail) {
	s.CurrentOrderID, s.CurrentOrder = id, detail
}

// Orders returns the order summaries, or nil before the profile loads.
func (s AppState) Orders() []model.OrderSummary {
	if s.Me == nil {
		return nil
	}
	return s.Me.Orders
}

// Contractor returns the profile, or nil before it loads.
func (s AppState) Contractor() *model.Contractor {
	if s.Me == nil {
		return nil
	}
	return &s.Me.Contractor
}

// HasOrder reports whether an order detail is resident.
func (s AppState) HasOrder() bool {
	return s.CurrentOrder != nil
}

// Snapshot returns a shallow copy for read-only use.
func (s *AppState) Snapshot() AppState {
	return *s
}
