// Package model defines the wire shapes exchanged with the order-management
// API. Every type here is server-owned: the client decodes, displays and
// echoes these values but never derives new ones.
package model

// DisplayMode controls how an order's stages are denominated and whether
// the contractor may append new ones.
type DisplayMode string

const (
	// DisplayHours denominates stages in hours. Stage creation is allowed
	// unless the order is read-only.
	DisplayHours DisplayMode = "hours"
	// DisplaySums denominates stages in money. Stage creation is never
	// offered.
	DisplaySums DisplayMode = "sums"
)

// Contractor is the authenticated user's profile.
type Contractor struct {
	TgID          int64   `json:"tg_id"`
	AdvanceAmount int64   `json:"advance_amount"`
	ContactInfo   *string `json:"contact_info"`
	PaymentInfo   *string `json:"payment_info"`
}

// Contact returns the contact info or "" when unset.
func (c Contractor) Contact() string { return deref(c.ContactInfo) }

// Payment returns the payment info or "" when unset.
func (c Contractor) Payment() string { return deref(c.PaymentInfo) }

// Order carries the order fields shared by the list and detail responses.
// The list endpoint fills every field; the list view uses only the id and
// chat link.
type Order struct {
	OrderID           string      `json:"order_id"`
	ChatLink          *string     `json:"chat_link"`
	TzText            *string     `json:"tz_text"`
	TermsText         *string     `json:"terms_text"`
	StagesDisplayMode DisplayMode `json:"stages_display_mode"`
	StagesReadonly    bool        `json:"stages_readonly"`
}

// OrderSummary is an element of the contractor's order list.
type OrderSummary = Order

// Chat returns the chat link or "" when unset.
func (o Order) Chat() string { return deref(o.ChatLink) }

// Tz returns the specification text or "" when unset.
func (o Order) Tz() string { return deref(o.TzText) }

// Terms returns the terms text or "" when unset.
func (o Order) Terms() string { return deref(o.TermsText) }

// CanAddStage reports whether the contractor may append a stage:
// the order must be denominated in hours and not read-only.
func (o Order) CanAddStage() bool {
	return !o.StagesReadonly && o.StagesDisplayMode == DisplayHours
}

// Me is the response of GET /api/app/me.
type Me struct {
	Contractor Contractor     `json:"contractor"`
	Orders     []OrderSummary `json:"orders"`
}

// Stage is a recorded increment of progress. Exactly one of Hours and
// Amount is meaningful, depending on the order's display mode.
type Stage struct {
	ID           int64     `json:"id"`
	Date         Timestamp `json:"date"`
	Hours        *int64    `json:"hours"`
	Amount       *int64    `json:"amount"`
	Comment      *string   `json:"comment"`
	ContractorID int64     `json:"contractor_id"`
}

// Note returns the stage comment or "" when unset.
func (s Stage) Note() string { return deref(s.Comment) }

// OrderFile is an attached file link.
type OrderFile struct {
	ID   int64   `json:"id"`
	Name *string `json:"name"`
	URL  string  `json:"url"`
}

// PropertyItem is property held by the contractor for an order.
type PropertyItem struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Quantity int64   `json:"quantity"`
	Comment  *string `json:"comment"`
}

// Note returns the property comment or "" when unset.
func (p PropertyItem) Note() string { return deref(p.Comment) }

// OrderDetail is the response of GET /api/app/orders/{order_id}.
type OrderDetail struct {
	Order      Order          `json:"order"`
	Contractor Contractor     `json:"contractor"`
	Stages     []Stage        `json:"stages"`
	Files      []OrderFile    `json:"files"`
	Properties []PropertyItem `json:"properties"`
}

// ProfileUpdate is the body of PUT /api/app/profile.
type ProfileUpdate struct {
	ContactInfo string `json:"contact_info"`
	PaymentInfo string `json:"payment_info"`
}

// StageRequest is the body of POST /api/app/orders/{order_id}/stages.
// Both fields are always encoded: hours as a number, comment as a string
// or null.
type StageRequest struct {
	Hours   float64 `json:"hours"`
	Comment *string `json:"comment"`
}

// Ack is the body returned by mutation endpoints.
type Ack struct {
	OK      bool  `json:"ok"`
	StageID int64 `json:"stage_id,omitempty"`
}

// String returns a pointer to s.
func String(s string) *string { return &s }

// Int returns a pointer to n.
func Int(n int64) *int64 { return &n }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
