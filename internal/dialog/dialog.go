// Package dialog controls the modal stage-add flow. Each opening binds
// exactly one submit handler, represented by a Ticket. Opening again,
// cancelling or submitting invalidates the previous ticket, so repeated
// openings can never accumulate duplicate submissions.
package dialog

import (
	"math"
	"strconv"
	"strings"

	"github.com/Iron-Ham/workorders/internal/errors"
	"github.com/Iron-Ham/workorders/internal/model"
)

// Ticket identifies one bound submit handler.
type Ticket struct {
	gen     uint64
	orderID string
}

// OrderID returns the order the ticket submits to.
func (t Ticket) OrderID() string { return t.orderID }

// Valid reports whether t was issued by a controller.
func (t Ticket) Valid() bool { return t.gen != 0 }

// Submission is a shaped stage request ready to be posted.
type Submission struct {
	Ticket  Ticket
	OrderID string
	Request model.StageRequest
}

// Controller is the dialog state. The zero value is closed.
type Controller struct {
	gen     uint64
	open    bool
	armed   bool
	orderID string
	hours   string
	comment string
}

// Open shows the dialog for orderID with blank inputs and binds a fresh
// ticket. Any previously issued ticket stops being accepted.
func (c *Controller) Open(orderID string) Ticket {
	c.gen++
	c.open = true
	c.armed = true
	c.orderID = orderID
	c.hours = ""
	c.comment = ""
	return c.ticket()
}

// IsOpen reports whether the dialog is shown.
func (c *Controller) IsOpen() bool { return c.open }

// OrderID returns the order the open dialog belongs to.
func (c *Controller) OrderID() string { return c.orderID }

// Inputs returns the current raw input values.
func (c *Controller) Inputs() (hours, comment string) { return c.hours, c.comment }

// SetInputs records the raw input values.
func (c *Controller) SetInputs(hours, comment string) {
	c.hours = hours
	c.comment = comment
}

// Current returns the bound ticket, if any.
func (c *Controller) Current() (Ticket, bool) {
	if !c.open || !c.armed {
		return Ticket{}, false
	}
	return c.ticket(), true
}

// Submit shapes the inputs into a request and consumes t. It fails with
// ErrDialogClosed when nothing is open, ErrStaleTicket when t is not the
// bound ticket, and a ValidationError when the hours input is not a
// number. A validation failure leaves t bound.
func (c *Controller) Submit(t Ticket) (Submission, error) {
	if !c.open {
		return Submission{}, errors.ErrDialogClosed
	}
	if !c.armed || t.gen != c.gen {
		return Submission{}, errors.ErrStaleTicket
	}
	req, err := Shape(c.hours, c.comment)
	if err != nil {
		return Submission{}, err
	}
	c.armed = false
	return Submission{Ticket: t, OrderID: c.orderID, Request: req}, nil
}

// Succeeded closes the dialog if t is still the latest ticket. It reports
// whether the dialog was closed; a stale success leaves a newer dialog
// alone.
func (c *Controller) Succeeded(t Ticket) bool {
	if !c.open || t.gen != c.gen {
		return false
	}
	c.open = false
	c.armed = false
	return true
}

// Failed keeps the dialog open with its inputs and binds a fresh ticket,
// provided t is still the latest ticket.
func (c *Controller) Failed(t Ticket) (Ticket, bool) {
	if !c.open || t.gen != c.gen {
		return Ticket{}, false
	}
	c.gen++
	c.armed = true
	return c.ticket(), true
}

// Cancel closes the dialog and invalidates its ticket.
func (c *Controller) Cancel() {
	if !c.open {
		return
	}
	c.gen++
	c.open = false
	c.armed = false
}

func (c *Controller) ticket() Ticket {
	return Ticket{gen: c.gen, orderID: c.orderID}
}

// Shape converts raw inputs into a stage request. Blank hours become 0 and
// a blank comment becomes null. Hours are not clamped; range checks belong
// to the server. A decimal comma is accepted.
func Shape(hours, comment string) (model.StageRequest, error) {
	req := model.StageRequest{}

	raw := strings.TrimSpace(hours)
	if raw != "" {
		v, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return model.StageRequest{}, errors.NewValidationError("hours must be a number").
				WithField("hours").
				WithValue(hours)
		}
		req.Hours = v
	}

	if comment != "" {
		req.Comment = &comment
	}
	return req, nil
}
