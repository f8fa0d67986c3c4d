package app

import (
	"github.com/Iron-Ham/workorders/internal/credential"
	"github.com/Iron-Ham/workorders/internal/dialog"
	"github.com/Iron-Ham/workorders/internal/model"
)

// Flow names the user-visible operation a request belongs to. The same
// response message is interpreted differently per flow.
type Flow string

const (
	FlowBootstrap   Flow = "bootstrap"
	FlowOpenOrder   Flow = "open_order"
	FlowSaveProfile Flow = "save_profile"
	FlowAddStage    Flow = "add_stage"
)

// CredentialResolvedMsg carries the outcome of the credential step.
type CredentialResolvedMsg struct {
	Credential credential.Credential
}

// MeLoadedMsg carries the response of GET /api/app/me.
type MeLoadedMsg struct {
	Flow Flow
	Me   *model.Me
	Err  error
}

// OrderLoadedMsg carries the response of GET /api/app/orders/{id}.
type OrderLoadedMsg struct {
	Flow    Flow
	OrderID string
	Detail  *model.OrderDetail
	Err     error
}

// ProfileSavedMsg carries the response of PUT /api/app/profile.
type ProfileSavedMsg struct {
	Err error
}

// StageAddedMsg carries the response of POST /api/app/orders/{id}/stages.
type StageAddedMsg struct {
	Ticket  dialog.Ticket
	OrderID string
	Ack     *model.Ack
	Err     error
}
