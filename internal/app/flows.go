package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/workorders/internal/credential"
	"github.com/Iron-Ham/workorders/internal/errors"
	"github.com/Iron-Ham/workorders/internal/logging"
	"github.com/Iron-Ham/workorders/internal/model"
	"github.com/Iron-Ham/workorders/internal/nav"
	"github.com/Iron-Ham/workorders/internal/render"
)

// Start begins bootstrap. The returned command resolves the credential,
// which signals the host platform when one is present.
func (c *Core) Start() tea.Cmd {
	c.setStatus(StatusLoading)
	platform, params := c.host, c.params
	return func() tea.Msg {
		return CredentialResolvedMsg{Credential: credential.Resolve(platform, params)}
	}
}

// Update applies a completion message and returns the follow-up command,
// if any. Unknown messages are ignored.
func (c *Core) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case CredentialResolvedMsg:
		return c.handleCredential(msg)
	case MeLoadedMsg:
		c.inFlight--
		return c.handleMe(msg)
	case OrderLoadedMsg:
		c.inFlight--
		return c.handleOrder(msg)
	case ProfileSavedMsg:
		c.inFlight--
		return c.handleProfileSaved(msg)
	case StageAddedMsg:
		c.inFlight--
		return c.handleStageAdded(msg)
	}
	return nil
}

// OpenOrder starts the open-order flow for orderID. No existence check is
// made; the server decides.
func (c *Core) OpenOrder(orderID string) tea.Cmd {
	c.setStatus(StatusLoadingOrder)
	return c.loadOrder(FlowOpenOrder, orderID)
}

// SaveProfile sends the typed contact and payment values. The profile is
// reloaded from the server on success.
func (c *Core) SaveProfile(contact, payment string) tea.Cmd {
	if c.svc == nil {
		c.fail(FlowSaveProfile, StatusSaveFailed, errors.ErrNoCredential)
		return nil
	}
	c.setStatus(StatusSaving)
	c.inFlight++
	svc, ctx := c.svc, c.ctx
	update := model.ProfileUpdate{ContactInfo: contact, PaymentInfo: payment}
	return func() tea.Msg {
		return ProfileSavedMsg{Err: svc.UpdateProfile(ctx, update)}
	}
}

// OpenStageDialog shows the stage dialog for the current order. It is a
// no-op unless the current order accepts new stages.
func (c *Core) OpenStageDialog() error {
	detail := c.state.CurrentOrder
	if detail == nil {
		return errors.ErrNoOrderOpen
	}
	if !detail.Order.CanAddStage() {
		return errors.NewValidationError("stages cannot be added to this order").WithValue(detail.Order.OrderID)
	}
	c.dialog.Open(detail.Order.OrderID)
	return nil
}

// CancelStageDialog closes the stage dialog and invalidates its handler.
func (c *Core) CancelStageDialog() {
	c.dialog.Cancel()
}

// SubmitStage records the typed inputs and fires the bound submit handler.
// Invalid hours surface as an error status and alert with the dialog left
// open. Submitting without a bound handler is rejected without side effects.
func (c *Core) SubmitStage(hours, comment string) (tea.Cmd, error) {
	ticket, ok := c.dialog.Current()
	if !ok {
		if c.dialog.IsOpen() {
			return nil, errors.ErrStaleTicket
		}
		return nil, errors.ErrDialogClosed
	}
	c.dialog.SetInputs(hours, comment)
	sub, err := c.dialog.Submit(ticket)
	if err != nil {
		if errors.Is(err, errors.ErrInvalidInput) {
			c.fail(FlowAddStage, StatusError, err)
		}
		return nil, err
	}
	if c.svc == nil {
		c.dialog.Failed(ticket)
		c.fail(FlowAddStage, StatusError, errors.ErrNoCredential)
		return nil, errors.ErrNoCredential
	}

	c.setStatus(StatusSavingStage)
	c.inFlight++
	svc, ctx := c.svc, c.ctx
	return func() tea.Msg {
		ack, err := svc.AddStage(ctx, sub.OrderID, sub.Request)
		return StageAddedMsg{Ticket: sub.Ticket, OrderID: sub.OrderID, Ack: ack, Err: err}
	}, nil
}

func (c *Core) loadMe(flow Flow) tea.Cmd {
	c.inFlight++
	svc, ctx := c.svc, c.ctx
	return func() tea.Msg {
		me, err := svc.Me(ctx)
		return MeLoadedMsg{Flow: flow, Me: me, Err: err}
	}
}

func (c *Core) loadOrder(flow Flow, orderID string) tea.Cmd {
	if c.svc == nil {
		c.fail(flow, StatusError, errors.ErrNoCredential)
		return nil
	}
	c.inFlight++
	svc, ctx := c.svc, c.ctx
	return func() tea.Msg {
		detail, err := svc.Order(ctx, orderID)
		return OrderLoadedMsg{Flow: flow, OrderID: orderID, Detail: detail, Err: err}
	}
}

func (c *Core) handleCredential(msg CredentialResolvedMsg) tea.Cmd {
	c.state.Credential = msg.Credential
	c.setPhase(PhaseCredentialResolved)
	c.logger.WithFlow(string(FlowBootstrap)).Info("credential resolved", "credential", msg.Credential.String())

	svc, err := c.newService(msg.Credential)
	if err != nil {
		c.failBootstrap(err)
		return nil
	}
	c.svc = svc
	c.setStatus(StatusLoading)
	return c.loadMe(FlowBootstrap)
}

func (c *Core) handleMe(msg MeLoadedMsg) tea.Cmd {
	if msg.Err != nil {
		if msg.Flow == FlowBootstrap {
			c.failBootstrap(msg.Err)
		} else {
			c.fail(msg.Flow, StatusSaveFailed, msg.Err)
		}
		return nil
	}

	c.state.SetMe(msg.Me)
	c.renderViews(render.ViewOrders, render.ViewProfile)

	if msg.Flow != FlowBootstrap {
		return nil
	}
	c.setPhase(PhaseProfileLoaded)

	// The default tab is always valid.
	_ = c.ActivateTab(nav.TabOrders)
	c.setPhase(PhaseTabActivated)

	if c.params.HasDeepLink() {
		c.setStatus(StatusLoadingOrder)
		return c.loadOrder(FlowBootstrap, c.params.OrderID)
	}
	c.setPhase(PhaseReady)
	c.setStatus(StatusBooted)
	return nil
}

func (c *Core) handleOrder(msg OrderLoadedMsg) tea.Cmd {
	if msg.Err != nil {
		if msg.Flow == FlowBootstrap {
			c.failBootstrap(msg.Err)
		} else {
			c.fail(msg.Flow, StatusError, msg.Err)
		}
		return nil
	}

	c.state.SetOrder(msg.OrderID, msg.Detail)
	c.renderViews(render.ViewOrder, render.ViewProperty)
	_ = c.ActivateTab(nav.TabOrder)
	c.logger.WithFlow(string(msg.Flow)).WithOrder(msg.OrderID).Info("order loaded",
		"stages", len(msg.Detail.Stages),
		"files", len(msg.Detail.Files),
		"properties", len(msg.Detail.Properties),
	)

	switch msg.Flow {
	case FlowBootstrap:
		c.setPhase(PhaseDeepLinkOrderLoaded)
		c.setPhase(PhaseReady)
		c.setStatus(StatusBooted)
	case FlowAddStage:
		c.setStatus(StatusStageAdded)
	default:
		c.setStatus(StatusReady)
	}
	return nil
}

func (c *Core) handleProfileSaved(msg ProfileSavedMsg) tea.Cmd {
	if msg.Err != nil {
		// Typed values stay in the fields: the profile view is not re-rendered.
		c.fail(FlowSaveProfile, StatusSaveFailed, msg.Err)
		return nil
	}
	c.setStatus(StatusSaved)
	return c.loadMe(FlowSaveProfile)
}

func (c *Core) handleStageAdded(msg StageAddedMsg) tea.Cmd {
	if msg.Err != nil {
		c.dialog.Failed(msg.Ticket)
		c.fail(FlowAddStage, StatusError, msg.Err)
		return nil
	}
	c.dialog.Succeeded(msg.Ticket)
	c.setStatus(StatusLoadingOrder)
	return c.loadOrder(FlowAddStage, msg.OrderID)
}

func (c *Core) fail(flow Flow, status string, err error) {
	logFailure(c.logger.WithFlow(string(flow)), "flow failed", err)
	c.setStatus(status)
	c.alert(errors.Message(err))
}

// failBootstrap halts bootstrap. The orders tab is activated when none is
// yet so the placeholder views stay reachable.
func (c *Core) failBootstrap(err error) {
	logFailure(c.logger.WithFlow(string(FlowBootstrap)), "bootstrap failed", err,
		"phase", c.phase.String(),
	)
	c.setPhase(PhaseErrored)
	c.setStatus(StatusBootError)
	if c.nav.Active() == "" {
		_ = c.ActivateTab(nav.TabOrders)
	}
	c.alert(errors.Message(err))
}

// logFailure logs err at the level its severity maps to. Remote failures
// carry their HTTP status.
func logFailure(logger *logging.Logger, msg string, err error, args ...any) {
	if errors.IsRemote(err) {
		args = append(args, "status_code", errors.StatusCode(err))
	}
	args = append(args, "error", err.Error())

	switch errors.GetSeverity(err) {
	case errors.SeverityDebug:
		logger.Debug(msg, args...)
	case errors.SeverityInfo:
		logger.Info(msg, args...)
	case errors.SeverityWarning:
		logger.Warn(msg, args...)
	default:
		logger.Error(msg, args...)
	}
}
