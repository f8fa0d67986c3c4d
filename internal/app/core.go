// Package app is the client core: it owns the application state, runs the
// bootstrap sequence and the user flows, and keeps the rendered views in
// step with the state.
//
// The core follows the Elm architecture. Every network call is a tea.Cmd
// that captures only its inputs; state is mutated exclusively in Update
// when the call's completion message arrives. Two different flows may be
// in flight at once; nothing is de-duplicated or cancelled.
package app

import (
	"context"
	"fmt"

	"github.com/Iron-Ham/workorders/internal/api"
	"github.com/Iron-Ham/workorders/internal/credential"
	"github.com/Iron-Ham/workorders/internal/dialog"
	"github.com/Iron-Ham/workorders/internal/host"
	"github.com/Iron-Ham/workorders/internal/launch"
	"github.com/Iron-Ham/workorders/internal/logging"
	"github.com/Iron-Ham/workorders/internal/nav"
	"github.com/Iron-Ham/workorders/internal/render"
	"github.com/Iron-Ham/workorders/internal/state"
)

// Phase is a bootstrap step.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseCredentialResolved
	PhaseProfileLoaded
	PhaseTabActivated
	PhaseDeepLinkOrderLoaded
	PhaseReady
	PhaseErrored
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseCredentialResolved:
		return "credential_resolved"
	case PhaseProfileLoaded:
		return "profile_loaded"
	case PhaseTabActivated:
		return "tab_activated"
	case PhaseDeepLinkOrderLoaded:
		return "deep_link_order_loaded"
	case PhaseReady:
		return "ready"
	case PhaseErrored:
		return "errored"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Status line phrases.
const (
	StatusLoading      = "Loading…"
	StatusLoadingOrder = "Loading order…"
	StatusBooted       = "Ready ✅"
	StatusReady        = "Ready"
	StatusError        = "Error"
	StatusBootError    = "Authorization/loading error"
	StatusSaving       = "Saving…"
	StatusSaved        = "Saved ✅"
	StatusSaveFailed   = "Save failed"
	StatusSavingStage  = "Saving stage…"
	StatusStageAdded   = "Stage added ✅"
)

// ServiceFactory builds the API service once the credential is known.
type ServiceFactory func(cred credential.Credential) (api.Service, error)

// Config wires a Core.
type Config struct {
	// NewService builds the API client for the resolved credential.
	NewService ServiceFactory
	// Host is the host platform, or nil outside the host.
	Host host.Platform
	// Params are the launch parameters.
	Params launch.Params
	// Render controls date formatting.
	Render render.Options
	// Logger receives phase transitions and flow failures.
	Logger *logging.Logger
	// Context bounds every request; nil means context.Background.
	Context context.Context
}

// Core is the single owner of the application state.
type Core struct {
	ctx        context.Context
	newService ServiceFactory
	svc        api.Service
	host       host.Platform
	params     launch.Params
	logger     *logging.Logger

	state    *state.AppState
	nav      nav.Controller
	dialog   dialog.Controller
	renderer *render.Renderer

	views     map[render.ViewID]render.View
	revisions map[render.ViewID]int

	phase    Phase
	status   string
	alerts   []string
	inFlight int
}

// New creates a core in PhaseInit with every view rendered from the empty
// state.
func New(cfg Config) *Core {
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}

	c := &Core{
		ctx:        ctx,
		newService: cfg.NewService,
		host:       cfg.Host,
		params:     cfg.Params,
		logger:     logger,
		state:      state.New(credential.None()),
		renderer:   render.New(cfg.Render),
		views:      make(map[render.ViewID]render.View, len(render.AllViews)),
		revisions:  make(map[render.ViewID]int, len(render.AllViews)),
	}
	c.renderViews(render.AllViews...)
	return c
}

// Phase returns the bootstrap phase.
func (c *Core) Phase() Phase { return c.phase }

// Status returns the status line text.
func (c *Core) Status() string { return c.status }

// State returns a read-only copy of the application state.
func (c *Core) State() state.AppState { return c.state.Snapshot() }

// ActiveTab returns the active tab.
func (c *Core) ActiveTab() nav.Tab { return c.nav.Active() }

// ActiveView returns the view of the active tab, or "" before the first
// activation.
func (c *Core) ActiveView() render.ViewID { return c.nav.ActiveView() }

// NextTab returns the tab after the active one, wrapping around.
func (c *Core) NextTab() nav.Tab { return c.nav.Next() }

// PrevTab returns the tab before the active one, wrapping around.
func (c *Core) PrevTab() nav.Tab { return c.nav.Prev() }

// View returns the last rendered content of id.
func (c *Core) View(id render.ViewID) render.View { return c.views[id] }

// Revision returns how many times id has been rendered. Adapters holding
// editable copies of a view's fields re-sync them when it changes.
func (c *Core) Revision(id render.ViewID) int { return c.revisions[id] }

// Busy reports whether any request is in flight.
func (c *Core) Busy() bool { return c.inFlight > 0 }

// Dialog exposes the stage dialog state.
func (c *Core) Dialog() *dialog.Controller { return &c.dialog }

// Alerts returns pending alert messages, oldest first.
func (c *Core) Alerts() []string {
	out := make([]string, len(c.alerts))
	copy(out, c.alerts)
	return out
}

// DismissAlert removes the oldest alert.
func (c *Core) DismissAlert() {
	if len(c.alerts) > 0 {
		c.alerts = c.alerts[1:]
	}
}

// Page describes the whole screen for the markup adapter.
func (c *Core) Page(title string) render.Page {
	views := make([]render.View, 0, len(render.AllViews))
	for _, id := range render.AllViews {
		views = append(views, c.views[id])
	}
	hours, comment := c.dialog.Inputs()
	return render.Page{
		Title:  title,
		Status: c.status,
		Tabs:   c.nav.PageTabs(),
		Views:  views,
		Active: c.nav.ActiveView(),
		Dialog: render.PageDialog{Open: c.dialog.IsOpen(), Hours: hours, Comment: comment},
	}
}

// ActivateTab switches to tab and re-renders its view.
func (c *Core) ActivateTab(tab nav.Tab) error {
	id, err := c.nav.Activate(tab)
	if err != nil {
		return err
	}
	c.renderViews(id)
	return nil
}

func (c *Core) renderViews(ids ...render.ViewID) {
	snap := c.state.Snapshot()
	for _, id := range ids {
		c.views[id] = c.renderer.Render(id, snap)
		c.revisions[id]++
	}
}

func (c *Core) setPhase(p Phase) {
	c.logger.WithFlow(string(FlowBootstrap)).Info("bootstrap phase", "from", c.phase.String(), "to", p.String())
	c.phase = p
}

func (c *Core) setStatus(s string) {
	c.status = s
}

func (c *Core) alert(msg string) {
	c.alerts = append(c.alerts, msg)
}
