package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Iron-Ham/workorders/internal/api"
	"github.com/Iron-Ham/workorders/internal/credential"
	"github.com/Iron-Ham/workorders/internal/errors"
	"github.com/Iron-Ham/workorders/internal/host"
	"github.com/Iron-Ham/workorders/internal/launch"
	"github.com/Iron-Ham/workorders/internal/logging"
	"github.com/Iron-Ham/workorders/internal/nav"
	"github.com/Iron-Ham/workorders/internal/render"
	"github.com/Iron-Ham/workorders/internal/testutil"
)

const sessionBlob = "query_id=AAH&user=%7B%22id%22%3A42%7D&hash=c0ffee"

type harness struct {
	core    *Core
	backend *testutil.Backend
	logs    *bytes.Buffer
}

func newHarness(t *testing.T, platform host.Platform, params launch.Params) *harness {
	t.Helper()

	b, srv := testutil.StartBackend(t, testutil.DefaultFixture())
	logs := &bytes.Buffer{}
	core := New(Config{
		NewService: func(cred credential.Credential) (api.Service, error) {
			return api.NewClient(srv.URL, cred)
		},
		Host:   platform,
		Params: params,
		Render: render.Options{Location: time.UTC},
		Logger: logging.NewWriterLogger(logs, logging.LevelDebug),
	})
	return &harness{core: core, backend: b, logs: logs}
}

func bootedHarness(t *testing.T) *harness {
	t.Helper()
	h := newHarness(t, nil, launch.Params{DebugUserID: "42"})
	if phase := h.core.Bootstrap(); phase != PhaseReady {
		t.Fatalf("Bootstrap() = %s, want ready (alerts: %v)", phase, h.core.Alerts())
	}
	return h
}

func TestBootstrap_DebugCredential(t *testing.T) {
	h := bootedHarness(t)
	c := h.core

	if c.Status() != StatusBooted {
		t.Errorf("Status() = %q, want %q", c.Status(), StatusBooted)
	}
	if c.ActiveTab() != nav.TabOrders {
		t.Errorf("ActiveTab() = %s, want orders", c.ActiveTab())
	}
	if got := len(c.State().Orders()); got != 3 {
		t.Errorf("loaded %d orders, want 3", got)
	}
	if len(c.View(render.ViewProfile).Fields()) != 2 {
		t.Error("profile view should be pre-rendered after bootstrap")
	}

	// Drive more flows so the header check covers every endpoint.
	c.Drive(c.OpenOrder("ORD-1"))
	c.Drive(c.SaveProfile("@me", "card"))
	if err := c.OpenStageDialog(); err != nil {
		t.Fatalf("OpenStageDialog() error: %v", err)
	}
	cmd, err := c.SubmitStage("1", "")
	if err != nil {
		t.Fatalf("SubmitStage() error: %v", err)
	}
	c.Drive(cmd)

	reqs := h.backend.Requests()
	if len(reqs) < 6 {
		t.Fatalf("expected at least 6 requests, got %d", len(reqs))
	}
	for _, r := range reqs {
		if got := r.Header.Get(credential.HeaderDebug); got != "42" {
			t.Errorf("%s %s debug header = %q, want 42", r.Method, r.Path, got)
		}
		if _, ok := r.Header[http.CanonicalHeaderKey(credential.HeaderSession)]; ok {
			t.Errorf("%s %s carried a session header", r.Method, r.Path)
		}
	}
}

func TestBootstrap_HostSession(t *testing.T) {
	var signals []string
	platform := host.Detect(host.Options{
		Present:  true,
		InitData: sessionBlob,
		OnReady:  func() { signals = append(signals, "ready") },
		OnExpand: func() { signals = append(signals, "expand") },
	})
	h := newHarness(t, platform, launch.Params{DebugUserID: "7"})

	if phase := h.core.Bootstrap(); phase != PhaseReady {
		t.Fatalf("Bootstrap() = %s, want ready", phase)
	}
	if strings.Join(signals, ",") != "ready,expand" {
		t.Errorf("host signals = %v", signals)
	}
	if h.core.State().Credential.Kind() != credential.KindSession {
		t.Errorf("credential = %v, want session", h.core.State().Credential)
	}
	for _, r := range h.backend.Requests() {
		if r.Header.Get(credential.HeaderSession) != sessionBlob {
			t.Errorf("session header = %q", r.Header.Get(credential.HeaderSession))
		}
		if r.Header.Get(credential.HeaderDebug) != "" {
			t.Error("debug header sent alongside a host session")
		}
	}
	if c := h.core.State().Contractor(); c == nil || c.TgID != 42 {
		t.Errorf("contractor = %+v, want 42 from the session", c)
	}
}

func TestBootstrap_NoCredentialFails(t *testing.T) {
	h := newHarness(t, nil, launch.Params{DebugUserID: "not-a-number"})

	if phase := h.core.Bootstrap(); phase != PhaseErrored {
		t.Fatalf("Bootstrap() = %s, want errored", phase)
	}
	if h.core.Status() != StatusBootError {
		t.Errorf("Status() = %q, want %q", h.core.Status(), StatusBootError)
	}
	alerts := h.core.Alerts()
	if len(alerts) != 1 || !strings.Contains(alerts[0], "Unauthorized") {
		t.Errorf("alerts = %v, want the raw 401 body", alerts)
	}
	if h.core.ActiveTab() != nav.TabOrders || h.core.ActiveView() != render.ViewOrders {
		t.Errorf("failed bootstrap should leave the orders view reachable, active = %q", h.core.ActiveTab())
	}
	if h.core.Phase() != PhaseErrored {
		t.Errorf("tab activation after a failure must not advance the phase, got %s", h.core.Phase())
	}
	if h.core.State().Me != nil {
		t.Error("state should stay empty after a failed bootstrap")
	}
	if !strings.Contains(h.logs.String(), "bootstrap failed") {
		t.Error("bootstrap failure should be logged")
	}
}

func TestBootstrap_ServiceFactoryError(t *testing.T) {
	core := New(Config{
		NewService: func(credential.Credential) (api.Service, error) {
			return nil, errors.New("bad base url")
		},
	})
	if phase := core.Bootstrap(); phase != PhaseErrored {
		t.Fatalf("Bootstrap() = %s, want errored", phase)
	}
	if alerts := core.Alerts(); len(alerts) != 1 || alerts[0] != "bad base url" {
		t.Errorf("alerts = %v", alerts)
	}
}

func TestBootstrap_DeepLink(t *testing.T) {
	h := newHarness(t, nil, launch.Params{DebugUserID: "42", OrderID: "ORD-1"})

	if phase := h.core.Bootstrap(); phase != PhaseReady {
		t.Fatalf("Bootstrap() = %s, want ready", phase)
	}
	if h.core.ActiveTab() != nav.TabOrder {
		t.Errorf("deep link should activate the order tab, got %s", h.core.ActiveTab())
	}
	if h.core.State().CurrentOrderID != "ORD-1" {
		t.Errorf("CurrentOrderID = %q", h.core.State().CurrentOrderID)
	}
	if h.core.Status() != StatusBooted {
		t.Errorf("Status() = %q", h.core.Status())
	}
	if !strings.Contains(h.logs.String(), `"to":"deep_link_order_loaded"`) {
		t.Error("deep link phase should be logged")
	}
}

func TestBootstrap_DeepLinkFailureHalts(t *testing.T) {
	h := newHarness(t, nil, launch.Params{DebugUserID: "42", OrderID: "MISSING"})

	if phase := h.core.Bootstrap(); phase != PhaseErrored {
		t.Fatalf("Bootstrap() = %s, want errored", phase)
	}
	// Views rendered before the failing step remain.
	if h.core.ActiveTab() != nav.TabOrders {
		t.Errorf("ActiveTab() = %s, want orders", h.core.ActiveTab())
	}
	if len(h.core.State().Orders()) != 3 {
		t.Error("profile loaded before the failure should be kept")
	}
}

func TestOpenOrder(t *testing.T) {
	h := bootedHarness(t)
	c := h.core

	c.Drive(c.OpenOrder("ORD-1"))

	if c.Status() != StatusReady {
		t.Errorf("Status() = %q, want %q", c.Status(), StatusReady)
	}
	if c.ActiveTab() != nav.TabOrder {
		t.Errorf("ActiveTab() = %s, want order", c.ActiveTab())
	}
	if !c.View(render.ViewOrder).HasAction(render.ActionAddStage) {
		t.Error("ORD-1 should offer the add-stage action")
	}
	if got := len(c.View(render.ViewProperty).Cards[0].Blocks[0].Items); got != 2 {
		t.Errorf("property view has %d items, want 2", got)
	}
}

func TestOpenOrder_FailurePreservesState(t *testing.T) {
	h := bootedHarness(t)
	c := h.core

	c.Drive(c.OpenOrder("ORD-2"))
	before := c.State()
	if err := c.ActivateTab(nav.TabProfile); err != nil {
		t.Fatal(err)
	}

	body := `{"detail":"Order not found or not assigned"}`
	h.backend.Fail(http.MethodGet, "/api/app/orders/ORD-1", http.StatusNotFound, body)
	c.Drive(c.OpenOrder("ORD-1"))

	after := c.State()
	if after.CurrentOrderID != "ORD-2" || after.CurrentOrder != before.CurrentOrder {
		t.Errorf("current order = %q, want ORD-2 preserved", after.CurrentOrderID)
	}
	if c.Status() != StatusError {
		t.Errorf("Status() = %q, want %q", c.Status(), StatusError)
	}
	if alerts := c.Alerts(); len(alerts) != 1 || alerts[0] != body {
		t.Errorf("alerts = %v, want [%s]", alerts, body)
	}
	if c.ActiveTab() != nav.TabProfile {
		t.Errorf("ActiveTab() = %s, want profile unchanged", c.ActiveTab())
	}

	c.DismissAlert()
	if len(c.Alerts()) != 0 {
		t.Error("DismissAlert() should drop the alert")
	}
}

func TestOpenOrder_ReplacesLists(t *testing.T) {
	h := bootedHarness(t)
	c := h.core

	c.Drive(c.OpenOrder("ORD-1"))
	c.Drive(c.OpenOrder("ORD-2"))

	s := c.State()
	if s.CurrentOrderID != "ORD-2" || s.CurrentOrder.Order.OrderID != "ORD-2" {
		t.Fatalf("current = %q / %q", s.CurrentOrderID, s.CurrentOrder.Order.OrderID)
	}
	if len(s.CurrentOrder.Properties) != 0 || len(s.CurrentOrder.Files) != 0 {
		t.Error("ORD-1 lists leaked into ORD-2")
	}
	if got := c.View(render.ViewProperty).Cards[0].Blocks[0].Kind; got != render.BlockPlaceholder {
		t.Errorf("property view block kind = %v, want placeholder", got)
	}
}

func TestOpenOrder_HungRequestKeepsLoadingStatus(t *testing.T) {
	h := bootedHarness(t)
	c := h.core

	cmd := c.OpenOrder("ORD-1")
	if c.Status() != StatusLoadingOrder || !c.Busy() {
		t.Errorf("Status() = %q, Busy() = %v while the request is pending", c.Status(), c.Busy())
	}
	c.Drive(cmd)
	if c.Busy() {
		t.Error("Busy() should clear once the request completes")
	}
}

func TestSaveProfile(t *testing.T) {
	h := bootedHarness(t)
	c := h.core
	rev := c.Revision(render.ViewProfile)

	c.Drive(c.SaveProfile("+7 900 000", "IBAN 123"))

	if c.Status() != StatusSaved {
		t.Errorf("Status() = %q, want %q", c.Status(), StatusSaved)
	}
	profile := c.State().Contractor()
	if profile.Contact() != "+7 900 000" || profile.Payment() != "IBAN 123" {
		t.Errorf("profile after reload = %+v", profile)
	}
	if c.Revision(render.ViewProfile) == rev {
		t.Error("profile view should be re-rendered after reload")
	}
	if n := len(h.backend.RequestsTo(http.MethodGet, api.PathMe)); n != 2 {
		t.Errorf("GET /me called %d times, want 2 (bootstrap + reload)", n)
	}
}

func TestSaveProfile_Failure(t *testing.T) {
	h := bootedHarness(t)
	c := h.core
	rev := c.Revision(render.ViewProfile)

	h.backend.Fail(http.MethodPut, api.PathProfile, http.StatusInternalServerError, "db is down")
	c.Drive(c.SaveProfile("typed", "values"))

	if c.Status() != StatusSaveFailed {
		t.Errorf("Status() = %q, want %q", c.Status(), StatusSaveFailed)
	}
	if alerts := c.Alerts(); len(alerts) != 1 || alerts[0] != "db is down" {
		t.Errorf("alerts = %v", alerts)
	}
	if c.Revision(render.ViewProfile) != rev {
		t.Error("profile view must not be re-rendered, so typed values survive")
	}
	if n := len(h.backend.RequestsTo(http.MethodGet, api.PathMe)); n != 1 {
		t.Errorf("GET /me called %d times, want no reload", n)
	}
}

func TestSaveProfile_ReloadFailure(t *testing.T) {
	h := bootedHarness(t)
	c := h.core

	h.backend.Fail(http.MethodGet, api.PathMe, http.StatusBadGateway, "gateway")
	c.Drive(c.SaveProfile("a", "b"))

	if c.Status() != StatusSaveFailed {
		t.Errorf("Status() = %q, want %q", c.Status(), StatusSaveFailed)
	}
	if got, _ := h.backend.Contractor(42); got.Contact() != "a" {
		t.Error("the PUT itself should have succeeded")
	}
}

func TestAddStage_BlankHoursSendsZero(t *testing.T) {
	h := bootedHarness(t)
	c := h.core
	c.Drive(c.OpenOrder("ORD-1"))

	if err := c.OpenStageDialog(); err != nil {
		t.Fatalf("OpenStageDialog() error: %v", err)
	}
	cmd, err := c.SubmitStage("", "")
	if err != nil {
		t.Fatalf("SubmitStage() error: %v", err)
	}
	c.Drive(cmd)

	posted := h.backend.RequestsTo(http.MethodPost, api.StagesPath("ORD-1"))
	if len(posted) != 1 {
		t.Fatalf("expected 1 stage POST, got %d", len(posted))
	}
	body, err := posted[0].JSON()
	if err != nil {
		t.Fatalf("stage body is not JSON: %v", err)
	}
	hours, ok := body["hours"]
	if !ok || hours != float64(0) {
		t.Errorf("hours = %v (present=%v), want 0", hours, ok)
	}
	if comment, ok := body["comment"]; !ok || comment != nil {
		t.Errorf("comment = %v (present=%v), want explicit null", comment, ok)
	}

	if c.Dialog().IsOpen() {
		t.Error("dialog should close on success")
	}
	if c.Status() != StatusStageAdded {
		t.Errorf("Status() = %q, want %q", c.Status(), StatusStageAdded)
	}
	if got := len(c.State().CurrentOrder.Stages); got != 3 {
		t.Errorf("reloaded order has %d stages, want 3", got)
	}
}

func TestAddStage_FailureKeepsDialogOpen(t *testing.T) {
	h := bootedHarness(t)
	c := h.core
	c.Drive(c.OpenOrder("ORD-1"))
	if err := c.OpenStageDialog(); err != nil {
		t.Fatal(err)
	}

	path := api.StagesPath("ORD-1")
	h.backend.Fail(http.MethodPost, path, http.StatusForbidden, "Stages are readonly for this order")
	cmd, err := c.SubmitStage("2", "primer")
	if err != nil {
		t.Fatal(err)
	}
	c.Drive(cmd)

	if !c.Dialog().IsOpen() {
		t.Fatal("dialog should stay open on failure")
	}
	if hours, comment := c.Dialog().Inputs(); hours != "2" || comment != "primer" {
		t.Errorf("inputs = %q %q, want preserved", hours, comment)
	}
	if c.Status() != StatusError {
		t.Errorf("Status() = %q", c.Status())
	}

	h.backend.Clear()
	cmd, err = c.SubmitStage("2", "primer")
	if err != nil {
		t.Fatalf("resubmit after failure: %v", err)
	}
	c.Drive(cmd)
	if c.Dialog().IsOpen() || c.Status() != StatusStageAdded {
		t.Errorf("resubmit: open=%v status=%q", c.Dialog().IsOpen(), c.Status())
	}
	if n := len(h.backend.RequestsTo(http.MethodPost, path)); n != 2 {
		t.Errorf("POST count = %d, want 2", n)
	}
}

func TestAddStage_InvalidHours(t *testing.T) {
	h := bootedHarness(t)
	c := h.core
	c.Drive(c.OpenOrder("ORD-1"))
	_ = c.OpenStageDialog()

	cmd, err := c.SubmitStage("three", "")
	if !errors.Is(err, errors.ErrInvalidInput) || cmd != nil {
		t.Fatalf("SubmitStage() = %v, %v; want validation error", cmd, err)
	}
	if !c.Dialog().IsOpen() || len(c.Alerts()) != 1 {
		t.Errorf("open=%v alerts=%v", c.Dialog().IsOpen(), c.Alerts())
	}
	if n := len(h.backend.RequestsTo(http.MethodPost, api.StagesPath("ORD-1"))); n != 0 {
		t.Errorf("invalid input reached the server %d times", n)
	}
}

// logEntries decodes the JSON log lines written by the harness logger.
func logEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line is not JSON: %q", line)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestFailureLogLevels(t *testing.T) {
	tests := []struct {
		name       string
		run        func(h *harness)
		msg        string
		wantLevel  string
		wantStatus float64
	}{
		{
			name: "invalid hours",
			run: func(h *harness) {
				_ = h.core.OpenStageDialog()
				_, _ = h.core.SubmitStage("three", "")
			},
			msg:       "flow failed",
			wantLevel: "WARN",
		},
		{
			name: "rejected stage",
			run: func(h *harness) {
				h.backend.Fail(http.MethodPost, api.StagesPath("ORD-1"), http.StatusForbidden, "read only")
				_ = h.core.OpenStageDialog()
				cmd, _ := h.core.SubmitStage("1", "")
				h.core.Drive(cmd)
			},
			msg:        "flow failed",
			wantLevel:  "ERROR",
			wantStatus: http.StatusForbidden,
		},
		{
			name: "missing order",
			run: func(h *harness) {
				h.core.Drive(h.core.OpenOrder("ORD-404"))
			},
			msg:        "flow failed",
			wantLevel:  "ERROR",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := bootedHarness(t)
			h.core.Drive(h.core.OpenOrder("ORD-1"))
			h.logs.Reset()

			tt.run(h)

			var found map[string]any
			for _, e := range logEntries(t, h.logs) {
				if e["msg"] == tt.msg {
					found = e
				}
			}
			if found == nil {
				t.Fatalf("no %q entry logged:\n%s", tt.msg, h.logs.String())
			}
			if found["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %s", found["level"], tt.wantLevel)
			}
			status, ok := found["status_code"]
			if tt.wantStatus == 0 && ok {
				t.Errorf("local failure logged status_code %v", status)
			}
			if tt.wantStatus != 0 && status != tt.wantStatus {
				t.Errorf("status_code = %v, want %v", status, tt.wantStatus)
			}
		})
	}
}

func TestBootstrap_FailureLogsStatus(t *testing.T) {
	h := newHarness(t, nil, launch.Params{})
	h.core.Bootstrap()

	for _, e := range logEntries(t, h.logs) {
		if e["msg"] != "bootstrap failed" {
			continue
		}
		if e["level"] != "ERROR" || e["status_code"] != float64(http.StatusUnauthorized) {
			t.Errorf("bootstrap failure entry = %v", e)
		}
		return
	}
	t.Errorf("bootstrap failure not logged:\n%s", h.logs.String())
}

func TestAddStage_NoDuplicateSubmission(t *testing.T) {
	h := bootedHarness(t)
	c := h.core
	c.Drive(c.OpenOrder("ORD-1"))

	for i := 0; i < 3; i++ {
		c.CancelStageDialog()
		if err := c.OpenStageDialog(); err != nil {
			t.Fatal(err)
		}
	}
	cmd, err := c.SubmitStage("1", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.SubmitStage("1", ""); !errors.Is(err, errors.ErrStaleTicket) {
		t.Errorf("second submit error = %v, want ErrStaleTicket", err)
	}
	c.Drive(cmd)

	if n := len(h.backend.RequestsTo(http.MethodPost, api.StagesPath("ORD-1"))); n != 1 {
		t.Errorf("POST count = %d, want 1", n)
	}
}

func TestOpenStageDialog_Guards(t *testing.T) {
	h := bootedHarness(t)
	c := h.core

	if err := c.OpenStageDialog(); !errors.Is(err, errors.ErrNoOrderOpen) {
		t.Errorf("without order: %v", err)
	}
	for _, id := range []string{"ORD-2", "ORD-3"} {
		c.Drive(c.OpenOrder(id))
		if err := c.OpenStageDialog(); !errors.Is(err, errors.ErrInvalidInput) {
			t.Errorf("%s: error = %v, want refusal", id, err)
		}
		if c.Dialog().IsOpen() {
			t.Errorf("%s: dialog opened", id)
		}
	}
	if _, err := c.SubmitStage("1", ""); !errors.Is(err, errors.ErrDialogClosed) {
		t.Errorf("submit without dialog: %v", err)
	}
}

func TestInterleavedFlows(t *testing.T) {
	h := bootedHarness(t)
	c := h.core

	openCmd := c.OpenOrder("ORD-1")
	saveCmd := c.SaveProfile("x", "y")

	// Complete in the opposite order of issue.
	saveMsg := saveCmd()
	openMsg := openCmd()
	c.Drive(c.Update(saveMsg))
	c.Drive(c.Update(openMsg))

	s := c.State()
	if s.CurrentOrderID != "ORD-1" || s.Contractor().Contact() != "x" {
		t.Errorf("state after interleaving = %q / %q", s.CurrentOrderID, s.Contractor().Contact())
	}
	if c.Busy() {
		t.Error("no request should remain in flight")
	}
}

func TestActivateTab(t *testing.T) {
	h := bootedHarness(t)
	c := h.core

	for _, tab := range nav.Tabs {
		rev := c.Revision(mustView(t, tab))
		if err := c.ActivateTab(tab); err != nil {
			t.Fatalf("ActivateTab(%s): %v", tab, err)
		}
		if c.Revision(mustView(t, tab)) != rev+1 {
			t.Errorf("%s was not re-rendered on activation", tab)
		}
		html := c.Page("Work orders").HTML()
		if strings.Count(html, `class="view active"`) != 1 {
			t.Errorf("%s: page does not have exactly one active view", tab)
		}
	}

	if err := c.ActivateTab("settings"); !errors.Is(err, errors.ErrUnknownTab) {
		t.Errorf("unknown tab error = %v", err)
	}
	if c.ActiveTab() != nav.TabProfile {
		t.Errorf("ActiveTab() = %s after rejected activation", c.ActiveTab())
	}
}

func mustView(t *testing.T, tab nav.Tab) render.ViewID {
	t.Helper()
	id, ok := nav.ViewFor(tab)
	if !ok {
		t.Fatalf("no view for %s", tab)
	}
	return id
}

func TestPhase_String(t *testing.T) {
	if PhaseDeepLinkOrderLoaded.String() != "deep_link_order_loaded" || Phase(99).String() != "phase(99)" {
		t.Error("unexpected phase names")
	}
}
