// Package testutil provides a fake order-management API for tests. The
// backend is seeded from a YAML fixture, enforces the same authentication
// headers as the real service, and records every request it receives.
package testutil

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/workorders/internal/credential"
	"github.com/Iron-Ham/workorders/internal/model"
)

//go:embed fixtures/default.yaml
var defaultFixture []byte

// Fixture seeds the backend.
type Fixture struct {
	// Sessions maps host init-data blobs to contractor ids.
	Sessions    map[string]int64    `yaml:"sessions"`
	Contractors []ContractorFixture `yaml:"contractors"`
	Orders      []OrderFixture      `yaml:"orders"`
}

// ContractorFixture is a seeded contractor.
type ContractorFixture struct {
	TgID          int64   `yaml:"tg_id"`
	AdvanceAmount int64   `yaml:"advance_amount"`
	ContactInfo   *string `yaml:"contact_info"`
	PaymentInfo   *string `yaml:"payment_info"`
}

// OrderFixture is a seeded order and everything attached to it.
type OrderFixture struct {
	OrderID           string            `yaml:"order_id"`
	ChatLink          *string           `yaml:"chat_link"`
	TzText            *string           `yaml:"tz_text"`
	TermsText         *string           `yaml:"terms_text"`
	StagesDisplayMode string            `yaml:"stages_display_mode"`
	StagesReadonly    bool              `yaml:"stages_readonly"`
	Contractors       []int64           `yaml:"contractors"`
	Stages            []StageFixture    `yaml:"stages"`
	Files             []FileFixture     `yaml:"files"`
	Properties        []PropertyFixture `yaml:"properties"`
}

// StageFixture is a seeded stage. Date uses any layout model.ParseTimestamp
// accepts.
type StageFixture struct {
	ID           int64   `yaml:"id"`
	Date         string  `yaml:"date"`
	Hours        *int64  `yaml:"hours"`
	Amount       *int64  `yaml:"amount"`
	Comment      *string `yaml:"comment"`
	ContractorID int64   `yaml:"contractor_id"`
}

// FileFixture is a seeded file link.
type FileFixture struct {
	ID   int64   `yaml:"id"`
	Name *string `yaml:"name"`
	URL  string  `yaml:"url"`
}

// PropertyFixture is a seeded property item.
type PropertyFixture struct {
	ID       int64   `yaml:"id"`
	Name     string  `yaml:"name"`
	Quantity int64   `yaml:"quantity"`
	Comment  *string `yaml:"comment"`
}

// ParseFixture decodes a YAML fixture.
func ParseFixture(data []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}
	return f, nil
}

// LoadFixture reads a YAML fixture from disk.
func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

// DefaultFixture returns the built-in fixture: contractor 42 with an
// hours order ORD-1, a sums order ORD-2 and a read-only order ORD-3.
func DefaultFixture() Fixture {
	f, err := ParseFixture(defaultFixture)
	if err != nil {
		panic(err)
	}
	return f
}

// RecordedRequest is a request as the backend saw it.
type RecordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// JSON decodes the recorded body into a generic map.
func (r RecordedRequest) JSON() (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(r.Body, &m); err != nil {
		return nil, err
	}
	return m, nil
}

type failure struct {
	status int
	body   string
}

type order struct {
	order       model.Order
	contractors map[int64]bool
	stages      []model.Stage
	files       []model.OrderFile
	properties  []model.PropertyItem
}

// Backend is an in-memory order-management API.
type Backend struct {
	mu          sync.Mutex
	sessions    map[string]int64
	contractors map[int64]*model.Contractor
	orders      map[string]*order
	orderIDs    []string
	nextStageID int64
	failures    map[string]failure
	holds       map[string]chan struct{}
	requests    []RecordedRequest
	now         func() time.Time
	router      chi.Router
}

// NewBackend builds a backend seeded with f.
func NewBackend(f Fixture) (*Backend, error) {
	b := &Backend{
		sessions:    map[string]int64{},
		contractors: map[int64]*model.Contractor{},
		orders:      map[string]*order{},
		failures:    map[string]failure{},
		holds:       map[string]chan struct{}{},
		now:         time.Now,
	}
	for blob, id := range f.Sessions {
		b.sessions[blob] = id
	}
	for _, c := range f.Contractors {
		b.contractors[c.TgID] = &model.Contractor{
			TgID:          c.TgID,
			AdvanceAmount: c.AdvanceAmount,
			ContactInfo:   c.ContactInfo,
			PaymentInfo:   c.PaymentInfo,
		}
	}
	for _, of := range f.Orders {
		o, err := buildOrder(of)
		if err != nil {
			return nil, err
		}
		for _, s := range o.stages {
			if s.ID > b.nextStageID {
				b.nextStageID = s.ID
			}
		}
		b.orders[of.OrderID] = o
		b.orderIDs = append(b.orderIDs, of.OrderID)
	}
	b.router = b.routes()
	return b, nil
}

func buildOrder(of OrderFixture) (*order, error) {
	mode := model.DisplayMode(of.StagesDisplayMode)
	if mode == "" {
		mode = model.DisplayHours
	}
	o := &order{
		order: model.Order{
			OrderID:           of.OrderID,
			ChatLink:          of.ChatLink,
			TzText:            of.TzText,
			TermsText:         of.TermsText,
			StagesDisplayMode: mode,
			StagesReadonly:    of.StagesReadonly,
		},
		contractors: map[int64]bool{},
		stages:      []model.Stage{},
		files:       []model.OrderFile{},
		properties:  []model.PropertyItem{},
	}
	for _, id := range of.Contractors {
		o.contractors[id] = true
	}
	for _, sf := range of.Stages {
		ts, err := model.ParseTimestamp(sf.Date)
		if err != nil {
			return nil, fmt.Errorf("order %s stage %d: %w", of.OrderID, sf.ID, err)
		}
		o.stages = append(o.stages, model.Stage{
			ID:           sf.ID,
			Date:         ts,
			Hours:        sf.Hours,
			Amount:       sf.Amount,
			Comment:      sf.Comment,
			ContractorID: sf.ContractorID,
		})
	}
	for _, ff := range of.Files {
		o.files = append(o.files, model.OrderFile{ID: ff.ID, Name: ff.Name, URL: ff.URL})
	}
	for _, pf := range of.Properties {
		o.properties = append(o.properties, model.PropertyItem{ID: pf.ID, Name: pf.Name, Quantity: pf.Quantity, Comment: pf.Comment})
	}
	return o, nil
}

// StartBackend starts a backend seeded with f on an httptest server that
// is closed when the test ends.
func StartBackend(t *testing.T, f Fixture) (*Backend, *httptest.Server) {
	t.Helper()

	b, err := NewBackend(f)
	if err != nil {
		t.Fatalf("failed to build backend: %v", err)
	}
	srv := httptest.NewServer(b)
	t.Cleanup(func() {
		b.ReleaseAll()
		srv.Close()
	})
	return b, srv
}

// ServeHTTP implements http.Handler.
func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.router.ServeHTTP(w, r)
}

func (b *Backend) routes() chi.Router {
	mux := chi.NewRouter()
	mux.Use(b.record)
	mux.Route("/api/app", func(sr chi.Router) {
		sr.Use(b.injectFailures)
		sr.Use(b.requireContractor)

		sr.Get("/me", b.handleMe)
		sr.Get("/orders/{order_id}", b.handleOrder)
		sr.Post("/orders/{order_id}/stages", b.handleAddStage)
		sr.Put("/profile", b.handleProfile)
	})
	return mux
}

// Fail makes every subsequent request to method path fail with status
// and body until Clear is called. path is the escaped request path.
func (b *Backend) Fail(method, path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method+" "+path] = failure{status: status, body: body}
}

// Hold makes requests to method path block until Release is called.
func (b *Backend) Hold(method, path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.holds[method+" "+path] = make(chan struct{})
}

// Release unblocks requests held for method path.
func (b *Backend) Release(method, path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.holds[method+" "+path]; ok {
		close(ch)
		delete(b.holds, method+" "+path)
	}
}

// ReleaseAll unblocks every held request.
func (b *Backend) ReleaseAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for key, ch := range b.holds {
		close(ch)
		delete(b.holds, key)
	}
}

// Clear removes injected failures.
func (b *Backend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = map[string]failure{}
}

// SetClock replaces the clock used for new stage dates.
func (b *Backend) SetClock(now func() time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.now = now
}

// Requests returns every recorded request in arrival order.
func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]RecordedRequest, len(b.requests))
	copy(out, b.requests)
	return out
}

// RequestsTo returns recorded requests matching method and escaped path.
func (b *Backend) RequestsTo(method, path string) []RecordedRequest {
	var out []RecordedRequest
	for _, r := range b.Requests() {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// Contractor returns a copy of a contractor's current profile.
func (b *Backend) Contractor(id int64) (model.Contractor, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.contractors[id]
	if !ok {
		return model.Contractor{}, false
	}
	return *c, true
}

// Stages returns a copy of an order's stages, newest first.
func (b *Backend) Stages(orderID string) []model.Stage {
	b.mu.Lock()
	defer b.mu.Unlock()
	o, ok := b.orders[orderID]
	if !ok {
		return nil
	}
	out := make([]model.Stage, len(o.stages))
	copy(out, o.stages)
	return out
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		b.mu.Lock()
		b.requests = append(b.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		b.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (b *Backend) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.EscapedPath()

		b.mu.Lock()
		hold, held := b.holds[key]
		b.mu.Unlock()
		if held {
			select {
			case <-hold:
			case <-r.Context().Done():
				return
			}
		}

		b.mu.Lock()
		f, failing := b.failures[key]
		b.mu.Unlock()
		if failing {
			w.WriteHeader(f.status)
			_, _ = io.WriteString(w, f.body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type contractorKey struct{}

func (b *Backend) requireContractor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := b.authenticate(r)
		if !ok {
			writeDetail(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(withContractor(r.Context(), id)))
	})
}

// authenticate resolves the caller the way the service does: a known
// session blob first, then the debug header.
func (b *Backend) authenticate(r *http.Request) (int64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if blob := r.Header.Get(credential.HeaderSession); blob != "" {
		id, ok := b.sessions[blob]
		return id, ok
	}
	if raw := r.Header.Get(credential.HeaderDebug); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		return id, err == nil && id != 0
	}
	return 0, false
}

func (b *Backend) contractorFor(id int64) *model.Contractor {
	c, ok := b.contractors[id]
	if !ok {
		c = &model.Contractor{TgID: id}
		b.contractors[id] = c
	}
	return c
}

func (b *Backend) assignedOrder(r *http.Request, id int64) (*order, bool) {
	orderID, err := url.PathUnescape(chi.URLParam(r, "order_id"))
	if err != nil {
		return nil, false
	}
	o, ok := b.orders[orderID]
	if !ok || !o.contractors[id] {
		return nil, false
	}
	return o, true
}

func (b *Backend) handleMe(w http.ResponseWriter, r *http.Request) {
	id := contractorFrom(r.Context())

	b.mu.Lock()
	me := model.Me{Contractor: *b.contractorFor(id), Orders: []model.OrderSummary{}}
	for _, orderID := range b.orderIDs {
		if o := b.orders[orderID]; o.contractors[id] {
			me.Orders = append(me.Orders, o.order)
		}
	}
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, me)
}

func (b *Backend) handleOrder(w http.ResponseWriter, r *http.Request) {
	id := contractorFrom(r.Context())

	b.mu.Lock()
	o, ok := b.assignedOrder(r, id)
	if !ok {
		b.mu.Unlock()
		writeDetail(w, http.StatusNotFound, "Order not found or not assigned")
		return
	}
	detail := model.OrderDetail{
		Order:      o.order,
		Contractor: *b.contractorFor(id),
		Stages:     append([]model.Stage(nil), o.stages...),
		Files:      append([]model.OrderFile(nil), o.files...),
		Properties: append([]model.PropertyItem(nil), o.properties...),
	}
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, detail)
}

func (b *Backend) handleAddStage(w http.ResponseWriter, r *http.Request) {
	id := contractorFrom(r.Context())

	var req struct {
		Hours   *float64 `json:"hours"`
		Comment *string  `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Hours == nil {
		writeDetail(w, http.StatusUnprocessableEntity, "hours is required")
		return
	}
	if *req.Hours < 0 || *req.Hours != math.Trunc(*req.Hours) {
		writeDetail(w, http.StatusUnprocessableEntity, "hours must be a non-negative integer")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	o, ok := b.assignedOrder(r, id)
	if !ok {
		writeDetail(w, http.StatusNotFound, "Order not found or not assigned")
		return
	}
	if o.order.StagesReadonly {
		writeDetail(w, http.StatusForbidden, "Stages are readonly for this order")
		return
	}

	b.nextStageID++
	hours := int64(*req.Hours)
	stage := model.Stage{
		ID:           b.nextStageID,
		Date:         model.NewTimestamp(b.now().UTC()),
		Hours:        &hours,
		Comment:      req.Comment,
		ContractorID: id,
	}
	o.stages = append([]model.Stage{stage}, o.stages...)

	writeJSON(w, http.StatusOK, model.Ack{OK: true, StageID: stage.ID})
}

func (b *Backend) handleProfile(w http.ResponseWriter, r *http.Request) {
	id := contractorFrom(r.Context())

	var req struct {
		ContactInfo *string `json:"contact_info"`
		PaymentInfo *string `json:"payment_info"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid body")
		return
	}

	b.mu.Lock()
	c := b.contractorFor(id)
	if req.ContactInfo != nil {
		c.ContactInfo = req.ContactInfo
	}
	if req.PaymentInfo != nil {
		c.PaymentInfo = req.PaymentInfo
	}
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, model.Ack{OK: true})
}
