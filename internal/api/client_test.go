package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Iron-Ham/workorders/internal/credential"
	"github.com/Iron-Ham/workorders/internal/errors"
	"github.com/Iron-Ham/workorders/internal/logging"
	"github.com/Iron-Ham/workorders/internal/model"
	"github.com/Iron-Ham/workorders/internal/testutil"
)

func newTestClient(t *testing.T, baseURL string, cred credential.Credential, opts ...ClientOption) *Client {
	t.Helper()
	c, err := NewClient(baseURL, cred, opts...)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return c
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
		wantErr bool
	}{
		{"default", "", DefaultBaseURL, false},
		{"trailing slash trimmed", "https://api.example/", "https://api.example", false},
		{"unsupported scheme", "ftp://api.example", "", true},
		{"unparsable", "http://[::1", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.baseURL, credential.None())
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewClient() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, errors.ErrInvalidInput) {
				t.Errorf("NewClient() error = %v, want a validation error", err)
			}
			if !tt.wantErr && c.BaseURL() != tt.want {
				t.Errorf("BaseURL() = %q, want %q", c.BaseURL(), tt.want)
			}
		})
	}
}

func TestClient_Headers(t *testing.T) {
	tests := []struct {
		name        string
		cred        credential.Credential
		wantSession string
		wantDebug   string
	}{
		{"session", credential.Session("blob"), "blob", ""},
		{"debug", credential.Debug(42), "", "42"},
		{"none", credential.None(), "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got http.Header
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Clone()
				_, _ = w.Write([]byte(`{}`))
			}))
			defer srv.Close()

			c := newTestClient(t, srv.URL, tt.cred, WithRequestIDFunc(func() string { return "req-1" }))
			if err := c.Call(context.Background(), http.MethodGet, PathMe, nil, nil); err != nil {
				t.Fatalf("Call failed: %v", err)
			}

			if v := got.Get(credential.HeaderSession); v != tt.wantSession {
				t.Errorf("session header = %q, want %q", v, tt.wantSession)
			}
			if v := got.Get(credential.HeaderDebug); v != tt.wantDebug {
				t.Errorf("debug header = %q, want %q", v, tt.wantDebug)
			}
			if v := got.Get("Content-Type"); v != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", v)
			}
			if v := got.Get(HeaderRequestID); v != "req-1" {
				t.Errorf("%s = %q, want req-1", HeaderRequestID, v)
			}
		})
	}
}

func TestClient_CallOptions(t *testing.T) {
	var got http.Header
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(r.Body)
		body = buf.Bytes()
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, credential.Debug(1))
	err := c.Call(context.Background(), http.MethodPost, "/raw", []byte("a=1"), nil,
		WithContentType("application/x-www-form-urlencoded"),
		WithHeader("X-Trace", "yes"),
	)
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if v := got.Get("Content-Type"); v != "application/x-www-form-urlencoded" {
		t.Errorf("Content-Type = %q, want the override", v)
	}
	if v := got.Get("X-Trace"); v != "yes" {
		t.Errorf("X-Trace = %q, want yes", v)
	}
	if string(body) != "a=1" {
		t.Errorf("body = %q, want raw bytes", body)
	}
}

func TestClient_RequestIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen[r.Header.Get(HeaderRequestID)] = true
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, credential.None())
	for i := 0; i < 5; i++ {
		if err := c.Call(context.Background(), http.MethodGet, "/", nil, nil); err != nil {
			t.Fatalf("Call failed: %v", err)
		}
	}
	if len(seen) != 5 {
		t.Errorf("got %d distinct request ids, want 5", len(seen))
	}
}

func TestClient_Failures(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		out         any
		wantRequest bool
		wantMessage string
	}{
		{"not found keeps raw body", 404, `{"detail":"Order not found or not assigned"}`, nil, true, `{"detail":"Order not found or not assigned"}`},
		{"plain text body", 500, "boom", nil, true, "boom"},
		{"empty body", 503, "", nil, true, "503 Service Unavailable"},
		{"success with invalid json", 200, "<html>", &model.Me{}, false, ""},
		{"success with invalid json and no out", 200, "<html>", nil, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := newTestClient(t, srv.URL, credential.None())
			err := c.Call(context.Background(), http.MethodGet, "/x", nil, tt.out)
			if err == nil {
				t.Fatal("expected error")
			}

			var reqErr *errors.RequestError
			var transportErr *errors.TransportError
			if tt.wantRequest {
				if !errors.As(err, &reqErr) {
					t.Fatalf("error %T is not a RequestError", err)
				}
				if reqErr.StatusCode != tt.status || reqErr.Path != "/x" {
					t.Errorf("RequestError = %+v", reqErr)
				}
				if got := errors.Message(err); got != tt.wantMessage {
					t.Errorf("Message() = %q, want %q", got, tt.wantMessage)
				}
			} else if !errors.As(err, &transportErr) || transportErr.Op != "decode" {
				t.Errorf("error = %v, want a decode TransportError", err)
			}
		})
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	var buf bytes.Buffer
	c := newTestClient(t, url, credential.None(), WithLogger(logging.NewWriterLogger(&buf, logging.LevelDebug)))
	_, err := c.Me(context.Background())

	var transportErr *errors.TransportError
	if !errors.As(err, &transportErr) || transportErr.Op != "send" {
		t.Fatalf("error = %v, want a send TransportError", err)
	}
	if errors.StatusCode(err) != 0 {
		t.Error("transport errors carry no status")
	}
	if !strings.Contains(buf.String(), "api call failed") {
		t.Errorf("expected failure to be logged, got %q", buf.String())
	}
}

func TestClient_ContextCancellation(t *testing.T) {
	b, srv := testutil.StartBackend(t, testutil.DefaultFixture())
	b.Hold(http.MethodGet, PathMe)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	c := newTestClient(t, srv.URL, credential.Debug(42))
	go func() {
		_, err := c.Me(ctx)
		done <- err
	}()

	cancel()
	err := <-done
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled in chain", err)
	}
}

func TestEndpoints_AgainstBackend(t *testing.T) {
	b, srv := testutil.StartBackend(t, testutil.DefaultFixture())
	c := newTestClient(t, srv.URL, credential.Debug(42))
	ctx := context.Background()

	me, err := c.Me(ctx)
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if me.Contractor.TgID != 42 || len(me.Orders) != 3 {
		t.Errorf("Me() = %+v", me)
	}

	detail, err := c.Order(ctx, "ORD-1")
	if err != nil {
		t.Fatalf("Order failed: %v", err)
	}
	if len(detail.Stages) != 2 || len(detail.Files) != 2 || len(detail.Properties) != 2 {
		t.Errorf("Order() lists = %d/%d/%d", len(detail.Stages), len(detail.Files), len(detail.Properties))
	}

	ack, err := c.AddStage(ctx, "ORD-1", model.StageRequest{Hours: 2})
	if err != nil {
		t.Fatalf("AddStage failed: %v", err)
	}
	if !ack.OK || ack.StageID == 0 {
		t.Errorf("AddStage() = %+v", ack)
	}
	posted := b.RequestsTo(http.MethodPost, "/api/app/orders/ORD-1/stages")
	if len(posted) != 1 || string(posted[0].Body) != `{"hours":2,"comment":null}` {
		t.Errorf("posted stage body = %v", posted)
	}

	if err := c.UpdateProfile(ctx, model.ProfileUpdate{ContactInfo: "+7 900", PaymentInfo: "card"}); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	profile, _ := b.Contractor(42)
	if profile.Contact() != "+7 900" || profile.Payment() != "card" {
		t.Errorf("profile after update = %+v", profile)
	}
	put := b.RequestsTo(http.MethodPut, PathProfile)
	var sent map[string]any
	if err := json.Unmarshal(put[0].Body, &sent); err != nil {
		t.Fatalf("profile body is not JSON: %v", err)
	}
	if _, ok := sent["contact_info"]; !ok {
		t.Errorf("profile body missing contact_info: %s", put[0].Body)
	}
}

func TestOrderPath_Escapes(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"ORD-1", "/api/app/orders/ORD-1"},
		{"A/B", "/api/app/orders/A%2FB"},
		{"a b?c", "/api/app/orders/a%20b%3Fc"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := OrderPath(tt.id); got != tt.want {
				t.Errorf("OrderPath(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
	if got := StagesPath("A/B"); got != "/api/app/orders/A%2FB/stages" {
		t.Errorf("StagesPath() = %q", got)
	}
}

func TestOrder_EscapedIDReachesBackend(t *testing.T) {
	f := testutil.DefaultFixture()
	f.Orders = append(f.Orders, testutil.OrderFixture{OrderID: "A/B", StagesDisplayMode: "hours", Contractors: []int64{42}})
	_, srv := testutil.StartBackend(t, f)

	c := newTestClient(t, srv.URL, credential.Debug(42))
	detail, err := c.Order(context.Background(), "A/B")
	if err != nil {
		t.Fatalf("Order failed: %v", err)
	}
	if detail.Order.OrderID != "A/B" {
		t.Errorf("OrderID = %q, want A/B", detail.Order.OrderID)
	}
}
