// Package api is the client for the order-management API. Every call
// carries the session's credential header, a JSON content type and a fresh
// request id. Failures are normalized to errors.RequestError (non-2xx
// status) or errors.TransportError (no usable response).
//
// The client never retries and sets no timeout of its own: a request that
// never completes blocks until ctx is cancelled.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Iron-Ham/workorders/internal/credential"
	"github.com/Iron-Ham/workorders/internal/errors"
	"github.com/Iron-Ham/workorders/internal/logging"
)

const (
	// DefaultBaseURL is used when no base URL is configured.
	DefaultBaseURL = "http://localhost:8000"

	// HeaderRequestID carries the per-call correlation id.
	HeaderRequestID = "X-Request-ID"

	contentTypeJSON = "application/json"
)

// Client issues authenticated requests against one API base URL.
type Client struct {
	baseURL    string
	cred       credential.Credential
	httpClient *http.Client
	logger     *logging.Logger
	newID      func() string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger for request tracing.
func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRequestIDFunc overrides request id generation.
func WithRequestIDFunc(fn func() string) ClientOption {
	return func(c *Client) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// NewClient creates a client for baseURL authenticating with cred. An
// empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, cred credential.Credential, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.NewValidationError("base url is not a valid URL").
			WithField("api.base_url").
			WithValue(baseURL).
			WithCause(err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.NewValidationError("base url must use http or https").
			WithField("api.base_url").
			WithValue(baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		cred:       cred,
		httpClient: &http.Client{},
		logger:     logging.NopLogger(),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Credential returns the credential attached to every call.
func (c *Client) Credential() credential.Credential {
	return c.cred
}

// BaseURL returns the API base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type callConfig struct {
	contentType string
	headers     http.Header
}

// CallOption adjusts a single call.
type CallOption func(*callConfig)

// WithContentType overrides the request content type.
func WithContentType(contentType string) CallOption {
	return func(cc *callConfig) {
		cc.contentType = contentType
	}
}

// WithHeader adds an extra header to the request.
func WithHeader(key, value string) CallOption {
	return func(cc *callConfig) {
		cc.headers.Set(key, value)
	}
}

// Call sends method path with body and decodes a successful response into
// out. A nil body sends no payload; a []byte body is sent as is; anything
// else is JSON-encoded. A nil out discards the response after checking it
// is JSON.
func (c *Client) Call(ctx context.Context, method, path string, body, out any, opts ...CallOption) error {
	cc := callConfig{contentType: contentTypeJSON, headers: http.Header{}}
	for _, opt := range opts {
		opt(&cc)
	}

	reqID := c.newID()
	log := c.logger.With("request_id", reqID, "method", method, "path", path)

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
	default:
		encoded, err := json.Marshal(b)
		if err != nil {
			return errors.NewTransportError("encode", err).WithRequest(method, path)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.NewTransportError("build", err).WithRequest(method, path)
	}
	for key, values := range cc.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	c.cred.Apply(req.Header)
	req.Header.Set("Content-Type", cc.contentType)
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set(HeaderRequestID, reqID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("api call failed", "error", err.Error())
		return errors.NewTransportError("send", err).WithRequest(method, path)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("api response unreadable", "status", resp.StatusCode, "error", err.Error())
		return errors.NewTransportError("read", err).WithRequest(method, path)
	}

	log.Debug("api call",
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
		"bytes", len(data),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("api call rejected", "status", resp.StatusCode)
		return errors.NewRequestError(resp.StatusCode, string(data)).WithRequest(method, path)
	}

	if out == nil {
		if len(bytes.TrimSpace(data)) > 0 && !json.Valid(data) {
			return errors.NewTransportError("decode", fmt.Errorf("response is not JSON")).WithRequest(method, path)
		}
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Warn("api response undecodable", "error", err.Error())
		return errors.NewTransportError("decode", err).WithRequest(method, path)
	}
	return nil
}
