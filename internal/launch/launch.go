// Package launch extracts the parameters the client is launched with. The
// launcher passes them as the query string of a URL, mirroring how a
// webview page receives them.
package launch

import (
	"fmt"
	"net/url"
	"strings"
)

// Query parameter names.
const (
	ParamDebugUserID = "debug_user_id"
	ParamOrderID     = "order_id"
)

// Params are the raw launch parameters. Values are kept verbatim; deciding
// what a debug id is worth belongs to credential resolution.
type Params struct {
	DebugUserID string
	OrderID     string
}

// HasDeepLink reports whether an order should be opened right after the
// initial load.
func (p Params) HasDeepLink() bool {
	return p.OrderID != ""
}

// Parse reads launch parameters from a full URL ("https://host/app?order_id=1"),
// a bare query ("?order_id=1" or "order_id=1"), or an empty string.
func Parse(raw string) (Params, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Params{}, nil
	}

	query := raw
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return Params{}, fmt.Errorf("parse launch url: %w", err)
		}
		query = u.RawQuery
	} else if i := strings.IndexByte(raw, '?'); i >= 0 {
		query = raw[i+1:]
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		return Params{}, fmt.Errorf("parse launch query: %w", err)
	}
	return FromValues(values), nil
}

// FromValues builds Params from decoded query values. Only the first value
// of each parameter counts.
func FromValues(v url.Values) Params {
	return Params{
		DebugUserID: v.Get(ParamDebugUserID),
		OrderID:     v.Get(ParamOrderID),
	}
}

// Merge returns p with every empty field filled from fallback.
func (p Params) Merge(fallback Params) Params {
	if p.DebugUserID == "" {
		p.DebugUserID = fallback.DebugUserID
	}
	if p.OrderID == "" {
		p.OrderID = fallback.OrderID
	}
	return p
}
