package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Iron-Ham/workorders/internal/model"
)

// API paths.
const (
	PathMe      = "/api/app/me"
	PathProfile = "/api/app/profile"
)

// OrderPath returns the detail path for orderID, escaping it as a single
// path segment.
func OrderPath(orderID string) string {
	return "/api/app/orders/" + url.PathEscape(orderID)
}

// StagesPath returns the stage-creation path for orderID.
func StagesPath(orderID string) string {
	return OrderPath(orderID) + "/stages"
}

// Service is the set of operations the client core depends on.
type Service interface {
	Me(ctx context.Context) (*model.Me, error)
	Order(ctx context.Context, orderID string) (*model.OrderDetail, error)
	UpdateProfile(ctx context.Context, update model.ProfileUpdate) error
	AddStage(ctx context.Context, orderID string, req model.StageRequest) (*model.Ack, error)
}

var _ Service = (*Client)(nil)

// Me fetches the contractor profile and order summaries.
func (c *Client) Me(ctx context.Context) (*model.Me, error) {
	var me model.Me
	if err := c.Call(ctx, http.MethodGet, PathMe, nil, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

// Order fetches the full detail of one order.
func (c *Client) Order(ctx context.Context, orderID string) (*model.OrderDetail, error) {
	var detail model.OrderDetail
	if err := c.Call(ctx, http.MethodGet, OrderPath(orderID), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// UpdateProfile replaces the editable profile fields.
func (c *Client) UpdateProfile(ctx context.Context, update model.ProfileUpdate) error {
	return c.Call(ctx, http.MethodPut, PathProfile, update, nil)
}

// AddStage appends a progress stage to an order.
func (c *Client) AddStage(ctx context.Context, orderID string, req model.StageRequest) (*model.Ack, error) {
	var ack model.Ack
	if err := c.Call(ctx, http.MethodPost, StagesPath(orderID), req, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}
