package order

import (
	"context"
	"encoding/json"
	"net/url"
)

// Requester is the part of the API client the order repository uses.
type Requester interface {
	Get(ctx context.Context, path string, out any) error
	Put(ctx context.Context, path string, body, out any) error
}

type Repository interface {
	FetchAdminOrders(ctx context.Context) ([]Order, error)
	// UpdateStatus returns a nil order when the backend only acknowledges the update.
	UpdateStatus(ctx context.Context, orderID string, update StatusUpdate) (*Order, error)
}

type repository struct {
	client Requester
}

// NewRepository returns a Repository backed by the marketplace REST API.
func NewRepository(client Requester) Repository {
	return &repository{client: client}
}

func (r *repository) FetchAdminOrders(ctx context.Context) ([]Order, error) {
	var raw json.RawMessage
	if err := r.client.Get(ctx, "/api/orders/admin", &raw); err != nil {
		return nil, err
	}
	return ParseList(raw)
}

func (r *repository) UpdateStatus(ctx context.Context, orderID string, update StatusUpdate) (*Order, error) {
	var raw json.RawMessage
	path := "/api/orders/" + url.PathEscape(orderID) + "/status"
	if err := r.client.Put(ctx, path, update, &raw); err != nil {
		return nil, err
	}
	return ParseUpdated(raw)
}
