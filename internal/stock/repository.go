package stock

import (
	"context"
	"encoding/json"
	"net/url"
)

// Requester is the part of the API client the stock repository uses.
type Requester interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
}

type Repository interface {
	List(ctx context.Context) ([]Item, error)
	Create(ctx context.Context, in Input) (*Item, error)
	Update(ctx context.Context, id string, in Input) (*Item, error)
	Delete(ctx context.Context, id string) error
}

const adminPath = "/api/admin/auth/stocks"

type repository struct {
	client Requester
}

func NewRepository(client Requester) Repository {
	return &repository{client: client}
}

func (r *repository) List(ctx context.Context) ([]Item, error) {
	var raw json.RawMessage
	if err := r.client.Get(ctx, "/api/stock", &raw); err != nil {
		return nil, err
	}
	return parseItems(raw)
}

func (r *repository) Create(ctx context.Context, in Input) (*Item, error) {
	var raw json.RawMessage
	if err := r.client.Post(ctx, adminPath, in, &raw); err != nil {
		return nil, err
	}
	return parseItem(raw)
}

func (r *repository) Update(ctx context.Context, id string, in Input) (*Item, error) {
	var raw json.RawMessage
	if err := r.client.Put(ctx, adminPath+"/"+url.PathEscape(id), in, &raw); err != nil {
		return nil, err
	}
	return parseItem(raw)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, adminPath+"/"+url.PathEscape(id), nil)
}
