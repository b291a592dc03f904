package offer

import (
	"context"
	"encoding/json"
	"net/url"
)

type Requester interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
}

type Repository interface {
	List(ctx context.Context) ([]Offer, error)
	Create(ctx context.Context, in Input) (*Offer, error)
	Decide(ctx context.Context, id string, action Action) (*Offer, error)
}

type repository struct {
	client Requester
}

func NewRepository(client Requester) Repository {
	return &repository{client: client}
}

func (r *repository) List(ctx context.Context) ([]Offer, error) {
	var raw json.RawMessage
	if err := r.client.Get(ctx, "/api/offer", &raw); err != nil {
		return nil, err
	}
	return parseOffers(raw)
}

func (r *repository) Create(ctx context.Context, in Input) (*Offer, error) {
	var raw json.RawMessage
	if err := r.client.Post(ctx, "/api/offer", in, &raw); err != nil {
		return nil, err
	}
	return parseOffer(raw)
}

// Decide calls PATCH /api/offer/{id}/approve or /reject.
func (r *repository) Decide(ctx context.Context, id string, action Action) (*Offer, error) {
	var raw json.RawMessage
	path := "/api/offer/" + url.PathEscape(id) + "/" + string(action)
	if err := r.client.Patch(ctx, path, nil, &raw); err != nil {
		return nil, err
	}
	return parseOffer(raw)
}
