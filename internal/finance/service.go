package finance

import (
	"context"
	"encoding/json"
	"time"

	"marketplace-admin/internal/logger"

	"go.uber.org/zap"
)

type Requester interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
}

type Query struct {
	Type EntryType
	From time.Time
	To   time.Time
}

type Service interface {
	List(ctx context.Context, q *Query) ([]Entry, error)
	Create(ctx context.Context, in Input) (*Entry, error)
	Summary(ctx context.Context, q *Query) (Summary, error)
}

type service struct {
	client Requester
}

// NewService talks to /api/finance directly; the endpoint has no update or
// delete so there is no separate repository.
func NewService(client Requester) Service {
	return &service{client: client}
}

func (s *service) List(ctx context.Context, q *Query) ([]Entry, error) {
	var raw json.RawMessage
	if err := s.client.Get(ctx, "/api/finance", &raw); err != nil {
		logger.FromCtx(ctx).Error("failed to list finance entries", zap.String("layer", "service"), zap.Error(err))
		return nil, err
	}
	entries, err := parseEntries(raw)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return entries, nil
	}

	entries = Between(entries, q.From, q.To)
	if q.Type != "" {
		filtered := entries[:0]
		for _, e := range entries {
			if e.Type == q.Type {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}
	return entries, nil
}

func (s *service) Create(ctx context.Context, in Input) (*Entry, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateFinanceEntry"),
	)

	if err := in.Validate(); err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := s.client.Post(ctx, "/api/finance", in, &raw); err != nil {
		log.Error("failed to record finance entry", zap.Error(err))
		return nil, err
	}
	e, err := parseEntry(raw)
	if err != nil {
		return nil, err
	}

	log.Info("finance entry recorded",
		zap.String("entry_id", e.ID),
		zap.String("type", string(e.Type)),
		zap.String("amount", e.Amount.StringFixed(2)),
	)
	return e, nil
}

func (s *service) Summary(ctx context.Context, q *Query) (Summary, error) {
	entries, err := s.List(ctx, q)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(entries), nil
}
