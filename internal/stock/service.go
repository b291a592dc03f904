package stock

import (
	"context"
	"errors"

	"marketplace-admin/internal/logger"

	"go.uber.org/zap"
)

var ErrItemNotFound = errors.New("stock item not found")

type Query struct {
	Criteria
	SortBy SortField
	Desc   bool
}

type Service interface {
	List(ctx context.Context, q *Query) ([]Item, error)
	Create(ctx context.Context, in Input) (*Item, error)
	Update(ctx context.Context, id string, in Input) (*Item, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, q *Query) ([]Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list stock",
			zap.String("layer", "service"), zap.Error(err))
		return nil, err
	}
	if q == nil {
		return items, nil
	}
	return Sort(Filter(items, q.Criteria), q.SortBy, q.Desc), nil
}

func (s *service) Create(ctx context.Context, in Input) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateStock"),
	)

	if err := in.Validate(); err != nil {
		log.Debug("stock input rejected", zap.Error(err))
		return nil, err
	}

	item, err := s.repo.Create(ctx, in)
	if err != nil {
		log.Error("failed to create stock item", zap.Error(err))
		return nil, err
	}

	log.Info("stock item created", zap.String("stock_id", item.ID))
	return item, nil
}

func (s *service) Update(ctx context.Context, id string, in Input) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateStock"),
		zap.String("stock_id", id),
	)

	if id == "" {
		return nil, ErrItemNotFound
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	item, err := s.repo.Update(ctx, id, in)
	if err != nil {
		log.Error("failed to update stock item", zap.Error(err))
		return nil, err
	}
	return item, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrItemNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		logger.FromCtx(ctx).Error("failed to delete stock item",
			zap.String("layer", "service"),
			zap.String("stock_id", id),
			zap.Error(err),
		)
		return err
	}
	return nil
}
