package order

import (
	"context"
	"fmt"

	"marketplace-admin/internal/logger"

	"go.uber.org/zap"
)

// Query narrows the admin order list.
type Query struct {
	Status Status
	Search string
}

type Service interface {
	GetOrders(ctx context.Context, q *Query) ([]Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, update StatusUpdate) (*Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetOrders returns the admin order list, newest first, narrowed by q.
func (s *service) GetOrders(ctx context.Context, q *Query) ([]Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetOrders"),
	)

	orders, err := s.repo.FetchAdminOrders(ctx)
	if err != nil {
		log.Error("failed to fetch orders", zap.Error(err))
		return nil, err
	}

	if q != nil {
		orders = Search(FilterByStatus(orders, q.Status), q.Search)
	}
	orders = SortByCreated(orders, true)

	log.Debug("GetOrders success", zap.Int("count", len(orders)))
	return orders, nil
}

var validStatuses = map[Status]bool{
	StatusPending:         true,
	StatusConfirmed:       true,
	StatusTransferPending: true,
	StatusShipped:         true,
	StatusDelivered:       true,
	StatusCancelled:       true,
}

// UpdateOrderStatus validates the update locally before sending it.
func (s *service) UpdateOrderStatus(ctx context.Context, orderID string, update StatusUpdate) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateOrderStatus"),
		zap.String("order_id", orderID),
		zap.String("status", string(update.Status)),
		zap.String("delivery_method", string(update.DeliveryMethod)),
	)

	if orderID == "" {
		return nil, ErrOrderNotFound
	}
	if !validStatuses[update.Status] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, update.Status)
	}

	updated, err := s.repo.UpdateStatus(ctx, orderID, update)
	if err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return nil, err
	}

	log.Info("order status updated")
	return updated, nil
}
