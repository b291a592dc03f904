package order

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FetchAdminOrders(ctx context.Context) ([]Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Order), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, orderID string, update StatusUpdate) (*Order, error) {
	args := m.Called(ctx, orderID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

type MockRequester struct {
	mock.Mock
}

func (m *MockRequester) Get(ctx context.Context, path string, out any) error {
	args := m.Called(ctx, path)
	if raw, ok := args.Get(0).(string); ok {
		*(out.(*json.RawMessage)) = json.RawMessage(raw)
	}
	return args.Error(1)
}

func (m *MockRequester) Put(ctx context.Context, path string, body, out any) error {
	args := m.Called(ctx, path, body)
	if raw, ok := args.Get(0).(string); ok {
		*(out.(*json.RawMessage)) = json.RawMessage(raw)
	}
	return args.Error(1)
}

// --- Tests ---

func TestService_GetOrders(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	orders := []Order{
		{ID: "1", OrderNumber: "ORD-1", Status: StatusPending, CreatedAt: now.Add(-time.Hour)},
		{ID: "2", OrderNumber: "ORD-2", Status: StatusShipped, CreatedAt: now},
		{ID: "3", OrderNumber: "ORD-3", Status: StatusShipped, CreatedAt: now.Add(-2 * time.Hour)},
	}

	t.Run("NewestFirst", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FetchAdminOrders", ctx).Return(orders, nil)

		res, err := NewService(repo).GetOrders(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, "2", res[0].ID)
		assert.Equal(t, "3", res[2].ID)
	})

	t.Run("FilteredByQuery", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FetchAdminOrders", ctx).Return(orders, nil)

		res, err := NewService(repo).GetOrders(ctx, &Query{Status: StatusShipped, Search: "ord-3"})
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "3", res[0].ID)
	})

	t.Run("RepoError", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FetchAdminOrders", ctx).Return(nil, errors.New("boom"))

		_, err := NewService(repo).GetOrders(ctx, nil)
		assert.EqualError(t, err, "boom")
	})
}

func TestService_UpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	update := StatusUpdate{Status: StatusShipped, DeliveryMethod: DeliveryUber}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		expected := &Order{ID: "1", Status: StatusShipped, DeliveryMethod: DeliveryUber}
		repo.On("UpdateStatus", ctx, "1", update).Return(expected, nil)

		res, err := NewService(repo).UpdateOrderStatus(ctx, "1", update)
		require.NoError(t, err)
		assert.Equal(t, expected, res)
		repo.AssertExpectations(t)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		repo := new(MockRepository)
		_, err := NewService(repo).UpdateOrderStatus(ctx, "1", StatusUpdate{Status: "teleported"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MissingID", func(t *testing.T) {
		_, err := NewService(new(MockRepository)).UpdateOrderStatus(ctx, "", update)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("FetchAdminOrders", func(t *testing.T) {
		client := new(MockRequester)
		client.On("Get", ctx, "/api/orders/admin").Return(`[`+sampleOrder+`]`, nil)

		orders, err := NewRepository(client).FetchAdminOrders(ctx)
		require.NoError(t, err)
		assert.Len(t, orders, 1)
	})

	t.Run("UpdateStatusSendsCarrier", func(t *testing.T) {
		client := new(MockRequester)
		update := StatusUpdate{Status: StatusShipped, DeliveryMethod: DeliveryUber}
		client.On("Put", ctx, "/api/orders/665f1c/status", update).Return(sampleOrder, nil)

		o, err := NewRepository(client).UpdateStatus(ctx, "665f1c", update)
		require.NoError(t, err)
		assert.Equal(t, "665f1c", o.ID)
		client.AssertExpectations(t)
	})

	t.Run("UpdateStatusAcknowledged", func(t *testing.T) {
		client := new(MockRequester)
		update := StatusUpdate{Status: StatusShipped, DeliveryMethod: DeliveryPickMe}
		client.On("Put", ctx, "/api/orders/665f1c/status", update).Return(`{"message":"Order status updated"}`, nil)

		o, err := NewService(NewRepository(client)).UpdateOrderStatus(ctx, "665f1c", update)
		require.NoError(t, err)
		assert.Nil(t, o)
	})

	t.Run("UpdateStatusEmptyBody", func(t *testing.T) {
		client := new(MockRequester)
		update := StatusUpdate{Status: StatusShipped, DeliveryMethod: DeliveryUber}
		client.On("Put", ctx, "/api/orders/665f1c/status", update).Return(nil, nil)

		o, err := NewRepository(client).UpdateStatus(ctx, "665f1c", update)
		require.NoError(t, err)
		assert.Nil(t, o)
	})

	t.Run("UpdateStatusBody", func(t *testing.T) {
		body, err := json.Marshal(StatusUpdate{Status: StatusShipped, DeliveryMethod: DeliveryUber})
		require.NoError(t, err)
		assert.JSONEq(t, `{"status":"shipped","deliveryMethod":"Uber"}`, string(body))
	})

	t.Run("ClientError", func(t *testing.T) {
		client := new(MockRequester)
		client.On("Get", ctx, "/api/orders/admin").Return(nil, errors.New("down"))

		_, err := NewRepository(client).FetchAdminOrders(ctx)
		assert.Error(t, err)
	})
}
