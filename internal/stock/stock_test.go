package stock

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"marketplace-admin/internal/api"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRequester struct {
	mock.Mock
}

func (m *MockRequester) respond(args mock.Arguments, out any) error {
	if raw, ok := args.Get(0).(string); ok && out != nil {
		*(out.(*json.RawMessage)) = json.RawMessage(raw)
	}
	return args.Error(1)
}

func (m *MockRequester) Get(ctx context.Context, path string, out any) error {
	return m.respond(m.Called(ctx, path), out)
}

func (m *MockRequester) Post(ctx context.Context, path string, body, out any) error {
	return m.respond(m.Called(ctx, path, body), out)
}

func (m *MockRequester) Put(ctx context.Context, path string, body, out any) error {
	return m.respond(m.Called(ctx, path, body), out)
}

func (m *MockRequester) Delete(ctx context.Context, path string, out any) error {
	return m.respond(m.Called(ctx, path), out)
}

func TestItem_Status(t *testing.T) {
	assert.Equal(t, StatusOutOfStock, Item{Quantity: 0}.Status())
	assert.Equal(t, StatusLowStock, Item{Quantity: 5, ReorderLevel: 10}.Status())
	assert.Equal(t, StatusLowStock, Item{Quantity: 10, ReorderLevel: 10}.Status())
	assert.Equal(t, StatusInStock, Item{Quantity: 20, ReorderLevel: 10}.Status())
}

func TestInput_Validate(t *testing.T) {
	valid := func() Input {
		return Input{Name: " Desk lamp ", Category: "Lighting", Quantity: 3, ReorderLevel: 2, Price: decimal.NewFromInt(1500)}
	}

	in := valid()
	require.NoError(t, in.Validate())
	assert.Equal(t, "Desk lamp", in.Name)

	tests := []struct {
		field  string
		mutate func(*Input)
	}{
		{"name", func(in *Input) { in.Name = "  " }},
		{"category", func(in *Input) { in.Category = "" }},
		{"quantity", func(in *Input) { in.Quantity = -1 }},
		{"reorderLevel", func(in *Input) { in.ReorderLevel = -2 }},
		{"price", func(in *Input) { in.Price = decimal.Zero }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			in := valid()
			tt.mutate(&in)
			var verr *api.ValidationError
			require.ErrorAs(t, in.Validate(), &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestFilterAndSort(t *testing.T) {
	items := []Item{
		{ID: "1", Name: "Chair", Category: "Furniture", Quantity: 0, Price: decimal.NewFromInt(2000)},
		{ID: "2", Name: "Lamp", Category: "Lighting", Quantity: 4, ReorderLevel: 5, Price: decimal.NewFromInt(900), Supplier: "Lanka Lights"},
		{ID: "3", Name: "Armchair", Category: "Furniture", Quantity: 12, ReorderLevel: 5, Price: decimal.NewFromInt(8000)},
	}

	assert.Len(t, Filter(items, Criteria{}), 3)
	assert.Equal(t, "2", Filter(items, Criteria{Query: "lanka"})[0].ID)
	assert.Len(t, Filter(items, Criteria{Category: "furniture"}), 2)

	low := Filter(items, Criteria{Status: StatusLowStock})
	require.Len(t, low, 1)
	assert.Equal(t, "2", low[0].ID)

	byName := Sort(items, SortByName, false)
	assert.Equal(t, []string{"3", "1", "2"}, ids(byName))
	byPrice := Sort(items, SortByPrice, true)
	assert.Equal(t, []string{"3", "1", "2"}, ids(byPrice))
	assert.Equal(t, []string{"1", "2", "3"}, ids(Sort(items, "colour", false)))
	assert.Equal(t, "1", items[0].ID, "input untouched")

	assert.Equal(t, []string{"Furniture", "Lighting"}, Categories(items))
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestService(t *testing.T) {
	ctx := context.Background()
	input := Input{Name: "Lamp", Category: "Lighting", Quantity: 4, Price: decimal.NewFromInt(900)}

	t.Run("ListWrapped", func(t *testing.T) {
		client := new(MockRequester)
		client.On("Get", ctx, "/api/stock").
			Return(`{"stocks":[{"_id":"a","name":"Lamp","category":"Lighting","quantity":0,"price":900}]}`, nil)

		items, err := NewService(NewRepository(client)).List(ctx, &Query{Criteria: Criteria{Status: StatusOutOfStock}})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "a", items[0].ID)
	})

	t.Run("ListRejectsNegativeQuantity", func(t *testing.T) {
		client := new(MockRequester)
		client.On("Get", ctx, "/api/stock").Return(`[{"_id":"a","quantity":-1}]`, nil)

		_, err := NewService(NewRepository(client)).List(ctx, nil)
		assert.ErrorContains(t, err, "negative quantity")
	})

	t.Run("Create", func(t *testing.T) {
		client := new(MockRequester)
		client.On("Post", ctx, "/api/admin/auth/stocks", input).
			Return(`{"_id":"new","name":"Lamp","category":"Lighting","quantity":4,"price":900}`, nil)

		item, err := NewService(NewRepository(client)).Create(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, "new", item.ID)
		client.AssertExpectations(t)
	})

	t.Run("CreateInvalidSendsNothing", func(t *testing.T) {
		client := new(MockRequester)
		_, err := NewService(NewRepository(client)).Create(ctx, Input{Name: "Lamp"})
		var verr *api.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "category", verr.Field)
		client.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Update", func(t *testing.T) {
		client := new(MockRequester)
		client.On("Put", ctx, "/api/admin/auth/stocks/a1", input).
			Return(`{"stock":{"_id":"a1","name":"Lamp","category":"Lighting","quantity":4,"price":900}}`, nil)

		item, err := NewService(NewRepository(client)).Update(ctx, "a1", input)
		require.NoError(t, err)
		assert.Equal(t, "a1", item.ID)
	})

	t.Run("Delete", func(t *testing.T) {
		client := new(MockRequester)
		client.On("Delete", ctx, "/api/admin/auth/stocks/a1").Return(nil, nil)
		require.NoError(t, NewService(NewRepository(client)).Delete(ctx, "a1"))

		assert.ErrorIs(t, NewService(NewRepository(client)).Delete(ctx, ""), ErrItemNotFound)
	})

	t.Run("DeleteUpstreamError", func(t *testing.T) {
		client := new(MockRequester)
		client.On("Delete", ctx, "/api/admin/auth/stocks/a1").Return(nil, errors.New("boom"))
		assert.EqualError(t, NewService(NewRepository(client)).Delete(ctx, "a1"), "boom")
	})
}
