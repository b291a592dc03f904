package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilterEligible(t *testing.T) {
	orders := []Order{
		{ID: "1", PaymentMethod: PaymentOnline, Status: StatusConfirmed, DeliveryMethod: DeliveryHome},
		{ID: "2", PaymentMethod: PaymentBank, Status: StatusTransferPending, DeliveryMethod: DeliveryDifferent},
		{ID: "3", PaymentMethod: PaymentOnline, Status: StatusConfirmed, DeliveryMethod: DeliveryStore},
		{ID: "4", PaymentMethod: "cash", Status: StatusConfirmed, DeliveryMethod: DeliveryHome},
		{ID: "5", PaymentMethod: PaymentOnline, Status: StatusPending, DeliveryMethod: DeliveryHome},
		{ID: "6", PaymentMethod: PaymentOnline, Status: StatusConfirmed, DeliveryMethod: DeliveryUber},
		{ID: "7", PaymentMethod: PaymentBank, Status: StatusShipped, DeliveryMethod: DeliveryPickMe},
		{ID: "8", PaymentMethod: PaymentBank, Status: StatusConfirmed, DeliveryMethod: DeliveryPickMe},
	}

	got := FilterEligible(orders)

	ids := make([]string, 0, len(got))
	for _, o := range got {
		ids = append(ids, o.ID)
		assert.True(t, EligibleForDelivery(o))
	}
	// relative order preserved, carrier-assigned orders stay listed
	assert.Equal(t, []string{"1", "2", "6", "8"}, ids)
	assert.Len(t, orders, 8, "input must not be modified")
}

func TestFilterEligible_Empty(t *testing.T) {
	assert.Empty(t, FilterEligible(nil))
}

func TestSearch(t *testing.T) {
	orders := []Order{
		{ID: "1", OrderNumber: "ORD-1001", Customer: Customer{Username: "Nimal", Email: "nimal@mail.lk", Phone: "0771234567"}},
		{ID: "2", OrderNumber: "ORD-1002", Customer: Customer{Username: "Kamala", Email: "kamala@mail.lk", Phone: "0719876543"}},
	}

	assert.Len(t, Search(orders, ""), 2)
	assert.Equal(t, "1", Search(orders, "nimal")[0].ID)
	assert.Equal(t, "2", Search(orders, "1002")[0].ID)
	assert.Equal(t, "2", Search(orders, "0719")[0].ID)
	assert.Empty(t, Search(orders, "nobody"))
}

func TestFilterByStatus(t *testing.T) {
	orders := []Order{{ID: "1", Status: StatusPending}, {ID: "2", Status: StatusShipped}}

	assert.Len(t, FilterByStatus(orders, ""), 2)
	got := FilterByStatus(orders, StatusShipped)
	assert.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}

func TestSortByCreated(t *testing.T) {
	now := time.Now()
	orders := []Order{
		{ID: "old", CreatedAt: now.Add(-time.Hour)},
		{ID: "new", CreatedAt: now},
	}

	desc := SortByCreated(orders, true)
	assert.Equal(t, "new", desc[0].ID)
	asc := SortByCreated(orders, false)
	assert.Equal(t, "old", asc[0].ID)
	assert.Equal(t, "old", orders[0].ID, "input must not be reordered")
}
