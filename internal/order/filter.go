package order

import (
	"sort"
	"strings"
)

// EligibleForDelivery is the delivery-assignment predicate: paid online or
// by bank, confirmed or awaiting transfer, and not collected in store.
func EligibleForDelivery(o Order) bool {
	paid := o.PaymentMethod == PaymentOnline || o.PaymentMethod == PaymentBank
	confirmed := o.Status == StatusConfirmed || o.Status == StatusTransferPending
	return paid && confirmed && o.DeliveryMethod != DeliveryStore
}

// FilterEligible returns the orders eligible for delivery assignment in
// their original order. The input is not modified.
func FilterEligible(orders []Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if EligibleForDelivery(o) {
			out = append(out, o)
		}
	}
	return out
}

// FilterByStatus keeps orders with the given status; an empty status keeps all.
func FilterByStatus(orders []Order, status Status) []Order {
	if status == "" {
		return orders
	}
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// Search matches query case-insensitively against the order number and the
// customer's username, email and phone.
func Search(orders []Order, query string) []Order {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return orders
	}
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		fields := []string{o.OrderNumber, o.Customer.Username, o.Customer.Email, o.Customer.Phone}
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, o)
				break
			}
		}
	}
	return out
}

// SortByCreated sorts a copy of orders by creation time, newest first when desc.
func SortByCreated(orders []Order, desc bool) []Order {
	out := append([]Order(nil), orders...)
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
