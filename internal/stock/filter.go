package stock

import (
	"sort"
	"strings"
)

// Criteria narrows a stock list. Zero values match everything.
type Criteria struct {
	Query    string
	Category string
	Status   Status
}

// Filter keeps the items matching c, in input order. Query matches name,
// category and supplier case-insensitively.
func Filter(items []Item, c Criteria) []Item {
	q := strings.ToLower(strings.TrimSpace(c.Query))
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if c.Category != "" && !strings.EqualFold(it.Category, c.Category) {
			continue
		}
		if c.Status != "" && it.Status() != c.Status {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(it.Name), q) &&
			!strings.Contains(strings.ToLower(it.Category), q) &&
			!strings.Contains(strings.ToLower(it.Supplier), q) {
			continue
		}
		out = append(out, it)
	}
	return out
}

type SortField string

const (
	SortByName     SortField = "name"
	SortByQuantity SortField = "quantity"
	SortByPrice    SortField = "price"
)

// Sort returns a sorted copy; unknown fields keep the input order.
func Sort(items []Item, field SortField, desc bool) []Item {
	out := append([]Item(nil), items...)
	var less func(a, b Item) bool
	switch field {
	case SortByName:
		less = func(a, b Item) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case SortByQuantity:
		less = func(a, b Item) bool { return a.Quantity < b.Quantity }
	case SortByPrice:
		less = func(a, b Item) bool { return a.Price.LessThan(b.Price) }
	default:
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// Categories lists the distinct categories present, sorted.
func Categories(items []Item) []string {
	seen := map[string]bool{}
	var out []string
	for _, it := range items {
		if it.Category != "" && !seen[it.Category] {
			seen[it.Category] = true
			out = append(out, it.Category)
		}
	}
	sort.Strings(out)
	return out
}
