package finance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type CategoryTotal struct {
	Category string          `json:"category"`
	Type     EntryType       `json:"type"`
	Total    decimal.Decimal `json:"total"`
}

type Summary struct {
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
	Balance    decimal.Decimal `json:"balance"`
	Entries    int             `json:"entries"`
	Categories []CategoryTotal `json:"categories"`
}

// Summarize totals entries by type and by (type, category). Categories are
// sorted by type then name.
func Summarize(entries []Entry) Summary {
	s := Summary{Income: decimal.Zero, Expense: decimal.Zero, Entries: len(entries)}
	type key struct {
		t EntryType
		c string
	}
	totals := map[key]decimal.Decimal{}

	for _, e := range entries {
		switch e.Type {
		case TypeIncome:
			s.Income = s.Income.Add(e.Amount)
		case TypeExpense:
			s.Expense = s.Expense.Add(e.Amount)
		default:
			continue
		}
		k := key{e.Type, e.Category}
		totals[k] = totals[k].Add(e.Amount)
	}
	s.Balance = s.Income.Sub(s.Expense)

	for k, v := range totals {
		s.Categories = append(s.Categories, CategoryTotal{Category: k.c, Type: k.t, Total: v})
	}
	sort.Slice(s.Categories, func(i, j int) bool {
		a, b := s.Categories[i], s.Categories[j]
		if a.Type != b.Type {
			return a.Type == TypeIncome
		}
		return a.Category < b.Category
	})
	return s
}

// Between keeps entries dated in [from, to]. Zero bounds are open.
func Between(entries []Entry, from, to time.Time) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !from.IsZero() && e.Date.Before(from) {
			continue
		}
		if !to.IsZero() && e.Date.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out
}
