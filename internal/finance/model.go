package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

type EntryType string

const (
	TypeIncome  EntryType = "Income"
	TypeExpense EntryType = "Expense"
)

func (t EntryType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Entry is an append-only ledger line.
type Entry struct {
	ID          string          `json:"_id"`
	Type        EntryType       `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
}

type Input struct {
	Type        EntryType       `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
}
