package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction type values as stored and displayed.
const (
	TypeEntry = "entrada"
	TypeExit  = "saída"
)

// Transaction is a single ledger entry. Amount is always non-negative;
// direction is carried by Type alone.
type Transaction struct {
	ID          int64           `json:"id"`
	ChurchID    int64           `json:"church_id"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}
