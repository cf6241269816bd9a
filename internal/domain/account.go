package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account holds the per-member credit balance. Credits are fractional and
// denominate minutes of bookable time; the balance is mutated only through
// the ledger operations on the account repository.
type Account struct {
	ID            int64
	Name          string
	Email         string
	CreditBalance decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
