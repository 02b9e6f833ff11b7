package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment is a recorded commitment of wallet funds into a project.
// It is immutable once created; profit bookkeeping happens through RETURN
// transactions, never by mutating the investment row.
type Investment struct {
	ID         string
	InvestorID string
	ProjectID  string
	Amount     decimal.Decimal
	CreatedAt  time.Time
}
