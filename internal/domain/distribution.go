package domain

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// Distribution records one profit-sharing event for a project and period.
// The (ProjectID, Period) pair is unique: a period is paid at most once.
// FundingBase snapshots the project's funding at the time the pool was
// recorded; shares are always computed against it, so a re-run pays the
// same amounts even after the project's funding moves.
type Distribution struct {
	ID           string
	ProjectID    string
	Period       string
	InvestorPool decimal.Decimal
	FundingBase  decimal.Decimal
	CreatedAt    time.Time
}

// Period format is "YYYY-MM" (monthly distribution convention).
var periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ValidatePeriod checks the period format.
func ValidatePeriod(period string) error {
	if !periodPattern.MatchString(period) {
		return ErrInvalidPeriod
	}
	return nil
}

// PeriodOf returns the distribution period containing t.
func PeriodOf(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// CreditReference builds the deterministic idempotency key for one
// investor's credit within a distribution. Re-running a period produces
// the same references, so replayed credits are no-ops in the ledger.
func CreditReference(projectID, investorID, period string) string {
	return fmt.Sprintf("dist:%s:%s:%s", projectID, investorID, period)
}

// InvestorCredit is one applied (or attempted) credit of a distribution.
type InvestorCredit struct {
	InvestorID    string
	Amount        decimal.Decimal
	TransactionID string
	Replayed      bool
}

// InvestorFailure reports a credit that could not be applied.
type InvestorFailure struct {
	InvestorID string
	Amount     decimal.Decimal
	Err        error
}
