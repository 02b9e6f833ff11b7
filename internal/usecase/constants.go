package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// ProfitCacheTTL is how long computed profit projections are cached.
	// The projection is read-only, so staleness only affects display.
	ProfitCacheTTL = time.Minute

	// MonthsPerYear converts an annualized return rate to the monthly
	// distribution convention.
	MonthsPerYear = 12

	// DaysPerYear converts an annualized return rate to daily accrual.
	DaysPerYear = 365
)
