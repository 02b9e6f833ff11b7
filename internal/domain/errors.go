package domain

import "errors"

var (
	// Ledger errors
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInvalidTransactionType = errors.New("unknown transaction type")
	ErrMissingReference       = errors.New("transaction reference is required")
	ErrReferenceConflict      = errors.New("reference already used with different arguments")
	ErrWalletNotFound         = errors.New("wallet not found")
	ErrTransactionNotFound    = errors.New("transaction not found")

	// Workflow errors
	ErrAlreadyProcessed = errors.New("transaction already processed")
	ErrInvalidMethod    = errors.New("unknown funding method")

	// Project errors
	ErrProjectNotFound    = errors.New("project not found")
	ErrProjectNotActive   = errors.New("project is not accepting investments")
	ErrProjectNotPending  = errors.New("project is not awaiting activation")
	ErrFundingCapExceeded = errors.New("investment would exceed funding goal")
	ErrInvalidProjectName = errors.New("project name is required")
	ErrInvalidFundingGoal = errors.New("funding goal must be positive")

	// Distribution errors
	ErrInvalidPeriod        = errors.New("invalid distribution period, want YYYY-MM")
	ErrDistributionNotFound = errors.New("distribution not found")
	ErrNothingInvested      = errors.New("project has no investments to distribute to")
)
