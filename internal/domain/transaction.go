package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry. The sign of the balance effect
// is implied by the type; Amount itself is always positive.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTypeInvestment TransactionType = "INVESTMENT"
	TransactionTypeReturn     TransactionType = "RETURN"
	TransactionTypeFee        TransactionType = "FEE"
)

var validTransactionTypes = map[TransactionType]bool{
	TransactionTypeDeposit:    true,
	TransactionTypeWithdrawal: true,
	TransactionTypeInvestment: true,
	TransactionTypeReturn:     true,
	TransactionTypeFee:        true,
}

// IsValid checks if the type is a known transaction type.
func (t TransactionType) IsValid() bool {
	return validTransactionTypes[t]
}

// Sign returns +1 for credit types and -1 for debit types.
func (t TransactionType) Sign() int {
	switch t {
	case TransactionTypeDeposit, TransactionTypeReturn:
		return 1
	case TransactionTypeWithdrawal, TransactionTypeInvestment, TransactionTypeFee:
		return -1
	default:
		return 0
	}
}

// IsCredit reports whether the type increases the wallet balance.
func (t TransactionType) IsCredit() bool {
	return t.Sign() > 0
}

// TransactionStatus is the lifecycle state of a ledger entry.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	TransactionStatusRejected  TransactionStatus = "REJECTED"
)

// IsTerminal reports whether no further transition is allowed.
func (s TransactionStatus) IsTerminal() bool {
	switch s {
	case TransactionStatusCompleted, TransactionStatusFailed, TransactionStatusRejected:
		return true
	}
	return false
}

// CanTransitionTo checks the PENDING -> {COMPLETED, FAILED, REJECTED} machine.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	if s != TransactionStatusPending {
		return false
	}
	return next.IsTerminal()
}

// Transaction is one append-only ledger entry affecting a wallet balance.
// Only COMPLETED transactions count towards the balance.
type Transaction struct {
	ID           string
	UserID       string
	Type         TransactionType
	Amount       decimal.Decimal
	Status       TransactionStatus
	Reference    string
	InvestmentID *string
	Description  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SignedAmount returns the amount with the sign implied by the type.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type.Sign() < 0 {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Validate validates a transaction before it is applied.
func (t *Transaction) Validate() error {
	if !t.Type.IsValid() {
		return ErrInvalidTransactionType
	}
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if t.Reference == "" {
		return ErrMissingReference
	}
	return nil
}

// Transition moves the transaction to a terminal status, enforcing the
// state machine. Returns ErrAlreadyProcessed when the current status is
// already terminal.
func (t *Transaction) Transition(next TransactionStatus, at time.Time) error {
	if !t.Status.CanTransitionTo(next) {
		return ErrAlreadyProcessed
	}
	t.Status = next
	t.UpdatedAt = at
	return nil
}

// TransactionFilter narrows ListTransactions results.
type TransactionFilter struct {
	Type   *TransactionType
	Status *TransactionStatus
	Limit  int
	Offset int
}
