package domain

import "time"

// Event types
const (
	EventTypeDepositSettled      = "deposit.settled"
	EventTypeWithdrawalSettled   = "withdrawal.settled"
	EventTypeWithdrawalFailed    = "withdrawal.failed"
	EventTypeInvestmentCommitted = "investment.committed"
	EventTypeProjectFunded       = "project.funded"
	EventTypeDistributionApplied = "distribution.applied"
)

// Aggregate types
const (
	AggregateTypeTransaction  = "transaction"
	AggregateTypeProject      = "project"
	AggregateTypeDistribution = "distribution"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// DepositSettledEvent payload
type DepositSettledEvent struct {
	UserID        string `json:"user_id"`
	Amount        string `json:"amount"`
	Reference     string `json:"reference"`
	TransactionID string `json:"transaction_id"`
}

// WithdrawalSettledEvent payload
type WithdrawalSettledEvent struct {
	UserID        string `json:"user_id"`
	Amount        string `json:"amount"`
	Reference     string `json:"reference"`
	TransactionID string `json:"transaction_id"`
}

// InvestmentCommittedEvent payload
type InvestmentCommittedEvent struct {
	InvestmentID string `json:"investment_id"`
	InvestorID   string `json:"investor_id"`
	ProjectID    string `json:"project_id"`
	Amount       string `json:"amount"`
}

// DistributionAppliedEvent payload
type DistributionAppliedEvent struct {
	ProjectID     string `json:"project_id"`
	InvestorID    string `json:"investor_id"`
	Period        string `json:"period"`
	Amount        string `json:"amount"`
	TransactionID string `json:"transaction_id"`
}
