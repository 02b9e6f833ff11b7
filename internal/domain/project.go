package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectStatus is the lifecycle state of a funding project.
type ProjectStatus string

const (
	ProjectStatusPending   ProjectStatus = "PENDING"
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusFunded    ProjectStatus = "FUNDED"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
)

var validProjectStatuses = map[ProjectStatus]bool{
	ProjectStatusPending:   true,
	ProjectStatusActive:    true,
	ProjectStatusFunded:    true,
	ProjectStatusCompleted: true,
}

// IsValid checks if the status is a known project status.
func (s ProjectStatus) IsValid() bool {
	return validProjectStatuses[s]
}

// Project is a funding opportunity with a goal, a raised amount and an
// expected annualized return rate. CurrentFunding is mutated only by
// accepted investment commitments.
type Project struct {
	ID             string
	PartnerID      string
	Name           string
	FundingGoal    decimal.Decimal
	CurrentFunding decimal.Decimal
	ExpectedReturn decimal.Decimal
	Status         ProjectStatus
	ActivatedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AccrualStart returns when profit starts accruing: the activation time,
// or CreatedAt for projects that predate activation tracking.
func (p *Project) AccrualStart() time.Time {
	if p.ActivatedAt != nil {
		return *p.ActivatedAt
	}
	return p.CreatedAt
}

// RemainingCapacity returns how much funding the project can still accept.
func (p *Project) RemainingCapacity() decimal.Decimal {
	return p.FundingGoal.Sub(p.CurrentFunding)
}

// FundingProgress returns CurrentFunding/FundingGoal in [0, 1],
// zero when the goal is zero.
func (p *Project) FundingProgress() decimal.Decimal {
	if p.FundingGoal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return p.CurrentFunding.Div(p.FundingGoal)
}

// ValidateCommitment checks whether an investment of amount can be accepted.
func (p *Project) ValidateCommitment(amount decimal.Decimal) error {
	if p.Status != ProjectStatusActive {
		return ErrProjectNotActive
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if p.CurrentFunding.Add(amount).GreaterThan(p.FundingGoal) {
		return ErrFundingCapExceeded
	}
	return nil
}

// ApplyCommitment returns the new funding level after an accepted commitment.
func (p *Project) ApplyCommitment(amount decimal.Decimal) decimal.Decimal {
	return p.CurrentFunding.Add(amount)
}

// Validate validates a project on creation.
func (p *Project) Validate() error {
	if p.Name == "" {
		return ErrInvalidProjectName
	}
	if p.FundingGoal.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidFundingGoal
	}
	return nil
}
