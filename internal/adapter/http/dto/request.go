package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/fundflow/internal/usecase"
)

// SubmitDepositRequest represents a request to deposit funds.
// UserID is only honored when authentication is disabled; otherwise the
// authenticated caller's identity wins.
type SubmitDepositRequest struct {
	UserID string          `json:"user_id,omitempty"`
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`
}

// SubmitWithdrawalRequest represents a request to withdraw funds.
type SubmitWithdrawalRequest struct {
	UserID string          `json:"user_id,omitempty"`
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`
}

// CommitInvestmentRequest represents a request to invest wallet funds
// into a project.
type CommitInvestmentRequest struct {
	InvestorID string          `json:"investor_id,omitempty"`
	ProjectID  string          `json:"project_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// CreateProjectRequest represents a request to raise a project.
type CreateProjectRequest struct {
	PartnerID      string          `json:"partner_id,omitempty"`
	Name           string          `json:"name"`
	FundingGoal    decimal.Decimal `json:"funding_goal"`
	ExpectedReturn decimal.Decimal `json:"expected_return"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateProjectRequest) ToUseCaseInput() usecase.CreateProjectInput {
	return usecase.CreateProjectInput{
		PartnerID:      r.PartnerID,
		Name:           r.Name,
		FundingGoal:    r.FundingGoal,
		ExpectedReturn: r.ExpectedReturn,
	}
}

// ProcessDistributionRequest represents a request to run a profit
// distribution for one project and period.
type ProcessDistributionRequest struct {
	ProjectID string `json:"project_id"`
	Period    string `json:"period"`
}
