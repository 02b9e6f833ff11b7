package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fundflow/internal/domain"
	"github.com/iho/fundflow/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WalletResponse represents a wallet in API responses.
type WalletResponse struct {
	UserID    string          `json:"user_id"`
	Balance   decimal.Decimal `json:"balance"`
	Version   int64           `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// WalletFromDomain converts a domain wallet to a response.
func WalletFromDomain(w *domain.Wallet) *WalletResponse {
	return &WalletResponse{
		UserID:    w.UserID,
		Balance:   w.Balance,
		Version:   w.Version,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// BalanceResponse represents a balance query result.
type BalanceResponse struct {
	UserID  string          `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}

// TransactionResponse represents a ledger transaction in API responses.
type TransactionResponse struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Status       string          `json:"status"`
	Reference    string          `json:"reference"`
	InvestmentID *string         `json:"investment_id,omitempty"`
	Description  string          `json:"description,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:           t.ID,
		UserID:       t.UserID,
		Type:         string(t.Type),
		Amount:       t.Amount,
		Status:       string(t.Status),
		Reference:    t.Reference,
		InvestmentID: t.InvestmentID,
		Description:  t.Description,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// ProjectResponse represents a project in API responses.
type ProjectResponse struct {
	ID             string          `json:"id"`
	PartnerID      string          `json:"partner_id"`
	Name           string          `json:"name"`
	FundingGoal    decimal.Decimal `json:"funding_goal"`
	CurrentFunding decimal.Decimal `json:"current_funding"`
	ExpectedReturn decimal.Decimal `json:"expected_return"`
	Status         string          `json:"status"`
	ActivatedAt    *time.Time      `json:"activated_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProjectFromDomain converts a domain project to a response.
func ProjectFromDomain(p *domain.Project) *ProjectResponse {
	return &ProjectResponse{
		ID:             p.ID,
		PartnerID:      p.PartnerID,
		Name:           p.Name,
		FundingGoal:    p.FundingGoal,
		CurrentFunding: p.CurrentFunding,
		ExpectedReturn: p.ExpectedReturn,
		Status:         string(p.Status),
		ActivatedAt:    p.ActivatedAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ProjectsFromDomain converts domain projects to responses.
func ProjectsFromDomain(projects []*domain.Project) []*ProjectResponse {
	result := make([]*ProjectResponse, len(projects))
	for i, p := range projects {
		result[i] = ProjectFromDomain(p)
	}
	return result
}

// InvestmentResponse represents an investment in API responses.
type InvestmentResponse struct {
	ID         string          `json:"id"`
	InvestorID string          `json:"investor_id"`
	ProjectID  string          `json:"project_id"`
	Amount     decimal.Decimal `json:"amount"`
	CreatedAt  time.Time       `json:"created_at"`
}

// InvestmentFromDomain converts a domain investment to a response.
func InvestmentFromDomain(inv *domain.Investment) *InvestmentResponse {
	return &InvestmentResponse{
		ID:         inv.ID,
		InvestorID: inv.InvestorID,
		ProjectID:  inv.ProjectID,
		Amount:     inv.Amount,
		CreatedAt:  inv.CreatedAt,
	}
}

// InvestmentsFromDomain converts domain investments to responses.
func InvestmentsFromDomain(investments []*domain.Investment) []*InvestmentResponse {
	result := make([]*InvestmentResponse, len(investments))
	for i, inv := range investments {
		result[i] = InvestmentFromDomain(inv)
	}
	return result
}

// DistributionResponse represents a recorded distribution.
type DistributionResponse struct {
	ID           string          `json:"id"`
	ProjectID    string          `json:"project_id"`
	Period       string          `json:"period"`
	InvestorPool decimal.Decimal `json:"investor_pool"`
	FundingBase  decimal.Decimal `json:"funding_base"`
	CreatedAt    time.Time       `json:"created_at"`
}

// DistributionFromDomain converts a domain distribution to a response.
func DistributionFromDomain(d *domain.Distribution) *DistributionResponse {
	return &DistributionResponse{
		ID:           d.ID,
		ProjectID:    d.ProjectID,
		Period:       d.Period,
		InvestorPool: d.InvestorPool,
		FundingBase:  d.FundingBase,
		CreatedAt:    d.CreatedAt,
	}
}

// DistributionsFromDomain converts domain distributions to responses.
func DistributionsFromDomain(distributions []*domain.Distribution) []*DistributionResponse {
	result := make([]*DistributionResponse, len(distributions))
	for i, d := range distributions {
		result[i] = DistributionFromDomain(d)
	}
	return result
}

// InvestorCreditResponse represents one credited investor within a
// distribution run.
type InvestorCreditResponse struct {
	InvestorID    string          `json:"investor_id"`
	Amount        decimal.Decimal `json:"amount"`
	TransactionID string          `json:"transaction_id"`
	Replayed      bool            `json:"replayed"`
}

// InvestorFailureResponse represents a failed credit within a
// distribution run.
type InvestorFailureResponse struct {
	InvestorID string          `json:"investor_id"`
	Amount     decimal.Decimal `json:"amount"`
	Error      string          `json:"error"`
}

// DistributionResultResponse represents the outcome of a distribution run.
type DistributionResultResponse struct {
	DistributionID   string                    `json:"distribution_id"`
	ProjectID        string                    `json:"project_id"`
	Period           string                    `json:"period"`
	InvestorPool     decimal.Decimal           `json:"investor_pool"`
	TotalDistributed decimal.Decimal           `json:"total_distributed"`
	InvestorCount    int                       `json:"investor_count"`
	Credits          []InvestorCreditResponse  `json:"credits"`
	Failures         []InvestorFailureResponse `json:"failures,omitempty"`
}

// DistributionResultFromUseCase converts a distribution result to a response.
func DistributionResultFromUseCase(result *usecase.DistributionResult) *DistributionResultResponse {
	credits := make([]InvestorCreditResponse, len(result.Credits))
	for i, c := range result.Credits {
		credits[i] = InvestorCreditResponse{
			InvestorID:    c.InvestorID,
			Amount:        c.Amount,
			TransactionID: c.TransactionID,
			Replayed:      c.Replayed,
		}
	}

	failures := make([]InvestorFailureResponse, len(result.Failures))
	for i, f := range result.Failures {
		msg := ""
		if f.Err != nil {
			msg = f.Err.Error()
		}
		failures[i] = InvestorFailureResponse{
			InvestorID: f.InvestorID,
			Amount:     f.Amount,
			Error:      msg,
		}
	}

	return &DistributionResultResponse{
		DistributionID:   result.DistributionID,
		ProjectID:        result.ProjectID,
		Period:           result.Period,
		InvestorPool:     result.InvestorPool,
		TotalDistributed: result.TotalDistributed,
		InvestorCount:    result.InvestorCount,
		Credits:          credits,
		Failures:         failures,
	}
}
