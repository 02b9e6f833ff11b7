
package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type AuditLog struct {
	ID           string             `json:"id"`
	UserID       string             `json:"user_id"`
	Action       string             `json:"action"`
	ResourceType string             `json:"resource_type"`
	ResourceID   string             `json:"resource_id"`
	RequestID    string             `json:"request_id"`
	BeforeState  []byte             `json:"before_state"`
	AfterState   []byte             `json:"after_state"`
	Status       string             `json:"status"`
	ErrorMessage string             `json:"error_message"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
}

type Distribution struct {
	ID           string             `json:"id"`
	ProjectID    string             `json:"project_id"`
	Period       string             `json:"period"`
	InvestorPool pgtype.Numeric     `json:"investor_pool"`
	FundingBase  pgtype.Numeric     `json:"funding_base"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
}

type Investment struct {
	ID         string             `json:"id"`
	InvestorID string             `json:"investor_id"`
	ProjectID  string             `json:"project_id"`
	Amount     pgtype.Numeric     `json:"amount"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
}

type OutboxEvent struct {
	ID            string             `json:"id"`
	AggregateID   string             `json:"aggregate_id"`
	AggregateType string             `json:"aggregate_type"`
	EventType     string             `json:"event_type"`
	Payload       []byte             `json:"payload"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	PublishedAt   pgtype.Timestamptz `json:"published_at"`
	Published     bool               `json:"published"`
}

type Project struct {
	ID             string             `json:"id"`
	PartnerID      string             `json:"partner_id"`
	Name           string             `json:"name"`
	FundingGoal    pgtype.Numeric     `json:"funding_goal"`
	CurrentFunding pgtype.Numeric     `json:"current_funding"`
	ExpectedReturn pgtype.Numeric     `json:"expected_return"`
	Status         string             `json:"status"`
	ActivatedAt    pgtype.Timestamptz `json:"activated_at"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

type Transaction struct {
	ID           string             `json:"id"`
	UserID       string             `json:"user_id"`
	Type         string             `json:"type"`
	Amount       pgtype.Numeric     `json:"amount"`
	Status       string             `json:"status"`
	Reference    string             `json:"reference"`
	InvestmentID pgtype.Text        `json:"investment_id"`
	Description  string             `json:"description"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
	UpdatedAt    pgtype.Timestamptz `json:"updated_at"`
}

type Wallet struct {
	UserID    string             `json:"user_id"`
	Balance   pgtype.Numeric     `json:"balance"`
	Version   int64              `json:"version"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}
