package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/fundflow/internal/domain"
	"github.com/iho/fundflow/internal/infrastructure/postgres/generated"
	"github.com/iho/fundflow/internal/usecase"
)

// InvestmentRepository implements usecase.InvestmentRepository.
type InvestmentRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewInvestmentRepository creates a new InvestmentRepository.
func NewInvestmentRepository(pool *pgxpool.Pool) *InvestmentRepository {
	return &InvestmentRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new investment within a transaction.
func (r *InvestmentRepository) Create(ctx context.Context, tx usecase.Transaction, investment *domain.Investment) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreateInvestment(ctx, generated.CreateInvestmentParams{
		ID:         investment.ID,
		InvestorID: investment.InvestorID,
		ProjectID:  investment.ProjectID,
		Amount:     decimalToNumeric(investment.Amount),
		CreatedAt:  timeToPgTimestamptz(investment.CreatedAt),
	})

	return err
}

// ListByProject lists all investments in a project, oldest first.
func (r *InvestmentRepository) ListByProject(ctx context.Context, projectID string) ([]*domain.Investment, error) {
	rows, err := r.queries.ListInvestmentsByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	investments := make([]*domain.Investment, 0, len(rows))
	for _, row := range rows {
		investments = append(investments, rowToInvestment(row))
	}

	return investments, nil
}

// ListByInvestor lists an investor's investments with pagination.
func (r *InvestmentRepository) ListByInvestor(ctx context.Context, investorID string, limit, offset int) ([]*domain.Investment, error) {
	rows, err := r.queries.ListInvestmentsByInvestor(ctx, generated.ListInvestmentsByInvestorParams{
		InvestorID: investorID,
		Limit:      int32(limit),
		Offset:     int32(offset),
	})
	if err != nil {
		return nil, err
	}

	investments := make([]*domain.Investment, 0, len(rows))
	for _, row := range rows {
		investments = append(investments, rowToInvestment(row))
	}

	return investments, nil
}

// SumByProject returns the total amount invested in a project.
func (r *InvestmentRepository) SumByProject(ctx context.Context, projectID string) (decimal.Decimal, error) {
	sum, err := r.queries.SumInvestmentsByProject(ctx, projectID)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

func rowToInvestment(row generated.Investment) *domain.Investment {
	return &domain.Investment{
		ID:         row.ID,
		InvestorID: row.InvestorID,
		ProjectID:  row.ProjectID,
		Amount:     numericToDecimal(row.Amount),
		CreatedAt:  row.CreatedAt.Time,
	}
}
