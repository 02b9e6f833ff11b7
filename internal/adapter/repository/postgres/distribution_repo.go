package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/fundflow/internal/domain"
	"github.com/iho/fundflow/internal/infrastructure/postgres/generated"
)

// DistributionRepository implements usecase.DistributionRepository.
type DistributionRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewDistributionRepository creates a new DistributionRepository.
func NewDistributionRepository(pool *pgxpool.Pool) *DistributionRepository {
	return &DistributionRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create records a distribution. The (project_id, period) pair is unique;
// a duplicate maps to domain.ErrReferenceConflict so the caller can
// refetch the winning row.
func (r *DistributionRepository) Create(ctx context.Context, distribution *domain.Distribution) error {
	_, err := r.queries.CreateDistribution(ctx, generated.CreateDistributionParams{
		ID:           distribution.ID,
		ProjectID:    distribution.ProjectID,
		Period:       distribution.Period,
		InvestorPool: decimalToNumeric(distribution.InvestorPool),
		FundingBase:  decimalToNumeric(distribution.FundingBase),
		CreatedAt:    timeToPgTimestamptz(distribution.CreatedAt),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrReferenceConflict
		}

		return err
	}

	return nil
}

// GetByProjectPeriod retrieves a distribution by project and period.
func (r *DistributionRepository) GetByProjectPeriod(ctx context.Context, projectID, period string) (*domain.Distribution, error) {
	row, err := r.queries.GetDistributionByProjectPeriod(ctx, generated.GetDistributionByProjectPeriodParams{
		ProjectID: projectID,
		Period:    period,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDistributionNotFound
		}

		return nil, err
	}

	return rowToDistribution(row), nil
}

// ListByProject lists a project's distributions, most recent period first.
func (r *DistributionRepository) ListByProject(ctx context.Context, projectID string, limit, offset int) ([]*domain.Distribution, error) {
	rows, err := r.queries.ListDistributionsByProject(ctx, generated.ListDistributionsByProjectParams{
		ProjectID: projectID,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		return nil, err
	}

	distributions := make([]*domain.Distribution, 0, len(rows))
	for _, row := range rows {
		distributions = append(distributions, rowToDistribution(row))
	}

	return distributions, nil
}

func rowToDistribution(row generated.Distribution) *domain.Distribution {
	return &domain.Distribution{
		ID:           row.ID,
		ProjectID:    row.ProjectID,
		Period:       row.Period,
		InvestorPool: numericToDecimal(row.InvestorPool),
		FundingBase:  numericToDecimal(row.FundingBase),
		CreatedAt:    row.CreatedAt.Time,
	}
}
