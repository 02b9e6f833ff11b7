package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fundflow/internal/domain"
	"github.com/iho/fundflow/internal/infrastructure/metrics"
)

// DistributionResult reports the outcome of one distribution run.
type DistributionResult struct {
	DistributionID   string
	ProjectID        string
	Period           string
	InvestorPool     decimal.Decimal
	TotalDistributed decimal.Decimal
	InvestorCount    int
	Credits          []domain.InvestorCredit
	Failures         []domain.InvestorFailure
}

// DistributionUseCase fans a project's profit pool out to its investors.
// Each investor credit is its own atomic ledger application keyed by a
// deterministic reference, so a re-run of the same period only re-attempts
// credits that are missing.
type DistributionUseCase struct {
	projectRepo      ProjectRepository
	investmentRepo   InvestmentRepository
	distributionRepo DistributionRepository
	auditRepo        AuditRepository
	ledger           *LedgerUseCase
	retrier          Retrier
	idGen            IDGenerator
	metrics          *metrics.Metrics
}

// NewDistributionUseCase creates a new DistributionUseCase.
func NewDistributionUseCase(
	projectRepo ProjectRepository,
	investmentRepo InvestmentRepository,
	distributionRepo DistributionRepository,
	auditRepo AuditRepository,
	ledger *LedgerUseCase,
	retrier Retrier,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *DistributionUseCase {
	return &DistributionUseCase{
		projectRepo:      projectRepo,
		investmentRepo:   investmentRepo,
		distributionRepo: distributionRepo,
		auditRepo:        auditRepo,
		ledger:           ledger,
		retrier:          retrier,
		idGen:            idGen,
		metrics:          metrics,
	}
}

// Process distributes one period's profit pool across all investors of a
// project, proportional to each investor's committed amount. Successes stay
// committed even when later credits fail; failures are reported per investor
// and the run is safely repeatable.
func (uc *DistributionUseCase) Process(ctx context.Context, projectID, period string) (*DistributionResult, error) {
	if err := domain.ValidatePeriod(period); err != nil {
		return nil, err
	}

	project, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	investments, err := uc.investmentRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if len(investments) == 0 {
		return nil, domain.ErrNothingInvested
	}

	distribution, err := uc.ensureDistribution(ctx, project, period)
	if err != nil {
		return nil, err
	}

	result := &DistributionResult{
		DistributionID: distribution.ID,
		ProjectID:      projectID,
		Period:         period,
		InvestorPool:   distribution.InvestorPool,
	}

	if distribution.InvestorPool.IsZero() {
		return result, nil
	}

	shares := uc.computeShares(distribution.InvestorPool, distribution.FundingBase, investments)

	for _, share := range shares {
		credit, err := uc.creditInvestor(ctx, project, distribution, share)
		if err != nil {
			result.Failures = append(result.Failures, domain.InvestorFailure{
				InvestorID: share.investorID,
				Amount:     share.amount,
				Err:        err,
			})
			continue
		}

		result.Credits = append(result.Credits, *credit)
		if !credit.Replayed {
			result.TotalDistributed = result.TotalDistributed.Add(credit.Amount)
			result.InvestorCount++
		}
	}

	uc.audit(ctx, distribution, result)

	if uc.metrics != nil {
		uc.metrics.DistributionsProcessed.Inc()
		total, _ := result.TotalDistributed.Float64()
		uc.metrics.DistributionAmount.Observe(total)
	}

	return result, nil
}

// investorShare is one investor's aggregated slice of the pool.
type investorShare struct {
	investorID string
	amount     decimal.Decimal
}

// computeShares aggregates commitments per investor and splits the pool
// proportionally: share_i = pool * invested_i / fundingBase, rounded to
// cents with banker's rounding so drift does not accumulate across periods.
func (uc *DistributionUseCase) computeShares(pool, fundingBase decimal.Decimal, investments []*domain.Investment) []investorShare {
	byInvestor := make(map[string]decimal.Decimal)
	for _, inv := range investments {
		byInvestor[inv.InvestorID] = byInvestor[inv.InvestorID].Add(inv.Amount)
	}

	investorIDs := make([]string, 0, len(byInvestor))
	for id := range byInvestor {
		investorIDs = append(investorIDs, id)
	}
	sort.Strings(investorIDs)

	shares := make([]investorShare, 0, len(investorIDs))
	for _, id := range investorIDs {
		share := pool.Mul(byInvestor[id]).Div(fundingBase).RoundBank(2)
		if share.LessThanOrEqual(decimal.Zero) {
			continue
		}

		shares = append(shares, investorShare{investorID: id, amount: share})
	}

	return shares
}

// creditInvestor applies one investor's RETURN transaction, retrying
// transient store errors. The deterministic reference makes the retry safe:
// an ambiguous outcome resolves to a replay on the next attempt.
func (uc *DistributionUseCase) creditInvestor(ctx context.Context, project *domain.Project, distribution *domain.Distribution, share investorShare) (*domain.InvestorCredit, error) {
	reference := domain.CreditReference(project.ID, share.investorID, distribution.Period)

	var txn *domain.Transaction
	var replayed bool

	operation := func() error {
		var err error
		txn, replayed, err = uc.ledger.Apply(ctx, ApplyInput{
			UserID:      share.investorID,
			Type:        domain.TransactionTypeReturn,
			Amount:      share.amount,
			Reference:   reference,
			Description: "profit distribution " + distribution.Period + " for " + project.Name,
			Event: &domain.OutboxEvent{
				ID:            uc.idGen.Generate(),
				AggregateID:   distribution.ID,
				AggregateType: domain.AggregateTypeDistribution,
				EventType:     domain.EventTypeDistributionApplied,
				Payload: map[string]any{
					"project_id":  project.ID,
					"investor_id": share.investorID,
					"period":      distribution.Period,
					"amount":      share.amount.String(),
				},
				CreatedAt: time.Now().UTC(),
				Published: false,
			},
		})

		return err
	}

	if uc.retrier != nil {
		err := uc.retrier.Retry(ctx, operation)
		if err != nil {
			return nil, err
		}
	} else if err := operation(); err != nil {
		return nil, err
	}

	if uc.metrics != nil && !replayed {
		uc.metrics.DistributionCredits.Inc()
	}

	return &domain.InvestorCredit{
		InvestorID:    share.investorID,
		Amount:        txn.Amount,
		TransactionID: txn.ID,
		Replayed:      replayed,
	}, nil
}

// ensureDistribution finds or durably records the distribution for this
// period. The unique (project, period) constraint makes concurrent runs
// converge on one record; a replayed run reuses the recorded pool and
// funding base rather than recomputing them, so credits stay consistent
// even if the project's funding state changed since the first run.
func (uc *DistributionUseCase) ensureDistribution(ctx context.Context, project *domain.Project, period string) (*domain.Distribution, error) {
	existing, err := uc.distributionRepo.GetByProjectPeriod(ctx, project.ID, period)
	if err == nil {
		return existing, nil
	}

	if !errors.Is(err, domain.ErrDistributionNotFound) {
		return nil, err
	}

	distribution := &domain.Distribution{
		ID:           uc.idGen.Generate(),
		ProjectID:    project.ID,
		Period:       period,
		InvestorPool: MonthlyPool(project),
		FundingBase:  project.CurrentFunding,
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.distributionRepo.Create(ctx, distribution); err != nil {
		// Lost the race to another run of the same period.
		if errors.Is(err, domain.ErrReferenceConflict) {
			return uc.distributionRepo.GetByProjectPeriod(ctx, project.ID, period)
		}

		return nil, err
	}

	return distribution, nil
}

// ListByProject lists recorded distributions for a project.
func (uc *DistributionUseCase) ListByProject(ctx context.Context, projectID string, limit, offset int) ([]*domain.Distribution, error) {
	limit, offset, _ = domain.ValidatePagination(limit, offset)
	return uc.distributionRepo.ListByProject(ctx, projectID, limit, offset)
}

func (uc *DistributionUseCase) audit(ctx context.Context, distribution *domain.Distribution, result *DistributionResult) {
	if uc.auditRepo == nil {
		return
	}

	userID := "system"
	if user, ok := domain.UserFromContext(ctx); ok {
		userID = user.ID
	}

	status := domain.AuditStatusSuccess
	if len(result.Failures) > 0 {
		status = domain.AuditStatusFailure
	}

	log := &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		UserID:       userID,
		Action:       string(domain.AuditActionDistributionRun),
		ResourceType: "distribution",
		ResourceID:   distribution.ID,
		AfterState: domain.JSON{
			"period":            distribution.Period,
			"investor_pool":     distribution.InvestorPool.String(),
			"total_distributed": result.TotalDistributed.String(),
			"credits":           len(result.Credits),
			"failures":          len(result.Failures),
		},
		Status:    string(status),
		CreatedAt: time.Now().UTC(),
	}

	_ = uc.auditRepo.Create(ctx, log)
}
