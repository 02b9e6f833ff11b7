package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fundflow/internal/domain"
	"github.com/iho/fundflow/internal/infrastructure/metrics"
)

// InvestmentUseCase moves wallet funds into a project's funding pool. The
// wallet debit, the funding counter increment and the investment row commit
// together or not at all; a debit without a recorded investment cannot
// happen by construction.
type InvestmentUseCase struct {
	txManager      TransactionManager
	walletRepo     WalletRepository
	txnRepo        TransactionRepository
	projectRepo    ProjectRepository
	investmentRepo InvestmentRepository
	outboxRepo     OutboxRepository
	auditRepo      AuditRepository
	idGen          IDGenerator
	metrics        *metrics.Metrics
}

// NewInvestmentUseCase creates a new InvestmentUseCase.
func NewInvestmentUseCase(
	txManager TransactionManager,
	walletRepo WalletRepository,
	txnRepo TransactionRepository,
	projectRepo ProjectRepository,
	investmentRepo InvestmentRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *InvestmentUseCase {
	return &InvestmentUseCase{
		txManager:      txManager,
		walletRepo:     walletRepo,
		txnRepo:        txnRepo,
		projectRepo:    projectRepo,
		investmentRepo: investmentRepo,
		outboxRepo:     outboxRepo,
		auditRepo:      auditRepo,
		idGen:          idGen,
		metrics:        metrics,
	}
}

// Commit accepts an investment of amount from investorID into projectID.
// Preconditions: project ACTIVE, amount positive, funding cap not exceeded,
// wallet balance covers the amount. Partial fills are not automatic; a
// commitment that would overfill the goal is rejected whole.
func (uc *InvestmentUseCase) Commit(ctx context.Context, investorID, projectID string, amount decimal.Decimal) (*domain.Investment, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// Lock order is wallet then project, everywhere, to avoid deadlocks
	// between concurrent commitments.
	wallet, err := uc.walletRepo.GetByUserIDForUpdate(txCtx, tx, investorID)
	if err != nil {
		return nil, err
	}

	project, err := uc.projectRepo.GetByIDForUpdate(txCtx, tx, projectID)
	if err != nil {
		return nil, err
	}

	if err := project.ValidateCommitment(amount); err != nil {
		return nil, err
	}

	if err := wallet.ValidateDebit(amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	investment := &domain.Investment{
		ID:         uc.idGen.Generate(),
		InvestorID: investorID,
		ProjectID:  projectID,
		Amount:     amount,
		CreatedAt:  now,
	}

	if err := uc.investmentRepo.Create(txCtx, tx, investment); err != nil {
		return nil, err
	}

	record := &domain.Transaction{
		ID:           uc.idGen.Generate(),
		UserID:       investorID,
		Type:         domain.TransactionTypeInvestment,
		Amount:       amount,
		Status:       domain.TransactionStatusCompleted,
		Reference:    "invest:" + investment.ID,
		InvestmentID: &investment.ID,
		Description:  "investment in " + project.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.txnRepo.Create(txCtx, tx, record); err != nil {
		return nil, err
	}

	if err := uc.walletRepo.UpdateBalance(txCtx, tx, investorID, wallet.ApplyDebit(amount), now); err != nil {
		return nil, err
	}

	newFunding := project.ApplyCommitment(amount)
	if err := uc.projectRepo.UpdateFunding(txCtx, tx, projectID, newFunding, now); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   investment.ID,
		AggregateType: domain.AggregateTypeProject,
		EventType:     domain.EventTypeInvestmentCommitted,
		Payload: map[string]any{
			"investment_id": investment.ID,
			"investor_id":   investorID,
			"project_id":    projectID,
			"amount":        amount.String(),
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	// A commitment that fills the goal exactly closes the funding round.
	if newFunding.Equal(project.FundingGoal) {
		if err := uc.projectRepo.UpdateStatus(txCtx, tx, projectID, domain.ProjectStatusFunded, now); err != nil {
			return nil, err
		}

		funded := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   projectID,
			AggregateType: domain.AggregateTypeProject,
			EventType:     domain.EventTypeProjectFunded,
			Payload: map[string]any{
				"project_id":   projectID,
				"funding_goal": project.FundingGoal.String(),
			},
			CreatedAt: now,
			Published: false,
		}
		if err := uc.outboxRepo.Create(txCtx, tx, funded); err != nil {
			return nil, err
		}
	}

	if uc.auditRepo != nil {
		userID := investorID
		if user, ok := domain.UserFromContext(ctx); ok {
			userID = user.ID
		}

		log := &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			UserID:       userID,
			Action:       string(domain.AuditActionInvestmentCommit),
			ResourceType: "investment",
			ResourceID:   investment.ID,
			AfterState:   domain.MarshalState(investment),
			Status:       string(domain.AuditStatusSuccess),
			CreatedAt:    now,
		}
		if err := uc.auditRepo.CreateTx(txCtx, tx, log); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.InvestmentsCommitted.Inc()
		amt, _ := amount.Float64()
		uc.metrics.InvestmentAmount.Observe(amt)
	}

	return investment, nil
}

// ListByInvestor lists an investor's commitments.
func (uc *InvestmentUseCase) ListByInvestor(ctx context.Context, investorID string, limit, offset int) ([]*domain.Investment, error) {
	limit, offset, _ = domain.ValidatePagination(limit, offset)
	return uc.investmentRepo.ListByInvestor(ctx, investorID, limit, offset)
}

// ListByProject lists all commitments in a project.
func (uc *InvestmentUseCase) ListByProject(ctx context.Context, projectID string) ([]*domain.Investment, error) {
	return uc.investmentRepo.ListByProject(ctx, projectID)
}
