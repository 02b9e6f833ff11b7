package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/fundflow/internal/domain"
	"github.com/iho/fundflow/internal/usecase"
	"github.com/iho/fundflow/internal/usecase/mocks"
)

type investmentFixture struct {
	uc             *usecase.InvestmentUseCase
	walletRepo     *mocks.MockWalletRepository
	txnRepo        *mocks.MockTransactionRepository
	projectRepo    *mocks.MockProjectRepository
	investmentRepo *mocks.MockInvestmentRepository
	outboxRepo     *mocks.MockOutboxRepository
}

func newInvestmentFixture() *investmentFixture {
	walletRepo := mocks.NewMockWalletRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	projectRepo := mocks.NewMockProjectRepository()
	investmentRepo := mocks.NewMockInvestmentRepository()
	outboxRepo := mocks.NewMockOutboxRepository()
	auditRepo := mocks.NewMockAuditRepository()
	txMgr := mocks.NewMockTransactionManager()
	idGen := mocks.NewMockIDGenerator()

	uc := usecase.NewInvestmentUseCase(txMgr, walletRepo, txnRepo, projectRepo, investmentRepo, outboxRepo, auditRepo, idGen, nil)

	return &investmentFixture{
		uc:             uc,
		walletRepo:     walletRepo,
		txnRepo:        txnRepo,
		projectRepo:    projectRepo,
		investmentRepo: investmentRepo,
		outboxRepo:     outboxRepo,
	}
}

func activeProject(id string, goal, funded int64) *domain.Project {
	return &domain.Project{
		ID:             id,
		PartnerID:      "partner-1",
		Name:           "Solar Farm",
		FundingGoal:    decimal.NewFromInt(goal),
		CurrentFunding: decimal.NewFromInt(funded),
		ExpectedReturn: decimal.NewFromInt(12),
		Status:         domain.ProjectStatusActive,
	}
}

func TestInvestmentUseCase_Commit(t *testing.T) {
	f := newInvestmentFixture()
	f.walletRepo.Seed(&domain.Wallet{UserID: "inv-1", Balance: decimal.NewFromInt(500)})
	f.projectRepo.Seed(activeProject("proj-1", 1000, 0))

	investment, err := f.uc.Commit(context.Background(), "inv-1", "proj-1", decimal.NewFromInt(300))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !investment.Amount.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected amount 300, got %s", investment.Amount)
	}

	wallet, _ := f.walletRepo.GetByUserID(context.Background(), "inv-1")
	if !wallet.Balance.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected balance 200, got %s", wallet.Balance)
	}

	project, _ := f.projectRepo.GetByID(context.Background(), "proj-1")
	if !project.CurrentFunding.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected funding 300, got %s", project.CurrentFunding)
	}
	if project.Status != domain.ProjectStatusActive {
		t.Fatalf("project must stay ACTIVE below the goal, got %s", project.Status)
	}

	// An INVESTMENT ledger entry ties the debit to the commitment.
	txn, err := f.txnRepo.GetByReference(context.Background(), "invest:"+investment.ID)
	if err != nil {
		t.Fatalf("expected investment transaction: %v", err)
	}
	if txn.Type != domain.TransactionTypeInvestment || txn.InvestmentID == nil || *txn.InvestmentID != investment.ID {
		t.Fatalf("unexpected transaction: %+v", txn)
	}
}

func TestInvestmentUseCase_Commit_FillsGoal(t *testing.T) {
	f := newInvestmentFixture()
	f.walletRepo.Seed(&domain.Wallet{UserID: "inv-1", Balance: decimal.NewFromInt(500)})
	f.projectRepo.Seed(activeProject("proj-1", 1000, 900))

	if _, err := f.uc.Commit(context.Background(), "inv-1", "proj-1", decimal.NewFromInt(100)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	project, _ := f.projectRepo.GetByID(context.Background(), "proj-1")
	if project.Status != domain.ProjectStatusFunded {
		t.Fatalf("filling the goal must close the round, got %s", project.Status)
	}

	var fundedEvents int
	for _, e := range f.outboxRepo.Events() {
		if e.EventType == domain.EventTypeProjectFunded {
			fundedEvents++
		}
	}
	if fundedEvents != 1 {
		t.Fatalf("expected one project.funded event, got %d", fundedEvents)
	}
}

func TestInvestmentUseCase_Commit_RejectsOverfill(t *testing.T) {
	f := newInvestmentFixture()
	f.walletRepo.Seed(&domain.Wallet{UserID: "inv-1", Balance: decimal.NewFromInt(500)})
	f.projectRepo.Seed(activeProject("proj-1", 1000, 900))

	// 900 + 200 > 1000: rejected whole, no partial fill.
	_, err := f.uc.Commit(context.Background(), "inv-1", "proj-1", decimal.NewFromInt(200))
	if !errors.Is(err, domain.ErrFundingCapExceeded) {
		t.Fatalf("expected ErrFundingCapExceeded, got %v", err)
	}

	wallet, _ := f.walletRepo.GetByUserID(context.Background(), "inv-1")
	if !wallet.Balance.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("rejected commitment must not debit the wallet, got %s", wallet.Balance)
	}

	project, _ := f.projectRepo.GetByID(context.Background(), "proj-1")
	if !project.CurrentFunding.Equal(decimal.NewFromInt(900)) {
		t.Fatalf("funding must be untouched, got %s", project.CurrentFunding)
	}
}

func TestInvestmentUseCase_Commit_InsufficientFunds(t *testing.T) {
	f := newInvestmentFixture()
	f.walletRepo.Seed(&domain.Wallet{UserID: "inv-1", Balance: decimal.NewFromInt(100)})
	f.projectRepo.Seed(activeProject("proj-1", 1000, 0))

	_, err := f.uc.Commit(context.Background(), "inv-1", "proj-1", decimal.NewFromInt(300))
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestInvestmentUseCase_Commit_ProjectNotActive(t *testing.T) {
	f := newInvestmentFixture()
	f.walletRepo.Seed(&domain.Wallet{UserID: "inv-1", Balance: decimal.NewFromInt(500)})

	project := activeProject("proj-1", 1000, 0)
	project.Status = domain.ProjectStatusPending
	f.projectRepo.Seed(project)

	_, err := f.uc.Commit(context.Background(), "inv-1", "proj-1", decimal.NewFromInt(100))
	if !errors.Is(err, domain.ErrProjectNotActive) {
		t.Fatalf("expected ErrProjectNotActive, got %v", err)
	}
}

func TestInvestmentUseCase_Commit_MissingWallet(t *testing.T) {
	f := newInvestmentFixture()
	f.projectRepo.Seed(activeProject("proj-1", 1000, 0))

	_, err := f.uc.Commit(context.Background(), "inv-1", "proj-1", decimal.NewFromInt(100))
	if !errors.Is(err, domain.ErrWalletNotFound) {
		t.Fatalf("expected ErrWalletNotFound, got %v", err)
	}
}
