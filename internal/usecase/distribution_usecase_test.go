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

type distributionFixture struct {
	uc               *usecase.DistributionUseCase
	walletRepo       *mocks.MockWalletRepository
	txnRepo          *mocks.MockTransactionRepository
	projectRepo      *mocks.MockProjectRepository
	investmentRepo   *mocks.MockInvestmentRepository
	distributionRepo *mocks.MockDistributionRepository
}

func newDistributionFixture() *distributionFixture {
	walletRepo := mocks.NewMockWalletRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	projectRepo := mocks.NewMockProjectRepository()
	investmentRepo := mocks.NewMockInvestmentRepository()
	distributionRepo := mocks.NewMockDistributionRepository()
	outboxRepo := mocks.NewMockOutboxRepository()
	auditRepo := mocks.NewMockAuditRepository()
	txMgr := mocks.NewMockTransactionManager()
	idGen := mocks.NewMockIDGenerator()

	ledger := usecase.NewLedgerUseCase(txMgr, walletRepo, txnRepo, outboxRepo, idGen, nil)
	uc := usecase.NewDistributionUseCase(projectRepo, investmentRepo, distributionRepo, auditRepo, ledger, mocks.NewMockRetrier(), idGen, nil)

	return &distributionFixture{
		uc:               uc,
		walletRepo:       walletRepo,
		txnRepo:          txnRepo,
		projectRepo:      projectRepo,
		investmentRepo:   investmentRepo,
		distributionRepo: distributionRepo,
	}
}

// fundedProject seeds a FUNDED project with a 12% annual return: the monthly
// pool over 1000 currentFunding is 1000*12/100/12 = 10.
func (f *distributionFixture) fundedProject() {
	f.projectRepo.Seed(&domain.Project{
		ID:             "proj-1",
		PartnerID:      "partner-1",
		Name:           "Solar Farm",
		FundingGoal:    decimal.NewFromInt(1000),
		CurrentFunding: decimal.NewFromInt(1000),
		ExpectedReturn: decimal.NewFromInt(12),
		Status:         domain.ProjectStatusFunded,
	})
}

func TestDistributionUseCase_Process_ProportionalSplit(t *testing.T) {
	f := newDistributionFixture()
	f.fundedProject()
	f.investmentRepo.Seed(&domain.Investment{ID: "i1", InvestorID: "inv-a", ProjectID: "proj-1", Amount: decimal.NewFromInt(600)})
	f.investmentRepo.Seed(&domain.Investment{ID: "i2", InvestorID: "inv-b", ProjectID: "proj-1", Amount: decimal.NewFromInt(400)})
	f.walletRepo.Seed(&domain.Wallet{UserID: "inv-a", Balance: decimal.Zero})
	f.walletRepo.Seed(&domain.Wallet{UserID: "inv-b", Balance: decimal.Zero})

	result, err := f.uc.Process(context.Background(), "proj-1", "2026-08")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.InvestorPool.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected pool 10, got %s", result.InvestorPool)
	}
	if result.InvestorCount != 2 || len(result.Credits) != 2 {
		t.Fatalf("expected 2 credits, got %+v", result)
	}
	if !result.TotalDistributed.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected total 10, got %s", result.TotalDistributed)
	}

	// 600:400 split of the 10 pool.
	walletA, _ := f.walletRepo.GetByUserID(context.Background(), "inv-a")
	if !walletA.Balance.Equal(decimal.NewFromInt(6)) {
		t.Fatalf("expected inv-a credit 6, got %s", walletA.Balance)
	}
	walletB, _ := f.walletRepo.GetByUserID(context.Background(), "inv-b")
	if !walletB.Balance.Equal(decimal.NewFromInt(4)) {
		t.Fatalf("expected inv-b credit 4, got %s", walletB.Balance)
	}
}

func TestDistributionUseCase_Process_RerunDistributesNothing(t *testing.T) {
	f := newDistributionFixture()
	f.fundedProject()
	f.investmentRepo.Seed(&domain.Investment{ID: "i1", InvestorID: "inv-a", ProjectID: "proj-1", Amount: decimal.NewFromInt(600)})
	f.investmentRepo.Seed(&domain.Investment{ID: "i2", InvestorID: "inv-b", ProjectID: "proj-1", Amount: decimal.NewFromInt(400)})
	f.walletRepo.Seed(&domain.Wallet{UserID: "inv-a", Balance: decimal.Zero})
	f.walletRepo.Seed(&domain.Wallet{UserID: "inv-b", Balance: decimal.Zero})

	if _, err := f.uc.Process(context.Background(), "proj-1", "2026-08"); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	second, err := f.uc.Process(context.Background(), "proj-1", "2026-08")
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if !second.TotalDistributed.IsZero() || second.InvestorCount != 0 {
		t.Fatalf("re-run must distribute nothing, got %+v", second)
	}
	for _, credit := range second.Credits {
		if !credit.Replayed {
			t.Fatalf("all credits must be replays on re-run, got %+v", credit)
		}
	}

	// Balances unchanged from the first run.
	walletA, _ := f.walletRepo.GetByUserID(context.Background(), "inv-a")
	if !walletA.Balance.Equal(decimal.NewFromInt(6)) {
		t.Fatalf("expected inv-a balance 6, got %s", walletA.Balance)
	}
}

func TestDistributionUseCase_Process_PartialFailureResumes(t *testing.T) {
	f := newDistributionFixture()
	f.fundedProject()
	f.investmentRepo.Seed(&domain.Investment{ID: "i1", InvestorID: "inv-a", ProjectID: "proj-1", Amount: decimal.NewFromInt(600)})
	f.investmentRepo.Seed(&domain.Investment{ID: "i2", InvestorID: "inv-b", ProjectID: "proj-1", Amount: decimal.NewFromInt(400)})
	f.walletRepo.Seed(&domain.Wallet{UserID: "inv-a", Balance: decimal.Zero})
	f.walletRepo.Seed(&domain.Wallet{UserID: "inv-b", Balance: decimal.Zero})

	// Fail inv-b's credit on the first run.
	storeErr := errors.New("connection reset")
	f.walletRepo.GetByUserIDForUpdateFunc = func(ctx context.Context, tx usecase.Transaction, userID string) (*domain.Wallet, error) {
		if userID == "inv-b" {
			return nil, storeErr
		}
		return f.walletRepo.GetByUserID(ctx, userID)
	}

	first, err := f.uc.Process(context.Background(), "proj-1", "2026-08")
	if err != nil {
		t.Fatalf("run must not fail as a whole: %v", err)
	}
	if len(first.Credits) != 1 || len(first.Failures) != 1 {
		t.Fatalf("expected 1 credit and 1 failure, got %+v", first)
	}
	if first.Failures[0].InvestorID != "inv-b" {
		t.Fatalf("expected inv-b to fail, got %s", first.Failures[0].InvestorID)
	}

	// Second run re-attempts only the missing credit.
	f.walletRepo.GetByUserIDForUpdateFunc = nil

	second, err := f.uc.Process(context.Background(), "proj-1", "2026-08")
	if err != nil {
		t.Fatalf("resume run failed: %v", err)
	}
	if len(second.Failures) != 0 {
		t.Fatalf("expected no failures on resume, got %+v", second.Failures)
	}
	if second.InvestorCount != 1 || !second.TotalDistributed.Equal(decimal.NewFromInt(4)) {
		t.Fatalf("resume must credit only inv-b's 4, got %+v", second)
	}

	walletB, _ := f.walletRepo.GetByUserID(context.Background(), "inv-b")
	if !walletB.Balance.Equal(decimal.NewFromInt(4)) {
		t.Fatalf("expected inv-b balance 4, got %s", walletB.Balance)
	}
}

func TestDistributionUseCase_Process_AggregatesMultipleCommitments(t *testing.T) {
	f := newDistributionFixture()
	f.fundedProject()
	f.investmentRepo.Seed(&domain.Investment{ID: "i1", InvestorID: "inv-a", ProjectID: "proj-1", Amount: decimal.NewFromInt(300)})
	f.investmentRepo.Seed(&domain.Investment{ID: "i2", InvestorID: "inv-a", ProjectID: "proj-1", Amount: decimal.NewFromInt(300)})
	f.investmentRepo.Seed(&domain.Investment{ID: "i3", InvestorID: "inv-b", ProjectID: "proj-1", Amount: decimal.NewFromInt(400)})
	f.walletRepo.Seed(&domain.Wallet{UserID: "inv-a", Balance: decimal.Zero})
	f.walletRepo.Seed(&domain.Wallet{UserID: "inv-b", Balance: decimal.Zero})

	result, err := f.uc.Process(context.Background(), "proj-1", "2026-08")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// inv-a's two commitments count as one 600 share.
	if len(result.Credits) != 2 {
		t.Fatalf("expected 2 credits, got %d", len(result.Credits))
	}

	walletA, _ := f.walletRepo.GetByUserID(context.Background(), "inv-a")
	if !walletA.Balance.Equal(decimal.NewFromInt(6)) {
		t.Fatalf("expected inv-a credit 6, got %s", walletA.Balance)
	}
}

func TestDistributionUseCase_Process_ZeroPool(t *testing.T) {
	f := newDistributionFixture()
	f.projectRepo.Seed(&domain.Project{
		ID:             "proj-1",
		Name:           "Flat Project",
		FundingGoal:    decimal.NewFromInt(1000),
		CurrentFunding: decimal.NewFromInt(1000),
		ExpectedReturn: decimal.Zero,
		Status:         domain.ProjectStatusFunded,
	})
	f.investmentRepo.Seed(&domain.Investment{ID: "i1", InvestorID: "inv-a", ProjectID: "proj-1", Amount: decimal.NewFromInt(1000)})

	result, err := f.uc.Process(context.Background(), "proj-1", "2026-08")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.InvestorPool.IsZero() || len(result.Credits) != 0 {
		t.Fatalf("zero-rate project must distribute nothing, got %+v", result)
	}
}

func TestDistributionUseCase_Process_NothingInvested(t *testing.T) {
	f := newDistributionFixture()
	f.fundedProject()

	_, err := f.uc.Process(context.Background(), "proj-1", "2026-08")
	if !errors.Is(err, domain.ErrNothingInvested) {
		t.Fatalf("expected ErrNothingInvested, got %v", err)
	}
}

func TestDistributionUseCase_Process_InvalidPeriod(t *testing.T) {
	f := newDistributionFixture()

	for _, period := range []string{"", "2026", "2026-13", "08-2026", "2026/08"} {
		if _, err := f.uc.Process(context.Background(), "proj-1", period); !errors.Is(err, domain.ErrInvalidPeriod) {
			t.Errorf("Process(%q) = %v, want ErrInvalidPeriod", period, err)
		}
	}
}

func TestDistributionUseCase_Process_ReplayedRunKeepsRecordedPool(t *testing.T) {
	f := newDistributionFixture()
	f.fundedProject()
	f.investmentRepo.Seed(&domain.Investment{ID: "i1", InvestorID: "inv-a", ProjectID: "proj-1", Amount: decimal.NewFromInt(600)})
	f.investmentRepo.Seed(&domain.Investment{ID: "i2", InvestorID: "inv-b", ProjectID: "proj-1", Amount: decimal.NewFromInt(400)})
	f.walletRepo.Seed(&domain.Wallet{UserID: "inv-a", Balance: decimal.Zero})
	f.walletRepo.Seed(&domain.Wallet{UserID: "inv-b", Balance: decimal.Zero})

	if _, err := f.uc.Process(context.Background(), "proj-1", "2026-08"); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	// The project's funding grows between runs; the recorded pool and
	// funding base win, so every investor replays at the original amount.
	project, _ := f.projectRepo.GetByID(context.Background(), "proj-1")
	project.CurrentFunding = decimal.NewFromInt(2000)

	second, err := f.uc.Process(context.Background(), "proj-1", "2026-08")
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if !second.InvestorPool.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("replayed run must reuse the recorded pool 10, got %s", second.InvestorPool)
	}
	if len(second.Failures) != 0 {
		t.Fatalf("replayed run must report no failures, got %+v", second.Failures)
	}
	if len(second.Credits) != 2 {
		t.Fatalf("expected 2 replayed credits, got %d", len(second.Credits))
	}
	for _, credit := range second.Credits {
		if !credit.Replayed {
			t.Fatalf("all credits must be replays, got %+v", credit)
		}
	}
	if !second.TotalDistributed.IsZero() || second.InvestorCount != 0 {
		t.Fatalf("replayed run must distribute nothing, got %+v", second)
	}

	walletA, _ := f.walletRepo.GetByUserID(context.Background(), "inv-a")
	if !walletA.Balance.Equal(decimal.NewFromInt(6)) {
		t.Fatalf("expected inv-a balance unchanged at 6, got %s", walletA.Balance)
	}
}
