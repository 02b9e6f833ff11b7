package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/fundflow/internal/domain"
	"github.com/iho/fundflow/internal/usecase"
	"github.com/iho/fundflow/internal/usecase/mocks"
)

type reconciliationFixture struct {
	uc             *usecase.ReconciliationUseCase
	walletRepo     *mocks.MockWalletRepository
	txnRepo        *mocks.MockTransactionRepository
	projectRepo    *mocks.MockProjectRepository
	investmentRepo *mocks.MockInvestmentRepository
}

func newReconciliationFixture() *reconciliationFixture {
	walletRepo := mocks.NewMockWalletRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	projectRepo := mocks.NewMockProjectRepository()
	investmentRepo := mocks.NewMockInvestmentRepository()

	return &reconciliationFixture{
		uc:             usecase.NewReconciliationUseCase(walletRepo, txnRepo, projectRepo, investmentRepo),
		walletRepo:     walletRepo,
		txnRepo:        txnRepo,
		projectRepo:    projectRepo,
		investmentRepo: investmentRepo,
	}
}

func TestReconciliationUseCase_ReconcileWallet_Consistent(t *testing.T) {
	f := newReconciliationFixture()
	f.walletRepo.Seed(&domain.Wallet{UserID: "user-1", Balance: decimal.NewFromInt(70)})
	f.txnRepo.Seed(&domain.Transaction{
		ID: "t1", UserID: "user-1", Type: domain.TransactionTypeDeposit,
		Amount: decimal.NewFromInt(100), Status: domain.TransactionStatusCompleted, Reference: "r1",
	})
	f.txnRepo.Seed(&domain.Transaction{
		ID: "t2", UserID: "user-1", Type: domain.TransactionTypeWithdrawal,
		Amount: decimal.NewFromInt(30), Status: domain.TransactionStatusCompleted, Reference: "r2",
	})
	// Pending rows have no balance effect and must not count.
	f.txnRepo.Seed(&domain.Transaction{
		ID: "t3", UserID: "user-1", Type: domain.TransactionTypeWithdrawal,
		Amount: decimal.NewFromInt(500), Status: domain.TransactionStatusPending, Reference: "r3",
	})

	discrepancy, err := f.uc.ReconcileWallet(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if discrepancy != nil {
		t.Fatalf("expected consistent wallet, got %+v", discrepancy)
	}
}

func TestReconciliationUseCase_ReconcileWallet_Drifted(t *testing.T) {
	f := newReconciliationFixture()
	f.walletRepo.Seed(&domain.Wallet{UserID: "user-1", Balance: decimal.NewFromInt(120)})
	f.txnRepo.Seed(&domain.Transaction{
		ID: "t1", UserID: "user-1", Type: domain.TransactionTypeDeposit,
		Amount: decimal.NewFromInt(100), Status: domain.TransactionStatusCompleted, Reference: "r1",
	})

	discrepancy, err := f.uc.ReconcileWallet(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if discrepancy == nil {
		t.Fatal("expected a discrepancy")
	}
	if !discrepancy.Difference.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected difference 20, got %s", discrepancy.Difference)
	}
}

func TestReconciliationUseCase_Report(t *testing.T) {
	f := newReconciliationFixture()

	// Consistent wallet.
	f.walletRepo.Seed(&domain.Wallet{UserID: "user-1", Balance: decimal.NewFromInt(100)})
	f.txnRepo.Seed(&domain.Transaction{
		ID: "t1", UserID: "user-1", Type: domain.TransactionTypeDeposit,
		Amount: decimal.NewFromInt(100), Status: domain.TransactionStatusCompleted, Reference: "r1",
	})

	// Drifted wallet.
	f.walletRepo.Seed(&domain.Wallet{UserID: "user-2", Balance: decimal.NewFromInt(5)})

	// Consistent project.
	f.projectRepo.Seed(&domain.Project{
		ID: "proj-1", Name: "A", FundingGoal: decimal.NewFromInt(1000),
		CurrentFunding: decimal.NewFromInt(300), Status: domain.ProjectStatusActive,
	})
	f.investmentRepo.Seed(&domain.Investment{ID: "i1", InvestorID: "user-1", ProjectID: "proj-1", Amount: decimal.NewFromInt(300)})

	// Drifted project.
	f.projectRepo.Seed(&domain.Project{
		ID: "proj-2", Name: "B", FundingGoal: decimal.NewFromInt(1000),
		CurrentFunding: decimal.NewFromInt(500), Status: domain.ProjectStatusActive,
	})

	report, err := f.uc.Report(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.WalletsChecked != 2 || report.ProjectsChecked != 2 {
		t.Fatalf("unexpected counts: %+v", report)
	}
	if report.Consistent {
		t.Fatal("expected inconsistent report")
	}
	if len(report.WalletDiscrepancies) != 1 || report.WalletDiscrepancies[0].UserID != "user-2" {
		t.Fatalf("unexpected wallet discrepancies: %+v", report.WalletDiscrepancies)
	}
	if len(report.ProjectDiscrepancies) != 1 || report.ProjectDiscrepancies[0].ProjectID != "proj-2" {
		t.Fatalf("unexpected project discrepancies: %+v", report.ProjectDiscrepancies)
	}
}

func TestReconciliationUseCase_Report_Empty(t *testing.T) {
	f := newReconciliationFixture()

	report, err := f.uc.Report(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Consistent {
		t.Fatal("empty system must be consistent")
	}
}
