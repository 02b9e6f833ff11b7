package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fundflow/internal/domain"
)

// ReconciliationUseCase verifies the two global invariants of the engine:
// every wallet balance equals the signed sum of its COMPLETED transactions,
// and every project's current funding equals the sum of its investments.
type ReconciliationUseCase struct {
	walletRepo     WalletRepository
	txnRepo        TransactionRepository
	projectRepo    ProjectRepository
	investmentRepo InvestmentRepository
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(
	walletRepo WalletRepository,
	txnRepo TransactionRepository,
	projectRepo ProjectRepository,
	investmentRepo InvestmentRepository,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		walletRepo:     walletRepo,
		txnRepo:        txnRepo,
		projectRepo:    projectRepo,
		investmentRepo: investmentRepo,
	}
}

// WalletDiscrepancy reports a wallet whose cached balance drifted from the
// ledger.
type WalletDiscrepancy struct {
	UserID        string          `json:"user_id"`
	Balance       decimal.Decimal `json:"balance"`
	LedgerBalance decimal.Decimal `json:"ledger_balance"`
	Difference    decimal.Decimal `json:"difference"`
}

// ProjectDiscrepancy reports a project whose funding counter drifted from
// its investments.
type ProjectDiscrepancy struct {
	ProjectID      string          `json:"project_id"`
	CurrentFunding decimal.Decimal `json:"current_funding"`
	InvestedTotal  decimal.Decimal `json:"invested_total"`
	Difference     decimal.Decimal `json:"difference"`
}

// ReconciliationReport represents a full reconciliation report
type ReconciliationReport struct {
	WalletsChecked       int                  `json:"wallets_checked"`
	ProjectsChecked      int                  `json:"projects_checked"`
	WalletDiscrepancies  []WalletDiscrepancy  `json:"wallet_discrepancies"`
	ProjectDiscrepancies []ProjectDiscrepancy `json:"project_discrepancies"`
	Consistent           bool                 `json:"consistent"`
	CheckedAt            time.Time            `json:"checked_at"`
}

// ReconcileWallet checks one wallet against the ledger sum.
func (uc *ReconciliationUseCase) ReconcileWallet(ctx context.Context, userID string) (*WalletDiscrepancy, error) {
	wallet, err := uc.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ledgerBalance, err := uc.txnRepo.SumCompletedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if wallet.Balance.Equal(ledgerBalance) {
		return nil, nil
	}

	return &WalletDiscrepancy{
		UserID:        userID,
		Balance:       wallet.Balance,
		LedgerBalance: ledgerBalance,
		Difference:    wallet.Balance.Sub(ledgerBalance),
	}, nil
}

// Report checks every wallet and project and returns the discrepancies.
func (uc *ReconciliationUseCase) Report(ctx context.Context) (*ReconciliationReport, error) {
	limit, offset, _ := domain.ValidatePagination(10000, 0)

	report := &ReconciliationReport{CheckedAt: time.Now().UTC()}

	wallets, err := uc.walletRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	for _, wallet := range wallets {
		report.WalletsChecked++

		discrepancy, err := uc.ReconcileWallet(ctx, wallet.UserID)
		if err != nil {
			return nil, err
		}
		if discrepancy != nil {
			report.WalletDiscrepancies = append(report.WalletDiscrepancies, *discrepancy)
		}
	}

	projects, err := uc.projectRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	for _, project := range projects {
		report.ProjectsChecked++

		invested, err := uc.investmentRepo.SumByProject(ctx, project.ID)
		if err != nil {
			return nil, err
		}

		if !project.CurrentFunding.Equal(invested) {
			report.ProjectDiscrepancies = append(report.ProjectDiscrepancies, ProjectDiscrepancy{
				ProjectID:      project.ID,
				CurrentFunding: project.CurrentFunding,
				InvestedTotal:  invested,
				Difference:     project.CurrentFunding.Sub(invested),
			})
		}
	}

	report.Consistent = len(report.WalletDiscrepancies) == 0 && len(report.ProjectDiscrepancies) == 0

	return report, nil
}
