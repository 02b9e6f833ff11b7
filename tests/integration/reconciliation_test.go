package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/fundflow/internal/adapter/http/dto"
	"github.com/iho/fundflow/internal/usecase"
	"github.com/iho/fundflow/tests/testutil"
)

func TestReconciliation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	router := newTestRouter(t, testDB)

	t.Run("clean ledger reconciles", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		userID := testutil.GenerateID()
		doJSON(t, router, http.MethodPost, "/api/v1/deposits/", dto.SubmitDepositRequest{
			UserID: userID,
			Amount: decimal.NewFromInt(100),
			Method: "card",
		})

		w := doJSON(t, router, http.MethodGet, "/api/v1/reconciliation/", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("report failed with status %d: %s", w.Code, w.Body.String())
		}

		var report usecase.ReconciliationReport
		if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
			t.Fatalf("failed to parse report: %v", err)
		}

		if !report.Consistent {
			t.Errorf("expected consistent report, got discrepancies: %+v", report.WalletDiscrepancies)
		}
		if report.WalletsChecked != 1 {
			t.Errorf("expected 1 wallet checked, got %d", report.WalletsChecked)
		}
	})

	t.Run("tampered balance is flagged", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		userID := testutil.GenerateID()
		doJSON(t, router, http.MethodPost, "/api/v1/deposits/", dto.SubmitDepositRequest{
			UserID: userID,
			Amount: decimal.NewFromInt(100),
			Method: "card",
		})

		// Drift the cached balance away from the ledger sum
		testDB.SetWalletBalance(ctx, userID, decimal.NewFromInt(120))

		w := doJSON(t, router, http.MethodGet, "/api/v1/reconciliation/wallets/"+userID, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("wallet reconciliation failed with status %d: %s", w.Code, w.Body.String())
		}

		var discrepancy usecase.WalletDiscrepancy
		if err := json.Unmarshal(w.Body.Bytes(), &discrepancy); err != nil {
			t.Fatalf("failed to parse discrepancy: %v", err)
		}

		if !discrepancy.Balance.Equal(decimal.NewFromInt(120)) {
			t.Errorf("expected cached balance 120, got %s", discrepancy.Balance)
		}
		if !discrepancy.LedgerBalance.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected ledger balance 100, got %s", discrepancy.LedgerBalance)
		}
		if !discrepancy.Difference.Equal(decimal.NewFromInt(20)) {
			t.Errorf("expected difference 20, got %s", discrepancy.Difference)
		}

		w = doJSON(t, router, http.MethodGet, "/api/v1/reconciliation/", nil)
		var report usecase.ReconciliationReport
		if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
			t.Fatalf("failed to parse report: %v", err)
		}
		if report.Consistent {
			t.Error("expected drift to fail the report")
		}
		if len(report.WalletDiscrepancies) != 1 {
			t.Errorf("expected 1 wallet discrepancy, got %d", len(report.WalletDiscrepancies))
		}
	})

	t.Run("pending transactions do not count", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		userID := testutil.GenerateID()
		doJSON(t, router, http.MethodPost, "/api/v1/deposits/", dto.SubmitDepositRequest{
			UserID: userID,
			Amount: decimal.NewFromInt(100),
			Method: "card",
		})
		// Pending bank deposit must not affect the ledger sum
		doJSON(t, router, http.MethodPost, "/api/v1/deposits/", dto.SubmitDepositRequest{
			UserID: userID,
			Amount: decimal.NewFromInt(999),
			Method: "bank",
		})

		w := doJSON(t, router, http.MethodGet, "/api/v1/reconciliation/wallets/"+userID, nil)
		var discrepancy usecase.WalletDiscrepancy
		if err := json.Unmarshal(w.Body.Bytes(), &discrepancy); err != nil {
			t.Fatalf("failed to parse discrepancy: %v", err)
		}

		if !discrepancy.Difference.IsZero() {
			t.Errorf("pending deposit leaked into the ledger sum: %+v", discrepancy)
		}
	})
}
