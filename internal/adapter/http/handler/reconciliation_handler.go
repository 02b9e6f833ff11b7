package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/fundflow/internal/usecase"
)

// ReconciliationService defines the behavior needed by
// ReconciliationHandler.
type ReconciliationService interface {
	ReconcileWallet(ctx context.Context, userID string) (*usecase.WalletDiscrepancy, error)
	Report(ctx context.Context) (*usecase.ReconciliationReport, error)
}

// ReconciliationHandler exposes consistency checks for operators.
type ReconciliationHandler struct {
	reconciliationUC ReconciliationService
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(reconciliationUC ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{reconciliationUC: reconciliationUC}
}

// Report runs a full reconciliation across wallets and projects.
func (h *ReconciliationHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconciliationUC.Report(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to run reconciliation", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// Wallet reconciles a single wallet against the ledger.
func (h *ReconciliationHandler) Wallet(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	discrepancy, err := h.reconciliationUC.ReconcileWallet(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reconcile wallet", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, discrepancy)
}
