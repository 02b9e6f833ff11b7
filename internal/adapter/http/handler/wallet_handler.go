package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/fundflow/internal/adapter/http/dto"
	"github.com/iho/fundflow/internal/domain"
)

// WalletService defines the behavior needed by WalletHandler.
type WalletService interface {
	GetBalance(ctx context.Context, userID string) (decimal.Decimal, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]*domain.Transaction, error)
}

// WalletHandler handles wallet read requests.
type WalletHandler struct {
	ledgerUC WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(ledgerUC WalletService) *WalletHandler {
	return &WalletHandler{ledgerUC: ledgerUC}
}

// GetBalance returns a user's wallet balance.
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	balance, err := h.ledgerUC.GetBalance(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		UserID:  userID,
		Balance: balance,
	})
}

// ListTransactions returns a user's transaction history.
func (h *WalletHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	filter := domain.TransactionFilter{
		Limit:  parseIntQuery(r, "limit", 50),
		Offset: parseIntQuery(r, "offset", 0),
	}

	if t := r.URL.Query().Get("type"); t != "" {
		typ := domain.TransactionType(t)
		if !typ.IsValid() {
			writeError(w, http.StatusBadRequest, "invalid transaction type", t)
			return
		}
		filter.Type = &typ
	}

	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.TransactionStatus(s)
		filter.Status = &status
	}

	txns, err := h.ledgerUC.ListTransactions(r.Context(), userID, filter)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(txns),
		Total:        int64(len(txns)),
	})
}

// GetTransaction returns a single transaction by ID.
func (h *WalletHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	txn, err := h.ledgerUC.GetTransaction(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}
