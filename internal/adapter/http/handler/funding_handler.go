package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/fundflow/internal/adapter/http/dto"
	"github.com/iho/fundflow/internal/domain"
)

// FundingService defines the behavior needed by FundingHandler.
type FundingService interface {
	SubmitDeposit(ctx context.Context, userID string, amount decimal.Decimal, method domain.FundingMethod) (*domain.Transaction, error)
	ApproveDeposit(ctx context.Context, transactionID string) (*domain.Transaction, error)
	RejectDeposit(ctx context.Context, transactionID string) (*domain.Transaction, error)
	SubmitWithdrawal(ctx context.Context, userID string, amount decimal.Decimal, method domain.FundingMethod) (*domain.Transaction, error)
	ApproveWithdrawal(ctx context.Context, transactionID string) (*domain.Transaction, error)
	RejectWithdrawal(ctx context.Context, transactionID string) (*domain.Transaction, error)
}

// FundingHandler handles deposit and withdrawal requests.
type FundingHandler struct {
	fundingUC FundingService
}

// NewFundingHandler creates a new FundingHandler.
func NewFundingHandler(fundingUC FundingService) *FundingHandler {
	return &FundingHandler{fundingUC: fundingUC}
}

// SubmitDeposit submits a deposit. Card deposits settle immediately;
// bank and cash deposits stay PENDING until approved.
func (h *FundingHandler) SubmitDeposit(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	userID := callerID(r, req.UserID)
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	txn, err := h.fundingUC.SubmitDeposit(r.Context(), userID, req.Amount, domain.FundingMethod(req.Method))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to submit deposit", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// ApproveDeposit settles a pending deposit.
func (h *FundingHandler) ApproveDeposit(w http.ResponseWriter, r *http.Request) {
	h.settle(w, r, h.fundingUC.ApproveDeposit, "failed to approve deposit")
}

// RejectDeposit rejects a pending deposit.
func (h *FundingHandler) RejectDeposit(w http.ResponseWriter, r *http.Request) {
	h.settle(w, r, h.fundingUC.RejectDeposit, "failed to reject deposit")
}

// SubmitWithdrawal submits a withdrawal request. Funds are checked but not
// reserved; the final balance check happens at approval.
func (h *FundingHandler) SubmitWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitWithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	userID := callerID(r, req.UserID)
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	txn, err := h.fundingUC.SubmitWithdrawal(r.Context(), userID, req.Amount, domain.FundingMethod(req.Method))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to submit withdrawal", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// ApproveWithdrawal settles a pending withdrawal.
func (h *FundingHandler) ApproveWithdrawal(w http.ResponseWriter, r *http.Request) {
	h.settle(w, r, h.fundingUC.ApproveWithdrawal, "failed to approve withdrawal")
}

// RejectWithdrawal rejects a pending withdrawal.
func (h *FundingHandler) RejectWithdrawal(w http.ResponseWriter, r *http.Request) {
	h.settle(w, r, h.fundingUC.RejectWithdrawal, "failed to reject withdrawal")
}

func (h *FundingHandler) settle(w http.ResponseWriter, r *http.Request, fn func(context.Context, string) (*domain.Transaction, error), msg string) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	txn, err := fn(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), msg, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}
