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

// InvestmentService defines the behavior needed by InvestmentHandler.
type InvestmentService interface {
	Commit(ctx context.Context, investorID, projectID string, amount decimal.Decimal) (*domain.Investment, error)
	ListByInvestor(ctx context.Context, investorID string, limit, offset int) ([]*domain.Investment, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Investment, error)
}

// InvestmentHandler handles investment commitment requests.
type InvestmentHandler struct {
	investmentUC InvestmentService
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(investmentUC InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{investmentUC: investmentUC}
}

// Commit moves wallet funds into a project atomically.
func (h *InvestmentHandler) Commit(w http.ResponseWriter, r *http.Request) {
	var req dto.CommitInvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	investorID := callerID(r, req.InvestorID)
	if investorID == "" {
		writeError(w, http.StatusBadRequest, "missing investor ID", "")
		return
	}

	if req.ProjectID == "" {
		writeError(w, http.StatusBadRequest, "missing project ID", "")
		return
	}

	investment, err := h.investmentUC.Commit(r.Context(), investorID, req.ProjectID, req.Amount)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to commit investment", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.InvestmentFromDomain(investment))
}

// ListByInvestor lists an investor's investments.
func (h *InvestmentHandler) ListByInvestor(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "investorID")
	if investorID == "" {
		writeError(w, http.StatusBadRequest, "missing investor ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	investments, err := h.investmentUC.ListByInvestor(r.Context(), investorID, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list investments", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.InvestmentsFromDomain(investments))
}

// ListByProject lists all investments in a project.
func (h *InvestmentHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "id")
	if projectID == "" {
		writeError(w, http.StatusBadRequest, "missing project ID", "")
		return
	}

	investments, err := h.investmentUC.ListByProject(r.Context(), projectID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list investments", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.InvestmentsFromDomain(investments))
}
