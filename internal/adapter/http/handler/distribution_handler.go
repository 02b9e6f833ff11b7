package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/fundflow/internal/adapter/http/dto"
	"github.com/iho/fundflow/internal/domain"
	"github.com/iho/fundflow/internal/usecase"
)

// DistributionService defines the behavior needed by DistributionHandler.
type DistributionService interface {
	Process(ctx context.Context, projectID, period string) (*usecase.DistributionResult, error)
	ListByProject(ctx context.Context, projectID string, limit, offset int) ([]*domain.Distribution, error)
}

// DistributionHandler handles profit distribution requests.
type DistributionHandler struct {
	distributionUC DistributionService
}

// NewDistributionHandler creates a new DistributionHandler.
func NewDistributionHandler(distributionUC DistributionService) *DistributionHandler {
	return &DistributionHandler{distributionUC: distributionUC}
}

// Process runs a profit distribution for one project and period. Re-running
// a period is safe: already-credited investors are reported as replayed with
// nothing distributed twice.
func (h *DistributionHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req dto.ProcessDistributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.ProjectID == "" {
		writeError(w, http.StatusBadRequest, "missing project ID", "")
		return
	}

	result, err := h.distributionUC.Process(r.Context(), req.ProjectID, req.Period)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to process distribution", err.Error())
		return
	}

	status := http.StatusOK
	if len(result.Failures) > 0 {
		// Partial success: committed credits stand, failures are reported.
		status = http.StatusMultiStatus
	}

	writeJSON(w, status, dto.DistributionResultFromUseCase(result))
}

// ListByProject lists a project's recorded distributions.
func (h *DistributionHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "id")
	if projectID == "" {
		writeError(w, http.StatusBadRequest, "missing project ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	distributions, err := h.distributionUC.ListByProject(r.Context(), projectID, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list distributions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DistributionsFromDomain(distributions))
}
