package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/fundflow/internal/adapter/http/dto"
	"github.com/iho/fundflow/internal/domain"
	"github.com/iho/fundflow/internal/usecase"
)

// ProjectService defines the behavior needed by ProjectHandler.
type ProjectService interface {
	CreateProject(ctx context.Context, input usecase.CreateProjectInput) (*domain.Project, error)
	ActivateProject(ctx context.Context, projectID string) (*domain.Project, error)
	GetProject(ctx context.Context, id string) (*domain.Project, error)
	ListProjects(ctx context.Context, limit, offset int) ([]*domain.Project, error)
}

// ProfitService defines the profit projection behavior needed by
// ProjectHandler.
type ProfitService interface {
	CalculateProjectProfit(ctx context.Context, projectID string, asOf time.Time) (*usecase.ProfitReport, error)
}

// ProjectHandler handles project lifecycle requests.
type ProjectHandler struct {
	projectUC ProjectService
	profitUC  ProfitService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectUC ProjectService, profitUC ProfitService) *ProjectHandler {
	return &ProjectHandler{
		projectUC: projectUC,
		profitUC:  profitUC,
	}
}

// Create raises a new project in PENDING state.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input := req.ToUseCaseInput()
	if input.PartnerID == "" {
		input.PartnerID = callerID(r, "")
	}

	project, err := h.projectUC.CreateProject(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create project", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ProjectFromDomain(project))
}

// Activate opens a PENDING project for investment.
func (h *ProjectHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing project ID", "")
		return
	}

	project, err := h.projectUC.ActivateProject(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to activate project", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ProjectFromDomain(project))
}

// Get retrieves a project by ID.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing project ID", "")
		return
	}

	project, err := h.projectUC.GetProject(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get project", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ProjectFromDomain(project))
}

// List lists projects.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	projects, err := h.projectUC.ListProjects(r.Context(), limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list projects", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ProjectsFromDomain(projects))
}

// Profit returns the profit projection for a project. An optional as_of
// query parameter (RFC 3339 date) overrides the default of now.
func (h *ProjectHandler) Profit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing project ID", "")
		return
	}

	asOf := time.Now().UTC()
	if v := r.URL.Query().Get("as_of"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid as_of date", v)
			return
		}
		asOf = parsed
	}

	report, err := h.profitUC.CalculateProjectProfit(r.Context(), id, asOf)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to calculate profit", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}
