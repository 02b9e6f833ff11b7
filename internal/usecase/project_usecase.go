package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fundflow/internal/domain"
)

// ProjectUseCase handles project lifecycle outside of money movement.
// Funding mutation happens only through InvestmentUseCase.
type ProjectUseCase struct {
	txManager   TransactionManager
	projectRepo ProjectRepository
	idGen       IDGenerator
}

// NewProjectUseCase creates a new ProjectUseCase.
func NewProjectUseCase(txManager TransactionManager, projectRepo ProjectRepository, idGen IDGenerator) *ProjectUseCase {
	return &ProjectUseCase{
		txManager:   txManager,
		projectRepo: projectRepo,
		idGen:       idGen,
	}
}

// CreateProjectInput represents input for raising a project.
type CreateProjectInput struct {
	PartnerID      string
	Name           string
	FundingGoal    decimal.Decimal
	ExpectedReturn decimal.Decimal
}

// CreateProject raises a new project in PENDING state.
func (uc *ProjectUseCase) CreateProject(ctx context.Context, input CreateProjectInput) (*domain.Project, error) {
	now := time.Now().UTC()

	project := &domain.Project{
		ID:             uc.idGen.Generate(),
		PartnerID:      input.PartnerID,
		Name:           input.Name,
		FundingGoal:    input.FundingGoal,
		CurrentFunding: decimal.Zero,
		ExpectedReturn: input.ExpectedReturn,
		Status:         domain.ProjectStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := project.Validate(); err != nil {
		return nil, err
	}

	if err := uc.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

// ActivateProject opens a PENDING project for investment.
func (uc *ProjectUseCase) ActivateProject(ctx context.Context, projectID string) (*domain.Project, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	project, err := uc.projectRepo.GetByIDForUpdate(txCtx, tx, projectID)
	if err != nil {
		return nil, err
	}

	if project.Status != domain.ProjectStatusPending {
		return nil, domain.ErrProjectNotPending
	}

	now := time.Now().UTC()
	if err := uc.projectRepo.Activate(txCtx, tx, projectID, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	project.Status = domain.ProjectStatusActive
	project.ActivatedAt = &now
	project.UpdatedAt = now

	return project, nil
}

// GetProject retrieves a project by ID.
func (uc *ProjectUseCase) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	return uc.projectRepo.GetByID(ctx, id)
}

// ListProjects lists projects with pagination.
func (uc *ProjectUseCase) ListProjects(ctx context.Context, limit, offset int) ([]*domain.Project, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return uc.projectRepo.List(ctx, limit, offset)
}
