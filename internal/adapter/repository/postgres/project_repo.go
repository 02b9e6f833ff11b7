package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/fundflow/internal/domain"
	"github.com/iho/fundflow/internal/infrastructure/postgres/generated"
	"github.com/iho/fundflow/internal/usecase"
)

// ProjectRepository implements usecase.ProjectRepository.
type ProjectRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new project.
func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	_, err := r.queries.CreateProject(ctx, generated.CreateProjectParams{
		ID:             project.ID,
		PartnerID:      project.PartnerID,
		Name:           project.Name,
		FundingGoal:    decimalToNumeric(project.FundingGoal),
		CurrentFunding: decimalToNumeric(project.CurrentFunding),
		ExpectedReturn: decimalToNumeric(project.ExpectedReturn),
		Status:         string(project.Status),
		ActivatedAt:    timePtrToPgTimestamptz(project.ActivatedAt),
		CreatedAt:      timeToPgTimestamptz(project.CreatedAt),
		UpdatedAt:      timeToPgTimestamptz(project.UpdatedAt),
	})

	return err
}

// GetByID retrieves a project by ID.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row, err := r.queries.GetProjectByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}

		return nil, err
	}

	return rowToProject(row), nil
}

// GetByIDForUpdate retrieves a project by ID with a FOR UPDATE lock.
func (r *ProjectRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Project, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.GetProjectByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}

		return nil, err
	}

	return rowToProject(row), nil
}

// UpdateFunding updates the funding level of a project.
func (r *ProjectRepository) UpdateFunding(ctx context.Context, tx usecase.Transaction, id string, currentFunding decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateProjectFunding(ctx, generated.UpdateProjectFundingParams{
		ID:             id,
		CurrentFunding: decimalToNumeric(currentFunding),
		UpdatedAt:      timeToPgTimestamptz(updatedAt),
	})
}

// UpdateStatus updates the status of a project.
func (r *ProjectRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.ProjectStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateProjectStatus(ctx, generated.UpdateProjectStatusParams{
		ID:        id,
		Status:    string(status),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

// Activate marks a project ACTIVE and stamps the activation time profit
// accrual is measured from.
func (r *ProjectRepository) Activate(ctx context.Context, tx usecase.Transaction, id string, activatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.ActivateProject(ctx, generated.ActivateProjectParams{
		ID:          id,
		Status:      string(domain.ProjectStatusActive),
		ActivatedAt: timeToPgTimestamptz(activatedAt),
		UpdatedAt:   timeToPgTimestamptz(activatedAt),
	})
}

// List lists projects with pagination.
func (r *ProjectRepository) List(ctx context.Context, limit, offset int) ([]*domain.Project, error) {
	rows, err := r.queries.ListProjects(ctx, generated.ListProjectsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	projects := make([]*domain.Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, rowToProject(row))
	}

	return projects, nil
}

func rowToProject(row generated.Project) *domain.Project {
	return &domain.Project{
		ID:             row.ID,
		PartnerID:      row.PartnerID,
		Name:           row.Name,
		FundingGoal:    numericToDecimal(row.FundingGoal),
		CurrentFunding: numericToDecimal(row.CurrentFunding),
		ExpectedReturn: numericToDecimal(row.ExpectedReturn),
		Status:         domain.ProjectStatus(row.Status),
		ActivatedAt:    pgTimestamptzToTimePtr(row.ActivatedAt),
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}
