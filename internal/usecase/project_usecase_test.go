package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/fundflow/internal/domain"
	"github.com/iho/fundflow/internal/usecase"
	"github.com/iho/fundflow/internal/usecase/mocks"
)

func newProjectFixture() (*usecase.ProjectUseCase, *mocks.MockProjectRepository) {
	projectRepo := mocks.NewMockProjectRepository()
	uc := usecase.NewProjectUseCase(mocks.NewMockTransactionManager(), projectRepo, mocks.NewMockIDGenerator())
	return uc, projectRepo
}

func TestProjectUseCase_CreateProject(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateProjectInput
		expectError bool
		errorType   error
	}{
		{
			name: "valid project",
			input: usecase.CreateProjectInput{
				PartnerID:      "partner-1",
				Name:           "Solar Farm",
				FundingGoal:    decimal.NewFromInt(10000),
				ExpectedReturn: decimal.NewFromInt(12),
			},
		},
		{
			name: "missing name",
			input: usecase.CreateProjectInput{
				PartnerID:   "partner-1",
				FundingGoal: decimal.NewFromInt(10000),
			},
			expectError: true,
			errorType:   domain.ErrInvalidProjectName,
		},
		{
			name: "non-positive goal",
			input: usecase.CreateProjectInput{
				PartnerID: "partner-1",
				Name:      "Solar Farm",
			},
			expectError: true,
			errorType:   domain.ErrInvalidFundingGoal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newProjectFixture()

			project, err := uc.CreateProject(context.Background(), tt.input)

			if tt.expectError {
				if !errors.Is(err, tt.errorType) {
					t.Errorf("expected %v, got %v", tt.errorType, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if project.Status != domain.ProjectStatusPending {
				t.Errorf("new project must start PENDING, got %s", project.Status)
			}
			if !project.CurrentFunding.IsZero() {
				t.Errorf("new project must start unfunded, got %s", project.CurrentFunding)
			}
		})
	}
}

func TestProjectUseCase_ActivateProject(t *testing.T) {
	uc, projectRepo := newProjectFixture()
	projectRepo.Seed(&domain.Project{
		ID:          "proj-1",
		Name:        "Solar Farm",
		FundingGoal: decimal.NewFromInt(1000),
		Status:      domain.ProjectStatusPending,
	})

	project, err := uc.ActivateProject(context.Background(), "proj-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if project.Status != domain.ProjectStatusActive {
		t.Fatalf("expected ACTIVE, got %s", project.Status)
	}

	if project.ActivatedAt == nil {
		t.Fatal("expected ActivatedAt to be stamped")
	}

	stored, _ := projectRepo.GetByID(context.Background(), "proj-1")
	if stored.Status != domain.ProjectStatusActive {
		t.Fatalf("expected stored ACTIVE, got %s", stored.Status)
	}
	if stored.ActivatedAt == nil {
		t.Fatal("expected stored ActivatedAt to be stamped")
	}
}

func TestProjectUseCase_ActivateProject_NotPending(t *testing.T) {
	uc, projectRepo := newProjectFixture()
	projectRepo.Seed(&domain.Project{
		ID:          "proj-1",
		Name:        "Solar Farm",
		FundingGoal: decimal.NewFromInt(1000),
		Status:      domain.ProjectStatusActive,
	})

	_, err := uc.ActivateProject(context.Background(), "proj-1")
	if !errors.Is(err, domain.ErrProjectNotPending) {
		t.Fatalf("expected ErrProjectNotPending, got %v", err)
	}
}

func TestProjectUseCase_ActivateProject_NotFound(t *testing.T) {
	uc, _ := newProjectFixture()

	_, err := uc.ActivateProject(context.Background(), "missing")
	if !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}
