package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fundflow/internal/domain"
)

// ProfitReport is a read-only projection of a project's accrual state.
type ProfitReport struct {
	ProjectID         string          `json:"project_id"`
	AsOf              time.Time       `json:"as_of"`
	FundingProgress   decimal.Decimal `json:"funding_progress"`
	DailyProfit       decimal.Decimal `json:"daily_profit"`
	CumulativeProfit  decimal.Decimal `json:"cumulative_profit"`
	DaysActive        int64           `json:"days_active"`
	ExpectedReturnPct decimal.Decimal `json:"expected_return_pct"`
}

// ProfitUseCase computes accrued profit for a project. Pure projection of
// project state: no side effects, no persistence. Results are cached briefly
// since staleness only affects display.
type ProfitUseCase struct {
	projectRepo ProjectRepository
	cache       Cache
}

// NewProfitUseCase creates a new ProfitUseCase.
func NewProfitUseCase(projectRepo ProjectRepository, cache Cache) *ProfitUseCase {
	return &ProfitUseCase{
		projectRepo: projectRepo,
		cache:       cache,
	}
}

// CalculateProjectProfit returns the profit projection for a project as of
// the given time.
func (uc *ProfitUseCase) CalculateProjectProfit(ctx context.Context, projectID string, asOf time.Time) (*ProfitReport, error) {
	cacheKey := "profit:" + projectID + ":" + asOf.UTC().Format("2006-01-02")

	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, cacheKey); err == nil && cached != nil {
			var report ProfitReport
			if err := json.Unmarshal(cached, &report); err == nil {
				return &report, nil
			}
		}
	}

	project, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	report := ComputeProfit(project, asOf)

	if uc.cache != nil {
		if data, err := json.Marshal(report); err == nil {
			_ = uc.cache.Set(ctx, cacheKey, data, ProfitCacheTTL)
		}
	}

	return report, nil
}

// ComputeProfit is the pure profit function:
//
//	progress    = currentFunding / fundingGoal   (0 when the goal is 0)
//	dailyReturn = expectedReturn/100 / 365
//	dailyProfit = currentFunding * dailyReturn * progress
//
// Cumulative profit accrues dailyProfit for each whole day since the
// project was activated; the PENDING window before activation earns
// nothing. A zero funding goal yields zero progress rather than a division
// by zero, and a non-positive return rate yields zero profit, not an error.
func ComputeProfit(project *domain.Project, asOf time.Time) *ProfitReport {
	progress := project.FundingProgress()

	report := &ProfitReport{
		ProjectID:         project.ID,
		AsOf:              asOf.UTC(),
		FundingProgress:   progress,
		DailyProfit:       decimal.Zero,
		CumulativeProfit:  decimal.Zero,
		ExpectedReturnPct: project.ExpectedReturn,
	}

	days := int64(asOf.UTC().Sub(project.AccrualStart().UTC()).Hours() / 24)
	if days < 0 {
		days = 0
	}
	report.DaysActive = days

	if project.ExpectedReturn.LessThanOrEqual(decimal.Zero) {
		return report
	}

	dailyReturn := project.ExpectedReturn.
		Div(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(DaysPerYear))

	report.DailyProfit = project.CurrentFunding.Mul(dailyReturn).Mul(progress)
	report.CumulativeProfit = report.DailyProfit.Mul(decimal.NewFromInt(days))

	return report
}

// MonthlyPool returns the profit pool for one monthly distribution period:
// currentFunding * rate/100 / 12. Non-positive rates yield a zero pool.
func MonthlyPool(project *domain.Project) decimal.Decimal {
	if project.ExpectedReturn.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	return project.CurrentFunding.
		Mul(project.ExpectedReturn).
		Div(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(MonthsPerYear))
}
