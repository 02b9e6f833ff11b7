package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/fundflow/internal/adapter/http/handler"
	apimiddleware "github.com/iho/fundflow/internal/adapter/http/middleware"
	"github.com/iho/fundflow/internal/domain"
	"github.com/iho/fundflow/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1, nil)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"user_id":"user-1","amount":"50.00","method":"card"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/deposits/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /api/v1/wallets/{userID}/balance",
		"GET /api/v1/wallets/{userID}/transactions",
		"POST /api/v1/deposits/",
		"POST /api/v1/deposits/{id}/approve",
		"POST /api/v1/withdrawals/",
		"POST /api/v1/withdrawals/{id}/reject",
		"POST /api/v1/projects/",
		"POST /api/v1/projects/{id}/activate",
		"GET /api/v1/projects/{id}/profit",
		"POST /api/v1/investments",
		"POST /api/v1/distributions",
		"GET /api/v1/reconciliation/",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	cfg := RouterConfig{
		WalletHandler:         handler.NewWalletHandler(&stubWalletService{}),
		FundingHandler:        handler.NewFundingHandler(&stubFundingService{}),
		InvestmentHandler:     handler.NewInvestmentHandler(&stubInvestmentService{}),
		ProjectHandler:        handler.NewProjectHandler(&stubProjectService{}, &stubProfitService{}),
		DistributionHandler:   handler.NewDistributionHandler(&stubDistributionService{}),
		ReconciliationHandler: handler.NewReconciliationHandler(&stubReconciliationService{}),
		HealthHandler:         &handler.HealthHandler{},
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubWalletService struct{}

func (stubWalletService) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (stubWalletService) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return &domain.Transaction{ID: id}, nil
}

func (stubWalletService) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	return []*domain.Transaction{}, nil
}

type stubFundingService struct{}

func (stubFundingService) SubmitDeposit(ctx context.Context, userID string, amount decimal.Decimal, method domain.FundingMethod) (*domain.Transaction, error) {
	return &domain.Transaction{ID: "txn"}, nil
}

func (stubFundingService) ApproveDeposit(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return &domain.Transaction{ID: transactionID}, nil
}

func (stubFundingService) RejectDeposit(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return &domain.Transaction{ID: transactionID}, nil
}

func (stubFundingService) SubmitWithdrawal(ctx context.Context, userID string, amount decimal.Decimal, method domain.FundingMethod) (*domain.Transaction, error) {
	return &domain.Transaction{ID: "txn"}, nil
}

func (stubFundingService) ApproveWithdrawal(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return &domain.Transaction{ID: transactionID}, nil
}

func (stubFundingService) RejectWithdrawal(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return &domain.Transaction{ID: transactionID}, nil
}

type stubInvestmentService struct{}

func (stubInvestmentService) Commit(ctx context.Context, investorID, projectID string, amount decimal.Decimal) (*domain.Investment, error) {
	return &domain.Investment{ID: "inv"}, nil
}

func (stubInvestmentService) ListByInvestor(ctx context.Context, investorID string, limit, offset int) ([]*domain.Investment, error) {
	return []*domain.Investment{}, nil
}

func (stubInvestmentService) ListByProject(ctx context.Context, projectID string) ([]*domain.Investment, error) {
	return []*domain.Investment{}, nil
}

type stubProjectService struct{}

func (stubProjectService) CreateProject(ctx context.Context, input usecase.CreateProjectInput) (*domain.Project, error) {
	return &domain.Project{ID: "proj"}, nil
}

func (stubProjectService) ActivateProject(ctx context.Context, projectID string) (*domain.Project, error) {
	return &domain.Project{ID: projectID}, nil
}

func (stubProjectService) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	return &domain.Project{ID: id}, nil
}

func (stubProjectService) ListProjects(ctx context.Context, limit, offset int) ([]*domain.Project, error) {
	return []*domain.Project{}, nil
}

type stubProfitService struct{}

func (stubProfitService) CalculateProjectProfit(ctx context.Context, projectID string, asOf time.Time) (*usecase.ProfitReport, error) {
	return &usecase.ProfitReport{ProjectID: projectID}, nil
}

type stubDistributionService struct{}

func (stubDistributionService) Process(ctx context.Context, projectID, period string) (*usecase.DistributionResult, error) {
	return &usecase.DistributionResult{ProjectID: projectID, Period: period}, nil
}

func (stubDistributionService) ListByProject(ctx context.Context, projectID string, limit, offset int) ([]*domain.Distribution, error) {
	return []*domain.Distribution{}, nil
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}

type stubReconciliationService struct{}

func (stubReconciliationService) ReconcileWallet(ctx context.Context, userID string) (*usecase.WalletDiscrepancy, error) {
	return &usecase.WalletDiscrepancy{UserID: userID}, nil
}

func (stubReconciliationService) Report(ctx context.Context) (*usecase.ReconciliationReport, error) {
	return &usecase.ReconciliationReport{}, nil
}
