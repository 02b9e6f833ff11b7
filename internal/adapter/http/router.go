package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/iho/fundflow/internal/adapter/http/handler"
	"github.com/iho/fundflow/internal/adapter/http/middleware"
	"github.com/iho/fundflow/internal/infrastructure/auth"
	"github.com/iho/fundflow/internal/infrastructure/metrics"
	"github.com/iho/fundflow/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	WalletHandler         *handler.WalletHandler
	FundingHandler        *handler.FundingHandler
	InvestmentHandler     *handler.InvestmentHandler
	ProjectHandler        *handler.ProjectHandler
	DistributionHandler   *handler.DistributionHandler
	ReconciliationHandler *handler.ReconciliationHandler
	HealthHandler         *handler.HealthHandler
	IdempotencyStore      usecase.IdempotencyStore
	JWTManager            *auth.JWTManager
	AuthEnabled           bool
	Metrics               *metrics.Metrics
	RateLimiter           *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(log.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.AuthEnabled && cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Wallets
		r.Route("/wallets", func(r chi.Router) {
			r.Get("/{userID}/balance", cfg.WalletHandler.GetBalance)
			r.Get("/{userID}/transactions", cfg.WalletHandler.ListTransactions)
		})

		// Transactions
		r.Get("/transactions/{id}", cfg.WalletHandler.GetTransaction)

		// Deposits
		r.Route("/deposits", func(r chi.Router) {
			r.Post("/", cfg.FundingHandler.SubmitDeposit)
			r.With(middleware.RequireApprover()).Post("/{id}/approve", cfg.FundingHandler.ApproveDeposit)
			r.With(middleware.RequireApprover()).Post("/{id}/reject", cfg.FundingHandler.RejectDeposit)
		})

		// Withdrawals
		r.Route("/withdrawals", func(r chi.Router) {
			r.Post("/", cfg.FundingHandler.SubmitWithdrawal)
			r.With(middleware.RequireApprover()).Post("/{id}/approve", cfg.FundingHandler.ApproveWithdrawal)
			r.With(middleware.RequireApprover()).Post("/{id}/reject", cfg.FundingHandler.RejectWithdrawal)
		})

		// Projects
		r.Route("/projects", func(r chi.Router) {
			r.With(middleware.RequireProjectCreator()).Post("/", cfg.ProjectHandler.Create)
			r.Get("/", cfg.ProjectHandler.List)
			r.Get("/{id}", cfg.ProjectHandler.Get)
			r.With(middleware.RequireApprover()).Post("/{id}/activate", cfg.ProjectHandler.Activate)
			r.Get("/{id}/profit", cfg.ProjectHandler.Profit)
			r.Get("/{id}/investments", cfg.InvestmentHandler.ListByProject)
			r.Get("/{id}/distributions", cfg.DistributionHandler.ListByProject)
		})

		// Investments
		r.Post("/investments", cfg.InvestmentHandler.Commit)
		r.Get("/investors/{investorID}/investments", cfg.InvestmentHandler.ListByInvestor)

		// Distributions
		r.With(middleware.RequireDistributor()).Post("/distributions", cfg.DistributionHandler.Process)

		// Reconciliation
		r.Route("/reconciliation", func(r chi.Router) {
			r.Get("/", cfg.ReconciliationHandler.Report)
			r.Get("/wallets/{userID}", cfg.ReconciliationHandler.Wallet)
		})
	})

	return r
}
