package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	TransactionsApplied *prometheus.CounterVec
	LedgerErrors        *prometheus.CounterVec

	// Funding workflow metrics
	DepositsSubmitted    *prometheus.CounterVec
	DepositsApproved     prometheus.Counter
	DepositsRejected     prometheus.Counter
	WithdrawalsSubmitted *prometheus.CounterVec
	WithdrawalsApproved  prometheus.Counter
	WithdrawalsFailed    prometheus.Counter

	// Investment metrics
	InvestmentsCommitted prometheus.Counter
	InvestmentAmount     prometheus.Histogram

	// Distribution metrics
	DistributionsProcessed prometheus.Counter
	DistributionCredits    prometheus.Counter
	DistributionAmount     prometheus.Histogram

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		TransactionsApplied: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundflow_transactions_applied_total",
				Help: "Total ledger transactions applied by type and status",
			},
			[]string{"type", "status"},
		),
		LedgerErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundflow_ledger_errors_total",
				Help: "Total ledger apply errors by type",
			},
			[]string{"error_type"},
		),

		DepositsSubmitted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundflow_deposits_submitted_total",
				Help: "Total deposit requests submitted by method",
			},
			[]string{"method"},
		),
		DepositsApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundflow_deposits_approved_total",
			Help: "Total deposits approved and settled",
		}),
		DepositsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundflow_deposits_rejected_total",
			Help: "Total deposits rejected",
		}),
		WithdrawalsSubmitted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundflow_withdrawals_submitted_total",
				Help: "Total withdrawal requests submitted by method",
			},
			[]string{"method"},
		),
		WithdrawalsApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundflow_withdrawals_approved_total",
			Help: "Total withdrawals approved and settled",
		}),
		WithdrawalsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundflow_withdrawals_failed_total",
			Help: "Total withdrawals failed at settlement for insufficient funds",
		}),

		InvestmentsCommitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundflow_investments_committed_total",
			Help: "Total investment commitments accepted",
		}),
		InvestmentAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fundflow_investment_amount",
			Help:    "Committed investment amounts",
			Buckets: []float64{10, 100, 1000, 10000, 100000, 1000000},
		}),

		DistributionsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundflow_distributions_processed_total",
			Help: "Total distribution runs processed",
		}),
		DistributionCredits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundflow_distribution_credits_total",
			Help: "Total investor credits applied by distributions",
		}),
		DistributionAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fundflow_distribution_amount",
			Help:    "Total amount distributed per run",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundflow_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fundflow_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundflow_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fundflow_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "fundflow_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundflow_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundflow_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundflow_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundflow_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),

		AuditLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundflow_audit_logs_total",
				Help: "Total audit logs created",
			},
			[]string{"action", "status"},
		),
	}
}
