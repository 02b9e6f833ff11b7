package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/fundflow/internal/domain"
	"github.com/iho/fundflow/internal/infrastructure/postgres/generated"
	"github.com/iho/fundflow/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new ledger transaction within a transaction.
// A duplicate reference maps to domain.ErrReferenceConflict so callers
// can resolve the replay.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreateTransaction(ctx, generated.CreateTransactionParams{
		ID:           txn.ID,
		UserID:       txn.UserID,
		Type:         string(txn.Type),
		Amount:       decimalToNumeric(txn.Amount),
		Status:       string(txn.Status),
		Reference:    txn.Reference,
		InvestmentID: textToPgText(txn.InvestmentID),
		Description:  txn.Description,
		CreatedAt:    timeToPgTimestamptz(txn.CreatedAt),
		UpdatedAt:    timeToPgTimestamptz(txn.UpdatedAt),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrReferenceConflict
		}

		return err
	}

	return nil
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row, err := r.queries.GetTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return rowToTransaction(row), nil
}

// GetByIDForUpdate retrieves a transaction by ID with a FOR UPDATE lock.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.GetTransactionByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return rowToTransaction(row), nil
}

// GetByReference retrieves a transaction by its idempotency reference.
func (r *TransactionRepository) GetByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	row, err := r.queries.GetTransactionByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return rowToTransaction(row), nil
}

// UpdateStatus updates the status of a transaction.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateTransactionStatus(ctx, generated.UpdateTransactionStatusParams{
		ID:        id,
		Status:    string(status),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

// ListByUser lists a user's transactions with optional type/status filters.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	var typeFilter, statusFilter string
	if filter.Type != nil {
		typeFilter = string(*filter.Type)
	}
	if filter.Status != nil {
		statusFilter = string(*filter.Status)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.queries.ListTransactionsByUser(ctx, generated.ListTransactionsByUserParams{
		UserID:  userID,
		Column2: typeFilter,
		Column3: statusFilter,
		Limit:   int32(limit),
		Offset:  int32(filter.Offset),
	})
	if err != nil {
		return nil, err
	}

	txns := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		txns = append(txns, rowToTransaction(row))
	}

	return txns, nil
}

// SumCompletedByUser returns the signed sum of a user's COMPLETED
// transactions. Used for reconciliation against the wallet balance.
func (r *TransactionRepository) SumCompletedByUser(ctx context.Context, userID string) (decimal.Decimal, error) {
	sum, err := r.queries.SumCompletedTransactionsByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

func rowToTransaction(row generated.Transaction) *domain.Transaction {
	var investmentID *string
	if row.InvestmentID.Valid {
		v := row.InvestmentID.String
		investmentID = &v
	}

	return &domain.Transaction{
		ID:           row.ID,
		UserID:       row.UserID,
		Type:         domain.TransactionType(row.Type),
		Amount:       numericToDecimal(row.Amount),
		Status:       domain.TransactionStatus(row.Status),
		Reference:    row.Reference,
		InvestmentID: investmentID,
		Description:  row.Description,
		CreatedAt:    row.CreatedAt.Time,
		UpdatedAt:    row.UpdatedAt.Time,
	}
}

func textToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}

	return pgtype.Text{String: *s, Valid: true}
}
