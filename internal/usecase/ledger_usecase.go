package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fundflow/internal/domain"
	"github.com/iho/fundflow/internal/infrastructure/metrics"
)

// LedgerUseCase is the single write path for wallet balances. Every balance
// mutation in the system goes through Apply; callers never touch the wallet
// row directly.
type LedgerUseCase struct {
	txManager  TransactionManager
	walletRepo WalletRepository
	txnRepo    TransactionRepository
	outboxRepo OutboxRepository
	idGen      IDGenerator
	metrics    *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	walletRepo WalletRepository,
	txnRepo TransactionRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:  txManager,
		walletRepo: walletRepo,
		txnRepo:    txnRepo,
		outboxRepo: outboxRepo,
		idGen:      idGen,
		metrics:    metrics,
	}
}

// ApplyInput represents one ledger application.
type ApplyInput struct {
	UserID       string
	Type         domain.TransactionType
	Amount       decimal.Decimal
	Reference    string
	InvestmentID *string
	Description  string

	// Pending creates the transaction without any balance effect; it is
	// settled later through the funding workflow.
	Pending bool

	// Event, when set, is inserted into the outbox in the same database
	// transaction as the ledger entry.
	Event *domain.OutboxEvent
}

// Apply atomically inserts a transaction row and updates the wallet balance.
// The reference is an idempotency key: re-applying the same reference with
// the same arguments returns the existing transaction with replayed=true and
// has no further effect. The same reference with different arguments fails
// with ErrReferenceConflict.
func (uc *LedgerUseCase) Apply(ctx context.Context, input ApplyInput) (txn *domain.Transaction, replayed bool, err error) {
	if err := domain.ValidateUserID(input.UserID); err != nil {
		return nil, false, err
	}

	now := time.Now().UTC()

	status := domain.TransactionStatusCompleted
	if input.Pending {
		status = domain.TransactionStatusPending
	}

	record := &domain.Transaction{
		ID:           uc.idGen.Generate(),
		UserID:       input.UserID,
		Type:         input.Type,
		Amount:       input.Amount,
		Status:       status,
		Reference:    input.Reference,
		InvestmentID: input.InvestmentID,
		Description:  input.Description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := record.Validate(); err != nil {
		return nil, false, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	wallet, err := uc.ensureWallet(txCtx, tx, input.UserID, input.Type, now)
	if err != nil {
		return nil, false, err
	}

	if !input.Pending {
		newBalance, err := uc.applyBalance(wallet, record)
		if err != nil {
			return nil, false, err
		}

		if err := uc.walletRepo.UpdateBalance(txCtx, tx, wallet.UserID, newBalance, now); err != nil {
			return nil, false, err
		}
	}

	if err := uc.txnRepo.Create(txCtx, tx, record); err != nil {
		// A concurrent apply with the same reference won the insert; the
		// unique constraint on reference serializes replays.
		if errors.Is(err, domain.ErrReferenceConflict) {
			_ = tx.Rollback(txCtx)
			return uc.resolveReplay(ctx, record)
		}

		return nil, false, err
	}

	if input.Event != nil {
		if err := uc.outboxRepo.Create(txCtx, tx, input.Event); err != nil {
			return nil, false, err
		}
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, false, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsApplied.WithLabelValues(string(input.Type), string(status)).Inc()
	}

	return record, false, nil
}

// ensureWallet locks the wallet row, creating it on first deposit.
func (uc *LedgerUseCase) ensureWallet(ctx context.Context, tx Transaction, userID string, typ domain.TransactionType, now time.Time) (*domain.Wallet, error) {
	wallet, err := uc.walletRepo.GetByUserIDForUpdate(ctx, tx, userID)
	if err == nil {
		return wallet, nil
	}

	if !errors.Is(err, domain.ErrWalletNotFound) {
		return nil, err
	}

	// Only a deposit may open a wallet; debits against a missing wallet
	// are caller errors.
	if typ != domain.TransactionTypeDeposit {
		return nil, domain.ErrWalletNotFound
	}

	wallet = &domain.Wallet{
		UserID:    userID,
		Balance:   decimal.Zero,
		Version:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.walletRepo.CreateTx(ctx, tx, wallet); err != nil {
		return nil, err
	}

	return wallet, nil
}

// applyBalance computes the new balance, enforcing the non-negative invariant
// for debits inside the locked transaction.
func (uc *LedgerUseCase) applyBalance(wallet *domain.Wallet, record *domain.Transaction) (decimal.Decimal, error) {
	if record.Type.IsCredit() {
		return wallet.ApplyCredit(record.Amount), nil
	}

	if err := wallet.ValidateDebit(record.Amount); err != nil {
		return decimal.Zero, err
	}

	return wallet.ApplyDebit(record.Amount), nil
}

// resolveReplay fetches the transaction that won the reference and decides
// whether the apply is a benign replay or a conflicting reuse of the key.
func (uc *LedgerUseCase) resolveReplay(ctx context.Context, attempted *domain.Transaction) (*domain.Transaction, bool, error) {
	existing, err := uc.txnRepo.GetByReference(ctx, attempted.Reference)
	if err != nil {
		return nil, false, err
	}

	if existing.UserID != attempted.UserID ||
		existing.Type != attempted.Type ||
		!existing.Amount.Equal(attempted.Amount) {
		return nil, false, domain.ErrReferenceConflict
	}

	return existing, true, nil
}

// GetBalance returns the current wallet balance. Read-only.
func (uc *LedgerUseCase) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	wallet, err := uc.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	return wallet.Balance, nil
}

// GetTransaction retrieves a transaction by ID. Read-only.
func (uc *LedgerUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.txnRepo.GetByID(ctx, id)
}

// ListTransactions lists a user's transactions. Read-only.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	filter.Limit, filter.Offset, _ = domain.ValidatePagination(filter.Limit, filter.Offset)
	return uc.txnRepo.ListByUser(ctx, userID, filter)
}
