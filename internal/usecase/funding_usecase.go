package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fundflow/internal/domain"
	"github.com/iho/fundflow/internal/infrastructure/metrics"
)

// FundingUseCase drives the deposit/withdrawal state machine. Submissions go
// through the ledger apply path; approvals settle a PENDING transaction and
// mutate the balance in one database transaction guarded by the status check,
// so concurrent approvals cannot double-settle.
type FundingUseCase struct {
	txManager  TransactionManager
	walletRepo WalletRepository
	txnRepo    TransactionRepository
	outboxRepo OutboxRepository
	auditRepo  AuditRepository
	ledger     *LedgerUseCase
	idGen      IDGenerator
	metrics    *metrics.Metrics
}

// NewFundingUseCase creates a new FundingUseCase.
func NewFundingUseCase(
	txManager TransactionManager,
	walletRepo WalletRepository,
	txnRepo TransactionRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	ledger *LedgerUseCase,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *FundingUseCase {
	return &FundingUseCase{
		txManager:  txManager,
		walletRepo: walletRepo,
		txnRepo:    txnRepo,
		outboxRepo: outboxRepo,
		auditRepo:  auditRepo,
		ledger:     ledger,
		idGen:      idGen,
		metrics:    metrics,
	}
}

// SubmitDeposit creates a deposit request. Instant methods (card) settle
// synchronously; manual methods (bank, cash) stay PENDING until staff
// approval and have no balance effect yet.
func (uc *FundingUseCase) SubmitDeposit(ctx context.Context, userID string, amount decimal.Decimal, method domain.FundingMethod) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	if !method.IsValid() {
		return nil, domain.ErrInvalidMethod
	}

	reference := "dep:" + uc.idGen.Generate()

	input := ApplyInput{
		UserID:      userID,
		Type:        domain.TransactionTypeDeposit,
		Amount:      amount,
		Reference:   reference,
		Description: fmt.Sprintf("deposit via %s", method),
		Pending:     !method.IsInstant(),
	}

	if method.IsInstant() {
		input.Event = uc.settlementEvent(domain.EventTypeDepositSettled, userID, amount, reference)
	}

	txn, _, err := uc.ledger.Apply(ctx, input)
	if err != nil {
		return nil, err
	}

	uc.audit(ctx, domain.AuditActionDepositSubmit, txn)

	if uc.metrics != nil {
		uc.metrics.DepositsSubmitted.WithLabelValues(string(method)).Inc()
	}

	return txn, nil
}

// ApproveDeposit settles a PENDING deposit: the status flip and the wallet
// credit commit together. Only one of N concurrent approvals wins; the rest
// see a terminal status and get ErrAlreadyProcessed.
func (uc *FundingUseCase) ApproveDeposit(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := uc.settle(ctx, transactionID, domain.TransactionTypeDeposit, domain.TransactionStatusCompleted)
	if err != nil {
		return nil, err
	}

	uc.audit(ctx, domain.AuditActionDepositApprove, txn)

	if uc.metrics != nil {
		uc.metrics.DepositsApproved.Inc()
	}

	return txn, nil
}

// RejectDeposit moves a PENDING deposit to REJECTED with no balance effect.
func (uc *FundingUseCase) RejectDeposit(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := uc.settle(ctx, transactionID, domain.TransactionTypeDeposit, domain.TransactionStatusRejected)
	if err != nil {
		return nil, err
	}

	uc.audit(ctx, domain.AuditActionDepositReject, txn)

	return txn, nil
}

// SubmitWithdrawal creates a PENDING withdrawal. The balance check here is
// advisory only; the balance can change before approval, so the binding
// insufficient-funds check happens at settlement.
func (uc *FundingUseCase) SubmitWithdrawal(ctx context.Context, userID string, amount decimal.Decimal, method domain.FundingMethod) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	if !method.IsValid() {
		return nil, domain.ErrInvalidMethod
	}

	wallet, err := uc.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if wallet.Balance.LessThan(amount) {
		return nil, domain.ErrInsufficientFunds
	}

	txn, _, err := uc.ledger.Apply(ctx, ApplyInput{
		UserID:      userID,
		Type:        domain.TransactionTypeWithdrawal,
		Amount:      amount,
		Reference:   "wd:" + uc.idGen.Generate(),
		Description: fmt.Sprintf("withdrawal via %s", method),
		Pending:     true,
	})
	if err != nil {
		return nil, err
	}

	uc.audit(ctx, domain.AuditActionWithdrawalSubmit, txn)

	if uc.metrics != nil {
		uc.metrics.WithdrawalsSubmitted.WithLabelValues(string(method)).Inc()
	}

	return txn, nil
}

// ApproveWithdrawal settles a PENDING withdrawal, debiting the wallet. If the
// balance dropped below the requested amount since submission, the request
// transitions to FAILED (a legitimate terminal outcome, committed durably)
// and ErrInsufficientFunds is returned.
func (uc *FundingUseCase) ApproveWithdrawal(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := uc.settle(ctx, transactionID, domain.TransactionTypeWithdrawal, domain.TransactionStatusCompleted)
	if err != nil {
		return txn, err
	}

	uc.audit(ctx, domain.AuditActionWithdrawalApprove, txn)

	if uc.metrics != nil {
		uc.metrics.WithdrawalsApproved.Inc()
	}

	return txn, nil
}

// RejectWithdrawal moves a PENDING withdrawal to REJECTED.
func (uc *FundingUseCase) RejectWithdrawal(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := uc.settle(ctx, transactionID, domain.TransactionTypeWithdrawal, domain.TransactionStatusRejected)
	if err != nil {
		return nil, err
	}

	uc.audit(ctx, domain.AuditActionWithdrawalReject, txn)

	return txn, nil
}

// settle performs the guarded PENDING -> terminal transition. The row lock on
// the transaction serializes concurrent settlements; the balance effect (when
// completing) happens under the wallet lock in the same database transaction.
func (uc *FundingUseCase) settle(ctx context.Context, transactionID string, wantType domain.TransactionType, target domain.TransactionStatus) (*domain.Transaction, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	txn, err := uc.txnRepo.GetByIDForUpdate(txCtx, tx, transactionID)
	if err != nil {
		return nil, err
	}

	if txn.Type != wantType {
		return nil, domain.ErrTransactionNotFound
	}

	now := time.Now().UTC()

	if target == domain.TransactionStatusCompleted {
		failed, err := uc.applySettlement(txCtx, tx, txn, now)
		if err != nil {
			return nil, err
		}
		if failed {
			// The FAILED transition must still commit.
			if err := uc.transition(txCtx, tx, txn, domain.TransactionStatusFailed, now); err != nil {
				return nil, err
			}
			if err := tx.Commit(txCtx); err != nil {
				return nil, err
			}
			if uc.metrics != nil {
				uc.metrics.WithdrawalsFailed.Inc()
			}
			return txn, domain.ErrInsufficientFunds
		}
	}

	if err := uc.transition(txCtx, tx, txn, target, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return txn, nil
}

// applySettlement applies the balance effect of completing txn. It returns
// failed=true when a withdrawal cannot be covered by the current balance.
func (uc *FundingUseCase) applySettlement(ctx context.Context, tx Transaction, txn *domain.Transaction, now time.Time) (failed bool, err error) {
	// Guard before locking the wallet so replays bail out cheaply.
	if txn.Status != domain.TransactionStatusPending {
		return false, domain.ErrAlreadyProcessed
	}

	wallet, err := uc.walletRepo.GetByUserIDForUpdate(ctx, tx, txn.UserID)
	if err != nil {
		return false, err
	}

	var newBalance decimal.Decimal
	var eventType string

	if txn.Type.IsCredit() {
		newBalance = wallet.ApplyCredit(txn.Amount)
		eventType = domain.EventTypeDepositSettled
	} else {
		if err := wallet.ValidateDebit(txn.Amount); err != nil {
			if failEvent := uc.settlementEvent(domain.EventTypeWithdrawalFailed, txn.UserID, txn.Amount, txn.Reference); failEvent != nil {
				if err := uc.outboxRepo.Create(ctx, tx, failEvent); err != nil {
					return false, err
				}
			}
			return true, nil
		}
		newBalance = wallet.ApplyDebit(txn.Amount)
		eventType = domain.EventTypeWithdrawalSettled
	}

	if err := uc.walletRepo.UpdateBalance(ctx, tx, wallet.UserID, newBalance, now); err != nil {
		return false, err
	}

	if event := uc.settlementEvent(eventType, txn.UserID, txn.Amount, txn.Reference); event != nil {
		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return false, err
		}
	}

	return false, nil
}

func (uc *FundingUseCase) transition(ctx context.Context, tx Transaction, txn *domain.Transaction, target domain.TransactionStatus, now time.Time) error {
	if err := txn.Transition(target, now); err != nil {
		return err
	}

	return uc.txnRepo.UpdateStatus(ctx, tx, txn.ID, target, now)
}

func (uc *FundingUseCase) settlementEvent(eventType, userID string, amount decimal.Decimal, reference string) *domain.OutboxEvent {
	if uc.outboxRepo == nil {
		return nil
	}

	return &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   reference,
		AggregateType: domain.AggregateTypeTransaction,
		EventType:     eventType,
		Payload: map[string]any{
			"user_id":   userID,
			"amount":    amount.String(),
			"reference": reference,
		},
		CreatedAt: time.Now().UTC(),
		Published: false,
	}
}

func (uc *FundingUseCase) audit(ctx context.Context, action domain.AuditAction, txn *domain.Transaction) {
	if uc.auditRepo == nil || txn == nil {
		return
	}

	userID := "system"
	if user, ok := domain.UserFromContext(ctx); ok {
		userID = user.ID
	}

	log := &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		UserID:       userID,
		Action:       string(action),
		ResourceType: "transaction",
		ResourceID:   txn.ID,
		AfterState:   domain.MarshalState(txn),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	}

	// Audit writes are best-effort outside the settlement transaction.
	_ = uc.auditRepo.Create(ctx, log)
}
