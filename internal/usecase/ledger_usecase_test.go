package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fundflow/internal/domain"
	"github.com/iho/fundflow/internal/usecase"
	"github.com/iho/fundflow/internal/usecase/mocks"
)

func newLedgerFixture() (*usecase.LedgerUseCase, *mocks.MockWalletRepository, *mocks.MockTransactionRepository, *mocks.MockOutboxRepository) {
	walletRepo := mocks.NewMockWalletRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	outboxRepo := mocks.NewMockOutboxRepository()
	txMgr := mocks.NewMockTransactionManager()
	idGen := mocks.NewMockIDGenerator()

	uc := usecase.NewLedgerUseCase(txMgr, walletRepo, txnRepo, outboxRepo, idGen, nil)

	return uc, walletRepo, txnRepo, outboxRepo
}

func TestLedgerUseCase_Apply_FirstDepositCreatesWallet(t *testing.T) {
	uc, walletRepo, _, _ := newLedgerFixture()

	txn, replayed, err := uc.Apply(context.Background(), usecase.ApplyInput{
		UserID:    "user-1",
		Type:      domain.TransactionTypeDeposit,
		Amount:    decimal.NewFromInt(100),
		Reference: "dep:1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if replayed {
		t.Fatal("expected fresh apply, got replay")
	}
	if txn.Status != domain.TransactionStatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", txn.Status)
	}

	wallet, err := walletRepo.GetByUserID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected wallet to exist: %v", err)
	}
	if !wallet.Balance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected balance 100, got %s", wallet.Balance)
	}
}

func TestLedgerUseCase_Apply_DebitAgainstMissingWallet(t *testing.T) {
	uc, _, _, _ := newLedgerFixture()

	_, _, err := uc.Apply(context.Background(), usecase.ApplyInput{
		UserID:    "user-1",
		Type:      domain.TransactionTypeWithdrawal,
		Amount:    decimal.NewFromInt(50),
		Reference: "wd:1",
	})
	if !errors.Is(err, domain.ErrWalletNotFound) {
		t.Fatalf("expected ErrWalletNotFound, got %v", err)
	}
}

func TestLedgerUseCase_Apply_InsufficientFunds(t *testing.T) {
	uc, walletRepo, _, _ := newLedgerFixture()
	walletRepo.Seed(&domain.Wallet{UserID: "user-1", Balance: decimal.NewFromInt(30)})

	_, _, err := uc.Apply(context.Background(), usecase.ApplyInput{
		UserID:    "user-1",
		Type:      domain.TransactionTypeWithdrawal,
		Amount:    decimal.NewFromInt(50),
		Reference: "wd:1",
	})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	wallet, _ := walletRepo.GetByUserID(context.Background(), "user-1")
	if !wallet.Balance.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("balance must be untouched, got %s", wallet.Balance)
	}
}

func TestLedgerUseCase_Apply_ReplaySameReference(t *testing.T) {
	uc, walletRepo, _, _ := newLedgerFixture()

	input := usecase.ApplyInput{
		UserID:    "user-1",
		Type:      domain.TransactionTypeDeposit,
		Amount:    decimal.NewFromInt(100),
		Reference: "dep:1",
	}

	first, _, err := uc.Apply(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, replayed, err := uc.Apply(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error on replay: %v", err)
	}
	if !replayed {
		t.Fatal("expected replayed=true")
	}
	if second.ID != first.ID {
		t.Fatalf("replay must return the original transaction, got %s want %s", second.ID, first.ID)
	}

	// The replay must have no balance effect.
	wallet, _ := walletRepo.GetByUserID(context.Background(), "user-1")
	if !wallet.Balance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected balance 100 after replay, got %s", wallet.Balance)
	}
}

func TestLedgerUseCase_Apply_ReferenceConflict(t *testing.T) {
	uc, _, _, _ := newLedgerFixture()

	_, _, err := uc.Apply(context.Background(), usecase.ApplyInput{
		UserID:    "user-1",
		Type:      domain.TransactionTypeDeposit,
		Amount:    decimal.NewFromInt(100),
		Reference: "dep:1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same reference, different amount: not a replay.
	_, _, err = uc.Apply(context.Background(), usecase.ApplyInput{
		UserID:    "user-1",
		Type:      domain.TransactionTypeDeposit,
		Amount:    decimal.NewFromInt(200),
		Reference: "dep:1",
	})
	if !errors.Is(err, domain.ErrReferenceConflict) {
		t.Fatalf("expected ErrReferenceConflict, got %v", err)
	}
}

func TestLedgerUseCase_Apply_PendingHasNoBalanceEffect(t *testing.T) {
	uc, walletRepo, txnRepo, _ := newLedgerFixture()
	walletRepo.Seed(&domain.Wallet{UserID: "user-1", Balance: decimal.NewFromInt(500)})

	txn, _, err := uc.Apply(context.Background(), usecase.ApplyInput{
		UserID:    "user-1",
		Type:      domain.TransactionTypeWithdrawal,
		Amount:    decimal.NewFromInt(200),
		Reference: "wd:1",
		Pending:   true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if txn.Status != domain.TransactionStatusPending {
		t.Fatalf("expected PENDING, got %s", txn.Status)
	}

	wallet, _ := walletRepo.GetByUserID(context.Background(), "user-1")
	if !wallet.Balance.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("pending apply must not touch the balance, got %s", wallet.Balance)
	}

	stored, err := txnRepo.GetByID(context.Background(), txn.ID)
	if err != nil {
		t.Fatalf("expected transaction row: %v", err)
	}
	if stored.Status != domain.TransactionStatusPending {
		t.Fatalf("expected stored PENDING, got %s", stored.Status)
	}
}

func TestLedgerUseCase_Apply_WritesOutboxEvent(t *testing.T) {
	uc, _, _, outboxRepo := newLedgerFixture()

	_, _, err := uc.Apply(context.Background(), usecase.ApplyInput{
		UserID:    "user-1",
		Type:      domain.TransactionTypeDeposit,
		Amount:    decimal.NewFromInt(100),
		Reference: "dep:1",
		Event: &domain.OutboxEvent{
			ID:            "evt-1",
			AggregateID:   "dep:1",
			AggregateType: domain.AggregateTypeTransaction,
			EventType:     domain.EventTypeDepositSettled,
			CreatedAt:     time.Now().UTC(),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events := outboxRepo.Events()
	if len(events) != 1 || events[0].ID != "evt-1" {
		t.Fatalf("expected one outbox event, got %+v", events)
	}
}

func TestLedgerUseCase_Apply_ValidatesInput(t *testing.T) {
	uc, _, _, _ := newLedgerFixture()

	tests := []struct {
		name  string
		input usecase.ApplyInput
		want  error
	}{
		{
			name: "missing user",
			input: usecase.ApplyInput{
				Type:      domain.TransactionTypeDeposit,
				Amount:    decimal.NewFromInt(10),
				Reference: "r1",
			},
			want: domain.ErrInvalidUserID,
		},
		{
			name: "non-positive amount",
			input: usecase.ApplyInput{
				UserID:    "user-1",
				Type:      domain.TransactionTypeDeposit,
				Amount:    decimal.Zero,
				Reference: "r2",
			},
			want: domain.ErrInvalidAmount,
		},
		{
			name: "missing reference",
			input: usecase.ApplyInput{
				UserID: "user-1",
				Type:   domain.TransactionTypeDeposit,
				Amount: decimal.NewFromInt(10),
			},
			want: domain.ErrMissingReference,
		},
		{
			name: "unknown type",
			input: usecase.ApplyInput{
				UserID:    "user-1",
				Type:      domain.TransactionType("BOGUS"),
				Amount:    decimal.NewFromInt(10),
				Reference: "r3",
			},
			want: domain.ErrInvalidTransactionType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := uc.Apply(context.Background(), tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLedgerUseCase_GetBalance(t *testing.T) {
	uc, walletRepo, _, _ := newLedgerFixture()
	walletRepo.Seed(&domain.Wallet{UserID: "user-1", Balance: decimal.NewFromInt(75)})

	balance, err := uc.GetBalance(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("expected 75, got %s", balance)
	}

	if _, err := uc.GetBalance(context.Background(), "nobody"); !errors.Is(err, domain.ErrWalletNotFound) {
		t.Fatalf("expected ErrWalletNotFound, got %v", err)
	}
}
