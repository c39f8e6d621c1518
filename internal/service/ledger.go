package service

import (
	"context"
	"fmt"

	"escrow-settlement/internal/core/domain"
	"escrow-settlement/internal/core/ports"
	"escrow-settlement/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// LedgerImpl implements ports.Ledger. Every balance mutation locks the wallet
// row for the duration of the enclosing database transaction, so concurrent
// calls for the same seller serialize instead of racing.
type LedgerImpl struct {
	walletRepo ports.WalletRepository
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewLedger creates a new LedgerImpl.
func NewLedger(walletRepo ports.WalletRepository, transactor ports.DBTransactor, log zerolog.Logger) *LedgerImpl {
	return &LedgerImpl{
		walletRepo: walletRepo,
		transactor: transactor,
		log:        log,
	}
}

// CreditPending adds buyer funds to the seller's pending balance, creating
// the wallet on first credit.
func (l *LedgerImpl) CreditPending(ctx context.Context, sellerID uuid.UUID, amount decimal.Decimal) error {
	return l.inTx(ctx, func(tx pgx.Tx) error {
		return l.creditPendingLocked(ctx, tx, sellerID, amount)
	})
}

// CreditPendingTx applies the pending credit inside the caller's transaction.
func (l *LedgerImpl) CreditPendingTx(ctx context.Context, tx pgx.Tx, sellerID uuid.UUID, amount decimal.Decimal) error {
	return l.creditPendingLocked(ctx, tx, sellerID, amount)
}

// MoveToAvailable makes pending funds eligible for payout.
func (l *LedgerImpl) MoveToAvailable(ctx context.Context, sellerID uuid.UUID, amount decimal.Decimal) error {
	if err := requirePositive(amount); err != nil {
		return err
	}
	return l.inTx(ctx, func(tx pgx.Tx) error {
		w, err := l.lockWallet(ctx, tx, sellerID, false)
		if err != nil {
			return err
		}
		if w == nil || w.PendingBalance.LessThan(amount) {
			l.logBalanceFault(sellerID, "pending", amount)
			return apperror.ErrInsufficientPendingBalance()
		}
		return l.updateBalances(ctx, tx, w.ID,
			w.PendingBalance.Sub(amount), w.AvailableBalance.Add(amount))
	})
}

// DeductAvailableBalance removes successfully paid-out funds.
func (l *LedgerImpl) DeductAvailableBalance(ctx context.Context, sellerID uuid.UUID, amount decimal.Decimal) error {
	if err := requirePositive(amount); err != nil {
		return err
	}
	return l.inTx(ctx, func(tx pgx.Tx) error {
		w, err := l.lockWallet(ctx, tx, sellerID, false)
		if err != nil {
			return err
		}
		if w == nil || w.AvailableBalance.LessThan(amount) {
			l.logBalanceFault(sellerID, "available", amount)
			return apperror.ErrInsufficientAvailableBalance()
		}
		return l.updateBalances(ctx, tx, w.ID,
			w.PendingBalance, w.AvailableBalance.Sub(amount))
	})
}

// CreditAvailableBalance returns funds to the seller's spendable balance
// after a payout transfer was reversed.
func (l *LedgerImpl) CreditAvailableBalance(ctx context.Context, sellerID uuid.UUID, amount decimal.Decimal) error {
	if err := requirePositive(amount); err != nil {
		return err
	}
	return l.inTx(ctx, func(tx pgx.Tx) error {
		w, err := l.lockWallet(ctx, tx, sellerID, true)
		if err != nil {
			return err
		}
		return l.updateBalances(ctx, tx, w.ID,
			w.PendingBalance, w.AvailableBalance.Add(amount))
	})
}

// SettleTx moves amount from pending to available and deducts it as paid out
// in one step, inside the caller's transaction. The two legs net out on the
// available balance, so only the pending balance changes; holding the row
// lock for both keeps the sum invariant from ever transiently breaking.
func (l *LedgerImpl) SettleTx(ctx context.Context, tx pgx.Tx, sellerID uuid.UUID, amount decimal.Decimal) error {
	if err := requirePositive(amount); err != nil {
		return err
	}
	w, err := l.lockWallet(ctx, tx, sellerID, false)
	if err != nil {
		return err
	}
	if w == nil || w.PendingBalance.LessThan(amount) {
		l.logBalanceFault(sellerID, "pending", amount)
		return apperror.ErrInsufficientPendingBalance()
	}
	if err := l.updateBalances(ctx, tx, w.ID, w.PendingBalance.Sub(amount), w.AvailableBalance); err != nil {
		return err
	}
	l.log.Info().
		Str("seller_id", sellerID.String()).
		Str("amount", amount.String()).
		Msg("ledger: settled pending funds for payout")
	return nil
}

func (l *LedgerImpl) creditPendingLocked(ctx context.Context, tx pgx.Tx, sellerID uuid.UUID, amount decimal.Decimal) error {
	if err := requirePositive(amount); err != nil {
		return err
	}
	w, err := l.lockWallet(ctx, tx, sellerID, true)
	if err != nil {
		return err
	}
	return l.updateBalances(ctx, tx, w.ID,
		w.PendingBalance.Add(amount), w.AvailableBalance)
}

// lockWallet fetches the wallet row FOR UPDATE, optionally creating it
// (get-or-create on first credit). Returns nil when absent and create is
// false.
func (l *LedgerImpl) lockWallet(ctx context.Context, tx pgx.Tx, sellerID uuid.UUID, create bool) (*domain.Wallet, error) {
	w, err := l.walletRepo.GetBySellerIDForUpdate(ctx, tx, sellerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if w == nil && create {
		w = domain.NewWallet(sellerID)
		if err := l.walletRepo.Create(ctx, tx, w); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("create wallet: %w", err))
		}
	}
	return w, nil
}

func (l *LedgerImpl) updateBalances(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, pending, available decimal.Decimal) error {
	if err := l.walletRepo.UpdateBalances(ctx, tx, walletID, pending, available); err != nil {
		return apperror.InternalError(fmt.Errorf("update balances: %w", err))
	}
	return nil
}

func (l *LedgerImpl) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := l.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

// logBalanceFault records an invariant violation. This should not occur in
// normal operation and indicates a race or lost update upstream.
func (l *LedgerImpl) logBalanceFault(sellerID uuid.UUID, balance string, amount decimal.Decimal) {
	l.log.Error().
		Str("seller_id", sellerID.String()).
		Str("balance", balance).
		Str("amount", amount.String()).
		Msg("ledger: balance would go negative, aborting")
}

func requirePositive(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperror.Validation("amount must be positive")
	}
	return nil
}
