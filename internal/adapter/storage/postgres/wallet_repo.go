package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"escrow-settlement/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const walletColumns = `id, seller_id, pending_balance, available_balance, last_settlement_check, created_at, updated_at`

// WalletRepo implements ports.WalletRepository. Balance reads for mutation go
// through GetBySellerIDForUpdate so concurrent settlement paths serialize on
// the row lock.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts a new wallet within a transaction block.
func (r *WalletRepo) Create(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	query := `INSERT INTO wallets (id, seller_id, pending_balance, available_balance, last_settlement_check, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := tx.Exec(ctx, query,
		w.ID, w.SellerID, w.PendingBalance, w.AvailableBalance,
		w.LastSettlementCheck, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// GetBySellerID fetches a wallet without locking (read-only paths).
func (r *WalletRepo) GetBySellerID(ctx context.Context, sellerID uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE seller_id = $1`
	return r.scanWallet(r.pool.QueryRow(ctx, query, sellerID))
}

// GetBySellerIDForUpdate fetches a wallet with pessimistic locking.
// This MUST be called within a transaction.
func (r *WalletRepo) GetBySellerIDForUpdate(ctx context.Context, tx pgx.Tx, sellerID uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE seller_id = $1 FOR UPDATE`
	return r.scanWallet(tx.QueryRow(ctx, query, sellerID))
}

// UpdateBalances writes both balances within a transaction. A CHECK
// constraint on the table backstops the non-negative invariant.
func (r *WalletRepo) UpdateBalances(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, pending, available decimal.Decimal) error {
	query := `UPDATE wallets SET pending_balance = $1, available_balance = $2, updated_at = NOW() WHERE id = $3`

	tag, err := tx.Exec(ctx, query, pending, available, walletID)
	if err != nil {
		return fmt.Errorf("update wallet balances: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", walletID)
	}
	return nil
}

// TouchSettlementCheck records when the settlement sweep last looked at this
// seller.
func (r *WalletRepo) TouchSettlementCheck(ctx context.Context, sellerID uuid.UUID, at time.Time) error {
	query := `UPDATE wallets SET last_settlement_check = $1, updated_at = NOW() WHERE seller_id = $2`

	if _, err := r.pool.Exec(ctx, query, at, sellerID); err != nil {
		return fmt.Errorf("touch settlement check: %w", err)
	}
	return nil
}

func (r *WalletRepo) scanWallet(row pgx.Row) (*domain.Wallet, error) {
	w := &domain.Wallet{}
	err := row.Scan(
		&w.ID, &w.SellerID, &w.PendingBalance, &w.AvailableBalance,
		&w.LastSettlementCheck, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan wallet: %w", err)
	}
	return w, nil
}
