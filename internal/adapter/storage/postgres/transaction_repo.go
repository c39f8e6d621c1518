package postgres

import (
	"context"
	"errors"
	"fmt"

	"escrow-settlement/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `id, seller_id, buyer_id, buyer_email, item_name, price, commission,
		status, payment_reference, unique_link, created_at, updated_at`

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create inserts a new escrow transaction.
func (r *TransactionRepo) Create(ctx context.Context, t *domain.Transaction) error {
	query := `INSERT INTO transactions (id, seller_id, buyer_id, buyer_email, item_name, price, commission,
		status, payment_reference, unique_link, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.pool.Exec(ctx, query,
		t.ID, t.SellerID, t.BuyerID, t.BuyerEmail, t.ItemName, t.Price, t.Commission,
		t.Status, t.PaymentReference, t.UniqueLink, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID fetches a transaction by UUID.
func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	return r.scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// GetByUniqueLink fetches a transaction by its shareable link.
func (r *TransactionRepo) GetByUniqueLink(ctx context.Context, link string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE unique_link = $1`
	return r.scanTransaction(r.pool.QueryRow(ctx, query, link))
}

// UpdateStatus applies a guarded status change inside tx. The WHERE clause
// compares against the expected prior status, so a concurrent transition
// shows up as zero rows affected rather than a lost update.
func (r *TransactionRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to domain.TransactionStatus, paymentReference *string) (bool, error) {
	query := `UPDATE transactions
		SET status = $1, payment_reference = COALESCE($2, payment_reference), updated_at = NOW()
		WHERE id = $3 AND status = $4`

	tag, err := tx.Exec(ctx, query, to, paymentReference, id, from)
	if err != nil {
		return false, fmt.Errorf("update transaction status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// AssignBuyer sets the buyer at most once: the update only applies while
// buyer_id is still NULL.
func (r *TransactionRepo) AssignBuyer(ctx context.Context, id uuid.UUID, buyerID uuid.UUID) (bool, error) {
	query := `UPDATE transactions SET buyer_id = $1, updated_at = NOW()
		WHERE id = $2 AND buyer_id IS NULL`

	tag, err := r.pool.Exec(ctx, query, buyerID, id)
	if err != nil {
		return false, fmt.Errorf("assign buyer: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *TransactionRepo) scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	err := row.Scan(
		&t.ID, &t.SellerID, &t.BuyerID, &t.BuyerEmail, &t.ItemName, &t.Price, &t.Commission,
		&t.Status, &t.PaymentReference, &t.UniqueLink, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	return t, nil
}
