package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"escrow-settlement/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const payoutColumns = `id, transaction_id, seller_id, amount, status, transfer_reference,
		gateway_reference, failure_reason, retry_count, next_retry_at, created_at, updated_at`

// uniqueViolation is the PostgreSQL error code for a unique constraint hit.
const uniqueViolation = "23505"

// PayoutRepo implements ports.PayoutRepository. The payouts table has a
// unique constraint on transaction_id.
type PayoutRepo struct {
	pool Pool
}

// NewPayoutRepo creates a new PayoutRepo.
func NewPayoutRepo(pool Pool) *PayoutRepo {
	return &PayoutRepo{pool: pool}
}

// Create inserts a payout row, get-or-create style: when another worker
// inserted the row for the same transaction first, the existing row is
// returned instead of an error.
func (r *PayoutRepo) Create(ctx context.Context, p *domain.Payout) (*domain.Payout, error) {
	query := `INSERT INTO payouts (id, transaction_id, seller_id, amount, status, transfer_reference,
		gateway_reference, failure_reason, retry_count, next_retry_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.TransactionID, p.SellerID, p.Amount, p.Status, p.TransferReference,
		p.GatewayReference, p.FailureReason, p.RetryCount, p.NextRetryAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			existing, lookupErr := r.GetByTransactionID(ctx, p.TransactionID)
			if lookupErr != nil {
				return nil, lookupErr
			}
			if existing != nil {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("insert payout: %w", err)
	}
	return p, nil
}

// GetByID fetches a payout by UUID.
func (r *PayoutRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payout, error) {
	query := `SELECT ` + payoutColumns + ` FROM payouts WHERE id = $1`
	return r.scanPayout(r.pool.QueryRow(ctx, query, id))
}

// GetByTransactionID fetches the payout belonging to a transaction.
func (r *PayoutRepo) GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*domain.Payout, error) {
	query := `SELECT ` + payoutColumns + ` FROM payouts WHERE transaction_id = $1`
	return r.scanPayout(r.pool.QueryRow(ctx, query, transactionID))
}

// GetByTransferReference fetches a payout by the reference sent to the
// gateway.
func (r *PayoutRepo) GetByTransferReference(ctx context.Context, reference string) (*domain.Payout, error) {
	query := `SELECT ` + payoutColumns + ` FROM payouts WHERE transfer_reference = $1`
	return r.scanPayout(r.pool.QueryRow(ctx, query, reference))
}

// ClaimProcessing atomically moves the payout from the expected status to
// processing. A retry claim (from failed) also counts the attempt.
func (r *PayoutRepo) ClaimProcessing(ctx context.Context, id uuid.UUID, from domain.PayoutStatus) (bool, error) {
	retryStep := 0
	if from == domain.PayoutStatusFailed {
		retryStep = 1
	}
	query := `UPDATE payouts SET status = $1, retry_count = retry_count + $2, updated_at = NOW()
		WHERE id = $3 AND status = $4`

	tag, err := r.pool.Exec(ctx, query, domain.PayoutStatusProcessing, retryStep, id, from)
	if err != nil {
		return false, fmt.Errorf("claim payout: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// SetTransferReference stores the idempotent reference before the gateway
// call, so a transfer webhook can find the payout even if this process dies
// mid-call.
func (r *PayoutRepo) SetTransferReference(ctx context.Context, id uuid.UUID, reference string) error {
	query := `UPDATE payouts SET transfer_reference = $1, updated_at = NOW() WHERE id = $2`

	tag, err := r.pool.Exec(ctx, query, reference, id)
	if err != nil {
		return fmt.Errorf("set transfer reference: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payout not found: %s", id)
	}
	return nil
}

// MarkCompleted finalizes a processing payout inside tx. Resets retry_count
// so the record reads cleanly after a successful retry.
func (r *PayoutRepo) MarkCompleted(ctx context.Context, tx pgx.Tx, id uuid.UUID, gatewayReference string) (bool, error) {
	query := `UPDATE payouts
		SET status = $1, gateway_reference = $2, failure_reason = NULL, retry_count = 0,
			next_retry_at = NULL, updated_at = NOW()
		WHERE id = $3 AND status = $4`

	tag, err := tx.Exec(ctx, query, domain.PayoutStatusCompleted, gatewayReference, id, domain.PayoutStatusProcessing)
	if err != nil {
		return false, fmt.Errorf("mark payout completed: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// MarkFailed records the failure reason and next retry time, guarded on the
// expected prior status.
func (r *PayoutRepo) MarkFailed(ctx context.Context, id uuid.UUID, from domain.PayoutStatus, reason string, nextRetryAt time.Time) (bool, error) {
	query := `UPDATE payouts SET status = $1, failure_reason = $2, next_retry_at = $3, updated_at = NOW()
		WHERE id = $4 AND status = $5`

	tag, err := r.pool.Exec(ctx, query,
		domain.PayoutStatusFailed, reason, nextRetryAt, id, from,
	)
	if err != nil {
		return false, fmt.Errorf("mark payout failed: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListDue returns payouts eligible for a retry sweep: never attempted, or
// failed with a due next_retry_at.
func (r *PayoutRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.Payout, error) {
	query := `SELECT ` + payoutColumns + ` FROM payouts
		WHERE status IN ($1, $2) AND (next_retry_at IS NULL OR next_retry_at <= $3)
		ORDER BY created_at
		LIMIT $4`

	rows, err := r.pool.Query(ctx, query, domain.PayoutStatusNotReady, domain.PayoutStatusFailed, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list due payouts: %w", err)
	}
	defer rows.Close()
	return r.collect(rows)
}

// ListUnattemptedBySeller returns the seller's payouts that were never
// attempted.
func (r *PayoutRepo) ListUnattemptedBySeller(ctx context.Context, sellerID uuid.UUID) ([]domain.Payout, error) {
	query := `SELECT ` + payoutColumns + ` FROM payouts
		WHERE seller_id = $1 AND status = $2
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, sellerID, domain.PayoutStatusNotReady)
	if err != nil {
		return nil, fmt.Errorf("list seller payouts: %w", err)
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *PayoutRepo) collect(rows pgx.Rows) ([]domain.Payout, error) {
	var payouts []domain.Payout
	for rows.Next() {
		var p domain.Payout
		if err := rows.Scan(
			&p.ID, &p.TransactionID, &p.SellerID, &p.Amount, &p.Status, &p.TransferReference,
			&p.GatewayReference, &p.FailureReason, &p.RetryCount, &p.NextRetryAt, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payout: %w", err)
		}
		payouts = append(payouts, p)
	}
	return payouts, rows.Err()
}

func (r *PayoutRepo) scanPayout(row pgx.Row) (*domain.Payout, error) {
	p := &domain.Payout{}
	err := row.Scan(
		&p.ID, &p.TransactionID, &p.SellerID, &p.Amount, &p.Status, &p.TransferReference,
		&p.GatewayReference, &p.FailureReason, &p.RetryCount, &p.NextRetryAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan payout: %w", err)
	}
	return p, nil
}
