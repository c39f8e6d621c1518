package ports

import (
	"context"
	"time"

	"escrow-settlement/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TransactionRepository defines persistence operations for escrow
// transactions. Status mutations are guarded: the update only applies when
// the stored status still equals the expected one, so concurrent writers
// cannot clobber each other.
type TransactionRepository interface {
	Create(ctx context.Context, txn *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	GetByUniqueLink(ctx context.Context, link string) (*domain.Transaction, error)
	// UpdateStatus applies a guarded status change inside tx. Returns false
	// (without error) when the guard missed because another writer got there
	// first.
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to domain.TransactionStatus, paymentReference *string) (bool, error)
	// AssignBuyer sets the buyer exactly once. Returns false when a buyer is
	// already assigned.
	AssignBuyer(ctx context.Context, id uuid.UUID, buyerID uuid.UUID) (bool, error)
}

// PayoutRepository defines persistence operations for payouts. A uniqueness
// constraint on transaction_id guarantees at most one payout per transaction.
type PayoutRepository interface {
	// Create inserts a payout row. Returns the existing row instead when the
	// transaction already has one (get-or-create).
	Create(ctx context.Context, p *domain.Payout) (*domain.Payout, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payout, error)
	GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*domain.Payout, error)
	GetByTransferReference(ctx context.Context, reference string) (*domain.Payout, error)
	// ClaimProcessing atomically moves the payout from the expected status to
	// processing. A claim from failed also increments retry_count. Returns
	// false when another worker holds the claim.
	ClaimProcessing(ctx context.Context, id uuid.UUID, from domain.PayoutStatus) (bool, error)
	SetTransferReference(ctx context.Context, id uuid.UUID, reference string) error
	// MarkCompleted finalizes a processing payout inside tx so it commits
	// together with the ledger settlement. Returns false on a guard miss.
	MarkCompleted(ctx context.Context, tx pgx.Tx, id uuid.UUID, gatewayReference string) (bool, error)
	// MarkFailed records the failure reason and the next retry time, guarded
	// on the expected prior status. Callers pass processing for a failed
	// transfer attempt and completed for a post-settlement reversal; the
	// guard keeps one path from demoting what the other already finalized.
	MarkFailed(ctx context.Context, id uuid.UUID, from domain.PayoutStatus, reason string, nextRetryAt time.Time) (bool, error)
	// ListDue returns payouts in a retryable non-terminal state whose
	// next_retry_at is unset or past due.
	ListDue(ctx context.Context, now time.Time, limit int) ([]domain.Payout, error)
	// ListUnattemptedBySeller returns the seller's payouts that were never
	// attempted.
	ListUnattemptedBySeller(ctx context.Context, sellerID uuid.UUID) ([]domain.Payout, error)
}

// WalletRepository defines persistence operations for seller wallets.
// Balance mutation happens under a row lock inside a transaction block.
type WalletRepository interface {
	Create(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error
	GetBySellerID(ctx context.Context, sellerID uuid.UUID) (*domain.Wallet, error)
	// GetBySellerIDForUpdate locks the wallet row. MUST be called within a
	// transaction.
	GetBySellerIDForUpdate(ctx context.Context, tx pgx.Tx, sellerID uuid.UUID) (*domain.Wallet, error)
	UpdateBalances(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, pending, available decimal.Decimal) error
	TouchSettlementCheck(ctx context.Context, sellerID uuid.UUID, at time.Time) error
}

// SellerRepository defines persistence operations for seller payout profiles.
type SellerRepository interface {
	Create(ctx context.Context, s *domain.Seller) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Seller, error)
	UpdateBankDetails(ctx context.Context, id uuid.UUID, bankCode, accountNumber, accountName string) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
