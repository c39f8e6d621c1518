package postgres

import (
	"context"
	"errors"
	"fmt"

	"escrow-settlement/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const sellerColumns = `id, email, display_name, bank_code, account_number, account_name, created_at, updated_at`

// SellerRepo implements ports.SellerRepository.
type SellerRepo struct {
	pool Pool
}

// NewSellerRepo creates a new SellerRepo.
func NewSellerRepo(pool Pool) *SellerRepo {
	return &SellerRepo{pool: pool}
}

// Create inserts a new seller profile.
func (r *SellerRepo) Create(ctx context.Context, s *domain.Seller) error {
	query := `INSERT INTO sellers (id, email, display_name, bank_code, account_number, account_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		s.ID, s.Email, s.DisplayName, s.BankCode, s.AccountNumber, s.AccountName,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert seller: %w", err)
	}
	return nil
}

// GetByID fetches a seller profile by its primary key.
func (r *SellerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Seller, error) {
	query := `SELECT ` + sellerColumns + ` FROM sellers WHERE id = $1`

	s := &domain.Seller{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Email, &s.DisplayName, &s.BankCode, &s.AccountNumber, &s.AccountName,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan seller: %w", err)
	}
	return s, nil
}

// UpdateBankDetails sets the seller's transfer destination.
func (r *SellerRepo) UpdateBankDetails(ctx context.Context, id uuid.UUID, bankCode, accountNumber, accountName string) error {
	query := `UPDATE sellers SET bank_code = $1, account_number = $2, account_name = $3, updated_at = NOW() WHERE id = $4`

	tag, err := r.pool.Exec(ctx, query, bankCode, accountNumber, accountName, id)
	if err != nil {
		return fmt.Errorf("update seller bank details: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("seller not found: %s", id)
	}
	return nil
}
