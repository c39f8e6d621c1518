package domain

import (
	"time"

	"github.com/google/uuid"
)

// Seller is the payout profile of a registered seller. Bank details are
// optional until the seller configures them; payouts cannot start without
// them.
type Seller struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	DisplayName   string    `json:"display_name"`
	BankCode      *string   `json:"bank_code,omitempty"`
	AccountNumber *string   `json:"account_number,omitempty"`
	AccountName   *string   `json:"account_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewSeller returns a seller profile without payout details.
func NewSeller(email, displayName string) *Seller {
	now := time.Now().UTC()
	return &Seller{
		ID:          uuid.New(),
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// HasPayoutDetails returns true if the seller has a usable transfer
// destination.
func (s *Seller) HasPayoutDetails() bool {
	return s.BankCode != nil && *s.BankCode != "" &&
		s.AccountNumber != nil && *s.AccountNumber != ""
}
