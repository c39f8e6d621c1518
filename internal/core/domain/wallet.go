package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet holds the escrow balances for one seller. Pending funds were paid by
// a buyer but are not yet eligible for payout; available funds may be
// transferred out. Both balances are invariant >= 0 and are only mutated by
// the ledger inside a locked database transaction.
type Wallet struct {
	ID                  uuid.UUID       `json:"id"`
	SellerID            uuid.UUID       `json:"seller_id"`
	PendingBalance      decimal.Decimal `json:"pending_balance"`
	AvailableBalance    decimal.Decimal `json:"available_balance"`
	LastSettlementCheck *time.Time      `json:"last_settlement_check,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// NewWallet returns a zero-balance wallet for a seller. Wallets are created
// lazily, on the first pending credit.
func NewWallet(sellerID uuid.UUID) *Wallet {
	now := time.Now().UTC()
	return &Wallet{
		ID:               uuid.New(),
		SellerID:         sellerID,
		PendingBalance:   decimal.Zero,
		AvailableBalance: decimal.Zero,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
