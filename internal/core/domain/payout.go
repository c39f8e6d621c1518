package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayoutStatus represents the lifecycle state of a seller payout.
type PayoutStatus string

const (
	PayoutStatusNotReady   PayoutStatus = "not_ready"
	PayoutStatusProcessing PayoutStatus = "processing"
	PayoutStatusCompleted  PayoutStatus = "completed"
	PayoutStatusFailed     PayoutStatus = "failed"
)

// payoutTransitions is the closed transition table for payouts. A failed
// payout may be claimed again for retry, and a completed payout moves to
// failed when the bank reverses the transfer after the fact.
var payoutTransitions = map[PayoutStatus][]PayoutStatus{
	PayoutStatusNotReady:   {PayoutStatusProcessing},
	PayoutStatusProcessing: {PayoutStatusCompleted, PayoutStatusFailed},
	PayoutStatusCompleted:  {PayoutStatusFailed},
	PayoutStatusFailed:     {PayoutStatusProcessing},
}

// CanTransitionTo reports whether the payout transition table permits moving
// from s to next.
func (s PayoutStatus) CanTransitionTo(next PayoutStatus) bool {
	for _, allowed := range payoutTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transition is possible from s.
func (s PayoutStatus) IsTerminal() bool {
	return len(payoutTransitions[s]) == 0
}

// Payout is a single attempt-tracked transfer of escrowed funds to a seller's
// bank account. At most one payout exists per transaction.
type Payout struct {
	ID                uuid.UUID       `json:"id"`
	TransactionID     uuid.UUID       `json:"transaction_id"`
	SellerID          uuid.UUID       `json:"seller_id"`
	Amount            decimal.Decimal `json:"amount"`
	Status            PayoutStatus    `json:"status"`
	TransferReference *string         `json:"transfer_reference,omitempty"`
	GatewayReference  *string         `json:"gateway_reference,omitempty"`
	FailureReason     *string         `json:"failure_reason,omitempty"`
	RetryCount        int             `json:"retry_count"`
	NextRetryAt       *time.Time      `json:"next_retry_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// InFlight returns true if the payout is already being transferred or has
// finished successfully, meaning another attempt must not start.
func (p *Payout) InFlight() bool {
	return p.Status == PayoutStatusProcessing || p.Status == PayoutStatusCompleted
}
