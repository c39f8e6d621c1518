package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionStatus represents the lifecycle state of an escrow transaction.
type TransactionStatus string

const (
	TransactionStatusPending          TransactionStatus = "pending"
	TransactionStatusPaid             TransactionStatus = "paid"
	TransactionStatusAssetTransferred TransactionStatus = "asset_transferred"
	TransactionStatusCompleted        TransactionStatus = "completed"
	TransactionStatusCancelled        TransactionStatus = "cancelled"
)

// transactionTransitions is the closed transition table. Statuses absent from
// the map are terminal.
var transactionTransitions = map[TransactionStatus][]TransactionStatus{
	TransactionStatusPending:          {TransactionStatusPaid, TransactionStatusCancelled},
	TransactionStatusPaid:             {TransactionStatusAssetTransferred},
	TransactionStatusAssetTransferred: {TransactionStatusCompleted},
}

// CanTransitionTo reports whether the transition table permits moving from s
// to next.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	for _, allowed := range transactionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transition is possible from s.
func (s TransactionStatus) IsTerminal() bool {
	return len(transactionTransitions[s]) == 0
}

// CommissionRate is the platform fee charged on top of the item price.
var CommissionRate = decimal.NewFromFloat(0.05)

// CommissionFor derives the platform commission for a given item price.
func CommissionFor(price decimal.Decimal) decimal.Decimal {
	return price.Mul(CommissionRate).Round(2)
}

// Transaction represents one escrow deal between a seller and a buyer.
// Status is only mutated through the state machine; BuyerID is assigned at
// most once, when the buyer accepts the deal.
type Transaction struct {
	ID               uuid.UUID         `json:"id"`
	SellerID         uuid.UUID         `json:"seller_id"`
	BuyerID          *uuid.UUID        `json:"buyer_id,omitempty"`
	BuyerEmail       string            `json:"buyer_email"`
	ItemName         string            `json:"item_name"`
	Price            decimal.Decimal   `json:"price"`
	Commission       decimal.Decimal   `json:"commission"`
	Status           TransactionStatus `json:"status"`
	PaymentReference *string           `json:"payment_reference,omitempty"`
	UniqueLink       string            `json:"unique_link"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// TotalCharge is the amount the buyer is asked to pay at checkout.
func (t *Transaction) TotalCharge() decimal.Decimal {
	return t.Price.Add(t.Commission)
}

// Accepted returns true once a buyer has claimed the transaction.
func (t *Transaction) Accepted() bool {
	return t.BuyerID != nil
}
