package domain

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Gateway event names as delivered on the webhook.
const (
	EventChargeSuccess    = "charge.success"
	EventTransferSuccess  = "transfer.success"
	EventTransferFailed   = "transfer.failed"
	EventTransferReversed = "transfer.reversed"
)

// GatewayEvent is the tagged union over the webhook events the settlement
// core consumes. Unrecognized event names parse into UnknownEvent.
type GatewayEvent interface {
	EventName() string
}

// ChargeSucceeded signals that a buyer's payment was captured.
type ChargeSucceeded struct {
	Reference     string
	Amount        decimal.Decimal
	TransactionID uuid.UUID
}

// EventName implements GatewayEvent.
func (ChargeSucceeded) EventName() string { return EventChargeSuccess }

// TransferSucceeded signals that a payout transfer settled at the bank.
type TransferSucceeded struct {
	Reference string
}

// EventName implements GatewayEvent.
func (TransferSucceeded) EventName() string { return EventTransferSuccess }

// TransferFailed signals that a payout transfer failed or was reversed after
// the fact.
type TransferFailed struct {
	Reference string
	Reason    string
	Reversed  bool
}

// EventName implements GatewayEvent.
func (e TransferFailed) EventName() string {
	if e.Reversed {
		return EventTransferReversed
	}
	return EventTransferFailed
}

// UnknownEvent carries an event name the core does not handle. It is logged
// and ignored by the ingestor.
type UnknownEvent struct {
	Name string
}

// EventName implements GatewayEvent.
func (e UnknownEvent) EventName() string { return e.Name }

// gatewayEnvelope is the raw wire shape of a webhook delivery.
type gatewayEnvelope struct {
	Event string `json:"event"`
	Data  struct {
		Reference string          `json:"reference"`
		Amount    decimal.Decimal `json:"amount"`
		Reason    string          `json:"reason"`
		Metadata  struct {
			TransactionID string `json:"transaction_id"`
		} `json:"metadata"`
	} `json:"data"`
}

// ParseGatewayEvent decodes a raw webhook body into its typed event.
func ParseGatewayEvent(raw []byte) (GatewayEvent, error) {
	var env gatewayEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode gateway event: %w", err)
	}

	switch env.Event {
	case EventChargeSuccess:
		txID, err := uuid.Parse(env.Data.Metadata.TransactionID)
		if err != nil {
			return nil, fmt.Errorf("charge.success metadata transaction_id: %w", err)
		}
		return ChargeSucceeded{
			Reference:     env.Data.Reference,
			Amount:        env.Data.Amount,
			TransactionID: txID,
		}, nil
	case EventTransferSuccess:
		return TransferSucceeded{Reference: env.Data.Reference}, nil
	case EventTransferFailed:
		return TransferFailed{Reference: env.Data.Reference, Reason: env.Data.Reason}, nil
	case EventTransferReversed:
		return TransferFailed{Reference: env.Data.Reference, Reason: env.Data.Reason, Reversed: true}, nil
	default:
		return UnknownEvent{Name: env.Event}, nil
	}
}

// SettlementNotice is the message published to the notification sink after a
// settlement-affecting change commits. Delivery is fire-and-forget: sink
// failures never affect ledger correctness.
type SettlementNotice struct {
	Event         string          `json:"event"`
	TransactionID uuid.UUID       `json:"transaction_id"`
	SellerID      uuid.UUID       `json:"seller_id"`
	Amount        decimal.Decimal `json:"amount"`
	OccurredAt    int64           `json:"occurred_at"`
}
