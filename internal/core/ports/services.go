package ports

import (
	"context"

	"escrow-settlement/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// GatewayClient is the external payment provider contract. Every call is
// bounded by the client's HTTP timeout; a timeout is treated the same as a
// provider failure.
type GatewayClient interface {
	InitializePayment(ctx context.Context, req InitializePaymentRequest) (*CheckoutSession, error)
	VerifyPayment(ctx context.Context, reference string) (*PaymentVerification, error)
	TransferToSeller(ctx context.Context, req TransferRequest) (*TransferResult, error)
	// VerifyWebhookSignature checks the HMAC-SHA256 of the raw request body
	// against the shared secret using a constant-time comparison.
	VerifyWebhookSignature(signatureHeader string, rawBody []byte) bool
}

// InitializePaymentRequest starts a hosted checkout for a buyer.
type InitializePaymentRequest struct {
	Amount        decimal.Decimal
	Currency      string
	Reference     string
	CustomerEmail string
	TransactionID uuid.UUID // carried in metadata, echoed back on charge.success
}

// CheckoutSession is the gateway's answer to a payment initialization.
type CheckoutSession struct {
	CheckoutURL string
	Reference   string
}

// PaymentVerification is the gateway's view of a charge.
type PaymentVerification struct {
	Status        string
	Amount        decimal.Decimal
	TransactionID uuid.UUID
}

// TransferDestination is a seller's bank account.
type TransferDestination struct {
	BankCode      string
	AccountNumber string
	AccountName   string
}

// TransferRequest asks the gateway to pay out to a seller.
type TransferRequest struct {
	Destination   TransferDestination
	Amount        decimal.Decimal
	Currency      string
	Reference     string    // idempotent reference generated by the orchestrator
	TransactionID uuid.UUID // carried in metadata
}

// TransferResult is the gateway's answer to a transfer request.
type TransferResult struct {
	Reference        string
	GatewayReference string
	Status           string
}

// Ledger is the seller wallet bookkeeping service. Every operation requires a
// positive amount and executes as an atomic read-modify-write on the wallet
// row; an operation that would drive a balance negative fails loudly instead
// of clamping.
type Ledger interface {
	CreditPending(ctx context.Context, sellerID uuid.UUID, amount decimal.Decimal) error
	MoveToAvailable(ctx context.Context, sellerID uuid.UUID, amount decimal.Decimal) error
	DeductAvailableBalance(ctx context.Context, sellerID uuid.UUID, amount decimal.Decimal) error
	CreditAvailableBalance(ctx context.Context, sellerID uuid.UUID, amount decimal.Decimal) error
	// CreditPendingTx applies the pending credit inside an existing database
	// transaction so it commits together with the paid transition.
	CreditPendingTx(ctx context.Context, tx pgx.Tx, sellerID uuid.UUID, amount decimal.Decimal) error
	// SettleTx moves amount from pending to available and immediately deducts
	// it as paid out, as one atomic unit inside the caller's transaction.
	SettleTx(ctx context.Context, tx pgx.Tx, sellerID uuid.UUID, amount decimal.Decimal) error
}

// TransactionStateMachine is the single entry point for mutating a
// transaction's status.
type TransactionStateMachine interface {
	// Transition validates the transition table and applies a guarded status
	// update inside tx. applied is false when another writer changed the
	// status first; err reports transitions the table forbids.
	Transition(ctx context.Context, tx pgx.Tx, txn *domain.Transaction, next domain.TransactionStatus, paymentReference *string) (applied bool, err error)
}

// PayoutService drives a payout through not_ready -> processing ->
// completed/failed against the gateway and the ledger.
type PayoutService interface {
	// Initiate returns true when the payout is complete or already in flight,
	// false when it failed or cannot start. It never returns an error:
	// failures are absorbed into the payout record so batch callers are not
	// aborted by one item.
	Initiate(ctx context.Context, transactionID, sellerID uuid.UUID, amount decimal.Decimal) bool
}

// PayoutSweeper retries payouts left in a retryable state.
type PayoutSweeper interface {
	Sweep(ctx context.Context)
	ProcessSellerQueue(ctx context.Context, sellerID uuid.UUID)
}

// WebhookIngestor turns raw gateway webhook deliveries into settlement calls.
type WebhookIngestor interface {
	HandleEvent(ctx context.Context, signatureHeader string, rawBody []byte) error
}

// TransactionService exposes the escrow transaction lifecycle operations.
type TransactionService interface {
	Create(ctx context.Context, req CreateTransactionRequest) (*domain.Transaction, error)
	GetByLink(ctx context.Context, link string) (*domain.Transaction, error)
	Accept(ctx context.Context, link string, buyerID uuid.UUID, buyerEmail string) (*domain.Transaction, error)
	Checkout(ctx context.Context, transactionID, buyerID uuid.UUID) (*CheckoutSession, error)
	Cancel(ctx context.Context, transactionID, actorID uuid.UUID) error
	MarkAssetTransferred(ctx context.Context, transactionID, sellerID uuid.UUID) error
	ConfirmReceipt(ctx context.Context, transactionID, buyerID uuid.UUID) error
}

// CreateTransactionRequest holds validated input for creating an escrow deal.
type CreateTransactionRequest struct {
	SellerID   uuid.UUID
	BuyerEmail string
	ItemName   string
	Price      decimal.Decimal
}

// NotificationSink publishes settlement notices for asynchronous consumption.
// Implementations must never block settlement: callers log and drop on error.
type NotificationSink interface {
	Publish(ctx context.Context, notice domain.SettlementNotice) error
}

// EventCache is the fast-path webhook dedup check backed by Redis. It is the
// first line of defense only; the guarded status updates underneath remain
// authoritative. Events are marked seen only after processing commits, so a
// failed delivery stays eligible for the provider's redelivery.
type EventCache interface {
	// Seen reports whether the event reference was already processed.
	Seen(ctx context.Context, eventKey string) (bool, error)
	// MarkSeen records the event reference as processed.
	MarkSeen(ctx context.Context, eventKey string) error
}
