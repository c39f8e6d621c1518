package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"escrow-settlement/internal/core/domain"
	"escrow-settlement/internal/core/ports"
	"escrow-settlement/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TransactionServiceImpl implements ports.TransactionService: the seller and
// buyer facing lifecycle operations around the settlement core.
type TransactionServiceImpl struct {
	txRepo     ports.TransactionRepository
	stateMach  ports.TransactionStateMachine
	gateway    ports.GatewayClient
	transactor ports.DBTransactor
	sweeper    ports.PayoutSweeper
	notifier   ports.NotificationSink
	currency   string
	log        zerolog.Logger
}

// NewTransactionService creates a new TransactionServiceImpl.
func NewTransactionService(
	txRepo ports.TransactionRepository,
	stateMach ports.TransactionStateMachine,
	gateway ports.GatewayClient,
	transactor ports.DBTransactor,
	sweeper ports.PayoutSweeper,
	notifier ports.NotificationSink,
	currency string,
	log zerolog.Logger,
) *TransactionServiceImpl {
	return &TransactionServiceImpl{
		txRepo:     txRepo,
		stateMach:  stateMach,
		gateway:    gateway,
		transactor: transactor,
		sweeper:    sweeper,
		notifier:   notifier,
		currency:   currency,
		log:        log,
	}
}

// Create opens a new escrow deal with a shareable unique link. The 5%
// platform commission is derived here and charged to the buyer on top of the
// price at checkout.
func (s *TransactionServiceImpl) Create(ctx context.Context, req ports.CreateTransactionRequest) (*domain.Transaction, error) {
	if !req.Price.IsPositive() {
		return nil, apperror.Validation("price must be positive")
	}
	if req.BuyerEmail == "" {
		return nil, apperror.Validation("buyer email is required")
	}
	if req.ItemName == "" {
		return nil, apperror.Validation("item name is required")
	}

	now := time.Now().UTC()
	txn := &domain.Transaction{
		ID:         uuid.New(),
		SellerID:   req.SellerID,
		BuyerEmail: strings.ToLower(req.BuyerEmail),
		ItemName:   req.ItemName,
		Price:      req.Price,
		Commission: domain.CommissionFor(req.Price),
		Status:     domain.TransactionStatusPending,
		UniqueLink: strings.ReplaceAll(uuid.New().String(), "-", ""),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.txRepo.Create(ctx, txn); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create transaction: %w", err))
	}

	s.log.Info().
		Str("transaction_id", txn.ID.String()).
		Str("seller_id", txn.SellerID.String()).
		Str("price", txn.Price.String()).
		Msg("escrow transaction created")
	return txn, nil
}

// GetByLink resolves a transaction from its shareable link.
func (s *TransactionServiceImpl) GetByLink(ctx context.Context, link string) (*domain.Transaction, error) {
	txn, err := s.txRepo.GetByUniqueLink(ctx, link)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load transaction: %w", err))
	}
	if txn == nil {
		return nil, apperror.ErrNotFound("transaction")
	}
	return txn, nil
}

// Accept assigns the buyer to the transaction, exactly once. Only the invited
// email may accept, and only while the deal is still pending.
func (s *TransactionServiceImpl) Accept(ctx context.Context, link string, buyerID uuid.UUID, buyerEmail string) (*domain.Transaction, error) {
	txn, err := s.GetByLink(ctx, link)
	if err != nil {
		return nil, err
	}
	if txn.Status != domain.TransactionStatusPending {
		return nil, apperror.ErrForbidden("accept a transaction that is no longer pending")
	}
	if txn.Accepted() {
		return nil, apperror.ErrAlreadyAccepted()
	}
	if !strings.EqualFold(txn.BuyerEmail, buyerEmail) {
		return nil, apperror.ErrBuyerEmailMismatch()
	}

	assigned, err := s.txRepo.AssignBuyer(ctx, txn.ID, buyerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("assign buyer: %w", err))
	}
	if !assigned {
		return nil, apperror.ErrAlreadyAccepted()
	}
	txn.BuyerID = &buyerID

	s.log.Info().
		Str("transaction_id", txn.ID.String()).
		Str("buyer_id", buyerID.String()).
		Msg("buyer accepted escrow transaction")
	return txn, nil
}

// Checkout initializes a hosted gateway payment for the accepted buyer. The
// buyer pays price plus commission; the transaction id rides in the metadata
// so the charge.success webhook can find its way back.
func (s *TransactionServiceImpl) Checkout(ctx context.Context, transactionID, buyerID uuid.UUID) (*ports.CheckoutSession, error) {
	txn, err := s.loadByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.BuyerID == nil || *txn.BuyerID != buyerID {
		return nil, apperror.ErrForbidden("pay for this transaction")
	}
	if txn.Status != domain.TransactionStatusPending {
		return nil, apperror.Validation("transaction is not awaiting payment")
	}

	reference := fmt.Sprintf("ESCROW-%s-%d", txn.ID, time.Now().Unix())
	session, err := s.gateway.InitializePayment(ctx, ports.InitializePaymentRequest{
		Amount:        txn.TotalCharge(),
		Currency:      s.currency,
		Reference:     reference,
		CustomerEmail: txn.BuyerEmail,
		TransactionID: txn.ID,
	})
	if err != nil {
		return nil, apperror.ErrGateway(err)
	}
	return session, nil
}

// Cancel voids a pending deal. Before a buyer accepts, only the seller may
// cancel; afterwards, only the buyer.
func (s *TransactionServiceImpl) Cancel(ctx context.Context, transactionID, actorID uuid.UUID) error {
	txn, err := s.loadByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if txn.Accepted() {
		if *txn.BuyerID != actorID {
			return apperror.ErrForbidden("cancel this transaction")
		}
	} else if txn.SellerID != actorID {
		return apperror.ErrForbidden("cancel this transaction")
	}

	return s.transition(ctx, txn, domain.TransactionStatusCancelled, nil)
}

// MarkAssetTransferred is the seller's declaration that the goods went out.
func (s *TransactionServiceImpl) MarkAssetTransferred(ctx context.Context, transactionID, sellerID uuid.UUID) error {
	txn, err := s.loadByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if txn.SellerID != sellerID {
		return apperror.ErrForbidden("mark this transaction transferred")
	}
	return s.transition(ctx, txn, domain.TransactionStatusAssetTransferred, nil)
}

// ConfirmReceipt is the buyer's confirmation that the goods arrived. It
// completes the deal and immediately drains the seller's unattempted payout
// queue.
func (s *TransactionServiceImpl) ConfirmReceipt(ctx context.Context, transactionID, buyerID uuid.UUID) error {
	txn, err := s.loadByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if txn.BuyerID == nil || *txn.BuyerID != buyerID {
		return apperror.ErrForbidden("confirm this transaction")
	}
	if err := s.transition(ctx, txn, domain.TransactionStatusCompleted, nil); err != nil {
		return err
	}

	s.publish(ctx, "transaction.completed", txn)
	if s.sweeper != nil {
		s.sweeper.ProcessSellerQueue(ctx, txn.SellerID)
	}
	return nil
}

func (s *TransactionServiceImpl) loadByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	txn, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load transaction: %w", err))
	}
	if txn == nil {
		return nil, apperror.ErrNotFound("transaction")
	}
	return txn, nil
}

// transition runs one state machine step in its own database transaction. A
// guard miss means a concurrent writer advanced the status first; surfaced as
// an invalid transition from the caller's point of view.
func (s *TransactionServiceImpl) transition(ctx context.Context, txn *domain.Transaction, next domain.TransactionStatus, paymentReference *string) error {
	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	applied, err := s.stateMach.Transition(ctx, tx, txn, next, paymentReference)
	if err != nil {
		return err
	}
	if !applied {
		return apperror.ErrInvalidTransition(string(txn.Status), string(next))
	}
	if err := tx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

func (s *TransactionServiceImpl) publish(ctx context.Context, event string, txn *domain.Transaction) {
	if s.notifier == nil {
		return
	}
	notice := domain.SettlementNotice{
		Event:         event,
		TransactionID: txn.ID,
		SellerID:      txn.SellerID,
		Amount:        txn.Price,
		OccurredAt:    time.Now().Unix(),
	}
	if err := s.notifier.Publish(ctx, notice); err != nil {
		s.log.Warn().Err(err).Str("event", event).Msg("notification publish failed, dropping")
	}
}
