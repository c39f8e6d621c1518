package service

import (
	"context"
	"fmt"
	"time"

	"escrow-settlement/internal/core/domain"
	"escrow-settlement/internal/core/ports"
	"escrow-settlement/pkg/apperror"

	"github.com/rs/zerolog"
)

// WebhookServiceImpl implements ports.WebhookIngestor. It is the only
// external-facing entry point into settlement: gateway events are verified,
// deduplicated and turned into state machine, ledger and payout calls.
type WebhookServiceImpl struct {
	gateway    ports.GatewayClient
	txRepo     ports.TransactionRepository
	payoutRepo ports.PayoutRepository
	ledger     ports.Ledger
	stateMach  ports.TransactionStateMachine
	payouts    ports.PayoutService
	eventCache ports.EventCache
	transactor ports.DBTransactor
	notifier   ports.NotificationSink
	log        zerolog.Logger
}

// NewWebhookService creates a new WebhookServiceImpl. eventCache and notifier
// may be nil, which disables the dedup fast path and notifications.
func NewWebhookService(
	gateway ports.GatewayClient,
	txRepo ports.TransactionRepository,
	payoutRepo ports.PayoutRepository,
	ledger ports.Ledger,
	stateMach ports.TransactionStateMachine,
	payouts ports.PayoutService,
	eventCache ports.EventCache,
	transactor ports.DBTransactor,
	notifier ports.NotificationSink,
	log zerolog.Logger,
) *WebhookServiceImpl {
	return &WebhookServiceImpl{
		gateway:    gateway,
		txRepo:     txRepo,
		payoutRepo: payoutRepo,
		ledger:     ledger,
		stateMach:  stateMach,
		payouts:    payouts,
		eventCache: eventCache,
		transactor: transactor,
		notifier:   notifier,
		log:        log,
	}
}

// HandleEvent verifies the signature over the raw body, parses the event and
// dispatches it. Invalid signatures reject with 401 and no state change; the
// provider's own retry policy governs redelivery.
func (s *WebhookServiceImpl) HandleEvent(ctx context.Context, signatureHeader string, rawBody []byte) error {
	if !s.gateway.VerifyWebhookSignature(signatureHeader, rawBody) {
		s.log.Warn().Msg("webhook: signature verification failed")
		return apperror.ErrInvalidSignature()
	}

	event, err := domain.ParseGatewayEvent(rawBody)
	if err != nil {
		return apperror.Validation(err.Error())
	}

	switch e := event.(type) {
	case domain.ChargeSucceeded:
		return s.handleChargeSucceeded(ctx, e)
	case domain.TransferSucceeded:
		return s.handleTransferSucceeded(ctx, e)
	case domain.TransferFailed:
		return s.handleTransferFailed(ctx, e)
	case domain.UnknownEvent:
		s.log.Info().Str("event", e.Name).Msg("webhook: ignoring unknown event")
		return nil
	default:
		return nil
	}
}

// handleChargeSucceeded credits the seller's pending balance and advances the
// transaction to paid as one database transaction, then kicks off the payout.
// The credit commits together with the transition, preserving the invariant
// that status paid implies funds were credited.
func (s *WebhookServiceImpl) handleChargeSucceeded(ctx context.Context, e domain.ChargeSucceeded) error {
	dedupKey := "charge:" + e.Reference
	if s.alreadySeen(ctx, dedupKey) {
		s.log.Info().Str("reference", e.Reference).Msg("webhook: duplicate charge.success, skipping")
		return nil
	}

	txn, err := s.txRepo.GetByID(ctx, e.TransactionID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load transaction: %w", err))
	}
	if txn == nil {
		return apperror.ErrNotFound("transaction")
	}
	if txn.Status != domain.TransactionStatusPending {
		// Already paid (or further along): duplicate delivery, nothing to do.
		s.log.Info().
			Str("transaction_id", txn.ID.String()).
			Str("status", string(txn.Status)).
			Msg("webhook: charge.success for non-pending transaction, skipping")
		return nil
	}

	if !e.Amount.IsZero() && !e.Amount.Equal(txn.TotalCharge()) {
		s.log.Error().
			Str("transaction_id", txn.ID.String()).
			Str("charged", e.Amount.String()).
			Str("expected", txn.TotalCharge().String()).
			Msg("webhook: charge amount mismatch, refusing to credit")
		return apperror.Validation(fmt.Sprintf("charge amount %s does not match expected %s", e.Amount, txn.TotalCharge()))
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// Credit before transition: if the credit fails the transition must not
	// happen, and the shared transaction enforces the converse as well.
	if err := s.ledger.CreditPendingTx(ctx, tx, txn.SellerID, txn.Price); err != nil {
		return err
	}
	applied, err := s.stateMach.Transition(ctx, tx, txn, domain.TransactionStatusPaid, &e.Reference)
	if err != nil {
		return err
	}
	if !applied {
		// A concurrent delivery won the race; its commit carries the credit.
		return nil
	}
	if err := tx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.markSeen(ctx, dedupKey)

	s.log.Info().
		Str("transaction_id", txn.ID.String()).
		Str("reference", e.Reference).
		Str("amount", txn.Price.String()).
		Msg("webhook: buyer payment settled into pending balance")
	s.publish(ctx, "transaction.paid", txn)

	// Payout-on-receipt: same-gateway design pays the seller out immediately.
	// Failure here is not an error for the webhook; the scheduler retries.
	s.payouts.Initiate(ctx, txn.ID, txn.SellerID, txn.Price)
	return nil
}

// handleTransferSucceeded finalizes a payout the gateway confirmed
// asynchronously. When the synchronous path already completed it, this is a
// no-op.
func (s *WebhookServiceImpl) handleTransferSucceeded(ctx context.Context, e domain.TransferSucceeded) error {
	payout, err := s.payoutRepo.GetByTransferReference(ctx, e.Reference)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load payout: %w", err))
	}
	if payout == nil {
		return apperror.ErrNotFound("payout")
	}
	if payout.Status == domain.PayoutStatusCompleted {
		return nil
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	applied, err := s.payoutRepo.MarkCompleted(ctx, tx, payout.ID, e.Reference)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("mark payout completed: %w", err))
	}
	if !applied {
		return nil
	}
	if err := s.ledger.SettleTx(ctx, tx, payout.SellerID, payout.Amount); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("payout_id", payout.ID.String()).
		Str("reference", e.Reference).
		Msg("webhook: transfer confirmed, payout completed")
	return nil
}

// handleTransferFailed marks the payout failed for the retry sweep. If the
// transfer was reversed after settlement, the funds go back to the seller's
// available balance.
func (s *WebhookServiceImpl) handleTransferFailed(ctx context.Context, e domain.TransferFailed) error {
	payout, err := s.payoutRepo.GetByTransferReference(ctx, e.Reference)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load payout: %w", err))
	}
	if payout == nil {
		return apperror.ErrNotFound("payout")
	}

	// Two guarded demotions instead of one snapshot read: the payout can move
	// processing to completed between a read and the update, so restoration is
	// decided by which demotion actually applied.
	now := time.Now().UTC()
	demoted, err := s.payoutRepo.MarkFailed(ctx, payout.ID, domain.PayoutStatusProcessing, e.Reason, now)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("mark payout failed: %w", err))
	}
	if !demoted {
		reversed, err := s.payoutRepo.MarkFailed(ctx, payout.ID, domain.PayoutStatusCompleted, e.Reason, now)
		if err != nil {
			return apperror.InternalError(fmt.Errorf("mark payout failed: %w", err))
		}
		if !reversed {
			return nil
		}
		// The settled funds came back from the bank; restore them as
		// immediately spendable.
		if err := s.ledger.CreditAvailableBalance(ctx, payout.SellerID, payout.Amount); err != nil {
			return err
		}
	}

	s.log.Warn().
		Str("payout_id", payout.ID.String()).
		Str("reference", e.Reference).
		Str("reason", e.Reason).
		Bool("reversed", e.Reversed).
		Msg("webhook: transfer failed")
	return nil
}

// alreadySeen consults the Redis dedup cache. Cache errors fall through to
// the database-level guards, matching the fast-path-only contract.
func (s *WebhookServiceImpl) alreadySeen(ctx context.Context, key string) bool {
	if s.eventCache == nil {
		return false
	}
	seen, err := s.eventCache.Seen(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("webhook: event cache unavailable, falling through to DB guards")
		return false
	}
	return seen
}

func (s *WebhookServiceImpl) markSeen(ctx context.Context, key string) {
	if s.eventCache == nil {
		return
	}
	if err := s.eventCache.MarkSeen(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("webhook: event cache mark failed")
	}
}

func (s *WebhookServiceImpl) publish(ctx context.Context, event string, txn *domain.Transaction) {
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
