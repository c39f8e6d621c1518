package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"escrow-settlement/internal/core/domain"
	"escrow-settlement/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// PayoutConfig tunes the retry backoff applied to failed transfers.
type PayoutConfig struct {
	Currency     string
	RetryBackoff time.Duration // base, doubled per prior retry
	MaxBackoff   time.Duration
}

// PayoutServiceImpl implements ports.PayoutService. All gateway and ledger
// failures are absorbed into the payout record and logged; Initiate never
// panics or returns an error, so webhook handling and scheduler sweeps keep
// going when one payout fails.
type PayoutServiceImpl struct {
	payoutRepo ports.PayoutRepository
	sellerRepo ports.SellerRepository
	ledger     ports.Ledger
	gateway    ports.GatewayClient
	transactor ports.DBTransactor
	notifier   ports.NotificationSink
	cfg        PayoutConfig
	log        zerolog.Logger
}

// NewPayoutService creates a new PayoutServiceImpl.
func NewPayoutService(
	payoutRepo ports.PayoutRepository,
	sellerRepo ports.SellerRepository,
	ledger ports.Ledger,
	gateway ports.GatewayClient,
	transactor ports.DBTransactor,
	notifier ports.NotificationSink,
	cfg PayoutConfig,
	log zerolog.Logger,
) *PayoutServiceImpl {
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 15 * time.Minute
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 6 * time.Hour
	}
	return &PayoutServiceImpl{
		payoutRepo: payoutRepo,
		sellerRepo: sellerRepo,
		ledger:     ledger,
		gateway:    gateway,
		transactor: transactor,
		notifier:   notifier,
		cfg:        cfg,
		log:        log,
	}
}

// Initiate drives the payout for one transaction. Duplicate triggers from
// overlapping webhook and scheduler paths are expected: an existing payout in
// processing or completed short-circuits to true without a second transfer
// call, and the processing claim underneath is a guarded status update, so
// two racing callers cannot both reach the gateway.
func (s *PayoutServiceImpl) Initiate(ctx context.Context, transactionID, sellerID uuid.UUID, amount decimal.Decimal) bool {
	payout, err := s.payoutRepo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		s.log.Error().Err(err).Str("transaction_id", transactionID.String()).Msg("payout: lookup failed")
		return false
	}
	if payout != nil && payout.InFlight() {
		return true
	}

	seller, err := s.sellerRepo.GetByID(ctx, sellerID)
	if err != nil {
		s.log.Error().Err(err).Str("seller_id", sellerID.String()).Msg("payout: seller lookup failed")
		return false
	}
	if seller == nil || !seller.HasPayoutDetails() {
		// No retry is possible until the seller configures bank details, so
		// no payout row is created either.
		s.log.Warn().Str("seller_id", sellerID.String()).Msg("payout: seller has no bank details, skipping")
		return false
	}

	if payout == nil {
		now := time.Now().UTC()
		payout, err = s.payoutRepo.Create(ctx, &domain.Payout{
			ID:            uuid.New(),
			TransactionID: transactionID,
			SellerID:      sellerID,
			Amount:        amount,
			Status:        domain.PayoutStatusNotReady,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil {
			s.log.Error().Err(err).Str("transaction_id", transactionID.String()).Msg("payout: create failed")
			return false
		}
		if payout.InFlight() {
			// Create raced with another worker that already claimed it.
			return true
		}
	}

	claimed, err := s.payoutRepo.ClaimProcessing(ctx, payout.ID, payout.Status)
	if err != nil {
		s.log.Error().Err(err).Str("payout_id", payout.ID.String()).Msg("payout: claim failed")
		return false
	}
	if !claimed {
		// Another worker holds the claim; treat as in flight.
		return true
	}
	if payout.Status == domain.PayoutStatusFailed {
		// The claim counted this attempt; keep the local copy in step so the
		// backoff math sees the same number the row does.
		payout.RetryCount++
	}
	payout.Status = domain.PayoutStatusProcessing

	reference := fmt.Sprintf("PAYOUT-%s-%d", payout.ID, time.Now().Unix())
	if err := s.payoutRepo.SetTransferReference(ctx, payout.ID, reference); err != nil {
		s.fail(ctx, payout, fmt.Sprintf("store transfer reference: %v", err))
		return false
	}

	result, err := s.gateway.TransferToSeller(ctx, ports.TransferRequest{
		Destination: ports.TransferDestination{
			BankCode:      *seller.BankCode,
			AccountNumber: *seller.AccountNumber,
			AccountName:   derefOrEmpty(seller.AccountName),
		},
		Amount:        amount,
		Currency:      s.cfg.Currency,
		Reference:     reference,
		TransactionID: transactionID,
	})
	if err != nil {
		// Timeouts, rejections and network faults all land here. The ledger
		// is untouched at this point, so the funds stay where they were.
		s.fail(ctx, payout, err.Error())
		return false
	}

	if err := s.finalize(ctx, payout, result.GatewayReference); err != nil {
		if errors.Is(err, errPayoutFinalizedElsewhere) {
			// The gateway's transfer.success webhook beat us to it: the payout
			// is already completed and settled, so there is nothing to undo.
			s.log.Info().Str("payout_id", payout.ID.String()).Msg("payout: already finalized by webhook")
			return true
		}
		s.fail(ctx, payout, fmt.Sprintf("finalize payout: %v", err))
		return false
	}

	s.log.Info().
		Str("payout_id", payout.ID.String()).
		Str("transaction_id", transactionID.String()).
		Str("amount", amount.String()).
		Str("transfer_reference", reference).
		Msg("payout completed")
	s.publish(ctx, "payout.completed", transactionID, sellerID, amount)
	return true
}

// errPayoutFinalizedElsewhere signals the completed guard missed because a
// concurrent path (the transfer.success webhook) already finalized the payout.
var errPayoutFinalizedElsewhere = errors.New("payout already finalized by another writer")

// finalize commits the completed status and the ledger settlement as one
// database transaction, so a crash cannot leave the funds deducted without a
// completed payout or vice versa. The guarded status update comes first: the
// row lock it takes serializes against the transfer.success webhook, so
// exactly one of the two settles.
func (s *PayoutServiceImpl) finalize(ctx context.Context, payout *domain.Payout, gatewayReference string) error {
	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	applied, err := s.payoutRepo.MarkCompleted(ctx, tx, payout.ID, gatewayReference)
	if err != nil {
		return err
	}
	if !applied {
		return errPayoutFinalizedElsewhere
	}
	if err := s.ledger.SettleTx(ctx, tx, payout.SellerID, payout.Amount); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// fail marks the payout failed with a reason and a due time for the retry
// sweep. The demotion is guarded on processing: a payout a concurrent webhook
// already completed stays completed, and only the reversal path may demote
// from completed. The retry count is not touched here; it increments when a
// retry claims the payout.
func (s *PayoutServiceImpl) fail(ctx context.Context, payout *domain.Payout, reason string) {
	nextRetry := time.Now().UTC().Add(s.backoff(payout.RetryCount))
	demoted, err := s.payoutRepo.MarkFailed(ctx, payout.ID, domain.PayoutStatusProcessing, reason, nextRetry)
	if err != nil {
		s.log.Error().Err(err).Str("payout_id", payout.ID.String()).Msg("payout: mark failed errored")
	}
	if err == nil && !demoted {
		s.log.Info().Str("payout_id", payout.ID.String()).Msg("payout: no longer processing, leaving status untouched")
		return
	}
	s.log.Warn().
		Str("payout_id", payout.ID.String()).
		Str("transaction_id", payout.TransactionID.String()).
		Str("reason", reason).
		Time("next_retry_at", nextRetry).
		Msg("payout failed, scheduled for retry")
	s.publish(ctx, "payout.failed", payout.TransactionID, payout.SellerID, payout.Amount)
}

func (s *PayoutServiceImpl) backoff(retryCount int) time.Duration {
	shift := retryCount
	if shift > 5 {
		shift = 5
	}
	d := s.cfg.RetryBackoff << uint(shift)
	if d > s.cfg.MaxBackoff {
		d = s.cfg.MaxBackoff
	}
	return d
}

// publish hands a settlement notice to the notification sink without letting
// it affect the payout outcome.
func (s *PayoutServiceImpl) publish(ctx context.Context, event string, transactionID, sellerID uuid.UUID, amount decimal.Decimal) {
	if s.notifier == nil {
		return
	}
	notice := domain.SettlementNotice{
		Event:         event,
		TransactionID: transactionID,
		SellerID:      sellerID,
		Amount:        amount,
		OccurredAt:    time.Now().Unix(),
	}
	if err := s.notifier.Publish(ctx, notice); err != nil {
		s.log.Warn().Err(err).Str("event", event).Msg("notification publish failed, dropping")
	}
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
