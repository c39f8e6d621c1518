package service

import (
	"context"
	"time"

	"escrow-settlement/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// SchedulerConfig tunes the retry sweep cadence and the gateway throttle.
type SchedulerConfig struct {
	SweepInterval time.Duration
	SweepLimit    int
	TransferRate  float64 // gateway transfer calls per second
	TransferBurst int
}

// PayoutScheduler implements ports.PayoutSweeper. It periodically re-drives
// the orchestrator for payouts stuck in a retryable state, sequentially and
// throttled so gateway rate limits are respected. The limiter is a throttle,
// not a concurrency primitive: correctness under overlap comes from the
// guarded claims inside the orchestrator.
type PayoutScheduler struct {
	payoutRepo ports.PayoutRepository
	walletRepo ports.WalletRepository
	payouts    ports.PayoutService
	limiter    *rate.Limiter
	cfg        SchedulerConfig
	log        zerolog.Logger
}

// NewPayoutScheduler creates a new PayoutScheduler.
func NewPayoutScheduler(payoutRepo ports.PayoutRepository, walletRepo ports.WalletRepository, payouts ports.PayoutService, cfg SchedulerConfig, log zerolog.Logger) *PayoutScheduler {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = 30 * time.Minute
	}
	if cfg.SweepLimit <= 0 {
		cfg.SweepLimit = 100
	}
	if cfg.TransferRate <= 0 {
		cfg.TransferRate = 1
	}
	if cfg.TransferBurst <= 0 {
		cfg.TransferBurst = 1
	}
	return &PayoutScheduler{
		payoutRepo: payoutRepo,
		walletRepo: walletRepo,
		payouts:    payouts,
		limiter:    rate.NewLimiter(rate.Limit(cfg.TransferRate), cfg.TransferBurst),
		cfg:        cfg,
		log:        log,
	}
}

// Run sweeps on the configured interval until ctx is cancelled.
func (s *PayoutScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	s.log.Info().Dur("interval", s.cfg.SweepInterval).Msg("payout scheduler started")
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("payout scheduler stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep retries every due payout once. One payout's failure does not stop the
// sweep: Initiate absorbs its own errors.
func (s *PayoutScheduler) Sweep(ctx context.Context) {
	due, err := s.payoutRepo.ListDue(ctx, time.Now().UTC(), s.cfg.SweepLimit)
	if err != nil {
		s.log.Error().Err(err).Msg("scheduler: listing due payouts failed")
		return
	}
	if len(due) == 0 {
		return
	}

	s.log.Info().Int("count", len(due)).Msg("scheduler: sweeping due payouts")
	completed := 0
	for i := range due {
		p := &due[i]
		if err := s.limiter.Wait(ctx); err != nil {
			return // context cancelled mid-sweep
		}
		if s.payouts.Initiate(ctx, p.TransactionID, p.SellerID, p.Amount) {
			completed++
		}
	}
	s.log.Info().Int("attempted", len(due)).Int("succeeded", completed).Msg("scheduler: sweep finished")
}

// ProcessSellerQueue drives the never-attempted payouts of one seller,
// typically right after one of their transactions completes.
func (s *PayoutScheduler) ProcessSellerQueue(ctx context.Context, sellerID uuid.UUID) {
	queue, err := s.payoutRepo.ListUnattemptedBySeller(ctx, sellerID)
	if err != nil {
		s.log.Error().Err(err).Str("seller_id", sellerID.String()).Msg("scheduler: listing seller queue failed")
		return
	}
	for i := range queue {
		p := &queue[i]
		if err := s.limiter.Wait(ctx); err != nil {
			return
		}
		s.payouts.Initiate(ctx, p.TransactionID, p.SellerID, p.Amount)
	}

	// Bookkeeping only; the wallet may not exist yet if nothing was credited.
	if err := s.walletRepo.TouchSettlementCheck(ctx, sellerID, time.Now().UTC()); err != nil {
		s.log.Warn().Err(err).Str("seller_id", sellerID.String()).Msg("scheduler: recording settlement check failed")
	}
}
