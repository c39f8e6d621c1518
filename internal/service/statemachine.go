package service

import (
	"context"
	"fmt"

	"escrow-settlement/internal/core/domain"
	"escrow-settlement/internal/core/ports"
	"escrow-settlement/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// StateMachine implements ports.TransactionStateMachine. It is the only code
// path that writes a transaction's status.
type StateMachine struct {
	txRepo ports.TransactionRepository
	log    zerolog.Logger
}

// NewStateMachine creates a new StateMachine.
func NewStateMachine(txRepo ports.TransactionRepository, log zerolog.Logger) *StateMachine {
	return &StateMachine{txRepo: txRepo, log: log}
}

// Transition validates the transition table and applies a guarded status
// update inside tx. The guard compares against the status the caller read, so
// a concurrent transition surfaces as applied == false rather than a silent
// overwrite. On success the in-memory transaction is updated to match.
func (m *StateMachine) Transition(ctx context.Context, tx pgx.Tx, txn *domain.Transaction, next domain.TransactionStatus, paymentReference *string) (bool, error) {
	if !txn.Status.CanTransitionTo(next) {
		return false, apperror.ErrInvalidTransition(string(txn.Status), string(next))
	}
	if next == domain.TransactionStatusPaid && (paymentReference == nil || *paymentReference == "") {
		return false, apperror.ErrPaymentReferenceRequired()
	}

	applied, err := m.txRepo.UpdateStatus(ctx, tx, txn.ID, txn.Status, next, paymentReference)
	if err != nil {
		return false, apperror.InternalError(fmt.Errorf("update transaction status: %w", err))
	}
	if !applied {
		m.log.Warn().
			Str("transaction_id", txn.ID.String()).
			Str("from", string(txn.Status)).
			Str("to", string(next)).
			Msg("status transition lost a concurrent race")
		return false, nil
	}

	txn.Status = next
	if paymentReference != nil {
		txn.PaymentReference = paymentReference
	}
	m.log.Info().
		Str("transaction_id", txn.ID.String()).
		Str("status", string(next)).
		Msg("transaction status advanced")
	return true, nil
}
