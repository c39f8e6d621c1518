package handler

import (
	"escrow-settlement/internal/adapter/http/dto"
	"escrow-settlement/internal/core/domain"
	"escrow-settlement/internal/core/ports"
	"escrow-settlement/pkg/apperror"
	"escrow-settlement/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PayoutHandler handles payout status endpoints.
type PayoutHandler struct {
	payoutRepo ports.PayoutRepository
	txnRepo    ports.TransactionRepository
}

// NewPayoutHandler creates a new PayoutHandler.
func NewPayoutHandler(payoutRepo ports.PayoutRepository, txnRepo ports.TransactionRepository) *PayoutHandler {
	return &PayoutHandler{payoutRepo: payoutRepo, txnRepo: txnRepo}
}

// GetByTransaction handles GET /api/v1/transactions/:id/payout. Only the
// seller of the transaction may read its payout.
func (h *PayoutHandler) GetByTransaction(c *gin.Context) {
	sellerID, ok := userID(c)
	if !ok {
		response.Error(c, apperror.ErrForbidden("access this resource"))
		return
	}

	txnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid transaction id"))
		return
	}

	txn, err := h.txnRepo.GetByID(c.Request.Context(), txnID)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	if txn == nil {
		response.Error(c, apperror.ErrNotFound("transaction"))
		return
	}
	if txn.SellerID != sellerID {
		response.Error(c, apperror.ErrForbidden("view this payout"))
		return
	}

	payout, err := h.payoutRepo.GetByTransactionID(c.Request.Context(), txnID)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	if payout == nil {
		response.Error(c, apperror.ErrNotFound("payout"))
		return
	}

	response.OK(c, toPayoutResponse(payout))
}

// toPayoutResponse converts domain.Payout to DTO.
func toPayoutResponse(p *domain.Payout) dto.PayoutResponse {
	resp := dto.PayoutResponse{
		ID:            p.ID.String(),
		TransactionID: p.TransactionID.String(),
		Amount:        p.Amount.String(),
		Status:        string(p.Status),
		RetryCount:    p.RetryCount,
		CreatedAt:     p.CreatedAt.Format(timeFormat),
	}
	if p.TransferReference != nil {
		s := *p.TransferReference
		resp.TransferReference = &s
	}
	if p.FailureReason != nil {
		s := *p.FailureReason
		resp.FailureReason = &s
	}
	if p.NextRetryAt != nil {
		s := p.NextRetryAt.Format(timeFormat)
		resp.NextRetryAt = &s
	}
	return resp
}
