package handler

import (
	"context"

	"escrow-settlement/internal/adapter/http/dto"
	"escrow-settlement/internal/adapter/http/middleware"
	"escrow-settlement/internal/core/domain"
	"escrow-settlement/internal/core/ports"
	"escrow-settlement/pkg/apperror"
	"escrow-settlement/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const timeFormat = "2006-01-02T15:04:05Z07:00"

// TransactionHandler handles escrow transaction lifecycle endpoints.
type TransactionHandler struct {
	txnSvc ports.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(txnSvc ports.TransactionService) *TransactionHandler {
	return &TransactionHandler{txnSvc: txnSvc}
}

// Create handles POST /api/v1/transactions.
func (h *TransactionHandler) Create(c *gin.Context) {
	sellerID, ok := userID(c)
	if !ok {
		response.Error(c, apperror.ErrForbidden("access this resource"))
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		response.Error(c, apperror.Validation("price must be a decimal number"))
		return
	}

	txn, err := h.txnSvc.Create(c.Request.Context(), ports.CreateTransactionRequest{
		SellerID:   sellerID,
		BuyerEmail: req.BuyerEmail,
		ItemName:   req.ItemName,
		Price:      price,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toTransactionResponse(txn))
}

// GetByLink handles GET /api/v1/links/:link.
func (h *TransactionHandler) GetByLink(c *gin.Context) {
	txn, err := h.txnSvc.GetByLink(c.Request.Context(), c.Param("link"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toTransactionResponse(txn))
}

// Accept handles POST /api/v1/links/:link/accept.
func (h *TransactionHandler) Accept(c *gin.Context) {
	buyerID, ok := userID(c)
	if !ok {
		response.Error(c, apperror.ErrForbidden("access this resource"))
		return
	}

	txn, err := h.txnSvc.Accept(c.Request.Context(), c.Param("link"), buyerID, userEmail(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toTransactionResponse(txn))
}

// Checkout handles POST /api/v1/transactions/:id/checkout.
func (h *TransactionHandler) Checkout(c *gin.Context) {
	buyerID, ok := userID(c)
	if !ok {
		response.Error(c, apperror.ErrForbidden("access this resource"))
		return
	}

	txnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid transaction id"))
		return
	}

	session, err := h.txnSvc.Checkout(c.Request.Context(), txnID, buyerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.CheckoutResponse{
		CheckoutURL: session.CheckoutURL,
		Reference:   session.Reference,
	})
}

// Cancel handles POST /api/v1/transactions/:id/cancel.
func (h *TransactionHandler) Cancel(c *gin.Context) {
	h.lifecycleAction(c, h.txnSvc.Cancel)
}

// MarkAssetTransferred handles POST /api/v1/transactions/:id/asset-transferred.
func (h *TransactionHandler) MarkAssetTransferred(c *gin.Context) {
	h.lifecycleAction(c, h.txnSvc.MarkAssetTransferred)
}

// ConfirmReceipt handles POST /api/v1/transactions/:id/confirm-receipt.
func (h *TransactionHandler) ConfirmReceipt(c *gin.Context) {
	h.lifecycleAction(c, h.txnSvc.ConfirmReceipt)
}

func (h *TransactionHandler) lifecycleAction(c *gin.Context, action func(ctx context.Context, txnID, actorID uuid.UUID) error) {
	actorID, ok := userID(c)
	if !ok {
		response.Error(c, apperror.ErrForbidden("access this resource"))
		return
	}

	txnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid transaction id"))
		return
	}

	if err := action(c.Request.Context(), txnID, actorID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"status": "ok"})
}

// userID reads the authenticated user ID from the request context.
func userID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(middleware.CtxUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// userEmail reads the authenticated user email from the request context.
func userEmail(c *gin.Context) string {
	v, ok := c.Get(middleware.CtxUserEmail)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// toTransactionResponse converts domain.Transaction to DTO.
func toTransactionResponse(txn *domain.Transaction) dto.TransactionResponse {
	resp := dto.TransactionResponse{
		ID:          txn.ID.String(),
		SellerID:    txn.SellerID.String(),
		BuyerEmail:  txn.BuyerEmail,
		ItemName:    txn.ItemName,
		Price:       txn.Price.String(),
		Commission:  txn.Commission.String(),
		TotalCharge: txn.TotalCharge().String(),
		Status:      string(txn.Status),
		UniqueLink:  txn.UniqueLink,
		CreatedAt:   txn.CreatedAt.Format(timeFormat),
		UpdatedAt:   txn.UpdatedAt.Format(timeFormat),
	}
	if txn.BuyerID != nil {
		s := txn.BuyerID.String()
		resp.BuyerID = &s
	}
	if txn.PaymentReference != nil {
		s := *txn.PaymentReference
		resp.PaymentReference = &s
	}
	return resp
}
