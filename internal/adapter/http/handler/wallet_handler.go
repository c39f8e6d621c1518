package handler

import (
	"escrow-settlement/internal/adapter/http/dto"
	"escrow-settlement/internal/core/domain"
	"escrow-settlement/internal/core/ports"
	"escrow-settlement/pkg/apperror"
	"escrow-settlement/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// WalletHandler handles seller profile and wallet endpoints.
type WalletHandler struct {
	sellerRepo ports.SellerRepository
	walletRepo ports.WalletRepository
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(sellerRepo ports.SellerRepository, walletRepo ports.WalletRepository) *WalletHandler {
	return &WalletHandler{sellerRepo: sellerRepo, walletRepo: walletRepo}
}

// RegisterSeller handles POST /api/v1/sellers/me.
func (h *WalletHandler) RegisterSeller(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		response.Error(c, apperror.ErrForbidden("access this resource"))
		return
	}

	var req dto.RegisterSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	seller := domain.NewSeller(req.Email, req.DisplayName)
	seller.ID = id
	if err := h.sellerRepo.Create(c.Request.Context(), seller); err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	response.Created(c, toSellerResponse(seller))
}

// GetProfile handles GET /api/v1/sellers/me.
func (h *WalletHandler) GetProfile(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		response.Error(c, apperror.ErrForbidden("access this resource"))
		return
	}

	seller, err := h.sellerRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	if seller == nil {
		response.Error(c, apperror.ErrNotFound("seller"))
		return
	}

	response.OK(c, toSellerResponse(seller))
}

// UpdateBankDetails handles PUT /api/v1/sellers/me/bank-details.
func (h *WalletHandler) UpdateBankDetails(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		response.Error(c, apperror.ErrForbidden("access this resource"))
		return
	}

	var req dto.BankDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	err := h.sellerRepo.UpdateBankDetails(c.Request.Context(), id, req.BankCode, req.AccountNumber, req.AccountName)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	response.OK(c, gin.H{"status": "ok"})
}

// GetWallet handles GET /api/v1/wallets/me. A seller who has never received
// a pending credit gets a zero wallet, not a 404.
func (h *WalletHandler) GetWallet(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		response.Error(c, apperror.ErrForbidden("access this resource"))
		return
	}

	wallet, err := h.walletRepo.GetBySellerID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	resp := dto.WalletResponse{
		SellerID:         id.String(),
		PendingBalance:   decimal.Zero.String(),
		AvailableBalance: decimal.Zero.String(),
	}
	if wallet != nil {
		resp.PendingBalance = wallet.PendingBalance.String()
		resp.AvailableBalance = wallet.AvailableBalance.String()
		if wallet.LastSettlementCheck != nil {
			s := wallet.LastSettlementCheck.Format(timeFormat)
			resp.LastSettlementCheck = &s
		}
	}

	response.OK(c, resp)
}

// toSellerResponse converts domain.Seller to DTO.
func toSellerResponse(s *domain.Seller) dto.SellerResponse {
	return dto.SellerResponse{
		ID:               s.ID.String(),
		Email:            s.Email,
		DisplayName:      s.DisplayName,
		HasPayoutDetails: s.HasPayoutDetails(),
		CreatedAt:        s.CreatedAt.Format(timeFormat),
	}
}
