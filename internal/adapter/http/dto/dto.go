package dto

// CreateTransactionRequest is the request body for creating an escrow deal.
type CreateTransactionRequest struct {
	BuyerEmail string `json:"buyer_email" binding:"required,email"`
	ItemName   string `json:"item_name" binding:"required,min=1,max=200"`
	Price      string `json:"price" binding:"required"`
}

// RegisterSellerRequest is the request body for creating a seller profile.
type RegisterSellerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"display_name" binding:"required,min=1,max=100"`
}

// BankDetailsRequest is the request body for setting a payout destination.
type BankDetailsRequest struct {
	BankCode      string `json:"bank_code" binding:"required,min=3,max=10"`
	AccountNumber string `json:"account_number" binding:"required,min=6,max=20"`
	AccountName   string `json:"account_name" binding:"required,min=1,max=100"`
}

// TransactionResponse is the response body for escrow transaction reads.
type TransactionResponse struct {
	ID               string  `json:"id"`
	SellerID         string  `json:"seller_id"`
	BuyerID          *string `json:"buyer_id,omitempty"`
	BuyerEmail       string  `json:"buyer_email"`
	ItemName         string  `json:"item_name"`
	Price            string  `json:"price"`
	Commission       string  `json:"commission"`
	TotalCharge      string  `json:"total_charge"`
	Status           string  `json:"status"`
	UniqueLink       string  `json:"unique_link"`
	PaymentReference *string `json:"payment_reference,omitempty"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

// CheckoutResponse is the response body for a started checkout session.
type CheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
	Reference   string `json:"reference"`
}

// WalletResponse is the response body for a seller wallet read.
type WalletResponse struct {
	SellerID            string  `json:"seller_id"`
	PendingBalance      string  `json:"pending_balance"`
	AvailableBalance    string  `json:"available_balance"`
	LastSettlementCheck *string `json:"last_settlement_check,omitempty"`
}

// SellerResponse is the response body for a seller profile read.
type SellerResponse struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	DisplayName      string `json:"display_name"`
	HasPayoutDetails bool   `json:"has_payout_details"`
	CreatedAt        string `json:"created_at"`
}

// PayoutResponse is the response body for a payout read.
type PayoutResponse struct {
	ID                string  `json:"id"`
	TransactionID     string  `json:"transaction_id"`
	Amount            string  `json:"amount"`
	Status            string  `json:"status"`
	TransferReference *string `json:"transfer_reference,omitempty"`
	FailureReason     *string `json:"failure_reason,omitempty"`
	RetryCount        int     `json:"retry_count"`
	NextRetryAt       *string `json:"next_retry_at,omitempty"`
	CreatedAt         string  `json:"created_at"`
}
