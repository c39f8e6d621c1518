package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"escrow-settlement/config"
	"escrow-settlement/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements ports.GatewayClient against a Paystack-style REST API.
// Every call is bounded by the HTTP client's timeout; the caller treats a
// timeout like any other gateway failure.
type Client struct {
	baseURL   string
	secretKey string
	http      HTTPClient
	log       zerolog.Logger
}

// NewClient creates a gateway client from configuration.
func NewClient(cfg config.GatewayConfig, log zerolog.Logger) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		http:      &http.Client{Timeout: cfg.Timeout},
		log:       log,
	}
}

// NewClientWithHTTP creates a gateway client with a custom HTTP client
// (useful for testing).
func NewClientWithHTTP(baseURL, secretKey string, httpClient HTTPClient, log zerolog.Logger) *Client {
	return &Client{baseURL: baseURL, secretKey: secretKey, http: httpClient, log: log}
}

type initializePayload struct {
	Amount    string         `json:"amount"`
	Currency  string         `json:"currency"`
	Email     string         `json:"email"`
	Reference string         `json:"reference"`
	Metadata  map[string]any `json:"metadata"`
}

type initializeResponse struct {
	Status bool   `json:"status"`
	Msg    string `json:"message"`
	Data   struct {
		AuthorizationURL string `json:"authorization_url"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

// InitializePayment opens a hosted checkout session for a buyer.
func (c *Client) InitializePayment(ctx context.Context, req ports.InitializePaymentRequest) (*ports.CheckoutSession, error) {
	payload := initializePayload{
		Amount:    req.Amount.String(),
		Currency:  req.Currency,
		Email:     req.CustomerEmail,
		Reference: req.Reference,
		Metadata:  map[string]any{"transaction_id": req.TransactionID.String()},
	}

	var resp initializeResponse
	if err := c.post(ctx, "/transaction/initialize", payload, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, fmt.Errorf("gateway rejected initialize: %s", resp.Msg)
	}
	return &ports.CheckoutSession{
		CheckoutURL: resp.Data.AuthorizationURL,
		Reference:   resp.Data.Reference,
	}, nil
}

type verifyResponse struct {
	Status bool   `json:"status"`
	Msg    string `json:"message"`
	Data   struct {
		Status   string          `json:"status"`
		Amount   decimal.Decimal `json:"amount"`
		Metadata struct {
			TransactionID string `json:"transaction_id"`
		} `json:"metadata"`
	} `json:"data"`
}

// VerifyPayment asks the gateway for the authoritative state of a charge.
func (c *Client) VerifyPayment(ctx context.Context, reference string) (*ports.PaymentVerification, error) {
	var resp verifyResponse
	if err := c.get(ctx, "/transaction/verify/"+reference, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, fmt.Errorf("gateway rejected verify: %s", resp.Msg)
	}

	txID, err := uuid.Parse(resp.Data.Metadata.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("verify metadata transaction_id: %w", err)
	}
	return &ports.PaymentVerification{
		Status:        resp.Data.Status,
		Amount:        resp.Data.Amount,
		TransactionID: txID,
	}, nil
}

type transferPayload struct {
	Source    string         `json:"source"`
	Amount    string         `json:"amount"`
	Currency  string         `json:"currency"`
	Reference string         `json:"reference"`
	Recipient recipientInfo  `json:"recipient"`
	Metadata  map[string]any `json:"metadata"`
}

type recipientInfo struct {
	Type          string `json:"type"`
	BankCode      string `json:"bank_code"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name,omitempty"`
}

type transferResponse struct {
	Status bool   `json:"status"`
	Msg    string `json:"message"`
	Data   struct {
		Reference    string `json:"reference"`
		TransferCode string `json:"transfer_code"`
		Status       string `json:"status"`
	} `json:"data"`
}

// TransferToSeller initiates a bank transfer to the seller's account. The
// caller supplies an idempotent reference so a retried call cannot move the
// money twice.
func (c *Client) TransferToSeller(ctx context.Context, req ports.TransferRequest) (*ports.TransferResult, error) {
	payload := transferPayload{
		Source:    "balance",
		Amount:    req.Amount.String(),
		Currency:  req.Currency,
		Reference: req.Reference,
		Recipient: recipientInfo{
			Type:          "nuban",
			BankCode:      req.Destination.BankCode,
			AccountNumber: req.Destination.AccountNumber,
			AccountName:   req.Destination.AccountName,
		},
		Metadata: map[string]any{"transaction_id": req.TransactionID.String()},
	}

	var resp transferResponse
	if err := c.post(ctx, "/transfer", payload, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, fmt.Errorf("gateway rejected transfer: %s", resp.Msg)
	}
	return &ports.TransferResult{
		Reference:        resp.Data.Reference,
		GatewayReference: resp.Data.TransferCode,
		Status:           resp.Data.Status,
	}, nil
}

// VerifyWebhookSignature checks the HMAC-SHA256 hex signature of the raw
// webhook body against the shared secret. Constant-time comparison.
func (c *Client) VerifyWebhookSignature(signatureHeader string, rawBody []byte) bool {
	mac := hmac.New(sha256.New, []byte(c.secretKey))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signatureHeader))
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal gateway payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build gateway request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway call %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read gateway response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn().
			Int("status", resp.StatusCode).
			Str("path", req.URL.Path).
			Msg("gateway returned non-2xx")
		return fmt.Errorf("gateway %s returned status %d: %s", req.URL.Path, resp.StatusCode, truncate(raw, 200))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode gateway response: %w", err)
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
