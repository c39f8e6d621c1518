package handler

import (
	"io"

	"escrow-settlement/internal/core/ports"
	"escrow-settlement/pkg/apperror"
	"escrow-settlement/pkg/response"

	"github.com/gin-gonic/gin"
)

// HeaderGatewaySignature carries the provider's HMAC over the raw body.
const HeaderGatewaySignature = "X-Paystack-Signature"

// WebhookHandler receives payment gateway event deliveries.
type WebhookHandler struct {
	ingestor ports.WebhookIngestor
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(ingestor ports.WebhookIngestor) *WebhookHandler {
	return &WebhookHandler{ingestor: ingestor}
}

// Receive handles POST /webhooks/gateway. The signature is computed over the
// raw bytes, so the body must not go through JSON binding first.
func (h *WebhookHandler) Receive(c *gin.Context) {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, apperror.Validation("cannot read request body"))
		return
	}

	sig := c.GetHeader(HeaderGatewaySignature)
	if err := h.ingestor.HandleEvent(c.Request.Context(), sig, rawBody); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"status": "ok"})
}
