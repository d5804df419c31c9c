package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"velvetroom/internal/usecase"
	"velvetroom/pkg/logger"
)

// Provider retries on non-2xx, so transient failures return 500 and
// signature or payload problems return 400 to stop redelivery.
type WebhookHandler struct {
	webhooks usecase.WebhookUseCase
	logger   *logger.Logger
}

func NewWebhookHandler(webhooks usecase.WebhookUseCase, logger *logger.Logger) *WebhookHandler {
	return &WebhookHandler{webhooks: webhooks, logger: logger}
}

const maxWebhookBody = 1 << 20

func (h *WebhookHandler) HandleStripe(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Could not read request body")
		return
	}

	result, err := h.webhooks.Process(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidSignature),
			errors.Is(err, usecase.ErrMissingMetadata),
			errors.Is(err, usecase.ErrUnknownPurchaseType):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Webhook processing failed: %v", err)
			respondError(c, http.StatusInternalServerError, "Webhook processing failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true, "duplicate": result == usecase.WebhookDuplicate})
}
