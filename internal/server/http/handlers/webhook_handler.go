package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bersihin/bersihin/internal/server/http/dto"
	"github.com/bersihin/bersihin/internal/usecase"
)

// WebhookHandler receives gateway payment notifications.
type WebhookHandler struct {
	facade PaymentFacade
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(facade PaymentFacade) *WebhookHandler {
	return &WebhookHandler{facade: facade}
}

// Handle processes POST /api/payments/webhook. The gateway retries on
// non-2xx responses, so every syntactically valid request is
// acknowledged; invalid notifications are discarded inside the use case.
func (h *WebhookHandler) Handle(c *gin.Context) {
	var req dto.PaymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusOK)
		return
	}

	h.facade.HandlePaymentWebhook(c.Request.Context(), usecase.WebhookNotification{
		OrderRef:          req.OrderID,
		TransactionID:     req.TransactionID,
		TransactionStatus: req.TransactionStatus,
		StatusCode:        req.StatusCode,
		GrossAmount:       req.GrossAmount,
		FraudStatus:       req.FraudStatus,
		SignatureKey:      req.SignatureKey,
	})

	c.Status(http.StatusOK)
}
