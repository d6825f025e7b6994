package paymentControllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	orderControllers "github.com/sunutees/storefront-api/controllers/order"
	"github.com/sunutees/storefront-api/models"
	"github.com/sunutees/storefront-api/store"
)

// WebhookEvent is the verified payment-outcome event. Signature checking
// happened in middleware; by the time this struct binds, the event is trusted.
type WebhookEvent struct {
	Event   string `json:"event" binding:"required"` // "payment.succeeded" or "payment.failed"
	Session struct {
		ID       string  `json:"id"`
		OrderRef string  `json:"orderRef" binding:"required"`
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	} `json:"session" binding:"required"`
}

// PaymentWebhookHandler records the gateway's verdict against the order.
func PaymentWebhookHandler(orders store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var event WebhookEvent
		if err := c.ShouldBindJSON(&event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook payload", "details": err.Error()})
			return
		}

		var status models.PaymentStatus
		var wsEvent string
		switch event.Event {
		case "payment.succeeded":
			status = models.PaymentStatusPaid
			wsEvent = "order.paid"
		case "payment.failed":
			status = models.PaymentStatusFailed
			wsEvent = "order.payment_failed"
		default:
			// unrecognized event types are acknowledged, not retried forever
			c.JSON(http.StatusOK, gin.H{"message": "event ignored"})
			return
		}

		order, err := orders.MarkPaymentOutcome(c.Request.Context(), event.Session.OrderRef, status, "webhook: "+event.Event)
		if err != nil {
			if errors.Is(err, store.ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found for ref " + event.Session.OrderRef})
				return
			}
			log.Printf("❌ failed to record payment outcome for %s: %v", event.Session.OrderRef, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record payment outcome"})
			return
		}

		log.Printf("✅ order %s marked %s", event.Session.OrderRef, status)
		orderControllers.BroadcastOrderEvent(wsEvent, order)
		c.JSON(http.StatusOK, gin.H{"message": "payment outcome recorded"})
	}
}
