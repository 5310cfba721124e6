package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"desithreads-api/internal/domain"
	"desithreads-api/internal/payment"
	"github.com/gin-gonic/gin"
)

type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// webhookHandler accepts gateway callbacks. The only event acted on is
// payment.failed, which moves the order to its terminal failed status so it
// never sits at pending_payment forever. The payload is trusted only after
// its body HMAC checks out.
func webhookHandler(orders orderService, secret string, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "unreadable body"})
			return
		}
		sig := c.GetHeader("X-Razorpay-Signature")
		if !payment.VerifyWebhookSignature(secret, body, sig) {
			logger.Printf("webhook: signature mismatch")
			c.JSON(http.StatusBadRequest, gin.H{"message": "payment could not be verified"})
			return
		}

		var event webhookEvent
		if err := json.Unmarshal(body, &event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload"})
			return
		}

		switch event.Event {
		case "payment.failed":
			gatewayOrderID := event.Payload.Payment.Entity.OrderID
			if gatewayOrderID == "" {
				c.JSON(http.StatusBadRequest, gin.H{"message": "missing order id"})
				return
			}
			if err := orders.MarkFailed(c.Request.Context(), gatewayOrderID); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					logger.Printf("webhook: payment.failed for unknown order %s", gatewayOrderID)
					c.JSON(http.StatusOK, gin.H{"status": "ignored"})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "processed"})
		default:
			// Other events (payment.captured etc) are reconciled through the
			// client-driven verify endpoint; acknowledge and move on.
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		}
	}
}
