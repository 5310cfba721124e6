package httpserver

import (
	"log"
	"net/http"

	"desithreads-api/internal/domain"
	checkoutsvc "desithreads-api/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

type createOrderRequest struct {
	Address domain.Address `json:"address"`
}

func createOrderHandler(svc checkoutService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		intent, err := svc.Create(c.Request.Context(), sessionFrom(c).UserID, req.Address)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, intent)
	}
}

type verifyRequest struct {
	TransactionID string `json:"transactionId" binding:"required"`
	PaymentID     string `json:"paymentId" binding:"required"`
	Signature     string `json:"signature" binding:"required"`
}

func verifyPaymentHandler(svc checkoutService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req verifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		err := svc.Verify(c.Request.Context(), sessionFrom(c).UserID, checkoutsvc.VerifyInput{
			GatewayOrderID: req.TransactionID,
			PaymentID:      req.PaymentID,
			Signature:      req.Signature,
		})
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
