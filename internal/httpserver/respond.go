package httpserver

import (
	"errors"
	"log"
	"net/http"

	"desithreads-api/internal/domain"
	checkoutsvc "desithreads-api/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

// respondError maps the domain error taxonomy onto HTTP statuses.
// Validation and trust failures are client errors with an actionable
// message; store inconsistencies are server faults and get logged for an
// operator, never retried silently.
func respondError(c *gin.Context, logger *log.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"message": "cart is empty"})
	case errors.Is(err, domain.ErrInvalidTotal):
		c.JSON(http.StatusBadRequest, gin.H{"message": "order total is invalid"})
	case errors.Is(err, checkoutsvc.ErrInvalidAddress):
		c.JSON(http.StatusBadRequest, gin.H{"message": "shipping address needs at least a street line and pincode"})
	case errors.Is(err, checkoutsvc.ErrCheckoutInFlight):
		c.JSON(http.StatusConflict, gin.H{"message": "a checkout is already in progress, try again in a moment"})
	case errors.Is(err, domain.ErrInvalidSignature):
		// Deliberately generic: no detail about what part of the
		// verification failed leaves the server.
		c.JSON(http.StatusBadRequest, gin.H{"message": "payment could not be verified"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	case errors.Is(err, domain.ErrGateway):
		logger.Printf("gateway error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"message": "payment gateway unavailable, please retry"})
	case errors.Is(err, domain.ErrStoreInconsistency):
		logger.Printf("ALERT store inconsistency: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	default:
		logger.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}
