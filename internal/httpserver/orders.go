package httpserver

import (
	"net/http"

	"desithreads-api/internal/domain"
	"github.com/gin-gonic/gin"
)

func listOrdersHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListByUser(c.Request.Context(), sessionFrom(c).UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}
