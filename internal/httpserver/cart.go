package httpserver

import (
	"errors"
	"net/http"

	"desithreads-api/internal/domain"
	cartsvc "desithreads-api/internal/service/cart"
	"github.com/gin-gonic/gin"
)

func listCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context(), sessionFrom(c).UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		if items == nil {
			items = []domain.CartItem{}
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func addCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in cartsvc.AddInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		item, err := svc.Add(c.Request.Context(), sessionFrom(c).UserID, in)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func removeCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := svc.Remove(c.Request.Context(), sessionFrom(c).UserID, c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "cart item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
