package httpserver

import (
	"errors"
	"net/http"

	"desithreads-api/internal/domain"
	"github.com/gin-gonic/gin"
)

func upsertProductHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p domain.Product
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		out, err := svc.UpsertProduct(c.Request.Context(), p)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func deleteProductHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func upsertCategoryHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cat domain.Category
		if err := c.ShouldBindJSON(&cat); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		out, err := svc.UpsertCategory(c.Request.Context(), cat)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}
