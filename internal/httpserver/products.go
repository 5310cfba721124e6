package httpserver

import (
	"net/http"

	"desithreads-api/internal/domain"
	"github.com/gin-gonic/gin"
)

func listProductsHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context(), c.Query("orderBy"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func getProductHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			if err == domain.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func listCategoriesHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := svc.ListCategories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		if categories == nil {
			categories = []domain.Category{}
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}
