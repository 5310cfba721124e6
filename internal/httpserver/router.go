package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"desithreads-api/internal/auth"
	"desithreads-api/internal/domain"
	"desithreads-api/internal/metrics"
	cartsvc "desithreads-api/internal/service/cart"
	checkoutsvc "desithreads-api/internal/service/checkout"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type catalogService interface {
	List(ctx context.Context, orderBy string) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpsertProduct(ctx context.Context, p domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	UpsertCategory(ctx context.Context, c domain.Category) (*domain.Category, error)
}

type cartService interface {
	List(ctx context.Context, userID string) ([]domain.CartItem, error)
	Add(ctx context.Context, userID string, in cartsvc.AddInput) (*domain.CartItem, error)
	Remove(ctx context.Context, userID, itemID string) error
}

type checkoutService interface {
	Create(ctx context.Context, userID string, addr domain.Address) (*checkoutsvc.Intent, error)
	Verify(ctx context.Context, userID string, in checkoutsvc.VerifyInput) error
}

type orderService interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	MarkFailed(ctx context.Context, gatewayOrderID string) error
}

type sessionValidator interface {
	Validate(token string) (auth.Session, error)
}

// Deps carries the wired services for route registration.
type Deps struct {
	CatalogSvc  catalogService
	CartSvc     cartService
	CheckoutSvc checkoutService
	OrderSvc    orderService
	Sessions    sessionValidator

	// WebhookSecret verifies gateway webhook callbacks (HMAC over raw body).
	WebhookSecret string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.Sessions == nil {
		return nil, errors.New("session validator required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.GET("/products", listProductsHandler(deps.CatalogSvc))
	router.GET("/products/:id", getProductHandler(deps.CatalogSvc))
	router.GET("/categories", listCategoriesHandler(deps.CatalogSvc))

	router.POST("/payments/webhook", webhookHandler(deps.OrderSvc, deps.WebhookSecret, logger))

	authed := router.Group("", sessionMiddleware(deps.Sessions))
	{
		authed.GET("/cart", listCartHandler(deps.CartSvc))
		authed.POST("/cart", addCartHandler(deps.CartSvc))
		authed.DELETE("/cart/:id", removeCartHandler(deps.CartSvc))
		authed.POST("/checkout/orders", createOrderHandler(deps.CheckoutSvc, logger))
		authed.POST("/checkout/verify", verifyPaymentHandler(deps.CheckoutSvc, logger))
		authed.GET("/orders", listOrdersHandler(deps.OrderSvc))
	}

	admin := router.Group("/admin", sessionMiddleware(deps.Sessions), adminOnly())
	{
		admin.POST("/products", upsertProductHandler(deps.CatalogSvc))
		admin.PUT("/products", upsertProductHandler(deps.CatalogSvc))
		admin.DELETE("/products/:id", deleteProductHandler(deps.CatalogSvc))
		admin.POST("/categories", upsertCategoryHandler(deps.CatalogSvc))
	}

	return router, nil
}

const sessionKey = "session"

// sessionMiddleware derives the acting user from a Bearer token. Handlers
// never read user ids from request bodies.
func sessionMiddleware(sessions sessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authorization required"})
			return
		}
		sess, err := sessions.Validate(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired session"})
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

func adminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sessionFrom(c).Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "admin access required"})
			return
		}
		c.Next()
	}
}

func sessionFrom(c *gin.Context) auth.Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(auth.Session); ok {
			return sess
		}
	}
	return auth.Session{}
}
