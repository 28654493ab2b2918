package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	common "storefront-backend/common/middleware"
	"storefront-backend/controllers"
	"storefront-backend/middleware"
	"storefront-backend/services"
)

// Controllers bundles everything the router wires up.
type Controllers struct {
	Auth     *controllers.AuthController
	Product  *controllers.ProductController
	Category *controllers.CategoryController
	Cart     *controllers.CartController
	Order    *controllers.OrderController
	Payment  *controllers.PaymentController
}

// Register attaches all API routes to the engine. Cart, order and payment
// routes require a valid bearer token.
func Register(r *gin.Engine, c Controllers, tokens *services.TokenService) {
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	loginLimiter := common.NewRateLimiter(rate.Every(time.Second), 5, 10*time.Minute)

	auth := api.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", common.RateLimit(loginLimiter), c.Auth.Login)
		auth.GET("/me", middleware.RequireAuth(tokens), c.Auth.Profile)
	}

	api.GET("/products", c.Product.List)
	api.GET("/products/search", c.Product.Search)
	api.GET("/products/:id", c.Product.Get)
	api.GET("/categories", c.Category.List)

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(tokens))
	{
		authed.GET("/cart", c.Cart.Get)
		authed.POST("/cart", c.Cart.Add)
		authed.PUT("/cart/:productId", c.Cart.UpdateQuantity)
		authed.DELETE("/cart/:productId", c.Cart.Remove)

		authed.POST("/checkout", c.Order.Checkout)
		authed.GET("/orders", c.Order.List)
		authed.GET("/orders/:trackingId", c.Order.Track)

		authed.POST("/payment/create-order", c.Payment.CreateOrder)
		authed.POST("/payment/verify", c.Payment.Verify)
	}
}
