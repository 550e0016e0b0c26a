package routes

import (
	"github.com/gin-gonic/gin"

	"velora_back_end/internal/handlers/order"
	"velora_back_end/internal/handlers/product"
	"velora_back_end/internal/handlers/user"
	"velora_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// Catalogue public
	api.GET("/products", product.GetProducts)
	api.GET("/products/:id", product.GetProductByID)

	auth := api.Group("")
	auth.Use(middleware.AuthRequired())
	{
		// Panier
		auth.GET("/cart", user.GetCart)
		auth.GET("/cart/ws", user.CartWebSocket)
		auth.POST("/cart/add", middleware.CartRateLimit(), user.AddToCart)
		auth.POST("/cart/validate", user.ValidateCart)
		auth.DELETE("/cart/clear", user.ClearCart)
		auth.PUT("/cart/:productId", middleware.CartRateLimit(), user.UpdateCartItem)
		auth.DELETE("/cart/:productId", middleware.CartRateLimit(), user.RemoveFromCart)

		// Checkout & commandes
		auth.POST("/checkout", middleware.CheckoutRateLimit(), order.Checkout)
		auth.GET("/orders", user.GetMyOrders)
		auth.GET("/orders/:id", user.GetOrderByID)
		auth.PUT("/orders/:id/cancel", user.CancelOrder)

		// Coupons
		auth.GET("/coupons/validate", order.ValidateCoupon)

		// Administration
		admin := auth.Group("", middleware.RequireAdmin)
		{
			admin.POST("/products", product.CreateProduct)
			admin.PUT("/products/:id", product.UpdateProduct)
			admin.PUT("/products/:id/stock", product.UpdateStock)
			admin.DELETE("/products/:id", product.DeactivateProduct)

			admin.POST("/coupons", order.CreateCoupon)
			admin.GET("/coupons", order.GetAllCoupons)

			admin.GET("/orders/admin", order.GetAllOrders)
			admin.PUT("/orders/admin/:id/status", order.UpdateOrderStatus)
		}
	}
}
