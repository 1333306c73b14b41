package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/DoughlasMuthoni/linen-store-sub002/controllers"
	"github.com/DoughlasMuthoni/linen-store-sub002/middleware"
)

// RegisterCartRoutes sets up all cart-related routes.
func RegisterCartRoutes(r *gin.Engine, cc *controllers.CartController) {
	cart := r.Group("/cart")
	cart.Use(middleware.Session())

	cart.GET("", cc.GetCart)
	cart.DELETE("", cc.ClearCart)
	cart.GET("/totals", cc.GetTotals)

	cart.POST("/items", cc.AddItem)
	cart.POST("/items/bulk", cc.AddItems)
	cart.PUT("/items/:key", cc.UpdateQuantity)
	cart.DELETE("/items/:key", cc.RemoveItem)

	cart.POST("/coupon", cc.ApplyCoupon)
	cart.DELETE("/coupon", cc.RemoveCoupon)
}

// RegisterCouponRoutes sets up coupon administration routes.
func RegisterCouponRoutes(r *gin.Engine, cc *controllers.CouponController) {
	coupons := r.Group("/coupons")

	coupons.POST("", cc.CreateCoupon)
	coupons.GET("", cc.ListCoupons)
	coupons.GET("/:code", cc.GetCoupon)
	coupons.DELETE("/:code", cc.DeactivateCoupon)
}
