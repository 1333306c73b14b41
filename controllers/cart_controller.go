package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DoughlasMuthoni/linen-store-sub002/middleware"
	"github.com/DoughlasMuthoni/linen-store-sub002/models"
	"github.com/DoughlasMuthoni/linen-store-sub002/repository"
	"github.com/DoughlasMuthoni/linen-store-sub002/services"
)

// CartController handles HTTP requests for cart operations. It owns the
// session plumbing: load the cart handle, run the engine, save it back.
type CartController struct {
	repo      repository.CartStore
	carts     services.CartService
	pricing   services.PricingService
	discounts services.DiscountService
	logger    *zap.Logger
}

// NewCartController creates a new CartController.
func NewCartController(
	repo repository.CartStore,
	carts services.CartService,
	pricing services.PricingService,
	discounts services.DiscountService,
	logger *zap.Logger,
) *CartController {
	return &CartController{
		repo:      repo,
		carts:     carts,
		pricing:   pricing,
		discounts: discounts,
		logger:    logger,
	}
}

func (cc *CartController) loadCart(c *gin.Context) *models.Cart {
	sessionID := c.GetString(middleware.SessionKey)
	cart, err := cc.repo.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		cc.logger.Error("failed to load cart", zap.String("session_id", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
		return nil
	}
	return cart
}

func (cc *CartController) saveCart(c *gin.Context, cart *models.Cart) bool {
	if err := cc.repo.SaveCart(c.Request.Context(), cart); err != nil {
		cc.logger.Error("failed to save cart", zap.String("session_id", cart.SessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save cart"})
		return false
	}
	return true
}

func (cc *CartController) location(c *gin.Context) string {
	if loc := c.Query("location"); loc != "" {
		return loc
	}
	return c.GetHeader("X-Customer-Location")
}

func svcError(c *gin.Context, err *services.ServiceError) {
	body := gin.H{"error": err.Message, "code": err.Code}
	if err.MaxAvailable > 0 {
		body["max_available"] = err.MaxAvailable
	}
	c.JSON(err.StatusCode, body)
}

// GetCart handles GET /cart: the cart plus its current totals.
func (cc *CartController) GetCart(c *gin.Context) {
	cart := cc.loadCart(c)
	if cart == nil {
		return
	}
	totals := cc.pricing.ComputeTotals(c.Request.Context(), cart, cc.location(c))
	c.JSON(http.StatusOK, gin.H{"cart": cart, "totals": totals})
}

// AddItem handles POST /cart/items.
func (cc *CartController) AddItem(c *gin.Context) {
	var req models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}

	cart := cc.loadCart(c)
	if cart == nil {
		return
	}

	line, svcErr := cc.carts.AddToCart(c.Request.Context(), cart, req)
	if svcErr != nil {
		svcError(c, svcErr)
		return
	}
	if !cc.saveCart(c, cart) {
		return
	}

	totals := cc.pricing.ComputeTotals(c.Request.Context(), cart, cc.location(c))
	c.JSON(http.StatusOK, gin.H{"line": line, "cart": cart, "totals": totals})
}

// AddItems handles POST /cart/items/bulk. Unaddable items are reported
// per entry, never failing the batch.
func (cc *CartController) AddItems(c *gin.Context) {
	var req models.AddManyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}

	cart := cc.loadCart(c)
	if cart == nil {
		return
	}

	results := cc.carts.AddManyToCart(c.Request.Context(), cart, req.Items)
	if !cc.saveCart(c, cart) {
		return
	}

	totals := cc.pricing.ComputeTotals(c.Request.Context(), cart, cc.location(c))
	c.JSON(http.StatusOK, gin.H{"results": results, "cart": cart, "totals": totals})
}

// UpdateQuantity handles PUT /cart/items/:key.
func (cc *CartController) UpdateQuantity(c *gin.Context) {
	key := c.Param("key")
	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}

	cart := cc.loadCart(c)
	if cart == nil {
		return
	}

	line, svcErr := cc.carts.UpdateQuantity(c.Request.Context(), cart, key, req.Quantity)
	if svcErr != nil {
		svcError(c, svcErr)
		return
	}
	if !cc.saveCart(c, cart) {
		return
	}

	totals := cc.pricing.ComputeTotals(c.Request.Context(), cart, cc.location(c))
	c.JSON(http.StatusOK, gin.H{"line": line, "cart": cart, "totals": totals})
}

// RemoveItem handles DELETE /cart/items/:key. The response tells a real
// removal apart from a key that was never in the cart.
func (cc *CartController) RemoveItem(c *gin.Context) {
	key := c.Param("key")

	cart := cc.loadCart(c)
	if cart == nil {
		return
	}

	removed := cc.carts.RemoveLine(cart, key)
	if removed {
		if !cc.saveCart(c, cart) {
			return
		}
	}

	totals := cc.pricing.ComputeTotals(c.Request.Context(), cart, cc.location(c))
	c.JSON(http.StatusOK, gin.H{"removed": removed, "cart": cart, "totals": totals})
}

// ClearCart handles DELETE /cart.
func (cc *CartController) ClearCart(c *gin.Context) {
	cart := cc.loadCart(c)
	if cart == nil {
		return
	}

	cc.carts.ClearCart(cart)
	if err := cc.repo.DeleteCart(c.Request.Context(), cart.SessionID); err != nil {
		cc.logger.Error("failed to clear cart", zap.String("session_id", cart.SessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}

// ApplyCoupon handles POST /cart/coupon.
func (cc *CartController) ApplyCoupon(c *gin.Context) {
	var req models.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}

	cart := cc.loadCart(c)
	if cart == nil {
		return
	}

	applied, svcErr := cc.discounts.Apply(c.Request.Context(), cart, req.Code)
	if svcErr != nil {
		svcError(c, svcErr)
		return
	}
	if !cc.saveCart(c, cart) {
		return
	}

	totals := cc.pricing.ComputeTotals(c.Request.Context(), cart, cc.location(c))
	c.JSON(http.StatusOK, gin.H{"discount": applied, "totals": totals})
}

// RemoveCoupon handles DELETE /cart/coupon.
func (cc *CartController) RemoveCoupon(c *gin.Context) {
	cart := cc.loadCart(c)
	if cart == nil {
		return
	}

	removed := cc.discounts.Remove(cart)
	if removed {
		if !cc.saveCart(c, cart) {
			return
		}
	}

	totals := cc.pricing.ComputeTotals(c.Request.Context(), cart, cc.location(c))
	c.JSON(http.StatusOK, gin.H{"removed": removed, "totals": totals})
}

// GetTotals handles GET /cart/totals.
func (cc *CartController) GetTotals(c *gin.Context) {
	cart := cc.loadCart(c)
	if cart == nil {
		return
	}
	totals := cc.pricing.ComputeTotals(c.Request.Context(), cart, cc.location(c))
	c.JSON(http.StatusOK, gin.H{"totals": totals})
}
