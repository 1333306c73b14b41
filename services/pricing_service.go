package services

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/DoughlasMuthoni/linen-store-sub002/models"
	"github.com/DoughlasMuthoni/linen-store-sub002/providers"
)

var oneHundred = decimal.NewFromInt(100)

// PricingFallbacks are the documented constants used when the tax or
// shipping provider is unreachable. Provider failure never surfaces to
// the caller; the cart stays available at the cost of pricing precision.
type PricingFallbacks struct {
	TaxRatePercent    decimal.Decimal // applied with tax enabled
	FlatShippingFee   decimal.Decimal
	FreeShippingFloor decimal.Decimal // subtotals at or above ship free
}

// PricingService folds a cart into its derived totals.
type PricingService interface {
	ComputeTotals(ctx context.Context, cart *models.Cart, location string) *models.PricingSnapshot
}

type pricingServiceImpl struct {
	tax       providers.TaxProvider
	shipping  providers.ShippingProvider
	fallbacks PricingFallbacks
	logger    *zap.Logger
}

// NewPricingService creates a new PricingService.
func NewPricingService(tax providers.TaxProvider, shipping providers.ShippingProvider, fallbacks PricingFallbacks, logger *zap.Logger) PricingService {
	return &pricingServiceImpl{
		tax:       tax,
		shipping:  shipping,
		fallbacks: fallbacks,
		logger:    logger,
	}
}

// ComputeTotals derives subtotal, discount, shipping, tax and total for
// the cart as it stands. Tax is computed on (subtotal − discount); the
// discount is applied exactly once. The applied discount is re-checked
// against its minimum-order threshold on every call: a cart that shrank
// below it contributes 0 without clearing the discount. Each monetary
// figure is rounded to 2 decimal places independently.
func (s *pricingServiceImpl) ComputeTotals(ctx context.Context, cart *models.Cart, location string) *models.PricingSnapshot {
	if len(cart.Items) == 0 {
		return &models.PricingSnapshot{
			Subtotal: decimal.Zero,
			Shipping: decimal.Zero,
			Tax:      decimal.Zero,
			Discount: decimal.Zero,
			Total:    decimal.Zero,
		}
	}

	subtotal := cart.Subtotal()
	discount, freeShipping := s.discountFor(cart, subtotal)

	snapshot := &models.PricingSnapshot{FreeShipping: freeShipping}

	if freeShipping {
		snapshot.Shipping = decimal.Zero
		snapshot.ShippingMessage = "Free shipping coupon applied"
	} else {
		s.quoteShipping(ctx, snapshot, location, subtotal)
	}

	taxBase := subtotal.Sub(discount)
	if taxBase.IsNegative() {
		taxBase = decimal.Zero
	}
	tax := s.taxOn(ctx, taxBase)

	total := subtotal.Sub(discount).Add(snapshot.Shipping).Add(tax)
	if total.IsNegative() {
		total = decimal.Zero
	}

	snapshot.Subtotal = subtotal.Round(2)
	snapshot.Discount = discount.Round(2)
	snapshot.Shipping = snapshot.Shipping.Round(2)
	snapshot.Tax = tax.Round(2)
	snapshot.Total = total.Round(2)
	return snapshot
}

// discountFor returns the monetary discount counting toward this
// computation plus the free-shipping flag.
func (s *pricingServiceImpl) discountFor(cart *models.Cart, subtotal decimal.Decimal) (decimal.Decimal, bool) {
	d := cart.Discount
	if d == nil || subtotal.LessThan(d.MinOrderValue) {
		return decimal.Zero, false
	}
	if d.Type == models.CouponTypeFreeShipping {
		return decimal.Zero, true
	}
	return d.Amount, false
}

func (s *pricingServiceImpl) quoteShipping(ctx context.Context, snapshot *models.PricingSnapshot, location string, subtotal decimal.Decimal) {
	quote, err := s.shipping.Quote(ctx, location, subtotal)
	if err != nil {
		s.logger.Warn("shipping provider unavailable, using flat fallback",
			zap.String("location", location), zap.Error(err))
		if subtotal.GreaterThanOrEqual(s.fallbacks.FreeShippingFloor) {
			snapshot.Shipping = decimal.Zero
			snapshot.ShippingMessage = "Free shipping"
		} else {
			snapshot.Shipping = s.fallbacks.FlatShippingFee
			snapshot.ShippingMessage = "Flat rate shipping"
		}
		return
	}
	snapshot.Shipping = quote.Cost
	snapshot.ShippingMessage = quote.Message
	snapshot.DeliveryDays = quote.DeliveryDays
}

func (s *pricingServiceImpl) taxOn(ctx context.Context, base decimal.Decimal) decimal.Decimal {
	settings, err := s.tax.GetTaxSettings(ctx)
	if err != nil {
		s.logger.Warn("tax provider unavailable, using default rate", zap.Error(err))
		settings = &models.TaxSettings{Enabled: true, RatePercent: s.fallbacks.TaxRatePercent}
	}
	if !settings.Enabled {
		return decimal.Zero
	}
	return base.Mul(settings.RatePercent).Div(oneHundred)
}
