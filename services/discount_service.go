package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/DoughlasMuthoni/linen-store-sub002/events"
	"github.com/DoughlasMuthoni/linen-store-sub002/models"
	"github.com/DoughlasMuthoni/linen-store-sub002/repository"
)

// DiscountService validates coupon codes and attaches the resulting
// discount to the cart. A cart holds at most one discount; applying a
// new code replaces the previous one outright. Usage counts are only
// incremented on confirmed redemption at order placement, not here.
type DiscountService interface {
	Apply(ctx context.Context, cart *models.Cart, code string) (*models.AppliedDiscount, *ServiceError)
	Remove(cart *models.Cart) bool
}

type discountServiceImpl struct {
	repo        repository.CouponRepository
	snsClient   events.SNSPublisher
	snsTopicArn string
	logger      *zap.Logger
}

// NewDiscountService creates a new DiscountService.
func NewDiscountService(repo repository.CouponRepository, snsClient events.SNSPublisher, snsTopicArn string, logger *zap.Logger) DiscountService {
	return &discountServiceImpl{
		repo:        repo,
		snsClient:   snsClient,
		snsTopicArn: snsTopicArn,
		logger:      logger,
	}
}

// Apply validates the code against its eligibility rules and computes
// the capped discount amount for the cart's current subtotal.
func (s *discountServiceImpl) Apply(ctx context.Context, cart *models.Cart, code string) (*models.AppliedDiscount, *ServiceError) {
	if code == "" {
		return nil, errInvalidInput("coupon code is required")
	}

	coupon, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, &ServiceError{Code: CodeCouponNotFound, StatusCode: 404, Message: "Coupon not found or inactive"}
	}

	if time.Now().After(coupon.ExpiresAt) {
		return nil, &ServiceError{Code: CodeCouponExpired, StatusCode: 400, Message: "Coupon has expired"}
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return nil, &ServiceError{Code: CodeUsageLimitReached, StatusCode: 400, Message: "Coupon usage limit reached"}
	}

	subtotal := cart.Subtotal()
	if subtotal.LessThan(coupon.MinOrderValue) {
		return nil, &ServiceError{
			Code:       CodeMinimumNotMet,
			StatusCode: 400,
			Message:    fmt.Sprintf("Minimum order value of %s required", coupon.MinOrderValue.StringFixed(2)),
		}
	}

	amount := discountAmount(coupon, subtotal)

	applied := &models.AppliedDiscount{
		CouponID:      coupon.ID,
		Code:          coupon.Code,
		Type:          coupon.Type,
		Value:         coupon.Value,
		Amount:        amount,
		MinOrderValue: coupon.MinOrderValue,
		AppliedAt:     time.Now(),
	}
	cart.Discount = applied

	s.publishDiscountAppliedEvent(ctx, cart, coupon, amount, subtotal)
	s.logger.Info("discount applied",
		zap.String("session_id", cart.SessionID),
		zap.String("code", coupon.Code),
		zap.String("amount", amount.StringFixed(2)),
	)
	return applied, nil
}

// Remove detaches the applied discount, reporting whether one was present.
func (s *discountServiceImpl) Remove(cart *models.Cart) bool {
	if cart.Discount == nil {
		return false
	}
	cart.Discount = nil
	return true
}

// discountAmount computes the monetary discount per coupon type.
// Percentage amounts honor the coupon's ceiling; fixed amounts never
// exceed the subtotal; free-shipping contributes no monetary discount.
func discountAmount(coupon *models.Coupon, subtotal decimal.Decimal) decimal.Decimal {
	switch coupon.Type {
	case models.CouponTypePercentage:
		amount := subtotal.Mul(coupon.Value).Div(oneHundred)
		if coupon.MaxDiscount != nil && amount.GreaterThan(*coupon.MaxDiscount) {
			amount = *coupon.MaxDiscount
		}
		return amount
	case models.CouponTypeFixed:
		if coupon.Value.GreaterThan(subtotal) {
			return subtotal
		}
		return coupon.Value
	case models.CouponTypeFreeShipping:
		return decimal.Zero
	default:
		return decimal.Zero
	}
}

// publishDiscountAppliedEvent publishes a discount_applied event to SNS.
// Failure is logged and never fails the apply.
func (s *discountServiceImpl) publishDiscountAppliedEvent(ctx context.Context, cart *models.Cart, coupon *models.Coupon, amount, subtotal decimal.Decimal) {
	if s.snsClient == nil || s.snsTopicArn == "" {
		return
	}

	event := models.DiscountAppliedEvent{
		EventType:      "discount_applied",
		SessionID:      cart.SessionID,
		CouponID:       coupon.ID.String(),
		CouponCode:     coupon.Code,
		CouponType:     string(coupon.Type),
		DiscountAmount: amount,
		CartSubtotal:   subtotal,
		Timestamp:      time.Now(),
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("Failed to marshal discount_applied event", zap.Error(err))
		return
	}
	if err := s.snsClient.Publish(ctx, s.snsTopicArn, eventBytes); err != nil {
		s.logger.Error("Failed to publish discount_applied event", zap.Error(err))
	}
}
