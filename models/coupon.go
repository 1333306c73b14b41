package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CouponType represents the type of discount a coupon provides.
type CouponType string

const (
	CouponTypePercentage   CouponType = "percentage"
	CouponTypeFixed        CouponType = "fixed"
	CouponTypeFreeShipping CouponType = "freeshipping"
)

// Coupon is a promotional code stored in Postgres.
type Coupon struct {
	ID            uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code          string           `gorm:"type:varchar(64);uniqueIndex;not null" json:"code"`
	Type          CouponType       `gorm:"type:varchar(20);not null" json:"type"`
	Value         decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"value"`
	MaxDiscount   *decimal.Decimal `gorm:"type:numeric(12,2)" json:"max_discount,omitempty"` // ceiling for percentage coupons
	MinOrderValue decimal.Decimal  `gorm:"type:numeric(12,2);not null;default:0" json:"min_order_value"`
	UsageLimit    int              `gorm:"not null;default:0" json:"usage_limit"` // 0 = unlimited
	UsedCount     int              `gorm:"not null;default:0" json:"used_count"`
	ExpiresAt     time.Time        `gorm:"not null" json:"expires_at"`
	Active        bool             `gorm:"not null;default:true" json:"active"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`
}

// AppliedDiscount is the coupon state carried on a cart after a
// successful apply. Amount is capped at apply time; whether it counts
// toward the totals is re-checked against MinOrderValue on every
// computation.
type AppliedDiscount struct {
	CouponID      uuid.UUID       `json:"coupon_id"`
	Code          string          `json:"code"`
	Type          CouponType      `json:"type"`
	Value         decimal.Decimal `json:"value"`
	Amount        decimal.Decimal `json:"amount"`
	MinOrderValue decimal.Decimal `json:"min_order_value"`
	AppliedAt     time.Time       `json:"applied_at"`
}

// CreateCouponRequest is the payload for creating a new coupon.
type CreateCouponRequest struct {
	Code          string           `json:"code" binding:"required,min=3,max=64"`
	Type          CouponType       `json:"type" binding:"required,oneof=percentage fixed freeshipping"`
	Value         decimal.Decimal  `json:"value" binding:"required"`
	MaxDiscount   *decimal.Decimal `json:"max_discount,omitempty"`
	MinOrderValue decimal.Decimal  `json:"min_order_value"`
	UsageLimit    int              `json:"usage_limit" binding:"gte=0"`
	ExpiresAt     time.Time        `json:"expires_at" binding:"required"`
}

// ApplyCouponRequest is the payload for applying a coupon to the cart.
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// DiscountAppliedEvent is published to SNS when a coupon is attached to a cart.
type DiscountAppliedEvent struct {
	EventType      string          `json:"event_type"`
	SessionID      string          `json:"session_id"`
	CouponID       string          `json:"coupon_id"`
	CouponCode     string          `json:"coupon_code"`
	CouponType     string          `json:"coupon_type"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	CartSubtotal   decimal.Decimal `json:"cart_subtotal"`
	Timestamp      time.Time       `json:"timestamp"`
}
