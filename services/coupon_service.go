package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/DoughlasMuthoni/linen-store-sub002/models"
	"github.com/DoughlasMuthoni/linen-store-sub002/repository"
)

// CouponService is the admin-facing coupon management surface.
type CouponService interface {
	CreateCoupon(ctx context.Context, req *models.CreateCouponRequest) (*models.Coupon, *ServiceError)
	GetCoupon(ctx context.Context, code string) (*models.Coupon, *ServiceError)
	DeactivateCoupon(ctx context.Context, code string) *ServiceError
	ListCoupons(ctx context.Context, page, limit int) ([]models.Coupon, int64, *ServiceError)
}

type couponServiceImpl struct {
	repo   repository.CouponRepository
	logger *zap.Logger
}

// NewCouponService creates a new CouponService.
func NewCouponService(repo repository.CouponRepository, logger *zap.Logger) CouponService {
	return &couponServiceImpl{repo: repo, logger: logger}
}

// CreateCoupon creates a new coupon.
func (s *couponServiceImpl) CreateCoupon(ctx context.Context, req *models.CreateCouponRequest) (*models.Coupon, *ServiceError) {
	if req.ExpiresAt.Before(time.Now()) {
		return nil, errInvalidInput("Expiry date must be in the future")
	}
	if req.Type == models.CouponTypePercentage && req.Value.GreaterThan(decimal.NewFromInt(100)) {
		return nil, errInvalidInput("Percentage discount cannot exceed 100")
	}
	if req.Value.IsNegative() {
		return nil, errInvalidInput("Discount value cannot be negative")
	}

	coupon := &models.Coupon{
		Code:          strings.ToUpper(req.Code),
		Type:          req.Type,
		Value:         req.Value,
		MaxDiscount:   req.MaxDiscount,
		MinOrderValue: req.MinOrderValue,
		UsageLimit:    req.UsageLimit,
		ExpiresAt:     req.ExpiresAt,
		Active:        true,
	}

	if err := s.repo.Create(ctx, coupon); err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return nil, &ServiceError{Code: CodeInvalidInput, StatusCode: 409, Message: "Coupon code already exists"}
		}
		s.logger.Error("Failed to create coupon", zap.Error(err))
		return nil, &ServiceError{Code: CodeInvalidInput, StatusCode: 500, Message: "Failed to create coupon"}
	}

	s.logger.Info("Coupon created", zap.String("code", coupon.Code), zap.String("type", string(coupon.Type)))
	return coupon, nil
}

// GetCoupon retrieves a coupon by code.
func (s *couponServiceImpl) GetCoupon(ctx context.Context, code string) (*models.Coupon, *ServiceError) {
	coupon, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, &ServiceError{Code: CodeCouponNotFound, StatusCode: 404, Message: "Coupon not found"}
	}
	return coupon, nil
}

// DeactivateCoupon deactivates a coupon by code.
func (s *couponServiceImpl) DeactivateCoupon(ctx context.Context, code string) *ServiceError {
	if err := s.repo.Deactivate(ctx, code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ServiceError{Code: CodeCouponNotFound, StatusCode: 404, Message: "Coupon not found"}
		}
		s.logger.Error("Failed to deactivate coupon", zap.String("code", code), zap.Error(err))
		return &ServiceError{Code: CodeInvalidInput, StatusCode: 500, Message: "Failed to deactivate coupon"}
	}

	s.logger.Info("Coupon deactivated", zap.String("code", code))
	return nil
}

// ListCoupons returns paginated coupons.
func (s *couponServiceImpl) ListCoupons(ctx context.Context, page, limit int) ([]models.Coupon, int64, *ServiceError) {
	coupons, total, err := s.repo.FindAll(ctx, page, limit)
	if err != nil {
		s.logger.Error("Failed to list coupons", zap.Error(err))
		return nil, 0, &ServiceError{Code: CodeInvalidInput, StatusCode: 500, Message: "Failed to list coupons"}
	}
	return coupons, total, nil
}
