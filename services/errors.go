package services

import "fmt"

// ErrorCode classifies engine failures for callers.
type ErrorCode string

const (
	CodeNotFound          ErrorCode = "not_found"
	CodeVariantMismatch   ErrorCode = "variant_mismatch"
	CodeOutOfStock        ErrorCode = "out_of_stock"        // initial add
	CodeInsufficientStock ErrorCode = "insufficient_stock"  // explicit update
	CodeInvalidInput      ErrorCode = "invalid_input"
	CodeCouponNotFound    ErrorCode = "coupon_not_found"
	CodeCouponExpired     ErrorCode = "coupon_expired"
	CodeUsageLimitReached ErrorCode = "usage_limit_reached"
	CodeMinimumNotMet     ErrorCode = "minimum_not_met"
)

// ServiceError is a typed error with an HTTP status code. MaxAvailable
// carries the maximum permissible quantity for stock failures.
type ServiceError struct {
	Code         ErrorCode `json:"code"`
	StatusCode   int       `json:"-"`
	Message      string    `json:"message"`
	MaxAvailable int       `json:"max_available,omitempty"`
}

func (e *ServiceError) Error() string { return e.Message }

func errNotFound(what string) *ServiceError {
	return &ServiceError{Code: CodeNotFound, StatusCode: 404, Message: what + " not found"}
}

func errVariantMismatch(variantID, productID uint) *ServiceError {
	return &ServiceError{
		Code:       CodeVariantMismatch,
		StatusCode: 400,
		Message:    fmt.Sprintf("variant %d does not belong to product %d", variantID, productID),
	}
}

func errOutOfStock(max int) *ServiceError {
	return &ServiceError{
		Code:         CodeOutOfStock,
		StatusCode:   409,
		Message:      "item is out of stock",
		MaxAvailable: max,
	}
}

func errInsufficientStock(max int) *ServiceError {
	return &ServiceError{
		Code:         CodeInsufficientStock,
		StatusCode:   409,
		Message:      fmt.Sprintf("requested quantity exceeds available stock (max %d)", max),
		MaxAvailable: max,
	}
}

func errInvalidInput(msg string) *ServiceError {
	return &ServiceError{Code: CodeInvalidInput, StatusCode: 400, Message: msg}
}
