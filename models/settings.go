package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StoreSettings holds store-wide tax configuration. A single row is
// expected; the pricing service falls back to configured defaults when
// it cannot be read.
type StoreSettings struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	TaxEnabled     bool            `gorm:"not null;default:true" json:"tax_enabled"`
	TaxRatePercent decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"tax_rate_percent"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// ShippingZone maps customer locations to a shipping cost. Locations is
// a comma-separated list of city/region names matched case-insensitively.
// FreeAbove, when set, zeroes the cost for subtotals at or above it.
type ShippingZone struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	Name         string           `gorm:"type:varchar(128);not null" json:"name"`
	Locations    string           `gorm:"type:text;not null" json:"locations"`
	Cost         decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"cost"`
	FreeAbove    *decimal.Decimal `gorm:"type:numeric(12,2)" json:"free_above,omitempty"`
	DeliveryDays int              `gorm:"not null;default:0" json:"delivery_days"`
	Active       bool             `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}
