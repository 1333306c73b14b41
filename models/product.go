package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog entry. Price and Stock apply directly when the
// product has no variants; otherwise the variants own both.
type Product struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	SKU       string          `gorm:"type:varchar(64);uniqueIndex;not null" json:"sku"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Stock     int             `gorm:"not null;default:0" json:"stock"`
	Active    bool            `gorm:"not null;default:true" json:"active"`
	Variants  []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

// ProductVariant is one purchasable configuration of a product.
// Price is an optional override; a nil Price falls back to the parent
// product's price.
type ProductVariant struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	ProductID uint             `gorm:"not null;index" json:"product_id"`
	Size      string           `gorm:"type:varchar(32)" json:"size,omitempty"`
	Color     string           `gorm:"type:varchar(32)" json:"color,omitempty"`
	Material  string           `gorm:"type:varchar(64)" json:"material,omitempty"`
	Price     *decimal.Decimal `gorm:"type:numeric(12,2)" json:"price,omitempty"`
	Stock     int              `gorm:"not null;default:0" json:"stock"`
	IsDefault bool             `gorm:"not null;default:false" json:"is_default"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// UnitPrice resolves the effective price of a variant given its parent product.
func (v *ProductVariant) UnitPrice(p *Product) decimal.Decimal {
	if v.Price != nil {
		return *v.Price
	}
	return p.Price
}

// ResolvedUnit is the authoritative priced, stocked unit the catalog
// resolver hands to the cart for a given selection.
type ResolvedUnit struct {
	ProductID      uint            `json:"product_id"`
	VariantID      *uint           `json:"variant_id,omitempty"`
	Name           string          `json:"name"`
	Size           string          `json:"size,omitempty"`
	Color          string          `json:"color,omitempty"`
	Material       string          `json:"material,omitempty"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	AvailableStock int             `json:"available_stock"`
	HasVariants    bool            `json:"has_variants"`
	Degraded       bool            `json:"-"` // catalog was unreachable, fallback values in use
}
