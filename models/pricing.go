package models

import "github.com/shopspring/decimal"

// TaxSettings is what the tax provider reports for the store.
type TaxSettings struct {
	Enabled     bool            `json:"enabled"`
	RatePercent decimal.Decimal `json:"rate_percent"`
}

// ShippingQuote is what the shipping provider reports for a location
// and subtotal.
type ShippingQuote struct {
	Cost         decimal.Decimal `json:"cost"`
	Message      string          `json:"message,omitempty"`
	ZoneID       *uint           `json:"zone_id,omitempty"`
	DeliveryDays int             `json:"delivery_days,omitempty"`
}

// PricingSnapshot is the derived set of cart totals at a point in time.
// Each monetary figure is rounded to 2 decimal places independently.
// It is recomputed on every mutation and never cached across them.
type PricingSnapshot struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	Shipping        decimal.Decimal `json:"shipping"`
	Tax             decimal.Decimal `json:"tax"`
	Discount        decimal.Decimal `json:"discount"`
	Total           decimal.Decimal `json:"total"`
	FreeShipping    bool            `json:"free_shipping"`
	ShippingMessage string          `json:"shipping_message,omitempty"`
	DeliveryDays    int             `json:"delivery_days,omitempty"`
}

// AddItemRequest is the payload for adding a single selection to the cart.
type AddItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	VariantID *uint  `json:"variant_id,omitempty"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	Material  string `json:"material,omitempty"`
}

// AddManyRequest is the payload for a bulk add.
type AddManyRequest struct {
	Items []AddItemRequest `json:"items" binding:"required,min=1"`
}

// AddItemResult reports what happened to one entry of a bulk add.
type AddItemResult struct {
	ProductID uint   `json:"product_id"`
	Key       string `json:"key,omitempty"`
	Quantity  int    `json:"quantity"` // quantity actually added after the cap policy
	Skipped   bool   `json:"skipped"`
	Reason    string `json:"reason,omitempty"`
}

// UpdateQuantityRequest is the payload for an explicit quantity change.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}
