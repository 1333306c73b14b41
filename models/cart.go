package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one purchasable unit in a cart. Key is unique within the
// cart; UnitPrice is snapshotted at add time and not re-fetched when
// totals are computed.
type CartLine struct {
	Key       string          `json:"key"`
	ProductID uint            `json:"product_id"`
	VariantID *uint           `json:"variant_id,omitempty"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
	Material  string          `json:"material,omitempty"`
	AddedAt   time.Time       `json:"added_at"`
}

// LineTotal is UnitPrice × Quantity, unrounded.
func (l *CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds one customer session's lines in insertion order, plus at
// most one applied discount. It lives in Redis for the session's
// lifetime only.
type Cart struct {
	SessionID string           `json:"session_id"`
	Items     []CartLine       `json:"items"`
	Discount  *AppliedDiscount `json:"discount,omitempty"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// FindLine returns the line with the given key, or nil.
func (c *Cart) FindLine(key string) *CartLine {
	for i := range c.Items {
		if c.Items[i].Key == key {
			return &c.Items[i]
		}
	}
	return nil
}

// QuantityOf returns the quantity already in the cart for a key, 0 if absent.
func (c *Cart) QuantityOf(key string) int {
	if l := c.FindLine(key); l != nil {
		return l.Quantity
	}
	return 0
}

// RemoveLine deletes the line with the given key, preserving the order
// of the remaining lines. Reports whether a line was actually removed.
func (c *Cart) RemoveLine(key string) bool {
	for i := range c.Items {
		if c.Items[i].Key == key {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart, dropping any applied discount with it.
func (c *Cart) Clear() {
	c.Items = nil
	c.Discount = nil
}

// Subtotal is the straight sum of line totals, unrounded.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for i := range c.Items {
		sum = sum.Add(c.Items[i].LineTotal())
	}
	return sum
}

// TotalQuantity sums the quantities of all lines.
func (c *Cart) TotalQuantity() int {
	n := 0
	for i := range c.Items {
		n += c.Items[i].Quantity
	}
	return n
}
