package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/DoughlasMuthoni/linen-store-sub002/models"
	"github.com/DoughlasMuthoni/linen-store-sub002/repository"
)

// ShippingProvider quotes a shipping cost for a customer location and
// the current cart subtotal. An error means the provider is unreachable;
// callers are expected to fall back, not fail.
type ShippingProvider interface {
	Quote(ctx context.Context, location string, subtotal decimal.Decimal) (*models.ShippingQuote, error)
}

// ZoneShippingProvider quotes from the shipping_zones table. The first
// active zone listing the location wins; a zone's FreeAbove threshold
// zeroes the cost for qualifying subtotals.
type ZoneShippingProvider struct {
	repo repository.ShippingZoneRepository
}

// NewZoneShippingProvider creates a new ZoneShippingProvider.
func NewZoneShippingProvider(repo repository.ShippingZoneRepository) *ZoneShippingProvider {
	return &ZoneShippingProvider{repo: repo}
}

// Quote returns the shipping cost for the location, or an error when no
// zone covers it or the zone table is unreachable.
func (p *ZoneShippingProvider) Quote(ctx context.Context, location string, subtotal decimal.Decimal) (*models.ShippingQuote, error) {
	zones, err := p.repo.FindActiveZones(ctx)
	if err != nil {
		return nil, err
	}

	zone := matchZone(zones, location)
	if zone == nil {
		return nil, fmt.Errorf("no shipping zone covers location %q", location)
	}

	quote := &models.ShippingQuote{
		Cost:         zone.Cost,
		ZoneID:       &zone.ID,
		DeliveryDays: zone.DeliveryDays,
		Message:      fmt.Sprintf("Shipping via %s", zone.Name),
	}
	if zone.FreeAbove != nil && subtotal.GreaterThanOrEqual(*zone.FreeAbove) {
		quote.Cost = decimal.Zero
		quote.Message = fmt.Sprintf("Free shipping via %s", zone.Name)
	}
	return quote, nil
}

func matchZone(zones []models.ShippingZone, location string) *models.ShippingZone {
	needle := strings.ToLower(strings.TrimSpace(location))
	for i := range zones {
		for _, loc := range strings.Split(zones[i].Locations, ",") {
			if strings.ToLower(strings.TrimSpace(loc)) == needle {
				return &zones[i]
			}
		}
	}
	return nil
}
