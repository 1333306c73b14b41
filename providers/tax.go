package providers

import (
	"context"

	"github.com/DoughlasMuthoni/linen-store-sub002/models"
	"github.com/DoughlasMuthoni/linen-store-sub002/repository"
)

// TaxProvider reports the store's tax configuration. An error means the
// provider is unreachable; callers are expected to fall back, not fail.
type TaxProvider interface {
	GetTaxSettings(ctx context.Context) (*models.TaxSettings, error)
}

// StoreTaxProvider reads tax settings from the store settings table.
type StoreTaxProvider struct {
	repo repository.SettingsRepository
}

// NewStoreTaxProvider creates a new StoreTaxProvider.
func NewStoreTaxProvider(repo repository.SettingsRepository) *StoreTaxProvider {
	return &StoreTaxProvider{repo: repo}
}

// GetTaxSettings returns the enabled flag and percentage rate.
func (p *StoreTaxProvider) GetTaxSettings(ctx context.Context) (*models.TaxSettings, error) {
	settings, err := p.repo.GetStoreSettings(ctx)
	if err != nil {
		return nil, err
	}
	return &models.TaxSettings{
		Enabled:     settings.TaxEnabled,
		RatePercent: settings.TaxRatePercent,
	}, nil
}
