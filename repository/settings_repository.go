package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/DoughlasMuthoni/linen-store-sub002/models"
)

// SettingsRepository defines read access to store-wide settings.
type SettingsRepository interface {
	GetStoreSettings(ctx context.Context) (*models.StoreSettings, error)
}

// ShippingZoneRepository defines read access to shipping zones.
type ShippingZoneRepository interface {
	FindActiveZones(ctx context.Context) ([]models.ShippingZone, error)
}

// GormSettingsRepository implements both settings interfaces using GORM.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository.
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// GetStoreSettings retrieves the single store settings row.
func (r *GormSettingsRepository) GetStoreSettings(ctx context.Context) (*models.StoreSettings, error) {
	var settings models.StoreSettings
	if err := r.db.WithContext(ctx).Order("id ASC").First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// FindActiveZones retrieves all active shipping zones ordered by id.
func (r *GormSettingsRepository) FindActiveZones(ctx context.Context) ([]models.ShippingZone, error) {
	var zones []models.ShippingZone
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("id ASC").
		Find(&zones).Error
	if err != nil {
		return nil, err
	}
	return zones, nil
}
