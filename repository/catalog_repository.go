package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/DoughlasMuthoni/linen-store-sub002/models"
)

// VariantFilters narrows a variant search. Empty fields are ignored.
type VariantFilters struct {
	Size     string
	Color    string
	Material string
}

// CatalogRepository defines read access to products and variants.
type CatalogRepository interface {
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	GetVariant(ctx context.Context, id uint) (*models.ProductVariant, error)
	FindVariants(ctx context.Context, productID uint, filters VariantFilters) ([]models.ProductVariant, error)
}

// GormCatalogRepository implements CatalogRepository using GORM.
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GormCatalogRepository.
func NewGormCatalogRepository(db *gorm.DB) CatalogRepository {
	return &GormCatalogRepository{db: db}
}

// GetProduct retrieves an active product with its variants preloaded.
func (r *GormCatalogRepository) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("active = ?", true).
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetVariant retrieves a variant by id.
func (r *GormCatalogRepository) GetVariant(ctx context.Context, id uint) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.db.WithContext(ctx).First(&variant, id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

// FindVariants retrieves a product's variants matching the given filters,
// ordered by id.
func (r *GormCatalogRepository) FindVariants(ctx context.Context, productID uint, filters VariantFilters) ([]models.ProductVariant, error) {
	query := r.db.WithContext(ctx).Where("product_id = ?", productID)

	if filters.Size != "" {
		query = query.Where("size = ?", filters.Size)
	}
	if filters.Color != "" {
		query = query.Where("color = ?", filters.Color)
	}
	if filters.Material != "" {
		query = query.Where("material = ?", filters.Material)
	}

	var variants []models.ProductVariant
	if err := query.Order("id ASC").Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}
