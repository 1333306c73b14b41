package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/DoughlasMuthoni/linen-store-sub002/models"
	"github.com/DoughlasMuthoni/linen-store-sub002/repository"
)

// degradedStock is the permissive stock value reported while the
// catalog is unreachable: cart mutation keeps working and real stock is
// re-validated at checkout.
const degradedStock = 1 << 20

// ResolveRequest selects a product, optionally narrowed to a variant by
// id or by attributes.
type ResolveRequest struct {
	ProductID uint
	VariantID *uint
	Size      string
	Color     string
	Material  string
}

// CatalogResolver turns a product/variant selection into the
// authoritative priced, stocked unit to add to the cart.
type CatalogResolver interface {
	Resolve(ctx context.Context, req ResolveRequest) (*models.ResolvedUnit, *ServiceError)
}

type catalogResolverImpl struct {
	repo          repository.CatalogRepository
	fallbackPrice decimal.Decimal
	logger        *zap.Logger
	sfg           singleflight.Group // collapses concurrent lookups of the same product
}

// NewCatalogResolver creates a CatalogResolver. fallbackPrice is the
// site-configured unit price used while the catalog is unreachable.
func NewCatalogResolver(repo repository.CatalogRepository, fallbackPrice decimal.Decimal, logger *zap.Logger) CatalogResolver {
	return &catalogResolverImpl{
		repo:          repo,
		fallbackPrice: fallbackPrice,
		logger:        logger,
	}
}

// Resolve looks up the product and picks the variant per the selection.
// A missing or inactive product fails not-found; any other catalog
// failure degrades to fallback price and permissive stock so the cart
// stays available.
func (r *catalogResolverImpl) Resolve(ctx context.Context, req ResolveRequest) (*models.ResolvedUnit, *ServiceError) {
	if req.ProductID == 0 {
		return nil, errInvalidInput("product_id is required")
	}

	product, err := r.getProduct(ctx, req.ProductID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotFound("product")
	}
	if err != nil {
		r.logger.Warn("catalog unreachable, resolving in degraded mode",
			zap.Uint("product_id", req.ProductID), zap.Error(err))
		return r.degradedUnit(req), nil
	}

	if len(product.Variants) == 0 && req.VariantID == nil {
		return &models.ResolvedUnit{
			ProductID:      product.ID,
			Name:           product.Name,
			UnitPrice:      product.Price,
			AvailableStock: product.Stock,
		}, nil
	}

	variant, svcErr := r.pickVariant(ctx, product, req)
	if svcErr != nil {
		return nil, svcErr
	}

	vid := variant.ID
	return &models.ResolvedUnit{
		ProductID:      product.ID,
		VariantID:      &vid,
		Name:           product.Name,
		Size:           variant.Size,
		Color:          variant.Color,
		Material:       variant.Material,
		UnitPrice:      variant.UnitPrice(product),
		AvailableStock: variant.Stock,
		HasVariants:    true,
	}, nil
}

func (r *catalogResolverImpl) getProduct(ctx context.Context, id uint) (*models.Product, error) {
	v, err, _ := r.sfg.Do(fmt.Sprintf("product:%d", id), func() (interface{}, error) {
		return r.repo.GetProduct(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Product), nil
}

// pickVariant applies the resolution order: explicit variant id, then
// attribute search (exact before partial, first stocked match), then
// the default-flagged variant, then the lowest-id variant.
func (r *catalogResolverImpl) pickVariant(ctx context.Context, product *models.Product, req ResolveRequest) (*models.ProductVariant, *ServiceError) {
	if req.VariantID != nil {
		for i := range product.Variants {
			if product.Variants[i].ID == *req.VariantID {
				return &product.Variants[i], nil
			}
		}
		variant, err := r.repo.GetVariant(ctx, *req.VariantID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("variant")
		}
		if err != nil {
			return nil, errNotFound("variant")
		}
		return nil, errVariantMismatch(variant.ID, product.ID)
	}

	if req.Size != "" || req.Color != "" || req.Material != "" {
		if v := r.matchByAttributes(ctx, product, req); v != nil {
			return v, nil
		}
		return nil, errNotFound("matching variant")
	}

	var lowest *models.ProductVariant
	for i := range product.Variants {
		v := &product.Variants[i]
		if v.IsDefault {
			return v, nil
		}
		if lowest == nil || v.ID < lowest.ID {
			lowest = v
		}
	}
	if lowest == nil {
		return nil, errNotFound("variant")
	}
	return lowest, nil
}

func (r *catalogResolverImpl) matchByAttributes(ctx context.Context, product *models.Product, req ResolveRequest) *models.ProductVariant {
	exact, err := r.repo.FindVariants(ctx, product.ID, repository.VariantFilters{
		Size:     req.Size,
		Color:    req.Color,
		Material: req.Material,
	})
	if err != nil {
		r.logger.Warn("variant search failed, falling back to preloaded variants",
			zap.Uint("product_id", product.ID), zap.Error(err))
		exact = exactMatches(product.Variants, req)
	}
	if v := firstStocked(exact); v != nil {
		return v
	}

	// Partial: any variant sharing at least one requested attribute.
	var partial []models.ProductVariant
	for _, v := range product.Variants {
		if (req.Size != "" && v.Size == req.Size) ||
			(req.Color != "" && v.Color == req.Color) ||
			(req.Material != "" && v.Material == req.Material) {
			partial = append(partial, v)
		}
	}
	return firstStocked(partial)
}

func exactMatches(variants []models.ProductVariant, req ResolveRequest) []models.ProductVariant {
	var out []models.ProductVariant
	for _, v := range variants {
		if (req.Size == "" || v.Size == req.Size) &&
			(req.Color == "" || v.Color == req.Color) &&
			(req.Material == "" || v.Material == req.Material) {
			out = append(out, v)
		}
	}
	return out
}

func firstStocked(variants []models.ProductVariant) *models.ProductVariant {
	for i := range variants {
		if variants[i].Stock > 0 {
			v := variants[i]
			return &v
		}
	}
	return nil
}

func (r *catalogResolverImpl) degradedUnit(req ResolveRequest) *models.ResolvedUnit {
	return &models.ResolvedUnit{
		ProductID:      req.ProductID,
		VariantID:      req.VariantID,
		Size:           req.Size,
		Color:          req.Color,
		Material:       req.Material,
		UnitPrice:      r.fallbackPrice,
		AvailableStock: degradedStock,
		Degraded:       true,
	}
}
