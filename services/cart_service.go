package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/DoughlasMuthoni/linen-store-sub002/models"
)

// CartService is the cart mutation engine. It is stateless: every
// operation acts only on the cart it is handed, and persistence is the
// caller's concern.
type CartService interface {
	AddToCart(ctx context.Context, cart *models.Cart, req models.AddItemRequest) (*models.CartLine, *ServiceError)
	AddManyToCart(ctx context.Context, cart *models.Cart, items []models.AddItemRequest) []models.AddItemResult
	UpdateQuantity(ctx context.Context, cart *models.Cart, key string, quantity int) (*models.CartLine, *ServiceError)
	RemoveLine(cart *models.Cart, key string) bool
	ClearCart(cart *models.Cart)
}

type cartServiceImpl struct {
	resolver CatalogResolver
	logger   *zap.Logger
}

// NewCartService creates a new CartService.
func NewCartService(resolver CatalogResolver, logger *zap.Logger) CartService {
	return &cartServiceImpl{
		resolver: resolver,
		logger:   logger,
	}
}

// AddToCart resolves the selection against the latest catalog snapshot
// and upserts it into the cart under its line key. Repeated adds of the
// same selection accumulate quantity on one line. The cap policy limits
// the added quantity to remaining stock; when nothing remains the add
// fails out-of-stock rather than inserting a zero-quantity line.
func (s *cartServiceImpl) AddToCart(ctx context.Context, cart *models.Cart, req models.AddItemRequest) (*models.CartLine, *ServiceError) {
	unit, svcErr := s.resolver.Resolve(ctx, ResolveRequest{
		ProductID: req.ProductID,
		VariantID: req.VariantID,
		Size:      req.Size,
		Color:     req.Color,
		Material:  req.Material,
	})
	if svcErr != nil {
		return nil, svcErr
	}

	key := BuildLineKey(unit.ProductID, unit.VariantID, req.Size, req.Color, req.Material)
	alreadyInCart := cart.QuantityOf(key)

	quantity := capAddQuantity(req.Quantity, unit.AvailableStock, alreadyInCart)
	if quantity <= 0 {
		remaining := unit.AvailableStock - alreadyInCart
		if remaining < 0 {
			remaining = 0
		}
		return nil, errOutOfStock(remaining)
	}

	line := s.upsert(cart, key, unit, quantity)
	s.logger.Info("cart line upserted",
		zap.String("session_id", cart.SessionID),
		zap.String("key", key),
		zap.Int("quantity", line.Quantity),
		zap.Bool("degraded", unit.Degraded),
	)
	return line, nil
}

// AddManyToCart applies the cap policy per item. Items that resolve to
// nothing addable are skipped with a reason instead of failing the batch.
func (s *cartServiceImpl) AddManyToCart(ctx context.Context, cart *models.Cart, items []models.AddItemRequest) []models.AddItemResult {
	results := make([]models.AddItemResult, 0, len(items))
	for _, item := range items {
		line, svcErr := s.AddToCart(ctx, cart, item)
		if svcErr != nil {
			results = append(results, models.AddItemResult{
				ProductID: item.ProductID,
				Skipped:   true,
				Reason:    svcErr.Message,
			})
			continue
		}
		results = append(results, models.AddItemResult{
			ProductID: item.ProductID,
			Key:       line.Key,
			Quantity:  line.Quantity,
		})
	}
	return results
}

// UpdateQuantity replaces a line's quantity under the reject policy: a
// request beyond the latest stock snapshot fails with the maximum
// permissible quantity and leaves the line untouched. The line keeps
// its position in the cart.
func (s *cartServiceImpl) UpdateQuantity(ctx context.Context, cart *models.Cart, key string, quantity int) (*models.CartLine, *ServiceError) {
	line := cart.FindLine(key)
	if line == nil {
		return nil, errNotFound("cart line")
	}

	unit, svcErr := s.resolver.Resolve(ctx, ResolveRequest{
		ProductID: line.ProductID,
		VariantID: line.VariantID,
	})
	if svcErr != nil {
		return nil, svcErr
	}

	if svcErr := checkUpdateQuantity(quantity, unit.AvailableStock); svcErr != nil {
		return nil, svcErr
	}

	line.Quantity = quantity
	return line, nil
}

// RemoveLine deletes the line. The return value distinguishes a real
// removal from a key that was never present.
func (s *cartServiceImpl) RemoveLine(cart *models.Cart, key string) bool {
	return cart.RemoveLine(key)
}

// ClearCart empties the cart, discount included.
func (s *cartServiceImpl) ClearCart(cart *models.Cart) {
	cart.Clear()
}

func (s *cartServiceImpl) upsert(cart *models.Cart, key string, unit *models.ResolvedUnit, quantity int) *models.CartLine {
	if existing := cart.FindLine(key); existing != nil {
		existing.Quantity += quantity
		return existing
	}
	cart.Items = append(cart.Items, models.CartLine{
		Key:       key,
		ProductID: unit.ProductID,
		VariantID: unit.VariantID,
		Name:      unit.Name,
		Quantity:  quantity,
		UnitPrice: unit.UnitPrice,
		Size:      unit.Size,
		Color:     unit.Color,
		Material:  unit.Material,
		AddedAt:   time.Now(),
	})
	return &cart.Items[len(cart.Items)-1]
}
