package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/DoughlasMuthoni/linen-store-sub002/controllers"
	"github.com/DoughlasMuthoni/linen-store-sub002/models"
	"github.com/DoughlasMuthoni/linen-store-sub002/routes"
	"github.com/DoughlasMuthoni/linen-store-sub002/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Mock CartStore ---

type mockCartStore struct {
	carts   map[string]*models.Cart
	saveErr error
}

func newMockCartStore() *mockCartStore {
	return &mockCartStore{carts: map[string]*models.Cart{}}
}

func (m *mockCartStore) GetCart(_ context.Context, sessionID string) (*models.Cart, error) {
	if cart, ok := m.carts[sessionID]; ok {
		return cart, nil
	}
	return &models.Cart{SessionID: sessionID, Items: []models.CartLine{}}, nil
}

func (m *mockCartStore) SaveCart(_ context.Context, cart *models.Cart) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.carts[cart.SessionID] = cart
	return nil
}

func (m *mockCartStore) DeleteCart(_ context.Context, sessionID string) error {
	delete(m.carts, sessionID)
	return nil
}

// --- Mock services ---

type mockCartService struct {
	addFn    func(ctx context.Context, cart *models.Cart, req models.AddItemRequest) (*models.CartLine, *services.ServiceError)
	updateFn func(ctx context.Context, cart *models.Cart, key string, quantity int) (*models.CartLine, *services.ServiceError)
	removeFn func(cart *models.Cart, key string) bool
}

func (m *mockCartService) AddToCart(ctx context.Context, cart *models.Cart, req models.AddItemRequest) (*models.CartLine, *services.ServiceError) {
	return m.addFn(ctx, cart, req)
}

func (m *mockCartService) AddManyToCart(ctx context.Context, cart *models.Cart, items []models.AddItemRequest) []models.AddItemResult {
	results := make([]models.AddItemResult, 0, len(items))
	for _, item := range items {
		line, svcErr := m.addFn(ctx, cart, item)
		if svcErr != nil {
			results = append(results, models.AddItemResult{ProductID: item.ProductID, Skipped: true, Reason: svcErr.Message})
			continue
		}
		results = append(results, models.AddItemResult{ProductID: item.ProductID, Key: line.Key, Quantity: line.Quantity})
	}
	return results
}

func (m *mockCartService) UpdateQuantity(ctx context.Context, cart *models.Cart, key string, quantity int) (*models.CartLine, *services.ServiceError) {
	return m.updateFn(ctx, cart, key, quantity)
}

func (m *mockCartService) RemoveLine(cart *models.Cart, key string) bool {
	return m.removeFn(cart, key)
}

func (m *mockCartService) ClearCart(cart *models.Cart) {
	cart.Clear()
}

type mockPricingService struct {
	calls int
}

func (m *mockPricingService) ComputeTotals(_ context.Context, cart *models.Cart, _ string) *models.PricingSnapshot {
	m.calls++
	return &models.PricingSnapshot{Subtotal: cart.Subtotal().Round(2), Total: cart.Subtotal().Round(2)}
}

type mockDiscountService struct {
	applyFn  func(ctx context.Context, cart *models.Cart, code string) (*models.AppliedDiscount, *services.ServiceError)
	removeFn func(cart *models.Cart) bool
}

func (m *mockDiscountService) Apply(ctx context.Context, cart *models.Cart, code string) (*models.AppliedDiscount, *services.ServiceError) {
	return m.applyFn(ctx, cart, code)
}

func (m *mockDiscountService) Remove(cart *models.Cart) bool {
	return m.removeFn(cart)
}

// --- Helpers ---

type testDeps struct {
	store     *mockCartStore
	carts     *mockCartService
	pricing   *mockPricingService
	discounts *mockDiscountService
}

func setupRouter(deps *testDeps) *gin.Engine {
	r := gin.New()
	cc := controllers.NewCartController(deps.store, deps.carts, deps.pricing, deps.discounts, zap.NewNop())
	routes.RegisterCartRoutes(r, cc)
	return r
}

func defaultDeps() *testDeps {
	return &testDeps{
		store: newMockCartStore(),
		carts: &mockCartService{
			addFn: func(_ context.Context, cart *models.Cart, req models.AddItemRequest) (*models.CartLine, *services.ServiceError) {
				line := models.CartLine{
					Key:       "1_simple",
					ProductID: req.ProductID,
					Quantity:  req.Quantity,
					UnitPrice: decimal.NewFromInt(1000),
				}
				cart.Items = append(cart.Items, line)
				return &line, nil
			},
			updateFn: func(_ context.Context, _ *models.Cart, _ string, _ int) (*models.CartLine, *services.ServiceError) {
				return &models.CartLine{Key: "1_simple", Quantity: 4}, nil
			},
			removeFn: func(cart *models.Cart, key string) bool {
				return cart.RemoveLine(key)
			},
		},
		pricing: &mockPricingService{},
		discounts: &mockDiscountService{
			applyFn: func(_ context.Context, cart *models.Cart, code string) (*models.AppliedDiscount, *services.ServiceError) {
				applied := &models.AppliedDiscount{Code: code, Type: models.CouponTypeFixed, Amount: decimal.NewFromInt(100)}
				cart.Discount = applied
				return applied, nil
			},
			removeFn: func(cart *models.Cart) bool {
				if cart.Discount == nil {
					return false
				}
				cart.Discount = nil
				return true
			},
		},
	}
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", "session-test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// --- Tests ---

func TestGetCart_EmptyReturnsTotals(t *testing.T) {
	deps := defaultDeps()
	r := setupRouter(deps)

	w := doJSON(r, http.MethodGet, "/cart", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Cart   models.Cart            `json:"cart"`
		Totals models.PricingSnapshot `json:"totals"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Cart.Items)
	assert.True(t, resp.Totals.Total.IsZero())
}

func TestAddItem_SavesAndReturnsTotals(t *testing.T) {
	deps := defaultDeps()
	r := setupRouter(deps)

	w := doJSON(r, http.MethodPost, "/cart/items", models.AddItemRequest{ProductID: 1, Quantity: 2})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, deps.store.carts["session-test"].Items, 1)
	assert.Equal(t, 1, deps.pricing.calls)
}

func TestAddItem_InvalidPayload(t *testing.T) {
	deps := defaultDeps()
	r := setupRouter(deps)

	w := doJSON(r, http.MethodPost, "/cart/items", gin.H{"quantity": 2}) // missing product_id
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddItem_ServiceErrorSurfacesCodeAndMax(t *testing.T) {
	deps := defaultDeps()
	deps.carts.addFn = func(_ context.Context, _ *models.Cart, _ models.AddItemRequest) (*models.CartLine, *services.ServiceError) {
		return nil, &services.ServiceError{
			Code: services.CodeInsufficientStock, StatusCode: 409,
			Message: "Requested quantity exceeds available stock", MaxAvailable: 5,
		}
	}
	r := setupRouter(deps)

	w := doJSON(r, http.MethodPost, "/cart/items", models.AddItemRequest{ProductID: 1, Quantity: 9})
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(services.CodeInsufficientStock), resp["code"])
	assert.EqualValues(t, 5, resp["max_available"])
}

func TestAddItems_BulkReportsSkipped(t *testing.T) {
	deps := defaultDeps()
	fail := map[uint]bool{2: true}
	deps.carts.addFn = func(_ context.Context, cart *models.Cart, req models.AddItemRequest) (*models.CartLine, *services.ServiceError) {
		if fail[req.ProductID] {
			return nil, &services.ServiceError{Code: services.CodeOutOfStock, StatusCode: 409, Message: "Out of stock"}
		}
		line := models.CartLine{Key: "ok", ProductID: req.ProductID, Quantity: req.Quantity, UnitPrice: decimal.NewFromInt(100)}
		cart.Items = append(cart.Items, line)
		return &line, nil
	}
	r := setupRouter(deps)

	w := doJSON(r, http.MethodPost, "/cart/items/bulk", models.AddManyRequest{Items: []models.AddItemRequest{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 1},
	}})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Results []models.AddItemResult `json:"results"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Results, 2)
	assert.False(t, resp.Results[0].Skipped)
	assert.True(t, resp.Results[1].Skipped)
	assert.Equal(t, "Out of stock", resp.Results[1].Reason)
}

func TestUpdateQuantity_Success(t *testing.T) {
	deps := defaultDeps()
	r := setupRouter(deps)

	w := doJSON(r, http.MethodPut, "/cart/items/1_simple", models.UpdateQuantityRequest{Quantity: 4})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Line models.CartLine `json:"line"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.Line.Quantity)
}

func TestRemoveItem_DistinguishesMissing(t *testing.T) {
	deps := defaultDeps()
	deps.store.carts["session-test"] = &models.Cart{
		SessionID: "session-test",
		Items:     []models.CartLine{{Key: "1_simple", ProductID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(100)}},
	}
	r := setupRouter(deps)

	w := doJSON(r, http.MethodDelete, "/cart/items/1_simple", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["removed"])

	w = doJSON(r, http.MethodDelete, "/cart/items/never_there", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["removed"])
}

func TestClearCart_DeletesStoredCart(t *testing.T) {
	deps := defaultDeps()
	deps.store.carts["session-test"] = &models.Cart{
		SessionID: "session-test",
		Items:     []models.CartLine{{Key: "1_simple", Quantity: 1, UnitPrice: decimal.NewFromInt(100)}},
	}
	r := setupRouter(deps)

	w := doJSON(r, http.MethodDelete, "/cart", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	_, ok := deps.store.carts["session-test"]
	assert.False(t, ok)
}

func TestApplyCoupon_Success(t *testing.T) {
	deps := defaultDeps()
	r := setupRouter(deps)

	w := doJSON(r, http.MethodPost, "/cart/coupon", models.ApplyCouponRequest{Code: "SAVE10"})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Discount models.AppliedDiscount `json:"discount"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SAVE10", resp.Discount.Code)
}

func TestApplyCoupon_NotFound(t *testing.T) {
	deps := defaultDeps()
	deps.discounts.applyFn = func(_ context.Context, _ *models.Cart, _ string) (*models.AppliedDiscount, *services.ServiceError) {
		return nil, &services.ServiceError{Code: services.CodeCouponNotFound, StatusCode: 404, Message: "Coupon not found or inactive"}
	}
	r := setupRouter(deps)

	w := doJSON(r, http.MethodPost, "/cart/coupon", models.ApplyCouponRequest{Code: "NOPE"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveCoupon_ReportsPresence(t *testing.T) {
	deps := defaultDeps()
	deps.store.carts["session-test"] = &models.Cart{
		SessionID: "session-test",
		Items:     []models.CartLine{{Key: "1_simple", Quantity: 1, UnitPrice: decimal.NewFromInt(100)}},
		Discount:  &models.AppliedDiscount{Code: "SAVE10", Type: models.CouponTypeFixed},
	}
	r := setupRouter(deps)

	w := doJSON(r, http.MethodDelete, "/cart/coupon", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["removed"])

	w = doJSON(r, http.MethodDelete, "/cart/coupon", nil)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["removed"])
}

func TestGetTotals_PassesLocation(t *testing.T) {
	deps := defaultDeps()
	r := setupRouter(deps)

	w := doJSON(r, http.MethodGet, "/cart/totals?location=nairobi", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, deps.pricing.calls)
}
