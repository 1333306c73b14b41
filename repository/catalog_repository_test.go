package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/DoughlasMuthoni/linen-store-sub002/repository"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gormDB, mock
}

func TestGetProduct_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCatalogRepository(gormDB)

	now := time.Now()
	productRows := sqlmock.NewRows([]string{"id", "name", "sku", "price", "stock", "active", "created_at", "updated_at"}).
		AddRow(42, "Percale Sheet Set", "LN-PERC-01", decimal.NewFromInt(2400), 10, true, now, now)
	variantRows := sqlmock.NewRows([]string{"id", "product_id", "size", "color", "material", "stock", "is_default"}).
		AddRow(10, 42, "Queen", "White", "Percale", 5, false).
		AddRow(11, 42, "King", "White", "Percale", 3, true)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products"`)).
		WillReturnRows(productRows)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "product_variants"`)).
		WithArgs(42).
		WillReturnRows(variantRows)

	product, err := repo.GetProduct(context.Background(), 42)
	assert.NoError(t, err)
	assert.Equal(t, "Percale Sheet Set", product.Name)
	assert.Len(t, product.Variants, 2)
}

func TestGetProduct_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCatalogRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products"`)).
		WillReturnRows(sqlmock.NewRows([]string{}))

	product, err := repo.GetProduct(context.Background(), 404)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, product)
}

func TestGetVariant_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCatalogRepository(gormDB)

	rows := sqlmock.NewRows([]string{"id", "product_id", "size", "color", "material", "stock", "is_default"}).
		AddRow(11, 42, "King", "White", "Percale", 3, true)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "product_variants"`)).
		WillReturnRows(rows)

	variant, err := repo.GetVariant(context.Background(), 11)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), variant.ProductID)
	assert.Equal(t, "King", variant.Size)
}

func TestFindVariants_FiltersApplied(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCatalogRepository(gormDB)

	rows := sqlmock.NewRows([]string{"id", "product_id", "size", "color", "material", "stock", "is_default"}).
		AddRow(10, 42, "Queen", "White", "Percale", 5, false)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "product_variants"`)).
		WithArgs(42, "Queen", "White").
		WillReturnRows(rows)

	variants, err := repo.FindVariants(context.Background(), 42, repository.VariantFilters{Size: "Queen", Color: "White"})
	assert.NoError(t, err)
	assert.Len(t, variants, 1)
	assert.Equal(t, "Queen", variants[0].Size)
}

func TestFindVariants_Empty(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCatalogRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "product_variants"`)).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "size", "color", "material", "stock", "is_default"}))

	variants, err := repo.FindVariants(context.Background(), 42, repository.VariantFilters{})
	assert.NoError(t, err)
	assert.Empty(t, variants)
}
