package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/DoughlasMuthoni/linen-store-sub002/models"
	"github.com/DoughlasMuthoni/linen-store-sub002/repository"
)

func TestCreateCoupon_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCouponRepository(gormDB)

	coupon := &models.Coupon{
		ID:        uuid.New(),
		Code:      "WELCOME10",
		Type:      models.CouponTypePercentage,
		Value:     decimal.NewFromInt(10),
		ExpiresAt: time.Now().Add(24 * time.Hour),
		Active:    true,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "coupons"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(coupon.ID))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), coupon)
	assert.NoError(t, err)
}

func TestFindByCode_CaseInsensitive(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCouponRepository(gormDB)

	id := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "code", "type", "value", "min_order_value", "usage_limit", "used_count", "expires_at", "active", "created_at", "updated_at"}).
		AddRow(id, "WELCOME10", models.CouponTypePercentage, decimal.NewFromInt(10), decimal.Zero, 0, 0, now.Add(24*time.Hour), true, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "coupons"`)).
		WithArgs("welcome10", true).
		WillReturnRows(rows)

	coupon, err := repo.FindByCode(context.Background(), "Welcome10")
	assert.NoError(t, err)
	assert.Equal(t, "WELCOME10", coupon.Code)
}

func TestFindByCode_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCouponRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "coupons"`)).
		WillReturnRows(sqlmock.NewRows([]string{}))

	coupon, err := repo.FindByCode(context.Background(), "MISSING")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, coupon)
}

func TestIncrementUsedCount_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCouponRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "coupons"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.IncrementUsedCount(context.Background(), "WELCOME10")
	assert.NoError(t, err)
}

func TestDeactivate_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCouponRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "coupons"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Deactivate(context.Background(), "MISSING")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindAll_Paginated(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCouponRepository(gormDB)

	now := time.Now()
	countRows := sqlmock.NewRows([]string{"count"}).AddRow(12)
	rows := sqlmock.NewRows([]string{"id", "code", "type", "value", "min_order_value", "usage_limit", "used_count", "expires_at", "active", "created_at", "updated_at"}).
		AddRow(uuid.New(), "WELCOME10", models.CouponTypePercentage, decimal.NewFromInt(10), decimal.Zero, 0, 0, now.Add(24*time.Hour), true, now, now).
		AddRow(uuid.New(), "FLAT500", models.CouponTypeFixed, decimal.NewFromInt(500), decimal.NewFromInt(2000), 100, 3, now.Add(48*time.Hour), true, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "coupons"`)).
		WillReturnRows(countRows)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "coupons"`)).
		WillReturnRows(rows)

	coupons, total, err := repo.FindAll(context.Background(), 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), total)
	assert.Len(t, coupons, 2)
}
