package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DoughlasMuthoni/linen-store-sub002/controllers"
	"github.com/DoughlasMuthoni/linen-store-sub002/database"
	"github.com/DoughlasMuthoni/linen-store-sub002/events"
	"github.com/DoughlasMuthoni/linen-store-sub002/models"
	"github.com/DoughlasMuthoni/linen-store-sub002/providers"
	"github.com/DoughlasMuthoni/linen-store-sub002/repository"
	"github.com/DoughlasMuthoni/linen-store-sub002/routes"
	"github.com/DoughlasMuthoni/linen-store-sub002/services"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	cfg := LoadConfig()

	// --- Database ---
	db, err := database.ConnectPostgres(logger,
		&models.Product{},
		&models.ProductVariant{},
		&models.Coupon{},
		&models.StoreSettings{},
		&models.ShippingZone{},
	)
	if err != nil {
		logger.Fatal("DB connection failed", zap.Error(err))
	}

	// --- Redis (session carts) ---
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		logger.Fatal("Redis connection failed", zap.Error(err))
	}

	// --- SNS (discount events, non-fatal) ---
	var snsClient events.SNSPublisher
	if cfg.DiscountSNSTopicARN != "" {
		awsCfg, awsErr := events.LoadAWSConfig(context.Background())
		if awsErr != nil {
			logger.Warn("AWS config load failed, discount events disabled", zap.Error(awsErr))
		} else {
			snsClient = events.NewSNSClient(awsCfg)
		}
	}

	// --- Dependency injection ---
	catalogRepo := repository.NewGormCatalogRepository(db)
	couponRepo := repository.NewGormCouponRepository(db)
	settingsRepo := repository.NewGormSettingsRepository(db)
	cartRepo := repository.NewCartRepository(redisClient, cfg.CartTTL)

	resolver := services.NewCatalogResolver(catalogRepo, cfg.FallbackUnitPrice, logger)
	cartService := services.NewCartService(resolver, logger)
	pricingService := services.NewPricingService(
		providers.NewStoreTaxProvider(settingsRepo),
		providers.NewZoneShippingProvider(settingsRepo),
		services.PricingFallbacks{
			TaxRatePercent:    cfg.FallbackTaxRatePercent,
			FlatShippingFee:   cfg.FlatShippingFee,
			FreeShippingFloor: cfg.FreeShippingFloor,
		},
		logger,
	)
	discountService := services.NewDiscountService(couponRepo, snsClient, cfg.DiscountSNSTopicARN, logger)
	couponService := services.NewCouponService(couponRepo, logger)

	cartController := controllers.NewCartController(cartRepo, cartService, pricingService, discountService, logger)
	couponController := controllers.NewCouponController(couponService)

	// --- Router ---
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			logger.Error("http_request", fields...)
		case status >= 400:
			logger.Warn("http_request", fields...)
		default:
			logger.Info("http_request", fields...)
		}
	})

	routes.RegisterCartRoutes(r, cartController)
	routes.RegisterCouponRoutes(r, couponController)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "cart-engine"})
	})

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Info("Cart engine started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		logger.Error("Redis close error", zap.Error(err))
	}
	if err := database.Close(); err != nil {
		logger.Error("Database close error", zap.Error(err))
	}

	logger.Info("Cart engine stopped gracefully")
}
