package main

import (
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all configuration for the cart engine service, including
// the documented fallback constants used when a provider is unreachable.
type Config struct {
	Port     string
	RedisURL string
	CartTTL  time.Duration

	// Degraded-mode catalog price: used when the catalog cannot be read.
	FallbackUnitPrice decimal.Decimal

	// Pricing fallbacks when tax/shipping providers are unreachable.
	FallbackTaxRatePercent decimal.Decimal
	FlatShippingFee        decimal.Decimal
	FreeShippingFloor      decimal.Decimal

	// SNS topic for discount events (optional).
	DiscountSNSTopicARN string
}

// LoadConfig reads configuration from environment variables with defaults.
func LoadConfig() Config {
	return Config{
		Port:                   getEnv("PORT", "8085"),
		RedisURL:               getEnv("REDIS_URL", "redis://localhost:6379"),
		CartTTL:                getDuration("CART_TTL", 7*24*time.Hour),
		FallbackUnitPrice:      getDecimal("FALLBACK_UNIT_PRICE", "1000"),
		FallbackTaxRatePercent: getDecimal("FALLBACK_TAX_RATE_PERCENT", "16"),
		FlatShippingFee:        getDecimal("FLAT_SHIPPING_FEE", "300"),
		FreeShippingFloor:      getDecimal("FREE_SHIPPING_FLOOR", "5000"),
		DiscountSNSTopicARN:    os.Getenv("DISCOUNT_SNS_TOPIC_ARN"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDecimal(key, fallback string) decimal.Decimal {
	raw := getEnv(key, fallback)
	if d, err := decimal.NewFromString(raw); err == nil {
		return d
	}
	d, _ := decimal.NewFromString(fallback)
	return d
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
