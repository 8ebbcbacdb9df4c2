package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/storefront-pricing/internal/config"
	"github.com/noah-isme/storefront-pricing/internal/pricing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"PRICING_PRECISION":             "",
		"PRICING_ITEMWISE_SHIPPING_TAX": "",
		"PRICING_ROUNDING_ADJUSTMENT":   "",
		"PRICING_APPROVAL_MAX_RANGE":    "",
		"LOG_LEVEL":                     "",
	})
	require.NoError(t, err)

	require.Equal(t, pricing.DefaultPrecision, cfg.Precision)
	require.False(t, cfg.ItemWiseShippingTax)
	require.False(t, cfg.RoundingAdjustment)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "storefront", cfg.MetricsNamespace)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"PRICING_PRECISION":               "4",
		"PRICING_ITEMWISE_SHIPPING_TAX":   "true",
		"PRICING_ROUNDING_ADJUSTMENT":     "1",
		"PRICING_SHIPPING_TAX_PERCENT":    "18",
		"PRICING_APPROVAL_MAX_RANGE":      "15.5",
		"PRICING_APPROVAL_DISCOUNT_BASED": "yes",
	})
	require.NoError(t, err)

	require.Equal(t, int32(4), cfg.Precision)
	require.True(t, cfg.ItemWiseShippingTax)
	require.True(t, cfg.RoundingAdjustment)
	require.Equal(t, 18.0, cfg.ShippingTaxPercent)
	require.Equal(t, 15.5, cfg.ApprovalMaxRange)
	require.True(t, cfg.ApprovalDiscountBased)

	settings := cfg.Settings()
	require.Equal(t, int32(4), settings.Precision)
	require.True(t, settings.ItemWiseShippingTax)

	opts := cfg.MarginOptions()
	require.Equal(t, 15.5, opts.MaxRange)
	require.True(t, opts.DiscountBased)
}

func TestLoadIgnoresGarbageNumbers(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"PRICING_PRECISION":          "not-a-number",
		"PRICING_APPROVAL_MAX_RANGE": "lots",
	})
	require.NoError(t, err)
	require.Equal(t, pricing.DefaultPrecision, cfg.Precision)
	require.Zero(t, cfg.ApprovalMaxRange)
}
