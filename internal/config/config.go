package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/noah-isme/storefront-pricing/internal/pricing"
)

// Config holds calculation defaults loaded from the environment. Everything
// has a usable default; the library works without any configuration.
type Config struct {
	AppEnv                string
	LogLevel              string
	LogFormat             string
	MetricsNamespace      string
	Precision             int32
	ItemWiseShippingTax   bool
	RoundingAdjustment    bool
	ShippingTaxPercent    float64
	ApprovalMaxRange      float64
	ApprovalDiscountBased bool
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:                valueOrDefault(k.String("APP_ENV"), "development"),
		LogLevel:              valueOrDefault(k.String("LOG_LEVEL"), "info"),
		LogFormat:             valueOrDefault(k.String("LOG_FORMAT"), "json"),
		MetricsNamespace:      valueOrDefault(k.String("METRICS_NAMESPACE"), "storefront"),
		Precision:             int32(parseIntDefault(k.String("PRICING_PRECISION"), int(pricing.DefaultPrecision))),
		ItemWiseShippingTax:   parseBool(k.String("PRICING_ITEMWISE_SHIPPING_TAX")),
		RoundingAdjustment:    parseBool(k.String("PRICING_ROUNDING_ADJUSTMENT")),
		ShippingTaxPercent:    parseFloatDefault(k.String("PRICING_SHIPPING_TAX_PERCENT"), 0),
		ApprovalMaxRange:      parseFloatDefault(k.String("PRICING_APPROVAL_MAX_RANGE"), 0),
		ApprovalDiscountBased: parseBool(k.String("PRICING_APPROVAL_DISCOUNT_BASED")),
	}

	if cfg.Precision <= 0 {
		cfg.Precision = pricing.DefaultPrecision
	}

	return cfg, nil
}

// Settings converts the loaded defaults into run settings.
func (c *Config) Settings() pricing.CalculationSettings {
	return pricing.CalculationSettings{
		Precision:           c.Precision,
		ItemWiseShippingTax: c.ItemWiseShippingTax,
		RoundingAdjustment:  c.RoundingAdjustment,
	}
}

// MarginOptions converts the loaded thresholds into margin analysis options.
func (c *Config) MarginOptions() pricing.MarginOptions {
	return pricing.MarginOptions{
		MaxRange:      c.ApprovalMaxRange,
		DiscountBased: c.ApprovalDiscountBased,
	}
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseIntDefault(value string, def int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return def
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return def
	}
	return parsed
}

func parseFloatDefault(value string, def float64) float64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return def
	}
	return parsed
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
