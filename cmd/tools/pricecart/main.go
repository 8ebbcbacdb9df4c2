package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/noah-isme/storefront-pricing/internal/config"
	"github.com/noah-isme/storefront-pricing/internal/obs"
	"github.com/noah-isme/storefront-pricing/internal/pricing"
)

// pricecart prices a cart fixture JSON and prints the result. Handy for
// reproducing pricing questions from support tickets without spinning up the
// calling application.
func main() {
	_ = godotenv.Load()

	var (
		file    = flag.String("file", "", "path to a cart input JSON file (defaults to stdin)")
		margins = flag.Bool("margins", false, "also run margin analysis against an empty previous cart")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel)
	obs.MustRegisterDomainMetrics(cfg.MetricsNamespace, prometheus.NewRegistry())

	if err := run(cfg, logger, *file, *margins); err != nil {
		logger.Error().Err(err).Msg("pricecart failed")
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger zerolog.Logger, file string, margins bool) error {
	in := os.Stdin
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("open cart fixture %s: %w", file, err)
		}
		defer f.Close()
		in = f
	}

	var cart pricing.CartInput
	if err := json.NewDecoder(in).Decode(&cart); err != nil {
		return fmt.Errorf("decode cart fixture: %w", err)
	}
	if cart.ShippingTaxPercent == 0 {
		cart.ShippingTaxPercent = cfg.ShippingTaxPercent
	}

	engine := pricing.NewEngine(cfg.Settings(), logger)
	priced, err := engine.PriceCart(cart)
	if err != nil {
		return fmt.Errorf("price cart: %w", err)
	}

	out := struct {
		pricing.PricedCart
		Margins *pricing.MarginResult `json:"margins,omitempty"`
	}{PricedCart: priced}

	if margins {
		res := engine.Margins(priced.Items, nil, priced.Cart.TotalValue, cfg.MarginOptions())
		out.Margins = &res
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}
