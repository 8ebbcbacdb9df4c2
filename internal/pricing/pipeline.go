package pricing

import (
	"errors"
	"fmt"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/storefront-pricing/internal/obs"
)

// ErrInvalidInput is returned when the cart input shape is malformed.
// Data-quality problems inside a well-formed shape (NaN prices, missing tax
// data) never trip this; they degrade to zero per field instead.
var ErrInvalidInput = errors.New("invalid pricing input")

// LineInput couples a raw line item with the price-list data the catalog
// collaborator resolved for its product.
type LineInput struct {
	Item    LineItem      `json:"item"`
	Pricing DiscountInput `json:"pricing"`
}

// CartInput is a whole-cart pricing request.
type CartInput struct {
	Lines []LineInput `json:"lines" validate:"required,min=1,dive"`
	// InterState selects the tax regime for every line in the cart.
	InterState bool `json:"interState"`
	// TaxExempt marks the buyer as tax-exempt, enabling the tax-inclusive
	// base price adjustment.
	TaxExempt bool `json:"taxExempt"`
	// ShippingTaxPercent is used in cart-wise shipping tax mode.
	ShippingTaxPercent float64 `json:"shippingTaxPercent"`
	// PreviousDisplayedTotal feeds the rounding adjustment when enabled.
	PreviousDisplayedTotal *float64 `json:"previousDisplayedTotal,omitempty"`
}

// PricedCart is the result of a whole-cart pricing run.
type PricedCart struct {
	Items []LineItem `json:"items"`
	Cart  CartValue  `json:"cart"`
}

// Engine composes the calculation stages into the full pricing pipeline.
// It holds no mutable state and is safe for concurrent use; every run works
// on its own copies of the input values.
type Engine struct {
	Settings CalculationSettings
	Logger   zerolog.Logger
	Validate *validator.Validate
}

// NewEngine returns an engine with the given settings and logger.
func NewEngine(settings CalculationSettings, logger zerolog.Logger) *Engine {
	return &Engine{
		Settings: settings,
		Logger:   logger,
		Validate: validator.New(),
	}
}

// PriceCart prices every line in input order and aggregates the cart totals:
// tax breakup resolution, discount pricing, volume discount, line tax, then
// aggregation. Lines whose price data is unavailable come back flagged
// PriceNotAvailable with no price or tax math attempted.
func (e *Engine) PriceCart(in CartInput) (PricedCart, error) {
	start := time.Now()
	if err := e.validateInput(in); err != nil {
		e.countRun("invalid")
		return PricedCart{}, err
	}

	precision := e.Settings.precision()
	items := make([]LineItem, 0, len(in.Lines))
	for _, line := range in.Lines {
		items = append(items, e.priceLine(line, in, precision))
	}

	cart, items := Aggregate(items, AggregateInput{
		Settings:               e.Settings,
		ShippingTaxPercent:     in.ShippingTaxPercent,
		PreviousDisplayedTotal: in.PreviousDisplayedTotal,
	})

	e.countRun("ok")
	if obs.PricingLinesTotal != nil {
		obs.PricingLinesTotal.Add(float64(len(items)))
	}
	if obs.PricingRunDuration != nil {
		obs.PricingRunDuration.Observe(float64(time.Since(start).Microseconds()) / 1000)
	}
	e.Logger.Debug().
		Int("lines", len(items)).
		Float64("total_value", cart.TotalValue).
		Float64("total_tax", cart.TotalTax).
		Float64("grand_total", cart.GrandTotal).
		Msg("cart priced")

	return PricedCart{Items: items, Cart: cart}, nil
}

func (e *Engine) priceLine(line LineInput, in CartInput, precision int32) LineItem {
	item := line.Item
	item.Breakup = ResolveTaxBreakup(item.HSN, in.InterState)
	item.FlatTaxPercent = FlatTaxRate(item.HSN, in.InterState)

	pr := line.Pricing
	pr.TaxInclusive = pr.TaxInclusive || item.TaxInclusive
	if in.TaxExempt {
		pr.TaxExempt = true
	}
	if pr.TaxPercent == 0 {
		pr.TaxPercent = item.FlatTaxPercent
	}
	if pr.AppliedDiscountPercent == nil {
		if p := appliedPercent(item); p > 0 {
			pr.AppliedDiscountPercent = &p
		}
	}

	res := ResolveDiscountPricing(pr, precision)
	if res.PriceNotAvailable {
		item.PriceNotAvailable = true
		if obs.PriceUnavailableTotal != nil {
			obs.PriceUnavailableTotal.Inc()
		}
		e.Logger.Debug().Str("item_no", item.ItemNo).Msg("price not available")
		return item
	}

	if res.DiscountPercent != nil && item.OriginalUnitPrice == nil && res.FinalPrice != nil {
		orig := *res.FinalPrice
		item.OriginalUnitPrice = &orig
	}
	item.EffectiveDiscount = res.DiscountPercent
	item.DiscountedPrice = res.DiscountedPrice
	item.FinalPrice = res.FinalPrice
	item.UnitPrice = res.ListingPrice
	item.TotalPrice = Round(item.UnitPrice*Finite(item.AskedQuantity), precision)

	item = ApplyVolumeDiscount(item, pr, precision)
	return CalculateLineTax(item, precision)
}

// Margins runs the margin analysis for the cart, recording approval flags
// in the run metrics.
func (e *Engine) Margins(items, prev []LineItem, subTotal float64, opts MarginOptions) MarginResult {
	res := CalculateMargins(items, prev, subTotal, opts)
	var flagged int
	for _, item := range res.Items {
		if item.GoingForApproval {
			flagged++
		}
	}
	if flagged > 0 && obs.ApprovalFlaggedTotal != nil {
		obs.ApprovalFlaggedTotal.Add(float64(flagged))
	}
	e.Logger.Debug().
		Int("lines", len(res.Items)).
		Int("flagged", flagged).
		Float64("ho_profit", res.HoProfit).
		Float64("cost_profit", res.CostProfit).
		Msg("margins calculated")
	return res
}

func (e *Engine) validateInput(in CartInput) error {
	v := e.Validate
	if v == nil {
		v = validator.New()
	}
	if err := v.Struct(in); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalidInput)
	}
	return nil
}

func (e *Engine) countRun(result string) {
	if obs.PricingRunsTotal != nil {
		obs.PricingRunsTotal.WithLabelValues(result).Inc()
	}
}
