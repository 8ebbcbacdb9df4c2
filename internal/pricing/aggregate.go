package pricing

// ShippingTaxName is the tax-totals key under which shipping tax accumulates.
const ShippingTaxName = "SHIPPING_TAX"

// AggregateInput configures a cart aggregation pass.
type AggregateInput struct {
	Settings CalculationSettings
	// ShippingTaxPercent is the cart-level shipping tax rate, used only in
	// cart-wise mode. In item-wise mode each line's own flat rate applies.
	ShippingTaxPercent float64
	// PreviousDisplayedTotal, when present and rounding adjustment is
	// enabled, is the total the caller already showed; the adjustment
	// reconciles the recomputed total against it.
	PreviousDisplayedTotal *float64
}

// Aggregate sums per-line totals into a CartValue, walking items in input
// order so the dynamic tax-name accumulation stays stable. It returns the
// cart totals together with the (possibly shipping-tax-adjusted) items; in
// item-wise mode shipping tax is folded into each line's TotalTax and
// ProdTax before aggregation, in cart-wise mode it is computed once against
// the shipping total afterwards.
func Aggregate(items []LineItem, in AggregateInput) (CartValue, []LineItem) {
	precision := in.Settings.precision()
	cart := CartValue{TaxTotals: NewTaxTotals()}
	out := make([]LineItem, len(items))

	for i, item := range items {
		if in.Settings.ItemWiseShippingTax {
			shipTax := percentOf(item.ShippingValue, item.FlatTaxPercent, precision)
			if shipTax != 0 {
				item.TaxValues = item.TaxValues.Clone()
				item.TaxValues.Add(ShippingTaxName, shipTax)
				item.TotalTax += shipTax
				item.ProdTax += shipTax
			}
		}

		cart.TotalValue += Finite(item.TotalPrice)
		cart.PFRate += Finite(item.PFRate)
		cart.TotalShipping += Finite(item.ShippingValue)
		cart.TotalTax += Finite(item.TotalTax)
		if item.TaxValues != nil {
			for _, name := range item.TaxValues.Names() {
				cart.TaxTotals.Add(name, item.TaxValues.Get(name))
			}
		}
		out[i] = item
	}

	if !in.Settings.ItemWiseShippingTax {
		shipTax := percentOf(cart.TotalShipping, in.ShippingTaxPercent, precision)
		if shipTax != 0 {
			cart.TaxTotals.Add(ShippingTaxName, shipTax)
			cart.TotalTax += shipTax
		}
	}

	cart.TaxableAmount = cart.TotalValue + cart.PFRate
	cart.CalculatedTotal = Round(cart.TaxableAmount+cart.TotalTax+cart.TotalShipping, precision)

	if in.Settings.RoundingAdjustment && in.PreviousDisplayedTotal != nil {
		cart.RoundingAdjustment = Round(Finite(*in.PreviousDisplayedTotal)-cart.CalculatedTotal, precision)
	}
	cart.GrandTotal = cart.CalculatedTotal + cart.RoundingAdjustment
	return cart, out
}
