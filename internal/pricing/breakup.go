package pricing

// ResolveTaxBreakup selects the ordered tax component list for the active
// regime: inter-state when interState is true, intra-state otherwise. The
// order is preserved exactly as supplied by the tax reference data since
// compound taxes are computed against the running total of the components
// before them. A missing HSN yields an empty breakup (zero tax), not an
// error. The returned slice is a copy and never aliases the input.
func ResolveTaxBreakup(hsn *HSNDetails, interState bool) []TaxComponent {
	if hsn == nil {
		return nil
	}
	src := hsn.IntraTax.Components
	if interState {
		src = hsn.InterTax.Components
	}
	if len(src) == 0 {
		return nil
	}
	out := make([]TaxComponent, len(src))
	for i, c := range src {
		out[i] = TaxComponent{Name: c.Name, Rate: Finite(c.Rate), Compound: c.Compound}
	}
	return out
}

// FlatTaxRate returns the flat total percentage for the active regime. It is
// the rate behind the convenience prodTax figure and the tax-inclusive price
// adjustment; it is independent of the per-component breakup.
func FlatTaxRate(hsn *HSNDetails, interState bool) float64 {
	if hsn == nil {
		return 0
	}
	if interState {
		return Finite(hsn.InterTax.TotalTax)
	}
	return Finite(hsn.IntraTax.TotalTax)
}
