package pricing

// CalculateLineTax applies the item's resolved tax breakup to its taxable
// base (total price plus the line's packing & forwarding share) and returns
// the item with TaxValues, TotalTax and ProdTax populated.
//
// Components are walked strictly in breakup order. A non-compound component
// taxes the base; a compound component taxes the running total of every
// component value computed before it on this line. Each value is rounded
// individually; the running total is not re-rounded.
//
// ProdTax is a secondary convenience figure computed from the flat regime
// percentage, used for display and export. Under compounding it diverges
// from TotalTax, and that divergence is deliberate.
func CalculateLineTax(item LineItem, precision int32) LineItem {
	base := Finite(item.TotalPrice) + Finite(item.PFRate)

	values := NewTaxTotals()
	var running float64
	for _, c := range item.Breakup {
		var v float64
		if c.Compound {
			v = percentOf(running, c.Rate, precision)
		} else {
			v = percentOf(base, c.Rate, precision)
		}
		values.Add(c.Name, v)
		running += v
	}

	item.TaxValues = values
	item.TotalTax = running
	item.ProdTax = percentOf(base, item.FlatTaxPercent, precision)
	return item
}
