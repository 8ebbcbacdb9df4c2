package pricing

// ApplyVolumeDiscount evaluates the item's volume discount tier against its
// price-list data and returns the repriced item.
//
// A non-combinable tier replaces the explicitly applied discount percentage
// outright; a combinable tier stacks on top of it. Either way the price-list
// (override) discount from the master/base gap still applies first, because
// the combined percentage is resolved through the same pricing math as the
// initial resolution.
//
// A tier with percent zero is a valid no-op that still marks the item as
// evaluated, so "no discount" remains distinguishable from "not evaluated".
// Tax is recomputed for the line since its taxable base changed.
func ApplyVolumeDiscount(item LineItem, in DiscountInput, precision int32) LineItem {
	if item.VolumeDiscount == nil {
		return item
	}
	vd := *item.VolumeDiscount
	item.VolumeDiscountEvaluated = true

	percent := Finite(vd.Percent)
	effective := percent
	if !vd.CantCombineWithOtherDiscounts {
		existing := appliedPercent(item)
		if in.AppliedDiscountPercent != nil {
			existing = Finite(*in.AppliedDiscountPercent)
		}
		effective = existing + percent
	}

	in.AppliedDiscountPercent = &effective
	res := ResolveDiscountPricing(in, precision)
	if res.PriceNotAvailable {
		item.PriceNotAvailable = true
		return item
	}

	if item.OriginalUnitPrice == nil {
		orig := Finite(item.UnitPrice)
		if res.FinalPrice != nil {
			orig = *res.FinalPrice
		}
		item.OriginalUnitPrice = &orig
	}
	item.DiscountPercentage = &effective
	item.EffectiveDiscount = res.DiscountPercent
	item.DiscountedPrice = res.DiscountedPrice
	item.FinalPrice = res.FinalPrice
	item.UnitPrice = res.ListingPrice
	return recomputeLine(item, precision)
}
