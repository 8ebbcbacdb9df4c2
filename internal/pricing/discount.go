package pricing

// DiscountInput carries the price-list data for one product as supplied by
// the catalog collaborator. Nil prices mean the data is unavailable, which
// is a valid "Request Price" state rather than an error.
type DiscountInput struct {
	MasterPrice            *float64 `json:"masterPrice"`
	BasePrice              *float64 `json:"basePrice"`
	AvailableInPriceList   bool     `json:"isProductAvailableInPriceList"`
	OverridePricelist      bool     `json:"isOveridePricelist"`
	AppliedDiscountPercent *float64 `json:"appliedDiscountPercent,omitempty"`
	TaxInclusive           bool     `json:"taxInclusive"`
	TaxExempt              bool     `json:"taxExempt"`
	TaxPercent             float64  `json:"taxPercent"`
}

// DiscountResult is the resolved effective pricing for one line item.
// ListingPrice is the price actually charged; FinalPrice is the reference
// (strikethrough) price shown alongside it when they differ.
type DiscountResult struct {
	PriceNotAvailable bool     `json:"isPriceNotAvailable"`
	DiscountedPrice   *float64 `json:"discountedPrice,omitempty"`
	FinalPrice        *float64 `json:"finalPrice,omitempty"`
	ListingPrice      float64  `json:"finalListingPrice"`
	DiscountPercent   *float64 `json:"discountPercentage,omitempty"`
}

// ResolveDiscountPricing combines the price-list discount implied by the
// master/base price gap with any explicitly applied discount percentage.
// It is stateless and idempotent: the same input always yields the same
// output.
//
// When the item's price is tax-inclusive and the buyer is tax-exempt, the
// flat tax is stripped out of the base price first and all further math uses
// the adjusted base.
func ResolveDiscountPricing(in DiscountInput, precision int32) DiscountResult {
	if in.MasterPrice == nil || in.BasePrice == nil || !in.AvailableInPriceList {
		return DiscountResult{PriceNotAvailable: true}
	}

	adjustedBase := Finite(*in.BasePrice)
	if in.TaxInclusive && in.TaxExempt {
		taxPercent := Finite(in.TaxPercent)
		if taxPercent > 0 {
			adjustedBase = Round(adjustedBase/(1+taxPercent/100), precision)
		}
	}
	master := Finite(*in.MasterPrice)

	var applied float64
	var hasApplied bool
	if in.AppliedDiscountPercent != nil && Finite(*in.AppliedDiscountPercent) > 0 {
		applied = Finite(*in.AppliedDiscountPercent)
		hasApplied = true
	}

	res := DiscountResult{}
	if !in.OverridePricelist && master != adjustedBase && master > 0 {
		// The price list already sells below (or above) the master price;
		// express that gap as an implicit discount so explicit discounts
		// stack on the master price rather than double-applying.
		override := (master - adjustedBase) / master * 100
		total := override
		var discounted float64
		if hasApplied {
			total = override + applied
			discounted = lessPercent(master, total, precision)
		} else {
			discounted = adjustedBase
		}
		res.DiscountedPrice = &discounted
		res.DiscountPercent = &total
		res.FinalPrice = &master
	} else {
		if hasApplied {
			discounted := lessPercent(adjustedBase, applied, precision)
			res.DiscountedPrice = &discounted
			res.DiscountPercent = &applied
		}
		res.FinalPrice = &adjustedBase
	}

	if res.DiscountedPrice != nil {
		res.ListingPrice = *res.DiscountedPrice
	} else {
		res.ListingPrice = *res.FinalPrice
	}
	return res
}

// ApplyCashDiscount applies a manual discount percentage to the item's unit
// price. The pre-discount unit price is snapshotted into OriginalUnitPrice
// the first time any discount touches the item and the snapshot is never
// overwritten afterwards, so repeated discount changes always recompute from
// the same base. Totals and tax are recomputed for the new price.
func ApplyCashDiscount(item LineItem, percent float64, precision int32) LineItem {
	percent = Finite(percent)
	if item.OriginalUnitPrice == nil {
		orig := Finite(item.UnitPrice)
		item.OriginalUnitPrice = &orig
	}
	item.UnitPrice = lessPercent(*item.OriginalUnitPrice, percent, precision)
	item.DiscountPercentage = &percent
	item.EffectiveDiscount = &percent
	return recomputeLine(item, precision)
}

// RemoveCashDiscount restores the unit price from the OriginalUnitPrice
// snapshot and resets the discount to an explicit zero.
func RemoveCashDiscount(item LineItem, precision int32) LineItem {
	if item.OriginalUnitPrice != nil {
		item.UnitPrice = *item.OriginalUnitPrice
	}
	zero := 0.0
	item.Discount = &zero
	item.DiscountPercentage = &zero
	item.EffectiveDiscount = &zero
	item.DiscountedPrice = nil
	return recomputeLine(item, precision)
}

// recomputeLine refreshes the quantity total and per-line tax after a unit
// price change.
func recomputeLine(item LineItem, precision int32) LineItem {
	item.TotalPrice = Round(Finite(item.UnitPrice)*Finite(item.AskedQuantity), precision)
	return CalculateLineTax(item, precision)
}
