package pricing

// MarginOptions controls approval-escalation detection for a margin run.
// MaxRange is the escalation threshold. DiscountBased selects the comparison
// metric: discount percentage when true, line margin percentage otherwise.
// PrevApproved, when non-nil, is the threshold approved on the previous
// version of the cart, enabling the movement comparison against matched
// previous line items.
type MarginOptions struct {
	MaxRange      float64
	DiscountBased bool
	PrevApproved  *float64
	IsRejected    bool
}

// MarginResult is the cart-wide cost/profit analysis. Items carries the
// input line items annotated with cost rollups and the GoingForApproval
// flag, which is always explicitly set (never left indeterminate).
type MarginResult struct {
	TotalHoCost        float64    `json:"totalHoCost"`
	TotalProductCost   float64    `json:"totalProductCost"`
	TotalHoCostBC      float64    `json:"totalHoCostBC"`
	TotalProductCostBC float64    `json:"totalProductCostBC"`
	HoProfit           float64    `json:"hoProfit"`
	CostProfit         float64    `json:"costProfit"`
	Items              []LineItem `json:"data"`
}

// CalculateMargins aggregates cost data across the cart, flags line items
// whose discount or margin crosses the approval threshold, and computes the
// overall profit percentages. Items are processed in input order and the
// returned slice holds new values; the inputs are not mutated.
//
// Matching against the previous cart version is by ItemNo. When a match
// exists and a previously approved threshold is present, a line escalates
// only if its metric both moved unfavorably versus the previous version and
// crosses MaxRange in absolute terms. Without a match (or without a previous
// approval) the absolute threshold check alone decides.
func CalculateMargins(items, prev []LineItem, subTotal float64, opts MarginOptions) MarginResult {
	prevByNo := make(map[string]LineItem, len(prev))
	for _, p := range prev {
		prevByNo[p.ItemNo] = p
	}

	res := MarginResult{Items: make([]LineItem, len(items))}
	for i, item := range items {
		qty := Finite(item.AskedQuantity)
		item.Cost = (Finite(item.ProductCost) + Finite(item.AddonCost)) * qty
		item.TotalProductCost = Finite(item.ProductCost) * qty
		costBC := (Finite(item.BCProductCost) + Finite(item.AddonCostBC)) * qty
		productCostBC := Finite(item.BCProductCost) * qty

		res.TotalHoCost += item.Cost
		res.TotalProductCost += item.TotalProductCost
		res.TotalHoCostBC += costBC
		res.TotalProductCostBC += productCostBC

		item.GoingForApproval = false
		metric := itemMetric(item, opts.DiscountBased)
		if prevItem, ok := prevByNo[item.ItemNo]; ok && opts.PrevApproved != nil {
			prevMetric := itemMetric(prevItem, opts.DiscountBased)
			if opts.IsRejected {
				// TODO: confirm with product whether the movement comparison
				// should invert for previously rejected versions.
				item.GoingForApproval = movedUnfavorably(metric, prevMetric, opts.DiscountBased) &&
					crossesThreshold(metric, opts)
			} else {
				item.GoingForApproval = movedUnfavorably(metric, prevMetric, opts.DiscountBased) &&
					crossesThreshold(metric, opts)
			}
		} else {
			item.GoingForApproval = crossesThreshold(metric, opts)
		}
		res.Items[i] = item
	}

	res.HoProfit = profitPercent(subTotal, res.TotalHoCost)
	res.CostProfit = profitPercent(subTotal, res.TotalProductCost)
	return res
}

// itemMetric returns the per-line comparison metric: the effective discount
// percentage when discount-based, the line margin percentage otherwise.
func itemMetric(item LineItem, discountBased bool) float64 {
	if discountBased {
		if item.EffectiveDiscount != nil {
			return Finite(*item.EffectiveDiscount)
		}
		return appliedPercent(item)
	}
	value := Finite(item.TotalPrice)
	if value <= 0 {
		return 0
	}
	cost := (Finite(item.ProductCost) + Finite(item.AddonCost)) * Finite(item.AskedQuantity)
	return (value - cost) / value * 100
}

// movedUnfavorably reports whether the metric moved in the direction that
// warrants re-approval: discounts rising, margins falling.
func movedUnfavorably(current, previous float64, discountBased bool) bool {
	if discountBased {
		return current > previous
	}
	return current < previous
}

// crossesThreshold is the absolute check: a discount at or above MaxRange or
// a margin at or below it.
func crossesThreshold(metric float64, opts MarginOptions) bool {
	if opts.DiscountBased {
		return metric >= opts.MaxRange
	}
	return metric <= opts.MaxRange
}

// profitPercent guards the division: zero subtotal or zero cost never yields
// NaN or infinity for financial output.
func profitPercent(subTotal, cost float64) float64 {
	subTotal = Finite(subTotal)
	cost = Finite(cost)
	if subTotal <= 0 || cost <= 0 {
		return 0
	}
	return (subTotal - cost) / subTotal * 100
}
