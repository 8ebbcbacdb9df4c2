package pricing

import "github.com/google/uuid"

// TaxComponent is one named tax in an HSN breakup, e.g. GST or CESS.
// Compound components are computed against the taxes applied before them
// rather than against the taxable base.
type TaxComponent struct {
	Name     string  `json:"taxName"`
	Rate     float64 `json:"rate"`
	Compound bool    `json:"compound"`
}

// TaxGroup holds the flat percentage and the ordered component list for one
// tax regime. Component order is authoritative: reordering changes compound
// tax results.
type TaxGroup struct {
	TotalTax   float64        `json:"totalTax"`
	Components []TaxComponent `json:"taxReqLs"`
}

// HSNDetails carries the tax reference data attached to a product, split by
// inter-state and intra-state regimes.
type HSNDetails struct {
	InterTax TaxGroup `json:"interTax"`
	IntraTax TaxGroup `json:"intraTax"`
}

// VolumeDiscount describes a quantity-triggered discount tier applied to a
// line item.
type VolumeDiscount struct {
	ID                            uuid.UUID `json:"id"`
	Percent                       float64   `json:"percentage"`
	CantCombineWithOtherDiscounts bool      `json:"cantCombineWithOtherDiscounts"`
}

// LineItem is one product/quantity entry in a cart, quote or order. Fields
// under "derived" are populated by the calculation stages and never supplied
// by the caller. Stages return new values; the caller's input is never
// mutated.
type LineItem struct {
	ProductID int64  `json:"productId"`
	ItemNo    string `json:"itemNo" validate:"required"`

	UnitListPrice float64 `json:"unitListPrice"`
	UnitPrice     float64 `json:"unitPrice"`
	AskedQuantity float64 `json:"askedQuantity"`
	ProductCost   float64 `json:"productCost"`
	AddonCost     float64 `json:"addonCost"`
	BCProductCost float64 `json:"bcProductCost"`
	AddonCostBC   float64 `json:"addonCostBC"`

	// Discount and DiscountPercentage are the explicitly applied discount.
	// When both are present the percentage wins; nil means "no discount
	// supplied", which is distinct from an explicit zero.
	Discount           *float64        `json:"discount,omitempty"`
	DiscountPercentage *float64        `json:"discountPercentage,omitempty"`
	VolumeDiscount     *VolumeDiscount `json:"volumeDiscountObj,omitempty"`

	HSN           *HSNDetails `json:"hsnDetails,omitempty"`
	TaxInclusive  bool        `json:"taxInclusive"`
	PFRate        float64     `json:"pfRate"`
	ShippingValue float64     `json:"shippingValue"`

	// Derived.
	Breakup                 []TaxComponent `json:"taxBreakup,omitempty"`
	FlatTaxPercent          float64        `json:"flatTaxPercent"`
	TaxValues               *TaxTotals     `json:"taxValues,omitempty"`
	TotalTax                float64        `json:"totalTax"`
	ProdTax                 float64        `json:"prodTax"`
	TotalPrice              float64        `json:"totalPrice"`
	TotalProductCost        float64        `json:"totalProductCost"`
	Cost                    float64        `json:"cost"`
	GoingForApproval        bool           `json:"goingForApproval"`
	PriceNotAvailable       bool           `json:"isPriceNotAvailable"`
	VolumeDiscountEvaluated bool           `json:"volumeDiscountEvaluated"`
	OriginalUnitPrice       *float64       `json:"originalUnitPrice,omitempty"`
	DiscountedPrice         *float64       `json:"discountedPrice,omitempty"`
	FinalPrice              *float64       `json:"finalPrice,omitempty"`
	EffectiveDiscount       *float64       `json:"effectiveDiscountPercentage,omitempty"`
}

// CartValue holds the aggregate totals for a cart. GrandTotal is always
// CalculatedTotal + RoundingAdjustment.
type CartValue struct {
	TotalValue         float64    `json:"totalValue"`
	TotalTax           float64    `json:"totalTax"`
	TaxTotals          *TaxTotals `json:"taxTotals"`
	TotalShipping      float64    `json:"totalShipping"`
	TaxableAmount      float64    `json:"taxableAmount"`
	PFRate             float64    `json:"pfRate"`
	RoundingAdjustment float64    `json:"roundingAdjustment"`
	CalculatedTotal    float64    `json:"calculatedTotal"`
	GrandTotal         float64    `json:"grandTotal"`
}

// CalculationSettings configures a single pricing run.
type CalculationSettings struct {
	Precision           int32 `json:"precision"`
	ItemWiseShippingTax bool  `json:"itemWiseShippingTax"`
	RoundingAdjustment  bool  `json:"roundingAdjustment"`
}

// DefaultPrecision is the monetary rounding precision used when the settings
// do not specify one.
const DefaultPrecision int32 = 2

func (s CalculationSettings) precision() int32 {
	if s.Precision <= 0 {
		return DefaultPrecision
	}
	return s.Precision
}

// appliedPercent resolves the explicitly applied discount for an item. The
// percentage takes precedence; a bare discount amount is converted against
// the unit list price when one is known.
func appliedPercent(item LineItem) float64 {
	if item.DiscountPercentage != nil {
		return Finite(*item.DiscountPercentage)
	}
	if item.Discount != nil {
		list := Finite(item.UnitListPrice)
		if list > 0 {
			return Finite(*item.Discount) / list * 100
		}
	}
	return 0
}
