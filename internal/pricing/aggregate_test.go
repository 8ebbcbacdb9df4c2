package pricing

import (
	"reflect"
	"testing"
)

func taxedLine(no string, price, rate float64) LineItem {
	item := LineItem{ItemNo: no, TotalPrice: price, FlatTaxPercent: rate,
		Breakup: []TaxComponent{{Name: "GST", Rate: rate}}}
	return CalculateLineTax(item, 2)
}

func TestAggregateSumsLineTotals(t *testing.T) {
	items := []LineItem{
		taxedLine("L1", 100, 10),
		taxedLine("L2", 200, 10),
	}
	cart, _ := Aggregate(items, AggregateInput{})

	if cart.TotalValue != 300 {
		t.Fatalf("totalValue = %v, want 300", cart.TotalValue)
	}
	if cart.TotalTax != 30 {
		t.Fatalf("totalTax = %v, want 30", cart.TotalTax)
	}
	if cart.TaxTotals.Get("GST") != 30 {
		t.Fatalf("GST total = %v, want 30", cart.TaxTotals.Get("GST"))
	}
	if cart.CalculatedTotal != 330 {
		t.Fatalf("calculatedTotal = %v, want 330", cart.CalculatedTotal)
	}
	if cart.GrandTotal != cart.CalculatedTotal+cart.RoundingAdjustment {
		t.Fatal("grand total invariant broken")
	}
}

func TestAggregateTotalValueOrderIndependent(t *testing.T) {
	a := []LineItem{taxedLine("L1", 100, 10), taxedLine("L2", 200, 5), taxedLine("L3", 50, 0)}
	b := []LineItem{a[2], a[0], a[1]}

	cartA, _ := Aggregate(a, AggregateInput{})
	cartB, _ := Aggregate(b, AggregateInput{})
	if cartA.TotalValue != cartB.TotalValue {
		t.Fatalf("totalValue depends on order: %v vs %v", cartA.TotalValue, cartB.TotalValue)
	}
}

func TestAggregateTaxNameOrderFollowsLines(t *testing.T) {
	first := LineItem{ItemNo: "L1", TotalPrice: 100,
		Breakup: []TaxComponent{{Name: "GST", Rate: 10}, {Name: "CESS", Rate: 1, Compound: true}}}
	second := LineItem{ItemNo: "L2", TotalPrice: 100,
		Breakup: []TaxComponent{{Name: "VAT", Rate: 5}}}
	items := []LineItem{CalculateLineTax(first, 2), CalculateLineTax(second, 2)}

	cart, _ := Aggregate(items, AggregateInput{})
	want := []string{"GST", "CESS", "VAT"}
	if got := cart.TaxTotals.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("tax name order = %v, want %v", got, want)
	}
}

func TestAggregateCartWiseShippingTax(t *testing.T) {
	items := []LineItem{
		{ItemNo: "L1", TotalPrice: 100, ShippingValue: 40},
		{ItemNo: "L2", TotalPrice: 100, ShippingValue: 60},
	}
	cart, _ := Aggregate(items, AggregateInput{ShippingTaxPercent: 18})

	if cart.TotalShipping != 100 {
		t.Fatalf("totalShipping = %v, want 100", cart.TotalShipping)
	}
	if got := cart.TaxTotals.Get(ShippingTaxName); got != 18 {
		t.Fatalf("shipping tax = %v, want 18 computed once on the cart total", got)
	}
	if cart.TotalTax != 18 {
		t.Fatalf("totalTax = %v, want 18", cart.TotalTax)
	}
}

func TestAggregateItemWiseShippingTax(t *testing.T) {
	line := taxedLine("L1", 100, 10)
	line.ShippingValue = 50
	items := []LineItem{line}

	cart, out := Aggregate(items, AggregateInput{
		Settings: CalculationSettings{ItemWiseShippingTax: true},
		// Cart-level rate must be ignored in item-wise mode.
		ShippingTaxPercent: 99,
	})

	// 10 on the price base plus 5 on the line's shipping at its own rate.
	if out[0].TotalTax != 15 {
		t.Fatalf("line totalTax = %v, want 15", out[0].TotalTax)
	}
	if out[0].TaxValues.Get(ShippingTaxName) != 5 {
		t.Fatalf("line shipping tax = %v, want 5", out[0].TaxValues.Get(ShippingTaxName))
	}
	if cart.TotalTax != 15 {
		t.Fatalf("cart totalTax = %v, want 15", cart.TotalTax)
	}
	// The input line must stay untouched.
	if items[0].TotalTax != 10 {
		t.Fatalf("input mutated: %v", items[0].TotalTax)
	}
}

func TestAggregateRoundingAdjustment(t *testing.T) {
	items := []LineItem{taxedLine("L1", 100.37, 0)}
	prev := 100.0
	cart, _ := Aggregate(items, AggregateInput{
		Settings:               CalculationSettings{RoundingAdjustment: true},
		PreviousDisplayedTotal: &prev,
	})

	if cart.RoundingAdjustment != -0.37 {
		t.Fatalf("roundingAdjustment = %v, want -0.37", cart.RoundingAdjustment)
	}
	if cart.GrandTotal != cart.CalculatedTotal+cart.RoundingAdjustment {
		t.Fatal("grand total invariant broken")
	}
	if cart.GrandTotal != 100 {
		t.Fatalf("grandTotal = %v, want the previously displayed 100", cart.GrandTotal)
	}
}

func TestAggregateRoundingAdjustmentDisabled(t *testing.T) {
	items := []LineItem{taxedLine("L1", 100.37, 0)}
	prev := 100.0
	cart, _ := Aggregate(items, AggregateInput{PreviousDisplayedTotal: &prev})

	if cart.RoundingAdjustment != 0 {
		t.Fatalf("adjustment must stay zero when disabled, got %v", cart.RoundingAdjustment)
	}
	if cart.GrandTotal != cart.CalculatedTotal {
		t.Fatal("grand total must equal calculated total when disabled")
	}
}

func TestAggregatePackingForwardingTaxable(t *testing.T) {
	items := []LineItem{{ItemNo: "L1", TotalPrice: 100, PFRate: 20}}
	cart, _ := Aggregate(items, AggregateInput{})

	if cart.PFRate != 20 {
		t.Fatalf("pfRate = %v, want 20", cart.PFRate)
	}
	if cart.TaxableAmount != 120 {
		t.Fatalf("taxableAmount = %v, want 120", cart.TaxableAmount)
	}
}
