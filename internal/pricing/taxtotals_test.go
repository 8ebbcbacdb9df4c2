package pricing

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestTaxTotalsInsertionOrder(t *testing.T) {
	tt := NewTaxTotals()
	tt.Add("GST", 100)
	tt.Add("CESS", 2)
	tt.Add("GST", 50)

	want := []string{"GST", "CESS"}
	if got := tt.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	if got := tt.Get("GST"); got != 150 {
		t.Fatalf("GST = %v, want 150", got)
	}
	if got := tt.Total(); got != 152 {
		t.Fatalf("total = %v, want 152", got)
	}
}

func TestTaxTotalsCloneIsIndependent(t *testing.T) {
	tt := NewTaxTotals()
	tt.Add("GST", 10)
	clone := tt.Clone()
	clone.Add("GST", 5)
	clone.Add("CESS", 1)

	if got := tt.Get("GST"); got != 10 {
		t.Fatalf("original mutated: GST = %v", got)
	}
	if tt.Len() != 1 || clone.Len() != 2 {
		t.Fatalf("unexpected lengths: original %d, clone %d", tt.Len(), clone.Len())
	}
}

func TestTaxTotalsNilSafe(t *testing.T) {
	var tt *TaxTotals
	if tt.Get("GST") != 0 || tt.Total() != 0 || tt.Len() != 0 {
		t.Fatal("nil TaxTotals should read as empty")
	}
}

func TestTaxTotalsJSONRoundTrip(t *testing.T) {
	tt := NewTaxTotals()
	tt.Add("GST", 100)
	tt.Add("CESS", 2)

	data, err := json.Marshal(tt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back TaxTotals
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back.Names(), tt.Names()) {
		t.Fatalf("order lost: %v vs %v", back.Names(), tt.Names())
	}
	if back.Get("CESS") != 2 {
		t.Fatalf("CESS = %v, want 2", back.Get("CESS"))
	}
}
