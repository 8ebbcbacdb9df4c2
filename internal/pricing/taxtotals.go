package pricing

import (
	"encoding/json"
	"math"
)

// TaxTotals is an insertion-ordered mapping of tax name to accumulated value.
// Tax names are dynamic (supplied by reference data, not a fixed enum) and
// iteration order must match the order values were first recorded, since
// compound taxes and cart-level accumulation are order-dependent.
type TaxTotals struct {
	names  []string
	values map[string]float64
}

// NewTaxTotals returns an empty accumulator.
func NewTaxTotals() *TaxTotals {
	return &TaxTotals{values: make(map[string]float64)}
}

// Add accumulates v under name, registering the name on first use.
// Non-finite values are treated as zero.
func (t *TaxTotals) Add(name string, v float64) {
	if t.values == nil {
		t.values = make(map[string]float64)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	if _, ok := t.values[name]; !ok {
		t.names = append(t.names, name)
	}
	t.values[name] += v
}

// Get returns the accumulated value for name, zero when absent.
func (t *TaxTotals) Get(name string) float64 {
	if t == nil || t.values == nil {
		return 0
	}
	return t.values[name]
}

// Names returns the tax names in insertion order. The returned slice is a
// copy.
func (t *TaxTotals) Names() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Len returns the number of distinct tax names recorded.
func (t *TaxTotals) Len() int {
	if t == nil {
		return 0
	}
	return len(t.names)
}

// Total sums every accumulated value.
func (t *TaxTotals) Total() float64 {
	if t == nil {
		return 0
	}
	var sum float64
	for _, name := range t.names {
		sum += t.values[name]
	}
	return sum
}

// Clone returns an independent copy preserving insertion order.
func (t *TaxTotals) Clone() *TaxTotals {
	out := NewTaxTotals()
	if t == nil {
		return out
	}
	for _, name := range t.names {
		out.Add(name, t.values[name])
	}
	return out
}

type taxEntry struct {
	Name  string  `json:"taxName"`
	Value float64 `json:"value"`
}

// MarshalJSON encodes the totals as an ordered array so serialization never
// loses the insertion order a plain map would.
func (t *TaxTotals) MarshalJSON() ([]byte, error) {
	entries := make([]taxEntry, 0, t.Len())
	if t != nil {
		for _, name := range t.names {
			entries = append(entries, taxEntry{Name: name, Value: t.values[name]})
		}
	}
	return json.Marshal(entries)
}

// UnmarshalJSON decodes the ordered array produced by MarshalJSON.
func (t *TaxTotals) UnmarshalJSON(data []byte) error {
	var entries []taxEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	t.names = nil
	t.values = make(map[string]float64, len(entries))
	for _, e := range entries {
		t.Add(e.Name, e.Value)
	}
	return nil
}
