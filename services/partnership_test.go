package services

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testClassifier() *PartnershipClassifier {
	return NewPartnershipClassifier([]PartnershipItem{
		{SKU: "700100", Material: "CAIXA TERMICA"},
		{SKU: " 700200 ", Material: "GELO RECICLAVEL"},
		{SKU: "", Material: "SEM SKU"},
	}, "N/A")
}

func TestPartnershipClassifier_Len(t *testing.T) {
	if got := testClassifier().Len(); got != 2 {
		t.Errorf("Len() = %d, want 2 (blank SKU ignored)", got)
	}
}

func TestPartnershipClassifier_Qualifies(t *testing.T) {
	c := testClassifier()
	tests := []struct {
		name string
		a    Association
		want bool
	}{
		{"listed sku with client", Association{SKU: "700100", Client: "MERCADO"}, true},
		{"trimmed reference sku", Association{SKU: "700200", Client: "MERCADO"}, true},
		{"listed sku without client", Association{SKU: "700100", Client: "N/A"}, false},
		{"unlisted sku", Association{SKU: "999999", Client: "MERCADO"}, false},
		{"missing sku", Association{SKU: "N/A", Client: "MERCADO"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Qualifies(tt.a); got != tt.want {
				t.Errorf("Qualifies(%+v) = %v, want %v", tt.a, got, tt.want)
			}
		})
	}
}

func TestPartnershipClassifier_QualifyingKeepsOrder(t *testing.T) {
	assocs := []Association{
		{Shipment: "S1", City: "A", Client: "C1", SKU: "700200"},
		{Shipment: "S1", City: "B", Client: "C2", SKU: "123"},
		{Shipment: "S1", City: "C", Client: "N/A", SKU: "700100"},
		{Shipment: "S1", City: "D", Client: "C4", SKU: "700100"},
	}

	got := testClassifier().Qualifying(assocs)
	want := []Association{assocs[0], assocs[3]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Qualifying() mismatch (-want +got):\n%s", diff)
	}
}

func TestPartnershipClassifier_IsPartnership(t *testing.T) {
	c := testClassifier()
	if c.IsPartnership(nil) {
		t.Error("no associations cannot be partnership")
	}
	if c.IsPartnership([]Association{{SKU: "700100", Client: "N/A"}}) {
		t.Error("association without client must not count")
	}
	if !c.IsPartnership([]Association{{SKU: "1", Client: "X"}, {SKU: "700100", Client: "X"}}) {
		t.Error("expected partnership when any association qualifies")
	}
}

func TestPartnershipClassifier_EmptyReference(t *testing.T) {
	c := NewPartnershipClassifier(nil, "N/A")
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if c.IsPartnership([]Association{{SKU: "700100", Client: "X"}}) {
		t.Error("empty reference list must never classify as partnership")
	}
}
