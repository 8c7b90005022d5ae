package services

import (
	"testing"
)

func TestGenerateLabelsPDF_Basic(t *testing.T) {
	result, err := GenerateLabelsPDF(sampleLabelSet().Main)
	if err != nil {
		t.Fatalf("GenerateLabelsPDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateLabelsPDF() returned empty bytes")
	}
	// PDF files start with %PDF
	if len(result) > 4 && string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header, got %q", string(result[:5]))
	}
}

func TestGenerateLabelsPDF_SeparatorOnly(t *testing.T) {
	result, err := GenerateLabelsPDF([]LabelRow{SeparatorRow("BR1")})
	if err != nil {
		t.Fatalf("GenerateLabelsPDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateLabelsPDF() returned empty bytes")
	}
}

func TestGenerateLabelsPDF_Empty(t *testing.T) {
	if _, err := GenerateLabelsPDF(nil); err == nil {
		t.Error("expected error for empty label list")
	}
}
