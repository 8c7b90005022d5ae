package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Manifest.ShipmentKeyword != "Rem :" {
		t.Errorf("shipment keyword = %q, want %q", cfg.Manifest.ShipmentKeyword, "Rem :")
	}
	if cfg.Manifest.BlockSeparator != "Doc. Transp :" {
		t.Errorf("block separator = %q", cfg.Manifest.BlockSeparator)
	}
	if got := cfg.CarrierClients["BR495477"]; got != "SJBV - LEME" {
		t.Errorf("BR495477 = %q, want %q", got, "SJBV - LEME")
	}
	if len(cfg.CarrierClients) != 7 {
		t.Errorf("expected 7 carrier clients, got %d", len(cfg.CarrierClients))
	}
	want := []string{"M", "I", "H"}
	if strings.Join(cfg.Sheet.SKUColumns, ",") != strings.Join(want, ",") {
		t.Errorf("sku columns = %v, want %v", cfg.Sheet.SKUColumns, want)
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Sheet.CityColumn != "K" {
		t.Errorf("city column = %q, want K", cfg.Sheet.CityColumn)
	}
}

func TestLoad_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.yaml")
	content := `
sheet:
  city_column: "N"
carrier_clients:
  BR100200: "CAMPINAS"
partnership_items:
  - sku: "123456"
    material: "CAIXA TERMICA"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Sheet.CityColumn != "N" {
		t.Errorf("city column = %q, want N", cfg.Sheet.CityColumn)
	}
	if cfg.Sheet.ClientColumn != "L" {
		t.Errorf("client column should keep default L, got %q", cfg.Sheet.ClientColumn)
	}
	if cfg.CarrierClients["BR100200"] != "CAMPINAS" {
		t.Errorf("override carrier client missing: %v", cfg.CarrierClients)
	}
	if cfg.CarrierClients["BR442154"] != "ITAPEVA" {
		t.Errorf("default carrier client lost: %v", cfg.CarrierClients)
	}
	if len(cfg.PartnershipItems) != 1 || cfg.PartnershipItems[0].Material != "CAIXA TERMICA" {
		t.Errorf("partnership items = %+v", cfg.PartnershipItems)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		if err == nil {
			t.Fatal("expected error for missing file")
		}
	})

	t.Run("invalid column", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("sheet:\n  city_column: \"1K\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		if err == nil || !strings.Contains(err.Error(), "invalid column") {
			t.Errorf("expected invalid column error, got %v", err)
		}
	})

	t.Run("empty keyword", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("manifest:\n  order_keyword: \"\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		if err == nil || !strings.Contains(err.Error(), "order_keyword") {
			t.Errorf("expected order_keyword error, got %v", err)
		}
	})
}

func TestColumnIndex(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"A", 0},
		{"H", 7},
		{"K", 10},
		{"L", 11},
		{"M", 12},
		{"AA", 26},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ColumnIndex(tt.name)
			if err != nil {
				t.Fatalf("ColumnIndex(%q) error = %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("ColumnIndex(%q) = %d, want %d", tt.name, got, tt.want)
			}
		})
	}
}
