// Package config holds the label layer's configuration: manifest keywords,
// spreadsheet column layout and the default reference tables used to seed
// the database.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/pflag"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ManifestLayout names the keywords that structure the plain-text manifest.
type ManifestLayout struct {
	BlockSeparator        string   `yaml:"block_separator"`
	ShipmentKeyword       string   `yaml:"shipment_keyword"`
	CarrierSectionKeyword string   `yaml:"carrier_section_keyword"`
	CarrierPrefix         string   `yaml:"carrier_prefix"`
	OrderKeyword          string   `yaml:"order_keyword"`
	QuantityKeyword       string   `yaml:"quantity_keyword"`
	MissingValue          string   `yaml:"missing_value"`
	BoilerplateLines      []string `yaml:"boilerplate_lines"`
}

// SheetLayout is the fixed column layout of the shipment spreadsheet.
// SKUColumns are listed in precedence order: the first non-empty wins.
type SheetLayout struct {
	ShipmentColumn string   `yaml:"shipment_column"`
	SKUColumns     []string `yaml:"sku_columns"`
	CityColumn     string   `yaml:"city_column"`
	ClientColumn   string   `yaml:"client_column"`
}

// PartnershipItem is one entry of the partnership reference list.
type PartnershipItem struct {
	SKU      string `yaml:"sku"`
	Material string `yaml:"material"`
}

// LabelConfig is the complete label configuration.
type LabelConfig struct {
	Manifest         ManifestLayout    `yaml:"manifest"`
	Sheet            SheetLayout       `yaml:"sheet"`
	CarrierClients   map[string]string `yaml:"carrier_clients"`
	PartnershipItems []PartnershipItem `yaml:"partnership_items"`
}

var configPath string

// RegisterFlags adds the label flags to fs. PocketBase parses them together
// with its own flags when the root command runs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&configPath, "labels-config", "", "path to a YAML file overriding the default label configuration")
}

// FlagPath returns the value of --labels-config.
func FlagPath() string {
	return configPath
}

// Default returns the embedded configuration.
func Default() LabelConfig {
	var cfg LabelConfig
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load returns the embedded defaults overlaid with the YAML file at path.
// An empty path returns the defaults unchanged.
func Load(path string) (LabelConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return LabelConfig{}, fmt.Errorf("read label config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return LabelConfig{}, fmt.Errorf("parse label config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return LabelConfig{}, err
	}
	return cfg, nil
}

// Validate checks that every keyword is set and every column is a valid
// spreadsheet column name.
func (c LabelConfig) Validate() error {
	m := c.Manifest
	keywords := map[string]string{
		"block_separator":         m.BlockSeparator,
		"shipment_keyword":        m.ShipmentKeyword,
		"carrier_section_keyword": m.CarrierSectionKeyword,
		"carrier_prefix":          m.CarrierPrefix,
		"order_keyword":           m.OrderKeyword,
		"quantity_keyword":        m.QuantityKeyword,
		"missing_value":           m.MissingValue,
	}
	names := make([]string, 0, len(keywords))
	for name := range keywords {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if keywords[name] == "" {
			return fmt.Errorf("label config: manifest.%s must not be empty", name)
		}
	}

	if len(c.Sheet.SKUColumns) == 0 {
		return fmt.Errorf("label config: sheet.sku_columns must list at least one column")
	}
	columns := append([]string{c.Sheet.ShipmentColumn, c.Sheet.CityColumn, c.Sheet.ClientColumn}, c.Sheet.SKUColumns...)
	for _, col := range columns {
		if _, err := ColumnIndex(col); err != nil {
			return err
		}
	}
	return nil
}

// ColumnIndex converts a column letter ("A", "K", "AB") to a zero-based index.
func ColumnIndex(name string) (int, error) {
	n, err := excelize.ColumnNameToNumber(name)
	if err != nil {
		return 0, fmt.Errorf("label config: invalid column %q: %w", name, err)
	}
	return n - 1, nil
}
