package services

import (
	"fmt"
	"io"

	"etiquetas/config"
)

// LabelTables is the reference data a label run depends on.
type LabelTables struct {
	PartnershipItems []PartnershipItem
	CarrierClients   map[string]string
}

// Pipeline merges a manifest and a shipment spreadsheet into label lists.
// A Pipeline is read-only after construction and safe for concurrent use.
type Pipeline struct {
	parser     *ManifestParser
	indexer    *SpreadsheetIndexer
	classifier *PartnershipClassifier
	expander   *LabelExpander
}

// NewPipeline builds a pipeline from the reference tables and layout.
func NewPipeline(tables LabelTables, cfg config.LabelConfig) (*Pipeline, error) {
	missing := cfg.Manifest.MissingValue
	indexer, err := NewSpreadsheetIndexer(cfg.Sheet, missing)
	if err != nil {
		return nil, fmt.Errorf("build spreadsheet indexer: %w", err)
	}
	classifier := NewPartnershipClassifier(tables.PartnershipItems, missing)
	return &Pipeline{
		parser:     NewManifestParser(cfg.Manifest),
		indexer:    indexer,
		classifier: classifier,
		expander:   NewLabelExpander(classifier, tables.CarrierClients, missing),
	}, nil
}

// PartnershipSKUs returns the number of distinct SKUs the run classifies
// as partnership freight.
func (p *Pipeline) PartnershipSKUs() int {
	return p.classifier.Len()
}

// Process runs the whole label run. It fails only when the spreadsheet
// cannot be read, in which case no labels are returned. A manifest without
// any shipment yields an empty, non-nil LabelSet.
func (p *Pipeline) Process(manifest string, sheet io.Reader, sheetName string) (*LabelSet, error) {
	headers := p.parser.Parse(manifest)

	index, err := p.indexer.IndexReader(sheet, sheetName)
	if err != nil {
		return nil, fmt.Errorf("index spreadsheet: %w", err)
	}

	return p.Merge(headers, index), nil
}

// Merge expands every header in order and injects attention rows into each
// list independently.
func (p *Pipeline) Merge(headers []ShipmentHeader, index AssociationIndex) *LabelSet {
	set := &LabelSet{
		Main:        []LabelRow{},
		Partnership: []LabelRow{},
	}
	for _, h := range headers {
		main, partnership := p.expander.Expand(h, index[h.Shipment])
		set.Main = append(set.Main, main...)
		set.Partnership = append(set.Partnership, partnership...)
	}
	set.Main = InjectSeparators(set.Main)
	set.Partnership = InjectSeparators(set.Partnership)
	return set
}
