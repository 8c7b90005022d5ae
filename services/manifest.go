package services

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"etiquetas/config"
)

// ShipmentHeader is one transport document recovered from the manifest.
type ShipmentHeader struct {
	Shipment string
	Date     string
	Carrier  string
	Order    string
	Boxes    int
}

var (
	datePattern  = regexp.MustCompile(`^\d{1,2}[./-]\d{1,2}[./-]\d{2,4}$`)
	numericToken = regexp.MustCompile(`^\d+$`)
	leadingDigit = regexp.MustCompile(`^\d+`)
)

// DecodeManifest returns the manifest bytes as a UTF-8 string. Reports
// exported by the legacy system are Windows-1252; those are transcoded.
func DecodeManifest(b []byte) string {
	b = bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(b) {
		return string(b)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(decoded)
}

// ManifestParser turns manifest text into shipment headers.
type ManifestParser struct {
	layout      config.ManifestLayout
	boilerplate map[string]bool
}

// NewManifestParser returns a parser for the given keyword layout.
func NewManifestParser(layout config.ManifestLayout) *ManifestParser {
	bp := make(map[string]bool, len(layout.BoilerplateLines))
	for _, l := range layout.BoilerplateLines {
		bp[strings.TrimSpace(l)] = true
	}
	return &ManifestParser{layout: layout, boilerplate: bp}
}

// Parse returns the headers of every block that declares at least one box,
// in document order. Missing shipment, date, carrier or order values are
// filled from the last block that had a genuine value for that field.
func (p *ManifestParser) Parse(text string) []ShipmentHeader {
	blocks := p.splitBlocks(p.cleanLines(text))

	var headers []ShipmentHeader
	var last carryForward
	for _, block := range blocks {
		raw := p.extractHeader(block)
		h := last.apply(raw, p.layout.MissingValue)
		last.remember(raw, p.layout.MissingValue)

		if h.Boxes <= 0 || h.Shipment == p.layout.MissingValue {
			continue
		}
		headers = append(headers, h)
	}
	return headers
}

// cleanLines normalises line endings, removes page breaks and drops
// boilerplate lines.
func (p *ManifestParser) cleanLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\f", "")

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, l := range lines {
		if p.boilerplate[strings.TrimSpace(l)] {
			continue
		}
		kept = append(kept, l)
	}
	return kept
}

// splitBlocks groups non-blank lines into blocks opened by the separator
// keyword. Text after the keyword on the separator line starts the block;
// anything before the first separator is preamble and is dropped.
func (p *ManifestParser) splitBlocks(lines []string) [][]string {
	sep := p.layout.BlockSeparator

	var blocks [][]string
	var current []string
	inBlock := false
	for _, l := range lines {
		if idx := strings.Index(l, sep); idx >= 0 {
			if inBlock {
				blocks = append(blocks, current)
			}
			inBlock = true
			current = nil
			l = l[idx+len(sep):]
		}
		if !inBlock || strings.TrimSpace(l) == "" {
			continue
		}
		current = append(current, l)
	}
	if inBlock {
		blocks = append(blocks, current)
	}
	return blocks
}

// extractHeader reads one block without any carry-forward applied.
func (p *ManifestParser) extractHeader(block []string) ShipmentHeader {
	shipment, date := p.extractShipment(block)
	return ShipmentHeader{
		Shipment: shipment,
		Date:     date,
		Carrier:  p.extractCarrier(block),
		Order:    p.extractOrder(block),
		Boxes:    p.extractBoxes(block),
	}
}

func (p *ManifestParser) extractShipment(block []string) (string, string) {
	missing := p.layout.MissingValue
	rest, ok := afterKeyword(block, p.layout.ShipmentKeyword)
	if !ok {
		return missing, missing
	}
	fields := strings.Fields(rest)
	shipment, date := missing, missing
	if len(fields) > 0 {
		shipment = fields[0]
	}
	if len(fields) > 1 && datePattern.MatchString(fields[1]) {
		date = fields[1]
	}
	return shipment, date
}

func (p *ManifestParser) extractCarrier(block []string) string {
	line, ok := firstLineContaining(block, p.layout.CarrierSectionKeyword)
	if !ok {
		return p.layout.MissingValue
	}
	for _, tok := range strings.Fields(line) {
		if strings.HasPrefix(tok, p.layout.CarrierPrefix) {
			return tok
		}
	}
	return p.layout.MissingValue
}

// extractOrder prefers the second token after the keyword and falls back to
// the first; only all-digit tokens count.
func (p *ManifestParser) extractOrder(block []string) string {
	rest, ok := afterKeyword(block, p.layout.OrderKeyword)
	if !ok {
		return p.layout.MissingValue
	}
	fields := strings.Fields(rest)
	if len(fields) > 1 && numericToken.MatchString(fields[1]) {
		return fields[1]
	}
	if len(fields) > 0 && numericToken.MatchString(fields[0]) {
		return fields[0]
	}
	return p.layout.MissingValue
}

// extractBoxes reads the leading integer of the first non-blank line after
// the quantity header.
func (p *ManifestParser) extractBoxes(block []string) int {
	for i, l := range block {
		if !strings.Contains(l, p.layout.QuantityKeyword) {
			continue
		}
		for _, next := range block[i+1:] {
			s := strings.TrimSpace(next)
			if s == "" {
				continue
			}
			n, err := strconv.Atoi(leadingDigit.FindString(s))
			if err != nil || n < 0 {
				return 0
			}
			return n
		}
		return 0
	}
	return 0
}

func firstLineContaining(block []string, keyword string) (string, bool) {
	for _, l := range block {
		if strings.Contains(l, keyword) {
			return l, true
		}
	}
	return "", false
}

// afterKeyword returns the text following keyword on the first line that
// contains it.
func afterKeyword(block []string, keyword string) (string, bool) {
	line, ok := firstLineContaining(block, keyword)
	if !ok {
		return "", false
	}
	_, rest, _ := strings.Cut(line, keyword)
	return rest, true
}

// carryForward tracks the last genuinely extracted value of each text field.
type carryForward struct {
	shipment, date, carrier, order string
}

// apply substitutes missing fields of h with the remembered values.
func (c carryForward) apply(h ShipmentHeader, missing string) ShipmentHeader {
	h.Shipment = fillMissing(h.Shipment, c.shipment, missing)
	h.Date = fillMissing(h.Date, c.date, missing)
	h.Carrier = fillMissing(h.Carrier, c.carrier, missing)
	h.Order = fillMissing(h.Order, c.order, missing)
	return h
}

// remember records the fields of raw that were actually extracted. raw must
// be the header before apply so substituted values never feed back.
func (c *carryForward) remember(raw ShipmentHeader, missing string) {
	if raw.Shipment != missing {
		c.shipment = raw.Shipment
	}
	if raw.Date != missing {
		c.date = raw.Date
	}
	if raw.Carrier != missing {
		c.carrier = raw.Carrier
	}
	if raw.Order != missing {
		c.order = raw.Order
	}
}

func fillMissing(value, last, missing string) string {
	if value == missing && last != "" {
		return last
	}
	return value
}
