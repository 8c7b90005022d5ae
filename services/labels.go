package services

// Partnership flag values printed on each label.
const (
	PartnershipYes = "Sim"
	PartnershipNo  = "Não"
)

// SeparatorCarrier is the carrier column value of attention rows.
const SeparatorCarrier = "ATENÇÃO"

// LabelRow is one printed label, or an attention row when Separator is set.
type LabelRow struct {
	Shipment    string `json:"shipment"`
	Date        string `json:"date"`
	Carrier     string `json:"carrier"`
	City        string `json:"city"`
	Client      string `json:"client"`
	Order       string `json:"order"`
	Quantity    int    `json:"quantity"`
	BoxPosition string `json:"box_position"`
	Partnership string `json:"partnership"`
	Separator   bool   `json:"separator,omitempty"`
}

// SeparatorRow returns the attention row announcing nextCarrier.
func SeparatorRow(nextCarrier string) LabelRow {
	return LabelRow{
		Carrier:   SeparatorCarrier,
		Client:    "PROXIMO " + nextCarrier,
		Separator: true,
	}
}

// LabelSet is the result of a label run. An empty set is a valid result.
type LabelSet struct {
	Main        []LabelRow `json:"main"`
	Partnership []LabelRow `json:"partnership"`
}

// Len returns the number of rows in both lists, separators included.
func (s *LabelSet) Len() int {
	return len(s.Main) + len(s.Partnership)
}

// boxCounter numbers the labels of one shipment across the main and
// partnership lists.
type boxCounter struct {
	next  int
	total int
}

func newBoxCounter(total int) *boxCounter {
	return &boxCounter{next: 1, total: total}
}

// Next returns the position string for the next label and advances.
func (c *boxCounter) Next() string {
	pos := FormatBoxPosition(c.next, c.total)
	c.next++
	return pos
}

// LabelExpander turns a shipment header and its associations into labels.
type LabelExpander struct {
	classifier     *PartnershipClassifier
	carrierClients map[string]string
	missing        string
}

// NewLabelExpander returns an expander. carrierClients maps a carrier code
// to the client name printed for it, overriding the spreadsheet.
func NewLabelExpander(classifier *PartnershipClassifier, carrierClients map[string]string, missing string) *LabelExpander {
	return &LabelExpander{
		classifier:     classifier,
		carrierClients: carrierClients,
		missing:        missing,
	}
}

// Expand returns the main rows (one per manifest box) and the partnership
// rows (one per qualifying association) of a shipment. Both share one box
// counter, main rows first.
func (x *LabelExpander) Expand(h ShipmentHeader, assocs []Association) (main, partnership []LabelRow) {
	qualifying := x.classifier.Qualifying(assocs)

	base := h.Boxes
	if base < 0 {
		base = 0
	}
	total := base + len(qualifying)
	if total == 0 {
		return nil, nil
	}

	counter := newBoxCounter(total)
	main = x.baseRows(h, assocs, base, total, x.classifier.IsPartnership(assocs), counter)
	partnership = x.partnershipRows(h, qualifying, total, counter)
	return main, partnership
}

func (x *LabelExpander) baseRows(h ShipmentHeader, assocs []Association, base, total int, hasPartnership bool, counter *boxCounter) []LabelRow {
	city, client := x.missing, x.missing
	if len(assocs) > 0 {
		city, client = assocs[0].City, assocs[0].Client
	}
	client = x.clientFor(h.Carrier, client)

	flag := PartnershipNo
	if hasPartnership {
		flag = PartnershipYes
	}

	rows := make([]LabelRow, 0, base)
	for i := 0; i < base; i++ {
		rows = append(rows, LabelRow{
			Shipment:    h.Shipment,
			Date:        h.Date,
			Carrier:     h.Carrier,
			City:        city,
			Client:      client,
			Order:       h.Order,
			Quantity:    total,
			BoxPosition: counter.Next(),
			Partnership: flag,
		})
	}
	return rows
}

func (x *LabelExpander) partnershipRows(h ShipmentHeader, qualifying []Association, total int, counter *boxCounter) []LabelRow {
	rows := make([]LabelRow, 0, len(qualifying))
	for _, a := range qualifying {
		rows = append(rows, LabelRow{
			Shipment:    h.Shipment,
			Date:        h.Date,
			Carrier:     h.Carrier,
			City:        a.City,
			Client:      x.clientFor(h.Carrier, a.Client),
			Order:       h.Order,
			Quantity:    total,
			BoxPosition: counter.Next(),
			Partnership: PartnershipYes,
		})
	}
	return rows
}

// clientFor applies the carrier mapping, which wins over the spreadsheet.
func (x *LabelExpander) clientFor(carrier, fallback string) string {
	if mapped, ok := x.carrierClients[carrier]; ok {
		return mapped
	}
	return fallback
}

// InjectSeparators inserts an attention row between two adjacent label rows
// whose carrier codes differ. Nothing is appended after the last row and an
// existing attention row never gets a second one for the same boundary.
func InjectSeparators(rows []LabelRow) []LabelRow {
	if len(rows) == 0 {
		return rows
	}
	out := make([]LabelRow, 0, len(rows))
	for i, r := range rows {
		out = append(out, r)
		if i+1 >= len(rows) {
			break
		}
		next := rows[i+1]
		if r.Separator || next.Separator {
			continue
		}
		if next.Carrier == "" || next.Carrier == SeparatorCarrier || next.Carrier == r.Carrier {
			continue
		}
		out = append(out, SeparatorRow(next.Carrier))
	}
	return out
}
