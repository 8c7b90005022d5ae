package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// Label page size in millimetres.
const (
	labelPageWidth  = 200
	labelPageHeight = 100
)

// GenerateLabelsPDF renders one label per page. Attention rows become a
// full page announcing the next carrier code.
func GenerateLabelsPDF(rows []LabelRow) ([]byte, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no labels to print")
	}

	cfg := config.NewBuilder().
		WithDimensions(labelPageWidth, labelPageHeight).
		WithLeftMargin(5).
		WithTopMargin(5).
		WithRightMargin(5).
		Build()

	m := maroto.New(cfg)
	for _, r := range rows {
		if r.Separator {
			m.AddPages(separatorPage(r))
			continue
		}
		m.AddPages(labelPage(r))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// labelPage lays out a shipping label: destination and counters on the
// left, shipment barcodes, carrier code and date on the right.
func labelPage(r LabelRow) core.Page {
	title := props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Left}
	caption := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Center}
	big := props.Text{Size: 26, Style: fontstyle.Bold, Align: align.Center}
	medium := props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Center}
	small := props.Text{Size: 8, Align: align.Center}
	divider := &props.Cell{BorderType: border.Right}

	destination := r.City + " - " + r.Client

	return page.New().Add(
		row.New(22).Add(
			col.New(8).Add(text.New(destination, title)).WithStyle(divider),
			col.New(4).Add(code.NewBar(r.Shipment)),
		),
		row.New(8).Add(
			col.New(8).WithStyle(divider),
			col.New(4).Add(text.New(r.Shipment, small)),
		),
		row.New(14).Add(
			col.New(8).WithStyle(divider),
			col.New(4).Add(text.New(r.Carrier, medium)),
		),
		row.New(8).Add(
			col.New(3).Add(text.New("Nº CAIXAS:", caption)),
			col.New(3).Add(text.New("ORDEM:", caption)),
			col.New(2).Add(text.New("QTD ETIQUETA:", caption)).WithStyle(divider),
			col.New(4).Add(text.New(r.Date, medium)),
		),
		row.New(16).Add(
			col.New(3).Add(text.New(r.BoxPosition, big)),
			col.New(3).Add(text.New(r.Order, medium)),
			col.New(2).Add(text.New(FormatQuantity(r), big)).WithStyle(divider),
			col.New(4).Add(text.New("PARCERIA: "+r.Partnership, small)),
		),
		row.New(18).Add(
			col.New(8).WithStyle(divider),
			col.New(4).Add(code.NewBar(r.Shipment)),
		),
	)
}

func separatorPage(r LabelRow) core.Page {
	return page.New().Add(
		row.New(20),
		row.New(30).Add(
			col.New(12).Add(text.New(r.Carrier, props.Text{
				Size:  36,
				Style: fontstyle.Bold,
				Align: align.Center,
				Color: &props.Color{Red: 127, Green: 29, Blue: 29},
			})),
		),
		row.New(20).Add(
			col.New(12).Add(text.New(r.Client, props.Text{
				Size:  22,
				Style: fontstyle.Bold,
				Align: align.Center,
			})),
		),
	)
}
