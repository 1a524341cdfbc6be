package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	catalogdomain "github.com/smallbiznis/facturador/internal/catalog/domain"
)

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

// GenerateInvoice renders the invoice header, one section per line item with
// its consumption detail rows, and the grand total.
func (p *PDFProvider) GenerateInvoice(ctx context.Context, invoice *catalogdomain.Invoice) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(10,
		text.NewCol(12, "Factura", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New("Factura: "+invoice.ID, props.Text{Top: 0}),
			text.New("Fecha de emisión: "+invoice.IssueDate, props.Text{Top: 4}),
		),
		col.New(6).Add(
			text.New(invoice.ClientName, props.Text{Style: fontstyle.Bold}),
			text.New("NIT: "+invoice.ClientNIT, props.Text{Top: 5}),
		),
	)

	for _, item := range invoice.Items {
		m.AddRow(10,
			text.NewCol(12, item.InstanceName+" ("+item.InstanceID+")", props.Text{
				Size:  11,
				Style: fontstyle.Bold,
			}),
		)
		m.AddRow(8,
			text.NewCol(4, "Recurso", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.NewCol(2, "Horas", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
			text.NewCol(3, "Precio/hora", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
			text.NewCol(3, "Monto", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		)
		for _, detail := range item.Consumptions {
			label := detail.ResourceName
			if detail.Abbreviation != "" {
				label += " (" + detail.Abbreviation + ")"
			}
			m.AddRow(8,
				text.NewCol(4, label, props.Text{Size: 9}),
				text.NewCol(2, formatAmount(detail.Hours), props.Text{Size: 9, Align: align.Right}),
				text.NewCol(3, formatAmount(detail.UnitPrice), props.Text{Size: 9, Align: align.Right}),
				text.NewCol(3, formatAmount(detail.Amount), props.Text{Size: 9, Align: align.Right}),
			)
		}
		m.AddRow(8,
			col.New(7),
			text.NewCol(2, "Subtotal", props.Text{Size: 9}),
			text.NewCol(3, formatAmount(item.Subtotal), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(12,
		col.New(7),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 11}),
		text.NewCol(3, formatAmount(invoice.Total), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
