// Package pdf genera el reporte PDF de la consulta de ventas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + empleado / ámbito │ Fecha de generación   │
//	│  FILTROS: Cliente / Artículo                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Factura | Cliente | Nombre | Artículo | ... | Imp.   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: filas, cantidad, importe                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appsales "github.com/jhoicas/sales-inquiry-api/internal/application/sales"
	"github.com/jhoicas/sales-inquiry-api/internal/domain/entity"
)

var _ appsales.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0x44, Green: 0x72, Blue: 0xC4}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa appsales.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateSalesReport genera el PDF y devuelve sus bytes. Sin filas emite solo cabecera y totales en cero.
func (g *MarotoReportGenerator) GenerateSalesReport(
	_ context.Context,
	meta appsales.ReportMeta,
	rows []entity.SalesRecord,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Sales Data", true).
		WithAuthor(meta.Employee.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(meta))
	m.AddRows(filtersRow(meta.Criteria))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(rows)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(meta appsales.ReportMeta) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("SALES DATA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s (%s)   |   Scope: %s",
				nonEmpty(meta.Employee.Name, "—"), meta.Employee.Code, meta.Employee.AccessScope,
			), props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generated: "+meta.GeneratedAt.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func filtersRow(c entity.SalesCriteria) core.Row {
	return row.New(7).Add(
		col.New(12).Add(text.New(fmt.Sprintf("Customer code: %s   |   Goods code: %s",
			nonEmpty(c.CustomerCode, "*"), nonEmpty(c.GoodsCode, "*"),
		), props.Text{Size: 8, Top: 1, Color: colorGray})),
	)
}

type tableCol struct {
	label string
	size  int
	align align.Type
}

var tableCols = []tableCol{
	{"Invoice No", 2, align.Left},
	{"Cust. Code", 1, align.Left},
	{"Customer Name", 3, align.Left},
	{"Goods Code", 1, align.Left},
	{"Goods Name", 3, align.Left},
	{"Qty", 1, align.Right},
	{"Amount", 1, align.Right},
}

// tableHeaderRow: cabecera con fondo azul y texto blanco en negrita.
func tableHeaderRow() core.Row {
	cols := make([]core.Col, 0, len(tableCols))
	for _, c := range tableCols {
		cols = append(cols, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableRows(rows []entity.SalesRecord) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		values := []string{
			r.InvoiceNo, r.CustomerCode, r.CustomerName, r.GoodsCode, r.GoodsName,
			r.SalesQty.String(), r.SalesAmount.StringFixed(2),
		}
		cols := make([]core.Col, 0, len(tableCols))
		for i, c := range tableCols {
			cols = append(cols, col.New(c.size).Add(text.New(values[i], props.Text{
				Size: 7.5, Align: c.align, Top: 1, Left: 1, Right: 1,
			})))
		}
		result = append(result, row.New(6).Add(cols...))
	}
	return result
}

func totalsRow(rows []entity.SalesRecord) core.Row {
	qty, amount := decimal.Zero, decimal.Zero
	for _, r := range rows {
		qty = qty.Add(r.SalesQty)
		amount = amount.Add(r.SalesAmount)
	}
	bold := func(s string, a align.Type) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Right: 1})
	}
	return row.New(8).Add(
		col.New(10).Add(bold("Rows: "+strconv.Itoa(len(rows)), align.Left)),
		col.New(1).Add(bold(qty.String(), align.Right)),
		col.New(1).Add(bold(amount.StringFixed(2), align.Right)),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
