// Package xlsx genera el libro de exportación de ventas con excelize.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	appsales "github.com/jhoicas/sales-inquiry-api/internal/application/sales"
	"github.com/jhoicas/sales-inquiry-api/internal/domain/entity"
)

var _ appsales.SpreadsheetExporter = (*ExcelizeExporter)(nil)

// SheetName nombre de la hoja exportada.
const SheetName = "Sales Data"

type column struct {
	header string
	width  float64
}

// Columns orden fijo de columnas de la exportación.
var columns = []column{
	{"Invoice No", 15},
	{"Customer Code", 15},
	{"Customer Name", 30},
	{"Goods Code", 15},
	{"Goods Name", 30},
	{"Sales Qty", 12},
	{"Sales Amount", 15},
}

// Headers devuelve las etiquetas de cabecera en orden.
func Headers() []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.header
	}
	return out
}

// Estilo de cabecera: relleno azul sólido y texto blanco en negrita.
const (
	headerFill      = "4472C4"
	headerFontColor = "FFFFFF"
)

// ExcelizeExporter implementa appsales.SpreadsheetExporter.
type ExcelizeExporter struct{}

// NewExcelizeExporter construye el exportador.
func NewExcelizeExporter() *ExcelizeExporter { return &ExcelizeExporter{} }

// Export escribe cabecera + una fila por registro y devuelve los bytes del libro.
// Cantidad e importe se escriben como celdas numéricas; el importe redondeado a 2 decimales.
func (e *ExcelizeExporter) Export(rows []entity.SalesRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c.header
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("xlsx: columna %d: %w", i+1, err)
		}
		if err := f.SetColWidth(SheetName, name, name, c.width); err != nil {
			return nil, fmt.Errorf("xlsx: ancho de columna: %w", err)
		}
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: headerFontColor},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo de cabecera: %w", err)
	}
	last, _ := excelize.ColumnNumberToName(len(columns))
	if err := f.SetCellStyle(SheetName, "A1", last+"1", style); err != nil {
		return nil, fmt.Errorf("xlsx: aplicar estilo: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
		values := []any{
			r.InvoiceNo,
			r.CustomerCode,
			r.CustomerName,
			r.GoodsCode,
			r.GoodsName,
			r.SalesQty.InexactFloat64(),
			r.SalesAmount.Round(2).InexactFloat64(),
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: serializar: %w", err)
	}
	return buf.Bytes(), nil
}
