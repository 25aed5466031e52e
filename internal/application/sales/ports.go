package sales

import (
	"context"
	"time"

	"github.com/jhoicas/sales-inquiry-api/internal/domain/entity"
)

// SpreadsheetExporter renderiza filas de ventas como un libro xlsx.
type SpreadsheetExporter interface {
	Export(rows []entity.SalesRecord) ([]byte, error)
}

// ReportMeta datos de cabecera del reporte PDF.
type ReportMeta struct {
	Employee    entity.SessionClaim
	Criteria    entity.SalesCriteria
	GeneratedAt time.Time
}

// ReportPDFGenerator renderiza filas de ventas como reporte PDF.
type ReportPDFGenerator interface {
	GenerateSalesReport(ctx context.Context, meta ReportMeta, rows []entity.SalesRecord) ([]byte, error)
}
