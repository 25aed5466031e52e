package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/sales-inquiry-api/internal/domain/entity"
	"github.com/jhoicas/sales-inquiry-api/internal/domain/repository"
	domainsales "github.com/jhoicas/sales-inquiry-api/internal/domain/sales"
)

// Export archivo listo para enviar como adjunto.
type Export struct {
	Filename    string
	ContentType string
	Content     []byte
	Rows        int // filas de ventas incluidas
}

// Tipos MIME de las exportaciones.
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

// SalesUseCase consulta de ventas con ámbito de acceso y sus exportaciones.
// El ámbito se toma siempre del claim verificado, nunca de la petición.
type SalesUseCase struct {
	builder domainsales.QueryBuilder
	repo    repository.SalesRepository
	xlsx    SpreadsheetExporter
	pdf     ReportPDFGenerator
	now     func() time.Time
}

// NewSalesUseCase construye el caso de uso. pdf puede ser nil si el reporte PDF no se ofrece.
func NewSalesUseCase(builder domainsales.QueryBuilder, repo repository.SalesRepository, xlsx SpreadsheetExporter, pdf ReportPDFGenerator) *SalesUseCase {
	return &SalesUseCase{builder: builder, repo: repo, xlsx: xlsx, pdf: pdf, now: time.Now}
}

// WithClock fija el reloj usado en nombres de archivo (tests).
func (uc *SalesUseCase) WithClock(now func() time.Time) *SalesUseCase {
	cp := *uc
	cp.now = now
	return &cp
}

// Search devuelve las ventas visibles para el claim filtradas por criteria.
func (uc *SalesUseCase) Search(ctx context.Context, claim entity.SessionClaim, criteria entity.SalesCriteria) ([]entity.SalesRecord, error) {
	q, err := uc.builder.Build(claim.AccessScope, criteria)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("sales: consultar: %w", err)
	}
	if rows == nil {
		rows = []entity.SalesRecord{}
	}
	return rows, nil
}

// ExportXLSX ejecuta la búsqueda y la renderiza como libro xlsx.
func (uc *SalesUseCase) ExportXLSX(ctx context.Context, claim entity.SessionClaim, criteria entity.SalesCriteria) (*Export, error) {
	rows, err := uc.Search(ctx, claim, criteria)
	if err != nil {
		return nil, err
	}
	content, err := uc.xlsx.Export(rows)
	if err != nil {
		return nil, fmt.Errorf("sales: exportar xlsx: %w", err)
	}
	return &Export{
		Filename:    uc.filename("xlsx"),
		ContentType: ContentTypeXLSX,
		Content:     content,
		Rows:        len(rows),
	}, nil
}

// ExportPDF ejecuta la búsqueda y la renderiza como reporte PDF.
func (uc *SalesUseCase) ExportPDF(ctx context.Context, claim entity.SessionClaim, criteria entity.SalesCriteria) (*Export, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("sales: generador PDF no configurado")
	}
	rows, err := uc.Search(ctx, claim, criteria)
	if err != nil {
		return nil, err
	}
	meta := ReportMeta{Employee: claim, Criteria: criteria, GeneratedAt: uc.now()}
	content, err := uc.pdf.GenerateSalesReport(ctx, meta, rows)
	if err != nil {
		return nil, fmt.Errorf("sales: exportar pdf: %w", err)
	}
	return &Export{
		Filename:    uc.filename("pdf"),
		ContentType: ContentTypePDF,
		Content:     content,
		Rows:        len(rows),
	}, nil
}

// filename SalesData_YYYY-MM-DD.<ext> con la fecha UTC actual.
func (uc *SalesUseCase) filename(ext string) string {
	return fmt.Sprintf("SalesData_%s.%s", uc.now().UTC().Format("2006-01-02"), ext)
}
