package dto

import (
	"encoding/json"

	"github.com/jhoicas/sales-inquiry-api/internal/domain/entity"
)

// SalesSearchRequest filtros opcionales en query string.
type SalesSearchRequest struct {
	CustomerCode string `query:"customerCode"`
	GoodsCode    string `query:"goodsCode"`
}

// Criteria convierte la petición a criterios de dominio.
func (r SalesSearchRequest) Criteria() entity.SalesCriteria {
	return entity.SalesCriteria{CustomerCode: r.CustomerCode, GoodsCode: r.GoodsCode}
}

// SalesRecordResponse fila de ventas. Los nombres conservan las columnas del ERP que consume el cliente web;
// cantidad e importe viajan como números JSON sin pérdida de precisión; el importe siempre con dos decimales.
type SalesRecordResponse struct {
	InvoiceNo    string      `json:"INVOICE_NO"`
	CustomerCode string      `json:"CUSTOMERCODE"`
	CustomerName string      `json:"CUSTOMERNAME"`
	GoodsCode    string      `json:"GOODSCODE"`
	GoodsName    string      `json:"GOODSNAME"`
	SalesQty     json.Number `json:"SALES_QTY"`
	SalesAmount  json.Number `json:"SALES_AMOUNT"`
}

// ToSalesRecordResponses mapea filas de dominio a su forma JSON.
func ToSalesRecordResponses(rows []entity.SalesRecord) []SalesRecordResponse {
	out := make([]SalesRecordResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, SalesRecordResponse{
			InvoiceNo:    r.InvoiceNo,
			CustomerCode: r.CustomerCode,
			CustomerName: r.CustomerName,
			GoodsCode:    r.GoodsCode,
			GoodsName:    r.GoodsName,
			SalesQty:     json.Number(r.SalesQty.String()),
			SalesAmount:  json.Number(r.SalesAmount.StringFixed(2)),
		})
	}
	return out
}
