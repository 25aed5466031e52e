package entity

import "github.com/shopspring/decimal"

// SalesCriteria filtros opcionales de búsqueda (subcadena) de una petición.
type SalesCriteria struct {
	CustomerCode string
	GoodsCode    string
}

// SalesRecord proyección de solo lectura: cabecera + línea de la transacción + maestros de cliente y artículo.
type SalesRecord struct {
	InvoiceNo    string
	CustomerCode string
	CustomerName string
	GoodsCode    string
	GoodsName    string
	SalesQty     decimal.Decimal // QTY_MINUS - QTY_PLUS, con signo
	SalesAmount  decimal.Decimal
}
