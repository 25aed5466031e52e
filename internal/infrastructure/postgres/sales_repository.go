package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sales-inquiry-api/internal/domain/entity"
	"github.com/jhoicas/sales-inquiry-api/internal/domain/repository"
	"github.com/jhoicas/sales-inquiry-api/internal/domain/sales"
)

var _ repository.SalesRepository = (*SalesRepo)(nil)

// SalesRepo consultas de solo lectura sobre las transacciones de venta.
type SalesRepo struct {
	q Querier
}

// NewSalesRepository construye el adaptador de ventas.
func NewSalesRepository(q Querier) *SalesRepo {
	return &SalesRepo{q: q}
}

// Query ejecuta una consulta construida por sales.QueryBuilder enlazando sus parámetros por nombre.
func (r *SalesRepo) Query(ctx context.Context, sq sales.SalesQuery) ([]entity.SalesRecord, error) {
	rows, err := r.q.Query(ctx, sq.Text, pgx.NamedArgs(sq.Params))
	if err != nil {
		return nil, storeErr("sales.Query", err)
	}
	defer rows.Close()

	results := []entity.SalesRecord{}
	for rows.Next() {
		var rec entity.SalesRecord
		if err := rows.Scan(
			&rec.InvoiceNo,
			&rec.CustomerCode,
			&rec.CustomerName,
			&rec.GoodsCode,
			&rec.GoodsName,
			&rec.SalesQty,
			&rec.SalesAmount,
		); err != nil {
			return nil, storeErr("sales.Query scan", err)
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("sales.Query rows", err)
	}
	return results, nil
}
