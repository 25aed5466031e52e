package repository

import (
	"context"

	"github.com/jhoicas/sales-inquiry-api/internal/domain/entity"
	"github.com/jhoicas/sales-inquiry-api/internal/domain/sales"
)

// SalesRepository ejecuta consultas de ventas ya construidas por sales.BuildSalesQuery.
type SalesRepository interface {
	Query(ctx context.Context, q sales.SalesQuery) ([]entity.SalesRecord, error)
}
