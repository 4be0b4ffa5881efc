package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DailyRevenuePoint es el ingreso total de un día calendario (UTC).
type DailyRevenuePoint struct {
	Date    time.Time // truncado a 00:00:00 UTC
	Revenue decimal.Decimal
}

// TopProductRow resultado crudo del ranking de productos vendidos.
type TopProductRow struct {
	ProductID string
	Name      string
	Quantity  int
	Revenue   decimal.Decimal
}

// AnalyticsRepository define las consultas de solo lectura para el dashboard
// y los reportes. Las implementaciones no modifican datos y no requieren
// linealizabilidad frente a escrituras concurrentes.
type AnalyticsRepository interface {
	// GetSalesTotals devuelve la suma de totales y el número de ventas con
	// created_at en [from, to). COALESCE a cero si no hay ventas.
	GetSalesTotals(ctx context.Context, from, to time.Time) (total decimal.Decimal, count int, err error)

	// CountLowStock cuenta productos activos con stock <= min_stock.
	CountLowStock(ctx context.Context) (int, error)

	CountActiveProducts(ctx context.Context) (int, error)
	CountCustomers(ctx context.Context) (int, error)

	// GetDailyRevenue agrupa el ingreso por día calendario UTC en [from, to).
	// Los días sin ventas se omiten de la serie (no se rellenan con cero).
	GetDailyRevenue(ctx context.Context, from, to time.Time) ([]DailyRevenuePoint, error)

	// GetTopProducts devuelve hasta limit productos ordenados por cantidad
	// vendida descendente; empates se resuelven por product_id ascendente
	// para un orden determinista. from/to nil = sin acotar.
	GetTopProducts(ctx context.Context, from, to *time.Time, limit int) ([]TopProductRow, error)
}
