package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para dashboard y reportes.
// Las agregaciones se hacen en SQL; los límites de día se calculan en la
// capa de aplicación en UTC.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetSalesTotals suma los totales y cuenta las ventas con created_at en
// [from, to). Sin ventas devuelve cero, no error.
func (r *AnalyticsRepo) GetSalesTotals(ctx context.Context, from, to time.Time) (decimal.Decimal, int, error) {
	var total decimal.Decimal
	var count int
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM sales WHERE created_at >= $1 AND created_at < $2`,
		from, to,
	).Scan(&total, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("sales totals: %w", err)
	}
	return total, count, nil
}

// CountLowStock cuenta productos activos en o por debajo de su umbral mínimo.
func (r *AnalyticsRepo) CountLowStock(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE active AND stock <= min_stock`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}

// CountActiveProducts cuenta productos activos.
func (r *AnalyticsRepo) CountActiveProducts(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE active`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// CountCustomers cuenta clientes registrados.
func (r *AnalyticsRepo) CountCustomers(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

// GetDailyRevenue agrupa el ingreso por día calendario UTC en [from, to).
// Los días sin ventas no aparecen en el resultado.
func (r *AnalyticsRepo) GetDailyRevenue(ctx context.Context, from, to time.Time) ([]repository.DailyRevenuePoint, error) {
	rows, err := r.q.Query(ctx, `
		SELECT (created_at AT TIME ZONE 'UTC')::date AS day, SUM(total)
		FROM sales WHERE created_at >= $1 AND created_at < $2
		GROUP BY day ORDER BY day ASC`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("daily revenue: %w", err)
	}
	defer rows.Close()
	var points []repository.DailyRevenuePoint
	for rows.Next() {
		var p repository.DailyRevenuePoint
		if err := rows.Scan(&p.Date, &p.Revenue); err != nil {
			return nil, fmt.Errorf("scan daily revenue: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// GetTopProducts rankea productos por cantidad vendida descendente.
// Empates se resuelven por product_id ascendente para un orden determinista.
// from/to nil significan sin acotar por ese extremo.
func (r *AnalyticsRepo) GetTopProducts(ctx context.Context, from, to *time.Time, limit int) ([]repository.TopProductRow, error) {
	query := `
		SELECT l.product_id, MAX(l.product_name), SUM(l.quantity), SUM(l.subtotal)
		FROM sale_lines l
		JOIN sales s ON s.id = l.sale_id
		WHERE ($1::timestamptz IS NULL OR s.created_at >= $1)
		  AND ($2::timestamptz IS NULL OR s.created_at < $2)
		GROUP BY l.product_id
		ORDER BY SUM(l.quantity) DESC, l.product_id ASC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()
	var out []repository.TopProductRow
	for rows.Next() {
		var row repository.TopProductRow
		if err := rows.Scan(&row.ProductID, &row.Name, &row.Quantity, &row.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
