package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/farmacia-pos/internal/application/dto"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

const defaultTopLimit = 10

// ReportsUseCase genera los reportes de ventas, inventario, productos más
// vendidos y productos próximos a vencer.
type ReportsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	productRepo   repository.ProductRepository
	saleRepo      repository.SaleRepository
}

// NewReportsUseCase construye el caso de uso.
func NewReportsUseCase(
	analyticsRepo repository.AnalyticsRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) *ReportsUseCase {
	return &ReportsUseCase{
		analyticsRepo: analyticsRepo,
		productRepo:   productRepo,
		saleRepo:      saleRepo,
	}
}

// GetSalesChart devuelve el ingreso por día calendario UTC de los últimos
// days días contados desde asOf. Los días sin ventas se omiten de la serie.
func (uc *ReportsUseCase) GetSalesChart(ctx context.Context, asOf time.Time, days int) ([]dto.ChartPointDTO, error) {
	if days <= 0 {
		days = 30
	}
	asOf = asOf.UTC()
	to := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
	from := to.AddDate(0, 0, -days)

	points, err := uc.analyticsRepo.GetDailyRevenue(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ChartPointDTO, 0, len(points))
	for _, p := range points {
		out = append(out, dto.ChartPointDTO{
			Date:    p.Date.Format("2006-01-02"),
			Revenue: p.Revenue.Round(2),
		})
	}
	return out, nil
}

// GetTopProducts devuelve los productos más vendidos por cantidad en el
// rango dado (nil = histórico completo), con ingreso acumulado.
func (uc *ReportsUseCase) GetTopProducts(ctx context.Context, from, to *time.Time, limit int) ([]dto.TopProductDTO, error) {
	if limit <= 0 {
		limit = defaultTopLimit
	}
	if limit > 100 {
		limit = 100
	}
	rows, err := uc.analyticsRepo.GetTopProducts(ctx, from, to, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopProductDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopProductDTO{
			ProductID: r.ProductID,
			Name:      r.Name,
			Quantity:  r.Quantity,
			Revenue:   r.Revenue.Round(2),
		})
	}
	return out, nil
}

// GetExpiringProducts devuelve los productos activos con fecha de
// vencimiento dentro de [asOf, asOf + days], ordenados por días hasta
// vencer ascendente (empates por id para orden estable).
func (uc *ReportsUseCase) GetExpiringProducts(ctx context.Context, asOf time.Time, days int) ([]dto.ExpiringProductDTO, error) {
	if days <= 0 {
		days = 30
	}
	asOf = asOf.UTC()
	limit := asOf.AddDate(0, 0, days)

	products, err := uc.productRepo.ListActive()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpiringProductDTO, 0)
	for _, p := range products {
		if p.ExpirationDate == nil {
			continue
		}
		exp := p.ExpirationDate.UTC()
		if exp.Before(asOf) || exp.After(limit) {
			continue
		}
		out = append(out, dto.ExpiringProductDTO{
			ProductID:       p.ID,
			Name:            p.Name,
			Stock:           p.Stock,
			Price:           p.Price,
			ExpirationDate:  exp,
			DaysUntilExpiry: int(exp.Sub(asOf).Hours() / 24),
		})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].DaysUntilExpiry != out[b].DaysUntilExpiry {
			return out[a].DaysUntilExpiry < out[b].DaysUntilExpiry
		}
		return out[a].ProductID < out[b].ProductID
	})
	return out, nil
}

// GetSalesReport lista las ventas del rango (más recientes primero).
func (uc *ReportsUseCase) GetSalesReport(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	if limit <= 0 {
		limit = 500
	}
	if limit > 1000 {
		limit = 1000
	}
	if offset < 0 {
		offset = 0
	}
	return uc.saleRepo.List(from, to, limit, offset)
}

// GetInventoryReport devuelve los productos activos con su estado de stock.
func (uc *ReportsUseCase) GetInventoryReport(ctx context.Context) ([]dto.InventoryReportItemDTO, error) {
	products, err := uc.productRepo.ListActive()
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryReportItemDTO, 0, len(products))
	for _, p := range products {
		out = append(out, dto.InventoryReportItemDTO{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Cost:      p.Cost,
			Stock:     p.Stock,
			MinStock:  p.MinStock,
			LowStock:  p.LowStock(),
		})
	}
	return out, nil
}
