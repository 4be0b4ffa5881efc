// Package analytics contiene los casos de uso de lectura del dashboard y
// los reportes. Todo es stateless: funciones puras sobre ventas, movimientos
// y productos; nunca escriben.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-pos/internal/application/dto"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

// DashboardUseCase genera el resumen del día y del mes en curso.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetStats construye el resumen del dashboard para el instante asOf.
// Los límites de día y mes se calculan en UTC a las 00:00:00. Tres consultas
// en paralelo: totales de hoy, totales del mes y los contadores de catálogo.
func (uc *DashboardUseCase) GetStats(ctx context.Context, asOf time.Time) (*dto.DashboardStatsDTO, error) {
	asOf = asOf.UTC()
	dayStart := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)
	monthStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, time.UTC)

	type totalsResult struct {
		total decimal.Decimal
		count int
		err   error
	}
	type countsResult struct {
		lowStock  int
		products  int
		customers int
		err       error
	}

	todayCh := make(chan totalsResult, 1)
	monthCh := make(chan totalsResult, 1)
	countsCh := make(chan countsResult, 1)

	go func() {
		total, count, err := uc.analyticsRepo.GetSalesTotals(ctx, dayStart, dayEnd)
		todayCh <- totalsResult{total, count, err}
	}()
	go func() {
		total, count, err := uc.analyticsRepo.GetSalesTotals(ctx, monthStart, dayEnd)
		monthCh <- totalsResult{total, count, err}
	}()
	go func() {
		var r countsResult
		r.lowStock, r.err = uc.analyticsRepo.CountLowStock(ctx)
		if r.err == nil {
			r.products, r.err = uc.analyticsRepo.CountActiveProducts(ctx)
		}
		if r.err == nil {
			r.customers, r.err = uc.analyticsRepo.CountCustomers(ctx)
		}
		countsCh <- r
	}()

	today := <-todayCh
	month := <-monthCh
	counts := <-countsCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", month.err)
	}
	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: contadores: %w", counts.err)
	}

	return &dto.DashboardStatsDTO{
		SalesToday:          today.total.Round(2),
		SalesMonth:          month.total.Round(2),
		SaleCountToday:      today.count,
		LowStockCount:       counts.lowStock,
		TotalActiveProducts: counts.products,
		TotalCustomers:      counts.customers,
	}, nil
}
