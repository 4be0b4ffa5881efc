package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStatsDTO resumen del dashboard para un instante asOf.
type DashboardStatsDTO struct {
	SalesToday          decimal.Decimal `json:"sales_today"`
	SalesMonth          decimal.Decimal `json:"sales_month"`
	SaleCountToday      int             `json:"sale_count_today"`
	LowStockCount       int             `json:"low_stock_count"`
	TotalActiveProducts int             `json:"total_active_products"`
	TotalCustomers      int             `json:"total_customers"`
}

// ChartPointDTO punto de la serie de ingresos por día.
type ChartPointDTO struct {
	Date    string          `json:"date"` // YYYY-MM-DD (UTC)
	Revenue decimal.Decimal `json:"revenue"`
}

// TopProductDTO producto del ranking de más vendidos.
type TopProductDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// ExpiringProductDTO producto próximo a vencer.
type ExpiringProductDTO struct {
	ProductID       string          `json:"product_id"`
	Name            string          `json:"name"`
	Stock           int             `json:"stock"`
	Price           decimal.Decimal `json:"price"`
	ExpirationDate  time.Time       `json:"expiration_date"`
	DaysUntilExpiry int             `json:"days_until_expiry"`
}

// InventoryReportItemDTO fila del reporte de inventario.
type InventoryReportItemDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Cost      decimal.Decimal `json:"cost"`
	Stock     int             `json:"stock"`
	MinStock  int             `json:"min_stock"`
	LowStock  bool            `json:"low_stock"`
}
