package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto de la farmacia.
// Stock solo lo modifica el motor de inventario (ApplyMovementUseCase);
// el CRUD de productos nunca escribe este campo directamente.
type Product struct {
	ID             string
	Name           string
	Description    string
	CategoryID     string
	SupplierID     string
	Price          decimal.Decimal // precio de venta
	Cost           decimal.Decimal // costo de compra
	Stock          int             // nunca negativo
	MinStock       int             // umbral de alerta de stock bajo
	ExpirationDate *time.Time      // nil si el producto no vence
	Barcode        string
	Active         bool
	CreatedAt      time.Time
}

// LowStock indica si el producto está en o por debajo de su umbral mínimo.
func (p *Product) LowStock() bool {
	return p.Stock <= p.MinStock
}
