package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest línea de venta enviada por el cliente. Subtotal se acepta
// por compatibilidad con el POS pero se ignora: el servidor siempre lo
// recalcula como quantity * unit_price.
type SaleLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CreateSaleRequest crea una venta multi-línea.
type CreateSaleRequest struct {
	CustomerID    string            `json:"customer_id"`
	CustomerName  string            `json:"customer_name"`
	Lines         []SaleLineRequest `json:"lines"`
	Tax           decimal.Decimal   `json:"tax"`
	Discount      decimal.Decimal   `json:"discount"`
	PaymentMethod string            `json:"payment_method"`
}

// SaleLineResponse línea de venta persistida.
type SaleLineResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta persistida con sus líneas.
type SaleResponse struct {
	ID            string             `json:"id"`
	CustomerID    string             `json:"customer_id,omitempty"`
	CustomerName  string             `json:"customer_name"`
	UserID        string             `json:"user_id"`
	UserName      string             `json:"user_name"`
	Lines         []SaleLineResponse `json:"lines"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Tax           decimal.Decimal    `json:"tax"`
	Discount      decimal.Decimal    `json:"discount"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	CreatedAt     time.Time          `json:"created_at"`
}
