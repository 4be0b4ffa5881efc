package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medios de pago aceptados en caja.
const (
	PaymentCash     = "efectivo"
	PaymentCard     = "tarjeta"
	PaymentTransfer = "transferencia"
)

// ValidPaymentMethod valida el medio de pago.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	}
	return false
}

// SaleLine es una línea de venta con nombre y precio congelados al momento
// de la venta (un rename o cambio de precio posterior no la afecta).
// Subtotal siempre se recalcula como Quantity * UnitPrice; nunca se toma
// del cliente.
type SaleLine struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// Sale es una venta inmutable: se crea exactamente una vez, con todas sus
// líneas, y no existe operación de actualización ni borrado.
// Total es siempre derivado: Subtotal + Tax - Discount.
type Sale struct {
	ID            string
	CustomerID    string // opcional; vacío para venta de mostrador
	CustomerName  string
	UserID        string
	UserName      string
	Lines         []SaleLine
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string
	CreatedAt     time.Time
}
