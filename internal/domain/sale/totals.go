// Package sale contiene la lógica pura de cálculo de totales de una venta
// (servicio de dominio, sin acceso a datos).
package sale

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
)

// LineSubtotal recalcula el subtotal de una línea: Quantity * UnitPrice.
// Rechaza cantidad no positiva y precio negativo.
func LineSubtotal(quantity int, unitPrice decimal.Decimal) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, domain.ErrInvalidInput
	}
	if unitPrice.LessThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))), nil
}

// Totals calcula Subtotal (suma de subtotales de línea) y
// Total = Subtotal + Tax - Discount. Los subtotales de línea deben venir ya
// recalculados con LineSubtotal. Rechaza impuesto o descuento negativos y
// un total resultante negativo.
func Totals(lines []entity.SaleLine, tax, discount decimal.Decimal) (subtotal, total decimal.Decimal, err error) {
	if len(lines) == 0 {
		return decimal.Zero, decimal.Zero, domain.ErrInvalidInput
	}
	if tax.LessThan(decimal.Zero) || discount.LessThan(decimal.Zero) {
		return decimal.Zero, decimal.Zero, domain.ErrInvalidInput
	}
	for _, l := range lines {
		subtotal = subtotal.Add(l.Subtotal)
	}
	total = subtotal.Add(tax).Sub(discount)
	if total.LessThan(decimal.Zero) {
		return decimal.Zero, decimal.Zero, domain.ErrInvalidInput
	}
	return subtotal, total, nil
}
