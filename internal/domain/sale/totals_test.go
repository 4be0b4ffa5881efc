package sale_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/sale"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestLineSubtotal_CalculaCantidadPorPrecio(t *testing.T) {
	subtotal, err := sale.LineSubtotal(3, dec("4.50"))
	require.NoError(t, err)
	assert.True(t, dec("13.50").Equal(subtotal), "3 x 4.50 = 13.50, obtuvo %s", subtotal)
}

func TestLineSubtotal_CantidadNoPositiva(t *testing.T) {
	_, err := sale.LineSubtotal(0, dec("10"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = sale.LineSubtotal(-2, dec("10"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLineSubtotal_PrecioNegativo(t *testing.T) {
	_, err := sale.LineSubtotal(1, dec("-0.01"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTotals_SubtotalMasImpuestoMenosDescuento(t *testing.T) {
	lines := []entity.SaleLine{
		{Subtotal: dec("10.00")},
		{Subtotal: dec("5.50")},
	}
	subtotal, total, err := sale.Totals(lines, dec("2.00"), dec("1.50"))
	require.NoError(t, err)
	assert.True(t, dec("15.50").Equal(subtotal))
	assert.True(t, dec("16.00").Equal(total), "15.50 + 2.00 - 1.50 = 16.00, obtuvo %s", total)
}

func TestTotals_SinLineas(t *testing.T) {
	_, _, err := sale.Totals(nil, decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTotals_ImpuestoODescuentoNegativos(t *testing.T) {
	lines := []entity.SaleLine{{Subtotal: dec("10")}}

	_, _, err := sale.Totals(lines, dec("-1"), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = sale.Totals(lines, decimal.Zero, dec("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTotals_DescuentoMayorQueTotal(t *testing.T) {
	lines := []entity.SaleLine{{Subtotal: dec("10")}}
	_, _, err := sale.Totals(lines, decimal.Zero, dec("20"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "un total negativo debe rechazarse")
}

func TestTotals_DescuentoIgualAlTotal(t *testing.T) {
	// Total cero es válido: venta completamente bonificada.
	lines := []entity.SaleLine{{Subtotal: dec("10")}}
	_, total, err := sale.Totals(lines, decimal.Zero, dec("10"))
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}
